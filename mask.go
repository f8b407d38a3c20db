package morph

import (
	"math"

	"github.com/pkg/errors"
)

// ClipMask holds the per-pixel weight with which a pixel belongs to the
// region enclosed by a control polygon: 1 inside, 0 outside and a linear
// falloff within the feather band. Values are stored row-major.
type ClipMask struct {
	Width  int
	Height int
	Values []float64
}

// NewClipMask returns a mask with every cell set to zero.
func NewClipMask(width, height int) *ClipMask {
	return &ClipMask{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the weight at (x, y). The boolean is false outside the mask.
func (m *ClipMask) At(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0, false
	}
	return m.Values[y*m.Width+x], true
}

// Set stores the weight at (x, y), ignoring coordinates outside the mask.
func (m *ClipMask) Set(x, y int, v float64) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Values[y*m.Width+x] = v
}

// Fill sets every cell to v.
func (m *ClipMask) Fill(v float64) {
	for i := range m.Values {
		m.Values[i] = v
	}
}

// BuildMask rasterizes the polygon into a width x height mask and feathers
// its outline over radius pixels. A zero radius gives a hard edged mask.
func BuildMask(poly ControlPolygon, width, height, radius int) (*ClipMask, error) {
	if err := poly.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "mask size %dx%d", width, height)
	}
	if radius < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "negative feather radius %d", radius)
	}
	m := NewClipMask(width, height)

	// Outline, clamped into the mask.
	poly.Edges(func(p1, p2 Point) {
		sampleEdge(p1, p2, func(p Point) {
			m.Set(Clamp(p.X, 0, width-1), Clamp(p.Y, 0, height-1), 1)
		})
	})
	m.fill()

	if radius > 0 {
		poly.Edges(func(p1, p2 Point) {
			sampleEdge(p1, p2, func(p Point) {
				m.feather(p, radius)
			})
		})
	}
	return m, nil
}

// Scanline states used to detect the outline-gap-outline pattern.
const (
	scanOutside = iota
	scanOnEdge
	scanInGap
	scanClosing
)

// fill sets the inside of the outline drawn into the mask. Every row is
// scanned for runs of the form edge, gap, edge; each gap found this way is
// filled. After a closing edge run the search starts over.
func (m *ClipMask) fill() {
	for y := 0; y < m.Height; y++ {
		row := m.Values[y*m.Width : (y+1)*m.Width]
		state, gapStart := scanOutside, 0

		for x := 0; x < m.Width; x++ {
			set := row[x] > 0
			switch state {
			case scanOutside:
				if set {
					state = scanOnEdge
				}
			case scanOnEdge:
				if !set {
					state, gapStart = scanInGap, x
				}
			case scanInGap:
				if set {
					for i := gapStart; i < x; i++ {
						row[i] = 1
					}
					state = scanClosing
				}
			case scanClosing:
				if !set {
					state = scanOutside
				}
			}
		}
	}
}

// feather raises the cells around p to a weight falling linearly from 1 at
// p to 0 at radius pixels. Existing higher weights are kept.
func (m *ClipMask) feather(p Point, radius int) {
	r := float64(radius)
	for y := p.Y - radius; y <= p.Y+radius; y++ {
		for x := p.X - radius; x <= p.X+radius; x++ {
			cur, ok := m.At(x, y)
			if !ok {
				continue
			}
			d := p.Dist(Point{X: x, Y: y})
			if d > r {
				continue
			}
			m.Values[y*m.Width+x] = math.Max(cur, (r-d)/r)
		}
	}
}
