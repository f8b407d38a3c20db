package morph

import (
	"math"

	"github.com/pkg/errors"
)

// ControlPolygon is a closed loop of points delimiting the region of
// interest of one image. The last point connects back to the first.
type ControlPolygon []Point

// DefaultPolygon places n points on a circle centred on a width x height
// image, with a radius of a quarter of the image diagonal.
func DefaultPolygon(n, width, height int) ControlPolygon {
	poly := make(ControlPolygon, n)
	r := math.Sqrt(float64(width*width+height*height)) / 4.0
	for i := 0; i < n; i++ {
		angle := 2.0 * math.Pi * float64(i) / float64(n)
		poly[i] = Point{
			X: int(math.Cos(angle)*r) + width/2,
			Y: int(math.Sin(angle)*r) + height/2,
		}
	}
	return poly
}

// Validate checks the polygon has enough points to enclose an area.
func (p ControlPolygon) Validate() error {
	if len(p) < 3 {
		return errors.Wrapf(ErrInvalidPolygon, "got %d points", len(p))
	}
	return nil
}

// Edges calls fn for every edge of the closed polygon.
func (p ControlPolygon) Edges(fn func(p1, p2 Point)) {
	for i := range p {
		fn(p[i], p[(i+1)%len(p)])
	}
}

// sampleEdge walks a segment with one sample per pixel along its longer axis.
// Zero length segments produce no samples.
func sampleEdge(p1, p2 Point, fn func(Point)) {
	if p1 == p2 {
		return
	}
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	steps := Max(abs(dx), abs(dy))
	for s := 0; s <= steps; s++ {
		fn(Point{
			X: p1.X + int(math.Round(float64(s*dx)/float64(steps))),
			Y: p1.Y + int(math.Round(float64(s*dy)/float64(steps))),
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
