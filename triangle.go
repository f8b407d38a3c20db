package morph

import "math"

// Triangle is a triangle in pixel space together with the pixels it covers.
// The pixel list is computed on first use and cached.
type Triangle struct {
	P [3]Point

	pixels []Point
	ready  bool
}

// NewTriangle creates a triangle from three corners.
func NewTriangle(p0, p1, p2 Point) *Triangle {
	return &Triangle{P: [3]Point{p0, p1, p2}}
}

// Rows returns the first and last scanline touched by the triangle.
func (t *Triangle) Rows() (int, int) {
	return Min(t.P[0].Y, t.P[1].Y, t.P[2].Y), Max(t.P[0].Y, t.P[1].Y, t.P[2].Y)
}

// Degenerate reports whether the triangle has zero area.
func (t *Triangle) Degenerate() bool {
	return signedArea(t.P) == 0
}

// Pixels returns every integer coordinate covered by the triangle, row by
// row from top to bottom. The slice is shared; callers must not modify it.
func (t *Triangle) Pixels() []Point {
	if t.ready {
		return t.pixels
	}
	ymin, ymax := t.Rows()
	for y := ymin; y <= ymax; y++ {
		x0, x1, ok := t.Span(y)
		if !ok {
			continue
		}
		for x := x0; x <= x1; x++ {
			t.pixels = append(t.pixels, Point{X: x, Y: y})
		}
	}
	t.ready = true

	return t.pixels
}

// Span returns the inclusive horizontal range covered on scanline y.
func (t *Triangle) Span(y int) (int, int, bool) {
	var (
		xs [3]int
		n  int
	)
	edges := [3][2]int{{0, 1}, {0, 2}, {1, 2}}
	for _, e := range edges {
		if x, ok := intersect(y, t.P[e[0]], t.P[e[1]]); ok {
			xs[n] = x
			n++
		}
	}

	switch n {
	case 0:
		return 0, 0, false
	case 1:
		return xs[0], xs[0], true
	case 2:
		return Min(xs[0], xs[1]), Max(xs[0], xs[1]), true
	}
	// The scanline passes through a vertex: two edges report the same x,
	// so pick the first pair which differs.
	switch {
	case xs[0] != xs[1]:
		return Min(xs[0], xs[1]), Max(xs[0], xs[1]), true
	case xs[0] != xs[2]:
		return Min(xs[0], xs[2]), Max(xs[0], xs[2]), true
	case xs[1] != xs[2]:
		return Min(xs[1], xs[2]), Max(xs[1], xs[2]), true
	}
	return xs[0], xs[0], true
}

// intersect returns the x coordinate where scanline y meets the edge p1-p2.
func intersect(y int, p1, p2 Point) (int, bool) {
	// Normalise the direction so adjacent triangles sharing this edge
	// compute exactly the same value.
	if p2.Y < p1.Y || (p2.Y == p1.Y && p2.X < p1.X) {
		p1, p2 = p2, p1
	}
	dy := p2.Y - p1.Y
	if dy == 0 || y < p1.Y || y > p2.Y {
		return 0, false
	}
	param := float64(y-p1.Y) / float64(dy)
	x := float64(p1.X) + param*float64(p2.X-p1.X)

	return int(math.Round(x)), true
}
