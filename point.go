package morph

import (
	"image"
	"math"
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	dx, dy := float64(p.X-q.X), float64(p.Y-q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp interpolates between p (t=0) and q (t=1), rounding to the nearest pixel.
func Lerp(p, q Point, t float64) Point {
	x := float64(p.X)*(1-t) + float64(q.X)*t
	y := float64(p.Y)*(1-t) + float64(q.Y)*t
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// in reports whether p lies inside r.
func (p Point) in(r image.Rectangle) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// mid returns the integer midpoint of two points.
func mid(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Line is a segment between two points.
type Line struct {
	P1, P2 Point
}

// Crosses reports whether two segments intersect at a point which is
// not one of their shared endpoints. Parallel segments never cross.
func (l Line) Crosses(o Line) bool {
	var (
		x1, y1   = float64(l.P1.X), float64(l.P1.Y)
		x1e, y1e = float64(l.P2.X), float64(l.P2.Y)
		x2, y2   = float64(o.P1.X), float64(o.P1.Y)
		x2e, y2e = float64(o.P2.X), float64(o.P2.Y)
	)
	if l.P1 == l.P2 {
		return false
	}
	z := (x1e-x1)*(y2-y1) - (y1e-y1)*(x2-x1)
	n := (y1e-y1)*(x2e-x2) - (x1e-x1)*(y2e-y2)
	if n == 0 {
		return false
	}
	// q is the parameter along o, p the one along l.
	q := z / n
	var p float64
	if x1e-x1 != 0 {
		p = (x2 - x1 + q*(x2e-x2)) / (x1e - x1)
	} else {
		p = (y2 - y1 + q*(y2e-y2)) / (y1e - y1)
	}
	if q < 0 || q > 1 || p < 0 || p > 1 {
		return false
	}
	if l.P1 == o.P1 || l.P1 == o.P2 || l.P2 == o.P1 || l.P2 == o.P2 {
		return false
	}
	return true
}
