package morph

import "math"

// Affine maps a destination point back to its source point:
//
//	| x' |   | A11 A12 A13 |   | x |
//	| y' | = | A21 A22 A23 | * | y |
//	                            | 1 |
type Affine struct {
	A11, A12, A13 float64
	A21, A22, A23 float64
}

// Identity is the affine map which leaves every point in place.
var Identity = Affine{A11: 1, A22: 1}

// SolveAffine derives the affine map taking each corner of dst to the
// corresponding corner of src. Corner i of both triangles must describe
// the same logical feature point.
func SolveAffine(src, dst [3]Point) (Affine, error) {
	var (
		sx1, sx2, sx3 = float64(src[0].X), float64(src[1].X), float64(src[2].X)
		sy1, sy2, sy3 = float64(src[0].Y), float64(src[1].Y), float64(src[2].Y)
		x1, x2, x3    = float64(dst[0].X), float64(dst[1].X), float64(dst[2].X)
		y1, y2, y3    = float64(dst[0].Y), float64(dst[1].Y), float64(dst[2].Y)

		a Affine
	)
	if signedArea(dst) == 0 {
		return a, ErrDegenerateTriangle
	}

	// Pick the formulation whose pivot is not zero.
	switch {
	case x1 != x3:
		d := x1 - x3
		t := (x1 - x2) / d
		u := (y1 - y2) - (y1-y3)*t
		if u == 0 {
			return a, ErrDegenerateTriangle
		}
		a.A12 = ((sx1 - sx2) - (sx1-sx3)*t) / u
		a.A22 = ((sy1 - sy2) - (sy1-sy3)*t) / u
		a.A11 = ((sx1 - sx3) - a.A12*(y1-y3)) / d
		a.A21 = ((sy1 - sy3) - a.A22*(y1-y3)) / d
	case y1 != y3:
		d := y1 - y3
		t := (y1 - y2) / d
		u := (x1 - x2) - (x1-x3)*t
		if u == 0 {
			return a, ErrDegenerateTriangle
		}
		a.A11 = ((sx1 - sx2) - (sx1-sx3)*t) / u
		a.A21 = ((sy1 - sy2) - (sy1-sy3)*t) / u
		a.A12 = ((sx1 - sx3) - a.A11*(x1-x3)) / d
		a.A22 = ((sy1 - sy3) - a.A21*(x1-x3)) / d
	default:
		return a, ErrDegenerateTriangle
	}
	a.A13 = sx1 - a.A11*x1 - a.A12*y1
	a.A23 = sy1 - a.A21*x1 - a.A22*y1

	return a, nil
}

// Apply maps (x, y) through the transform.
func (a Affine) Apply(x, y float64) (float64, float64) {
	return a.A11*x + a.A12*y + a.A13, a.A21*x + a.A22*y + a.A23
}

// Map maps a pixel through the transform, rounding to the nearest pixel.
func (a Affine) Map(p Point) Point {
	x, y := a.Apply(float64(p.X), float64(p.Y))
	return Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// signedArea returns twice the signed area of the triangle.
func signedArea(t [3]Point) int {
	return (t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[2].X-t[0].X)*(t[1].Y-t[0].Y)
}
