package morph

import "github.com/pkg/errors"

// ControlGrid is a (Rows+1) x (Cols+1) lattice of control points laid over
// one source image. Points are stored row-major.
type ControlGrid struct {
	Rows   int
	Cols   int
	Points []Point
}

// NewGrid allocates a grid with every point at the origin.
func NewGrid(rows, cols int) *ControlGrid {
	return &ControlGrid{
		Rows:   rows,
		Cols:   cols,
		Points: make([]Point, (rows+1)*(cols+1)),
	}
}

// DefaultGrid spreads the control points evenly over a width x height image,
// the outermost points sitting on the image border.
func DefaultGrid(rows, cols, width, height int) *ControlGrid {
	g := NewGrid(rows, cols)
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			g.Set(r, c, Point{
				X: ((width - 1) * c) / cols,
				Y: ((height - 1) * r) / rows,
			})
		}
	}
	return g
}

// At returns the control point on row r, column c.
func (g *ControlGrid) At(r, c int) Point {
	return g.Points[g.index(r, c)]
}

// Set replaces the control point on row r, column c.
func (g *ControlGrid) Set(r, c int, p Point) {
	g.Points[g.index(r, c)] = p
}

func (g *ControlGrid) index(r, c int) int {
	return r*(g.Cols+1) + c
}

// Len returns the number of control points.
func (g *ControlGrid) Len() int {
	return (g.Rows + 1) * (g.Cols + 1)
}

// Validate checks that the point storage matches the declared shape.
func (g *ControlGrid) Validate() error {
	if g == nil {
		return errors.Wrap(ErrMismatchedGrids, "grid is nil")
	}
	if g.Rows < 1 || g.Cols < 1 {
		return errors.Wrapf(ErrMismatchedGrids, "grid must have at least one cell, got %dx%d", g.Rows, g.Cols)
	}
	if len(g.Points) != g.Len() {
		return errors.Wrapf(ErrMismatchedGrids, "grid %dx%d holds %d points, want %d",
			g.Rows, g.Cols, len(g.Points), g.Len())
	}
	return nil
}

// SameShape verifies both grids are valid and share the same topology.
func SameShape(left, right *ControlGrid) error {
	if err := left.Validate(); err != nil {
		return errors.Wrap(err, "left grid")
	}
	if err := right.Validate(); err != nil {
		return errors.Wrap(err, "right grid")
	}
	if left.Rows != right.Rows || left.Cols != right.Cols {
		return errors.Wrapf(ErrMismatchedGrids, "left %dx%d, right %dx%d",
			left.Rows, left.Cols, right.Rows, right.Cols)
	}
	return nil
}

// LerpGrid returns the grid interpolated between left (t=0) and right (t=1).
// Both grids must have the same shape.
func LerpGrid(left, right *ControlGrid, t float64) *ControlGrid {
	g := NewGrid(left.Rows, left.Cols)
	for i := range g.Points {
		g.Points[i] = Lerp(left.Points[i], right.Points[i], t)
	}
	return g
}

// cellFaces splits every grid cell into two triangles sharing the
// cell's anti-diagonal.
func cellFaces(rows, cols int) []Face {
	idx := func(r, c int) int { return r*(cols+1) + c }

	faces := make([]Face, 0, rows*cols*2)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			faces = append(faces,
				Face{idx(r, c), idx(r, c+1), idx(r+1, c)},
				Face{idx(r+1, c+1), idx(r, c+1), idx(r+1, c)},
			)
		}
	}
	return faces
}
