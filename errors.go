package morph

import "github.com/pkg/errors"

var (
	// ErrDegenerateTriangle is returned when a destination triangle has no area
	// and no affine map can be derived for it.
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrOutOfBounds marks a mapped coordinate outside the source image.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInsufficientPoints is reported when fewer than three unique feature
	// points are available for triangulation.
	ErrInsufficientPoints = errors.New("insufficient feature points")
	// ErrMismatchedGrids rejects control grids of different shape.
	ErrMismatchedGrids = errors.New("control grids have different dimensions")
	// ErrInvalidPolygon rejects control polygons with less than three points.
	ErrInvalidPolygon = errors.New("control polygon needs at least 3 points")
	// ErrInvalidConfig wraps configuration values outside their allowed range.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNilImage rejects missing source images.
	ErrNilImage = errors.New("source image is nil")
)
