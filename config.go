package morph

import "github.com/pkg/errors"

// Topology selects how faces are built over the control points.
type Topology string

const (
	// TopologyDelaunay triangulates the averaged control points.
	TopologyDelaunay Topology = "delaunay"
	// TopologyGrid splits every grid cell into two triangles.
	TopologyGrid Topology = "grid"
)

// Default configuration values.
const (
	DefaultRows          = 10
	DefaultCols          = 15
	DefaultSteps         = 5
	DefaultFeatherRadius = 19
	DefaultPolygonPoints = 5
)

// Config holds the parameters of a morph run.
type Config struct {
	Rows          int      `yaml:"rows" toml:"rows"`
	Cols          int      `yaml:"cols" toml:"cols"`
	Steps         int      `yaml:"steps" toml:"steps"`
	FeatherRadius int      `yaml:"feather_radius" toml:"feather_radius"`
	PolygonPoints int      `yaml:"polygon_points" toml:"polygon_points"`
	Topology      Topology `yaml:"topology" toml:"topology"`
	Grayscale     bool     `yaml:"grayscale" toml:"grayscale"`
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Rows:          DefaultRows,
		Cols:          DefaultCols,
		Steps:         DefaultSteps,
		FeatherRadius: DefaultFeatherRadius,
		PolygonPoints: DefaultPolygonPoints,
		Topology:      TopologyDelaunay,
	}
}

// Validate checks every field against its allowed range.
func (c Config) Validate() error {
	checks := []struct {
		name   string
		v      int
		lo, hi int
	}{
		{"rows", c.Rows, 1, 99},
		{"cols", c.Cols, 1, 99},
		{"steps", c.Steps, 1, 999},
		{"feather radius", c.FeatherRadius, 0, 999},
		{"polygon points", c.PolygonPoints, 3, 99},
	}
	for _, chk := range checks {
		if chk.v < chk.lo || chk.v > chk.hi {
			return errors.Wrapf(ErrInvalidConfig, "%s must be in [%d, %d], got %d", chk.name, chk.lo, chk.hi, chk.v)
		}
	}
	switch c.Topology {
	case TopologyDelaunay, TopologyGrid:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown topology %q", c.Topology)
	}
	return nil
}

// ParseTopology converts a user supplied name into a Topology.
func ParseTopology(name string) (Topology, error) {
	switch t := Topology(name); t {
	case TopologyDelaunay, TopologyGrid:
		return t, nil
	}
	return "", errors.Wrapf(ErrInvalidConfig, "unknown topology %q", name)
}
