// Package project reads and writes morph project files. A project stores the
// configuration, the source image paths and the control points of both sides,
// as YAML or TOML depending on the file extension.
package project

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/esimov/morph"
	"github.com/esimov/morph/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for project files which are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown project file format")

// Side describes one source image and its control points.
type Side struct {
	Image   string        `yaml:"image" toml:"image"`
	Grid    []morph.Point `yaml:"grid,omitempty" toml:"grid,omitempty"`
	Polygon []morph.Point `yaml:"polygon,omitempty" toml:"polygon,omitempty"`
}

// Project is the persistent form of a morph run.
type Project struct {
	Config morph.Config `yaml:"config" toml:"config"`
	Left   Side         `yaml:"left" toml:"left"`
	Right  Side         `yaml:"right" toml:"right"`
}

// New returns a project holding the default configuration.
func New() *Project {
	return &Project{Config: morph.DefaultConfig()}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", path)
}

// Load reads a project file. Values missing from the file keep their
// defaults; relative image paths are resolved against the file's directory.
func Load(path string) (*Project, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading project")
	}

	p := New()
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, p)
	case formatTOML:
		_, err = toml.Decode(string(data), p)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding project %s", path)
	}

	dir := filepath.Dir(path)
	for _, s := range []*Side{&p.Left, &p.Right} {
		if s.Image != "" && !filepath.IsAbs(s.Image) && !utils.IsURL(s.Image) {
			s.Image = filepath.Join(dir, s.Image)
		}
	}
	return p, nil
}

// Save writes the project, choosing the encoding from the extension.
func (p *Project) Save(path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(p)
		if err == nil {
			err = enc.Close()
		}
	case formatTOML:
		err = toml.NewEncoder(&buf).Encode(p)
	}
	if err != nil {
		return errors.Wrap(err, "encoding project")
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0o644), "writing project")
}

// Grids returns the stored control grids. A side without points yields a
// nil grid, which the processor replaces with an even default grid.
func (p *Project) Grids() (*morph.ControlGrid, *morph.ControlGrid, error) {
	left, err := p.grid(p.Left.Grid, "left")
	if err != nil {
		return nil, nil, err
	}
	right, err := p.grid(p.Right.Grid, "right")
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (p *Project) grid(pts []morph.Point, side string) (*morph.ControlGrid, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	g := &morph.ControlGrid{
		Rows:   p.Config.Rows,
		Cols:   p.Config.Cols,
		Points: append([]morph.Point(nil), pts...),
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s grid", side)
	}
	return g, nil
}

// SetGrids stores the points of both grids and adopts their shape.
func (p *Project) SetGrids(left, right *morph.ControlGrid) error {
	if err := morph.SameShape(left, right); err != nil {
		return err
	}
	p.Config.Rows, p.Config.Cols = left.Rows, left.Cols
	p.Left.Grid = append([]morph.Point(nil), left.Points...)
	p.Right.Grid = append([]morph.Point(nil), right.Points...)

	return nil
}

// Input assembles the processor input from the project and decoded images.
func (p *Project) Input(left, right image.Image) (morph.Input, error) {
	lg, rg, err := p.Grids()
	if err != nil {
		return morph.Input{}, err
	}
	in := morph.Input{
		Left:      left,
		Right:     right,
		LeftGrid:  lg,
		RightGrid: rg,
	}
	if len(p.Left.Polygon) > 0 {
		in.LeftPolygon = morph.ControlPolygon(p.Left.Polygon)
	}
	if len(p.Right.Polygon) > 0 {
		in.RightPolygon = morph.ControlPolygon(p.Right.Polygon)
	}
	return in, nil
}
