package morph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(frames *[]*Frame) func(*Frame) error {
	return func(f *Frame) error {
		*frames = append(*frames, f)
		return nil
	}
}

func TestProcess(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Steps = 1, 1, 2

	var progress []int
	p := &Processor{
		Config:     cfg,
		OnProgress: func(index, _ int) { progress = append(progress, index) },
	}
	poly := ControlPolygon{{2, 2}, {17, 2}, {10, 17}}
	in := Input{
		Left:         solid(20, 20, red),
		Right:        solid(20, 20, blue),
		LeftPolygon:  poly,
		RightPolygon: poly,
	}

	var frames []*Frame
	run, err := p.Process(context.Background(), in, collect(&frames))
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, run.Status)
	assert.Equal(t, 3, run.Frames)
	assert.Equal(t, []int{0, 1, 2}, progress)

	require.Len(t, frames, 3)
	for i, want := range []float64{0, 0.5, 1} {
		assert.Equal(t, want, frames[i].Ratio)
	}
	assert.Len(t, run.Mesh.Faces, 2)
	assert.Equal(t, poly, run.LeftPolygon)
	assert.Equal(t, 1.0, run.LeftMask.Values[10*20+10])

	// Inside both polygons the endpoints reproduce the sources.
	assert.Equal(t, red, frames[0].Image.NRGBAAt(10, 8))
	assert.Equal(t, blue, frames[2].Image.NRGBAAt(10, 8))
}

func TestProcess_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 4

	p := &Processor{Config: cfg}
	var frames []*Frame
	run, err := p.Process(context.Background(), Input{
		Left:  solid(40, 30, red),
		Right: solid(40, 30, blue),
	}, collect(&frames))
	require.NoError(t, err)

	assert.Len(t, frames, cfg.Steps+1)
	assert.NotEmpty(t, run.Mesh.Faces)
	assert.Len(t, run.Mesh.Left, 20)
	assert.Len(t, run.LeftPolygon, cfg.PolygonPoints)
}

func TestProcess_TooFewFeaturePoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Steps = 1, 1, 3

	g := NewGrid(1, 1)
	copy(g.Points, []Point{{0, 0}, {19, 19}, {0, 0}, {19, 19}})

	var frames []*Frame
	run, err := (&Processor{Config: cfg}).Process(context.Background(), Input{
		Left:      solid(20, 20, red),
		Right:     solid(20, 20, blue),
		LeftGrid:  g,
		RightGrid: g,
	}, collect(&frames))
	require.NoError(t, err)
	assert.Empty(t, run.Mesh.Faces)
	assert.Len(t, frames, 4)
	assert.Equal(t, StatusComplete, run.Status)
}

func TestProcess_Rejects(t *testing.T) {
	img := solid(20, 20, red)
	bad := DefaultConfig()
	bad.Steps = 0

	tests := []struct {
		name string
		cfg  Config
		in   Input
		err  error
	}{
		{"mismatched grids", DefaultConfig(), Input{Left: img, Right: img, LeftGrid: NewGrid(1, 1), RightGrid: NewGrid(2, 2)}, ErrMismatchedGrids},
		{"invalid config", bad, Input{Left: img, Right: img}, ErrInvalidConfig},
		{"nil image", DefaultConfig(), Input{Left: img}, ErrNilImage},
		{"short polygon", DefaultConfig(), Input{Left: img, Right: img, LeftPolygon: ControlPolygon{{1, 1}}}, ErrInvalidPolygon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			_, err := (&Processor{Config: tt.cfg}).Process(context.Background(), tt.in, func(*Frame) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, called)
		})
	}
}

func TestProcess_CancelledBeforeStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 1

	p := &Processor{Config: cfg}
	p.Cancel()

	var frames []*Frame
	run, err := p.Process(context.Background(), Input{
		Left:  solid(20, 20, red),
		Right: solid(20, 20, blue),
	}, collect(&frames))
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, run.Status)
	assert.Empty(t, frames)

	// The request does not outlive the run.
	frames = nil
	run, err = p.Process(context.Background(), Input{
		Left:  solid(20, 20, red),
		Right: solid(20, 20, blue),
	}, collect(&frames))
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, run.Status)
	assert.Len(t, frames, cfg.Steps+1)
}
