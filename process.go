package morph

import (
	"context"
	"image"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Input gathers everything a morph run reads. Grids and polygons left nil
// are replaced by the defaults derived from the configuration and the image
// sizes.
type Input struct {
	Left, Right image.Image

	LeftGrid, RightGrid       *ControlGrid
	LeftPolygon, RightPolygon ControlPolygon
}

// Processor : type with processing options
type Processor struct {
	Config

	// OnProgress is forwarded to the sequencer.
	OnProgress func(index, total int)

	seq       atomic.Pointer[Sequencer]
	cancelled atomic.Bool
}

// Run is the outcome of a processed morph.
type Run struct {
	Result
	Mesh         *Mesh
	LeftMask     *ClipMask
	RightMask    *ClipMask
	LeftPolygon  ControlPolygon
	RightPolygon ControlPolygon
}

// Process validates the input, derives the mesh and the masks once, then
// yields every frame of the sequence in order.
func (p *Processor) Process(ctx context.Context, in Input, yield func(*Frame) error) (*Run, error) {
	log := componentLogger("processor")
	defer p.reset()

	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	if in.Left == nil || in.Right == nil {
		return nil, ErrNilImage
	}
	left, right := ImgToNRGBA(in.Left), ImgToNRGBA(in.Right)
	lw, lh := left.Bounds().Dx(), left.Bounds().Dy()
	rw, rh := right.Bounds().Dx(), right.Bounds().Dy()

	if in.LeftGrid == nil {
		in.LeftGrid = DefaultGrid(p.Rows, p.Cols, lw, lh)
	}
	if in.RightGrid == nil {
		in.RightGrid = DefaultGrid(p.Rows, p.Cols, rw, rh)
	}
	if err := SameShape(in.LeftGrid, in.RightGrid); err != nil {
		return nil, err
	}
	if in.LeftPolygon == nil {
		in.LeftPolygon = DefaultPolygon(p.PolygonPoints, lw, lh)
	}
	if in.RightPolygon == nil {
		in.RightPolygon = DefaultPolygon(p.PolygonPoints, rw, rh)
	}

	lmask, err := BuildMask(in.LeftPolygon, lw, lh, p.FeatherRadius)
	if err != nil {
		return nil, errors.Wrap(err, "left mask")
	}
	rmask, err := BuildMask(in.RightPolygon, rw, rh, p.FeatherRadius)
	if err != nil {
		return nil, errors.Wrap(err, "right mask")
	}
	mesh, err := BuildMesh(in.LeftGrid, in.RightGrid, p.Topology)
	if err != nil {
		return nil, err
	}

	comp, err := NewCompositor(left, right, lmask, rmask, mesh)
	if err != nil {
		return nil, err
	}
	comp.Grayscale = p.Grayscale

	seq, err := NewSequencer(comp, p.Steps)
	if err != nil {
		return nil, err
	}
	seq.OnProgress = p.OnProgress
	p.seq.Store(seq)
	if p.cancelled.Load() {
		seq.Cancel()
	}

	w, h := comp.Size()
	log.Info().
		Int("width", w).
		Int("height", h).
		Int("steps", p.Steps).
		Int("faces", len(mesh.Faces)).
		Str("topology", string(p.Topology)).
		Msg("morph started")

	res, err := seq.Run(ctx, yield)

	return &Run{
		Result:       res,
		Mesh:         mesh,
		LeftMask:     lmask,
		RightMask:    rmask,
		LeftPolygon:  in.LeftPolygon,
		RightPolygon: in.RightPolygon,
	}, err
}

// Cancel stops a running Process at the next frame boundary. Called before
// Process starts, it makes that run stop before the first frame. The request
// is cleared once Process returns, so the Processor can be reused.
func (p *Processor) Cancel() {
	p.cancelled.Store(true)
	if seq := p.seq.Load(); seq != nil {
		seq.Cancel()
	}
}

func (p *Processor) reset() {
	p.seq.Store(nil)
	p.cancelled.Store(false)
}
