package morph

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// Frame is one rendered step of a morph sequence.
type Frame struct {
	Index int
	Ratio float64
	Image *image.NRGBA
	Stats FrameStats
}

// FrameStats counts the work done, and skipped, while composing a frame.
type FrameStats struct {
	Faces       int // faces rendered
	Degenerate  int // faces skipped because no affine map exists
	Pixels      int // pixels written
	OutOfBounds int // source samples falling outside their image
}

// Compositor blends two source images into a frame for a given ratio.
// All inputs are read only; a compositor may be reused for any number
// of frames.
type Compositor struct {
	left, right         *image.NRGBA
	leftMask, rightMask *ClipMask
	mesh                *Mesh
	leftTris, rightTris []*Triangle

	width, height int

	// Grayscale converts every frame to grayscale.
	Grayscale bool
}

// NewCompositor prepares the blending of left and right. The masks must
// match the size of their image. The mesh may have no faces, in which case
// frames are plain masked cross-fades.
func NewCompositor(left, right image.Image, leftMask, rightMask *ClipMask, mesh *Mesh) (*Compositor, error) {
	if left == nil || right == nil {
		return nil, ErrNilImage
	}
	if mesh == nil {
		return nil, errors.New("mesh is nil")
	}
	c := &Compositor{
		left:      ImgToNRGBA(left),
		right:     ImgToNRGBA(right),
		leftMask:  leftMask,
		rightMask: rightMask,
		mesh:      mesh,
	}
	if err := checkMask(leftMask, c.left, "left"); err != nil {
		return nil, err
	}
	if err := checkMask(rightMask, c.right, "right"); err != nil {
		return nil, err
	}
	c.width = Max(c.left.Bounds().Dx(), c.right.Bounds().Dx())
	c.height = Max(c.left.Bounds().Dy(), c.right.Bounds().Dy())
	c.leftTris = mesh.Triangles(mesh.Left)
	c.rightTris = mesh.Triangles(mesh.Right)

	return c, nil
}

func checkMask(m *ClipMask, img *image.NRGBA, side string) error {
	if m == nil {
		return errors.Errorf("%s mask is nil", side)
	}
	b := img.Bounds()
	if m.Width != b.Dx() || m.Height != b.Dy() {
		return errors.Errorf("%s mask is %dx%d, image is %dx%d", side, m.Width, m.Height, b.Dx(), b.Dy())
	}
	return nil
}

// Size returns the dimensions of the frames produced.
func (c *Compositor) Size() (int, int) {
	return c.width, c.height
}

// Compose renders the frame at ratio t, t=0 being the left geometry and
// appearance and t=1 the right one.
func (c *Compositor) Compose(index int, t float64) *Frame {
	f := &Frame{
		Index: index,
		Ratio: t,
		Image: image.NewNRGBA(image.Rect(0, 0, c.width, c.height)),
	}
	// Opaque black background for pixels no face reaches.
	for i := 3; i < len(f.Image.Pix); i += 4 {
		f.Image.Pix[i] = 0xff
	}

	if len(c.mesh.Faces) == 0 {
		c.crossFade(f, t)
	} else {
		c.warp(f, t)
	}
	if c.Grayscale {
		f.Image = Grayscale(f.Image)
	}
	log := componentLogger("compositor")
	log.Debug().
		Int("frame", index).
		Float64("ratio", t).
		Int("faces", f.Stats.Faces).
		Int("degenerate", f.Stats.Degenerate).
		Int("pixels", f.Stats.Pixels).
		Int("out_of_bounds", f.Stats.OutOfBounds).
		Msg("frame composed")

	return f
}

// warp maps every destination triangle back into both sources.
func (c *Compositor) warp(f *Frame, t float64) {
	dst := c.mesh.Triangles(c.mesh.Interpolate(t))

	for i, tri := range dst {
		lt, err := SolveAffine(c.leftTris[i].P, tri.P)
		if err != nil {
			f.Stats.Degenerate++
			continue
		}
		rt, err := SolveAffine(c.rightTris[i].P, tri.P)
		if err != nil {
			f.Stats.Degenerate++
			continue
		}
		f.Stats.Faces++
		for _, p := range tri.Pixels() {
			c.blend(f, p, lt.Map(p), rt.Map(p), t)
		}
	}
}

// crossFade blends both images pixel by pixel without any warp.
func (c *Compositor) crossFade(f *Frame, t float64) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := Point{X: x, Y: y}
			c.blend(f, p, p, p, t)
		}
	}
}

// sample is a source pixel together with its mask weight.
type sample struct {
	r, g, b float64
	weight  float64
}

// sampleAt reads a pixel and its mask weight. It fails with ErrOutOfBounds
// when p lies outside the image.
func sampleAt(img *image.NRGBA, mask *ClipMask, p Point) (sample, error) {
	w, ok := mask.At(p.X, p.Y)
	if !ok || !p.in(img.Bounds()) {
		return sample{}, ErrOutOfBounds
	}
	i := img.PixOffset(p.X, p.Y)
	return sample{
		r:      float64(img.Pix[i]),
		g:      float64(img.Pix[i+1]),
		b:      float64(img.Pix[i+2]),
		weight: w,
	}, nil
}

// blend writes destination pixel p from the left sample at lp and the right
// sample at rp. A side falling outside its image contributes nothing.
func (c *Compositor) blend(f *Frame, p, lp, rp Point, t float64) {
	if !p.in(f.Image.Bounds()) {
		return
	}
	ls, lerr := sampleAt(c.left, c.leftMask, lp)
	if lerr != nil {
		f.Stats.OutOfBounds++
	}
	rs, rerr := sampleAt(c.right, c.rightMask, rp)
	if rerr != nil {
		f.Stats.OutOfBounds++
	}
	if lerr != nil && rerr != nil {
		return
	}

	lw, rw := weights(ls.weight, rs.weight, t)
	i := f.Image.PixOffset(p.X, p.Y)
	f.Image.Pix[i] = channel(ls.r*lw + rs.r*rw)
	f.Image.Pix[i+1] = channel(ls.g*lw + rs.g*rw)
	f.Image.Pix[i+2] = channel(ls.b*lw + rs.b*rw)
	f.Image.Pix[i+3] = 0xff
	f.Stats.Pixels++
}

// weights couples the ratio with both mask weights, so that pixels outside
// one region lean towards the other image. The weights always sum to one.
func weights(lm, rm, t float64) (float64, float64) {
	lw := (1 - rm) + (1-t)*(lm-(1-rm))
	rw := (1 - lm) + t*(rm-(1-lm))
	return lw, rw
}

func channel(v float64) uint8 {
	return uint8(Clamp(math.Round(v), 0, 255))
}
