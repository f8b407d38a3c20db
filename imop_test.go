package morph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImgToNRGBA(t *testing.T) {
	t.Run("nrgba at origin is returned as is", func(t *testing.T) {
		src := solid(4, 4, red)
		assert.Same(t, src, ImgToNRGBA(src))
	})

	t.Run("nrgba sub image", func(t *testing.T) {
		src := solid(6, 6, red)
		src.SetNRGBA(3, 2, blue)
		sub := src.SubImage(image.Rect(2, 2, 5, 5)).(*image.NRGBA)

		dst := ImgToNRGBA(sub)
		require.Equal(t, image.Rect(0, 0, 3, 3), dst.Bounds())
		assert.Equal(t, blue, dst.NRGBAAt(1, 0))
		assert.Equal(t, red, dst.NRGBAAt(0, 0))
		assert.Equal(t, red, dst.NRGBAAt(2, 2))
	})

	t.Run("gray", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 3, 2))
		src.SetGray(2, 1, color.Gray{Y: 90})

		dst := ImgToNRGBA(src)
		assert.Equal(t, color.NRGBA{R: 90, G: 90, B: 90, A: 255}, dst.NRGBAAt(2, 1))
		assert.Equal(t, color.NRGBA{A: 255}, dst.NRGBAAt(1, 1))
	})

	t.Run("rgba with offset", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(10, 10, 14, 13))
		src.SetRGBA(11, 12, color.RGBA{G: 255, A: 255})

		dst := ImgToNRGBA(src)
		require.Equal(t, image.Rect(0, 0, 4, 3), dst.Bounds())
		assert.Equal(t, color.NRGBA{G: 255, A: 255}, dst.NRGBAAt(1, 2))
	})
}

func TestGrayscale(t *testing.T) {
	src := solid(2, 2, color.NRGBA{R: 100, G: 150, B: 200, A: 128})
	dst := Grayscale(src)

	px := dst.NRGBAAt(1, 1)
	assert.Equal(t, uint8(140), px.R)
	assert.Equal(t, px.R, px.G)
	assert.Equal(t, px.R, px.B)
	assert.Equal(t, uint8(128), px.A)
	// Source untouched.
	assert.Equal(t, uint8(100), src.NRGBAAt(1, 1).R)
}

func TestGrayscale_SubImage(t *testing.T) {
	parent := solid(20, 20, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	parent.SetNRGBA(3, 4, red)

	// Zero origin sub image, passed through ImgToNRGBA with the parent stride.
	sub := parent.SubImage(image.Rect(0, 0, 10, 10)).(*image.NRGBA)
	dst := Grayscale(ImgToNRGBA(sub))
	require.Equal(t, image.Rect(0, 0, 10, 10), dst.Bounds())
	assert.Equal(t, uint8(59), dst.NRGBAAt(3, 4).R)
	assert.Equal(t, uint8(140), dst.NRGBAAt(9, 9).G)

	sub = parent.SubImage(image.Rect(5, 5, 15, 15)).(*image.NRGBA)
	dst = Grayscale(sub)
	require.Equal(t, sub.Bounds(), dst.Bounds())
	assert.Equal(t, color.NRGBA{R: 140, G: 140, B: 140, A: 255}, dst.NRGBAAt(14, 14))
}

func TestMinMaxClamp(t *testing.T) {
	assert.Equal(t, -2, Min(3, -2, 7))
	assert.Equal(t, 7, Max(3, -2, 7))
	assert.Equal(t, 1.5, Max(1.5))
	assert.Equal(t, 0, Clamp(-4, 0, 9))
	assert.Equal(t, 9, Clamp(12, 0, 9))
	assert.Equal(t, 4, Clamp(4, 0, 9))
}
