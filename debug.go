package morph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// DrawMesh renders the faces of the mesh over pts as a wireframe on a
// black width x height canvas.
func DrawMesh(m *Mesh, pts []Point, width, height int, lineColor color.Color, lineWidth float64) image.Image {
	ctx := gg.NewContext(width, height)
	ctx.DrawRectangle(0, 0, float64(width), float64(height))
	ctx.SetRGB(0, 0, 0)
	ctx.Fill()

	ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
	ctx.SetLineWidth(lineWidth)
	for _, f := range m.Faces {
		c := m.Corners(f, pts)
		ctx.MoveTo(float64(c[0].X), float64(c[0].Y))
		ctx.LineTo(float64(c[1].X), float64(c[1].Y))
		ctx.LineTo(float64(c[2].X), float64(c[2].Y))
		ctx.ClosePath()
		ctx.Stroke()
	}
	return ctx.Image()
}

// DrawPolygon renders the control polygon over img.
func DrawPolygon(img image.Image, poly ControlPolygon, lineColor color.Color, lineWidth float64) image.Image {
	ctx := gg.NewContextForImage(img)
	ctx.SetStrokeStyle(gg.NewSolidPattern(lineColor))
	ctx.SetLineWidth(lineWidth)
	for i, p := range poly {
		if i == 0 {
			ctx.MoveTo(float64(p.X), float64(p.Y))
			continue
		}
		ctx.LineTo(float64(p.X), float64(p.Y))
	}
	ctx.ClosePath()
	ctx.Stroke()

	return ctx.Image()
}

// MaskImage converts the mask into a grayscale preview, white being a
// weight of one.
func MaskImage(m *ClipMask) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := m.Values[y*m.Width+x]
			img.Pix[img.PixOffset(x, y)] = channel(v * 255)
		}
	}
	return img
}
