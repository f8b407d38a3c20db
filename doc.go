/*
Package morph blends two portrait images into a sequence of intermediate frames.

Both images carry a control grid of the same shape and a control polygon. The grids
are averaged and triangulated once; every frame then interpolates the grid points for
its ratio, solves one affine map per triangle towards each source image and blends the
two sampled colours, weighted by feathered masks built from the polygons.

The package provides a command line utility. Check the supported flags by typing:

	$ morph --help

Example to generate five intermediate frames between two images:

	package main

	import (
		"context"
		"fmt"
		"image/png"
		"os"

		"github.com/esimov/morph"
	)

	func main() {
		p := &morph.Processor{Config: morph.DefaultConfig()}

		in := morph.Input{
			Left:  leftImg,
			Right: rightImg,
			// Grids and polygons default to an even mesh and a centred circle.
		}
		_, err := p.Process(context.Background(), in, func(f *morph.Frame) error {
			out, err := os.Create(fmt.Sprintf("frame_%03d.png", f.Index))
			if err != nil {
				return err
			}
			defer out.Close()
			return png.Encode(out, f.Image)
		})
		if err != nil {
			fmt.Printf("Error on morph process: %s", err.Error())
		}
	}
*/
package morph
