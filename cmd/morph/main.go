package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/esimov/morph"
	"github.com/esimov/morph/internal/project"
	"github.com/esimov/morph/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
)

const helperBanner = `
┌┬┐┌─┐┬─┐┌─┐┬ ┬
│││├ ┤├┬┘├─┘├─┤
┴ ┴└─┘┴└─┴  ┴ ┴

Portrait morphing tool
`

// options collects the command line flags.
type options struct {
	left, right string
	project     string
	saveProject string
	output      string
	format      string
	steps       int
	rows        int
	cols        int
	radius      int
	topology    string
	grayscale   bool
	debug       bool
	verbose     bool
}

func main() {
	var opts options

	def := morph.DefaultConfig()
	flag.StringVar(&opts.left, "left", "", "Left source image (path or URL)")
	flag.StringVar(&opts.right, "right", "", "Right source image (path or URL)")
	flag.StringVar(&opts.project, "project", "", "Project file (.yaml, .yml or .toml)")
	flag.StringVar(&opts.saveProject, "save", "", "Save the resolved project to this file")
	flag.StringVar(&opts.output, "out", "output", "Destination directory")
	flag.StringVar(&opts.format, "format", "png", "Frame format: png or jpg")
	flag.IntVar(&opts.steps, "steps", def.Steps, "Number of morph steps")
	flag.IntVar(&opts.rows, "rows", def.Rows, "Rows of the control grid")
	flag.IntVar(&opts.cols, "cols", def.Cols, "Columns of the control grid")
	flag.IntVar(&opts.radius, "radius", def.FeatherRadius, "Feather radius of the polygon masks")
	flag.StringVar(&opts.topology, "topology", string(def.Topology), "Mesh topology: delaunay or grid")
	flag.BoolVar(&opts.grayscale, "gray", false, "Convert the frames to grayscale")
	flag.BoolVar(&opts.debug, "debug", false, "Write mesh wireframes and mask previews")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helperBanner)
		flag.PrintDefaults()
	}
	flag.Parse()

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))
	level := zerolog.WarnLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isTerm}).
		Level(level).
		With().
		Timestamp().
		Logger()
	morph.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, isTerm); err != nil {
		fmt.Fprintln(os.Stderr, utils.Decorate("Error: "+err.Error(), utils.ErrorColor, isTerm))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, isTerm bool) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	proj, err := loadProject(opts)
	if err != nil {
		return err
	}
	if proj.Left.Image == "" || proj.Right.Image == "" {
		return errors.New("usage: morph -left left.jpg -right right.jpg [-project project.yaml]")
	}
	left, err := decodeImage(proj.Left.Image)
	if err != nil {
		return errors.Wrap(err, "left image")
	}
	right, err := decodeImage(proj.Right.Image)
	if err != nil {
		return errors.Wrap(err, "right image")
	}
	if err := os.MkdirAll(opts.output, 0o755); err != nil {
		return errors.Wrap(err, "unable to create destination directory")
	}

	in, err := proj.Input(left, right)
	if err != nil {
		return err
	}
	if opts.saveProject != "" {
		if err := proj.Save(opts.saveProject); err != nil {
			return err
		}
	}

	var spinner *utils.Spinner
	if isTerm {
		spinner = utils.NewSpinner(os.Stderr)
		spinner.Start("Morphing...")
	}
	p := &morph.Processor{
		Config: proj.Config,
		OnProgress: func(index, total int) {
			if spinner != nil {
				spinner.SetMessage(fmt.Sprintf("Morphing frame %d/%d", index, total))
			}
		},
	}

	start := time.Now()
	res, err := p.Process(ctx, in, func(f *morph.Frame) error {
		return saveFrame(filepath.Join(opts.output, frameName(f.Index, opts.format)), f.Image, opts.format)
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if opts.debug {
		if err := writeDebug(opts.output, res, left, right); err != nil {
			return err
		}
	}

	status := fmt.Sprintf("%d frames %s in %s", res.Frames, res.Status, utils.FormatTime(time.Since(start)))
	if res.Status == morph.StatusCancelled {
		fmt.Fprintln(os.Stderr, utils.Decorate(status, utils.ErrorColor, isTerm))
		return nil
	}
	fmt.Fprintln(os.Stderr, utils.Decorate(status+" ✓", utils.SuccessColor, isTerm))

	return nil
}

// loadProject reads the project file, if any, and applies the flags set
// explicitly on the command line on top of it.
func loadProject(opts options) (*project.Project, error) {
	proj := project.New()
	if opts.project != "" {
		var err error
		if proj, err = project.Load(opts.project); err != nil {
			return nil, err
		}
	}

	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "left":
			proj.Left.Image = opts.left
		case "right":
			proj.Right.Image = opts.right
		case "steps":
			proj.Config.Steps = opts.steps
		case "rows":
			proj.Config.Rows = opts.rows
			proj.Left.Grid, proj.Right.Grid = nil, nil
		case "cols":
			proj.Config.Cols = opts.cols
			proj.Left.Grid, proj.Right.Grid = nil, nil
		case "radius":
			proj.Config.FeatherRadius = opts.radius
		case "gray":
			proj.Config.Grayscale = opts.grayscale
		case "topology":
			proj.Config.Topology, err = morph.ParseTopology(opts.topology)
		}
	})
	if err != nil {
		return nil, err
	}
	return proj, proj.Config.Validate()
}

func decodeImage(src string) (image.Image, error) {
	var (
		file *os.File
		err  error
	)
	if utils.IsURL(src) {
		file, err = utils.DownloadImage(src)
		if err == nil {
			defer os.Remove(file.Name())
		}
	} else {
		file, err = os.Open(src)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", src)
	}
	return img, nil
}

// checkFormat rejects frame formats the encoder does not support.
func checkFormat(format string) error {
	switch format {
	case "png", "jpg", "jpeg":
		return nil
	}
	return errors.Errorf("unsupported frame format %q, use png, jpg or jpeg", format)
}

func frameName(index int, format string) string {
	ext := "png"
	if format == "jpg" || format == "jpeg" {
		ext = "jpg"
	}
	return fmt.Sprintf("frame_%03d.%s", index, ext)
}

func saveFrame(path string, img image.Image, format string) error {
	fq, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fq.Close()

	return encode(fq, img, format)
}

func encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	default:
		return png.Encode(w, img)
	}
}

// writeDebug stores the left, averaged and right triangulations and both
// masks next to the frames.
func writeDebug(dir string, res *morph.Run, left, right image.Image) error {
	lineColor := color.RGBA{R: 0, G: 255, B: 255, A: 255}
	lb, rb := left.Bounds(), right.Bounds()
	w := morph.Max(lb.Dx(), rb.Dx())
	h := morph.Max(lb.Dy(), rb.Dy())

	images := map[string]image.Image{
		"mesh_left.png":  morph.DrawMesh(res.Mesh, res.Mesh.Left, lb.Dx(), lb.Dy(), lineColor, 1),
		"mesh_mid.png":   morph.DrawMesh(res.Mesh, res.Mesh.Mid, w, h, lineColor, 1),
		"mesh_right.png": morph.DrawMesh(res.Mesh, res.Mesh.Right, rb.Dx(), rb.Dy(), lineColor, 1),
		"mask_left.png":  morph.MaskImage(res.LeftMask),
		"mask_right.png": morph.MaskImage(res.RightMask),
		"poly_left.png":  morph.DrawPolygon(left, res.LeftPolygon, lineColor, 2),
		"poly_right.png": morph.DrawPolygon(right, res.RightPolygon, lineColor, 2),
	}
	for name, img := range images {
		if err := saveFrame(filepath.Join(dir, name), img, "png"); err != nil {
			return errors.Wrapf(err, "writing %s", name)
		}
	}
	return nil
}
