package glider

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"

	"rawcanvas/canvas"
	"rawcanvas/export"
	"rawcanvas/parallel"
	"rawcanvas/pattern"
)

type CLICmd struct {
	Width  int    `help:"Canvas width in pixels" default:"32" group:"canvas"`
	Height int    `help:"Canvas height in pixels" default:"32" group:"canvas"`
	Bg     string `help:"Background color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#3A22BD" group:"canvas"`
	Fg     string `help:"Glider color as #RGB, #RGBA, #RRGGBB or #RRGGBBAA" default:"#FFFFFF" group:"pattern"`
	X0     int    `name:"x0" help:"Horizontal offset of the glider, in pixels" default:"22" group:"pattern"`
	Y0     int    `name:"y0" help:"Vertical offset of the glider, in pixels" default:"16" group:"pattern"`
	Cell   int    `help:"Size of a glider cell, in pixels" default:"1" group:"pattern"`
	Out    string `help:"Output file" default:"canvas-rgba.data" type:"path" group:"output"`
	Format string `help:"Output format. 'auto' picks it from the file extension, .data and .raw meaning raw RGBA" enum:"auto,raw,png,bmp,tiff,gif,jpeg" default:"auto" group:"output"`
	Scale  int    `help:"Integer upscale factor for encoded formats" default:"1" group:"output"`

	BgColor   canvas.Color  `kong:"-"`
	FgColor   canvas.Color  `kong:"-"`
	OutFormat export.Format `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var err error

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size: %dx%d", c.Width, c.Height)
	}
	if c.Cell < 1 {
		return fmt.Errorf("invalid cell size: %d", c.Cell)
	}
	if c.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}

	if c.BgColor, err = canvas.ParseHex(c.Bg); err != nil {
		return fmt.Errorf("invalid background: %w", err)
	}
	if c.FgColor, err = canvas.ParseHex(c.Fg); err != nil {
		return fmt.Errorf("invalid foreground: %w", err)
	}

	if c.Out, err = filepath.Abs(c.Out); err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Out, err)
	}

	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if c.OutFormat, err = export.Resolve(f, c.Out); err != nil {
		return fmt.Errorf("cannot pick a format for %q, use --format: %w", c.Out, err)
	}
	if c.OutFormat == export.Raw && c.Scale != 1 {
		return fmt.Errorf("raw output cannot be scaled")
	}

	return nil
}

// Run draws the glider scene and writes it out. The canvas is released on
// every path out of Run.
func (c *CLICmd) Run(pool *parallel.Pool) error {
	logger := slog.Default().With("width", c.Width, "height", c.Height)

	cv, err := canvas.New(c.Width, c.Height)
	if err != nil {
		return fmt.Errorf("could not create canvas: %w", err)
	}
	defer cv.Release()

	logger.Debug("filling background", "color", c.BgColor, "workers", pool.Workers())
	cv.FillParallel(pool, c.BgColor)

	origin := image.Pt(c.X0, c.Y0)
	cells := pattern.Glider()
	if b := pattern.Bounds(cells, origin, c.Cell); !b.In(cv.Bounds()) {
		logger.Warn("glider does not fit the canvas and will be clipped", "glider", b)
	}
	pattern.Draw(cv, cells, origin, c.Cell, c.FgColor)

	if err := export.Save(cv, c.Out, c.OutFormat, c.Scale); err != nil {
		return fmt.Errorf("could not save canvas: %w", err)
	}

	slog.Info("wrote pixel data", "file", c.Out, "format", c.OutFormat)
	return nil
}
