package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"rawcanvas/glider"
	"rawcanvas/parallel"
)

type cli struct {
	Workers  int    `help:"Number of workers used to fill the canvas, 0 means one per CPU" default:"0"`
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info"`

	Glider glider.CLICmd `cmd:"" default:"withargs" help:"Draw a glider on a canvas and save it (raw RGBA by default)"`
}

func (c *cli) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("rawcanvas"),
		kong.Description("Render small pixel scenes into an in-memory BGRA canvas and dump them to disk."),
		kong.UsageOnError(),
	)
	slog.SetDefault(c.logger())

	pool := parallel.Start(c.Workers)
	err := kctx.Run(pool)
	pool.Close()
	kctx.FatalIfErrorf(err)
}
