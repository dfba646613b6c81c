package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"
	"github.com/npillmayer/schuko/tracing"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/config"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/scene"
)

// tracer writes to trace with key 'fx'
func tracer() tracing.Trace {
	return tracing.Select("fx")
}

// fatal reports a startup error in a dialog and on the trace, then exits
// without starting the render loop.
func fatal(err error) {
	tracer().Errorf("fatal: %v", err)
	_ = zenity.Error(err.Error(), zenity.Title("vvkmnn.github.io"))
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (defaults apply when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	world, err := scene.NewWorld(cfg)
	if err != nil {
		fatal(err)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " - Space: pause, H: hud, Esc/Q: quit")
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(world); err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(err)
	}
}
