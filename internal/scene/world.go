// Package scene hosts the game loop. It owns one animator per effect, feeds
// them real frame deltas, and draws them back to front: gradient, particles,
// ribbon fills, ribbon strands, headline. A window resize tears the ribbon
// down and rebuilds it at the new size; the other effects carry across.
package scene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/schuko/tracing"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/config"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/gradient"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/noise"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/particles"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/ribbon"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/typing"
)

// tracer writes to trace with key 'fx.scene'
func tracer() tracing.Trace {
	return tracing.Select("fx.scene")
}

// maxDelta caps the frame delta so a stalled window does not fast-forward
// every animation when rendering resumes.
const maxDelta = 250 * time.Millisecond

// ringFrames is how many recent frame deltas the HUD fps readout can see.
const ringFrames = 120

// World implements ebiten.Game over the four effect animators.
type World struct {
	cfg *config.Config

	field  *noise.Field
	cam    geom.Camera
	anim   *ribbon.Animator
	grad   *gradient.Animator
	writer *typing.Writer
	parts  *particles.System

	strandColors []colorful.Color

	width, height int // size the scene is built for
	lw, lh        int // latest layout size reported by ebiten

	last    time.Time
	started bool
	paused  bool
	hud     bool
	uptime  time.Duration
	ring    *frameRing
}

// NewWorld builds the scene for a validated configuration. Any collaborator
// that cannot start from the configuration fails construction.
func NewWorld(cfg *config.Config) (*World, error) {
	w := &World{
		cfg:    cfg,
		field:  noise.New(cfg.Seed),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		lw:     cfg.Window.Width,
		lh:     cfg.Window.Height,
		hud:    cfg.ShowHUD,
		ring:   newFrameRing(ringFrames),
	}

	for _, hex := range cfg.Ribbon.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, err
		}
		w.strandColors = append(w.strandColors, c)
	}

	grad, err := gradient.New(gradient.Options{
		Palette:          cfg.Gradient.Palette,
		Hold:             cfg.Gradient.Hold(),
		AngularFrequency: cfg.Gradient.Frequency,
		Damping:          cfg.Gradient.Damping,
	})
	if err != nil {
		return nil, err
	}
	w.grad = grad

	w.writer = typing.NewWriter(typing.Options{
		Strings:        cfg.Typing.Strings,
		TypeSpeed:      cfg.Typing.TypeSpeed(),
		StartDelay:     cfg.Typing.StartDelay(),
		BackSpeed:      cfg.Typing.BackSpeed(),
		BackDelay:      cfg.Typing.BackDelay(),
		Shuffle:        cfg.Typing.Shuffle,
		Loop:           cfg.Typing.Loop,
		LoopCount:      cfg.Typing.LoopCount,
		ShowCursor:     cfg.Typing.ShowCursor,
		CursorChar:     cfg.Typing.CursorChar,
		SmartBackspace: cfg.Typing.SmartBackspace,
		Seed:           cfg.Seed,
	})

	outMode, err := particles.ParseOutMode(cfg.Particles.OutMode)
	if err != nil {
		return nil, err
	}
	shape, err := particles.ParseShape(cfg.Particles.Shape)
	if err != nil {
		return nil, err
	}
	parts, err := particles.New(particles.Options{
		Count:        cfg.Particles.Count,
		Shape:        shape,
		Size:         cfg.Particles.Size,
		SizeJitter:   cfg.Particles.SizeJitter,
		Speed:        cfg.Particles.Speed,
		Direction:    cfg.Particles.Direction,
		RandomMotion: cfg.Particles.RandomMotion,
		Out:          outMode,
		LinkDistance: cfg.Particles.LinkDistance,
		LinkWidth:    cfg.Particles.LinkWidth,
		Opacity:      cfg.Particles.Opacity,
		HueSpeed:     cfg.Particles.HueSpeed,
		Interactivity: particles.Interactivity{
			OnHover: cfg.Particles.OnHover,
			OnClick: cfg.Particles.OnClick,
		},
		Seed: cfg.Seed,
	}, float64(cfg.Window.Width), float64(cfg.Window.Height))
	if err != nil {
		return nil, err
	}
	w.parts = parts

	w.cam = geom.NewCamera(cfg.Window.Width, cfg.Window.Height)
	w.anim = ribbon.New(w.field, w.ribbonOptions(cfg.Ribbon.StartIndex))

	tracer().Infof("scene: world ready at %dx%d", w.width, w.height)
	return w, nil
}

// ribbonOptions assembles animator options. The start index is a parameter
// so a rebuilt ribbon resumes on the curve that was showing.
func (w *World) ribbonOptions(startIndex int) ribbon.Options {
	r := w.cfg.Ribbon
	return ribbon.Options{
		StartIndex:    startIndex,
		StrandCount:   r.StrandCount,
		SampleCount:   r.SampleCount,
		ControlPoints: r.ControlPoints,
		Extent:        r.ExtentVec(),
		CurveJitter:   r.CurveJitter,
		BaseOffset:    r.BaseOffset,
		OffsetJitter:  r.OffsetJitter,
		DrawDuration:  r.DrawDuration(),
		HoldDuration:  r.HoldDuration(),
		MorphDuration: r.MorphDuration(),
		StaggerDelay:  r.StaggerDelay(),
		MorphStagger:  r.MorphStagger(),
		RotationSpeed: r.RotationSpeed,
	}
}

func (w *World) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused = !w.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		w.hud = !w.hud
	}

	if w.lw != w.width || w.lh != w.height {
		w.resize(w.lw, w.lh)
	}

	now := time.Now()
	var dt time.Duration
	if w.started {
		dt = now.Sub(w.last)
	}
	w.last = now
	w.started = true
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}

	w.ring.record(dt)
	if !w.paused {
		w.advance(dt)
	}
	return nil
}

// advance steps every animator by one frame delta.
func (w *World) advance(dt time.Duration) {
	w.uptime += dt
	w.anim.Advance(dt)
	w.grad.Advance(dt)
	w.writer.Advance(dt)
	w.parts.Advance(dt)
}

// resize rebuilds the camera and ribbon for the new surface and rescales the
// particle field. The retired ribbon is disposed before its replacement is
// built, so geometry is never held twice.
func (w *World) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	tracer().Infof("scene: resize %dx%d -> %dx%d", w.width, w.height, width, height)

	startIndex := w.anim.KindIndex()
	w.anim.Dispose()

	w.width, w.height = width, height
	w.cam = geom.NewCamera(width, height)
	w.anim = ribbon.New(w.field, w.ribbonOptions(startIndex))
	w.parts.Resize(float64(width), float64(height))
}

// Layout reports the last usable window size. A minimized window reports
// zero; the scene keeps its previous size until something real arrives.
func (w *World) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		w.lw, w.lh = outsideWidth, outsideHeight
	}
	return w.lw, w.lh
}
