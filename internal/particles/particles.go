// Package particles drives the decorative background particle field: seeded
// free-floating dots with optional neighbor links, integrated each frame
// against the window bounds.
package particles

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/npillmayer/schuko/tracing"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
)

// tracer writes to trace with key 'fx.particles'
func tracer() tracing.Trace {
	return tracing.Select("fx.particles")
}

var (
	ErrBadBounds      = errors.New("particles: bounds must be positive")
	ErrBadOutMode     = errors.New("particles: unknown out mode")
	ErrBadShape       = errors.New("particles: unknown shape")
	ErrBadInteraction = errors.New("particles: unrecognized interaction mode")
)

// OutMode selects what happens when a particle leaves the window.
type OutMode int

const (
	// OutWrap lets particles exit one edge and re-enter from the opposite one.
	OutWrap OutMode = iota
	// OutBounce reflects particles off the window edges.
	OutBounce
)

// ParseOutMode maps the configuration spelling of an out mode to its value.
// The empty string selects OutWrap.
func ParseOutMode(s string) (OutMode, error) {
	switch s {
	case "", "out", "wrap":
		return OutWrap, nil
	case "bounce":
		return OutBounce, nil
	}
	return OutWrap, fmt.Errorf("%w: %q", ErrBadOutMode, s)
}

// Shape selects the geometry particles are drawn as.
type Shape int

const (
	ShapeCircle Shape = iota
	// ShapeEdge is an axis-aligned square, under the original effect's name
	// for it.
	ShapeEdge
	ShapeTriangle
)

// ParseShape maps the configuration spelling of a particle shape to its
// value. The empty string selects ShapeCircle.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "", "circle":
		return ShapeCircle, nil
	case "edge", "square":
		return ShapeEdge, nil
	case "triangle":
		return ShapeTriangle, nil
	}
	return ShapeCircle, fmt.Errorf("%w: %q", ErrBadShape, s)
}

// Interactivity mirrors the hover/click settings of the original effect.
// The values are validated so configurations stay portable, but pointer
// input is not wired up; resize is the only input the scene reacts to.
type Interactivity struct {
	OnHover string // "", "grab", "bubble" or "repulse"
	OnClick string // "", "push", "remove", "bubble" or "repulse"
}

// Validate rejects interaction modes the original effect does not know.
func (iv Interactivity) Validate() error {
	if !validHover(iv.OnHover) {
		return fmt.Errorf("%w: hover %q", ErrBadInteraction, iv.OnHover)
	}
	if !validClick(iv.OnClick) {
		return fmt.Errorf("%w: click %q", ErrBadInteraction, iv.OnClick)
	}
	return nil
}

func validHover(mode string) bool {
	switch mode {
	case "", "grab", "bubble", "repulse":
		return true
	}
	return false
}

func validClick(mode string) bool {
	switch mode {
	case "", "push", "remove", "bubble", "repulse":
		return true
	}
	return false
}

// Options configure a particle System.
type Options struct {
	Count         int
	Shape         Shape
	Size          float64 // dot radius in pixels
	SizeJitter    float64 // per-particle radius spread, fraction of Size
	Speed         float64 // pixels per second
	Direction     float64 // heading in degrees when motion is not random
	RandomMotion  bool    // random headings with slow drift
	Out           OutMode
	LinkDistance  float64 // neighbor link threshold in pixels; <=0 disables links
	LinkWidth     float64
	Opacity       float64 // 0..1
	HueSpeed      float64 // hue cycling in degrees per second
	Interactivity Interactivity
	Seed          int64
}

// Particle is one dot of the field. Hue is the particle's fixed offset on
// the color wheel; the cycling phase lives on the System.
type Particle struct {
	Pos  geom.Vec2
	Vel  geom.Vec2
	Size float64
	Hue  float64
}

// Link names two particles close enough to connect. Strength is 1 when the
// particles coincide and falls to 0 at the link threshold.
type Link struct {
	A, B     int
	Strength float64
}

// jiggleRate is the heading drift of free-roaming particles, radians/second.
const jiggleRate = 1.6

// System owns the particle set. All methods are single-threaded; slices
// returned by accessors stay valid until the next Advance or Resize.
type System struct {
	opts Options
	rng  *rand.Rand
	w, h float64
	ps   []Particle
	hue  float64 // global cycling phase in degrees
}

// New spawns a particle field over a width x height window. Interaction
// settings are checked even though they drive nothing at runtime, so a bad
// configuration fails at startup rather than silently.
func New(opts Options, width, height float64) (*System, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrBadBounds, width, height)
	}
	if err := opts.Interactivity.Validate(); err != nil {
		return nil, err
	}
	if opts.Count < 0 {
		opts.Count = 0
	}
	if opts.Size <= 0 {
		opts.Size = 3
	}
	if opts.Speed < 0 {
		opts.Speed = 0
	}
	opts.SizeJitter = clamp01(opts.SizeJitter)
	opts.Opacity = clamp01(opts.Opacity)

	s := &System{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		w:    width,
		h:    height,
		ps:   make([]Particle, opts.Count),
	}
	for i := range s.ps {
		s.ps[i] = s.spawn(i)
	}
	tracer().Infof("particles: spawned %d over %.0fx%.0f", len(s.ps), width, height)
	return s, nil
}

func (s *System) spawn(i int) Particle {
	size := s.opts.Size * (1 + s.opts.SizeJitter*(2*s.rng.Float64()-1))
	if size < 0.5 {
		size = 0.5
	}
	heading := s.opts.Direction * math.Pi / 180
	speed := s.opts.Speed
	if s.opts.RandomMotion {
		heading = s.rng.Float64() * 2 * math.Pi
		speed *= 0.3 + 0.7*s.rng.Float64()
	}
	hue := 0.0
	if s.opts.Count > 0 {
		hue = float64(i) * 360 / float64(s.opts.Count)
	}
	return Particle{
		Pos:  geom.Vec2{X: s.rng.Float64() * s.w, Y: s.rng.Float64() * s.h},
		Vel:  geom.Vec2{X: math.Cos(heading) * speed, Y: math.Sin(heading) * speed},
		Size: size,
		Hue:  hue,
	}
}

// Advance integrates the field by dt. Trajectories are deterministic for a
// fixed seed and call sequence.
func (s *System) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	step := dt.Seconds()
	s.hue = math.Mod(s.hue+s.opts.HueSpeed*step, 360)

	for i := range s.ps {
		p := &s.ps[i]
		if s.opts.RandomMotion {
			da := (s.rng.Float64()*2 - 1) * jiggleRate * step
			sin, cos := math.Sincos(da)
			vx := p.Vel.X*cos - p.Vel.Y*sin
			p.Vel.Y = p.Vel.X*sin + p.Vel.Y*cos
			p.Vel.X = vx
		}
		p.Pos.X += p.Vel.X * step
		p.Pos.Y += p.Vel.Y * step
		switch s.opts.Out {
		case OutBounce:
			s.bounce(p)
		default:
			s.wrap(p)
		}
	}
}

// wrap re-enters a particle from the opposite edge once it is fully outside.
func (s *System) wrap(p *Particle) {
	r := p.Size
	switch {
	case p.Pos.X < -r:
		p.Pos.X = s.w + r
	case p.Pos.X > s.w+r:
		p.Pos.X = -r
	}
	switch {
	case p.Pos.Y < -r:
		p.Pos.Y = s.h + r
	case p.Pos.Y > s.h+r:
		p.Pos.Y = -r
	}
}

func (s *System) bounce(p *Particle) {
	r := p.Size
	if p.Pos.X < r {
		p.Pos.X = r
		p.Vel.X = math.Abs(p.Vel.X)
	} else if p.Pos.X > s.w-r {
		p.Pos.X = s.w - r
		p.Vel.X = -math.Abs(p.Vel.X)
	}
	if p.Pos.Y < r {
		p.Pos.Y = r
		p.Vel.Y = math.Abs(p.Vel.Y)
	} else if p.Pos.Y > s.h-r {
		p.Pos.Y = s.h - r
		p.Vel.Y = -math.Abs(p.Vel.Y)
	}
}

// Resize rescales particle positions into the new bounds so the field keeps
// its distribution instead of clustering in the old corner.
func (s *System) Resize(width, height float64) {
	if width <= 0 || height <= 0 || (width == s.w && height == s.h) {
		return
	}
	sx, sy := width/s.w, height/s.h
	for i := range s.ps {
		s.ps[i].Pos.X *= sx
		s.ps[i].Pos.Y *= sy
	}
	s.w, s.h = width, height
	tracer().Debugf("particles: resized to %.0fx%.0f", width, height)
}

// Particles returns the live particle slice, owned by the System.
func (s *System) Particles() []Particle { return s.ps }

// Links pairs up particles within the link distance, each pair once with
// A < B.
func (s *System) Links() []Link {
	d := s.opts.LinkDistance
	if d <= 0 || len(s.ps) < 2 {
		return nil
	}
	var links []Link
	for i := 0; i < len(s.ps)-1; i++ {
		for j := i + 1; j < len(s.ps); j++ {
			dist := s.ps[i].Pos.Distance(s.ps[j].Pos)
			if dist <= d {
				links = append(links, Link{A: i, B: j, Strength: 1 - dist/d})
			}
		}
	}
	return links
}

// Hue returns the global hue cycling phase in degrees.
func (s *System) Hue() float64 { return s.hue }

// Shape returns the geometry particles should be drawn as.
func (s *System) Shape() Shape { return s.opts.Shape }

func (s *System) Count() int { return len(s.ps) }

func (s *System) Opacity() float64 { return s.opts.Opacity }

func (s *System) LinkWidth() float64 { return s.opts.LinkWidth }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
