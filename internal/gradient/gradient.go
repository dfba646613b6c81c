// Package gradient animates the two-color background wash. The palette is a
// list of top/bottom color pairs; transitions between entries are driven by a
// spring so each blend eases in and settles softly.
package gradient

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fx.gradient'
func tracer() tracing.Trace {
	return tracing.Select("fx.gradient")
}

// ErrEmptyPalette indicates an options record without color pairs.
var ErrEmptyPalette = errors.New("gradient palette must not be empty")

// ErrBadColor indicates a palette entry that does not parse as hex.
var ErrBadColor = errors.New("gradient palette color is not valid hex")

// springRate is the fixed substep the spring integrates at; frame deltas are
// accumulated and consumed in these steps so pacing does not change the path.
const springRate = time.Second / 60

// settleEpsilon bounds position and velocity below which a transition counts
// as finished.
const settleEpsilon = 1e-3

// Options configure an Animator.
type Options struct {
	Palette          [][2]string   // hex top/bottom pairs, cycled in order
	Hold             time.Duration // dwell time on a pair before blending on
	AngularFrequency float64       // spring stiffness
	Damping          float64       // spring damping ratio
}

// Animator cycles the background palette. Advance it with frame deltas and
// read the current pair off Colors.
type Animator struct {
	pairs  [][2]colorful.Color
	hold   time.Duration
	idx    int
	spring harmonica.Spring
	pos    float64
	vel    float64
	dwell  time.Duration // time left on the current pair
	acc    time.Duration // spring substep accumulator
}

// New parses the palette and prepares the spring. At least one valid pair is
// required.
func New(opts Options) (*Animator, error) {
	if len(opts.Palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if opts.AngularFrequency <= 0 {
		opts.AngularFrequency = 2.5
	}
	if opts.Damping <= 0 {
		opts.Damping = 1
	}

	pairs := make([][2]colorful.Color, len(opts.Palette))
	for i, p := range opts.Palette {
		top, err := colorful.Hex(p[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadColor, p[0])
		}
		bottom, err := colorful.Hex(p[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadColor, p[1])
		}
		pairs[i] = [2]colorful.Color{top, bottom}
	}

	return &Animator{
		pairs:  pairs,
		hold:   opts.Hold,
		spring: harmonica.NewSpring(harmonica.FPS(60), opts.AngularFrequency, opts.Damping),
		dwell:  opts.Hold,
	}, nil
}

// Advance moves the palette animation forward by dt.
func (a *Animator) Advance(dt time.Duration) {
	if dt <= 0 || len(a.pairs) < 2 {
		return
	}

	// Sit on the current pair first.
	if a.dwell > 0 {
		if dt < a.dwell {
			a.dwell -= dt
			return
		}
		dt -= a.dwell
		a.dwell = 0
	}

	a.acc += dt
	for a.acc >= springRate {
		a.acc -= springRate
		a.pos, a.vel = a.spring.Update(a.pos, a.vel, 1)

		if a.pos > 1-settleEpsilon && a.vel < settleEpsilon && a.vel > -settleEpsilon {
			a.idx = (a.idx + 1) % len(a.pairs)
			a.pos, a.vel = 0, 0
			a.dwell = a.hold
			tracer().Debugf("gradient: advanced to palette entry %d", a.idx)
			break
		}
	}
}

// Colors returns the current top and bottom colors, blended between the
// active palette pair and its successor by the spring position.
func (a *Animator) Colors() (top, bottom colorful.Color) {
	cur := a.pairs[a.idx]
	next := a.pairs[(a.idx+1)%len(a.pairs)]
	t := clamp01(a.pos)
	return cur[0].BlendRgb(next[0], t), cur[1].BlendRgb(next[1], t)
}

// PaletteIndex returns the index of the active palette pair.
func (a *Animator) PaletteIndex() int { return a.idx }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
