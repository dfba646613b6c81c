package ribbon

import (
	"time"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/curve"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/noise"
)

// Phase names one stage of the ribbon cycle.
type Phase int

const (
	PhaseDrawing Phase = iota
	PhaseHolding
	PhaseMorphing
)

func (p Phase) String() string {
	switch p {
	case PhaseDrawing:
		return "drawing"
	case PhaseHolding:
		return "holding"
	case PhaseMorphing:
		return "morphing"
	}
	return "unknown"
}

// maxChain bounds how many phase transitions a single Advance may chain
// through, which keeps zero-duration configurations from spinning forever.
const maxChain = 16

// Options configure an Animator. Durations may be non-positive, in which
// case the affected stage completes instantly.
type Options struct {
	Catalog       []curve.Kind // curve kinds to cycle through; nil = full catalog
	StartIndex    int          // index into the catalog to draw first
	StrandCount   int          // parallel strands per ribbon
	SampleCount   int          // spine samples per strand (strand holds SampleCount+1 points)
	ControlPoints int          // control points per generated curve
	Extent        geom.Vec3    // stage half-extents
	CurveJitter   float64      // noise displacement of control points
	BaseOffset    float64      // lateral distance between neighbouring strands
	OffsetJitter  float64      // noise modulation of the lateral offset; 0 = fixed
	DrawDuration  time.Duration
	HoldDuration  time.Duration
	MorphDuration time.Duration
	StaggerDelay  time.Duration // per-strand start delay while drawing
	MorphStagger  time.Duration // per-strand start delay while morphing
	RotationSpeed float64       // group rotation in radians per second
}

type strand struct {
	lateral   float64
	positions []geom.Vec3
	progress  float64
	swapped   bool
}

// Animator owns the ribbon geometry and drives it through the drawing,
// holding and morphing phases. It is advanced by explicit time deltas and
// never consults a clock, so any frame pacing yields the same animation for
// the same accumulated time.
type Animator struct {
	opts    Options
	field   *noise.Field
	catalog []curve.Kind

	phase   Phase
	kindIdx int
	nextIdx int
	epoch   int
	elapsed time.Duration // time within the current phase
	total   time.Duration // time since construction

	cur        curve.Curve
	frames     []Frame
	nextCur    curve.Curve
	nextFrames []Frame
	strands    []strand
	targets    [][]geom.Vec3

	disposed bool
	releases int
}

// New builds the ribbon for the catalog entry at opts.StartIndex and starts
// it in the drawing phase.
func New(field *noise.Field, opts Options) *Animator {
	if len(opts.Catalog) == 0 {
		opts.Catalog = curve.Catalog()
	}
	if opts.StrandCount < 1 {
		opts.StrandCount = 1
	}
	if opts.SampleCount < 1 {
		opts.SampleCount = 1
	}

	a := &Animator{
		opts:    opts,
		field:   field,
		catalog: opts.Catalog,
	}
	n := len(a.catalog)
	a.kindIdx = ((opts.StartIndex % n) + n) % n

	a.cur = a.generate(a.kindIdx)
	a.frames = ComputeFrames(a.cur, opts.SampleCount)
	a.strands = make([]strand, opts.StrandCount)
	for i := range a.strands {
		lat := a.lateral(i)
		a.strands[i] = strand{
			lateral:   lat,
			positions: a.build(a.frames, lat),
		}
	}
	a.phase = PhaseDrawing

	tracer().Infof("ribbon: drawing %s with %d strands", a.cur.Kind(), opts.StrandCount)
	return a
}

// lateral returns strand i's offset; strands spread symmetrically around the
// spine.
func (a *Animator) lateral(i int) float64 {
	center := float64(a.opts.StrandCount-1) / 2
	return (float64(i) - center) * a.opts.BaseOffset
}

func (a *Animator) generate(idx int) curve.Curve {
	return curve.Generate(a.catalog[idx], a.field, curve.Params{
		Extent: a.opts.Extent,
		Points: a.opts.ControlPoints,
		Jitter: a.opts.CurveJitter,
		Epoch:  a.epoch,
	})
}

func (a *Animator) build(frames []Frame, lateral float64) []geom.Vec3 {
	return BuildStrandModulated(frames, lateral, a.field, a.opts.OffsetJitter)
}

// Advance moves the animation forward by dt. Deltas may vary from frame to
// frame; only accumulated time matters. Negative deltas are ignored and a
// disposed animator no longer advances.
func (a *Animator) Advance(dt time.Duration) {
	if a.disposed || dt < 0 {
		return
	}
	a.total += dt
	a.elapsed += dt

	for i := 0; i < maxChain; i++ {
		if !a.tryTransition() {
			break
		}
	}
	a.refreshStrands()
}

// phaseLength returns the full duration of the current phase including all
// strand staggering.
func (a *Animator) phaseLength() time.Duration {
	tail := time.Duration(len(a.strands) - 1)
	switch a.phase {
	case PhaseDrawing:
		return tail*clampDur(a.opts.StaggerDelay) + clampDur(a.opts.DrawDuration)
	case PhaseHolding:
		return clampDur(a.opts.HoldDuration)
	default:
		return tail*clampDur(a.opts.MorphStagger) + clampDur(a.opts.MorphDuration)
	}
}

// tryTransition advances to the next phase when the current one has run its
// course, carrying leftover time into the new phase. It reports whether a
// transition happened.
func (a *Animator) tryTransition() bool {
	need := a.phaseLength()
	if a.elapsed < need {
		return false
	}
	leftover := a.elapsed - need

	switch a.phase {
	case PhaseDrawing:
		a.enterHolding()
	case PhaseHolding:
		a.phase = PhaseMorphing
		tracer().Debugf("ribbon: morphing %s -> %s", a.cur.Kind(), a.nextCur.Kind())
	case PhaseMorphing:
		a.finishMorph()
		a.enterHolding()
	}
	a.elapsed = leftover
	return true
}

// enterHolding freezes the ribbon fully drawn and prepares the morph target:
// the successor kind is selected, generated at a fresh epoch, and its strand
// positions are prebuilt.
func (a *Animator) enterHolding() {
	a.phase = PhaseHolding
	a.nextIdx = (a.kindIdx + 1) % len(a.catalog)
	a.epoch++
	a.nextCur = a.generate(a.nextIdx)
	a.nextFrames = ComputeFrames(a.nextCur, a.opts.SampleCount)

	a.targets = make([][]geom.Vec3, len(a.strands))
	for i := range a.strands {
		a.targets[i] = a.build(a.nextFrames, a.strands[i].lateral)
		a.strands[i].progress = 1
		a.strands[i].swapped = false
	}
	tracer().Infof("ribbon: holding %s, next %s", a.cur.Kind(), a.nextCur.Kind())
}

// finishMorph completes any outstanding strand swaps and promotes the morph
// target to the current curve.
func (a *Animator) finishMorph() {
	for i := range a.strands {
		s := &a.strands[i]
		if !s.swapped {
			s.positions = a.targets[i]
			s.swapped = true
		}
		s.progress = 1
	}
	a.kindIdx = a.nextIdx
	a.cur = a.nextCur
	a.frames = a.nextFrames
}

// refreshStrands recomputes per-strand progress for the current phase. While
// morphing, the first half recedes the old shape and the second half redraws
// the new one; the position swap happens exactly at the halfway crossing.
func (a *Animator) refreshStrands() {
	switch a.phase {
	case PhaseDrawing:
		for i := range a.strands {
			start := time.Duration(i) * clampDur(a.opts.StaggerDelay)
			a.strands[i].progress = stageProgress(a.elapsed-start, a.opts.DrawDuration)
		}
	case PhaseHolding:
		for i := range a.strands {
			a.strands[i].progress = 1
		}
	case PhaseMorphing:
		for i := range a.strands {
			start := time.Duration(i) * clampDur(a.opts.MorphStagger)
			m := stageProgress(a.elapsed-start, a.opts.MorphDuration)
			s := &a.strands[i]
			if m < 0.5 {
				s.progress = 1 - 2*m
				continue
			}
			if !s.swapped {
				s.positions = a.targets[i]
				s.swapped = true
			}
			s.progress = 2*m - 1
		}
	}
}

// stageProgress maps elapsed time within one staggered stage to [0, 1].
// Stages that have not started yet report 0; non-positive durations complete
// instantly once started.
func stageProgress(t, dur time.Duration) float64 {
	if t < 0 {
		return 0
	}
	if dur <= 0 || t >= dur {
		return 1
	}
	return float64(t) / float64(dur)
}

func clampDur(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Phase returns the current phase.
func (a *Animator) Phase() Phase { return a.phase }

// Rotation returns the accumulated group rotation in radians. It grows
// continuously with advanced time, independent of the phase.
func (a *Animator) Rotation() float64 {
	return a.opts.RotationSpeed * a.total.Seconds()
}

// Elapsed returns the total time advanced since construction.
func (a *Animator) Elapsed() time.Duration { return a.total }

// KindIndex returns the catalog index of the curve currently on screen.
func (a *Animator) KindIndex() int { return a.kindIdx }

// NextKindIndex returns the catalog index the next morph targets.
func (a *Animator) NextKindIndex() int {
	return (a.kindIdx + 1) % len(a.catalog)
}

// CurrentKind returns the kind of the curve currently on screen.
func (a *Animator) CurrentKind() curve.Kind { return a.cur.Kind() }

// StrandCount returns the number of strands.
func (a *Animator) StrandCount() int { return len(a.strands) }

// StrandPositions returns strand i's sample positions. The slice is owned by
// the animator and is only valid until the next Advance or Dispose.
func (a *Animator) StrandPositions(i int) []geom.Vec3 {
	return a.strands[i].positions
}

// StrandProgress returns strand i's draw progress in [0, 1].
func (a *Animator) StrandProgress(i int) float64 {
	return a.strands[i].progress
}

// StrandVisible returns how many of strand i's samples are visible at its
// current progress. A fully drawn strand exposes all SampleCount+1 samples.
func (a *Animator) StrandVisible(i int) int {
	s := a.strands[i]
	return 1 + int(s.progress*float64(len(s.positions)-1))
}

// FillCount returns the number of fill patches; one spans each pair of
// neighbouring strands.
func (a *Animator) FillCount() int {
	if len(a.strands) < 2 {
		return 0
	}
	return len(a.strands) - 1
}

// FillBounds returns the indices of the two strands patch j spans.
func (a *Animator) FillBounds(j int) (int, int) { return j, j + 1 }

// FillVisible returns how many samples of patch j are visible. A patch never
// outruns either of its bounding strands.
func (a *Animator) FillVisible(j int) int {
	va := a.StrandVisible(j)
	vb := a.StrandVisible(j + 1)
	if vb < va {
		return vb
	}
	return va
}

// Dispose releases the strand and fill geometry. Advancing a disposed
// animator is a no-op, and disposing twice releases nothing further.
func (a *Animator) Dispose() {
	if a.disposed {
		return
	}
	a.disposed = true
	a.releases++
	a.strands = nil
	a.targets = nil
	a.frames = nil
	a.nextFrames = nil
	tracer().Debugf("ribbon: disposed after %s", a.total)
}

// Disposed reports whether Dispose has been called.
func (a *Animator) Disposed() bool { return a.disposed }
