// Package typing renders the headline as a typewriter effect: each string is
// typed, held, backspaced and replaced by the next, with an optional smart
// backspace that keeps the common prefix of consecutive strings.
package typing

import (
	"math/rand"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fx.typing'
func tracer() tracing.Trace {
	return tracing.Select("fx.typing")
}

// blinkInterval is the half period of the cursor blink.
const blinkInterval = 500 * time.Millisecond

// Options configure a Writer. Durations at or below zero complete the
// affected stage instantly.
type Options struct {
	Strings        []string      // lines to rotate through
	TypeSpeed      time.Duration // delay per typed character
	StartDelay     time.Duration // delay before the first character
	BackSpeed      time.Duration // delay per erased character
	BackDelay      time.Duration // dwell after a line is complete
	Shuffle        bool          // randomize line order each pass
	Loop           bool          // start over after the last line
	LoopCount      int           // passes before stopping; <=0 means forever
	ShowCursor     bool
	CursorChar     string
	SmartBackspace bool  // only erase back to the shared prefix
	Seed           int64 // shuffle seed
}

type state int

const (
	stateDelay state = iota
	stateTyping
	statePause
	stateErasing
	stateDone
)

// Writer is the typewriter state machine. Advance it with frame deltas and
// read the current line off Line.
type Writer struct {
	opts Options
	rng  *rand.Rand

	order []int  // string indices for the current pass
	idx   int    // position within order
	pass  int    // completed passes
	shown []rune // characters on screen
	line  []rune // line being typed
	next  []rune // successor line, fixed before erasing
	keep  int    // prefix length preserved while erasing

	state state
	wait  time.Duration // remaining dwell in delay and pause states
	acc   time.Duration // per-character time accumulator
	blink time.Duration
}

// NewWriter builds a writer over opts.Strings. An empty string list yields a
// writer that is immediately done.
func NewWriter(opts Options) *Writer {
	if opts.CursorChar == "" {
		opts.CursorChar = "|"
	}
	w := &Writer{
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		wait: opts.StartDelay,
	}
	if len(opts.Strings) == 0 {
		w.state = stateDone
		return w
	}
	w.order = w.passOrder()
	w.line = []rune(opts.Strings[w.order[0]])
	if opts.StartDelay <= 0 {
		w.state = stateTyping
	}
	return w
}

// passOrder returns the string indices for one pass, shuffled when requested.
func (w *Writer) passOrder() []int {
	n := len(w.opts.Strings)
	if w.opts.Shuffle {
		return w.rng.Perm(n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// maxSteps bounds state hops per Advance so all-zero timing configurations
// cannot spin forever on a single frame.
const maxSteps = 64

// Advance moves the effect forward by dt. Deltas may vary freely between
// calls.
func (w *Writer) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	w.blink = (w.blink + dt) % (2 * blinkInterval)

	for i := 0; dt > 0 && w.state != stateDone && i < maxSteps; i++ {
		dt = w.step(dt)
	}
}

// step consumes part of dt in the current state and returns what is left for
// the successor state.
func (w *Writer) step(dt time.Duration) time.Duration {
	switch w.state {
	case stateDelay:
		if w.wait > dt {
			w.wait -= dt
			return 0
		}
		dt -= w.wait
		w.wait = 0
		w.state = stateTyping
		return dt

	case stateTyping:
		return w.consumeChars(dt, w.opts.TypeSpeed, w.typeOne, w.doneTyping, w.finishLine)

	case statePause:
		if w.wait > dt {
			w.wait -= dt
			return 0
		}
		dt -= w.wait
		w.wait = 0
		w.beginErase()
		return dt

	case stateErasing:
		return w.consumeChars(dt, w.opts.BackSpeed, w.eraseOne, w.doneErasing, w.beginNext)
	}
	return 0
}

// consumeChars spends dt on per-character work at the given speed. A speed at
// or below zero finishes the stage instantly. The leftover time is returned
// once done reports completion and finish has run.
func (w *Writer) consumeChars(dt, speed time.Duration, one func(), done func() bool, finish func()) time.Duration {
	if speed <= 0 {
		for !done() {
			one()
		}
		finish()
		return dt
	}
	w.acc += dt
	for w.acc >= speed && !done() {
		w.acc -= speed
		one()
	}
	if done() {
		left := w.acc
		w.acc = 0
		finish()
		return left
	}
	return 0
}

func (w *Writer) typeOne() { w.shown = append(w.shown, w.line[len(w.shown)]) }

func (w *Writer) doneTyping() bool { return len(w.shown) >= len(w.line) }

func (w *Writer) eraseOne() { w.shown = w.shown[:len(w.shown)-1] }

func (w *Writer) doneErasing() bool { return len(w.shown) <= w.keep }

// finishLine decides what follows a fully typed line: rest on it, or stop for
// good when the rotation is over.
func (w *Writer) finishLine() {
	last := w.idx == len(w.order)-1
	if last {
		w.pass++
		if !w.opts.Loop || (w.opts.LoopCount > 0 && w.pass >= w.opts.LoopCount) {
			w.state = stateDone
			tracer().Debugf("typing: finished after %d passes", w.pass)
			return
		}
	}
	w.next = []rune(w.opts.Strings[w.successor()])
	w.state = statePause
	w.wait = w.opts.BackDelay
	if w.wait <= 0 {
		w.beginErase()
	}
}

// successor returns the string index that follows the current line, rolling
// over into a fresh pass order when the current one is exhausted.
func (w *Writer) successor() int {
	if w.idx+1 < len(w.order) {
		return w.order[w.idx+1]
	}
	w.order = w.passOrder()
	w.idx = -1
	return w.order[0]
}

// beginErase fixes how much of the line survives the backspace run.
func (w *Writer) beginErase() {
	w.keep = 0
	if w.opts.SmartBackspace {
		w.keep = commonPrefix(w.shown, w.next)
	}
	w.state = stateErasing
}

// beginNext swaps in the successor line and starts typing its remainder.
func (w *Writer) beginNext() {
	w.idx++
	w.line = w.next
	w.state = stateTyping
}

// commonPrefix returns the length of the shared leading run of a and b.
func commonPrefix(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// Line returns the text to display, cursor included when enabled and in its
// visible blink half.
func (w *Writer) Line() string {
	s := string(w.shown)
	if w.opts.ShowCursor && w.blink < blinkInterval {
		s += w.opts.CursorChar
	}
	return s
}

// Text returns the typed characters without the cursor.
func (w *Writer) Text() string { return string(w.shown) }

// Done reports whether the rotation has come to rest.
func (w *Writer) Done() bool { return w.state == stateDone }
