package scene

import "time"

// frameRing records the last N frame deltas so the HUD can smooth its fps
// readout over a window of recent frames.
type frameRing struct {
	buf  []time.Duration
	next int
	full bool
}

func newFrameRing(size int) *frameRing {
	if size < 1 {
		size = 1
	}
	return &frameRing{buf: make([]time.Duration, size)}
}

func (r *frameRing) record(dt time.Duration) {
	r.buf[r.next] = dt
	r.next++
	if r.next >= len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// size is the number of deltas recorded so far, capped at the ring length.
func (r *frameRing) size() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// fps averages the most recent n deltas. Zero while nothing meaningful has
// been recorded.
func (r *frameRing) fps(n int) float64 {
	if n > r.size() {
		n = r.size()
	}
	if n == 0 {
		return 0
	}
	// Walk backwards from next - 1
	var sum time.Duration
	idx := r.next - 1
	for i := 0; i < n; i++ {
		if idx < 0 {
			idx = len(r.buf) - 1
		}
		sum += r.buf[idx]
		idx--
	}
	if sum <= 0 {
		return 0
	}
	return float64(n) / sum.Seconds()
}
