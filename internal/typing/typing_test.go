package typing

import (
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypesProgressively(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:   []string{"hello"},
		TypeSpeed: 100 * time.Millisecond,
	})

	w.Advance(250 * time.Millisecond)
	assert.Equal(t, "he", w.Text())

	w.Advance(250 * time.Millisecond)
	assert.Equal(t, "hello", w.Text())
	assert.True(t, w.Done(), "a single line without loop comes to rest")
}

func TestStartDelayHoldsTyping(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:    []string{"hi"},
		TypeSpeed:  10 * time.Millisecond,
		StartDelay: time.Second,
	})

	w.Advance(999 * time.Millisecond)
	assert.Equal(t, "", w.Text())

	// The millisecond crossing the delay plus two character periods.
	w.Advance(21 * time.Millisecond)
	assert.Equal(t, "hi", w.Text())
}

func TestSmartBackspaceKeepsCommonPrefix(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:        []string{"go is fun", "go is fast"},
		TypeSpeed:      10 * time.Millisecond,
		BackSpeed:      10 * time.Millisecond,
		BackDelay:      50 * time.Millisecond,
		SmartBackspace: true,
	})

	const prefix = "go is f"
	sawErase := false
	minLen := 1 << 30
	for i := 0; i < 1000 && !w.Done(); i++ {
		w.Advance(5 * time.Millisecond)
		if w.state == stateErasing {
			sawErase = true
		}
		if sawErase && len(w.Text()) < minLen {
			minLen = len(w.Text())
		}
	}

	require.True(t, w.Done())
	assert.Equal(t, "go is fast", w.Text())
	assert.Equal(t, len(prefix), minLen, "backspace must stop at the shared prefix")
}

func TestFullBackspaceWithoutSmart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:   []string{"alpha", "alps"},
		TypeSpeed: 5 * time.Millisecond,
		BackSpeed: 5 * time.Millisecond,
	})

	minLen := 1 << 30
	sawErase := false
	for i := 0; i < 1000 && !w.Done(); i++ {
		w.Advance(3 * time.Millisecond)
		if w.state == stateErasing {
			sawErase = true
		}
		if sawErase && len(w.Text()) < minLen {
			minLen = len(w.Text())
		}
	}

	require.True(t, sawErase)
	assert.Equal(t, 0, minLen, "plain backspace erases the whole line")
	assert.Equal(t, "alps", w.Text())
}

func TestLoopCountStopsRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:   []string{"one", "two"},
		TypeSpeed: time.Millisecond,
		BackSpeed: time.Millisecond,
		Loop:      true,
		LoopCount: 2,
	})

	for i := 0; i < 5000 && !w.Done(); i++ {
		w.Advance(time.Millisecond)
	}

	require.True(t, w.Done(), "bounded loops must terminate")
	assert.Equal(t, 2, w.pass)
	assert.Equal(t, "two", w.Text(), "the final line stays on screen")
}

func TestInstantSpeeds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:   []string{"whole line at once"},
		TypeSpeed: 0,
	})

	w.Advance(time.Millisecond)
	assert.Equal(t, "whole line at once", w.Text())
	assert.True(t, w.Done())
}

func TestShuffleIsSeeded(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	opts := Options{
		Strings:   []string{"a1", "b2", "c3", "d4", "e5"},
		TypeSpeed: time.Millisecond,
		BackSpeed: time.Millisecond,
		Shuffle:   true,
		Loop:      true,
		LoopCount: 2,
		Seed:      7,
	}
	a := NewWriter(opts)
	b := NewWriter(opts)

	for i := 0; i < 2000; i++ {
		a.Advance(time.Millisecond)
		b.Advance(time.Millisecond)
		assert.Equal(t, a.Text(), b.Text(), "same seed must replay the same rotation")
		if a.Done() && b.Done() {
			break
		}
	}
}

func TestCursorBlinks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{
		Strings:    []string{"x"},
		TypeSpeed:  time.Millisecond,
		ShowCursor: true,
		CursorChar: "_",
	})

	w.Advance(100 * time.Millisecond)
	assert.True(t, strings.HasSuffix(w.Line(), "_"), "cursor visible in the first half period")

	w.Advance(400 * time.Millisecond)
	assert.False(t, strings.HasSuffix(w.Line(), "_"), "cursor hidden in the second half period")

	w.Advance(500 * time.Millisecond)
	assert.True(t, strings.HasSuffix(w.Line(), "_"), "cursor returns after a full period")
}

func TestEmptyStringsAreDone(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	w := NewWriter(Options{})
	assert.True(t, w.Done())
	assert.Equal(t, "", w.Text())
	w.Advance(time.Second)
	assert.Equal(t, "", w.Text())
}
