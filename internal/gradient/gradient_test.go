package gradient

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Palette: [][2]string{
			{"#0b0d1a", "#1a2440"},
			{"#101622", "#301040"},
			{"#0a1420", "#104030"},
		},
		Hold:             0,
		AngularFrequency: 8,
		Damping:          1,
	}
}

func TestNewRejectsEmptyPalette(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestNewRejectsBadHex(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	opts := testOptions()
	opts.Palette[1][0] = "midnight"
	_, err := New(opts)
	assert.ErrorIs(t, err, ErrBadColor)
}

func TestColorsStayInRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	a, err := New(testOptions())
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		a.Advance(16 * time.Millisecond)
		top, bottom := a.Colors()
		for _, ch := range []float64{top.R, top.G, top.B, bottom.R, bottom.G, bottom.B} {
			assert.GreaterOrEqual(t, ch, 0.0)
			assert.LessOrEqual(t, ch, 1.0)
		}
	}
}

func TestPaletteCyclesInOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	a, err := New(testOptions())
	require.NoError(t, err)

	var order []int
	last := a.PaletteIndex()
	for i := 0; i < 4000 && len(order) < 4; i++ {
		a.Advance(16 * time.Millisecond)
		if idx := a.PaletteIndex(); idx != last {
			order = append(order, idx)
			last = idx
		}
	}

	require.GreaterOrEqual(t, len(order), 3, "palette never cycled")
	assert.Equal(t, []int{1, 2, 0}, order[:3], "palette must cycle in order")
}

func TestSinglePairIsStatic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	a, err := New(Options{Palette: [][2]string{{"#112233", "#445566"}}})
	require.NoError(t, err)

	top0, bottom0 := a.Colors()
	a.Advance(time.Minute)
	top1, bottom1 := a.Colors()
	assert.Equal(t, top0, top1)
	assert.Equal(t, bottom0, bottom1)
	assert.Equal(t, 0, a.PaletteIndex())
}

func TestHoldDelaysTransition(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	opts := testOptions()
	opts.Hold = 10 * time.Second
	a, err := New(opts)
	require.NoError(t, err)

	// Within the hold window nothing blends yet.
	a.Advance(5 * time.Second)
	top, bottom := a.Colors()
	assert.Equal(t, a.pairs[0][0], top)
	assert.Equal(t, a.pairs[0][1], bottom)
	assert.Equal(t, 0, a.PaletteIndex())
}
