package ribbon

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/curve"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/noise"
)

func TestBuildStrandPure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	c := curve.Generate(curve.KindWave, noise.New(3), curveParams())
	frames := ComputeFrames(c, 60)

	a := BuildStrand(frames, 0.08)
	b := BuildStrand(frames, 0.08)
	assert.Equal(t, a, b, "identical inputs must build identical strands")

	field := noise.New(3)
	am := BuildStrandModulated(frames, 0.08, field, 0.4)
	bm := BuildStrandModulated(frames, 0.08, field, 0.4)
	assert.Equal(t, am, bm)
}

func TestBuildStrandOffsetDistance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	c := curve.Generate(curve.KindRidge, noise.New(3), curveParams())
	frames := ComputeFrames(c, 60)

	const lateral = 0.1
	pts := BuildStrand(frames, lateral)
	require.Len(t, pts, len(frames))

	for i, f := range frames {
		assert.InDelta(t, lateral, f.Origin.Distance(pts[i]), 1e-9, "sample %d", i)
	}

	// A zero offset reproduces the spine.
	spine := BuildStrand(frames, 0)
	for i, f := range frames {
		assert.Equal(t, f.Origin, spine[i])
	}
}

func TestBuildStrandModulatedReducesToFixed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	c := curve.Generate(curve.KindHelix, noise.New(3), curveParams())
	frames := ComputeFrames(c, 40)
	field := noise.New(3)

	fixed := BuildStrand(frames, 0.12)
	assert.Equal(t, fixed, BuildStrandModulated(frames, 0.12, field, 0))
	assert.Equal(t, fixed, BuildStrandModulated(frames, 0.12, nil, 0.5))

	// With modulation the offsets genuinely vary.
	mod := BuildStrandModulated(frames, 0.12, field, 0.5)
	assert.NotEqual(t, fixed, mod)
}

func TestBuildStrandClosesOnClosedCurves(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	// A torn seam frame shows up here as a gap of twice the lateral offset
	// between the strand's first and last point.
	field := noise.New(1)
	p := curveParams()
	for _, k := range curve.Catalog() {
		if !k.Closed() {
			continue
		}
		for epoch := 0; epoch < 60; epoch++ {
			p.Epoch = epoch
			c := curve.Generate(k, field, p)
			frames := ComputeFrames(c, 120)

			for _, lateral := range []float64{0.05, -0.05, 0.1} {
				pts := BuildStrand(frames, lateral)
				gap := pts[0].Distance(pts[len(pts)-1])
				assert.InDelta(t, 0, gap, 1e-9, "kind %s epoch %d lateral %g leaves a gap", k, epoch, lateral)
			}

			mod := BuildStrandModulated(frames, 0.05, field, 0.4)
			gap := mod[0].Distance(mod[len(mod)-1])
			assert.InDelta(t, 0, gap, 1e-9, "kind %s epoch %d modulated strand leaves a gap", k, epoch)
		}
	}
}
