// Package ribbon builds offset strands along a spine curve and animates them
// through the draw, hold and morph cycle.
package ribbon

import (
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/curve"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
)

// tracer writes to trace with key 'fx.ribbon'
func tracer() tracing.Trace {
	return tracing.Select("fx.ribbon")
}

// degenerate is the squared length below which a tangent counts as zero.
const degenerate = 1e-12

// Frame is a local coordinate frame at one sample of the spine: the sample
// position, the unit tangent, and two unit perpendiculars spanning the plane
// normal to the tangent.
type Frame struct {
	Origin   geom.Vec3
	Tangent  geom.Vec3
	Normal   geom.Vec3
	Binormal geom.Vec3
}

// ComputeFrames samples the curve at sampleCount+1 evenly spaced parameters
// (both endpoints included) and derives an orientation frame at each sample.
// Tangents use central differences; the ends of open curves fall back to
// one-sided differences. A degenerate tangent inherits the previous frame's
// direction, or +X when there is none. The first frame's perpendiculars are
// seeded against the view axis; every later frame carries the previous normal
// forward, projected into the plane of its own tangent, so adjacent frames
// never flip. On closed curves the transported normal arrives back at the
// seam rotated against the frame it started from; that mismatch is spread
// over the whole loop as a gradual twist, so the first and last frames
// coincide and laterally offset strands close.
func ComputeFrames(c curve.Curve, sampleCount int) []Frame {
	if sampleCount < 1 {
		sampleCount = 1
	}
	n := sampleCount + 1

	samples := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		samples[i] = c.Position(float64(i) / float64(sampleCount))
	}

	frames := make([]Frame, n)
	prevTangent := geom.Vec3{X: 1}
	for i := 0; i < n; i++ {
		var diff geom.Vec3
		switch {
		case c.Closed():
			// The first and last samples coincide on a closed curve, so the
			// neighbours wrap around the seam.
			next := samples[(i+1)%(n-1)]
			prev := samples[((i-1)+(n-1))%(n-1)]
			diff = next.Sub(prev)
		case i == 0:
			diff = samples[1].Sub(samples[0])
		case i == n-1:
			diff = samples[n-1].Sub(samples[n-2])
		default:
			diff = samples[i+1].Sub(samples[i-1])
		}

		tangent := diff
		if tangent.Dot(tangent) < degenerate {
			tangent = prevTangent
		} else {
			tangent = tangent.Normalize()
		}
		prevTangent = tangent

		var normal geom.Vec3
		if i == 0 {
			normal, _ = perpendiculars(tangent)
		} else {
			// Transport the previous normal into the new tangent plane. The
			// projection never reverses against its source, so the strand
			// surface stays coherent without any sign correction.
			prior := frames[i-1].Normal
			normal = prior.Sub(tangent.Scale(tangent.Dot(prior)))
			if normal.Dot(normal) < degenerate {
				normal, _ = perpendiculars(tangent)
			} else {
				normal = normal.Normalize()
			}
		}
		frames[i] = Frame{
			Origin:   samples[i],
			Tangent:  tangent,
			Normal:   normal,
			Binormal: tangent.Cross(normal),
		}
	}

	if c.Closed() {
		closeSeam(frames)
	}
	return frames
}

// closeSeam reconciles the two ends of a closed loop. The first and last
// frames sit on the same spine point with the same tangent, but the
// transported normal generally returns rotated. Correcting only the last
// frame would move the tear one segment inward, so the mismatch angle is
// distributed as a twist about each frame's tangent instead.
func closeSeam(frames []Frame) {
	n := len(frames)
	if n < 2 {
		return
	}
	first, last := frames[0], frames[n-1]
	sin := first.Normal.Dot(first.Tangent.Cross(last.Normal))
	cos := first.Normal.Dot(last.Normal)
	mismatch := math.Atan2(sin, cos)
	if mismatch == 0 {
		return
	}
	for i := 1; i < n; i++ {
		f := &frames[i]
		f.Normal = f.Normal.RotateAround(f.Tangent, mismatch*float64(i)/float64(n-1))
		f.Binormal = f.Tangent.Cross(f.Normal)
	}
}

// perpendiculars derives the two unit vectors spanning the plane orthogonal
// to the tangent. The view axis serves as reference so the seeded
// perpendicular lies in the screen plane and lateral strand offsets start out
// visible instead of receding into depth.
func perpendiculars(tangent geom.Vec3) (normal, binormal geom.Vec3) {
	ref := geom.Vec3{Z: 1}
	c := ref.Cross(tangent)
	if c.Dot(c) < degenerate {
		// Tangent points at the camera; fall back to world up.
		ref = geom.Vec3{Y: 1}
		c = ref.Cross(tangent)
	}
	normal = c.Normalize()
	binormal = tangent.Cross(normal)
	return normal, binormal
}
