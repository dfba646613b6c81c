// Package curve generates the parametric spine curves the ribbon animates
// through. A generated curve is a set of noise-perturbed control points with
// smooth Catmull-Rom evaluation over them.
package curve

import (
	"math"

	"github.com/npillmayer/schuko/tracing"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/noise"
)

// tracer writes to trace with key 'fx.curve'
func tracer() tracing.Trace {
	return tracing.Select("fx.curve")
}

// tension is the Catmull-Rom tightness; 0.5 is the centripetal standard.
const tension = 0.5

// Kind names one qualitatively distinct curve family in the catalog.
type Kind int

// KindCustom marks a curve built from explicit points rather than a catalog
// shape.
const KindCustom Kind = -1

const (
	KindLoop  Kind = iota // closed Lissajous loop, 1:2 ratio
	KindRidge             // open undulating sweep across the stage
	KindRing              // closed tilted ring
	KindWave              // open diagonal wave
	KindEight             // closed figure eight
	KindHelix             // open helical sweep
	KindRose              // closed three-lobe rose
	KindWeave             // closed Lissajous loop, 3:2 ratio
)

var kindNames = map[Kind]string{
	KindLoop:   "loop",
	KindRidge:  "ridge",
	KindRing:   "ring",
	KindWave:   "wave",
	KindEight:  "eight",
	KindHelix:  "helix",
	KindRose:   "rose",
	KindWeave:  "weave",
	KindCustom: "custom",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Closed reports whether curves of this kind form a loop.
func (k Kind) Closed() bool {
	switch k {
	case KindLoop, KindRing, KindEight, KindRose, KindWeave:
		return true
	}
	return false
}

// Catalog returns the ordered kinds the animator cycles through. The order
// alternates closed and open families so consecutive shapes read differently.
func Catalog() []Kind {
	return []Kind{
		KindLoop, KindRidge, KindRing, KindWave,
		KindEight, KindHelix, KindRose, KindWeave,
	}
}

// Params controls a single curve generation.
type Params struct {
	Extent geom.Vec3 // stage half-extents the base shape is scaled to
	Points int       // control point count
	Jitter float64   // noise displacement as a fraction of the extent
	Epoch  int       // generation counter; distinct epochs sample distinct noise
}

// Curve is an immutable spine: control points plus smooth evaluation over
// them. Closed curves wrap, open curves clamp.
type Curve struct {
	kind   Kind
	closed bool
	ctrl   []geom.Vec3
}

// Generate builds a curve of the given kind. The base shape is scaled to
// p.Extent and every control point is displaced by noise sampled from field,
// so repeated generations with increasing epochs yield organic variations
// while staying fully deterministic for a fixed field seed.
func Generate(kind Kind, field *noise.Field, p Params) Curve {
	if p.Points < 4 {
		p.Points = 4
	}
	closed := kind.Closed()

	ctrl := make([]geom.Vec3, p.Points)
	for i := range ctrl {
		var u float64
		if closed {
			u = float64(i) / float64(p.Points)
		} else {
			u = float64(i) / float64(p.Points-1)
		}
		pt := baseShape(kind, u).Mul(p.Extent)
		if p.Jitter != 0 && field != nil {
			pt = pt.Add(jitter(kind, field, u, p).Mul(p.Extent).Scale(p.Jitter))
		}
		ctrl[i] = pt
	}

	tracer().Debugf("generated %s curve: %d control points, epoch %d", kind, len(ctrl), p.Epoch)
	return Curve{kind: kind, closed: closed, ctrl: ctrl}
}

// FromPoints builds a curve directly over the given control points, bypassing
// the catalog shapes and noise displacement.
func FromPoints(pts []geom.Vec3, closed bool) Curve {
	ctrl := make([]geom.Vec3, len(pts))
	copy(ctrl, pts)
	return Curve{kind: KindCustom, closed: closed, ctrl: ctrl}
}

// jitter returns the unit-scale noise displacement for parameter u. Closed
// kinds sample the field along a circle so the displacement itself is
// periodic; open kinds sample along a line.
func jitter(kind Kind, field *noise.Field, u float64, p Params) geom.Vec3 {
	const ringRadius = 1.7
	ep := float64(p.Epoch) * 0.6180339887
	salt := float64(kind) * 13.37

	var ax, ay float64
	if kind.Closed() {
		ax = math.Cos(2*math.Pi*u) * ringRadius
		ay = math.Sin(2*math.Pi*u) * ringRadius
	} else {
		ax = u * 2.9
		ay = -u * 1.3
	}
	return geom.Vec3{
		X: field.Sample3D(ax+salt, ay, ep),
		Y: field.Sample3D(ax+salt, ay+7.77, ep+21.6),
		Z: field.Sample3D(ax+salt, ay-5.31, ep+43.2),
	}
}

// Kind returns the curve's catalog kind.
func (c Curve) Kind() Kind { return c.kind }

// Closed reports whether the curve wraps around.
func (c Curve) Closed() bool { return c.closed }

// Points returns a copy of the control points.
func (c Curve) Points() []geom.Vec3 {
	out := make([]geom.Vec3, len(c.ctrl))
	copy(out, c.ctrl)
	return out
}

// Position evaluates the curve at t. For closed curves t wraps modulo 1, so
// Position(0) and Position(1) coincide; for open curves t clamps to [0, 1].
func (c Curve) Position(t float64) geom.Vec3 {
	n := len(c.ctrl)
	switch n {
	case 0:
		return geom.Vec3{}
	case 1:
		return c.ctrl[0]
	}

	if c.closed {
		t -= math.Floor(t)
		x := t * float64(n)
		seg := int(x)
		if seg >= n {
			seg = n - 1
		}
		local := x - float64(seg)
		p0 := c.ctrl[(seg-1+n)%n]
		p1 := c.ctrl[seg]
		p2 := c.ctrl[(seg+1)%n]
		p3 := c.ctrl[(seg+2)%n]
		return catmullRom(p0, p1, p2, p3, local)
	}

	if t <= 0 {
		return c.ctrl[0]
	}
	if t >= 1 {
		return c.ctrl[n-1]
	}
	x := t * float64(n-1)
	seg := int(x)
	if seg > n-2 {
		seg = n - 2
	}
	local := x - float64(seg)

	// Phantom endpoints reflect the terminal segments.
	var p0, p3 geom.Vec3
	if seg == 0 {
		p0 = c.ctrl[0].Add(c.ctrl[0].Sub(c.ctrl[1]))
	} else {
		p0 = c.ctrl[seg-1]
	}
	if seg+2 > n-1 {
		p3 = c.ctrl[n-1].Add(c.ctrl[n-1].Sub(c.ctrl[n-2]))
	} else {
		p3 = c.ctrl[seg+2]
	}
	return catmullRom(p0, c.ctrl[seg], c.ctrl[seg+1], p3, local)
}

// catmullRom evaluates one spline segment between p1 and p2 at local t.
func catmullRom(p0, p1, p2, p3 geom.Vec3, t float64) geom.Vec3 {
	t2 := t * t
	t3 := t2 * t
	s := tension

	f0 := -s*t3 + 2*s*t2 - s*t
	f1 := (2-s)*t3 + (s-3)*t2 + 1
	f2 := (s-2)*t3 + (3-2*s)*t2 + s*t
	f3 := s*t3 - s*t2

	return geom.Vec3{
		X: f0*p0.X + f1*p1.X + f2*p2.X + f3*p3.X,
		Y: f0*p0.Y + f1*p1.Y + f2*p2.Y + f3*p3.Y,
		Z: f0*p0.Z + f1*p1.Z + f2*p2.Z + f3*p3.Z,
	}
}
