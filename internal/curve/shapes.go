package curve

import (
	"math"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
)

// baseShape maps parameter u in [0,1] to a point of the unperturbed unit
// shape for the given kind. Closed kinds are periodic in u; open kinds sweep
// the stage from left to right. All shapes stay within [-1,1] per axis so
// scaling by the stage extent bounds them.
func baseShape(kind Kind, u float64) geom.Vec3 {
	switch kind {
	case KindLoop:
		th := 2 * math.Pi * u
		return geom.Vec3{
			X: math.Sin(th),
			Y: 0.6 * math.Sin(2*th),
			Z: 0.5 * math.Cos(th),
		}
	case KindRidge:
		return geom.Vec3{
			X: 2*u - 1,
			Y: 0.5 * math.Sin(3*math.Pi*u),
			Z: 0.25 * math.Sin(2*math.Pi*u+1),
		}
	case KindRing:
		th := 2 * math.Pi * u
		return geom.Vec3{
			X: math.Cos(th),
			Y: 0.35 * math.Sin(th),
			Z: 0.6 * math.Sin(th),
		}
	case KindWave:
		return geom.Vec3{
			X: 2*u - 1,
			Y: 0.5*(2*u-1) + 0.3*math.Sin(4*math.Pi*u),
			Z: 0.25 * math.Cos(3*math.Pi*u),
		}
	case KindEight:
		th := 2 * math.Pi * u
		return geom.Vec3{
			X: math.Sin(th),
			Y: 0.8 * math.Sin(th) * math.Cos(th),
			Z: 0.3 * math.Cos(2*th),
		}
	case KindHelix:
		return geom.Vec3{
			X: 2*u - 1,
			Y: 0.5 * math.Sin(4*math.Pi*u),
			Z: 0.5 * math.Cos(4*math.Pi*u),
		}
	case KindRose:
		// Three-lobe rose; odd-petal roses close over half a turn.
		th := math.Pi * u
		r := math.Cos(3 * th)
		return geom.Vec3{
			X: r * math.Cos(th),
			Y: 0.8 * r * math.Sin(th),
			Z: 0.2 * math.Sin(2*th),
		}
	case KindWeave:
		th := 2 * math.Pi * u
		return geom.Vec3{
			X: math.Sin(2*th + math.Pi/3),
			Y: 0.7 * math.Sin(3*th),
			Z: 0.4 * math.Cos(th),
		}
	}
	return geom.Vec3{}
}
