package ribbon

import (
	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/noise"
)

// BuildStrand offsets every frame origin along its first perpendicular by the
// fixed lateral distance. The function is pure: identical frames and offset
// always produce identical positions.
func BuildStrand(frames []Frame, lateral float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(frames))
	for i, f := range frames {
		out[i] = f.Origin.Add(f.Normal.Scale(lateral))
	}
	return out
}

// BuildStrandModulated is BuildStrand with a noise-varied lateral distance:
// each sample's offset is scaled by up to amount around the base value. The
// layered noise is sampled at the frame position, so coincident samples get
// coincident widths and the two ends of a closed loop agree. An amount of
// zero reduces to the fixed offset.
func BuildStrandModulated(frames []Frame, lateral float64, field *noise.Field, amount float64) []geom.Vec3 {
	if amount == 0 || field == nil {
		return BuildStrand(frames, lateral)
	}
	out := make([]geom.Vec3, len(frames))
	for i, f := range frames {
		m := field.FBM3D(f.Origin.X*2.5, f.Origin.Y*2.5+lateral*9.1, f.Origin.Z*2.5, 3, 0.5)
		out[i] = f.Origin.Add(f.Normal.Scale(lateral * (1 + amount*m)))
	}
	return out
}
