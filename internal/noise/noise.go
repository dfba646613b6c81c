// Package noise wraps a seeded gradient-noise generator behind the small
// sampling surface the curve and ribbon packages consume.
package noise

import "github.com/ojrac/opensimplex-go"

// Field is a deterministic, continuous noise field. The same seed always
// reproduces the same field, so every animation sequence derived from it can
// be replayed exactly.
type Field struct {
	seed  int64
	noise opensimplex.Noise
}

// New creates a noise field for the given seed.
func New(seed int64) *Field {
	return &Field{
		seed:  seed,
		noise: opensimplex.New(seed),
	}
}

// Seed returns the seed the field was created with.
func (f *Field) Seed() int64 { return f.seed }

// Sample2D evaluates the field at (x, y). The result is in [-1, 1].
func (f *Field) Sample2D(x, y float64) float64 {
	return f.noise.Eval2(x, y)
}

// Sample3D evaluates the field at (x, y, z). The result is in [-1, 1].
func (f *Field) Sample3D(x, y, z float64) float64 {
	return f.noise.Eval3(x, y, z)
}

// FBM3D layers octaves of the field at (x, y, z), each octave doubling the
// frequency and scaling amplitude by persistence. The result stays in [-1, 1].
func (f *Field) FBM3D(x, y, z float64, octaves int, persistence float64) float64 {
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0

	for i := 0; i < octaves; i++ {
		total += f.noise.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}
