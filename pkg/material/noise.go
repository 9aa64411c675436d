package material

import (
	"github.com/aquilax/go-perlin"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NoiseParams configures a fractal (fBm) sum of noise octaves
type NoiseParams struct {
	Seed        uint32  `json:"seed"`
	Octaves     int     `json:"octaves"`
	Wavelength  float64 `json:"wavelength"`  // Base feature size; the first octave samples at frequency 1/Wavelength
	Persistence float64 `json:"persistence"` // Amplitude multiplier per octave
	Lacunarity  float64 `json:"lacunarity"`  // Frequency multiplier per octave
}

// DefaultNoiseParams returns a typical four-octave configuration
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{
		Seed:        0,
		Octaves:     4,
		Wavelength:  1.0,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// FractalNoise sums Octaves layers of seeded 3D Perlin noise.
// Octave i is sampled at frequency Lacunarity^i / Wavelength and weighted
// by Persistence^i. The gradient tables are fixed at construction, so
// evaluation is safe from any number of goroutines.
type FractalNoise struct {
	params NoiseParams
	noise  *perlin.Perlin
}

// NewFractalNoise creates an fBm evaluator for params
func NewFractalNoise(params NoiseParams) *FractalNoise {
	// go-perlin divides octave i by alpha^i and scales its input by beta^i
	return &FractalNoise{
		params: params,
		noise:  perlin.NewPerlin(1/params.Persistence, params.Lacunarity, int32(params.Octaves), int64(params.Seed)),
	}
}

// Params returns the parameters the noise was built with
func (f *FractalNoise) Params() NoiseParams {
	return f.params
}

// At evaluates the fractal sum at p. It is exactly 0 on integer lattice
// points of the scaled space.
func (f *FractalNoise) At(p core.Vec3) float64 {
	s := p.Divide(f.params.Wavelength)
	return f.noise.Noise3D(s.X, s.Y, s.Z)
}
