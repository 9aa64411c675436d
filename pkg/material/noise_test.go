package material

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func samplePoints(n int) []core.Vec3 {
	points := make([]core.Vec3, n)
	for i := range points {
		f := float64(i)
		points[i] = core.NewVec3(f*0.137+0.05, f*0.071-20.3, f*0.293+5.11)
	}
	return points
}

func TestFractalNoise_ZeroOnLattice(t *testing.T) {
	fbm := NewFractalNoise(NoiseParams{Seed: 7, Octaves: 3, Wavelength: 1, Persistence: 0.5, Lacunarity: 2})

	for _, p := range []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 2, 3),
		core.NewVec3(-4, 17, -300),
	} {
		if v := fbm.At(p); v != 0 {
			t.Errorf("Expected zero at lattice point %v, got %f", p, v)
		}
	}
}

func TestFractalNoise_Range(t *testing.T) {
	tests := []struct {
		name   string
		params NoiseParams
	}{
		{"Single octave", NoiseParams{Seed: 42, Octaves: 1, Wavelength: 1, Persistence: 0.5, Lacunarity: 2}},
		{"Default", DefaultNoiseParams()},
		{"Rough", NoiseParams{Seed: 3, Octaves: 6, Wavelength: 0.3, Persistence: 0.8, Lacunarity: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Each octave stays within [-1, 1], so the sum is bounded by the total amplitude
			bound, amplitude := 0.0, 1.0
			for i := 0; i < tt.params.Octaves; i++ {
				bound += amplitude
				amplitude *= tt.params.Persistence
			}

			fbm := NewFractalNoise(tt.params)
			nonZero := false
			for _, p := range samplePoints(1000) {
				v := fbm.At(p)
				if math.IsNaN(v) || math.Abs(v) > bound {
					t.Fatalf("Noise at %v out of range ±%f: %f", p, bound, v)
				}
				if v != 0 {
					nonZero = true
				}
			}
			if !nonZero {
				t.Error("Expected non-zero noise away from the lattice")
			}
		})
	}
}

func TestFractalNoise_Seeded(t *testing.T) {
	params := DefaultNoiseParams()
	params.Seed = 1
	a := NewFractalNoise(params)
	b := NewFractalNoise(params)
	params.Seed = 2
	c := NewFractalNoise(params)

	differs := false
	for _, p := range samplePoints(50) {
		if a.At(p) != b.At(p) {
			t.Fatalf("Same seed produced different values at %v", p)
		}
		if a.At(p) != c.At(p) {
			differs = true
		}
	}
	if !differs {
		t.Error("Different seeds should produce different noise")
	}
}

func TestFractalNoise_Wavelength(t *testing.T) {
	wide := NewFractalNoise(NoiseParams{Seed: 3, Octaves: 2, Wavelength: 2, Persistence: 0.5, Lacunarity: 2})
	unit := NewFractalNoise(NoiseParams{Seed: 3, Octaves: 2, Wavelength: 1, Persistence: 0.5, Lacunarity: 2})

	for _, p := range samplePoints(20) {
		if got, expected := wide.At(p), unit.At(p.Multiply(0.5)); math.Abs(got-expected) > 1e-12 {
			t.Errorf("At %v: expected %f, got %f", p, expected, got)
		}
	}
}

func TestFractalNoise_OctaveCount(t *testing.T) {
	params := NoiseParams{Seed: 9, Octaves: 2, Wavelength: 1, Persistence: 0.5, Lacunarity: 2}
	two := NewFractalNoise(params)
	params.Octaves = 3
	three := NewFractalNoise(params)
	params.Octaves = 1
	one := NewFractalNoise(params)

	// The third octave is the base noise at 4x frequency and 1/4 amplitude
	for _, p := range samplePoints(20) {
		added := three.At(p) - two.At(p)
		expected := 0.25 * one.At(p.Multiply(4))
		if math.Abs(added-expected) > 1e-12 {
			t.Errorf("At %v: third octave added %f, expected %f", p, added, expected)
		}
	}

	if none := NewFractalNoise(NoiseParams{Octaves: 0, Wavelength: 1, Persistence: 0.5, Lacunarity: 2}).At(core.NewVec3(0.3, 0.6, 0.9)); none != 0 {
		t.Errorf("Zero octaves should produce zero, got %f", none)
	}
}

func TestNormalMap_Apply(t *testing.T) {
	m := NewNormalMap(NoiseParams{Seed: 5, Octaves: 2, Wavelength: 1, Persistence: 0.5, Lacunarity: 2})

	// Noise is zero on the lattice, so the shift is exactly 0.5
	normal := core.NewVec3(0, 1, 0)
	got := m.Apply(normal, core.NewVec3(2, 0, -1))
	expected := core.NewVec3(0.5, 1.5, 0.5).Normalize()
	if !vecNear(got, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	for i := 0; i < 100; i++ {
		p := core.NewVec3(float64(i)*0.37, float64(i)*0.11, 0.5)
		n := m.Apply(normal, p)
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Fatalf("Perturbed normal at %v not unit: %v", p, n)
		}
		// X and Z start at zero and receive the same offset
		if math.Abs(n.X-n.Z) > 1e-12 {
			t.Fatalf("Expected identical X and Z offsets, got %v", n)
		}
	}
}

func TestDisplacementMap_Apply(t *testing.T) {
	m := NewDisplacementMap(NoiseParams{Seed: 5, Octaves: 2, Wavelength: 1, Persistence: 0.5, Lacunarity: 2})

	// Noise is zero on the lattice, so the offset is exactly 1
	got := m.Apply(core.NewVec3(1, 2, 3))
	if got != core.NewVec3(2, 3, 4) {
		t.Errorf("Expected (2,3,4), got %v", got)
	}

	p := core.NewVec3(0.3, 0.4, 0.5)
	d := m.Apply(p).Subtract(p)
	if d.X != d.Y || d.Y != d.Z {
		t.Errorf("Expected identical offsets, got %v", d)
	}
	if d.X < 0 {
		t.Errorf("Offset should be floored at zero, got %v", d)
	}
}

func TestNoiseMaps_ConcurrentEvaluation(t *testing.T) {
	m := NewNormalMap(DefaultNoiseParams())
	normal := core.NewVec3(0, 0, 1)
	p := core.NewVec3(0.12, 3.4, 5.6)
	expected := m.Apply(normal, p)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := m.Apply(normal, p); got != expected {
					t.Errorf("Concurrent evaluation changed result: %v vs %v", got, expected)
					return
				}
			}
		}()
	}
	wg.Wait()
}
