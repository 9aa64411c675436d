package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NormalMap perturbs surface normals with fractal noise.
// The same scalar is added to every normal component.
type NormalMap struct {
	fbm *FractalNoise
}

// NewNormalMap creates a normal map from noise parameters
func NewNormalMap(params NoiseParams) *NormalMap {
	return &NormalMap{fbm: NewFractalNoise(params)}
}

// Params returns the noise parameters of the map
func (m *NormalMap) Params() NoiseParams {
	return m.fbm.Params()
}

// Apply returns normalize(normal + (val, val, val)) where val is the noise at
// pos shifted to [0, 1] and floored at 0
func (m *NormalMap) Apply(normal, pos core.Vec3) core.Vec3 {
	val := (m.fbm.At(pos) + 1) / 2
	if val < 0 {
		val = 0
	}
	return normal.Add(core.Splat(val)).Normalize()
}

// DisplacementMap offsets surface positions with fractal noise.
// The same scalar is added to every position component.
type DisplacementMap struct {
	fbm *FractalNoise
}

// NewDisplacementMap creates a displacement map from noise parameters
func NewDisplacementMap(params NoiseParams) *DisplacementMap {
	return &DisplacementMap{fbm: NewFractalNoise(params)}
}

// Params returns the noise parameters of the map
func (m *DisplacementMap) Params() NoiseParams {
	return m.fbm.Params()
}

// Apply returns pos + (val, val, val) where val is the noise at pos shifted
// by +1 and floored at 0
func (m *DisplacementMap) Apply(pos core.Vec3) core.Vec3 {
	val := m.fbm.At(pos) + 1
	if val < 0 {
		val = 0
	}
	return pos.Add(core.Splat(val))
}
