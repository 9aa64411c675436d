package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var specularWhite = core.NewVec3(255, 255, 255)

// Material holds the shading coefficients of a surface.
// Materials are immutable once the scene is built and may be shared by
// several surfaces.
type Material struct {
	Color         core.Vec3 // Base color, 0-255 scale
	DiffuseCoeff  float64
	SpecularCoeff float64
	Glossiness    float64 // Specular exponent
	Reflectivity  float64 // Weight of the mirror-reflected color, in [0, 1]

	Texture         Texture          // Optional, shared
	NormalMap       *NormalMap       // Optional
	DisplacementMap *DisplacementMap // Optional
}

// NewMaterial creates an untextured material
func NewMaterial(color core.Vec3, diffuse, specular, glossiness, reflectivity float64) *Material {
	return &Material{
		Color:         color,
		DiffuseCoeff:  diffuse,
		SpecularCoeff: specular,
		Glossiness:    glossiness,
		Reflectivity:  reflectivity,
	}
}

// NewTexturedMaterial creates a material whose diffuse term is modulated by texture
func NewTexturedMaterial(color core.Vec3, diffuse, specular, glossiness, reflectivity float64, texture Texture) *Material {
	m := NewMaterial(color, diffuse, specular, glossiness, reflectivity)
	m.Texture = texture
	return m
}

// RawColor returns the base color, used for the ambient term
func (m *Material) RawColor() core.Vec3 {
	return m.Color
}

// IsReflective reports whether reflected rays contribute to this material
func (m *Material) IsReflective() bool {
	return m.Reflectivity > 0
}

// Shade computes the direct diffuse and specular contribution of one light
// already known to be visible from hit. The result is on the 0-255 scale and
// not yet weighted by the light's color or intensity.
func (m *Material) Shade(shadowRay, cameraRay core.Ray, hit *core.Intersection) core.Vec3 {
	f := math.Max(0, hit.Normal.Dot(shadowRay.Direction))
	tint := core.NewVec3(1, 1, 1)
	if m.Texture != nil {
		tint = m.Texture.Color(hit.U, hit.V).Divide(255)
	}
	diffuse := m.Color.Multiply(f * m.DiffuseCoeff).MultiplyVec(tint)

	// The camera ray points into the surface, so subtracting it flips it toward the viewer
	halfVec := shadowRay.Direction.Subtract(cameraRay.Direction).Divide(2).Normalize()
	f2 := math.Pow(math.Max(0, halfVec.Dot(hit.Normal)), m.Glossiness)
	specular := specularWhite.Multiply(f2 * m.SpecularCoeff)

	return diffuse.Add(specular)
}

// ApplyNormalMap returns the normal perturbed by the material's normal map, if any
func (m *Material) ApplyNormalMap(normal, pos core.Vec3) core.Vec3 {
	if m.NormalMap == nil {
		return normal
	}
	return m.NormalMap.Apply(normal, pos)
}

// ApplyDisplacementMap returns pos moved by the material's displacement map, if any
func (m *Material) ApplyDisplacementMap(pos core.Vec3) core.Vec3 {
	if m.DisplacementMap == nil {
		return pos
	}
	return m.DisplacementMap.Apply(pos)
}
