package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering.
// It is built once and only read while rendering.
type Scene struct {
	Camera       *geometry.Camera
	Surfaces     []geometry.Surface   // Objects in the scene
	Lights       []*lights.PointLight // Lights in the scene
	AmbientCoeff float64              // Strength of the ambient term
	AmbientColor core.Vec3            // Ambient light color, 0-255 scale
	Settings     RenderSettings       // Recommended output settings
}

// RenderSettings holds the output size and recursion depth a scene was composed for
type RenderSettings struct {
	Width    int // Image width
	Height   int // Image height
	MaxDepth int // Maximum reflection depth
}

// DefaultRenderSettings returns the 640x480, single-bounce settings
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Width:    640,
		Height:   480,
		MaxDepth: 1,
	}
}

// NewScene creates a scene from fully built parts
func NewScene(surfaces []geometry.Surface, pointLights []*lights.PointLight, ambientCoeff float64, ambientColor core.Vec3, camera *geometry.Camera) *Scene {
	return &Scene{
		Camera:       camera,
		Surfaces:     surfaces,
		Lights:       pointLights,
		AmbientCoeff: ambientCoeff,
		AmbientColor: ambientColor,
		Settings:     DefaultRenderSettings(),
	}
}

// Intersect returns the surface nearest along the ray and the hit on it.
// Every surface is tested; on an exact distance tie the earlier surface wins.
func (s *Scene) Intersect(ray core.Ray) (geometry.Surface, *core.Intersection, bool) {
	var closestSurface geometry.Surface
	var closestHit *core.Intersection

	for _, surface := range s.Surfaces {
		hit, isHit := surface.Intersect(ray)
		if !isHit {
			continue
		}
		if closestHit == nil || hit.Dist < closestHit.Dist {
			closestSurface = surface
			closestHit = hit
		}
	}

	return closestSurface, closestHit, closestHit != nil
}

// Ambient returns the per-channel ambient weight ambientColor/255 * ambientCoeff
func (s *Scene) Ambient() core.Vec3 {
	return s.AmbientColor.Divide(255).Multiply(s.AmbientCoeff)
}

// AddSurface appends surfaces to the scene
func (s *Scene) AddSurface(surfaces ...geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surfaces...)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, color core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, color, intensity))
}

// GetPrimitiveCount returns the number of surfaces in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Surfaces)
}
