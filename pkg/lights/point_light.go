package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an infinitely small light with no falloff
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3 // 0-255 scale
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

// Scale returns color/255 * intensity, the factor applied to shaded colors
func (l *PointLight) Scale() core.Vec3 {
	return l.Color.Divide(255).Multiply(l.Intensity)
}

// Sample returns the direction and distance from point to the light
func (l *PointLight) Sample(point core.Vec3) LightSample {
	dir := l.Position.Subtract(point)
	return LightSample{
		Point:     l.Position,
		Direction: dir,
		Distance:  dir.Length(),
		Scale:     l.Scale(),
	}
}
