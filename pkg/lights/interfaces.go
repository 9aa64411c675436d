package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// LightSample describes a light as seen from a shading point
type LightSample struct {
	Point     core.Vec3 // Position of the light
	Direction core.Vec3 // Unnormalized vector from shading point to light
	Distance  float64   // Distance to light
	Scale     core.Vec3 // Per-channel weight applied to the material's shaded color
}
