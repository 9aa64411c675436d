package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Name identifies the surface type
func (s *Sphere) Name() string {
	return "Sphere"
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() *material.Material {
	return s.Material
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (*core.Intersection, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Direction is unit length, so the quadratic is t² + bt + c = 0
	b := 2 * ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	far := 0.5 * (-b + sqrtD)
	near := 0.5 * (-b - sqrtD)

	var d float64
	switch {
	case near > 0:
		d = near
	case far > 0:
		// Origin is inside the sphere
		d = far
	default:
		// Sphere is entirely behind the origin
		return nil, false
	}

	pos := ray.At(d)
	normal := pos.Subtract(s.Center).Normalize()

	// Latitude uses atan of the y component rather than acos
	toCenter := s.Center.Subtract(pos).Normalize()
	u := 0.5 + math.Atan2(toCenter.Z, toCenter.X)/(2*math.Pi)
	v := 0.5 - math.Atan(toCenter.Y)/math.Pi

	hit := core.NewIntersection(pos, normal, d, u, v)
	applyMaps(s.Material, hit)

	return hit, true
}
