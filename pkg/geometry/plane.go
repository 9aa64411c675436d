package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3          // A point on the plane
	Normal   core.Vec3          // Unit normal vector
	Material *material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material *material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: material,
	}
}

// Name identifies the surface type
func (p *Plane) Name() string {
	return "Plane"
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() *material.Material {
	return p.Material
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (*core.Intersection, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Only an exactly parallel ray misses; nearly parallel rays hit very far away
	if denominator == 0 {
		return nil, false
	}

	d := p.Normal.Dot(p.Point.Subtract(ray.Origin)) / denominator
	if d <= 0 {
		return nil, false
	}

	pos := ray.At(d)
	u, v := p.UV(pos)

	hit := core.NewIntersection(pos, p.Normal, d, u, v)
	applyMaps(p.Material, hit)

	return hit, true
}

// UV projects pos onto the plane's texture axes. The u axis (n.y, n.z, -n.x)
// is only orthogonal to the normal for axis-aligned planes and is not unit length.
func (p *Plane) UV(pos core.Vec3) (u, v float64) {
	n := p.Normal
	uAxis := core.NewVec3(n.Y, n.Z, -n.X)
	vAxis := uAxis.Cross(n)
	return pos.Dot(uAxis), pos.Dot(vAxis)
}
