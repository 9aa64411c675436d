package core

import "math"

// ShadowBias is the distance secondary rays are pushed off a surface along
// its normal so they do not hit the surface they start on.
var ShadowBias = math.Sqrt(math.Nextafter(1, 2) - 1)

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray with a normalized direction.
// A zero-length direction does not describe a ray and is the caller's bug.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Intersection describes where a ray met a surface
type Intersection struct {
	Point  Vec3    // Hit position (after any displacement)
	Normal Vec3    // Unit surface normal
	Dist   float64 // Distance along the generating ray, always > 0
	U, V   float64 // Surface parameterization, defined per surface type
}

// NewIntersection creates a new intersection record
func NewIntersection(point, normal Vec3, dist, u, v float64) *Intersection {
	return &Intersection{Point: point, Normal: normal, Dist: dist, U: u, V: v}
}

// OffsetPoint returns the hit point pushed off the surface by ShadowBias
func (i *Intersection) OffsetPoint() Vec3 {
	return i.Point.Add(i.Normal.Multiply(ShadowBias))
}

// Reflect mirrors the incoming direction d about the normal n
func Reflect(d, n Vec3) Vec3 {
	return d.Subtract(n.Multiply(2 * d.Dot(n)))
}
