package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Surface interface for objects that can be hit by rays
type Surface interface {
	// Intersect returns the nearest hit in front of the ray origin, if any
	Intersect(ray core.Ray) (*core.Intersection, bool)
	GetMaterial() *material.Material
	Name() string
}

// applyMaps runs the material's normal and displacement maps on a fresh hit.
// The normal map samples the undisplaced point; u, v and the distance are left as computed.
func applyMaps(m *material.Material, hit *core.Intersection) {
	if m == nil {
		return
	}
	pos := hit.Point
	hit.Normal = m.ApplyNormalMap(hit.Normal, pos)
	hit.Point = m.ApplyDisplacementMap(pos)
}
