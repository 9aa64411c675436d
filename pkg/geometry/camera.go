package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates primary rays through a virtual screen one unit along Dir.
// The field of view is fixed: the screen spans one unit vertically and
// aspectRatio units horizontally.
type Camera struct {
	Pos   core.Vec3
	Dir   core.Vec3 // View axis
	Up    core.Vec3 // Image plane vertical axis
	Right core.Vec3 // Image plane horizontal axis
}

// NewCamera builds an orthonormal view basis from a direction and an up hint
func NewCamera(pos, dir, up core.Vec3) *Camera {
	right := up.Cross(dir).Normalize()
	up = right.Cross(dir).Normalize()

	return &Camera{
		Pos:   pos,
		Dir:   dir.Normalize(),
		Up:    up,
		Right: right,
	}
}

// NewCameraLookAt creates a camera at pos looking toward lookAt
func NewCameraLookAt(pos, lookAt, up core.Vec3) *Camera {
	return NewCamera(pos, lookAt.Subtract(pos), up)
}

// GetRay generates the primary ray for pixel (x, y) of a width×height image
func (c *Camera) GetRay(x, y, width, height int, aspectRatio float64) core.Ray {
	nx := (float64(x)/float64(width) - 0.5) * aspectRatio
	ny := float64(y)/float64(height) - 0.5

	dir := c.Right.Multiply(nx).Add(c.Up.Multiply(ny)).Add(c.Dir)
	return core.NewRay(c.Pos, dir)
}
