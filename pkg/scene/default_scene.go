package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: a blue sphere resting above a
// mirrored checkerboard floor, lit by a single green point light
func NewDefaultScene() *Scene {
	camera := geometry.NewCameraLookAt(
		core.NewVec3(0, 2, -5), // position
		core.NewVec3(0, 1, 0),  // look at the sphere center
		core.NewVec3(0, 1, 0),  // up
	)

	// Checkered mirror floor
	floorMat := material.NewTexturedMaterial(
		core.NewVec3(100, 100, 100), // gray
		0.7, 0, 0, // diffuse, specular, glossiness
		1.0, // fully reflective
		material.NewCheckerboard(1),
	)
	floor := geometry.NewPlane(core.NewVec3(1, 0, 1), core.NewVec3(0, 1, 0), floorMat)

	blueMat := material.NewMaterial(core.NewVec3(0, 0, 255), 0.3, 0.2, 20, 0)
	sphere := geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, blueMat)

	s := NewScene(
		[]geometry.Surface{floor, sphere},
		nil,
		0.1,                         // ambient coefficient
		core.NewVec3(255, 255, 255), // white ambient
		camera,
	)
	s.AddPointLight(core.NewVec3(3, 3, -4), core.NewVec3(0, 255, 0), 2)

	return s
}
