package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewBumpyScene creates a row of spheres showing normal and displacement maps
// at increasing strength
func NewBumpyScene() *Scene {
	camera := geometry.NewCameraLookAt(
		core.NewVec3(0, 2, -7),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 1, 0),
	)

	floorMat := material.NewTexturedMaterial(
		core.NewVec3(180, 180, 180),
		0.7, 0, 0,
		0.5,
		material.NewCheckerboard(0.5),
	)
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floorMat)

	// Smooth reference sphere
	plainMat := material.NewMaterial(core.NewVec3(220, 80, 60), 0.6, 0.3, 25, 0)
	plain := geometry.NewSphere(core.NewVec3(-2.5, 1, 0), 1, plainMat)

	// Normal-mapped sphere: coarse, few octaves
	coarse := material.DefaultNoiseParams()
	coarse.Seed = 7
	coarse.Wavelength = 0.5
	coarse.Octaves = 3
	bumpMat := material.NewMaterial(core.NewVec3(60, 200, 90), 0.6, 0.3, 25, 0)
	bumpMat.NormalMap = material.NewNormalMap(coarse)
	bumpy := geometry.NewSphere(core.NewVec3(0, 1, 0), 1, bumpMat)

	// Displaced and normal-mapped sphere with a fine pattern
	fine := material.DefaultNoiseParams()
	fine.Seed = 42
	fine.Wavelength = 0.25
	fine.Octaves = 5
	roughMat := material.NewMaterial(core.NewVec3(70, 110, 230), 0.6, 0.5, 40, 0.2)
	roughMat.NormalMap = material.NewNormalMap(fine)
	roughMat.DisplacementMap = material.NewDisplacementMap(fine)
	rough := geometry.NewSphere(core.NewVec3(2.5, 1, 0), 1, roughMat)

	s := NewScene([]geometry.Surface{floor, plain, bumpy, rough}, nil, 0.15, core.NewVec3(255, 255, 255), camera)
	s.AddPointLight(core.NewVec3(-3, 5, -5), core.NewVec3(255, 255, 255), 1)
	s.Settings.MaxDepth = 2

	return s
}
