package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to a 0-255 RGB color
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	)

	return rgb.Clamp(0, 1).Multiply(255)
}

// NewMirrorScene creates a ring of colored, partly reflective spheres around a
// central mirror ball, standing on a checkerboard floor
func NewMirrorScene() *Scene {
	camera := geometry.NewCameraLookAt(
		core.NewVec3(0, 3.5, -8),
		core.NewVec3(0, 0.8, 0),
		core.NewVec3(0, 1, 0),
	)

	floorMat := material.NewTexturedMaterial(
		core.NewVec3(200, 200, 200),
		0.8, 0, 0,
		0.3,
		material.NewCheckerboard(1),
	)
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floorMat)

	mirrorMat := material.NewMaterial(core.NewVec3(230, 230, 230), 0.1, 0.6, 80, 0.9)
	mirrorBall := geometry.NewSphere(core.NewVec3(0, 1.2, 0), 1.2, mirrorMat)

	surfaces := []geometry.Surface{floor, mirrorBall}

	ringSize := 8
	ringRadius := 3.0
	sphereRadius := 0.5
	for i := 0; i < ringSize; i++ {
		angle := float64(i) / float64(ringSize) * 2 * math.Pi
		position := core.NewVec3(ringRadius*math.Cos(angle), sphereRadius, ringRadius*math.Sin(angle))

		// Hue walks around the ring, reflectivity alternates
		color := oklchToRGB(0.7, 0.15, float64(i)/float64(ringSize)*360.0)
		reflectivity := 0.1 + 0.3*float64(i%2)
		mat := material.NewMaterial(color, 0.6, 0.4, 30, reflectivity)

		surfaces = append(surfaces, geometry.NewSphere(position, sphereRadius, mat))
	}

	s := NewScene(surfaces, nil, 0.1, core.NewVec3(255, 255, 255), camera)
	s.AddPointLight(core.NewVec3(-4, 6, -4), core.NewVec3(255, 245, 230), 1.2)
	s.AddPointLight(core.NewVec3(5, 4, -2), core.NewVec3(160, 180, 255), 0.6)
	s.Settings.MaxDepth = 4

	return s
}
