package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func plainMaterial() *material.Material {
	return material.NewMaterial(core.NewVec3(0, 0, 255), 1, 0, 0, 0)
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, plainMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Intersect(ray)
	if isHit {
		t.Errorf("Expected miss, but got hit at dist=%f", hit.Dist)
	}
}

func TestSphere_Intersect_RootSelection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, plainMaterial())

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectHit      bool
		expectedDist   float64
		expectedPoint  core.Vec3
		expectedNormal core.Vec3
	}{
		{
			name:           "camera outside sphere hits front face",
			rayOrigin:      core.NewVec3(0, 0, -4),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectHit:      true,
			expectedDist:   3.0,
			expectedPoint:  core.NewVec3(0, 0, -1),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "origin at center uses exit point",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(1, 0, 0),
			expectHit:      true,
			expectedDist:   1.0,
			expectedPoint:  core.NewVec3(1, 0, 0),
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "origin inside off center uses exit point",
			rayOrigin:      core.NewVec3(0, 0, 0.5),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectHit:      true,
			expectedDist:   1.5,
			expectedPoint:  core.NewVec3(0, 0, -1),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:         "sphere behind origin",
			rayOrigin:    core.NewVec3(0, 0, 4),
			rayDirection: core.NewVec3(0, 0, 1),
			expectHit:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Intersect(ray)

			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}

			if hit.Dist <= 0 {
				t.Errorf("Distance must be positive, got %f", hit.Dist)
			}
			if math.Abs(hit.Dist-tt.expectedDist) > 1e-9 {
				t.Errorf("Expected dist=%f, got dist=%f", tt.expectedDist, hit.Dist)
			}
			if !vecNear(hit.Point, tt.expectedPoint, 1e-9) {
				t.Errorf("Expected point %v, got %v", tt.expectedPoint, hit.Point)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Intersect_PointOnSurface(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		center := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2)
		radius := 0.1 + random.Float64()*3
		sphere := NewSphere(center, radius, plainMaterial())

		origin := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		// Aim somewhere near the sphere so a good share of rays hit
		target := center.Add(core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5).Multiply(radius * 3))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Intersect(ray)
		if !isHit {
			continue
		}

		if d := hit.Point.Subtract(center).Length(); math.Abs(d-radius) > 1e-9*max(1, radius) {
			t.Fatalf("Hit point %v is %f from center, radius %f", hit.Point, d, radius)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal %v is not unit length", hit.Normal)
		}
		if hit.Dist <= 0 {
			t.Fatalf("Non-positive distance %f", hit.Dist)
		}
	}
}

func TestSphere_Intersect_UV(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, plainMaterial())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		u, v      float64
	}{
		// Direction to the center from (0,0,-1) is +Z
		{"front", core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1), 0.75, 0.5},
		// Direction to the center from (-1,0,0) is +X
		{"left", core.NewVec3(-4, 0, 0), core.NewVec3(1, 0, 0), 0.5, 0.5},
		// Direction to the center from (0,1,0) is -Y: v = 0.5 - atan(-1)/π
		{"top", core.NewVec3(0, 4, 0), core.NewVec3(0, -1, 0), 0.5, 0.75},
		{"bottom", core.NewVec3(0, -4, 0), core.NewVec3(0, 1, 0), 0.5, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Intersect(core.NewRay(tt.origin, tt.direction))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.U-tt.u) > 1e-9 || math.Abs(hit.V-tt.v) > 1e-9 {
				t.Errorf("Expected uv (%f,%f), got (%f,%f)", tt.u, tt.v, hit.U, hit.V)
			}
		})
	}
}

func TestSphere_Intersect_NoiseMaps(t *testing.T) {
	params := material.NoiseParams{Seed: 11, Octaves: 3, Wavelength: 0.5, Persistence: 0.5, Lacunarity: 2}
	ray := core.NewRay(core.NewVec3(0.2, 0.1, -4), core.NewVec3(0, 0, 1))

	plain := NewSphere(core.NewVec3(0, 0, 0), 1.0, plainMaterial())
	reference, isHit := plain.Intersect(ray)
	if !isHit {
		t.Fatal("Expected reference hit")
	}

	bumpyMat := plainMaterial()
	bumpyMat.NormalMap = material.NewNormalMap(params)
	bumpyMat.DisplacementMap = material.NewDisplacementMap(params)
	bumpy := NewSphere(core.NewVec3(0, 0, 0), 1.0, bumpyMat)

	hit, isHit := bumpy.Intersect(ray)
	if !isHit {
		t.Fatal("Expected hit on mapped sphere")
	}

	if hit.Dist != reference.Dist {
		t.Errorf("Distance should be the undisplaced root: expected %f, got %f", reference.Dist, hit.Dist)
	}
	if hit.U != reference.U || hit.V != reference.V {
		t.Errorf("UV should come from the undisplaced point: expected (%f,%f), got (%f,%f)",
			reference.U, reference.V, hit.U, hit.V)
	}

	expectedNormal := bumpyMat.NormalMap.Apply(reference.Normal, reference.Point)
	if !vecNear(hit.Normal, expectedNormal, 1e-12) {
		t.Errorf("Expected mapped normal %v, got %v", expectedNormal, hit.Normal)
	}

	expectedPoint := bumpyMat.DisplacementMap.Apply(reference.Point)
	if !vecNear(hit.Point, expectedPoint, 1e-12) {
		t.Errorf("Expected displaced point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Name(t *testing.T) {
	mat := plainMaterial()
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)
	if sphere.Name() != "Sphere" {
		t.Errorf("Expected name Sphere, got %s", sphere.Name())
	}
	if sphere.GetMaterial() != mat {
		t.Error("Expected sphere to return its material")
	}
}
