package material

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestMaterial_RawColor(t *testing.T) {
	m := NewMaterial(core.NewVec3(0, 0, 255), 0.3, 0.2, 20, 0)
	if m.RawColor() != core.NewVec3(0, 0, 255) {
		t.Errorf("Expected raw color (0,0,255), got %v", m.RawColor())
	}
	if m.IsReflective() {
		t.Error("Material with zero reflectivity should not be reflective")
	}
	if !NewMaterial(core.Vec3{}, 0, 0, 0, 0.5).IsReflective() {
		t.Error("Material with reflectivity 0.5 should be reflective")
	}
}

func TestMaterial_Shade_Diffuse(t *testing.T) {
	hit := core.NewIntersection(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), 3, 0, 0)
	cameraRay := core.NewRay(core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1))

	tests := []struct {
		name      string
		lightDir  core.Vec3
		expectedB float64
	}{
		{"Light along the normal", core.NewVec3(0, 0, -1), 255 * 0.5},
		{"Light at 60 degrees", core.NewVec3(math.Sqrt(3), 0, -1), 255 * 0.5 * 0.5},
		{"Light behind the surface", core.NewVec3(0, 0, 1), 0},
		{"Light at grazing angle", core.NewVec3(1, 0, 0), 0},
	}

	m := NewMaterial(core.NewVec3(0, 0, 255), 0.5, 0, 0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shadowRay := core.NewRay(hit.OffsetPoint(), tt.lightDir)
			color := m.Shade(shadowRay, cameraRay, hit)

			expected := core.NewVec3(0, 0, tt.expectedB)
			if !vecNear(color, expected, 1e-9) {
				t.Errorf("Expected %v, got %v", expected, color)
			}
		})
	}
}

func TestMaterial_Shade_Specular(t *testing.T) {
	hit := core.NewIntersection(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), 3, 0, 0)
	cameraRay := core.NewRay(core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1))
	shadowRay := core.NewRay(hit.OffsetPoint(), core.NewVec3(0, 0, -1))

	m := NewMaterial(core.NewVec3(0, 0, 0), 0, 0.2, 20, 0)
	color := m.Shade(shadowRay, cameraRay, hit)

	// Light, viewer and normal coincide: the half vector is the normal
	expected := core.NewVec3(51, 51, 51)
	if !vecNear(color, expected, 1e-9) {
		t.Errorf("Expected full highlight %v, got %v", expected, color)
	}

	// Off-axis light: (cos of half angle)^glossiness
	offAxis := core.NewRay(hit.OffsetPoint(), core.NewVec3(1, 0, -1))
	color = m.Shade(offAxis, cameraRay, hit)
	half := core.NewVec3(1, 0, -1).Normalize().Add(core.NewVec3(0, 0, -1)).Normalize()
	f := math.Pow(half.Dot(hit.Normal), 20)
	expected = core.Splat(255 * f * 0.2)
	if !vecNear(color, expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, color)
	}
}

func TestMaterial_Shade_Textured(t *testing.T) {
	// A black checker tile removes the diffuse term; a white tile leaves it unchanged
	hitWhite := core.NewIntersection(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1, 0.25, 0.25)
	hitBlack := core.NewIntersection(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1, 0.25, -0.25)
	cameraRay := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	shadowRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	m := NewTexturedMaterial(core.NewVec3(100, 100, 100), 0.7, 0, 0, 1, NewCheckerboard(1))

	white := m.Shade(shadowRay, cameraRay, hitWhite)
	if !vecNear(white, core.Splat(70), 1e-9) {
		t.Errorf("Expected (70,70,70) on white tile, got %v", white)
	}

	black := m.Shade(shadowRay, cameraRay, hitBlack)
	if !vecNear(black, core.Vec3{}, 1e-9) {
		t.Errorf("Expected black on black tile, got %v", black)
	}
}

func TestMaterial_SharedTexture(t *testing.T) {
	texture := NewImageTexture(1, 1, []core.Vec3{core.NewVec3(255, 0, 0)})
	a := NewTexturedMaterial(core.Splat(255), 1, 0, 0, 0, texture)
	b := NewTexturedMaterial(core.Splat(128), 1, 0, 0, 0, texture)

	if a.Texture != b.Texture {
		t.Error("Materials should reference the same texture instance")
	}
}

func TestMaterial_ApplyMaps(t *testing.T) {
	plain := NewMaterial(core.Splat(255), 1, 0, 0, 0)
	normal := core.NewVec3(0, 1, 0)
	pos := core.NewVec3(0.3, 0.7, 0.1)

	if plain.ApplyNormalMap(normal, pos) != normal {
		t.Error("Material without a normal map should not change the normal")
	}
	if plain.ApplyDisplacementMap(pos) != pos {
		t.Error("Material without a displacement map should not move the point")
	}

	bumpy := NewMaterial(core.Splat(255), 1, 0, 0, 0)
	bumpy.NormalMap = NewNormalMap(DefaultNoiseParams())
	bumpy.DisplacementMap = NewDisplacementMap(DefaultNoiseParams())

	if got, want := bumpy.ApplyNormalMap(normal, pos), bumpy.NormalMap.Apply(normal, pos); got != want {
		t.Errorf("Expected normal map result %v, got %v", want, got)
	}
	if got, want := bumpy.ApplyDisplacementMap(pos), bumpy.DisplacementMap.Apply(pos); got != want {
		t.Errorf("Expected displacement map result %v, got %v", want, got)
	}
}
