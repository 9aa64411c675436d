package lights

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_Scale(t *testing.T) {
	tests := []struct {
		name      string
		color     core.Vec3
		intensity float64
		expected  core.Vec3
	}{
		{"White unit intensity", core.NewVec3(255, 255, 255), 1, core.NewVec3(1, 1, 1)},
		{"Green double intensity", core.NewVec3(0, 255, 0), 2, core.NewVec3(0, 2, 0)},
		{"Half gray", core.NewVec3(127.5, 127.5, 127.5), 1, core.NewVec3(0.5, 0.5, 0.5)},
		{"Zero intensity", core.NewVec3(255, 255, 255), 0, core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewPointLight(core.NewVec3(0, 0, 0), tt.color, tt.intensity)
			got := light.Scale()
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(4, 4, 0), core.NewVec3(255, 255, 255), 2)
	sample := light.Sample(core.NewVec3(0, 0, -1))

	if sample.Point != light.Position {
		t.Errorf("Expected sample point %v, got %v", light.Position, sample.Point)
	}
	if sample.Direction != core.NewVec3(4, 4, 1) {
		t.Errorf("Expected direction (4,4,1), got %v", sample.Direction)
	}
	if math.Abs(sample.Distance-math.Sqrt(33)) > 1e-12 {
		t.Errorf("Expected distance sqrt(33), got %f", sample.Distance)
	}
	if sample.Scale != core.NewVec3(2, 2, 2) {
		t.Errorf("Expected scale (2,2,2), got %v", sample.Scale)
	}
}
