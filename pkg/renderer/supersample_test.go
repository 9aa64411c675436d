package renderer

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsample_UniformColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	fill := color.RGBA{10, 200, 77, 255}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.SetRGBA(x, y, fill)
		}
	}

	dst := Downsample(src, 4, 3)

	if dst.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("Unexpected bounds %v", dst.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := dst.RGBAAt(x, y); got != fill {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, fill, got)
			}
		}
	}
}

func TestDownsample_AveragesBlock(t *testing.T) {
	// 2x2 black/white checker down to one pixel is mid gray
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	src.SetRGBA(1, 0, color.RGBA{0, 0, 0, 255})
	src.SetRGBA(0, 1, color.RGBA{0, 0, 0, 255})

	got := Downsample(src, 1, 1).RGBAAt(0, 0)
	if got.R != 128 && got.R != 127 {
		t.Errorf("Expected mid gray, got %v", got)
	}
	if got.A != 255 {
		t.Errorf("Expected opaque output, got alpha %d", got.A)
	}
}

func TestDownsample_SameSizeIsIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 9)
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}

	dst := Downsample(src, 3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if dst.RGBAAt(x, y) != src.RGBAAt(x, y) {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, src.RGBAAt(x, y), dst.RGBAAt(x, y))
			}
		}
	}
}

func TestDownsample_TentWeights(t *testing.T) {
	// Halving a 4 pixel row gives each output a support of two source pixels
	// on either side of its center: weights 0.75, 0.75 and 0.25, renormalized
	// at the image edge.
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	for x, v := range []uint8{0, 0, 255, 255} {
		src.SetRGBA(x, 0, color.RGBA{v, v, v, 255})
	}

	dst := Downsample(src, 2, 1)

	tests := []struct {
		x        int
		expected uint8
	}{
		{0, 36},  // 255 * 0.25 / 1.75
		{1, 218}, // 255 * 1.5 / 1.75
	}
	for _, tt := range tests {
		got := dst.RGBAAt(tt.x, 0)
		if diff := int(got.R) - int(tt.expected); diff < -1 || diff > 1 {
			t.Errorf("Pixel %d: expected about %d, got %d", tt.x, tt.expected, got.R)
		}
		if got.R != got.G || got.G != got.B {
			t.Errorf("Pixel %d: expected gray, got %v", tt.x, got)
		}
	}
}

func TestDownsample_SubImage(t *testing.T) {
	// Only the sub-image bounds are read
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	inner := image.Rect(4, 4, 8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if image.Pt(x, y).In(inner) {
				c = color.RGBA{200, 100, 50, 255}
			}
			src.SetRGBA(x, y, c)
		}
	}

	dst := Downsample(src.SubImage(inner).(*image.RGBA), 2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := dst.RGBAAt(x, y); got != (color.RGBA{200, 100, 50, 255}) {
				t.Errorf("Pixel (%d,%d): expected the sub-image color, got %v", x, y, got)
			}
		}
	}
}
