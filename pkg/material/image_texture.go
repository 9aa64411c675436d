package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], 0-255 scale
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Color samples the texture at the given UV coordinates using nearest-neighbor lookup.
// UV wraps every unit; (0,0) is the top-left pixel and (1,1) approaches the bottom-right.
func (t *ImageTexture) Color(u, v float64) core.Vec3 {
	u = wrapUnit(u)
	v = wrapUnit(v)

	x := int(math.Round(u * float64(t.Width-1)))
	y := int(math.Round(v * float64(t.Height-1)))

	return t.Pixels[y*t.Width+x]
}

// wrapUnit folds s into [0, 1)
func wrapUnit(s float64) float64 {
	s = math.Mod(s, 1)
	if s < 0 {
		s += 1
	}
	// -tiny + 1 rounds to 1 in floating point
	if s >= 1 {
		s = 0
	}
	return s
}
