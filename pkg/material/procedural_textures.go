package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	checkerBlack = core.NewVec3(0, 0, 0)
	checkerWhite = core.NewVec3(255, 255, 255)
)

// Checkerboard is a procedural two-color tile pattern with period Dim in u and v
type Checkerboard struct {
	Dim float64
}

// NewCheckerboard creates a checkerboard texture with tiles of size dim/2
func NewCheckerboard(dim float64) *Checkerboard {
	return &Checkerboard{Dim: dim}
}

// Color folds (u, v) into [-Dim/2, Dim/2) and returns black when exactly one
// folded coordinate is positive and the other negative, white otherwise
func (c *Checkerboard) Color(u, v float64) core.Vec3 {
	s := c.fold(u)
	t := c.fold(v)

	if s > 0 && t < 0 || s < 0 && t > 0 {
		return checkerBlack
	}
	return checkerWhite
}

func (c *Checkerboard) fold(x float64) float64 {
	half := c.Dim / 2
	x = math.Mod(x, c.Dim)
	if x > 0 {
		return x - half
	}
	return x + half
}
