package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials.
// Implementations are immutable once built and may be shared by any number
// of materials.
type Texture interface {
	// Color returns the 0-255 scale color at surface coordinates (u, v)
	Color(u, v float64) core.Vec3
}
