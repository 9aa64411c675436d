package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer traces the pixels of one rectangular region of the image
type TileRenderer struct {
	scene         *scene.Scene
	width, height int
	aspectRatio   float64
	maxDepth      int
}

// NewTileRenderer creates a tile renderer for a width×height image
func NewTileRenderer(s *scene.Scene, width, height, maxDepth int) *TileRenderer {
	return &TileRenderer{
		scene:       s,
		width:       width,
		height:      height,
		aspectRatio: float64(width) / float64(height),
		maxDepth:    maxDepth,
	}
}

// RenderTileBounds renders the pixels within bounds into img and returns the pixel count.
// Concurrent calls are safe as long as their bounds do not overlap.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *image.RGBA) int {
	camera := tr.scene.Camera

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := camera.GetRay(x, y, tr.width, tr.height, tr.aspectRatio)
			r, g, b := TraceRay(tr.scene, ray, 0, tr.maxDepth).ToRGB()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return bounds.Dx() * bounds.Dy()
}
