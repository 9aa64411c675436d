package renderer

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample resizes src to width×height with a triangle (tent) filter.
// draw.BiLinear widens its support by the scale factor when shrinking, so
// every source pixel of a supersampled render contributes to the output.
func Downsample(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
