package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TextureLoadError reports an image texture that could not be used
type TextureLoadError struct {
	Path   string
	Reason string
	Err    error // Underlying cause, if any
}

func (e *TextureLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("texture %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("texture %s: %s", e.Path, e.Reason)
}

func (e *TextureLoadError) Unwrap() error {
	return e.Err
}

// ImageData contains loaded image data as a row-major Vec3 color array on the 0-255 scale
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG or JPEG image. Only opaque RGB images are accepted:
// images with an alpha channel, palettes or a single gray channel are rejected.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &TextureLoadError{Path: filename, Reason: "failed to open image file", Err: err}
	}
	defer file.Close()

	// Auto-detects PNG/JPEG from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &TextureLoadError{Path: filename, Reason: "failed to decode image", Err: err}
	}

	if reason := unsupportedReason(img); reason != "" {
		return nil, &TextureLoadError{Path: filename, Reason: fmt.Sprintf("unsupported %s pixel format: %s", format, reason)}
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, &TextureLoadError{Path: filename, Reason: "image is empty"}
	}

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels; keep the high byte
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r>>8),
				float64(g>>8),
				float64(b>>8),
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// unsupportedReason returns why img is not an opaque RGB image, or "" if it is
func unsupportedReason(img image.Image) string {
	switch im := img.(type) {
	case *image.RGBA:
		if !im.Opaque() {
			return "image has transparent pixels"
		}
	case *image.RGBA64:
		if !im.Opaque() {
			return "image has transparent pixels"
		}
	case *image.YCbCr:
		// JPEG color images
	case *image.NRGBA, *image.NRGBA64:
		return "image has an alpha channel"
	case *image.Paletted:
		return "palette images are not supported"
	case *image.Gray, *image.Gray16:
		return "grayscale images are not supported"
	default:
		return fmt.Sprintf("%T is not an RGB image", img)
	}
	return ""
}

// LoadImageTexture loads an image file as a texture
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels), nil
}
