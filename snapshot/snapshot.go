// Package snapshot converts CHIP-8 framebuffers to images.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/nf/chip8term/chip8"
)

// MaxScale is the largest pixel size Image will draw.
const MaxScale = 100

var palette = color.Palette{color.Black, color.White}

// Image returns fb as an image with each pixel drawn as a scale×scale
// square. The scale is clamped to [1, MaxScale].
func Image(fb *chip8.Framebuffer, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	src := image.NewPaletted(image.Rect(0, 0, chip8.Width, chip8.Height), palette)
	for y := range fb {
		for x, on := range fb[y] {
			if on {
				src.SetColorIndex(x, y, 1)
			}
		}
	}
	if scale == 1 {
		return src
	}
	dst := image.NewPaletted(image.Rect(0, 0, chip8.Width*scale, chip8.Height*scale), palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteBMP writes fb to w in BMP format.
func WriteBMP(w io.Writer, fb *chip8.Framebuffer, scale int) error {
	return bmp.Encode(w, Image(fb, scale))
}

// SaveBMP writes fb to the named file in BMP format.
func SaveBMP(name string, fb *chip8.Framebuffer, scale int) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := WriteBMP(f, fb, scale); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encoding %s: %w", name, err)
	}
	return f.Close()
}
