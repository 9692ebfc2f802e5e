package snapshot

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/nf/chip8term/chip8"
)

func TestImage(t *testing.T) {
	var fb chip8.Framebuffer
	fb[0][0] = true
	fb[31][63] = true
	for _, scale := range []int{0, 1, 3} {
		m := Image(&fb, scale)
		s := scale
		if s < 1 {
			s = 1
		}
		if g, w := m.Bounds().Dx(), chip8.Width*s; g != w {
			t.Errorf("scale %d: width %d, want %d", scale, g, w)
		}
		if g, w := m.Bounds().Dy(), chip8.Height*s; g != w {
			t.Errorf("scale %d: height %d, want %d", scale, g, w)
		}
		for _, c := range []struct {
			x, y int
			on   bool
		}{
			{0, 0, true},
			{s - 1, s - 1, true},
			{s, 0, false},
			{chip8.Width*s - 1, chip8.Height*s - 1, true},
			{chip8.Width*s - 1 - s, chip8.Height*s - 1, false},
		} {
			if g := isWhite(m.At(c.x, c.y)); g != c.on {
				t.Errorf("scale %d: pixel (%d, %d) on=%v, want %v", scale, c.x, c.y, g, c.on)
			}
		}
	}
}

func TestImageMaxScale(t *testing.T) {
	var fb chip8.Framebuffer
	for _, scale := range []int{MaxScale, MaxScale + 1, 100000} {
		b := Image(&fb, scale).Bounds()
		if b.Dx() != chip8.Width*MaxScale || b.Dy() != chip8.Height*MaxScale {
			t.Errorf("scale %d: image is %dx%d, want %dx%d", scale,
				b.Dx(), b.Dy(), chip8.Width*MaxScale, chip8.Height*MaxScale)
		}
	}
}

func TestWriteBMP(t *testing.T) {
	var fb chip8.Framebuffer
	fb[1][2] = true
	var buf bytes.Buffer
	if err := WriteBMP(&buf, &fb, 2); err != nil {
		t.Fatal(err)
	}
	m, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if g, w := m.Bounds().Size().X, chip8.Width*2; g != w {
		t.Errorf("decoded width %d, want %d", g, w)
	}
	for y := 0; y < chip8.Height*2; y++ {
		for x := 0; x < chip8.Width*2; x++ {
			want := fb[y/2][x/2]
			if g := isWhite(m.At(x, y)); g != want {
				t.Fatalf("decoded pixel (%d, %d) on=%v, want %v", x, y, g, want)
			}
		}
	}
}

func TestSaveBMP(t *testing.T) {
	name := filepath.Join(t.TempDir(), "shot.bmp")
	var fb chip8.Framebuffer
	if err := SaveBMP(name, &fb, 1); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := bmp.DecodeConfig(f); err != nil {
		t.Fatal(err)
	}
}

func isWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}
