package renderer

import (
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestFramebuffer_ClearAndAt(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	if len(fb.Pixels) != 2 || len(fb.Pixels[0]) != 3 {
		t.Fatalf("Expected 2 rows of 3 pixels, got %d rows", len(fb.Pixels))
	}

	grey := core.NewVec3(0.5, 0.5, 0.5)
	fb.Clear(grey)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if !fb.At(x, y).Equals(grey) {
				t.Errorf("Pixel (%d,%d) = %v, want %v", x, y, fb.At(x, y), grey)
			}
		}
	}
}

func TestFramebuffer_ToImage(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Pixels[0][0] = core.NewVec3(2, -1, 0.5)
	fb.Pixels[0][1] = core.NewVec3(0.5, 0.5, 0.5)

	tests := []struct {
		name     string
		gamma    float64
		x        int
		expected color.RGBA
	}{
		{"Clamped linear", 1, 0, color.RGBA{255, 0, 128, 255}},
		{"Linear grey", 1, 1, color.RGBA{128, 128, 128, 255}},
		{"Gamma grey", 2.2, 1, color.RGBA{186, 186, 186, 255}},
		{"Gamma keeps extremes", 2.2, 0, color.RGBA{255, 0, 186, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := fb.ToImage(tt.gamma)
			if got := img.RGBAAt(tt.x, 0); got != tt.expected {
				t.Errorf("Pixel %d = %v, want %v", tt.x, got, tt.expected)
			}
		})
	}
}
