package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer holds linear colors in [0, 1], indexed Pixels[row][column]
type Framebuffer struct {
	Width  int
	Height int
	Pixels [][]core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	pixels := make([][]core.Vec3, height)
	for y := range pixels {
		pixels[y] = make([]core.Vec3, width)
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y][x]
}

// Clear resets every pixel to color
func (fb *Framebuffer) Clear(c core.Vec3) {
	for y := range fb.Pixels {
		row := fb.Pixels[y]
		for x := range row {
			row[x] = c
		}
	}
}

// ToImage converts the framebuffer to 8-bit RGBA. Colors are clamped and then
// gamma corrected; a gamma of 1 or less writes linear values.
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(fb.Pixels[y][x], gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if gamma > 1 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
