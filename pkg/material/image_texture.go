package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image with bilinear filtering
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample returns the bilinearly filtered color at (u, v). UV wraps around and
// v = 0 is the bottom row of the image.
func (t *ImageTexture) Sample(u, v float64) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u = wrap(u)
	v = wrap(v)

	x := u * float64(t.Width-1)
	y := (1.0 - v) * float64(t.Height-1)
	return bilinear(t.Pixels, t.Width, t.Height, x, y)
}

// wrap maps a coordinate into [0, 1)
func wrap(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		x = 0
	}
	return x
}

// bilinear interpolates the four pixels around continuous pixel position (x, y)
func bilinear(pixels []core.Vec3, width, height int, x, y float64) core.Vec3 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x0 = max(0, min(width-1, x0))
	y0 = max(0, min(height-1, y0))
	x1 := min(x0+1, width-1)
	y1 := min(y0+1, height-1)

	sx := x - float64(x0)
	sy := y - float64(y0)

	c00 := pixels[y0*width+x0]
	c10 := pixels[y0*width+x1]
	c01 := pixels[y1*width+x0]
	c11 := pixels[y1*width+x1]

	c0 := c00.Multiply(1 - sx).Add(c10.Multiply(sx))
	c1 := c01.Multiply(1 - sx).Add(c11.Multiply(sx))
	return c0.Multiply(1 - sy).Add(c1.Multiply(sy))
}
