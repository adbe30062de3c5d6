package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// EquirectangularMap is a latitude-longitude environment image
type EquirectangularMap struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 is the zenith
}

// NewEquirectangularMap creates an environment map from decoded pixels
func NewEquirectangularMap(width, height int, pixels []core.Vec3) *EquirectangularMap {
	return &EquirectangularMap{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// DirectionToUV projects a direction onto equirectangular coordinates:
// u = atan2(z, x)/2π + 0.5, v = acos(y)/π
func DirectionToUV(direction core.Vec3) (u, v float64) {
	d := direction.Normalize()
	theta := math.Atan2(d.Z, d.X)
	phi := math.Acos(core.Clamp(d.Y, -1, 1))
	return theta/(2*math.Pi) + 0.5, phi / math.Pi
}

// Sample returns the bilinearly filtered radiance along direction. Images are
// stored top row first, so straight up (v = 0) reads row 0. Maps laid out
// with the zenith in the bottom row, as y = (1-v)(h-1) lookups expect, come
// out upside down and must be flipped vertically.
func (e *EquirectangularMap) Sample(direction core.Vec3) core.Vec3 {
	if e.Width == 0 || e.Height == 0 {
		return core.Vec3{}
	}

	u, v := DirectionToUV(direction)
	x := wrap(u) * float64(e.Width-1)
	y := core.Clamp(v, 0, 1) * float64(e.Height-1)
	return bilinear(e.Pixels, e.Width, e.Height, x, y)
}
