package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates primary rays for a pinhole camera at eye looking down -Z
type Camera struct {
	eye         core.Vec3
	width       int
	height      int
	aspectRatio float64
	scale       float64 // tan(fov/2)
}

// NewCamera creates a camera for a width x height image with the given
// vertical field of view in degrees
func NewCamera(eye core.Vec3, fovDegrees float64, width, height int) *Camera {
	return &Camera{
		eye:         eye,
		width:       width,
		height:      height,
		aspectRatio: float64(width) / float64(height),
		scale:       math.Tan(fovDegrees * math.Pi / 360),
	}
}

// GetRay returns the ray through the center of pixel (i, j), with (0, 0) the
// top-left pixel
func (c *Camera) GetRay(i, j int) core.Ray {
	x := (2*(float64(i)+0.5)/float64(c.width) - 1) * c.aspectRatio
	y := 1 - 2*(float64(j)+0.5)/float64(c.height)

	direction := core.NewVec3(x*c.scale, y*c.scale, -1)
	return core.NewRay(c.eye, direction)
}

// Eye returns the camera position
func (c *Camera) Eye() core.Vec3 { return c.eye }
