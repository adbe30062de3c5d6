package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides spatially-varying colors addressed by texture coordinates.
// Coordinates outside [0, 1) wrap around.
type Texture interface {
	Sample(u, v float64) core.Vec3
}

// EnvironmentMap provides the radiance seen along a unit direction
type EnvironmentMap interface {
	Sample(direction core.Vec3) core.Vec3
}
