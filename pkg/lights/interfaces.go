package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeAmbient     LightType = "ambient"
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light interface for the lights used by local shading
type Light interface {
	Type() LightType
	Color() core.Vec3
	Intensity() float64

	// Sample returns the direction FROM the shading point TO the light.
	// Ambient lights have no direction and report ok = false.
	Sample(point core.Vec3) (sample LightSample, ok bool)
}

// LightSample describes where a light is as seen from a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light, +Inf for directional lights
}

// Radiance returns color scaled by intensity
func Radiance(l Light) core.Vec3 {
	return l.Color().Multiply(l.Intensity())
}
