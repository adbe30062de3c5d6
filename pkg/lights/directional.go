package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is infinitely far away; its light travels along Direction
type DirectionalLight struct {
	Direction core.Vec3 // Unit direction the light travels, toward the scene
	color     core.Vec3
	intensity float64
}

// NewDirectionalLight creates a new directional light. The direction is normalized.
func NewDirectionalLight(direction, color core.Vec3, intensity float64) *DirectionalLight {
	return &DirectionalLight{
		Direction: direction.Normalize(),
		color:     color,
		intensity: intensity,
	}
}

func (d *DirectionalLight) Type() LightType    { return LightTypeDirectional }
func (d *DirectionalLight) Color() core.Vec3   { return d.color }
func (d *DirectionalLight) Intensity() float64 { return d.intensity }

// Sample points back against the travel direction at infinite distance
func (d *DirectionalLight) Sample(point core.Vec3) (LightSample, bool) {
	if d.Direction.IsZero() {
		return LightSample{}, false
	}
	return LightSample{
		Direction: d.Direction.Negate(),
		Distance:  math.Inf(1),
	}, true
}
