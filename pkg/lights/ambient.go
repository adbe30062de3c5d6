package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// AmbientLight lights every surface uniformly and is never shadowed
type AmbientLight struct {
	color     core.Vec3
	intensity float64
}

// NewAmbientLight creates a new ambient light
func NewAmbientLight(color core.Vec3, intensity float64) *AmbientLight {
	return &AmbientLight{color: color, intensity: intensity}
}

func (a *AmbientLight) Type() LightType    { return LightTypeAmbient }
func (a *AmbientLight) Color() core.Vec3   { return a.color }
func (a *AmbientLight) Intensity() float64 { return a.intensity }

// Sample has no direction for ambient light
func (a *AmbientLight) Sample(point core.Vec3) (LightSample, bool) {
	return LightSample{}, false
}
