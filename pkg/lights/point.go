package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight emits from a single position. Intensity does not fall off with distance.
type PointLight struct {
	Position  core.Vec3
	color     core.Vec3
	intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		color:     color,
		intensity: intensity,
	}
}

func (p *PointLight) Type() LightType    { return LightTypePoint }
func (p *PointLight) Color() core.Vec3   { return p.color }
func (p *PointLight) Intensity() float64 { return p.intensity }

// Sample returns the direction and distance to the light position
func (p *PointLight) Sample(point core.Vec3) (LightSample, bool) {
	toLight := p.Position.Subtract(point)
	distance := toLight.Length()
	if distance < core.Epsilon {
		return LightSample{}, false
	}
	return LightSample{
		Direction: toLight.Multiply(1 / distance),
		Distance:  distance,
	}, true
}
