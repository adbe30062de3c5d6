package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intercept contains information about a ray-object intersection
type Intercept struct {
	Point        core.Vec3 // Point of intersection
	Normal       core.Vec3 // Unit normal, oriented outward from the surface
	Distance     float64   // Ray parameter of the hit, always greater than Epsilon
	Object       Shape     // Shape that was hit
	UV           core.Vec2 // Texture coordinates, valid when HasUV is set
	HasUV        bool
	RayDirection core.Vec3 // Direction of the ray that produced the hit
}

// newIntercept fills the fields every shape reports
func newIntercept(ray core.Ray, t float64, normal core.Vec3, object Shape) *Intercept {
	return &Intercept{
		Point:        ray.At(t),
		Normal:       normal,
		Distance:     t,
		Object:       object,
		RayDirection: ray.Direction,
	}
}

// withUV attaches texture coordinates to the intercept
func (i *Intercept) withUV(u, v float64) *Intercept {
	i.UV = core.NewVec2(u, v)
	i.HasUV = true
	return i
}

// FrontFace reports whether the ray arrived from the side the normal points to
func (i *Intercept) FrontFace() bool {
	return i.RayDirection.Dot(i.Normal) < 0
}

// ShadingNormal returns the normal flipped to face the incoming ray
func (i *Intercept) ShadingNormal() core.Vec3 {
	if i.FrontFace() {
		return i.Normal
	}
	return i.Normal.Negate()
}
