package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	mat    *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		mat:    mat,
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() *material.Material { return s.mat }

// Hit tests if a ray intersects with the sphere using the closest-approach
// projection. The ray direction must be unit length.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	// Vector from ray origin to sphere center, projected onto the ray
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return nil, false
	}

	thc := math.Sqrt(r2 - d2)

	// Near root first, far root when the origin is inside
	t := tca - thc
	if !inRange(t, tMin, tMax) {
		t = tca + thc
		if !inRange(t, tMin, tMax) {
			return nil, false
		}
	}

	point := ray.At(t)
	normal := point.Subtract(s.Center).Normalize()
	u, v := sphericalUV(normal)

	return newIntercept(ray, t, normal, s).withUV(u, v), true
}

// sphericalUV maps a unit direction to longitude/latitude texture coordinates.
// v = 1 at the +Y pole.
func sphericalUV(n core.Vec3) (float64, float64) {
	u := math.Atan2(n.Z, n.X)/(2*math.Pi) + 0.5
	v := 1 - math.Acos(core.Clamp(n.Y, -1, 1))/math.Pi
	return u, v
}

// contains reports whether p lies inside or on the sphere
func (s *Sphere) contains(p core.Vec3) bool {
	return p.Subtract(s.Center).LengthSquared() <= s.Radius*s.Radius
}
