package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Ellipsoid represents an axis-aligned ellipsoid
type Ellipsoid struct {
	Center core.Vec3
	Radii  core.Vec3
	mat    *material.Material

	invRadii   core.Vec3 // Cached 1/radii, maps the ellipsoid to the unit sphere
	invRadiiSq core.Vec3 // Cached 1/radii², scales the gradient
}

// NewEllipsoid creates a new ellipsoid with semi-axes given by radii
func NewEllipsoid(center, radii core.Vec3, mat *material.Material) *Ellipsoid {
	inv := core.NewVec3(1/radii.X, 1/radii.Y, 1/radii.Z)
	return &Ellipsoid{
		Center:     center,
		Radii:      radii,
		mat:        mat,
		invRadii:   inv,
		invRadiiSq: inv.MultiplyVec(inv),
	}
}

// Material returns the ellipsoid's material
func (e *Ellipsoid) Material() *material.Material { return e.mat }

// Hit scales the ray into unit-sphere space and solves the sphere quadratic.
// The ray parameter is shared between both spaces.
func (e *Ellipsoid) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	o := ray.Origin.Subtract(e.Center).MultiplyVec(e.invRadii)
	d := ray.Direction.MultiplyVec(e.invRadii)

	a := d.Dot(d)
	halfB := o.Dot(d)
	c := o.Dot(o) - 1.0

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-halfB - sqrtD) / a
	if !inRange(t, tMin, tMax) {
		t = (-halfB + sqrtD) / a
		if !inRange(t, tMin, tMax) {
			return nil, false
		}
	}

	// Gradient of x²/rx² + y²/ry² + z²/rz² - 1
	local := ray.At(t).Subtract(e.Center)
	normal := local.MultiplyVec(e.invRadiiSq).Normalize()

	u, v := sphericalUV(local.MultiplyVec(e.invRadii).Normalize())
	return newIntercept(ray, t, normal, e).withUV(u, v), true
}
