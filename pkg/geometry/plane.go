package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents an infinite plane through Point with the given Normal
type Plane struct {
	Point  core.Vec3
	Normal core.Vec3
	mat    *material.Material

	// In-plane basis used for texture coordinates
	right core.Vec3
	up    core.Vec3
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	right, up := planeBasis(n)
	return &Plane{
		Point:  point,
		Normal: n,
		mat:    mat,
		right:  right,
		up:     up,
	}
}

// Material returns the plane's material
func (p *Plane) Material() *material.Material { return p.mat }

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	t, ok := p.hitDistance(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit := newIntercept(ray, t, p.Normal, p)
	local := hit.Point.Subtract(p.Point)
	return hit.withUV(local.Dot(p.right), local.Dot(p.up)), true
}

// hitDistance returns the ray parameter where the ray crosses the plane
func (p *Plane) hitDistance(ray core.Ray, tMin, tMax float64) (float64, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < Epsilon {
		return 0, false // Ray is parallel to plane
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denom
	if !inRange(t, tMin, tMax) {
		return 0, false
	}
	return t, true
}

// planeBasis builds two unit vectors perpendicular to n and to each other
func planeBasis(n core.Vec3) (core.Vec3, core.Vec3) {
	var helper core.Vec3
	if math.Abs(n.X) > 0.1 {
		helper = core.NewVec3(0, 1, 0)
	} else {
		helper = core.NewVec3(1, 0, 0)
	}

	right := helper.Cross(n).Normalize()
	up := n.Cross(right).Normalize()
	return right, up
}
