package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Disk represents a circular disk in 3D space
type Disk struct {
	Plane
	Radius float64
}

// NewDisk creates a new disk centered at center
func NewDisk(center, normal core.Vec3, radius float64, mat *material.Material) *Disk {
	return &Disk{
		Plane:  *NewPlane(center, normal, mat),
		Radius: radius,
	}
}

// Hit tests the supporting plane, then the radial distance in-plane
func (d *Disk) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	t, ok := d.hitDistance(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit := newIntercept(ray, t, d.Normal, d)
	local := hit.Point.Subtract(d.Point)
	if local.LengthSquared() > d.Radius*d.Radius {
		return nil, false // Outside disk
	}

	scale := 1 / (2 * d.Radius)
	u := 0.5 + local.Dot(d.right)*scale
	v := 0.5 + local.Dot(d.up)*scale
	return hit.withUV(u, v), true
}
