package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder represents a capped cylinder aligned with the Y axis
type Cylinder struct {
	Center core.Vec3 // Midpoint of the axis
	Radius float64
	Height float64
	mat    *material.Material
}

// NewCylinder creates a new capped cylinder centered at center
func NewCylinder(center core.Vec3, radius, height float64, mat *material.Material) *Cylinder {
	return &Cylinder{
		Center: center,
		Radius: radius,
		Height: height,
		mat:    mat,
	}
}

// Material returns the cylinder's material
func (c *Cylinder) Material() *material.Material { return c.mat }

// Hit tests the lateral surface and both caps, returning the nearest hit
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	o := ray.Origin.Subtract(c.Center)
	d := ray.Direction
	yMin := -c.Height * 0.5
	yMax := c.Height * 0.5
	r2 := c.Radius * c.Radius

	var best *Intercept
	closest := tMax

	// Lateral surface of the infinite cylinder, clipped to the height window
	a := d.X*d.X + d.Z*d.Z
	if math.Abs(a) > Epsilon {
		b := 2.0 * (o.X*d.X + o.Z*d.Z)
		cc := o.X*o.X + o.Z*o.Z - r2
		discriminant := b*b - 4*a*cc
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			for _, t := range [2]float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)} {
				if !inRange(t, tMin, closest) {
					continue
				}
				local := o.Add(d.Multiply(t))
				if local.Y < yMin || local.Y > yMax {
					continue
				}
				normal := core.NewVec3(local.X, 0, local.Z).Normalize()
				u := math.Atan2(local.Z, local.X)/(2*math.Pi) + 0.5
				v := (local.Y - yMin) / c.Height
				best = newIntercept(ray, t, normal, c).withUV(u, v)
				closest = t
				break
			}
		}
	}

	// Caps, skipped when the ray runs parallel to them
	if math.Abs(d.Y) > Epsilon {
		caps := [2]struct{ y, ny float64 }{{yMax, 1}, {yMin, -1}}
		for _, cp := range caps {
			t := (cp.y - o.Y) / d.Y
			if !inRange(t, tMin, closest) {
				continue
			}
			x := o.X + d.X*t
			z := o.Z + d.Z*t
			if x*x+z*z > r2 {
				continue
			}
			normal := core.NewVec3(0, cp.ny, 0)
			scale := 1 / (2 * c.Radius)
			best = newIntercept(ray, t, normal, c).withUV(0.5+x*scale, 0.5+z*scale)
			closest = t
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}
