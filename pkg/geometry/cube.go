package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cube represents an axis-aligned box between two corners
type Cube struct {
	Min core.Vec3
	Max core.Vec3
	mat *material.Material
}

// NewCube creates an axis-aligned box. The corners may be given in any order.
func NewCube(a, b core.Vec3, mat *material.Material) *Cube {
	return &Cube{
		Min: core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
		mat: mat,
	}
}

// NewCubeAt creates a box centered at center with the given edge lengths
func NewCubeAt(center, size core.Vec3, mat *material.Material) *Cube {
	half := size.Multiply(0.5)
	return NewCube(center.Subtract(half), center.Add(half), mat)
}

// Material returns the cube's material
func (c *Cube) Material() *material.Material { return c.mat }

// Hit tests if a ray intersects with the box using the slab method
func (c *Cube) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis, farAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Component(axis)
		d := ray.Direction.Component(axis)
		lo := c.Min.Component(axis)
		hi := c.Max.Component(axis)

		if math.Abs(d) < 1e-12 {
			// Parallel to this slab: inside it or a miss
			if o < lo || o > hi {
				return nil, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, axis
		}
		if t2 < tFar {
			tFar, farAxis = t2, axis
		}
	}

	if tNear > tFar || tFar <= Epsilon {
		return nil, false
	}

	// Entry face, or exit face when the origin is inside
	t, axis, sign := tNear, nearAxis, -1.0
	if !inRange(t, tMin, tMax) {
		t, axis, sign = tFar, farAxis, 1.0
		if !inRange(t, tMin, tMax) {
			return nil, false
		}
	}

	var n [3]float64
	n[axis] = sign * math.Copysign(1, ray.Direction.Component(axis))
	normal := core.NewVec3(n[0], n[1], n[2])

	hit := newIntercept(ray, t, normal, c)
	u, v := c.faceUV(hit.Point, axis)
	return hit.withUV(u, v), true
}

// faceUV returns coordinates across the face perpendicular to axis
func (c *Cube) faceUV(p core.Vec3, axis int) (float64, float64) {
	ua, va := (axis+1)%3, (axis+2)%3
	if axis == 1 {
		ua, va = 0, 2
	}
	u := (p.Component(ua) - c.Min.Component(ua)) / math.Max(Epsilon, c.Max.Component(ua)-c.Min.Component(ua))
	v := (p.Component(va) - c.Min.Component(va)) / math.Max(Epsilon, c.Max.Component(va)-c.Min.Component(va))
	return u, v
}
