package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3          // The three vertices
	mat        *material.Material // Material of the triangle
	normal     core.Vec3          // Cached face normal
	vertexN    *[3]core.Vec3      // Optional per-vertex normals for smooth shading
}

// NewTriangle creates a new triangle from three vertices. The normal follows
// the counter-clockwise winding of v0, v1, v2.
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:  v0,
		V1:  v1,
		V2:  v2,
		mat: mat,
	}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return t
}

// NewTriangleWithNormals creates a triangle whose normal is interpolated from
// per-vertex normals. Zero-length vertex normals fall back to the face normal.
func NewTriangleWithNormals(v0, v1, v2, n0, n1, n2 core.Vec3, mat *material.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	if n0.IsZero() || n1.IsZero() || n2.IsZero() {
		return t
	}
	t.vertexN = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// Material returns the triangle's material
func (t *Triangle) Material() *material.Material { return t.mat }

// Normal returns the face normal
func (t *Triangle) Normal() core.Vec3 { return t.normal }

// parallelEpsilon bounds |det| relative to the edge lengths
const parallelEpsilon = 1e-8

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Determinant near zero means the ray lies in the triangle's plane. The
	// bound scales with the edges so small triangles still hit.
	if math.Abs(a) <= parallelEpsilon*edge1.Length()*edge2.Length() {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	dist := f * edge2.Dot(q)
	if !inRange(dist, tMin, tMax) {
		return nil, false
	}

	normal := t.normal
	if t.vertexN != nil {
		w := 1 - u - v
		smooth := t.vertexN[0].Multiply(w).Add(t.vertexN[1].Multiply(u)).Add(t.vertexN[2].Multiply(v)).Normalize()
		if !smooth.IsZero() {
			normal = smooth
		}
	}

	return newIntercept(ray, dist, normal, t).withUV(u, v), true
}
