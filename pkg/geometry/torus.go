package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Torus represents a ring around the Y axis
type Torus struct {
	Center      core.Vec3
	MajorRadius float64 // Distance from the center to the middle of the tube
	MinorRadius float64 // Radius of the tube
	mat         *material.Material

	bounds *Sphere // Cached bounding sphere for early rejection
}

// NewTorus creates a new torus lying in the XZ plane
func NewTorus(center core.Vec3, majorRadius, minorRadius float64, mat *material.Material) *Torus {
	return &Torus{
		Center:      center,
		MajorRadius: majorRadius,
		MinorRadius: minorRadius,
		mat:         mat,
		bounds:      NewSphere(center, majorRadius+minorRadius, nil),
	}
}

// Material returns the torus's material
func (tr *Torus) Material() *material.Material { return tr.mat }

// Hit solves the quartic from the implicit torus equation
// (x² + y² + z² - R² - r²)² = 4R²(r² - y²) and takes the smallest valid root.
func (tr *Torus) Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool) {
	// A ray starting outside the bounding sphere must cross it to reach the tube
	if !tr.bounds.contains(ray.Origin) {
		if _, ok := tr.bounds.Hit(ray, tMin, tMax); !ok {
			return nil, false
		}
	}

	o := ray.Origin.Subtract(tr.Center)
	d := ray.Direction
	R, r := tr.MajorRadius, tr.MinorRadius

	sumDSq := d.Dot(d)
	e := o.Dot(o) - R*R - r*r
	f := o.Dot(d)
	fourR2 := 4.0 * R * R

	coeffs := [5]float64{
		sumDSq * sumDSq,
		4.0 * sumDSq * f,
		2.0*sumDSq*e + 4.0*f*f + fourR2*d.Y*d.Y,
		4.0*f*e + 2.0*fourR2*o.Y*d.Y,
		e*e - fourR2*(r*r-o.Y*o.Y),
	}

	t := math.Inf(1)
	for _, root := range solveQuartic(coeffs) {
		if inRange(root, tMin, tMax) {
			t = root
			break
		}
	}
	if math.IsInf(t, 1) {
		return nil, false
	}

	// Gradient of (x² + y² + z² + R² - r²)² - 4R²(x² + z²)
	p := o.Add(d.Multiply(t))
	q := p.Dot(p) + R*R - r*r
	normal := core.NewVec3(
		4.0*p.X*q-8.0*R*R*p.X,
		4.0*p.Y*q,
		4.0*p.Z*q-8.0*R*R*p.Z,
	).Normalize()

	u := math.Atan2(p.Z, p.X)/(2*math.Pi) + 0.5
	v := math.Atan2(p.Y, math.Hypot(p.X, p.Z)-R)/(2*math.Pi) + 0.5
	return newIntercept(ray, t, normal, tr).withUV(u, v), true
}
