package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Epsilon is the smallest ray parameter a shape reports as a hit
const Epsilon = 1e-6

// Shape interface for objects that can be hit by rays. Hit returns the nearest
// intersection with tMin < t < tMax; tMin is never allowed below Epsilon.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*Intercept, bool)
	Material() *material.Material
}

// inRange reports whether t lies inside the open interval accepted by Hit
func inRange(t, tMin, tMax float64) bool {
	return t > max(tMin, Epsilon) && t < tMax
}
