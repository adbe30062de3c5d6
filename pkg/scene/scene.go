package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MinHitDistance is the smallest distance Intersect accepts, keeping
// secondary rays from re-hitting the surface they start on
const MinHitDistance = 1e-4

// CameraConfig holds the pinhole camera a scene is meant to be viewed from.
// The camera sits at Eye and looks down -Z.
type CameraConfig struct {
	Eye      core.Vec3
	FOV      float64 // Vertical field of view in degrees
	MaxDepth int     // Maximum recursion depth for reflection and refraction
}

// DefaultCameraConfig returns the camera used when a scene does not set one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:      core.NewVec3(0, 0, 0),
		FOV:      60,
		MaxDepth: 3,
	}
}

// DefaultBackground is the color returned for rays that escape the scene
var DefaultBackground = core.NewVec3(0.93, 0.94, 0.96)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       CameraConfig
	Shapes       []geometry.Shape // Objects in the scene, order only breaks ties
	Lights       []lights.Light   // Lights in the scene
	Background   core.Vec3
	EnvMap       material.EnvironmentMap // Optional, replaces Background when set
	EnvIntensity float64
}

// NewScene creates an empty scene with the default camera and background
func NewScene() *Scene {
	return &Scene{
		Camera:       DefaultCameraConfig(),
		Shapes:       make([]geometry.Shape, 0),
		Lights:       make([]lights.Light, 0),
		Background:   DefaultBackground,
		EnvIntensity: 1.0,
	}
}

// AddShape appends shapes to the scene
func (s *Scene) AddShape(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddTriangles appends a loaded mesh to the scene
func (s *Scene) AddTriangles(triangles []*geometry.Triangle) {
	for _, tri := range triangles {
		s.Shapes = append(s.Shapes, tri)
	}
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(l ...lights.Light) {
	s.Lights = append(s.Lights, l...)
}

// Intersect returns the closest hit along the ray. Shapes are tested in
// order and a later shape only wins when it is strictly closer.
func (s *Scene) Intersect(ray core.Ray) (*geometry.Intercept, bool) {
	var closest *geometry.Intercept
	tMax := math.Inf(1)

	for _, shape := range s.Shapes {
		if hit, ok := shape.Hit(ray, MinHitDistance, tMax); ok {
			closest = hit
			tMax = hit.Distance
		}
	}

	return closest, closest != nil
}

// Occluded reports whether anything blocks the ray before maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	for _, shape := range s.Shapes {
		if _, ok := shape.Hit(ray, MinHitDistance, maxDistance); ok {
			return true
		}
	}
	return false
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// Validate checks that every shape has a material and the camera is usable
func (s *Scene) Validate() error {
	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("shape %d is nil", i)
		}
		if shape.Material() == nil {
			return fmt.Errorf("shape %d (%T) has no material", i, shape)
		}
	}
	for i, l := range s.Lights {
		if l == nil {
			return fmt.Errorf("light %d is nil", i)
		}
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %g", s.Camera.FOV)
	}
	if s.Camera.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", s.Camera.MaxDepth)
	}
	return nil
}
