package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderScene creates a closed room with three cylinders: matte, mirror and glass
func NewCylinderScene() *Scene {
	s := NewScene()
	s.Camera = CameraConfig{
		Eye:      core.NewVec3(0, 0.6, 4.5),
		FOV:      55,
		MaxDepth: 3,
	}
	s.Background = core.NewVec3(0.12, 0.12, 0.13)

	// Create materials
	matteGreen := material.NewMaterial(core.NewVec3(0.25, 0.65, 0.35), 0.9, 0.1, 32)
	metalSilver := material.NewReflective(core.NewVec3(0.9, 0.9, 0.95), 0.2, 0.7, 120)
	glassClear := material.NewRefractive(core.NewVec3(1, 1, 1), 0.05, 0.1, 64, 1.5, 0.05, 0.95)

	wallWhite := material.NewMaterial(core.NewVec3(0.95, 0.95, 0.95), 0.9, 0.05, 16)
	wallWarm := material.NewMaterial(core.NewVec3(0.90, 0.86, 0.80), 0.85, 0.05, 16)
	floorReflective := material.NewReflective(core.NewVec3(0.80, 0.78, 0.75), 0.5, 0.5, 100)

	// Room
	s.AddShape(
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floorReflective),
		geometry.NewPlane(core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), wallWarm),
		geometry.NewPlane(core.NewVec3(0, 0, -4), core.NewVec3(0, 0, 1), wallWhite),
		geometry.NewPlane(core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0), wallWarm),
		geometry.NewPlane(core.NewVec3(3, 0, 0), core.NewVec3(-1, 0, 0), wallWarm),
	)

	// Cylinders
	s.AddShape(
		geometry.NewCylinder(core.NewVec3(-1.6, -0.2, -1.2), 0.45, 1.6, matteGreen),
		geometry.NewCylinder(core.NewVec3(0, -0.5, -1.8), 0.35, 2.2, metalSilver),
		geometry.NewCylinder(core.NewVec3(1.4, -0.2, -0.6), 0.50, 1.6, glassClear),
	)

	s.AddLight(
		lights.NewAmbientLight(core.NewVec3(1, 1, 1), 0.12),
		lights.NewDirectionalLight(core.NewVec3(-0.6, -1.2, -0.5), core.NewVec3(1.0, 0.98, 0.95), 0.9),
		lights.NewDirectionalLight(core.NewVec3(0.7, -0.6, -0.2), core.NewVec3(0.95, 0.97, 1.0), 0.35),
		lights.NewPointLight(core.NewVec3(0, 2.8, -0.5), core.NewVec3(1.0, 0.99, 0.97), 0.6),
		lights.NewPointLight(core.NewVec3(0, 1.6, -3), core.NewVec3(0.98, 0.96, 1.0), 0.35),
	)

	return s
}
