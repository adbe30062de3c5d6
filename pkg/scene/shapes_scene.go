package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShapesScene lines up one of every primitive on a checkered floor, with a
// mirror sphere and a glass sphere in front
func NewShapesScene() *Scene {
	s := NewScene()
	s.Camera = CameraConfig{
		Eye:      core.NewVec3(0, 1.2, 7),
		FOV:      50,
		MaxDepth: 4,
	}
	s.Background = core.NewVec3(0.62, 0.72, 0.86)

	checker := material.NewCheckerTexture(16, 16, core.NewVec3(0.85, 0.85, 0.85), core.NewVec3(0.25, 0.25, 0.28))
	floor := material.NewTexturedMaterial(core.NewVec3(0.7, 0.7, 0.7), checker, 0.8, 0.2, 50)
	uvDebug := material.NewTexturedMaterial(core.NewVec3(1, 1, 1), material.UVDebugTexture{}, 0.9, 0.1, 20)

	red := material.NewMaterial(core.NewVec3(0.8, 0.2, 0.2), 0.85, 0.15, 40)
	orange := material.NewMaterial(core.NewVec3(0.9, 0.55, 0.2), 0.85, 0.15, 40)
	green := material.NewMaterial(core.NewVec3(0.25, 0.7, 0.35), 0.85, 0.15, 40)
	blue := material.NewMaterial(core.NewVec3(0.2, 0.35, 0.85), 0.8, 0.2, 60)
	purple := material.NewMaterial(core.NewVec3(0.6, 0.3, 0.75), 0.8, 0.2, 60)
	mirror := material.NewReflective(core.NewVec3(0.95, 0.95, 0.95), 0.1, 0.9, 200)
	glass := material.NewRefractive(core.NewVec3(1, 1, 1), 0.05, 0.1, 96, 1.5, 0, 0)

	s.AddShape(
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor),

		// Back row
		geometry.NewSphere(core.NewVec3(-3, -0.3, -2), 0.7, uvDebug),
		geometry.NewCube(core.NewVec3(-1.6, -1, -2.6), core.NewVec3(-0.4, 0.2, -1.4), orange),
		geometry.NewCylinder(core.NewVec3(0.9, -0.25, -2), 0.55, 1.5, green),
		geometry.NewTorus(core.NewVec3(2.9, -0.7, -2), 0.6, 0.25, red),

		// Front row
		geometry.NewEllipsoid(core.NewVec3(-2.2, -0.55, 0.2), core.NewVec3(0.7, 0.45, 0.45), purple),
		geometry.NewSphere(core.NewVec3(-0.6, -0.45, 0.6), 0.55, mirror),
		geometry.NewSphere(core.NewVec3(0.8, -0.5, 0.8), 0.5, glass),
		geometry.NewDisk(core.NewVec3(0, 1.9, -3.5), core.NewVec3(0, 0, 1), 0.9, uvDebug),
		geometry.NewTriangle(core.NewVec3(3.4, -1, -4), core.NewVec3(4.4, -1, -4), core.NewVec3(3.9, 1.2, -4), blue),
	)

	// Pyramid built from an indexed mesh
	apex := core.NewVec3(2.3, 0.2, 0.6)
	vertices := []core.Vec3{
		core.NewVec3(1.7, -1, 0),
		core.NewVec3(2.9, -1, 0),
		core.NewVec3(2.9, -1, 1.2),
		core.NewVec3(1.7, -1, 1.2),
		apex,
	}
	faces := []int{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}
	if pyramid, err := geometry.NewTriangleMesh(vertices, faces, blue, nil); err == nil {
		s.AddTriangles(pyramid)
	}

	s.AddLight(
		lights.NewAmbientLight(core.NewVec3(1, 1, 1), 0.2),
		lights.NewPointLight(core.NewVec3(-3, 5, 4), core.NewVec3(1, 1, 1), 1.0),
		lights.NewDirectionalLight(core.NewVec3(0.4, -1, -0.6), core.NewVec3(1, 0.97, 0.9), 0.5),
	)

	return s
}
