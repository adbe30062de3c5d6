package scene

import (
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// BuildOptions controls how built-in scenes find optional assets
type BuildOptions struct {
	AssetDir string      // Directory searched for textures and models, "" means the working directory
	Logger   core.Logger // Optional, reports skipped assets
}

// Palette of the default scene
var (
	wallLeft    = hex("#D4A29A")
	wallRight   = hex("#9B5449")
	blushPink   = hex("#F5DCD6")
	coolGrey    = hex("#6E7777")
	darkGrey    = hex("#2E2F30")
	copperMetal = core.NewVec3(0.75, 0.48, 0.35)
)

// NewDefaultScene creates the showcase scene: a checkered floor with stacked
// tori, cylinders, ellipsoids, a cube and spheres in a warm palette. An
// equirectangular sky and a low-poly tree are added when their files exist.
func NewDefaultScene(opts BuildOptions) *Scene {
	s := NewScene()
	s.Camera = CameraConfig{
		Eye:      core.NewVec3(0, 0.5, 6.5),
		FOV:      38,
		MaxDepth: 4,
	}
	s.Background = core.NewVec3(0.7, 0.8, 0.95)

	if path, ok := findAsset(opts.AssetDir, "env_sky.bmp", "textures/env_sky.bmp", "env_sky.png", "textures/env_sky.png"); ok {
		env, err := loaders.LoadEnvironmentMap(path)
		if err != nil {
			logf(opts.Logger, "Skipping environment map %s: %v", path, err)
		} else {
			s.EnvMap = env
		}
	}

	// Materials
	floorChecker := material.NewCheckerTexture(10, 10, wallLeft.Multiply(0.92), wallLeft.Multiply(0.78))
	floorMat := material.NewTexturedMaterial(wallLeft, floorChecker, 0.70, 0.30, 100)

	greyChecker := material.NewCheckerTexture(6, 6, coolGrey, coolGrey.Multiply(0.8))
	greyMat := material.NewTexturedMaterial(coolGrey, greyChecker, 0.75, 0.25, 90)

	wallChecker := material.NewCheckerTexture(8, 8, wallLeft, wallLeft.Multiply(0.9))
	wallMat := material.NewTexturedMaterial(wallLeft, wallChecker, 0.85, 0.15, 20)

	cylinderChecker := material.NewCheckerTexture(4, 2, darkGrey, darkGrey.Multiply(1.3).Clamp(0, 1))
	darkTextured := material.NewTexturedMaterial(darkGrey, cylinderChecker, 0.88, 0.12, 30)

	blushMat := material.NewMaterial(blushPink, 0.82, 0.18, 70)
	darkMat := material.NewMaterial(darkGrey, 0.88, 0.12, 30)
	copperMat := material.NewReflective(copperMetal, 0.05, 0.95, 300)
	accentMat := material.NewMaterial(wallRight, 0.85, 0.15, 40)
	treeMat := material.NewMaterial(core.NewVec3(0.3, 0.6, 0.3), 0.80, 0.20, 60)

	s.AddShape(
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floorMat),

		geometry.NewTorus(core.NewVec3(0, -0.94, 0), 1.10, 0.09, blushMat),
		geometry.NewCylinder(core.NewVec3(-0.05, -0.45, 0), 0.32, 0.60, darkMat),
		geometry.NewCylinder(core.NewVec3(0.28, -0.60, 0), 0.20, 0.32, darkTextured),
		geometry.NewTorus(core.NewVec3(-0.05, 0.18, 0), 0.90, 0.24, blushMat),
		geometry.NewCylinder(core.NewVec3(0.78, 0.18, -1.5), 0.50, 3.5, wallMat),
		geometry.NewCylinder(core.NewVec3(0.15, 0.08, 0), 0.78, 0.15, greyMat),
		geometry.NewEllipsoid(core.NewVec3(0.68, -0.52, 0.18), core.NewVec3(0.45, 0.45, 0.45), greyMat),
		geometry.NewEllipsoid(core.NewVec3(-0.05, 1.08, 0), core.NewVec3(0.22, 0.22, 0.22), copperMat),

		geometry.NewCube(core.NewVec3(-1.2, -0.98, -0.5), core.NewVec3(-0.8, -0.6, -0.1), darkMat),
		geometry.NewSphere(core.NewVec3(0.9, -0.85, -0.5), 0.15, copperMat),
		geometry.NewCylinder(core.NewVec3(-1.5, -0.3, -1.0), 0.08, 1.2, greyMat),
		geometry.NewSphere(core.NewVec3(-1.5, 0.4, -1.0), 0.12, blushMat),
		geometry.NewSphere(core.NewVec3(1.1, -0.80, 0.4), 0.18, blushMat),
		geometry.NewDisk(core.NewVec3(-0.9, -0.999, 1.2), core.NewVec3(0, 1, 0), 0.35, accentMat),
	)

	if path, ok := findAsset(opts.AssetDir, "Lowpoly_tree_sample.obj", "models/Lowpoly_tree_sample.obj", "assets/models/Lowpoly_tree_sample.obj"); ok {
		tree, err := loaders.LoadOBJ(path, loaders.MeshOptions{
			Material: treeMat,
			Scale:    loaders.UniformScale(0.8),
			Position: core.NewVec3(2.5, -1.0, -1.5),
			Logger:   opts.Logger,
		})
		if err != nil {
			logf(opts.Logger, "Skipping tree model %s: %v", path, err)
		} else {
			s.AddTriangles(tree)
		}
	}

	s.AddLight(
		lights.NewAmbientLight(core.NewVec3(1, 1, 1), 0.35),
		lights.NewPointLight(core.NewVec3(-1.5, 3.5, 3.5), core.NewVec3(1, 1, 1), 1.8),
		lights.NewDirectionalLight(core.NewVec3(0.7, -0.7, -0.3), core.NewVec3(1, 1, 1), 0.30),
		lights.NewDirectionalLight(core.NewVec3(-0.5, -0.6, 0.5), core.NewVec3(1, 1, 1), 0.22),
	)

	return s
}

// findAsset returns the first candidate that exists under dir
func findAsset(dir string, candidates ...string) (string, bool) {
	for _, name := range candidates {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func logf(logger core.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
