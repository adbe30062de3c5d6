package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCube_FaceNormals(t *testing.T) {
	cube := NewCube(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), testMaterial())

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"+X face", core.NewVec3(3, 0.2, 0.1), core.NewVec3(-1, 0, 0), 2, core.NewVec3(1, 0, 0)},
		{"-X face", core.NewVec3(-3, 0.2, 0.1), core.NewVec3(1, 0, 0), 2, core.NewVec3(-1, 0, 0)},
		{"+Y face", core.NewVec3(0.3, 4, -0.5), core.NewVec3(0, -1, 0), 3, core.NewVec3(0, 1, 0)},
		{"-Z face", core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1), 1, core.NewVec3(0, 0, -1)},
		{"Inside exits +X", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), 1, core.NewVec3(1, 0, 0)},
		{"Inside exits -Y", core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0), 1.5, core.NewVec3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := cube.Hit(core.NewRay(tt.origin, tt.direction), 0, math.Inf(1))
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.Distance-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.Distance)
			}
			assertVecNear(t, "normal", tt.expectedNormal, hit.Normal)
		})
	}
}

func TestCube_Miss(t *testing.T) {
	cube := NewCubeAt(core.NewVec3(0, 0, 0), core.NewVec3(2, 2, 2), testMaterial())

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
	}{
		{"Passes beside", core.NewVec3(3, 0, 5), core.NewVec3(0, 0, -1)},
		{"Behind origin", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)},
		{"Diagonal miss", core.NewVec3(-3, 2.5, 0), core.NewVec3(1, 0.2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, ok := cube.Hit(core.NewRay(tt.origin, tt.direction), 0, math.Inf(1)); ok {
				t.Errorf("Expected miss, got t=%f", hit.Distance)
			}
		})
	}
}
