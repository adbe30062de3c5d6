package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTorus_Hit(t *testing.T) {
	torus := NewTorus(core.NewVec3(0, 0, 0), 1, 0.25, testMaterial())

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"Outer rim along X", core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), 3.75, core.NewVec3(1, 0, 0)},
		{"Top of tube", core.NewVec3(1, 3, 0), core.NewVec3(0, -1, 0), 2.75, core.NewVec3(0, 1, 0)},
		{"Inner rim from the hole", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 0.75, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := torus.Hit(core.NewRay(tt.origin, tt.direction), 0, math.Inf(1))
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

func TestTorus_ThroughTheHole(t *testing.T) {
	torus := NewTorus(core.NewVec3(0, 2, 0), 1, 0.25, testMaterial())

	// Down the axis: the quartic has only complex roots
	ray := core.NewRay(core.NewVec3(0, 6, 0), core.NewVec3(0, -1, 0))
	if hit, ok := torus.Hit(ray, 0, math.Inf(1)); ok {
		t.Errorf("Expected miss through the hole, got t=%f", hit.Distance)
	}
}

func TestSolveQuartic(t *testing.T) {
	tests := []struct {
		name     string
		coeffs   [5]float64
		expected []float64
	}{
		// (t-1)(t-2)(t-3)(t-4)
		{"Four real roots", [5]float64{1, -10, 35, -50, 24}, []float64{1, 2, 3, 4}},
		// 2(t²+1)(t-1)(t+3) = 2t⁴ + 4t³ - 4t² + 4t - 6
		{"Two real roots", [5]float64{2, 4, -4, 4, -6}, []float64{-3, 1}},
		// (t²+1)(t²+4)
		{"No real roots", [5]float64{1, 0, 5, 0, 4}, nil},
		{"Not a quartic", [5]float64{0, 1, 2, 3, 4}, nil},
		{"NaN coefficient", [5]float64{1, math.NaN(), 0, 0, 0}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := solveQuartic(tt.coeffs)
			if len(roots) != len(tt.expected) {
				t.Fatalf("Expected roots %v, got %v", tt.expected, roots)
			}
			for i := range roots {
				if math.Abs(roots[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("Root %d: expected %f, got %f", i, tt.expected[i], roots[i])
				}
			}
		})
	}
}
