package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// A unit quad (two fan triangles) in group Red and one triangle in group Blue.
// Bounding box is [0,2]³ so the center is (1,1,1).
const testOBJ = `# test model
v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
v 0 0 2
usemtl Red
f 1 2 3 4
usemtl Blue
f 1 2 5
`

func writeOBJ(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write OBJ: %v", err)
	}
	return path
}

func vecClose(a, b core.Vec3) bool {
	const tolerance = 1e-9
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance && math.Abs(a.Z-b.Z) < tolerance
}

func TestLoadOBJ_MaterialGroups(t *testing.T) {
	path := writeOBJ(t, testOBJ)
	red := material.NewMaterial(core.NewVec3(1, 0, 0), 0.9, 0.1, 16)
	fallback := material.NewMaterial(core.NewVec3(0.5, 0.5, 0.5), 0.9, 0.1, 16)

	tests := []struct {
		name          string
		opts          MeshOptions
		expectedCount int
	}{
		{
			name:          "Unnamed groups skipped without a default",
			opts:          MeshOptions{Materials: map[string]*material.Material{"Red": red}},
			expectedCount: 2,
		},
		{
			name:          "Default material fills the gaps",
			opts:          MeshOptions{Material: fallback, Materials: map[string]*material.Material{"Red": red}},
			expectedCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangles, err := LoadOBJ(path, tt.opts)
			if err != nil {
				t.Fatalf("LoadOBJ failed: %v", err)
			}
			if len(triangles) != tt.expectedCount {
				t.Fatalf("Expected %d triangles, got %d", tt.expectedCount, len(triangles))
			}
			if triangles[0].Material() != red || triangles[1].Material() != red {
				t.Error("Expected the quad to use the Red material")
			}
			if tt.expectedCount == 3 && triangles[2].Material() != fallback {
				t.Error("Expected the Blue group to use the default material")
			}
		})
	}
}

func TestLoadOBJ_NoMaterials(t *testing.T) {
	path := writeOBJ(t, testOBJ)
	if _, err := LoadOBJ(path, MeshOptions{}); err == nil {
		t.Error("Expected error when no group has a material")
	}
}

func TestLoadOBJ_Transform(t *testing.T) {
	path := writeOBJ(t, testOBJ)
	mat := material.NewMaterial(core.NewVec3(1, 1, 1), 1, 0, 1)

	// Centered then scaled by 2 and moved to (10, 0, 0)
	triangles, err := LoadOBJ(path, MeshOptions{
		Material: mat,
		Scale:    UniformScale(2),
		Position: core.NewVec3(10, 0, 0),
	})
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if expected := core.NewVec3(8, -2, -2); !vecClose(triangles[0].V0, expected) {
		t.Errorf("Expected first vertex %v, got %v", expected, triangles[0].V0)
	}

	// Half a turn about Y maps the centered vertex (1,-1,-1) to (-1,-1,1)
	rotated, err := LoadOBJ(path, MeshOptions{
		Material: mat,
		Rotation: core.NewVec3(0, 180, 0),
	})
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if expected := core.NewVec3(-1, -1, 1); !vecClose(rotated[0].V1, expected) {
		t.Errorf("Expected rotated vertex %v, got %v", expected, rotated[0].V1)
	}
}

func TestLoadOBJ_Missing(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"), MeshOptions{}); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestScanOBJLayout_FanTriangulation(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv -1 1 0\nvn 0 0 1\nf 1 2 3 4 5\nusemtl Leaf\nf 1 2 3\n")

	layout, err := scanOBJLayout(path)
	if err != nil {
		t.Fatalf("scanOBJLayout failed: %v", err)
	}
	expected := []string{defaultGroup, defaultGroup, defaultGroup, "Leaf"}
	if len(layout.faceGroups) != len(expected) {
		t.Fatalf("Expected %d triangles, got %d", len(expected), len(layout.faceGroups))
	}
	for i := range expected {
		if layout.faceGroups[i] != expected[i] {
			t.Errorf("Triangle %d: expected group %q, got %q", i, expected[i], layout.faceGroups[i])
		}
	}
	if !layout.hasNormals {
		t.Error("Expected vertex normals to be detected")
	}
}

func TestSimplifyTriangles(t *testing.T) {
	mat := material.NewMaterial(core.NewVec3(1, 1, 1), 1, 0, 1)

	// 10x10 grid of quads in the XZ plane
	const n = 10
	var triangles []*geometry.Triangle
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p00 := core.NewVec3(float64(i), 0, float64(j))
			p10 := core.NewVec3(float64(i+1), 0, float64(j))
			p11 := core.NewVec3(float64(i+1), 0, float64(j+1))
			p01 := core.NewVec3(float64(i), 0, float64(j+1))
			triangles = append(triangles,
				geometry.NewTriangle(p00, p10, p11, mat),
				geometry.NewTriangle(p00, p11, p01, mat),
			)
		}
	}

	reduced := SimplifyTriangles(triangles, 0.5)
	if len(reduced) == 0 || len(reduced) >= len(triangles) {
		t.Fatalf("Expected fewer than %d triangles, got %d", len(triangles), len(reduced))
	}
	for _, tri := range reduced {
		if tri.Material() != mat {
			t.Fatal("Expected material to be preserved")
		}
	}

	if same := SimplifyTriangles(triangles, 1); len(same) != len(triangles) {
		t.Errorf("Expected factor 1 to keep all triangles, got %d", len(same))
	}
}
