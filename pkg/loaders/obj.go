package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/fogleman/simplify"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// defaultGroup names faces that appear before any usemtl statement
const defaultGroup = "default"

// MeshOptions controls how an OBJ model is placed in the scene
type MeshOptions struct {
	Material  *material.Material            // Used for groups without an entry in Materials
	Materials map[string]*material.Material // Materials by usemtl name
	Scale     core.Vec3                     // Per-axis scale, zero components mean 1
	Rotation  core.Vec3                     // Degrees about X, then Y, then Z
	Position  core.Vec3                     // Translation applied last
	Simplify  float64                       // Fraction of triangles to keep per group, 0 keeps all
	Logger    core.Logger                   // Optional
}

// UniformScale returns a scale vector with s on every axis
func UniformScale(s float64) core.Vec3 {
	return core.NewVec3(s, s, s)
}

// LoadOBJ reads a Wavefront OBJ file and returns world-space triangles.
// The model is centered on its bounding box, scaled, rotated and translated.
// Polygons are fan-triangulated. Groups with no resolvable material are skipped.
func LoadOBJ(filename string, opts MeshOptions) ([]*geometry.Triangle, error) {
	mesh, err := fauxgl.LoadOBJ(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ %s: %w", filename, err)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("OBJ %s contains no faces", filename)
	}

	layout, err := scanOBJLayout(filename)
	if err != nil {
		return nil, err
	}
	groups := layout.faceGroups
	if len(groups) != len(mesh.Triangles) {
		logf(opts.Logger, "OBJ %s: material groups do not line up with %d triangles, using %q for all",
			filename, len(mesh.Triangles), defaultGroup)
		groups = nil
	}

	mesh.Transform(placementMatrix(mesh.BoundingBox(), opts))

	// Group triangles by material name, keeping first-seen order
	byGroup := make(map[string][]*geometry.Triangle)
	var order []string
	for i, t := range mesh.Triangles {
		name := defaultGroup
		if groups != nil {
			name = groups[i]
		}

		mat := opts.Materials[name]
		if mat == nil {
			mat = opts.Material
		}
		if mat == nil {
			continue
		}

		if _, seen := byGroup[name]; !seen {
			order = append(order, name)
		}
		byGroup[name] = append(byGroup[name], convertTriangle(t, mat, layout.hasNormals))
	}

	var triangles []*geometry.Triangle
	for _, name := range order {
		group := byGroup[name]
		if opts.Simplify > 0 && opts.Simplify < 1 {
			group = SimplifyTriangles(group, opts.Simplify)
		}
		logf(opts.Logger, "OBJ %s: group %q has %d triangles", filename, name, len(group))
		triangles = append(triangles, group...)
	}

	if len(triangles) == 0 {
		return nil, fmt.Errorf("OBJ %s: no face group has a material", filename)
	}
	return triangles, nil
}

// placementMatrix centers the bounding box, then scales, rotates X→Y→Z and translates
func placementMatrix(box fauxgl.Box, opts MeshOptions) fauxgl.Matrix {
	scale := opts.Scale
	if scale.X == 0 {
		scale.X = 1
	}
	if scale.Y == 0 {
		scale.Y = 1
	}
	if scale.Z == 0 {
		scale.Z = 1
	}

	return fauxgl.Identity().
		Translate(box.Center().Negate()).
		Scale(fauxgl.V(scale.X, scale.Y, scale.Z)).
		Rotate(fauxgl.V(1, 0, 0), fauxgl.Radians(opts.Rotation.X)).
		Rotate(fauxgl.V(0, 1, 0), fauxgl.Radians(opts.Rotation.Y)).
		Rotate(fauxgl.V(0, 0, 1), fauxgl.Radians(opts.Rotation.Z)).
		Translate(fauxgl.V(opts.Position.X, opts.Position.Y, opts.Position.Z))
}

func convertTriangle(t *fauxgl.Triangle, mat *material.Material, smooth bool) *geometry.Triangle {
	v0 := toVec3(t.V1.Position)
	v1 := toVec3(t.V2.Position)
	v2 := toVec3(t.V3.Position)
	if smooth {
		return geometry.NewTriangleWithNormals(v0, v1, v2,
			toVec3(t.V1.Normal), toVec3(t.V2.Normal), toVec3(t.V3.Normal), mat)
	}
	return geometry.NewTriangle(v0, v1, v2, mat)
}

func toVec3(v fauxgl.Vector) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// SimplifyTriangles decimates triangles sharing one material down to roughly
// factor of the input count. Vertex normals are not preserved.
func SimplifyTriangles(triangles []*geometry.Triangle, factor float64) []*geometry.Triangle {
	if len(triangles) == 0 || factor <= 0 || factor >= 1 {
		return triangles
	}

	input := make([]*simplify.Triangle, len(triangles))
	for i, t := range triangles {
		input[i] = simplify.NewTriangle(
			simplify.Vector{X: t.V0.X, Y: t.V0.Y, Z: t.V0.Z},
			simplify.Vector{X: t.V1.X, Y: t.V1.Y, Z: t.V1.Z},
			simplify.Vector{X: t.V2.X, Y: t.V2.Y, Z: t.V2.Z},
		)
	}

	mat := triangles[0].Material()
	reduced := simplify.NewMesh(input).Simplify(factor)
	output := make([]*geometry.Triangle, 0, len(reduced.Triangles))
	for _, t := range reduced.Triangles {
		output = append(output, geometry.NewTriangle(
			core.NewVec3(t.V1.X, t.V1.Y, t.V1.Z),
			core.NewVec3(t.V2.X, t.V2.Y, t.V2.Z),
			core.NewVec3(t.V3.X, t.V3.Y, t.V3.Z),
			mat,
		))
	}
	return output
}

// objLayout is what LoadOBJ needs from the file beyond fauxgl's mesh
type objLayout struct {
	faceGroups []string // usemtl name for every fan triangle, in file order
	hasNormals bool     // File declares vertex normals
}

// scanOBJLayout reads usemtl statements, which fauxgl does not expose
func scanOBJLayout(filename string) (objLayout, error) {
	var layout objLayout

	file, err := os.Open(filename)
	if err != nil {
		return layout, fmt.Errorf("failed to open OBJ %s: %w", filename, err)
	}
	defer file.Close()

	current := defaultGroup
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "usemtl":
			if len(fields) > 1 {
				current = fields[1]
			}
		case "vn":
			layout.hasNormals = true
		case "f":
			for i := 1; i < len(fields)-2; i++ {
				layout.faceGroups = append(layout.faceGroups, current)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return layout, fmt.Errorf("failed to read OBJ %s: %w", filename, err)
	}
	return layout, nil
}

func logf(logger core.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format+"\n", args...)
	}
}
