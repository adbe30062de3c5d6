package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals   []core.Vec3          // Optional per-vertex normals, one per vertex
	Materials []*material.Material // Optional per-triangle materials, nil entries use the default
}

// NewTriangleMesh builds triangles from vertices and face indices.
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// mat: default material for all triangles
// options: optional parameters (can be nil for a basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material, options *TriangleMeshOptions) ([]*Triangle, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	if options != nil {
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			return nil, fmt.Errorf("expected %d vertex normals, got %d", len(vertices), len(options.Normals))
		}
		if options.Materials != nil && len(options.Materials) != numTriangles {
			return nil, fmt.Errorf("expected %d triangle materials, got %d", numTriangles, len(options.Materials))
		}
	}

	triangles := make([]*Triangle, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range", i, idx)
			}
		}

		triMat := mat
		if options != nil && options.Materials != nil && options.Materials[i] != nil {
			triMat = options.Materials[i]
		}

		if options != nil && options.Normals != nil {
			triangles = append(triangles, NewTriangleWithNormals(
				vertices[i0], vertices[i1], vertices[i2],
				options.Normals[i0], options.Normals[i1], options.Normals[i2],
				triMat,
			))
			continue
		}
		triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], triMat))
	}

	return triangles, nil
}
