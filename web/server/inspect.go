package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes the material's class and coefficients
func extractMaterialInfo(mat *material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":     hexColor(mat.Color),
		"kd":        mat.Kd,
		"ks":        mat.Ks,
		"shininess": mat.Shininess,
	}

	switch tex := mat.Texture.(type) {
	case nil:
	case *material.CheckerTexture:
		properties["texture"] = "checker"
	case *material.ImageTexture:
		properties["texture"] = "image"
	case material.UVDebugTexture:
		properties["texture"] = "uv"
	default:
		properties["texture"] = fmt.Sprintf("%T", tex)
	}

	if mat.Class == material.ClassRefractive {
		properties["ior"] = mat.IOR
		properties["kr"] = mat.Kr
		properties["kt"] = mat.Kt
	}
	return mat.Class.String(), properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Disk:
		properties["center"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		properties["radius"] = geom.Radius
		return "disk", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.V0), vecArray(geom.V1), vecArray(geom.V2)}
		return "triangle", properties

	case *geometry.Cube:
		properties["min"] = vecArray(geom.Min)
		properties["max"] = vecArray(geom.Max)
		return "cube", properties

	case *geometry.Cylinder:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		properties["height"] = geom.Height
		return "cylinder", properties

	case *geometry.Ellipsoid:
		properties["center"] = vecArray(geom.Center)
		properties["radii"] = vecArray(geom.Radii)
		return "ellipsoid", properties

	case *geometry.Torus:
		properties["center"] = vecArray(geom.Center)
		properties["majorRadius"] = geom.MajorRadius
		properties["minorRadius"] = geom.MinorRadius
		return "torus", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the camera ray through the pixel center and returns the
// first object hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (*geometry.Intercept, bool) {
	camera := renderer.NewCamera(sceneObj.Camera.Eye, sceneObj.Camera.FOV, width, height)
	return sceneObj.Intersect(camera.GetRay(pixelX, pixelY))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	query := r.URL.Query()
	width, err := parseIntParam(query, "width", s.cfg.Width, 1, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", s.cfg.Height, 1, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	sceneObj, _, err := s.createScene(&RenderRequest{Scene: sceneName}, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hit, ok := inspectPixel(sceneObj, width, height, pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Object.Material())
	geometryType, geometryProps := extractGeometryInfo(hit.Object)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.Distance,
		FrontFace:    hit.FrontFace(),
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
