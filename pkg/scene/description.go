package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Vec is a 3D vector or point in a scene file
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec) vec3() core.Vec3 { return core.NewVec3(v.X, v.Y, v.Z) }

// Color is a linear RGB color. Hex ("#RRGGBB") takes precedence over R, G, B when set.
type Color struct {
	R   float64 `json:"r"`
	G   float64 `json:"g"`
	B   float64 `json:"b"`
	Hex string  `json:"hex,omitempty"`
}

func (c Color) vec3() (core.Vec3, error) {
	if c.Hex != "" {
		return ParseHexColor(c.Hex)
	}
	return core.NewVec3(c.R, c.G, c.B), nil
}

// CameraDesc describes the pinhole camera
type CameraDesc struct {
	Eye      Vec     `json:"eye"`
	FOV      float64 `json:"fov"`
	MaxDepth *int    `json:"max_depth,omitempty"`
}

// EnvironmentDesc points at an equirectangular sky image
type EnvironmentDesc struct {
	Image     string   `json:"image"`
	Intensity *float64 `json:"intensity,omitempty"`
}

// TextureType enumerates supported textures
type TextureType string

const (
	TextureChecker TextureType = "checker"
	TextureImage   TextureType = "image"
	TextureUV      TextureType = "uv"
)

// TextureDesc describes a material texture
type TextureDesc struct {
	Type   TextureType `json:"type"`
	TilesU int         `json:"tiles_u,omitempty"`
	TilesV int         `json:"tiles_v,omitempty"`
	ColorA Color       `json:"color_a"`
	ColorB Color       `json:"color_b"`
	Image  string      `json:"image,omitempty"`
}

// MaterialDesc describes surface properties. Kd defaults to 1 and shininess to 32.
type MaterialDesc struct {
	ID        string       `json:"id"`
	Class     string       `json:"class"` // diffuse, reflective or refractive
	Color     Color        `json:"color"`
	Kd        *float64     `json:"kd,omitempty"`
	Ks        float64      `json:"ks"`
	Shininess *float64     `json:"shininess,omitempty"`
	IOR       float64      `json:"ior,omitempty"`
	Kr        float64      `json:"kr,omitempty"`
	Kt        float64      `json:"kt,omitempty"`
	Texture   *TextureDesc `json:"texture,omitempty"`
}

// ObjectType enumerates supported geometric primitives
type ObjectType string

const (
	ObjectSphere    ObjectType = "sphere"
	ObjectPlane     ObjectType = "plane"
	ObjectDisk      ObjectType = "disk"
	ObjectTriangle  ObjectType = "triangle"
	ObjectCube      ObjectType = "cube"
	ObjectCylinder  ObjectType = "cylinder"
	ObjectEllipsoid ObjectType = "ellipsoid"
	ObjectTorus     ObjectType = "torus"
	ObjectMesh      ObjectType = "mesh"
)

// ObjectDesc is a single shape. Which fields apply depends on Type.
type ObjectDesc struct {
	Type       ObjectType `json:"type"`
	MaterialID string     `json:"material_id"`

	Position Vec     `json:"position"` // Center, or a point on a plane
	Normal   Vec     `json:"normal"`   // plane, disk
	Radius   float64 `json:"radius"`   // sphere, disk, cylinder
	Height   float64 `json:"height"`   // cylinder
	Radii    Vec     `json:"radii"`    // ellipsoid
	Min      *Vec    `json:"min,omitempty"`
	Max      *Vec    `json:"max,omitempty"`
	Size     Vec     `json:"size"`         // cube around Position when Min/Max are absent
	Major    float64 `json:"major_radius"` // torus
	Minor    float64 `json:"minor_radius"` // torus

	Vertices []Vec `json:"vertices,omitempty"` // triangle (3) or mesh
	Normals  []Vec `json:"normals,omitempty"`  // optional per-vertex normals
	Faces    []int `json:"faces,omitempty"`    // mesh, three indices per triangle
}

// MeshDesc places an OBJ model
type MeshDesc struct {
	File       string            `json:"file"`
	MaterialID string            `json:"material_id"`
	Materials  map[string]string `json:"materials,omitempty"` // usemtl name -> material id
	Scale      *Vec              `json:"scale,omitempty"`
	Position   Vec               `json:"position"`
	Rotation   Vec               `json:"rotation"` // Degrees
	Simplify   float64           `json:"simplify,omitempty"`
}

// LightDesc describes a light. Color defaults to white.
type LightDesc struct {
	Type      lights.LightType `json:"type"`
	Color     *Color           `json:"color,omitempty"`
	Intensity float64          `json:"intensity"`
	Direction Vec              `json:"direction"` // directional
	Position  Vec              `json:"position"`  // point
}

// Description is the JSON form of a scene
type Description struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Camera      *CameraDesc      `json:"camera,omitempty"`
	Background  *Color           `json:"background,omitempty"`
	Environment *EnvironmentDesc `json:"environment,omitempty"`
	Materials   []MaterialDesc   `json:"materials"`
	Objects     []ObjectDesc     `json:"objects"`
	Meshes      []MeshDesc       `json:"meshes,omitempty"`
	Lights      []LightDesc      `json:"lights"`
}

// LoadDescription reads a Description from a JSON file
func LoadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return ParseDescription(f)
}

// ParseDescription decodes a Description, rejecting unknown fields
func ParseDescription(r io.Reader) (*Description, error) {
	var desc Description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &desc, nil
}

// LoadSceneFile reads and builds a scene file. Relative asset paths resolve
// against the file's directory.
func LoadSceneFile(path string, logger core.Logger) (*Scene, error) {
	desc, err := LoadDescription(path)
	if err != nil {
		return nil, err
	}
	return desc.Build(filepath.Dir(path), logger)
}

// Build turns the description into a renderable scene. Relative asset paths
// resolve against baseDir; absolute paths are used as given.
func (d *Description) Build(baseDir string, logger core.Logger) (*Scene, error) {
	return d.build(assetRoot{dir: baseDir}, logger)
}

// BuildConfined is Build for untrusted descriptions: every asset path must be
// relative and stay inside assetDir.
func (d *Description) BuildConfined(assetDir string, logger core.Logger) (*Scene, error) {
	return d.build(assetRoot{dir: assetDir, confined: true}, logger)
}

func (d *Description) build(assets assetRoot, logger core.Logger) (*Scene, error) {
	s := NewScene()

	if d.Camera != nil {
		s.Camera.Eye = d.Camera.Eye.vec3()
		if d.Camera.FOV != 0 {
			s.Camera.FOV = d.Camera.FOV
		}
		if d.Camera.MaxDepth != nil {
			s.Camera.MaxDepth = *d.Camera.MaxDepth
		}
	}

	if d.Background != nil {
		bg, err := d.Background.vec3()
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		s.Background = bg
	}

	if d.Environment != nil && d.Environment.Image != "" {
		path, err := assets.resolve(d.Environment.Image)
		if err != nil {
			return nil, fmt.Errorf("environment: %w", err)
		}
		env, err := loaders.LoadEnvironmentMap(path)
		if err != nil {
			// A missing sky falls back to the background color
			logf(logger, "Skipping environment map: %v", err)
		} else {
			s.EnvMap = env
		}
		if d.Environment.Intensity != nil {
			s.EnvIntensity = *d.Environment.Intensity
		}
	}

	materials := make(map[string]*material.Material, len(d.Materials))
	for i, md := range d.Materials {
		if md.ID == "" {
			return nil, fmt.Errorf("material %d: missing id", i)
		}
		if _, dup := materials[md.ID]; dup {
			return nil, fmt.Errorf("material %q: duplicate id", md.ID)
		}
		mat, err := md.build(assets)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", md.ID, err)
		}
		materials[md.ID] = mat
	}

	lookup := func(id string) (*material.Material, error) {
		mat, ok := materials[id]
		if !ok {
			return nil, fmt.Errorf("unknown material %q", id)
		}
		return mat, nil
	}

	for i, od := range d.Objects {
		mat, err := lookup(od.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, od.Type, err)
		}
		if err := od.addTo(s, mat); err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, od.Type, err)
		}
	}

	for i, md := range d.Meshes {
		opts := loaders.MeshOptions{
			Position: md.Position.vec3(),
			Rotation: md.Rotation.vec3(),
			Scale:    loaders.UniformScale(1),
			Simplify: md.Simplify,
			Logger:   logger,
		}
		if md.Scale != nil {
			opts.Scale = md.Scale.vec3()
		}
		if md.MaterialID != "" {
			mat, err := lookup(md.MaterialID)
			if err != nil {
				return nil, fmt.Errorf("mesh %d: %w", i, err)
			}
			opts.Material = mat
		}
		if len(md.Materials) > 0 {
			opts.Materials = make(map[string]*material.Material, len(md.Materials))
			for group, id := range md.Materials {
				mat, err := lookup(id)
				if err != nil {
					return nil, fmt.Errorf("mesh %d group %q: %w", i, group, err)
				}
				opts.Materials[group] = mat
			}
		}

		path, err := assets.resolve(md.File)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		triangles, err := loaders.LoadOBJ(path, opts)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		s.AddTriangles(triangles)
	}

	for i, ld := range d.Lights {
		l, err := ld.build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(l)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (md MaterialDesc) build(assets assetRoot) (*material.Material, error) {
	class, err := material.ParseClass(md.Class)
	if err != nil {
		return nil, err
	}
	color, err := md.Color.vec3()
	if err != nil {
		return nil, err
	}

	kd := 1.0
	if md.Kd != nil {
		kd = *md.Kd
	}
	shininess := 32.0
	if md.Shininess != nil {
		shininess = *md.Shininess
	}

	var mat *material.Material
	switch class {
	case material.ClassReflective:
		mat = material.NewReflective(color, kd, md.Ks, shininess)
	case material.ClassRefractive:
		ior := md.IOR
		if ior == 0 {
			ior = 1.5
		}
		mat = material.NewRefractive(color, kd, md.Ks, shininess, ior, md.Kr, md.Kt)
	default:
		mat = material.NewMaterial(color, kd, md.Ks, shininess)
	}

	if md.Texture != nil {
		tex, err := md.Texture.build(assets)
		if err != nil {
			return nil, fmt.Errorf("texture: %w", err)
		}
		mat.Texture = tex
	}
	return mat, nil
}

func (td TextureDesc) build(assets assetRoot) (material.Texture, error) {
	switch td.Type {
	case TextureChecker:
		a, err := td.ColorA.vec3()
		if err != nil {
			return nil, err
		}
		b, err := td.ColorB.vec3()
		if err != nil {
			return nil, err
		}
		return material.NewCheckerTexture(td.TilesU, td.TilesV, a, b), nil
	case TextureImage:
		if td.Image == "" {
			return nil, fmt.Errorf("image texture needs an image path")
		}
		path, err := assets.resolve(td.Image)
		if err != nil {
			return nil, err
		}
		tex, err := loaders.LoadImageTexture(path)
		if err != nil {
			return nil, err
		}
		return tex, nil
	case TextureUV:
		return material.UVDebugTexture{}, nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", td.Type)
	}
}

func (od ObjectDesc) addTo(s *Scene, mat *material.Material) error {
	pos := od.Position.vec3()

	switch od.Type {
	case ObjectSphere:
		if od.Radius <= 0 {
			return fmt.Errorf("radius must be positive")
		}
		s.AddShape(geometry.NewSphere(pos, od.Radius, mat))
	case ObjectPlane:
		n, err := nonZero(od.Normal, "normal")
		if err != nil {
			return err
		}
		s.AddShape(geometry.NewPlane(pos, n, mat))
	case ObjectDisk:
		n, err := nonZero(od.Normal, "normal")
		if err != nil {
			return err
		}
		if od.Radius <= 0 {
			return fmt.Errorf("radius must be positive")
		}
		s.AddShape(geometry.NewDisk(pos, n, od.Radius, mat))
	case ObjectTriangle:
		if len(od.Vertices) != 3 {
			return fmt.Errorf("triangle needs 3 vertices, got %d", len(od.Vertices))
		}
		v0, v1, v2 := od.Vertices[0].vec3(), od.Vertices[1].vec3(), od.Vertices[2].vec3()
		switch len(od.Normals) {
		case 0:
			s.AddShape(geometry.NewTriangle(v0, v1, v2, mat))
		case 3:
			s.AddShape(geometry.NewTriangleWithNormals(v0, v1, v2,
				od.Normals[0].vec3(), od.Normals[1].vec3(), od.Normals[2].vec3(), mat))
		default:
			return fmt.Errorf("triangle needs 0 or 3 normals, got %d", len(od.Normals))
		}
	case ObjectCube:
		if od.Min != nil && od.Max != nil {
			s.AddShape(geometry.NewCube(od.Min.vec3(), od.Max.vec3(), mat))
		} else {
			s.AddShape(geometry.NewCubeAt(pos, od.Size.vec3(), mat))
		}
	case ObjectCylinder:
		if od.Radius <= 0 || od.Height <= 0 {
			return fmt.Errorf("radius and height must be positive")
		}
		s.AddShape(geometry.NewCylinder(pos, od.Radius, od.Height, mat))
	case ObjectEllipsoid:
		if od.Radii.X <= 0 || od.Radii.Y <= 0 || od.Radii.Z <= 0 {
			return fmt.Errorf("radii must be positive")
		}
		s.AddShape(geometry.NewEllipsoid(pos, od.Radii.vec3(), mat))
	case ObjectTorus:
		if od.Major <= 0 || od.Minor <= 0 {
			return fmt.Errorf("major and minor radius must be positive")
		}
		s.AddShape(geometry.NewTorus(pos, od.Major, od.Minor, mat))
	case ObjectMesh:
		vertices := make([]core.Vec3, len(od.Vertices))
		for i, v := range od.Vertices {
			vertices[i] = v.vec3()
		}
		var opts *geometry.TriangleMeshOptions
		if len(od.Normals) > 0 {
			normals := make([]core.Vec3, len(od.Normals))
			for i, n := range od.Normals {
				normals[i] = n.vec3()
			}
			opts = &geometry.TriangleMeshOptions{Normals: normals}
		}
		triangles, err := geometry.NewTriangleMesh(vertices, od.Faces, mat, opts)
		if err != nil {
			return err
		}
		s.AddTriangles(triangles)
	default:
		return fmt.Errorf("unknown object type %q", od.Type)
	}
	return nil
}

func (ld LightDesc) build() (lights.Light, error) {
	color := core.NewVec3(1, 1, 1)
	if ld.Color != nil {
		c, err := ld.Color.vec3()
		if err != nil {
			return nil, err
		}
		color = c
	}

	switch ld.Type {
	case lights.LightTypeAmbient:
		return lights.NewAmbientLight(color, ld.Intensity), nil
	case lights.LightTypeDirectional:
		dir, err := nonZero(ld.Direction, "direction")
		if err != nil {
			return nil, err
		}
		return lights.NewDirectionalLight(dir, color, ld.Intensity), nil
	case lights.LightTypePoint:
		return lights.NewPointLight(ld.Position.vec3(), color, ld.Intensity), nil
	default:
		return nil, fmt.Errorf("unknown light type %q", ld.Type)
	}
}

func nonZero(v Vec, name string) (core.Vec3, error) {
	vec := v.vec3()
	if vec.Length() < core.Epsilon {
		return core.Vec3{}, fmt.Errorf("%s must not be zero", name)
	}
	return vec, nil
}

// assetRoot resolves image and mesh paths named by a description
type assetRoot struct {
	dir      string
	confined bool // reject paths that leave dir
}

func (a assetRoot) resolve(path string) (string, error) {
	if !a.confined {
		if filepath.IsAbs(path) || a.dir == "" {
			return path, nil
		}
		return filepath.Join(a.dir, path), nil
	}

	if filepath.IsAbs(path) || filepath.VolumeName(path) != "" {
		return "", fmt.Errorf("asset path %q must be relative", path)
	}
	dir := a.dir
	if dir == "" {
		dir = "."
	}
	full := filepath.Join(dir, path)
	rel, err := filepath.Rel(dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("asset path %q leaves the asset directory", path)
	}
	return full, nil
}
