package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Class selects how a surface continues a ray after local shading
type Class int

const (
	ClassDiffuse Class = iota
	ClassReflective
	ClassRefractive
)

// String returns the lower-case name used in scene descriptions
func (c Class) String() string {
	switch c {
	case ClassDiffuse:
		return "diffuse"
	case ClassReflective:
		return "reflective"
	case ClassRefractive:
		return "refractive"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// ParseClass converts a scene description name into a Class
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diffuse":
		return ClassDiffuse, nil
	case "reflective", "mirror":
		return ClassReflective, nil
	case "refractive", "transparent", "glass":
		return ClassRefractive, nil
	default:
		return ClassDiffuse, fmt.Errorf("unknown material class %q", name)
	}
}

// Material describes how a surface responds to light. Materials are shared by
// pointer between shapes and must not change during a render.
type Material struct {
	Color     core.Vec3 // Base color
	Kd        float64   // Diffuse coefficient
	Ks        float64   // Specular coefficient, also the mirror weight for non-refractive classes
	Shininess float64   // Blinn-Phong exponent
	Class     Class
	IOR       float64 // Index of refraction, refractive class only
	Kr        float64 // Reflection weight, refractive class only
	Kt        float64 // Transmission weight, refractive class only
	Texture   Texture // Optional, overrides Color where texture coordinates exist
}

// NewMaterial creates a diffuse material
func NewMaterial(color core.Vec3, kd, ks, shininess float64) *Material {
	return &Material{
		Color:     color,
		Kd:        kd,
		Ks:        ks,
		Shininess: shininess,
		Class:     ClassDiffuse,
		IOR:       1.0,
	}
}

// NewReflective creates a mirror-like material that blends ks of the reflected color
func NewReflective(color core.Vec3, kd, ks, shininess float64) *Material {
	m := NewMaterial(color, kd, ks, shininess)
	m.Class = ClassReflective
	return m
}

// NewRefractive creates a transparent material. When both kr and kt are zero
// the weights default to kr = ks and kt = 1 - ks.
func NewRefractive(color core.Vec3, kd, ks, shininess, ior, kr, kt float64) *Material {
	m := NewMaterial(color, kd, ks, shininess)
	m.Class = ClassRefractive
	m.IOR = max(1.0, ior)
	if kr == 0 && kt == 0 {
		kr = ks
		kt = 1 - ks
	}
	m.Kr = kr
	m.Kt = kt
	return m
}

// NewTexturedMaterial creates a diffuse material whose color comes from a texture
func NewTexturedMaterial(color core.Vec3, texture Texture, kd, ks, shininess float64) *Material {
	m := NewMaterial(color, kd, ks, shininess)
	m.Texture = texture
	return m
}

// BaseColorAt returns the surface color at the given texture coordinates,
// falling back to the flat color when there is no texture or no coordinates.
func (m *Material) BaseColorAt(uv core.Vec2, hasUV bool) core.Vec3 {
	if m.Texture == nil || !hasUV {
		return m.Color
	}
	return m.Texture.Sample(uv.X, uv.Y)
}
