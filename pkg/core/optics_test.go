package core

import (
	"math"
	"testing"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "Head on",
			incident: NewVec3(0, 0, -1),
			normal:   NewVec3(0, 0, 1),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "45 degrees",
			incident: NewVec3(1, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "Unnormalized inputs",
			incident: NewVec3(0, -3, 0),
			normal:   NewVec3(0, 10, 0),
			expected: NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.incident, tt.normal)
			if !result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestReflect_SelfInverse(t *testing.T) {
	normal := NewVec3(0.2, 1, -0.4).Normalize()
	directions := []Vec3{
		NewVec3(1, -1, 0),
		NewVec3(0.3, 0.7, -0.2),
		NewVec3(-5, -2, 9),
	}

	for _, d := range directions {
		twice := Reflect(Reflect(d, normal), normal)
		want := d.Normalize()
		if math.Abs(twice.X-want.X) > 1e-9 || math.Abs(twice.Y-want.Y) > 1e-9 || math.Abs(twice.Z-want.Z) > 1e-9 {
			t.Errorf("Reflecting %v twice gave %v", want, twice)
		}
	}
}

func TestRefract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	// Straight through regardless of eta
	straight, ok := Refract(NewVec3(0, -1, 0), normal, 1/1.5)
	if !ok {
		t.Fatal("Expected refraction at normal incidence")
	}
	if !straight.Equals(NewVec3(0, -1, 0)) {
		t.Errorf("Expected undeviated ray, got %v", straight)
	}

	// Snell's law: n1 sin θ1 = n2 sin θ2
	incident := NewVec3(1, -1, 0).Normalize()
	eta := 1 / 1.5
	refracted, ok := Refract(incident, normal, eta)
	if !ok {
		t.Fatal("Expected refraction entering glass")
	}
	sin1 := math.Abs(incident.X)
	sin2 := math.Abs(refracted.X)
	if math.Abs(sin1*1.0-sin2*1.5) > 1e-9 {
		t.Errorf("Snell's law violated: sin1=%f sin2=%f", sin1, sin2)
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", refracted)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at a grazing angle: normal faces the incident side
	incident := NewVec3(1, 0.2, 0).Normalize()
	normal := NewVec3(0, -1, 0)

	if _, ok := Refract(incident, normal, 1.5); ok {
		t.Error("Expected total internal reflection")
	}
}

func TestFresnel_Range(t *testing.T) {
	iors := []float64{1.0, 1.33, 1.5, 2.4}
	normal := NewVec3(0, 1, 0)

	for _, ior := range iors {
		for i := 0; i <= 36; i++ {
			angle := float64(i) * math.Pi / 18
			incident := NewVec3(math.Sin(angle), math.Cos(angle), 0)
			kr := Fresnel(incident, normal, ior)
			if kr < 0 || kr > 1 || math.IsNaN(kr) {
				t.Errorf("Fresnel out of range for ior=%f angle=%f: %f", ior, angle, kr)
			}
		}
	}
}

func TestFresnel_KnownValues(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	// Normal incidence from air into glass: ((1-1.5)/(1+1.5))^2 = 0.04
	kr := Fresnel(NewVec3(0, -1, 0), normal, 1.5)
	if math.Abs(kr-0.04) > 1e-9 {
		t.Errorf("Expected 0.04 at normal incidence, got %f", kr)
	}

	// Matched indices reflect nothing
	kr = Fresnel(NewVec3(1, -1, 0), normal, 1.0)
	if math.Abs(kr) > 1e-9 {
		t.Errorf("Expected 0 for matched indices, got %f", kr)
	}

	// Leaving glass past the critical angle reflects everything
	kr = Fresnel(NewVec3(1, 0.2, 0), normal, 1.5)
	if kr != 1 {
		t.Errorf("Expected total reflection past the critical angle, got %f", kr)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		x, expected float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}

	for _, tt := range tests {
		if got := Smoothstep(0, 1, tt.x); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Smoothstep(0, 1, %f) = %f, expected %f", tt.x, got, tt.expected)
		}
	}

	if got := Lerp(2, 4, 0.25); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Expected Lerp 2.5, got %f", got)
	}
}
