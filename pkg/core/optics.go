package core

import "math"

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}

// Lerp linearly interpolates between a and b, t is clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	return a + t*(b-a)
}

// Smoothstep performs Hermite interpolation between edge0 and edge1
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Reflect mirrors the incident direction about the normal: R = I - 2(I·N)N.
// Both inputs are normalized first and the result is normalized.
func Reflect(incident, normal Vec3) Vec3 {
	i := incident.Normalize()
	n := normal.Normalize()
	return i.Subtract(n.Multiply(2 * i.Dot(n))).Normalize()
}

// Refract bends the incident direction through a surface with Snell's law.
// etaRatio is n1/n2 and the normal must face the incident side.
// Returns false on total internal reflection.
func Refract(incident, normal Vec3, etaRatio float64) (Vec3, bool) {
	i := incident.Normalize()
	n := normal.Normalize()

	cosi := Clamp(-i.Dot(n), -1, 1)
	k := 1 - etaRatio*etaRatio*(1-cosi*cosi)
	if k < 0 {
		return Vec3{}, false
	}

	t := i.Multiply(etaRatio).Add(n.Multiply(etaRatio*cosi - math.Sqrt(k)))
	return t.Normalize(), true
}

// Fresnel returns the unpolarized Fresnel reflectance for a dielectric with the
// given index of refraction. A positive cosine between incident and normal
// means the ray is leaving the medium, so the indices are swapped.
func Fresnel(incident, normal Vec3, ior float64) float64 {
	cosi := Clamp(incident.Normalize().Dot(normal.Normalize()), -1, 1)
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}

	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)

	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return Clamp((rs*rs+rp*rp)/2, 0, 1)
}
