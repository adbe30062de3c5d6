package geometry

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// imagTolerance is the largest imaginary part a root may have and still be
// treated as real
const imagTolerance = 1e-6

// solveQuartic returns the real roots of c[0]t⁴ + c[1]t³ + c[2]t² + c[3]t + c[4]
// in ascending order. Roots come from the eigenvalues of the companion matrix
// and are polished with Newton steps. A degenerate polynomial or a solver
// failure yields no roots.
func solveQuartic(c [5]float64) (roots []float64) {
	defer func() {
		if recover() != nil {
			roots = nil
		}
	}()

	if math.Abs(c[0]) < 1e-12 {
		return nil
	}
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	}

	b3, b2, b1, b0 := c[1]/c[0], c[2]/c[0], c[3]/c[0], c[4]/c[0]
	companion := mat.NewDense(4, 4, []float64{
		-b3, -b2, -b1, -b0,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	})

	var eig mat.Eigen
	if ok := eig.Factorize(companion, mat.EigenNone); !ok {
		return nil
	}

	for _, z := range eig.Values(nil) {
		if cmplx.IsNaN(z) || math.Abs(imag(z)) > imagTolerance {
			continue
		}
		roots = append(roots, polishRoot(c, real(z)))
	}

	// Insertion sort, at most four entries
	for i := 1; i < len(roots); i++ {
		for j := i; j > 0 && roots[j] < roots[j-1]; j-- {
			roots[j], roots[j-1] = roots[j-1], roots[j]
		}
	}
	return roots
}

// polishRoot refines a root estimate with a few Newton iterations
func polishRoot(c [5]float64, t float64) float64 {
	for i := 0; i < 3; i++ {
		f := (((c[0]*t+c[1])*t+c[2])*t+c[3])*t + c[4]
		df := ((4*c[0]*t+3*c[1])*t+2*c[2])*t + c[3]
		if df == 0 {
			break
		}
		next := t - f/df
		if math.IsNaN(next) || math.Abs(next-t) > 1e-3*math.Max(1, math.Abs(t)) {
			break
		}
		t = next
	}
	return t
}
