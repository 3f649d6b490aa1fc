// Package polyroot finds the roots of real polynomials as the eigenvalues of
// their companion matrix.
package polyroot

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned when the eigenvalue iteration fails.
var ErrNoConvergence = errors.New("polyroot: eigenvalue decomposition did not converge")

// Monic returns the n roots of z^n + c[0]·z^(n-1) + ... + c[n-1], in no
// particular order. An empty c has no roots.
func Monic(c []float64) ([]complex128, error) {
	n := len(c)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		return []complex128{complex(-c[0], 0)}, nil
	}

	m := mat.NewDense(n, n, nil)
	for k, v := range c {
		m.Set(0, k, -v)
	}
	for i := 1; i < n; i++ {
		m.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if !eig.Factorize(m, mat.EigenNone) {
		return nil, ErrNoConvergence
	}
	return eig.Values(nil), nil
}

// Eval evaluates the monic polynomial of [Monic] at z.
func Eval(c []float64, z complex128) complex128 {
	v := complex(1, 0)
	for _, k := range c {
		v = v*z + complex(k, 0)
	}
	return v
}

// MaxRadius returns the largest root magnitude, or 0 for no roots.
func MaxRadius(roots []complex128) float64 {
	r := 0.0
	for _, z := range roots {
		r = max(r, cmplx.Abs(z))
	}
	return r
}
