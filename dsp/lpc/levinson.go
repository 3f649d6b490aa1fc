package lpc

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrDegenerate is returned when the autocorrelation has no usable energy or
// the prediction error collapses below zero.
var ErrDegenerate = errors.New("lpc: degenerate autocorrelation")

const energyEpsilon = 1e-12

// Autocorrelate writes R[k] = Σ x[n]·x[n+k] for k = 0..len(dst)-1.
// Lags at or beyond len(x) are zero.
func Autocorrelate(dst, x []float64) {
	n := len(x)
	for k := range dst {
		if k >= n {
			dst[k] = 0
			continue
		}
		dst[k] = vecmath.DotProduct(x[:n-k], x[k:])
	}
}

// LevinsonDurbin solves the normal equations for order p = len(r)-1 and
// writes the prediction coefficients into a[:p]. It returns the gain, the
// square root of the final prediction error.
func LevinsonDurbin(r, a []float64) (float64, error) {
	return levinson(r, a, nil)
}

// levinson runs the recursion in place. refl, when non-nil, receives the
// reflection coefficients.
func levinson(r, a, refl []float64) (float64, error) {
	p := len(r) - 1
	if p < 1 {
		return 0, fmt.Errorf("lpc: order must be >= 1: %d", p)
	}
	if len(a) < p {
		return 0, fmt.Errorf("lpc: coefficient slice too short: %d < %d", len(a), p)
	}
	if refl != nil && len(refl) < p {
		return 0, fmt.Errorf("lpc: reflection slice too short: %d < %d", len(refl), p)
	}
	if !(r[0] > energyEpsilon) {
		return 0, fmt.Errorf("%w: R[0] = %g", ErrDegenerate, r[0])
	}

	e := r[0]
	for i := range p {
		if !(e > 0) {
			return 0, fmt.Errorf("%w: prediction error %g at order %d", ErrDegenerate, e, i)
		}

		num := r[i+1]
		for j := range i {
			num -= a[j] * r[i-j]
		}
		k := num / e

		// α[j] ← α[j] - k·α[i-1-j], updated pairwise in place.
		for j, m := 0, i-1; j < m; j, m = j+1, m-1 {
			lo, hi := a[j], a[m]
			a[j] = lo - k*hi
			a[m] = hi - k*lo
		}
		if i%2 == 1 {
			mid := (i - 1) / 2
			a[mid] -= k * a[mid]
		}
		a[i] = k
		if refl != nil {
			refl[i] = k
		}
		e *= 1 - k*k
	}

	if e < 0 || math.IsNaN(e) {
		return 0, fmt.Errorf("%w: prediction error %g", ErrDegenerate, e)
	}
	return math.Sqrt(e), nil
}
