package cascade

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
)

// MaxOrder is the highest Butterworth order a cascade can hold:
// five second-order sections plus one single-pole section.
const MaxOrder = 11

const maxSections = MaxOrder / 2

// ButterworthPoles returns the pole-pair constants c = 2cos(θ) of an
// Nth-order Butterworth prototype and whether a real single pole is
// present.
//
// Even N yields N/2 pairs with θ = mπ/(2N), m = 1, 3, 5, ...
// Odd N yields one single pole plus (N-1)/2 pairs with θ = kπ/N.
func ButterworthPoles(order int) (single bool, c []float64, err error) {
	if order < 1 {
		return false, nil, fmt.Errorf("%w: %d", ErrOrder, order)
	}
	single = order%2 != 0
	c = make([]float64, order/2)
	for i := range c {
		c[i] = poleConstant(order, i)
	}
	return single, c, nil
}

func poleConstant(order, i int) float64 {
	n := float64(order)
	if order%2 == 0 {
		return 2 * math.Cos(float64(2*i+1)*math.Pi/(2*n))
	}
	return 2 * math.Cos(float64(i+1)*math.Pi/n)
}

// orderOf truncates an order control toward zero and validates it.
func orderOf(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %f", ErrOrder, v)
	}
	n := int(v)
	if n < 1 {
		return 0, fmt.Errorf("%w: order must be >= 1: %d", ErrOrder, n)
	}
	if n > MaxOrder {
		return 0, fmt.Errorf("%w: order must be <= %d: %d", ErrCapacity, MaxOrder, n)
	}
	return n, nil
}

// LowpassSection returns the bilinear lowpass section for pole pair c.
func LowpassSection(k, c float64) biquad.Coefficients {
	k2 := k * k
	a0 := k2 + k*c + 1
	g := 1 / a0
	return biquad.Coefficients{
		B0: g, B1: 2 * g, B2: g,
		A1: (2 - 2*k2) / a0,
		A2: (k2 - k*c + 1) / a0,
	}
}

// LowpassFirstOrder returns the bilinear single-pole lowpass section.
func LowpassFirstOrder(k float64) biquad.FirstOrderCoefficients {
	a0 := k + 1
	return biquad.FirstOrderCoefficients{B0: 1 / a0, B1: 1 / a0, A1: (1 - k) / a0}
}

// HighpassSection returns the bilinear highpass section for pole pair c.
func HighpassSection(k, c float64) biquad.Coefficients {
	k2 := k * k
	a0 := k2 + k*c + 1
	g := k2 / a0
	return biquad.Coefficients{
		B0: g, B1: -2 * g, B2: g,
		A1: (2 - 2*k2) / a0,
		A2: (k2 - k*c + 1) / a0,
	}
}

// HighpassFirstOrder returns the bilinear single-pole highpass section.
func HighpassFirstOrder(k float64) biquad.FirstOrderCoefficients {
	a0 := k + 1
	return biquad.FirstOrderCoefficients{B0: k / a0, B1: -k / a0, A1: (1 - k) / a0}
}

// bandDenominator returns a0..a4 of the band transform of pole pair c.
func bandDenominator(k, q, c float64) [5]float64 {
	k2 := k * k
	k3 := k2 * k
	k4 := k2 * k2
	q2 := q * q
	return [5]float64{
		(k3+k)*q*c + (k4+2*k2+1)*q2 + k2,
		2*(k-k3)*q*c + 4*(1-k4)*q2,
		(6*k4-4*k2+6)*q2 - 2*k2,
		2*(k3-k)*q*c + 4*(1-k4)*q2,
		-(k3+k)*q*c + (k4+2*k2+1)*q2 + k2,
	}
}

func normalise4(b, a [5]float64) biquad.Coefficients4 {
	var c biquad.Coefficients4
	for i := range b {
		c.B[i] = b[i] / a[0]
	}
	for i := range c.A {
		c.A[i] = a[i+1] / a[0]
	}
	return c
}

// BandpassSection returns the fourth-order band-pass section for pole
// pair c with centre constant k and quality q.
func BandpassSection(k, q, c float64) biquad.Coefficients4 {
	k2 := k * k
	return normalise4([5]float64{k2, 0, -2 * k2, 0, k2}, bandDenominator(k, q, c))
}

// bandSingleDenominator returns a0..a2 of the band transform of the real pole.
func bandSingleDenominator(k, q float64) (a0, a1, a2 float64) {
	base := (k*k + 1) * q
	return base + k, (2 - 2*k*k) * q, base - k
}

// BandpassSingle returns the second-order band-pass section standing in
// for the real pole of an odd-order prototype.
func BandpassSingle(k, q float64) biquad.Coefficients {
	a0, a1, a2 := bandSingleDenominator(k, q)
	return biquad.Coefficients{B0: k / a0, B1: 0, B2: -k / a0, A1: a1 / a0, A2: a2 / a0}
}

// BandstopSection returns the fourth-order band-stop section for pole pair c.
func BandstopSection(k, q, c float64) biquad.Coefficients4 {
	k2 := k * k
	k4 := k2 * k2
	q2 := q * q
	b0 := (k4 + 2*k2 + 1) * q2
	b1 := (4 - 4*k4) * q2
	b2 := (6*k4 - 4*k2 + 6) * q2
	return normalise4([5]float64{b0, b1, b2, b1, b0}, bandDenominator(k, q, c))
}

// BandstopSingle returns the second-order band-stop section standing in
// for the real pole of an odd-order prototype.
func BandstopSingle(k, q float64) biquad.Coefficients {
	a0, a1, a2 := bandSingleDenominator(k, q)
	b0 := (k*k + 1) * q
	b1 := (2 - 2*k*k) * q
	return biquad.Coefficients{B0: b0 / a0, B1: b1 / a0, B2: b0 / a0, A1: a1 / a0, A2: a2 / a0}
}
