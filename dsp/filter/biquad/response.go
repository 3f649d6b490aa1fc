package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	return ratio(freqHz, sampleRate,
		[]float64{c.B0, c.B1, c.B2},
		[]float64{1, c.A1, c.A2})
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Response computes the complex frequency response of a single-pole section.
func (c *FirstOrderCoefficients) Response(freqHz, sampleRate float64) complex128 {
	return ratio(freqHz, sampleRate, []float64{c.B0, c.B1}, []float64{1, c.A1})
}

// Response computes the complex frequency response of a fourth-order section.
func (c *Coefficients4) Response(freqHz, sampleRate float64) complex128 {
	return ratio(freqHz, sampleRate, c.B[:], []float64{1, c.A[0], c.A[1], c.A[2], c.A[3]})
}

// MagnitudeDB returns 20*log10|H(f)| of a fourth-order section.
func (c *Coefficients4) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ratio evaluates num(z^-1)/den(z^-1) on the unit circle.
func ratio(freqHz, sampleRate float64, num, den []float64) complex128 {
	zi := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	return horner(num, zi) / horner(den, zi)
}

// horner evaluates c[0] + c[1]x + c[2]x^2 + ...
func horner(c []float64, x complex128) complex128 {
	var v complex128
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + complex(c[i], 0)
	}
	return v
}

// ImpulseResponse computes n samples of the impulse response h[n]
// by feeding an impulse through the section. The filter state is
// saved and restored so this method does not modify the section.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := s.State()
	s.Reset()
	ir := make([]float64, n)
	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}
	s.SetState(saved)
	return ir
}
