package rbj

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
)

// halfLn2 converts a bandwidth in octaves into the sinh argument of the
// band designs.
const halfLn2 = math.Ln2 / 2

// ShelfSlope is the shelf slope S used by the shelving units.
const ShelfSlope = 1.0

func omega(freq, sampleRate float64) float64 {
	return 2 * math.Pi * freq / sampleRate
}

// Lowpass designs a second-order lowpass at freq (Hz) with quality q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs a second-order highpass at freq (Hz) with quality q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)
}

// Bandpass designs a band-pass with 0 dB peak gain at freq.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*math.Cos(w0), 1-alpha)
}

// BandwidthAlpha returns the cookbook alpha for a bandwidth in octaves.
func BandwidthAlpha(w0, octaves float64) float64 {
	sw := math.Sin(w0)
	return sw * math.Sinh(halfLn2*octaves*w0/sw)
}

// BandpassBW designs a 0 dB peak band-pass with bandwidth in octaves.
func BandpassBW(freq, octaves, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	alpha := BandwidthAlpha(w0, octaves)

	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*math.Cos(w0), 1-alpha)
}

// PeakingEQ designs a peaking filter with gain in dB and bandwidth in octaves.
func PeakingEQ(freq, gainDB, octaves, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	cw := math.Cos(w0)
	alpha := BandwidthAlpha(w0, octaves)
	a := math.Pow(10, gainDB/40)

	return normalizeBiquad(1+alpha*a, -2*cw, 1-alpha*a, 1+alpha/a, -2*cw, 1-alpha/a)
}

func shelfBeta(a, slope float64) float64 {
	return math.Sqrt((a*a+1)/slope - (a-1)*(a-1))
}

// LowShelf designs a low shelf with gain in dB and shelf slope.
func LowShelf(freq, gainDB, slope, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	bs := shelfBeta(a, slope) * math.Sin(w0)

	b0 := a * ((a + 1) - (a-1)*cw + bs)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - bs)
	a0 := (a + 1) + (a-1)*cw + bs
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - bs

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs a high shelf with gain in dB and shelf slope.
func HighShelf(freq, gainDB, slope, sampleRate float64) biquad.Coefficients {
	w0 := omega(freq, sampleRate)
	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)
	bs := shelfBeta(a, slope) * math.Sin(w0)

	b0 := a * ((a + 1) + (a-1)*cw + bs)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - bs)
	a0 := (a + 1) - (a-1)*cw + bs
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - bs

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
