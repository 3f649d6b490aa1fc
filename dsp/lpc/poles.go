package lpc

import (
	"cmp"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-fx/internal/polyroot"
)

// Poles returns the roots of z^p - a[0]·z^(p-1) - ... - a[p-1], the poles of
// the synthesis filter.
func Poles(a []float64) ([]complex128, error) {
	c := make([]float64, len(a))
	for k, v := range a {
		c[k] = -v
	}
	return polyroot.Monic(c)
}

// Formant is a resonance of the synthesis filter.
type Formant struct {
	FrequencyHz float64
	BandwidthHz float64
	Radius      float64
}

// Formants returns one entry per complex-conjugate pole pair, sorted by
// frequency. Real poles carry no resonance and are skipped.
func Formants(a []float64, sampleRate float64) ([]Formant, error) {
	poles, err := Poles(a)
	if err != nil {
		return nil, err
	}

	out := make([]Formant, 0, len(poles)/2)
	for _, z := range poles {
		if imag(z) <= 0 {
			continue
		}
		r := cmplx.Abs(z)
		out = append(out, Formant{
			FrequencyHz: cmplx.Phase(z) * sampleRate / (2 * math.Pi),
			BandwidthHz: -math.Log(r) * sampleRate / math.Pi,
			Radius:      r,
		})
	}
	slices.SortFunc(out, func(x, y Formant) int { return cmp.Compare(x.FrequencyHz, y.FrequencyHz) })
	return out, nil
}
