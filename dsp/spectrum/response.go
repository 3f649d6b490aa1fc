package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// floorDB is reported for bins with zero magnitude.
const floorDB = -300.0

var errNoCrossing = errors.New("spectrum: response never crosses the level")

// ProcessFunc is the shape of a single-channel unit's Run with its controls
// bound.
type ProcessFunc func(in, out []float64) error

// ImpulseResponse feeds a unit impulse followed by silence through process
// in one block and returns n output samples.
func ImpulseResponse(process ProcessFunc, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("impulse response length must be > 0: %d", n)
	}
	in := make([]float64, n)
	in[0] = 1
	out := make([]float64, n)
	if err := process(in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Response is a frequency response on the bins 0..N/2 of an N-point FFT.
type Response struct {
	sampleRate float64
	fftSize    int
	bins       []complex128
	mag        []float64
	db         []float64
}

// MagnitudeResponse zero-pads ir to fftSize and transforms it.
func MagnitudeResponse(ir []float64, fftSize int, sampleRate float64) (*Response, error) {
	if err := core.ValidateSampleRate("spectrum", sampleRate); err != nil {
		return nil, err
	}
	if fftSize < 2 || len(ir) > fftSize {
		return nil, fmt.Errorf("fft size must be >= 2 and >= %d: %d", len(ir), fftSize)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	n := fftSize/2 + 1
	r := &Response{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		bins:       out[:n],
		mag:        make([]float64, n),
		db:         make([]float64, n),
	}

	re := make([]float64, n)
	im := make([]float64, n)
	for k, c := range r.bins {
		re[k], im[k] = real(c), imag(c)
	}
	vecmath.Magnitude(r.mag, re, im)
	for k, m := range r.mag {
		if m > 0 {
			r.db[k] = core.LinearToDB(m)
		} else {
			r.db[k] = floorDB
		}
	}
	return r, nil
}

// Measure records an impulse response of fftSize samples and transforms it.
func Measure(process ProcessFunc, fftSize int, sampleRate float64) (*Response, error) {
	ir, err := ImpulseResponse(process, fftSize)
	if err != nil {
		return nil, err
	}
	return MagnitudeResponse(ir, fftSize, sampleRate)
}

// Len returns the number of bins.
func (r *Response) Len() int { return len(r.bins) }

// FrequencyHz returns the centre frequency of bin k.
func (r *Response) FrequencyHz(k int) float64 {
	return float64(k) * r.sampleRate / float64(r.fftSize)
}

// Bins returns the complex bins; the slice is owned by r.
func (r *Response) Bins() []complex128 { return r.bins }

// Magnitude returns |H| per bin; the slice is owned by r.
func (r *Response) Magnitude() []float64 { return r.mag }

// MagnitudeDB returns 20·log10|H| per bin; the slice is owned by r.
func (r *Response) MagnitudeDB() []float64 { return r.db }

// At returns the magnitude in dB at freqHz, interpolated linearly between
// bins and held at the ends.
func (r *Response) At(freqHz float64) float64 {
	x := freqHz * float64(r.fftSize) / r.sampleRate
	switch {
	case !(x > 0):
		return r.db[0]
	case x >= float64(len(r.db)-1):
		return r.db[len(r.db)-1]
	}
	k := int(x)
	t := x - float64(k)
	return r.db[k] + t*(r.db[k+1]-r.db[k])
}

// Crossing returns the first frequency at or above fromHz where the
// magnitude passes levelDB, in either direction, interpolated between bins.
func (r *Response) Crossing(levelDB, fromHz float64) (float64, error) {
	start := max(int(math.Ceil(fromHz*float64(r.fftSize)/r.sampleRate)), 0)
	for k := start + 1; k < len(r.db); k++ {
		a, b := r.db[k-1]-levelDB, r.db[k]-levelDB
		if a == 0 {
			return r.FrequencyHz(k - 1), nil
		}
		if (a < 0) != (b < 0) || b == 0 {
			t := a / (a - b)
			return r.FrequencyHz(k-1) + t*(r.FrequencyHz(k)-r.FrequencyHz(k-1)), nil
		}
	}
	return 0, fmt.Errorf("%w: %.2f dB above %.1f Hz", errNoCrossing, levelDB, fromHz)
}

// Phase returns the unwrapped phase per bin in radians.
func (r *Response) Phase() []float64 {
	out := make([]float64, len(r.bins))
	offset := 0.0
	for k, c := range r.bins {
		p := cmplx.Phase(c)
		if k > 0 {
			switch d := p + offset - out[k-1]; {
			case d > math.Pi:
				offset -= 2 * math.Pi
			case d < -math.Pi:
				offset += 2 * math.Pi
			}
		}
		out[k] = p + offset
	}
	return out
}

// GroupDelay returns -dφ/dω per bin in samples, using centred differences
// inside and one-sided differences at the ends.
func (r *Response) GroupDelay() []float64 {
	phase := r.Phase()
	out := make([]float64, len(phase))
	if len(phase) < 2 {
		return out
	}
	dw := 2 * math.Pi / float64(r.fftSize)
	last := len(phase) - 1
	for k := range phase {
		var d float64
		switch k {
		case 0:
			d = phase[1] - phase[0]
		case last:
			d = phase[last] - phase[last-1]
		default:
			d = (phase[k+1] - phase[k-1]) / 2
		}
		out[k] = -d / dw
	}
	return out
}
