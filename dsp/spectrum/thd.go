package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/window"
)

// blackmanHalfWidth is the main-lobe half width of the Blackman window in
// bins of an unpadded transform.
const blackmanHalfWidth = 3

var errNoFundamental = errors.New("spectrum: no energy at the fundamental")

// Distortion is the harmonic content of a steady tone.
type Distortion struct {
	FundamentalHz float64
	// Amplitude is the peak amplitude of the fundamental.
	Amplitude float64
	// Harmonics[i] is the amplitude of harmonic i+2 relative to the
	// fundamental.
	Harmonics []float64
	// THD is the RMS sum of Harmonics.
	THD float64
	// THDN relates everything except DC and the fundamental to the
	// fundamental.
	THDN float64
}

// THDDB returns THD in dB.
func (d Distortion) THDDB() float64 { return core.LinearToDB(d.THD) }

// THDNDB returns THD+N in dB.
func (d Distortion) THDNDB() float64 { return core.LinearToDB(d.THDN) }

// MeasureTHD analyses a steady tone near fundamentalHz. The signal is
// Blackman-windowed and zero-padded to a power of two. Energy is summed over
// each spectral line's main lobe; at most harmonics lines above the
// fundamental are evaluated, fewer if they pass Nyquist.
func MeasureTHD(signal []float64, sampleRate, fundamentalHz float64, harmonics int) (Distortion, error) {
	if err := core.ValidateSampleRate("spectrum", sampleRate); err != nil {
		return Distortion{}, err
	}
	if len(signal) < 64 {
		return Distortion{}, fmt.Errorf("spectrum: THD needs at least 64 samples: %d", len(signal))
	}
	if fundamentalHz <= 0 || fundamentalHz >= sampleRate/2 {
		return Distortion{}, fmt.Errorf("spectrum: fundamental must be in (0, %g): %g", sampleRate/2, fundamentalHz)
	}
	if harmonics < 1 {
		return Distortion{}, fmt.Errorf("spectrum: harmonics must be >= 1: %d", harmonics)
	}

	fftSize := 1 << bits.Len(uint(len(signal)-1))
	w := window.Generate(window.TypeBlackman, len(signal))

	in := make([]complex128, fftSize)
	wsq := 0.0
	for i, x := range signal {
		in[i] = complex(x*w[i], 0)
		wsq += w[i] * w[i]
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Distortion{}, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Distortion{}, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	nyq := fftSize / 2
	power := make([]float64, nyq+1)
	for k := range power {
		power[k] = real(out[k])*real(out[k]) + imag(out[k])*imag(out[k])
	}

	binHz := sampleRate / float64(fftSize)
	capture := int(math.Ceil(blackmanHalfWidth * float64(fftSize) / float64(len(signal))))

	// Refine the fundamental to the strongest bin near the nominal one.
	f0 := int(math.Round(fundamentalHz / binHz))
	peak := f0
	for k := max(f0-capture, 1); k <= min(f0+capture, nyq); k++ {
		if power[k] > power[peak] {
			peak = k
		}
	}
	if peak <= capture {
		return Distortion{}, fmt.Errorf("spectrum: fundamental %g Hz too close to DC", fundamentalHz)
	}

	fund := lineEnergy(power, peak, capture)
	if fund <= 0 {
		return Distortion{}, errNoFundamental
	}

	d := Distortion{
		FundamentalHz: float64(peak) * binHz,
		Amplitude:     math.Sqrt(4 * fund / (float64(fftSize) * wsq)),
	}

	harm := 0.0
	for h := 2; h <= harmonics+1; h++ {
		k := int(math.Round(float64(h) * fundamentalHz / binHz))
		if k+capture > nyq {
			break
		}
		e := lineEnergy(power, k, capture)
		harm += e
		d.Harmonics = append(d.Harmonics, math.Sqrt(e/fund))
	}
	d.THD = math.Sqrt(harm / fund)

	rest := 0.0
	for k := capture + 1; k <= nyq; k++ {
		if k < peak-capture || k > peak+capture {
			rest += power[k]
		}
	}
	d.THDN = math.Sqrt(rest / fund)

	return d, nil
}

func lineEnergy(power []float64, center, capture int) float64 {
	e := 0.0
	for k := max(center-capture, 0); k <= min(center+capture, len(power)-1); k++ {
		e += power[k]
	}
	return e
}
