package signal

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic test signals from a processor
// configuration. Noise draws from a generator seeded by core.WithSeed.
type Generator struct {
	cfg core.ProcessorConfig
	rng *rand.Rand
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Generator{cfg: cfg, rng: cfg.NewRand()}
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if err := core.ValidateSampleRate("sine", g.cfg.SampleRate); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude]. Successive
// calls continue the same random sequence.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = (g.rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Impulse generates a single sample of the given amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse position must be in [0, %d): %d", samples, pos)
	}
	out := make([]float64, samples)
	out[pos] = amplitude
	return out, nil
}

// Normalize scales every channel by one common factor so the loudest
// sample across all of them reaches targetPeak, and returns that factor.
// Silent input is left unchanged with a factor of 1. Non-finite samples are
// ignored when finding the peak.
func Normalize(targetPeak float64, channels ...[]float64) (float64, error) {
	if targetPeak <= 0 || math.IsInf(targetPeak, 0) || math.IsNaN(targetPeak) {
		return 0, fmt.Errorf("normalize target peak must be > 0 and finite: %f", targetPeak)
	}

	peak := 0.0
	for _, ch := range channels {
		for _, v := range ch {
			if a := math.Abs(v); a > peak && !math.IsInf(a, 0) {
				peak = a
			}
		}
	}
	if peak == 0 {
		return 1, nil
	}

	gain := targetPeak / peak
	for _, ch := range channels {
		vecmath.ScaleBlock(ch, ch, gain)
	}
	return gain, nil
}
