package signal

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// SineControls is the per-block control snapshot of [Sine].
type SineControls struct {
	FrequencyHz float64
	AmplitudeDB float64
}

// Sine is a phase-accumulating sine oscillator. The frequency moves
// linearly from the previous block's value to the current one across each
// block, so control steps do not click.
type Sine struct {
	sampleRate float64
	phase      float64
	lastFreq   float64
	started    bool
}

// NewSine returns an oscillator at phase 0.
func NewSine(sampleRate float64) (*Sine, error) {
	if err := core.ValidateSampleRate("sine", sampleRate); err != nil {
		return nil, err
	}
	return &Sine{sampleRate: sampleRate}, nil
}

// Phase returns the phase of the next sample in [0, 2π).
func (s *Sine) Phase() float64 { return s.phase }

// Reset returns the phase to 0 and forgets the previous frequency.
func (s *Sine) Reset() {
	s.phase = 0
	s.lastFreq = 0
	s.started = false
}

// Run writes len(out) samples. It never fails; the error keeps the
// signature in line with the other units.
func (s *Sine) Run(ctrl SineControls, out []float64) error {
	if len(out) == 0 {
		return nil
	}

	from := ctrl.FrequencyHz
	if s.started {
		from = s.lastFreq
	}
	amp := core.DBToLinear(ctrl.AmplitudeDB)
	k := 2 * math.Pi / s.sampleRate
	slope := (ctrl.FrequencyHz - from) / float64(len(out))

	for i := range out {
		out[i] = math.Sin(s.phase) * amp
		f := from + slope*float64(i)
		s.phase = core.WrapPhase(s.phase + k*f)
	}

	s.lastFreq = ctrl.FrequencyHz
	s.started = true
	return nil
}
