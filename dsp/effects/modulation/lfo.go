package modulation

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// sweep is a sine LFO producing a unipolar value in [0, 1].
type sweep struct {
	theta float64
}

func (s *sweep) value() float64 { return 0.5 + 0.5*math.Sin(s.theta) }

func (s *sweep) advance(dtheta float64) { s.theta = core.WrapPhase(s.theta + dtheta) }

func (s *sweep) reset() { s.theta = 0 }

func phaseStep(freqHz, sampleRate float64) float64 {
	return 2 * math.Pi * freqHz / sampleRate
}
