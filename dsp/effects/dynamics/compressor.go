package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

const (
	// EnvelopeFloor is the envelope level below which the output is muted.
	// Reset initialises both envelopes to it.
	EnvelopeFloor = 1.19209290e-7

	// settleLevel is the residual fraction of a step left after one time
	// constant.
	settleLevel = 0.05

	minRatio = 0.01
	maxRatio = 100.0
)

// Controls is the per-block control snapshot of [Compressor].
type Controls struct {
	UnityDB     float64 // [-96, 0]
	RatioHi     float64 // [0.01, 100]
	RatioLo     float64 // [0.01, 100]
	ThresholdDB float64 // [-140, 0]
	AttackSec   float64 // [0.001, 5]; <= 0 snaps up instantly
	DecaySec    float64 // [0.001, 5]
}

// Coefficient returns the one-pole smoothing coefficient that closes 95 %
// of a step within seconds: 1 - 0.05^(1/(seconds·sampleRate)).
// Non-positive or NaN times give 1.
func Coefficient(seconds, sampleRate float64) float64 {
	if !(seconds > 0) {
		return 1
	}
	return 1 - math.Pow(settleLevel, 1/(seconds*sampleRate))
}

// GainDB returns the gain in dB applied at envelope level envDB.
func GainDB(envDB float64, ctrl Controls) float64 {
	hi := clampRatio(ctrl.RatioHi)
	if envDB < ctrl.ThresholdDB {
		lo := clampRatio(ctrl.RatioLo)
		return ctrl.UnityDB + (ctrl.ThresholdDB-ctrl.UnityDB)/hi + (envDB-ctrl.ThresholdDB)/lo - envDB
	}
	return ctrl.UnityDB + (envDB-ctrl.UnityDB)/hi - envDB
}

func clampRatio(r float64) float64 {
	if math.IsNaN(r) {
		return 1
	}
	return core.Clamp(r, minRatio, maxRatio)
}

// Compressor is a stereo compressor with independent channel envelopes.
type Compressor struct {
	sampleRate float64
	env        [2]float64
}

// NewCompressor returns a compressor with both envelopes at EnvelopeFloor.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if err := core.ValidateSampleRate("compressor", sampleRate); err != nil {
		return nil, err
	}
	c := &Compressor{sampleRate: sampleRate}
	c.Reset()
	return c, nil
}

// Reset returns both envelopes to EnvelopeFloor.
func (c *Compressor) Reset() {
	c.env = [2]float64{EnvelopeFloor, EnvelopeFloor}
}

// Envelope returns the envelope of channel ch (0 or 1).
func (c *Compressor) Envelope(ch int) (float64, error) {
	if ch < 0 || ch >= len(c.env) {
		return 0, fmt.Errorf("compressor channel out of range: %d", ch)
	}
	return c.env[ch], nil
}

// Run processes len(out1) frames of both channels.
func (c *Compressor) Run(ctrl Controls, in1, in2, out1, out2 []float64) error {
	if err := core.CheckBlock(out1, in1, in2, out2); err != nil {
		return err
	}

	attack := Coefficient(ctrl.AttackSec, c.sampleRate)
	decay := Coefficient(ctrl.DecaySec, c.sampleRate)
	n := len(out1)

	compressChannel(in1[:n], out1, &c.env[0], ctrl, attack, decay)
	compressChannel(in2[:n], out2[:n], &c.env[1], ctrl, attack, decay)
	return nil
}

func compressChannel(in, out []float64, env *float64, ctrl Controls, attack, decay float64) {
	e := *env
	for i, x := range in {
		delta := math.Abs(x) - e
		if delta > 0 {
			e += delta * attack
		} else {
			e += delta * decay
		}

		if e < EnvelopeFloor {
			out[i] = 0
			continue
		}
		g := GainDB(20*mathLog10(e), ctrl)
		out[i] = x * mathPower10(g/20)
	}
	*env = e
}
