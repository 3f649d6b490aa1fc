package effects

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

const (
	minWaveshape = 1.0
	maxWaveshape = 20.0
)

// DistortionControls is the per-block control snapshot of [Distortion].
type DistortionControls struct {
	Waveshape  float64 // [1, 20]; 1 is linear
	PreGainDB  float64 // [0, 96]
	PostGainDB float64 // [-48, 0]
}

// Distortion is a memoryless power-law waveshaper:
// y = sign(x)·(pre·|x|)^(1/shape)·post.
type Distortion struct{}

// NewDistortion returns a distortion unit. It keeps no state, so the
// sample rate is only validated.
func NewDistortion(sampleRate float64) (*Distortion, error) {
	if err := core.ValidateSampleRate("distortion", sampleRate); err != nil {
		return nil, err
	}
	return &Distortion{}, nil
}

// Reset is a no-op.
func (*Distortion) Reset() {}

// Run processes len(out) samples of in. Waveshape is clamped to [1, 20].
func (*Distortion) Run(ctrl DistortionControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	pre := core.DBToLinear(ctrl.PreGainDB)
	post := core.DBToLinear(ctrl.PostGainDB)
	shape := ctrl.Waveshape
	if math.IsNaN(shape) {
		shape = minWaveshape
	}
	exp := 1 / core.Clamp(shape, minWaveshape, maxWaveshape)

	for i := range out {
		x := in[i]
		y := math.Pow(pre*math.Abs(x), exp) * post
		if x < 0 {
			y = -y
		}
		out[i] = y
	}
	return nil
}
