package effects

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// DCRemoverControls is the per-block control snapshot of [DCRemover].
type DCRemoverControls struct {
	FrequencyHz float64 // [1, 10]
}

// DCRemoverPole returns the pole a1 of the highpass
// H(z) = (1 - z⁻¹)/(1 - a1·z⁻¹) whose magnitude is 1/√2 at freqHz.
func DCRemoverPole(freqHz, sampleRate float64) float64 {
	c := math.Cos(2 * math.Pi * freqHz / sampleRate)
	return c - math.Sqrt(c*c-4*c+3)
}

// DCRemover removes the DC component of a signal.
type DCRemover struct {
	sampleRate float64
	xz, yz     float64
}

// NewDCRemover returns a DC remover with cleared state.
func NewDCRemover(sampleRate float64) (*DCRemover, error) {
	if err := core.ValidateSampleRate("dc remover", sampleRate); err != nil {
		return nil, err
	}
	return &DCRemover{sampleRate: sampleRate}, nil
}

// Reset clears the filter state.
func (d *DCRemover) Reset() {
	d.xz, d.yz = 0, 0
}

// Run processes len(out) samples of in.
func (d *DCRemover) Run(ctrl DCRemoverControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	a1 := DCRemoverPole(ctrl.FrequencyHz, d.sampleRate)
	xz, yz := d.xz, d.yz
	for i := range out {
		x := in[i]
		y := core.FlushDenormals(x - xz + a1*yz)
		xz, yz = x, y
		out[i] = y
	}
	d.xz, d.yz = xz, yz
	return nil
}
