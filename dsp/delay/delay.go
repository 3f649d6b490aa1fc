package delay

import (
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/interp"
)

// MaxDelayMs is the longest delay of [Delay].
const MaxDelayMs = 3000.0

// DelayControls is the per-block control snapshot of [Delay].
type DelayControls struct {
	DelayMs  float64 // [0, MaxDelayMs]
	Wet      float64 // [-1, 1]
	Dry      float64 // [0, 1]
	Feedback float64 // [-1, 1]
}

// Delay is a feedback delay. Feedback is folded into the dry tap, which
// is clamped to [-1, 1] before it re-enters the buffer.
type Delay struct {
	sampleRate float64
	buf        *Buffer
	maxDelay   float64
}

// NewDelay returns a delay sized for MaxDelayMs at sampleRate.
func NewDelay(sampleRate float64) (*Delay, error) {
	if err := core.ValidateSampleRate("delay", sampleRate); err != nil {
		return nil, err
	}
	buf, err := NewBuffer(int(sampleRate*MaxDelayMs/1000) + interp.Taps)
	if err != nil {
		return nil, err
	}
	return &Delay{
		sampleRate: sampleRate,
		buf:        buf,
		maxDelay:   float64(buf.Len() - interp.Taps - 1),
	}, nil
}

// Reset clears the buffer.
func (d *Delay) Reset() { d.buf.Reset() }

// MaxDelaySamples returns the longest delay the buffer supports. Longer
// requests are clamped to it.
func (d *Delay) MaxDelaySamples() float64 { return d.maxDelay }

// Run processes len(out) samples of in.
func (d *Delay) Run(ctrl DelayControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	delay := clampDelay(ctrl.DelayMs/1000*d.sampleRate, 0, d.maxDelay)
	dInt, frac := splitDelay(delay)

	for i := range out {
		d.buf.Write(in[i])
		dryIdx := d.buf.Index(-interp.Taps / 2)
		dry := d.buf.At(dryIdx)
		wet := d.buf.Fractional(d.buf.Index(-interp.Taps-dInt), frac)

		out[i] = wet*ctrl.Wet + dry*ctrl.Dry
		d.buf.Set(dryIdx, core.ClampUnit(dry+wet*ctrl.Feedback))
		d.buf.Advance()
	}
	return nil
}

// clampDelay limits a delay in samples to [lo, hi]; NaN maps to lo.
func clampDelay(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
