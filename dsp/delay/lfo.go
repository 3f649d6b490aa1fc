package delay

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/interp"
)

const (
	// MaxLFODelayMs is the longest base delay of [LFODelay].
	MaxLFODelayMs = 1000.0
	// MaxAllpassDelaySec is the longest base delay of [LFOAllpass].
	MaxAllpassDelaySec = 10.0
)

// LFODelayControls is the per-block control snapshot of [LFODelay].
type LFODelayControls struct {
	DelayMs        float64 // [0, MaxLFODelayMs]
	Wet            float64
	Dry            float64
	Feedback       float64
	LFOFrequencyHz float64 // [0.001, 10]
	LFOAmount      float64 // [0, 1]
}

// LFODelay is a feedback delay whose time is swept by a sine LFO:
// delay = d0·(1 + sin θ·amount).
type LFODelay struct {
	sampleRate float64
	buf        *Buffer
	maxDelay   float64
	theta      float64
}

// NewLFODelay returns an LFO delay. The buffer holds twice the maximum
// base delay so a full sweep never reads past the history.
func NewLFODelay(sampleRate float64) (*LFODelay, error) {
	if err := core.ValidateSampleRate("lfo delay", sampleRate); err != nil {
		return nil, err
	}
	buf, err := NewBuffer(int(sampleRate*MaxLFODelayMs/1000*2) + interp.Taps + 2)
	if err != nil {
		return nil, err
	}
	return &LFODelay{
		sampleRate: sampleRate,
		buf:        buf,
		maxDelay:   float64(buf.Len() - interp.Taps - 1),
	}, nil
}

// Reset clears the buffer and the LFO phase.
func (d *LFODelay) Reset() {
	d.buf.Reset()
	d.theta = 0
}

// Phase returns the LFO phase in [0, 2π).
func (d *LFODelay) Phase() float64 { return d.theta }

// Run processes len(out) samples of in.
func (d *LFODelay) Run(ctrl LFODelayControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	dtheta := 2 * math.Pi * ctrl.LFOFrequencyHz / d.sampleRate
	delay0 := ctrl.DelayMs / 1000 * d.sampleRate

	for i := range out {
		d.buf.Write(in[i])
		dryIdx := d.buf.Index(-interp.Taps / 2)
		dry := d.buf.At(dryIdx)

		delay := clampDelay(delay0*(1+math.Sin(d.theta)*ctrl.LFOAmount), 0, d.maxDelay)
		dInt, frac := splitDelay(delay)
		wet := d.buf.Fractional(d.buf.Index(-interp.Taps-dInt), frac)

		out[i] = wet*ctrl.Wet + dry*ctrl.Dry
		d.buf.Set(dryIdx, core.ClampUnit(dry+wet*ctrl.Feedback))
		d.buf.Advance()
		d.theta = core.WrapPhase(d.theta + dtheta)
	}
	return nil
}

// LFOAllpassControls is the per-block control snapshot of [LFOAllpass].
type LFOAllpassControls struct {
	DelaySec       float64 // [0, MaxAllpassDelaySec]
	Feedback       float64 // allpass coefficient g, [0, 1]
	LFOFrequencyHz float64
	LFOAmount      float64
}

// LFOAllpass is a Schroeder allpass whose loop delay is swept by a sine
// LFO. The loop delay never drops below Taps/2 samples.
type LFOAllpass struct {
	sampleRate float64
	buf        *Buffer
	maxDelay   float64
	theta      float64
}

// NewLFOAllpass returns an LFO allpass.
func NewLFOAllpass(sampleRate float64) (*LFOAllpass, error) {
	if err := core.ValidateSampleRate("lfo allpass", sampleRate); err != nil {
		return nil, err
	}
	buf, err := NewBuffer(int(sampleRate*MaxAllpassDelaySec*2) + interp.Taps)
	if err != nil {
		return nil, err
	}
	return &LFOAllpass{
		sampleRate: sampleRate,
		buf:        buf,
		maxDelay:   float64(buf.Len() - interp.Taps - 2),
	}, nil
}

// Reset clears the buffer and the LFO phase.
func (a *LFOAllpass) Reset() {
	a.buf.Reset()
	a.theta = 0
}

// Run processes len(out) samples of in.
func (a *LFOAllpass) Run(ctrl LFOAllpassControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	dtheta := 2 * math.Pi * ctrl.LFOFrequencyHz / a.sampleRate
	delay0 := ctrl.DelaySec * a.sampleRate
	g := ctrl.Feedback

	for i := range out {
		delay := clampDelay(delay0*(1+math.Sin(a.theta)*ctrl.LFOAmount), interp.Taps/2, a.maxDelay)
		dInt, frac := splitDelay(delay)
		h := a.buf.Fractional(a.buf.Index(-interp.Taps/2-1-dInt), frac)

		m := core.ClampUnit(in[i] + h*g)
		out[i] = h - m*g
		a.buf.Write(m)
		a.buf.Advance()
		a.theta = core.WrapPhase(a.theta + dtheta)
	}
	return nil
}
