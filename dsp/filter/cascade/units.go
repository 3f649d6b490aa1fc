package cascade

import (
	"math/cmplx"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
)

// ButterworthControls is the per-block control snapshot of a Butterworth unit.
type ButterworthControls struct {
	FrequencyHz float64
	// Q is the centre frequency over bandwidth; band units only.
	Q float64
	// Order is truncated toward zero and must lie in [1, MaxOrder].
	Order float64
}

// lowCascade is the shared runtime of the lowpass and highpass units.
type lowCascade struct {
	sampleRate float64
	order      int
	single     biquad.FirstOrder
	singleOn   bool
	pairs      *Arena[biquad.Section]
}

func newLowCascade(unit string, sampleRate float64) (lowCascade, error) {
	if err := core.ValidateSampleRate(unit, sampleRate); err != nil {
		return lowCascade{}, err
	}
	return lowCascade{sampleRate: sampleRate, pairs: NewArena[biquad.Section](maxSections)}, nil
}

func (c *lowCascade) run(ctrl ButterworthControls, in, out []float64, highpass bool) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	n, err := orderOf(ctrl.Order)
	if err != nil {
		return err
	}
	if err := c.pairs.Resize(n / 2); err != nil {
		return err
	}

	k := biquad.K(ctrl.FrequencyHz, c.sampleRate)
	odd := n%2 != 0
	if odd && !c.singleOn {
		c.single.Reset()
	}
	c.singleOn = odd
	c.order = n

	if odd {
		if highpass {
			c.single.SetCoefficients(HighpassFirstOrder(k))
		} else {
			c.single.SetCoefficients(LowpassFirstOrder(k))
		}
	}
	pairs := c.pairs.Active()
	for i := range pairs {
		if highpass {
			pairs[i].SetCoefficients(HighpassSection(k, poleConstant(n, i)))
		} else {
			pairs[i].SetCoefficients(LowpassSection(k, poleConstant(n, i)))
		}
	}

	for i := range out {
		x := in[i]
		if c.singleOn {
			x = c.single.ProcessSample(x)
		}
		for j := range pairs {
			x = pairs[j].ProcessSample(x)
		}
		out[i] = x
	}
	return nil
}

func (c *lowCascade) reset() {
	c.single.Reset()
	c.pairs.Reset()
}

func (c *lowCascade) response(freqHz float64) complex128 {
	h := complex(1, 0)
	if c.singleOn {
		h *= c.single.Response(freqHz, c.sampleRate)
	}
	for _, s := range c.pairs.Active() {
		h *= s.Response(freqHz, c.sampleRate)
	}
	return h
}

func (c *lowCascade) stable() bool {
	if c.singleOn && !c.single.IsStable() {
		return false
	}
	for _, s := range c.pairs.Active() {
		if !s.IsStable() {
			return false
		}
	}
	return true
}

// bandCascade is the shared runtime of the band-pass and band-stop units.
type bandCascade struct {
	sampleRate float64
	order      int
	single     biquad.Section
	singleOn   bool
	pairs      *Arena[biquad.Section4]
}

func newBandCascade(unit string, sampleRate float64) (bandCascade, error) {
	if err := core.ValidateSampleRate(unit, sampleRate); err != nil {
		return bandCascade{}, err
	}
	return bandCascade{sampleRate: sampleRate, pairs: NewArena[biquad.Section4](maxSections)}, nil
}

func (c *bandCascade) run(ctrl ButterworthControls, in, out []float64, stop bool) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	n, err := orderOf(ctrl.Order)
	if err != nil {
		return err
	}
	if err := c.pairs.Resize(n / 2); err != nil {
		return err
	}

	k := biquad.K(ctrl.FrequencyHz, c.sampleRate)
	odd := n%2 != 0
	if odd && !c.singleOn {
		c.single.Reset()
	}
	c.singleOn = odd
	c.order = n

	if odd {
		if stop {
			c.single.SetCoefficients(BandstopSingle(k, ctrl.Q))
		} else {
			c.single.SetCoefficients(BandpassSingle(k, ctrl.Q))
		}
	}
	pairs := c.pairs.Active()
	for i := range pairs {
		if stop {
			pairs[i].SetCoefficients(BandstopSection(k, ctrl.Q, poleConstant(n, i)))
		} else {
			pairs[i].SetCoefficients(BandpassSection(k, ctrl.Q, poleConstant(n, i)))
		}
	}

	for i := range out {
		x := in[i]
		if c.singleOn {
			x = c.single.ProcessSample(x)
		}
		for j := range pairs {
			x = pairs[j].ProcessSample(x)
		}
		out[i] = x
	}
	return nil
}

func (c *bandCascade) reset() {
	c.single.Reset()
	c.pairs.Reset()
}

func (c *bandCascade) response(freqHz float64) complex128 {
	h := complex(1, 0)
	if c.singleOn {
		h *= c.single.Response(freqHz, c.sampleRate)
	}
	for _, s := range c.pairs.Active() {
		h *= s.Response(freqHz, c.sampleRate)
	}
	return h
}

func (c *bandCascade) stable() bool {
	if c.singleOn && !c.single.IsStable() {
		return false
	}
	for _, s := range c.pairs.Active() {
		if !s.IsStable() {
			return false
		}
	}
	return true
}

// ButterworthLP is an order-controlled Butterworth lowpass.
type ButterworthLP struct{ c lowCascade }

// NewButterworthLP returns a lowpass for the given sample rate.
func NewButterworthLP(sampleRate float64) (*ButterworthLP, error) {
	c, err := newLowCascade("butterworth lowpass", sampleRate)
	if err != nil {
		return nil, err
	}
	return &ButterworthLP{c: c}, nil
}

// Run filters len(out) samples of in. Coefficients follow ctrl; the
// filter state carries over between calls. An invalid order returns an
// error before out is written.
func (f *ButterworthLP) Run(ctrl ButterworthControls, in, out []float64) error {
	return f.c.run(ctrl, in, out, false)
}

// Reset clears all section state.
func (f *ButterworthLP) Reset() { f.c.reset() }

// Order returns the order used by the last Run, or 0 before the first.
func (f *ButterworthLP) Order() int { return f.c.order }

// Response returns the cascade response for the last Run's controls.
func (f *ButterworthLP) Response(freqHz float64) complex128 { return f.c.response(freqHz) }

// Stable reports whether every active pole lies inside the unit circle.
func (f *ButterworthLP) Stable() bool { return f.c.stable() }

// ButterworthHP is an order-controlled Butterworth highpass.
type ButterworthHP struct{ c lowCascade }

// NewButterworthHP returns a highpass for the given sample rate.
func NewButterworthHP(sampleRate float64) (*ButterworthHP, error) {
	c, err := newLowCascade("butterworth highpass", sampleRate)
	if err != nil {
		return nil, err
	}
	return &ButterworthHP{c: c}, nil
}

// Run filters len(out) samples of in.
func (f *ButterworthHP) Run(ctrl ButterworthControls, in, out []float64) error {
	return f.c.run(ctrl, in, out, true)
}

// Reset clears all section state.
func (f *ButterworthHP) Reset() { f.c.reset() }

// Order returns the order used by the last Run.
func (f *ButterworthHP) Order() int { return f.c.order }

// Response returns the cascade response for the last Run's controls.
func (f *ButterworthHP) Response(freqHz float64) complex128 { return f.c.response(freqHz) }

// Stable reports whether every active pole lies inside the unit circle.
func (f *ButterworthHP) Stable() bool { return f.c.stable() }

// ButterworthBP is an order-controlled Butterworth band-pass. The centre
// frequency is FrequencyHz and the bandwidth FrequencyHz/Q.
type ButterworthBP struct{ c bandCascade }

// NewButterworthBP returns a band-pass for the given sample rate.
func NewButterworthBP(sampleRate float64) (*ButterworthBP, error) {
	c, err := newBandCascade("butterworth bandpass", sampleRate)
	if err != nil {
		return nil, err
	}
	return &ButterworthBP{c: c}, nil
}

// Run filters len(out) samples of in.
func (f *ButterworthBP) Run(ctrl ButterworthControls, in, out []float64) error {
	return f.c.run(ctrl, in, out, false)
}

// Reset clears all section state.
func (f *ButterworthBP) Reset() { f.c.reset() }

// Order returns the order used by the last Run.
func (f *ButterworthBP) Order() int { return f.c.order }

// Response returns the cascade response for the last Run's controls.
func (f *ButterworthBP) Response(freqHz float64) complex128 { return f.c.response(freqHz) }

// Stable reports whether every active pole lies inside the unit circle.
func (f *ButterworthBP) Stable() bool { return f.c.stable() }

// ButterworthBS is an order-controlled Butterworth band-stop.
type ButterworthBS struct{ c bandCascade }

// NewButterworthBS returns a band-stop for the given sample rate.
func NewButterworthBS(sampleRate float64) (*ButterworthBS, error) {
	c, err := newBandCascade("butterworth bandstop", sampleRate)
	if err != nil {
		return nil, err
	}
	return &ButterworthBS{c: c}, nil
}

// Run filters len(out) samples of in.
func (f *ButterworthBS) Run(ctrl ButterworthControls, in, out []float64) error {
	return f.c.run(ctrl, in, out, true)
}

// Reset clears all section state.
func (f *ButterworthBS) Reset() { f.c.reset() }

// Order returns the order used by the last Run.
func (f *ButterworthBS) Order() int { return f.c.order }

// Response returns the cascade response for the last Run's controls.
func (f *ButterworthBS) Response(freqHz float64) complex128 { return f.c.response(freqHz) }

// Stable reports whether every active pole lies inside the unit circle.
func (f *ButterworthBS) Stable() bool { return f.c.stable() }

// MagnitudeDB converts a complex response to dB.
func MagnitudeDB(h complex128) float64 {
	return core.LinearToDB(cmplx.Abs(h))
}
