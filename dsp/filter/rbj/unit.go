package rbj

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
)

// Kind selects the design a [Unit] runs.
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
	KindBandpassBW
	KindPeakingEQ
	KindLowShelf
	KindHighShelf
	KindLowpass12
	KindHighpass12
)

// highOrderStages is the section count of the twelfth-order kinds.
const highOrderStages = 6

var kindNames = [...]string{
	KindLowpass:    "lowpass",
	KindHighpass:   "highpass",
	KindBandpass:   "bandpass",
	KindBandpassBW: "bandpass-bw",
	KindPeakingEQ:  "peaking",
	KindLowShelf:   "lowshelf",
	KindHighShelf:  "highshelf",
	KindLowpass12:  "lowpass12",
	KindHighpass12: "highpass12",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every design in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Controls is the per-block control snapshot of a [Unit]. Each kind reads
// only the fields it needs:
//
//	lowpass, highpass, bandpass, *12:  FrequencyHz, Q, GainDB (output gain)
//	bandpass-bw:                       FrequencyHz, BandwidthOct, GainDB (output gain)
//	peaking:                           FrequencyHz, BandwidthOct, GainDB
//	lowshelf, highshelf:               FrequencyHz, GainDB
type Controls struct {
	FrequencyHz  float64
	Q            float64
	BandwidthOct float64
	GainDB       float64
}

// Unit is a cookbook filter effect.
type Unit struct {
	kind       Kind
	sampleRate float64
	sections   [highOrderStages]biquad.Section
	stages     int
}

// New returns a unit of the given kind.
func New(kind Kind, sampleRate float64) (*Unit, error) {
	if kind < 0 || int(kind) >= len(kindNames) {
		return nil, fmt.Errorf("rbj: unknown kind %d", int(kind))
	}
	if err := core.ValidateSampleRate("rbj "+kind.String(), sampleRate); err != nil {
		return nil, err
	}

	stages := 1
	if kind == KindLowpass12 || kind == KindHighpass12 {
		stages = highOrderStages
	}
	return &Unit{kind: kind, sampleRate: sampleRate, stages: stages}, nil
}

// Kind returns the design the unit runs.
func (u *Unit) Kind() Kind { return u.kind }

// Design returns the section coefficients and the linear output gain for
// ctrl. Twelfth-order kinds return the coefficients shared by all six
// sections.
func (u *Unit) Design(ctrl Controls) (biquad.Coefficients, float64) {
	fs := u.sampleRate
	out := core.DBToLinear(ctrl.GainDB)

	switch u.kind {
	case KindHighpass:
		return Highpass(ctrl.FrequencyHz, ctrl.Q, fs), out
	case KindBandpass:
		return Bandpass(ctrl.FrequencyHz, ctrl.Q, fs), out
	case KindBandpassBW:
		return BandpassBW(ctrl.FrequencyHz, ctrl.BandwidthOct, fs), out
	case KindPeakingEQ:
		return PeakingEQ(ctrl.FrequencyHz, ctrl.GainDB, ctrl.BandwidthOct, fs), 1
	case KindLowShelf:
		return LowShelf(ctrl.FrequencyHz, ctrl.GainDB, ShelfSlope, fs), 1
	case KindHighShelf:
		return HighShelf(ctrl.FrequencyHz, ctrl.GainDB, ShelfSlope, fs), 1
	case KindLowpass12:
		return Lowpass(ctrl.FrequencyHz, stageQ(ctrl.Q), fs), out
	case KindHighpass12:
		return Highpass(ctrl.FrequencyHz, stageQ(ctrl.Q), fs), out
	default:
		return Lowpass(ctrl.FrequencyHz, ctrl.Q, fs), out
	}
}

// Run filters len(out) samples of in.
func (u *Unit) Run(ctrl Controls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	c, gain := u.Design(ctrl)
	s := u.sections[:u.stages]
	for i := range s {
		s[i].SetCoefficients(c)
	}

	for i := range out {
		x := in[i]
		for j := range s {
			x = s[j].ProcessSample(x)
		}
		out[i] = x * gain
	}
	return nil
}

// Reset clears the filter state.
func (u *Unit) Reset() {
	for i := range u.sections {
		u.sections[i].Reset()
	}
}

// Response returns the unit response for ctrl, output gain included.
func (u *Unit) Response(ctrl Controls, freqHz float64) complex128 {
	c, gain := u.Design(ctrl)
	h := c.Response(freqHz, u.sampleRate)
	r := complex(gain, 0)
	for range u.stages {
		r *= h
	}
	return r
}

// stageQ spreads the overall Q across the six identical sections.
func stageQ(q float64) float64 {
	return math.Pow(q, 1.0/highOrderStages)
}
