package signal

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/interp"
	"github.com/cwbudde/algo-fx/dsp/lpc"
	"github.com/cwbudde/algo-vecmath"
)

// ImpulseLatency is the delay in samples from an impulse time to the peak
// of its band-limited kernel in the output.
const ImpulseLatency = interp.Taps / 2

// impulseTrain schedules band-limited impulses at fractional periods. Each
// impulse is added to a circular accumulator that is read and cleared one
// sample at a time.
type impulseTrain struct {
	acc    [interp.Taps]float64
	idx    int
	tacc   float64
	period float64
}

func (p *impulseTrain) reset(period float64) {
	p.acc = [interp.Taps]float64{}
	p.idx = 0
	p.tacc = 0
	p.period = period
}

// next advances one sample and reports whether an impulse was deposited.
func (p *impulseTrain) next() (float64, bool) {
	fired := true
	switch d := p.tacc - p.period; {
	case d <= -1:
		p.tacc++
		fired = false
	case d <= 0:
		interp.ImpulseTable().AddTo(p.acc[:], p.idx, -d)
		p.tacc = 1 + d
	default:
		interp.ImpulseTable().AddTo(p.acc[:], p.idx, 0)
		p.tacc = 0
	}

	y := p.acc[p.idx]
	p.acc[p.idx] = 0
	if p.idx++; p.idx == interp.Taps {
		p.idx = 0
	}
	return y, fired
}

// ImpulseControls is the per-block control snapshot of [ImpulseGenerator].
type ImpulseControls struct {
	FrequencyHz float64
	AmplitudeDB float64
	Jitter      float64 // random period deviation as a fraction, [0, 1]
}

// ImpulseGenerator emits a band-limited impulse train. A non-positive or NaN
// frequency stops new impulses.
type ImpulseGenerator struct {
	sampleRate float64
	cfg        core.ProcessorConfig
	rng        *rand.Rand
	train      impulseTrain
	factor     float64
}

// NewImpulseGenerator returns a generator whose jitter draws from the
// generator configured by opts (core.WithSeed).
func NewImpulseGenerator(sampleRate float64, opts ...core.ProcessorOption) (*ImpulseGenerator, error) {
	if err := core.ValidateSampleRate("impulse generator", sampleRate); err != nil {
		return nil, err
	}
	g := &ImpulseGenerator{
		sampleRate: sampleRate,
		cfg:        core.ApplyProcessorOptions(opts...),
	}
	g.Reset()
	return g, nil
}

// Reset clears pending impulses and reseeds the jitter sequence.
func (g *ImpulseGenerator) Reset() {
	g.rng = g.cfg.NewRand()
	g.train.reset(0)
	g.factor = 1
}

func (g *ImpulseGenerator) basePeriod(freq float64) float64 {
	if !(freq > 0) {
		return math.Inf(1)
	}
	return g.sampleRate / freq
}

// Run writes len(out) samples.
func (g *ImpulseGenerator) Run(ctrl ImpulseControls, out []float64) error {
	base := g.basePeriod(ctrl.FrequencyHz)
	jitter := core.Clamp(ctrl.Jitter, 0, 1)
	if math.IsNaN(jitter) {
		jitter = 0
	}
	if jitter == 0 {
		g.factor = 1
	}
	g.train.period = max(base*g.factor, 1)

	for i := range out {
		y, fired := g.train.next()
		out[i] = y
		if fired && jitter > 0 {
			g.factor = 1 + jitter*(2*g.rng.Float64()-1)
			g.train.period = max(base*g.factor, 1)
		}
	}

	vecmath.ScaleBlock(out, out, core.DBToLinear(ctrl.AmplitudeDB))
	return nil
}

// VoiceImpulseControls is the per-block control snapshot of
// [VoiceImpulseGenerator].
type VoiceImpulseControls struct {
	AmplitudeDB float64
}

// initialVoiceHz sets the period used before the first voiced frame.
const initialVoiceHz = 100

// VoiceImpulseGenerator emits an impulse train whose period follows the
// pitch of its input, as tracked by an lpc.PitchEstimator.
type VoiceImpulseGenerator struct {
	sampleRate float64
	pitch      *lpc.PitchEstimator
	train      impulseTrain
}

// NewVoiceImpulseGenerator returns a generator starting at fs/100.
func NewVoiceImpulseGenerator(sampleRate float64, opts ...lpc.PitchOption) (*VoiceImpulseGenerator, error) {
	if err := core.ValidateSampleRate("voice impulse generator", sampleRate); err != nil {
		return nil, err
	}
	pitch, err := lpc.NewPitchEstimator(sampleRate, opts...)
	if err != nil {
		return nil, err
	}
	g := &VoiceImpulseGenerator{sampleRate: sampleRate, pitch: pitch}
	g.Reset()
	return g, nil
}

// Period returns the current impulse period in samples.
func (g *VoiceImpulseGenerator) Period() float64 { return g.train.period }

// Reset clears the estimator and pending impulses.
func (g *VoiceImpulseGenerator) Reset() {
	g.pitch.Reset()
	g.train.reset(g.sampleRate / initialVoiceHz)
}

// Run reads len(out) samples of in and writes the impulse train to out.
func (g *VoiceImpulseGenerator) Run(ctrl VoiceImpulseControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	for i := range out {
		if period, ok := g.pitch.Process(in[i]); ok {
			g.train.period = period
		}
		out[i], _ = g.train.next()
	}
	vecmath.ScaleBlock(out, out, core.DBToLinear(ctrl.AmplitudeDB))
	return nil
}
