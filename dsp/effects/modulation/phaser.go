package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
	"github.com/cwbudde/algo-fx/dsp/filter/cascade"
)

// MaxPhaserStages is the default and largest stage capacity.
const MaxPhaserStages = 8

// PhaserOption mutates phaser construction parameters.
type PhaserOption func(*phaserConfig) error

type phaserConfig struct {
	stages int
}

// WithPhaserStages sets the stage capacity in [1, MaxPhaserStages].
func WithPhaserStages(stages int) PhaserOption {
	return func(cfg *phaserConfig) error {
		if stages < 1 || stages > MaxPhaserStages {
			return fmt.Errorf("phaser stages must be in [1, %d]: %d", MaxPhaserStages, stages)
		}
		cfg.stages = stages
		return nil
	}
}

func applyPhaserOptions(opts []PhaserOption) (phaserConfig, error) {
	cfg := phaserConfig{stages: MaxPhaserStages}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func stageCount(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: phaser stages %f", cascade.ErrOrder, v)
	}
	n := int(math.Floor(v))
	if n < 1 {
		return 0, fmt.Errorf("%w: phaser stages must be >= 1: %d", cascade.ErrOrder, n)
	}
	return n, nil
}

// PhaserControls is the per-block control snapshot of [Phaser].
type PhaserControls struct {
	Wet            float64 // [-1, 1]
	FrequencyHz    float64 // [10, 5000]
	Stages         float64 // [1, capacity], floored
	LFOFrequencyHz float64 // [0.001, 10]
	LFOAmount      float64 // [0, 5000] Hz
}

// PhaserStage returns the first-order stage with corner freqHz. It has
// unit gain at DC and a phase lag that grows with frequency:
// H(z) = ((1-2α) + α·z⁻¹)/(1 - α·z⁻¹), α = 1/(1 + 2πf/fs).
func PhaserStage(freqHz, sampleRate float64) biquad.FirstOrderCoefficients {
	alpha := 1 / (1 + 2*math.Pi*freqHz/sampleRate)
	return biquad.FirstOrderCoefficients{B0: 1 - 2*alpha, B1: alpha, A1: -alpha}
}

// Phaser mixes its input with a swept cascade of first-order phase stages:
// out = (wet·y + x)/2.
type Phaser struct {
	sampleRate float64
	stages     *cascade.Arena[biquad.FirstOrder]
	lfo        sweep
}

// NewPhaser returns a phaser with room for MaxPhaserStages stages unless
// WithPhaserStages lowers it.
func NewPhaser(sampleRate float64, opts ...PhaserOption) (*Phaser, error) {
	if err := core.ValidateSampleRate("phaser", sampleRate); err != nil {
		return nil, err
	}
	cfg, err := applyPhaserOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Phaser{
		sampleRate: sampleRate,
		stages:     cascade.NewArena[biquad.FirstOrder](cfg.stages),
	}, nil
}

// Capacity returns the largest usable stage count.
func (p *Phaser) Capacity() int { return p.stages.Cap() }

// Phase returns the LFO phase in [0, 2π).
func (p *Phaser) Phase() float64 { return p.lfo.theta }

// Reset clears every stage and the LFO phase.
func (p *Phaser) Reset() {
	p.stages.Reset()
	p.lfo.reset()
}

// Run processes len(out) samples of in. A stage count outside
// [1, Capacity()] returns an error and leaves out untouched.
func (p *Phaser) Run(ctrl PhaserControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	n, err := stageCount(ctrl.Stages)
	if err != nil {
		return err
	}
	if err := p.stages.Resize(n); err != nil {
		return err
	}

	dtheta := phaseStep(ctrl.LFOFrequencyHz, p.sampleRate)
	stages := p.stages.Active()
	for i := range out {
		x := in[i]
		c := PhaserStage(ctrl.FrequencyHz+p.lfo.value()*ctrl.LFOAmount, p.sampleRate)
		y := x
		for s := range stages {
			stages[s].SetCoefficients(c)
			y = stages[s].ProcessSample(y)
		}
		out[i] = (y*ctrl.Wet + x) * 0.5
		p.lfo.advance(dtheta)
	}
	return nil
}

// Phaser2Controls is the per-block control snapshot of [Phaser2].
type Phaser2Controls struct {
	Wet            float64 // [-1, 1]
	FrequencyHz    float64 // pole angle as a frequency, [10, 5000]
	Radius         float64 // pole radius, [0.01, 0.9995]
	Stages         float64
	LFOFrequencyHz float64
	LFOAmount      float64
}

// AllpassStage returns the second-order allpass with poles at
// radius·e^(±j2πf/fs).
func AllpassStage(freqHz, radius, sampleRate float64) biquad.Coefficients {
	twoReal := 2 * radius * math.Cos(2*math.Pi*freqHz/sampleRate)
	mag2 := radius * radius
	return biquad.Coefficients{
		B0: mag2, B1: -twoReal, B2: 1,
		A1: -twoReal, A2: mag2,
	}
}

// Phaser2 is a phaser built from second-order allpass stages.
type Phaser2 struct {
	sampleRate float64
	stages     *cascade.Arena[biquad.Section]
	lfo        sweep
}

// NewPhaser2 returns a second-order phaser.
func NewPhaser2(sampleRate float64, opts ...PhaserOption) (*Phaser2, error) {
	if err := core.ValidateSampleRate("phaser2", sampleRate); err != nil {
		return nil, err
	}
	cfg, err := applyPhaserOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Phaser2{
		sampleRate: sampleRate,
		stages:     cascade.NewArena[biquad.Section](cfg.stages),
	}, nil
}

// Capacity returns the largest usable stage count.
func (p *Phaser2) Capacity() int { return p.stages.Cap() }

// Reset clears every stage and the LFO phase.
func (p *Phaser2) Reset() {
	p.stages.Reset()
	p.lfo.reset()
}

// Run processes len(out) samples of in.
func (p *Phaser2) Run(ctrl Phaser2Controls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	n, err := stageCount(ctrl.Stages)
	if err != nil {
		return err
	}
	if err := p.stages.Resize(n); err != nil {
		return err
	}

	dtheta := phaseStep(ctrl.LFOFrequencyHz, p.sampleRate)
	stages := p.stages.Active()
	for i := range out {
		x := in[i]
		c := AllpassStage(ctrl.FrequencyHz+p.lfo.value()*ctrl.LFOAmount, ctrl.Radius, p.sampleRate)
		y := x
		for s := range stages {
			stages[s].SetCoefficients(c)
			y = stages[s].ProcessSample(y)
		}
		out[i] = (y*ctrl.Wet + x) * 0.5
		p.lfo.advance(dtheta)
	}
	return nil
}
