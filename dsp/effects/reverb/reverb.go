package reverb

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/cascade"
	"github.com/tphakala/simd/f64"
)

const (
	// MaxStages is the number of allpass and of comb stages per channel.
	MaxStages = 20

	allpassBaseSec = 0.0007708
	combBaseSec    = 0.0351

	// allpassSpread stretches the allpass times over 2.1 octaves.
	allpassSpread = 2.1
	allpassJitter = 0.5
	combJitter    = 0.25
	decayTargetDB = -60.0
	numChannels   = 2

	minAllpassG = 0.01
	maxAllpassG = 0.995
	minT60Sec   = 1
	maxT60Sec   = 1000
)

// Option configures a [Reverb] at construction.
type Option func(*config) error

type config struct {
	stages    int
	processor core.ProcessorConfig
}

// WithStages sets how many allpass and comb stages are allocated per
// channel, in [1, MaxStages]. Controls asking for more fail with
// cascade.ErrCapacity.
func WithStages(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > MaxStages {
			return fmt.Errorf("reverb stages must be in [1, %d]: %d", MaxStages, n)
		}
		cfg.stages = n
		return nil
	}
}

// WithSeed seeds the generator that draws the stage times.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		core.WithSeed(seed)(&cfg.processor)
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{stages: MaxStages, processor: core.ApplyProcessorOptions()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// Controls is the per-block control snapshot of [Reverb].
type Controls struct {
	Mix       float64 // dry share in [0, 1]; the wet share is 1 - Mix
	AllpassG  float64 // [0.01, 0.995]; the stages use -AllpassG
	T60Sec    float64 // comb decay time to -60 dB, [1, 1000]
	Allpasses float64 // active allpass stages, [0, MaxStages], truncated
	Combs     float64 // active comb stages, [0, MaxStages], truncated
}

// StageTimes holds the delay of every stage in samples.
type StageTimes struct {
	Allpass [numChannels][MaxStages]int
	Comb    [numChannels][MaxStages]int
}

// drawStageTimes jitters the exponential stage ladder. Allpass times span
// allpassSpread octaves from allpassBaseSec; comb times one octave from
// combBaseSec.
func drawStageTimes(rng *rand.Rand, sampleRate float64) StageTimes {
	var st StageTimes
	for i := range MaxStages {
		for ch := range numChannels {
			x := float64(i) + rng.Float64()*allpassJitter
			t := allpassBaseSec * math.Pow(2, x*allpassSpread/MaxStages)
			st.Allpass[ch][i] = max(int(t*sampleRate), 1)
		}
	}
	for i := range MaxStages {
		for ch := range numChannels {
			x := float64(i) + rng.Float64()*combJitter
			t := combBaseSec * math.Pow(2, x/MaxStages)
			st.Comb[ch][i] = max(int(t*sampleRate), 1)
		}
	}
	return st
}

type channel struct {
	allpasses *cascade.Arena[allpass]
	combs     *cascade.Arena[comb]
	combOut   [MaxStages]float64
}

func newChannel(stages int, allpassLen, combLen [MaxStages]int) channel {
	aps := make([]allpass, stages)
	cbs := make([]comb, stages)
	for i := range stages {
		aps[i].line = make([]float64, allpassLen[i])
		cbs[i].line = make([]float64, combLen[i])
	}
	return channel{
		allpasses: cascade.NewArenaOf(aps),
		combs:     cascade.NewArenaOf(cbs),
	}
}

func (c *channel) process(x float64) float64 {
	aps := c.allpasses.Active()
	for i := range aps {
		x = aps[i].process(x)
	}

	cbs := c.combs.Active()
	if len(cbs) == 0 {
		return x
	}
	out := c.combOut[:len(cbs)]
	for i := range cbs {
		out[i] = cbs[i].process(x)
	}
	return f64.Sum(out) / float64(len(cbs))
}

// Reverb is a stereo allpass-comb reverb.
type Reverb struct {
	sampleRate float64
	stages     int
	times      StageTimes
	ch         [numChannels]channel
}

// NewReverb returns a reverb whose stage times are drawn from a generator
// seeded by [WithSeed]. The full ladder is always drawn so the times do not
// depend on [WithStages].
func NewReverb(sampleRate float64, opts ...Option) (*Reverb, error) {
	if err := core.ValidateSampleRate("reverb", sampleRate); err != nil {
		return nil, err
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	r := &Reverb{
		sampleRate: sampleRate,
		stages:     cfg.stages,
		times:      drawStageTimes(cfg.processor.NewRand(), sampleRate),
	}
	for ch := range r.ch {
		r.ch[ch] = newChannel(cfg.stages, r.times.Allpass[ch], r.times.Comb[ch])
	}
	return r, nil
}

// Capacity returns the number of allocated stages of each kind per channel.
func (r *Reverb) Capacity() int { return r.stages }

// StageTimes returns the stage delays in samples.
func (r *Reverb) StageTimes() StageTimes { return r.times }

// Reset clears every stage.
func (r *Reverb) Reset() {
	for ch := range r.ch {
		r.ch[ch].allpasses.Reset()
		r.ch[ch].combs.Reset()
	}
}

func stageCount(v float64, capacity int, name string) (int, error) {
	if math.IsNaN(v) || v < 0 {
		return 0, fmt.Errorf("%w: %s stages must be >= 0: %f", cascade.ErrOrder, name, v)
	}
	if v >= float64(capacity)+1 {
		return 0, fmt.Errorf("%w: %g %s stages requested, capacity %d", cascade.ErrCapacity, v, name, capacity)
	}
	return int(v), nil
}

// CombGain returns the comb feedback that decays by 60 dB over t60Sec for
// a delay of n samples. The sign is negative.
func CombGain(n int, sampleRate, t60Sec float64) float64 {
	return -math.Pow(core.DBToLinear(decayTargetDB), float64(n)/sampleRate/t60Sec)
}

// Run processes len(outL) frames. A negative or NaN stage count returns
// cascade.ErrOrder and a count above the capacity cascade.ErrCapacity;
// both leave the outputs untouched. Stages that come online start from
// silence.
func (r *Reverb) Run(ctrl Controls, inL, inR, outL, outR []float64) error {
	if err := core.CheckBlock(outL, inL, inR, outR); err != nil {
		return err
	}
	nAllpass, err := stageCount(ctrl.Allpasses, r.stages, "allpass")
	if err != nil {
		return err
	}
	nComb, err := stageCount(ctrl.Combs, r.stages, "comb")
	if err != nil {
		return err
	}

	g := core.Clamp(ctrl.AllpassG, minAllpassG, maxAllpassG)
	t60 := core.Clamp(ctrl.T60Sec, minT60Sec, maxT60Sec)
	for ch := range r.ch {
		c := &r.ch[ch]
		if err := c.allpasses.Resize(nAllpass); err != nil {
			return err
		}
		if err := c.combs.Resize(nComb); err != nil {
			return err
		}
		aps := c.allpasses.Active()
		for i := range aps {
			aps[i].g = -g
		}
		cbs := c.combs.Active()
		for i := range cbs {
			cbs[i].g = CombGain(len(cbs[i].line), r.sampleRate, t60)
		}
	}

	dry := core.Clamp(ctrl.Mix, 0, 1)
	wet := 1 - ctrl.Mix
	for i := range outL {
		xl, xr := inL[i], inR[i]
		outL[i] = r.ch[0].process(xl)*wet + xl*dry
		outR[i] = r.ch[1].process(xr)*wet + xr*dry
	}
	return nil
}
