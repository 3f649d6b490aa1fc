package modulation

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
)

// NumBands is the number of resonators in the five-band units.
const NumBands = 5

// resonator holds the block-constant part of a two-pole resonator.
type resonator struct {
	r, g float64
}

// newResonator derives the pole radius from bandwidthHz and scales the
// gain so the peak equals gainDB.
func newResonator(bandwidthHz, gainDB, sampleRate float64) resonator {
	r := math.Exp(-math.Pi * bandwidthHz / sampleRate)
	return resonator{r: r, g: (1 - r) * core.DBToLinear(gainDB)}
}

func (rs resonator) at(freqHz, sampleRate float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: rs.g, B2: -rs.g * rs.r,
		A1: -2 * rs.r * math.Cos(2*math.Pi*freqHz/sampleRate),
		A2: rs.r * rs.r,
	}
}

// Resonator returns the two-pole resonator with centre freqHz, -3 dB
// bandwidth close to bandwidthHz and peak gain gainDB:
// H(z) = G(1 - R z⁻²)/(1 - 2R cos θ z⁻¹ + R² z⁻²), R = e^(-π·bw/fs),
// G = (1 - R)·10^(gain/20).
func Resonator(freqHz, bandwidthHz, gainDB, sampleRate float64) biquad.Coefficients {
	return newResonator(bandwidthHz, gainDB, sampleRate).at(freqHz, sampleRate)
}

// BandControls configures one LFO-swept resonator.
type BandControls struct {
	FrequencyHz    float64 // [10, 13000]
	BandwidthHz    float64 // [10, 1000]
	GainDB         float64 // [-60, 24]
	LFOFrequencyHz float64 // [0.001, 10]
	LFOAmount      float64 // [0, 5000] Hz
}

type sweptBand struct {
	sec biquad.Section
	lfo sweep
}

// run filters in and adds (accumulate) or writes the result into out.
func (b *sweptBand) run(ctrl BandControls, sampleRate float64, in, out []float64, accumulate bool) {
	rs := newResonator(ctrl.BandwidthHz, ctrl.GainDB, sampleRate)
	dtheta := phaseStep(ctrl.LFOFrequencyHz, sampleRate)
	for i := range out {
		b.sec.SetCoefficients(rs.at(ctrl.FrequencyHz+b.lfo.value()*ctrl.LFOAmount, sampleRate))
		y := b.sec.ProcessSample(in[i])
		if accumulate {
			out[i] += y
		} else {
			out[i] = y
		}
		b.lfo.advance(dtheta)
	}
}

func (b *sweptBand) reset() {
	b.sec.Reset()
	b.lfo.reset()
}

// LFOBandpass is a resonator whose centre is swept by a sine LFO.
type LFOBandpass struct {
	sampleRate float64
	band       sweptBand
}

// NewLFOBandpass returns an LFO bandpass.
func NewLFOBandpass(sampleRate float64) (*LFOBandpass, error) {
	if err := core.ValidateSampleRate("lfo bandpass", sampleRate); err != nil {
		return nil, err
	}
	return &LFOBandpass{sampleRate: sampleRate}, nil
}

// Reset clears the resonator and LFO.
func (b *LFOBandpass) Reset() { b.band.reset() }

// Run processes len(out) samples of in.
func (b *LFOBandpass) Run(ctrl BandControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	b.band.run(ctrl, b.sampleRate, in, out, false)
	return nil
}

// LFOBandpass5Controls holds the controls of the five bands.
type LFOBandpass5Controls struct {
	Bands [NumBands]BandControls
}

// LFOBandpass5 sums five independently swept resonators.
type LFOBandpass5 struct {
	sampleRate float64
	bands      [NumBands]sweptBand
}

// NewLFOBandpass5 returns a five-band LFO bandpass.
func NewLFOBandpass5(sampleRate float64) (*LFOBandpass5, error) {
	if err := core.ValidateSampleRate("lfo bandpass5", sampleRate); err != nil {
		return nil, err
	}
	return &LFOBandpass5{sampleRate: sampleRate}, nil
}

// Reset clears every band.
func (b *LFOBandpass5) Reset() {
	for i := range b.bands {
		b.bands[i].reset()
	}
}

// Run processes len(out) samples of in. in and out must not overlap.
func (b *LFOBandpass5) Run(ctrl LFOBandpass5Controls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	clear(out)
	for i := range b.bands {
		b.bands[i].run(ctrl.Bands[i], b.sampleRate, in, out, true)
	}
	return nil
}

const (
	// initialCentreHz is where every random band starts gliding from.
	initialCentreHz = 1000.0
)

// RandomBandControls configures one random-walk resonator.
type RandomBandControls struct {
	FrequencyHz float64 // lowest target, [10, 20000]
	BandwidthHz float64 // [10, 1000]
	GainDB      float64 // [-60, 24]
	Amount      float64 // target spread above FrequencyHz, [0, 5000]
}

// RandomBandpass5Controls holds the shared glide timing and the bands.
type RandomBandpass5Controls struct {
	PeriodSec    float64 // [0.01, 1]
	PeriodModSec float64 // [0.01, 1]
	Bands        [NumBands]RandomBandControls
}

type randomBand struct {
	sec       biquad.Section
	centre    float64
	target    float64
	step      float64
	remaining int
}

// RandomBandpass5 sums five resonators whose centres glide linearly to a
// new random target every PeriodSec + rand·PeriodModSec seconds. Targets
// are FrequencyHz + rand·Amount.
type RandomBandpass5 struct {
	sampleRate float64
	seed       uint64
	rng        *rand.Rand
	bands      [NumBands]randomBand
}

// NewRandomBandpass5 returns a random-walk bandpass. Its generator is
// seeded from core.WithSeed; equal seeds give identical output.
func NewRandomBandpass5(sampleRate float64, opts ...core.ProcessorOption) (*RandomBandpass5, error) {
	if err := core.ValidateSampleRate("random bandpass5", sampleRate); err != nil {
		return nil, err
	}
	cfg := core.ApplyProcessorOptions(opts...)
	b := &RandomBandpass5{sampleRate: sampleRate, seed: cfg.Seed}
	b.rng = cfg.NewRand()
	b.resetBands()
	return b, nil
}

// Reset clears every band and reseeds the generator.
func (b *RandomBandpass5) Reset() {
	b.rng = core.ApplyProcessorOptions(core.WithSeed(b.seed)).NewRand()
	b.resetBands()
}

func (b *RandomBandpass5) resetBands() {
	for i := range b.bands {
		b.bands[i] = randomBand{centre: initialCentreHz, target: initialCentreHz}
	}
}

// Centres returns the current centre frequency of each band.
func (b *RandomBandpass5) Centres() [NumBands]float64 {
	var c [NumBands]float64
	for i := range b.bands {
		c[i] = b.bands[i].centre
	}
	return c
}

// Run processes len(out) samples of in.
func (b *RandomBandpass5) Run(ctrl RandomBandpass5Controls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	var res [NumBands]resonator
	for i := range res {
		res[i] = newResonator(ctrl.Bands[i].BandwidthHz, ctrl.Bands[i].GainDB, b.sampleRate)
	}

	for n := range out {
		x := in[n]
		y := 0.0
		for i := range b.bands {
			band := &b.bands[i]
			if band.remaining == 0 {
				b.retarget(band, ctrl, ctrl.Bands[i])
			}
			band.sec.SetCoefficients(res[i].at(band.centre, b.sampleRate))
			y += band.sec.ProcessSample(x)
			band.centre += band.step
			band.remaining--
		}
		out[n] = y
	}
	return nil
}

// retarget starts a glide from the previous target to a new one.
func (b *RandomBandpass5) retarget(band *randomBand, ctrl RandomBandpass5Controls, bc RandomBandControls) {
	band.centre = band.target
	band.target = bc.FrequencyHz + b.rng.Float64()*bc.Amount
	count := int((ctrl.PeriodSec + b.rng.Float64()*ctrl.PeriodModSec) * b.sampleRate)
	band.remaining = max(count, 1)
	band.step = (band.target - band.centre) / float64(band.remaining)
}
