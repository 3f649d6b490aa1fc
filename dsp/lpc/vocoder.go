package lpc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
	"github.com/cwbudde/algo-fx/dsp/filter/rbj"
	"github.com/cwbudde/algo-fx/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// VocoderWindowSec is the analysis frame duration.
	VocoderWindowSec = 0.02

	vocoderLowpassHz = 7000.0
	vocoderLowpassQ  = 0.707
)

// VocoderControls is the per-block control snapshot of [Vocoder].
type VocoderControls struct {
	Gain float64 // linear output scale
}

// DefaultVocoderControls returns unity gain.
func DefaultVocoderControls() VocoderControls {
	return VocoderControls{Gain: 1}
}

// vocoderBand is one of the two overlapping analysis/synthesis paths.
type vocoderBand struct {
	frame []float64
	pos   int
	gain  float64
	syn   *SynthesisFilter
}

// Vocoder imposes the spectral envelope of a modulator on a carrier. The
// modulator is analysed in Hamming-windowed frames by two paths offset by
// half a frame; each path colours the carrier with its latest all-pole
// filter and the paths are crossfaded with complementary triangles.
type Vocoder struct {
	sampleRate float64
	n          int
	win        []float64
	lp         *biquad.Section
	an         *Analyzer
	bands      [2]vocoderBand
}

// NewVocoder returns a vocoder of order [VocoderOrder] unless WithOrder says
// otherwise. The frame is 20 ms rounded up to an even sample count.
func NewVocoder(sampleRate float64, opts ...Option) (*Vocoder, error) {
	if err := core.ValidateSampleRate("vocoder", sampleRate); err != nil {
		return nil, err
	}
	cfg, err := applyOptions(config{order: VocoderOrder, window: window.TypeHamming}, opts)
	if err != nil {
		return nil, err
	}

	n := int(math.Ceil(sampleRate * VocoderWindowSec))
	if n%2 == 1 {
		n++
	}
	if n <= cfg.order {
		return nil, fmt.Errorf("vocoder frame of %d samples too short for order %d", n, cfg.order)
	}

	// The lowpass stays below Nyquist at low sample rates.
	lpHz := math.Min(vocoderLowpassHz, 0.45*sampleRate)

	v := &Vocoder{
		sampleRate: sampleRate,
		n:          n,
		win:        window.Generate(cfg.window, n),
		lp:         biquad.NewSection(rbj.Lowpass(lpHz, vocoderLowpassQ, sampleRate)),
		// Frames are windowed as they are written.
		an: newAnalyzer(config{order: cfg.order, window: window.TypeRectangular}),
	}
	for i := range v.bands {
		syn, _ := NewSynthesisFilter(cfg.order)
		v.bands[i] = vocoderBand{frame: make([]float64, n), syn: syn}
	}
	v.Reset()
	return v, nil
}

// FrameLength returns the analysis frame length in samples.
func (v *Vocoder) FrameLength() int { return v.n }

// Order returns the prediction order.
func (v *Vocoder) Order() int { return v.an.Order() }

// Reset clears both paths. The second path starts half a frame in.
func (v *Vocoder) Reset() {
	v.lp.Reset()
	for i := range v.bands {
		b := &v.bands[i]
		clear(b.frame)
		b.pos = i * v.n / 2
		b.gain = 0
		b.syn.Reset()
		_ = b.syn.SetCoefficients(make([]float64, v.an.Order()))
	}
}

// collect windows x into the band's frame and re-analyses when the frame is
// full. A frame below RMSGate mutes the band until the next frame.
func (v *Vocoder) collect(b *vocoderBand, x float64) {
	b.frame[b.pos] = x * v.win[b.pos]
	if b.pos++; b.pos < v.n {
		return
	}
	b.pos = 0

	if err := v.an.Analyze(b.frame); err != nil || !v.an.Voiced(RMSGate) {
		b.gain = 0
		return
	}
	b.gain = v.an.Gain()
	_ = b.syn.SetCoefficients(v.an.Coefficients())
}

// envelope is the crossfade weight at frame position pos. It is 0 where the
// band switches coefficients and 1 half a frame later.
func (v *Vocoder) envelope(pos int) float64 {
	h := float64(v.n / 2)
	return 1 - math.Abs(float64(pos)-h)/h
}

// Run vocodes len(outL) frames of carrier with the envelope of modulator and
// writes the same signal to both outputs.
func (v *Vocoder) Run(ctrl VocoderControls, carrier, modulator, outL, outR []float64) error {
	if err := core.CheckBlock(outL, carrier, modulator, outR); err != nil {
		return err
	}

	for i := range outL {
		m := v.lp.ProcessSample(modulator[i])
		c := carrier[i]

		var y float64
		for k := range v.bands {
			b := &v.bands[k]
			v.collect(b, m)
			y += b.syn.ProcessSample(c) * b.gain * v.envelope(b.pos)
		}
		outL[i] = y
	}

	vecmath.ScaleBlock(outL, outL, ctrl.Gain)
	copy(outR, outL)
	return nil
}
