package lpc

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
	"github.com/cwbudde/algo-fx/dsp/filter/rbj"
	"github.com/tphakala/simd/f64"
)

const (
	// MinPitchHz and MaxPitchHz bound the detectable fundamental.
	MinPitchHz = 85.0
	MaxPitchHz = 450.0

	pitchLowpassHz = 400.0
	pitchLowpassQ  = 1.0
	pitchDCPole    = 0.95
)

// PitchOption configures a [PitchEstimator].
type PitchOption func(*pitchConfig) error

type pitchConfig struct {
	threshold float64
}

// WithVoicingThreshold sets the normalised correlation a frame's peak must
// reach to count as voiced, in [0, 1]. The default 0 only rejects frames
// whose best lag is anti-correlated.
func WithVoicingThreshold(v float64) PitchOption {
	return func(cfg *pitchConfig) error {
		if !(v >= 0 && v <= 1) {
			return fmt.Errorf("voicing threshold must be in [0, 1]: %f", v)
		}
		cfg.threshold = v
		return nil
	}
}

// correlator collects 2W samples and scans normalised autocorrelation over
// lags [minLag, W].
type correlator struct {
	x   []float64
	cor []float64
	pos int
}

func (c *correlator) reset(pos int) {
	clear(c.x)
	c.pos = pos
}

// PitchEstimator tracks the period of a monophonic input. The input is DC
// blocked and lowpassed at 400 Hz, then two autocorrelation frames offset
// by one window report a new period every window.
type PitchEstimator struct {
	window    int
	minLag    int
	threshold float64

	dcz    float64
	lp     *biquad.Section
	frames [2]correlator

	period float64
	peak   float64
	voiced bool
}

// NewPitchEstimator returns an estimator with window fs/85 and minimum lag
// fs/450.
func NewPitchEstimator(sampleRate float64, opts ...PitchOption) (*PitchEstimator, error) {
	if err := core.ValidateSampleRate("pitch estimator", sampleRate); err != nil {
		return nil, err
	}
	var cfg pitchConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	w := int(sampleRate / MinPitchHz)
	minLag := int(sampleRate / MaxPitchHz)
	if minLag < 1 || w <= minLag+1 {
		return nil, fmt.Errorf("pitch estimator sample rate too low: %f", sampleRate)
	}

	p := &PitchEstimator{
		window:    w,
		minLag:    minLag,
		threshold: cfg.threshold,
		lp:        biquad.NewSection(rbj.Lowpass(pitchLowpassHz, pitchLowpassQ, sampleRate)),
	}
	for i := range p.frames {
		p.frames[i] = correlator{
			x:   make([]float64, 2*w),
			cor: make([]float64, w-minLag+1),
		}
	}
	p.Reset()
	return p, nil
}

// Window returns the correlation window length in samples.
func (p *PitchEstimator) Window() int { return p.window }

// LagRange returns the shortest and longest period considered.
func (p *PitchEstimator) LagRange() (int, int) { return p.minLag, p.window - 1 }

// Reset clears the filters and frames.
func (p *PitchEstimator) Reset() {
	p.dcz = 0
	p.lp.Reset()
	p.frames[0].reset(0)
	p.frames[1].reset(p.window)
	p.period = 0
	p.peak = 0
	p.voiced = false
}

// Process consumes one sample. When a frame completes and is voiced it
// returns the period in samples and true.
func (p *PitchEstimator) Process(x float64) (float64, bool) {
	m := x + pitchDCPole*p.dcz
	y := m - p.dcz
	p.dcz = m
	y = p.lp.ProcessSample(y)

	period, ok := 0.0, false
	for i := range p.frames {
		if lag, voiced := p.push(&p.frames[i], y); voiced && !ok {
			period, ok = lag, true
		}
	}
	return period, ok
}

func (p *PitchEstimator) push(c *correlator, y float64) (float64, bool) {
	c.x[c.pos] = y
	if c.pos++; c.pos < len(c.x) {
		return 0, false
	}
	c.pos = 0

	w := p.window
	ref := c.x[:w]
	energy := f64.DotProduct(ref, ref)
	if energy == 0 {
		p.voiced = false
		p.period = 0
		return 0, false
	}

	for i := range c.cor {
		lag := p.minLag + i
		c.cor[i] = f64.DotProduct(ref, c.x[lag:lag+w]) / energy
	}

	// The longest lag is only a neighbour for the peak search.
	best := 0
	for i := 1; i < len(c.cor)-1; i++ {
		if c.cor[i] > c.cor[best] {
			best = i
		}
	}

	p.peak = c.cor[best]
	if p.peak <= 0 || p.peak < p.threshold {
		p.voiced = false
		p.period = 0
		return 0, false
	}
	p.voiced = true
	p.period = float64(best + p.minLag)
	return p.period, true
}

// Period returns the last reported period in samples, or 0 when the last
// frame was unvoiced.
func (p *PitchEstimator) Period() float64 { return p.period }

// Peak returns the normalised correlation at the last reported lag.
func (p *PitchEstimator) Peak() float64 { return p.peak }

// Voiced reports whether the last completed frame was voiced.
func (p *PitchEstimator) Voiced() bool { return p.voiced }
