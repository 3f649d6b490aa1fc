package lpc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/window"
)

// RMSGate is the frame RMS below which a frame is treated as silence.
const RMSGate = 1e-4

// Analyzer estimates prediction coefficients frame by frame. Scratch space
// is reused, so frames of a constant length do not allocate.
type Analyzer struct {
	order int
	win   window.Type

	winBuf []float64
	frame  []float64
	r      []float64
	a      []float64
	refl   []float64
	gain   float64
	rms    float64
	solved bool
}

// NewAnalyzer returns an analyzer of [DefaultOrder] without a window unless
// configured otherwise.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg, err := applyOptions(config{order: DefaultOrder, window: window.TypeRectangular}, opts)
	if err != nil {
		return nil, err
	}
	return newAnalyzer(cfg), nil
}

func newAnalyzer(cfg config) *Analyzer {
	return &Analyzer{
		order: cfg.order,
		win:   cfg.window,
		r:     make([]float64, cfg.order+1),
		a:     make([]float64, cfg.order),
		refl:  make([]float64, cfg.order),
	}
}

// Order returns the prediction order.
func (an *Analyzer) Order() int { return an.order }

// Analyze windows frame into scratch, autocorrelates it, and solves for the
// prediction coefficients. A silent or degenerate frame returns an error
// wrapping ErrDegenerate and leaves zero coefficients and gain.
func (an *Analyzer) Analyze(frame []float64) error {
	if len(frame) <= an.order {
		return fmt.Errorf("lpc: frame of %d samples too short for order %d", len(frame), an.order)
	}

	x := frame
	if an.win != window.TypeRectangular {
		an.prepareWindow(len(frame))
		copy(an.frame, frame)
		_ = window.ApplyCoefficientsInPlace(an.frame, an.winBuf)
		x = an.frame
	}

	Autocorrelate(an.r, x)
	an.rms = math.Sqrt(math.Max(an.r[0], 0) / float64(len(x)))

	clear(an.a)
	clear(an.refl)
	gain, err := levinson(an.r, an.a, an.refl)
	if err != nil {
		clear(an.a)
		clear(an.refl)
		an.gain = 0
		an.solved = false
		return err
	}
	an.gain = gain
	an.solved = true
	return nil
}

func (an *Analyzer) prepareWindow(n int) {
	if len(an.winBuf) == n {
		return
	}
	an.winBuf = window.Generate(an.win, n)
	an.frame = make([]float64, n)
}

// Coefficients returns the prediction coefficients of the last frame. The
// slice is owned by the analyzer.
func (an *Analyzer) Coefficients() []float64 { return an.a }

// Reflection returns the reflection coefficients of the last frame.
func (an *Analyzer) Reflection() []float64 { return an.refl }

// Autocorrelation returns R[0..order] of the last frame.
func (an *Analyzer) Autocorrelation() []float64 { return an.r }

// Gain returns the square root of the final prediction error.
func (an *Analyzer) Gain() float64 { return an.gain }

// RMS returns the RMS of the last (windowed) frame.
func (an *Analyzer) RMS() float64 { return an.rms }

// Voiced reports whether the last frame solved and its RMS exceeds
// threshold. [RMSGate] is the usual threshold.
func (an *Analyzer) Voiced(threshold float64) bool {
	return an.solved && an.rms > threshold
}
