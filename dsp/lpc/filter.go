package lpc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// history is a circular sample history mirrored into a double-length slice
// so the last p samples are always contiguous, oldest first.
type history struct {
	rev []float64 // coefficients reversed to match the oldest-first window
	z   []float64
	pos int
}

func newHistory(order int) history {
	return history{
		rev: make([]float64, order),
		z:   make([]float64, 2*order),
	}
}

func (h *history) setCoefficients(a []float64) error {
	p := len(h.rev)
	if len(a) != p {
		return fmt.Errorf("lpc: got %d coefficients, filter order %d", len(a), p)
	}
	for k, v := range a {
		h.rev[p-1-k] = v
	}
	return nil
}

// predict returns Σ a[k]·z[n-1-k].
func (h *history) predict() float64 {
	p := len(h.rev)
	return vecmath.DotProduct(h.rev, h.z[h.pos:h.pos+p])
}

func (h *history) push(v float64) {
	p := len(h.rev)
	h.z[h.pos] = v
	h.z[h.pos+p] = v
	if h.pos++; h.pos == p {
		h.pos = 0
	}
}

func (h *history) reset() {
	clear(h.z)
	h.pos = 0
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// InverseFilter is the prediction error (whitening) filter
// e[n] = x[n] - Σ a[k]·x[n-1-k].
type InverseFilter struct {
	h history
}

// NewInverseFilter returns a whitening filter of the given order with zero
// coefficients.
func NewInverseFilter(order int) (*InverseFilter, error) {
	if order < 1 || order > MaxOrder {
		return nil, fmt.Errorf("lpc order must be in [1, %d]: %d", MaxOrder, order)
	}
	return &InverseFilter{h: newHistory(order)}, nil
}

// SetCoefficients copies a; len(a) must equal the order. State is kept.
func (f *InverseFilter) SetCoefficients(a []float64) error { return f.h.setCoefficients(a) }

// ProcessSample filters one sample. Non-finite inputs and results become 0.
func (f *InverseFilter) ProcessSample(x float64) float64 {
	x = finiteOrZero(x)
	y := finiteOrZero(x - f.h.predict())
	f.h.push(x)
	return y
}

// ProcessBlockTo filters src into dst; both must have equal length.
func (f *InverseFilter) ProcessBlockTo(dst, src []float64) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the history.
func (f *InverseFilter) Reset() { f.h.reset() }

// SynthesisFilter is the all-pole colouring filter
// y[n] = x[n] + Σ a[k]·y[n-1-k].
type SynthesisFilter struct {
	h history
}

// NewSynthesisFilter returns a colouring filter of the given order with zero
// coefficients.
func NewSynthesisFilter(order int) (*SynthesisFilter, error) {
	if order < 1 || order > MaxOrder {
		return nil, fmt.Errorf("lpc order must be in [1, %d]: %d", MaxOrder, order)
	}
	return &SynthesisFilter{h: newHistory(order)}, nil
}

// SetCoefficients copies a; len(a) must equal the order. State is kept.
func (f *SynthesisFilter) SetCoefficients(a []float64) error { return f.h.setCoefficients(a) }

// ProcessSample filters one sample. A non-finite result is replaced by 0
// before it enters the recursion.
func (f *SynthesisFilter) ProcessSample(x float64) float64 {
	y := finiteOrZero(x + f.h.predict())
	f.h.push(y)
	return y
}

// ProcessBlockTo filters src into dst; both must have equal length.
func (f *SynthesisFilter) ProcessBlockTo(dst, src []float64) {
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the history.
func (f *SynthesisFilter) Reset() { f.h.reset() }
