package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1) to integer codes of a fixed bit depth.
// It keeps error history and is meant for one channel.
type Quantizer struct {
	bits      int
	scale     float64
	typ       Type
	amplitude float64
	rng       *rand.Rand

	coeffs  []float64
	history []float64
	pos     int
}

// NewQuantizer returns a quantizer for bits in [8, 32]. Without options it
// rounds to the nearest code.
func NewQuantizer(bits int, opts ...Option) (*Quantizer, error) {
	cfg, err := applyOptions(bits, opts)
	if err != nil {
		return nil, err
	}
	return newQuantizer(bits, cfg), nil
}

// NewChannels returns one quantizer per channel. A seed set with [WithSeed]
// is offset by the channel index so channels get independent noise.
func NewChannels(channels, bits int, opts ...Option) ([]*Quantizer, error) {
	cfg, err := applyOptions(bits, opts)
	if err != nil {
		return nil, err
	}

	out := make([]*Quantizer, channels)
	for ch := range out {
		c := cfg
		c.seed += uint64(ch)
		out[ch] = newQuantizer(bits, c)
	}
	return out, nil
}

func applyOptions(bits int, opts []Option) (config, error) {
	if bits < minBitDepth || bits > maxBitDepth {
		return config{}, fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
	}

	cfg := config{amplitude: 1}
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

func newQuantizer(bits int, cfg config) *Quantizer {
	q := &Quantizer{
		bits:      bits,
		scale:     math.Exp2(float64(bits - 1)),
		typ:       cfg.typ,
		amplitude: cfg.amplitude,
		rng:       cfg.newRand(),
	}
	if len(cfg.shaping) > 0 {
		q.coeffs = append([]float64(nil), cfg.shaping...)
		q.history = make([]float64, len(cfg.shaping))
	}
	return q
}

// BitDepth returns the output word length.
func (q *Quantizer) BitDepth() int { return q.bits }

// Type returns the dither density in use.
func (q *Quantizer) Type() Type { return q.typ }

// Quantize returns the code for x and whether it had to be clipped to the
// code range [-2^(b-1), 2^(b-1)-1]. NaN yields 0 and counts as clipped.
func (q *Quantizer) Quantize(x float64) (int, bool) {
	if math.IsNaN(x) {
		return 0, true
	}

	v := x * q.scale
	for i, c := range q.coeffs {
		v -= c * q.history[(q.pos+len(q.history)-i)%len(q.history)]
	}

	r := math.Round(v + q.noise())
	clipped := false
	switch {
	case r > q.scale-1:
		r, clipped = q.scale-1, true
	case r < -q.scale:
		r, clipped = -q.scale, true
	}

	if n := len(q.history); n > 0 {
		q.pos = (q.pos + 1) % n
		// Clipping error is not fed back.
		e := r - v
		if clipped {
			e = 0
		}
		q.history[q.pos] = e
	}
	return int(r), clipped
}

// Reset clears the error history.
func (q *Quantizer) Reset() {
	clear(q.history)
	q.pos = 0
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.amplitude * (q.rng.Float64() - 0.5)
	case Triangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}
