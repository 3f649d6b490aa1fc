package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	minBitDepth = 8
	maxBitDepth = 32
)

// FirstOrder feeds back the previous quantization error, giving the error
// spectrum a (1 - z^-1) highpass tilt.
var FirstOrder = []float64{1}

type config struct {
	typ       Type
	amplitude float64
	shaping   []float64
	seed      uint64
	seeded    bool
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithType selects the dither noise density.
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type %d", int(t))
		}
		cfg.typ = t
		return nil
	}
}

// WithAmplitude scales the dither noise, in LSB. The default is 1.
func WithAmplitude(lsb float64) Option {
	return func(cfg *config) error {
		if lsb < 0 || math.IsNaN(lsb) || math.IsInf(lsb, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %g", lsb)
		}
		cfg.amplitude = lsb
		return nil
	}
}

// WithShaping enables error feedback with the given coefficients, most
// recent error first. A nil slice disables shaping.
func WithShaping(coeffs []float64) Option {
	return func(cfg *config) error {
		for _, c := range coeffs {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("dither: shaping coefficient must be finite: %g", c)
			}
		}
		cfg.shaping = coeffs
		return nil
	}
}

// WithSeed makes the dither noise reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true
		return nil
	}
}

func (cfg config) newRand() *rand.Rand {
	if !cfg.seeded {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x2545f4914f6cdd1d))
}
