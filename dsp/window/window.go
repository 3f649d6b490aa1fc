// Package window generates the tapers used by the interpolation tables, the
// linear-prediction frames and the spectral measurements.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHamming
	TypeBlackman
	TypeKaiser
	TypeTriangle
)

var typeNames = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeKaiser:      "kaiser",
	TypeTriangle:    "triangle",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("window.Type(%d)", int(t))
}

var errLength = errors.New("window: samples and coefficients differ in length")

// Option configures window generation.
type Option func(*config)

type config struct {
	beta     float64
	periodic bool
}

// WithBeta sets the Kaiser shape parameter. Negative values are ignored;
// the default is 1.
func WithBeta(beta float64) Option {
	return func(c *config) {
		if beta >= 0 {
			c.beta = beta
		}
	}
}

// WithPeriodic drops the last point of the symmetric window, the form used
// for FFT framing.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns length coefficients, or nil for length <= 0.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := newConfig(opts)
	span := float64(length - 1)
	if cfg.periodic {
		span = float64(length)
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = cfg.eval(t, 0)
		return out
	}
	for i := range out {
		out[i] = cfg.eval(t, float64(i)/span)
	}
	return out
}

// At evaluates the window at normalised position x. Positions outside
// [0, 1] give 0, so a window can be centred on a fractional sample.
func At(t Type, x float64, opts ...Option) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return newConfig(opts).eval(t, x)
}

// Apply tapers buf in place.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) > 0 {
		vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
	}
}

// ApplyCoefficientsInPlace multiplies samples by precomputed coefficients.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d != %d", errLength, len(samples), len(coeffs))
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

func newConfig(opts []Option) config {
	cfg := config{beta: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c config) eval(t Type, x float64) float64 {
	c2 := math.Cos(2 * math.Pi * x)
	switch t {
	case TypeHamming:
		return 0.54 - 0.46*c2
	case TypeBlackman:
		return 0.42 - 0.5*c2 + 0.08*math.Cos(4*math.Pi*x)
	case TypeKaiser:
		if c.beta == 0 {
			return 1
		}
		r := 2*x - 1
		return besselI0(c.beta*math.Sqrt(max(0, 1-r*r))) / besselI0(c.beta)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}

// besselI0 sums the power series of the modified Bessel function of the
// first kind, order zero.
func besselI0(x float64) float64 {
	half := x / 2
	sum, term := 1.0, 1.0
	for k := 1; k < 500; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}
