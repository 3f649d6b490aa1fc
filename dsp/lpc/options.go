package lpc

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/window"
)

const (
	// MaxOrder bounds the prediction order of every analyzer.
	MaxOrder = 64
	// DefaultOrder is the order of a plain Analyzer.
	DefaultOrder = 12
	// VocoderOrder is the default order of the vocoder.
	VocoderOrder = 48
)

// Option configures an [Analyzer] or a [Vocoder].
type Option func(*config) error

type config struct {
	order  int
	window window.Type
}

// WithOrder sets the prediction order, in [1, MaxOrder].
func WithOrder(p int) Option {
	return func(cfg *config) error {
		if p < 1 || p > MaxOrder {
			return fmt.Errorf("lpc order must be in [1, %d]: %d", MaxOrder, p)
		}
		cfg.order = p
		return nil
	}
}

// WithWindow windows each analysis frame before autocorrelation.
func WithWindow(t window.Type) Option {
	return func(cfg *config) error {
		cfg.window = t
		return nil
	}
}

func applyOptions(cfg config, opts []Option) (config, error) {
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
