package core

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultSeed seeds instance random generators when no seed option is given.
const DefaultSeed uint64 = 1

// ProcessorConfig defines common settings shared by effect units.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Seed       uint64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  1024,
		Seed:       DefaultSeed,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithSeed sets the seed of the instance random generator.
func WithSeed(seed uint64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		cfg.Seed = seed
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// NewRand returns a generator owned by a single unit instance.
// Two instances built from the same seed produce identical sequences.
func (cfg ProcessorConfig) NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
}

// ValidateSampleRate reports an error unless sampleRate is positive and finite.
func ValidateSampleRate(unit string, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%s sample rate must be > 0 and finite: %f", unit, sampleRate)
	}
	return nil
}
