package audioio

import (
	"fmt"
	"math"
	"time"
)

// Clip is a decoded, non-interleaved audio signal.
type Clip struct {
	SampleRate int
	// BitDepth of the source PCM data, 0 for lossy formats.
	BitDepth int
	Channels [][]float64
}

// NewClip allocates a silent clip.
func NewClip(sampleRate, channels, frames int) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audioio: sample rate must be > 0: %d", sampleRate)
	}
	if channels <= 0 || frames < 0 {
		return nil, fmt.Errorf("%w: %d channels, %d frames", ErrEmpty, channels, frames)
	}

	c := &Clip{SampleRate: sampleRate, Channels: make([][]float64, channels)}
	for i := range c.Channels {
		c.Channels[i] = make([]float64, frames)
	}

	return c, nil
}

// Frames returns the number of samples per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}

	return len(c.Channels[0])
}

// Duration returns the playing time of the clip.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(c.Frames()) / float64(c.SampleRate) * float64(time.Second))
}

// Peak returns the largest absolute sample value over all channels.
func (c *Clip) Peak() float64 {
	peak := 0.0
	for _, ch := range c.Channels {
		for _, v := range ch {
			peak = math.Max(peak, math.Abs(v))
		}
	}

	return peak
}

func (c *Clip) validate() error {
	if c == nil || len(c.Channels) == 0 {
		return ErrEmpty
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("audioio: sample rate must be > 0: %d", c.SampleRate)
	}

	n := len(c.Channels[0])
	for i, ch := range c.Channels {
		if len(ch) != n {
			return fmt.Errorf("audioio: channel %d has %d frames, want %d", i, len(ch), n)
		}
	}

	return nil
}

// fullScale is the divisor that maps signed PCM of the given depth to [-1, 1).
func fullScale(bits int) (float64, error) {
	switch bits {
	case 16, 24, 32:
		return math.Ldexp(1, bits-1), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrBitDepth, bits)
	}
}

// deinterleave splits interleaved frames into channels, dividing by scale.
func deinterleave[T int | float32](dst [][]float64, src []T, scale float64) {
	nch := len(dst)
	for i, v := range src {
		ch := i % nch
		dst[ch] = append(dst[ch], float64(v)/scale)
	}
}
