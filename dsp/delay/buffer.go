package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/interp"
)

// Buffer is a fixed-size cyclic sample buffer with a write cursor.
type Buffer struct {
	data  []float64
	write int
}

// NewBuffer returns a zeroed buffer of size samples. The size must hold
// at least one interpolation window.
func NewBuffer(size int) (*Buffer, error) {
	if size < interp.Taps {
		return nil, fmt.Errorf("delay buffer size must be >= %d: %d", interp.Taps, size)
	}
	return &Buffer{data: make([]float64, size)}, nil
}

// Len returns the buffer size.
func (b *Buffer) Len() int { return len(b.data) }

// WriteIndex returns the current write cursor.
func (b *Buffer) WriteIndex() int { return b.write }

// Write stores x at the write cursor without advancing it.
func (b *Buffer) Write(x float64) { b.data[b.write] = x }

// Advance moves the write cursor forward by one, wrapping at the end.
func (b *Buffer) Advance() {
	b.write++
	if b.write == len(b.data) {
		b.write = 0
	}
}

// Index returns the cursor position offset by offset samples, wrapped into
// [0, Len()). Negative offsets look into the past.
func (b *Buffer) Index(offset int) int {
	n := len(b.data)
	i := (b.write + offset) % n
	if i < 0 {
		i += n
	}
	return i
}

// At returns the sample at absolute index i.
func (b *Buffer) At(i int) float64 { return b.data[i] }

// Set stores v at absolute index i.
func (b *Buffer) Set(i int, v float64) { b.data[i] = v }

// Fractional reads the interpolated value at start + Taps/2 + alpha.
func (b *Buffer) Fractional(start int, alpha float64) float64 {
	return interp.Sample(b.data, start, alpha)
}

// Reset zeroes the contents and rewinds the cursor.
func (b *Buffer) Reset() {
	clear(b.data)
	b.write = 0
}

// splitDelay turns a delay in samples into the ceiling integer part and
// the interpolation fraction dInt - delay.
func splitDelay(delay float64) (int, float64) {
	dInt := int(math.Ceil(delay))
	return dInt, float64(dInt) - delay
}
