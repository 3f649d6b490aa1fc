package interp

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-fx/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// Taps is the kernel length of every table row.
	Taps = 32
	// Steps is the number of fractional offsets per sample.
	Steps = 1024

	maxAlpha = 1 - 1.0/Steps
)

// Table is an immutable windowed-sinc kernel table indexed by fractional offset.
type Table struct {
	rows [Steps][Taps]float64
}

var (
	defaultOnce  sync.Once
	defaultTable *Table

	impulseOnce  sync.Once
	impulseTable *Table
)

// DefaultTable returns the shared interpolation table.
//
// Row j interpolates at offset α = j/Steps: reading Taps samples from start
// yields the value at position start + Taps/2 + α. The Blackman window is
// centred on that position so row 0 is an exact unit impulse.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		defaultTable = newTable(func(i int, alpha float64) float64 {
			return window.At(window.TypeBlackman, (float64(i)-alpha)/Taps)
		})
		defaultTable.normalize()
	})
	return defaultTable
}

// ImpulseTable returns the shared band-limited impulse table.
// The Hamming window stays centred on tap Taps/2 while the sinc peak moves
// by α, which is the shape the impulse generators deposit.
func ImpulseTable() *Table {
	impulseOnce.Do(func() {
		impulseTable = newTable(func(i int, _ float64) float64 {
			return window.At(window.TypeHamming, float64(i)/Taps)
		})
	})
	return impulseTable
}

func newTable(win func(i int, alpha float64) float64) *Table {
	t := &Table{}
	for j := range t.rows {
		alpha := float64(j) / Steps
		for i := range t.rows[j] {
			t.rows[j][i] = sinc(float64(i-Taps/2)-alpha) * win(i, alpha)
		}
	}
	return t
}

// normalize scales every row to unity DC gain.
func (t *Table) normalize() {
	for j := range t.rows {
		sum := 0.0
		for _, v := range t.rows[j] {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for i := range t.rows[j] {
			t.rows[j][i] /= sum
		}
	}
}

// Row returns the kernel for fractional offset alpha.
// Alpha is clamped to [0, 1-1/Steps]; NaN maps to 0.
func (t *Table) Row(alpha float64) []float64 {
	return t.rows[rowIndex(alpha)][:]
}

// Sample convolves Taps samples of the cyclic buffer buf starting at start
// with the kernel for alpha. When the window crosses the end of buf the
// convolution continues from index 0.
//
// start must lie in [0, len(buf)) and len(buf) must be at least Taps.
func (t *Table) Sample(buf []float64, start int, alpha float64) float64 {
	row := t.Row(alpha)

	n := len(buf)
	if start+Taps <= n {
		return vecmath.DotProduct(buf[start:start+Taps], row)
	}

	first := n - start
	return vecmath.DotProduct(buf[start:], row[:first]) +
		vecmath.DotProduct(buf[:Taps-first], row[first:])
}

// AddTo accumulates the kernel for alpha into the cyclic buffer acc starting
// at start, wrapping at the end of acc. len(acc) must be at least Taps.
func (t *Table) AddTo(acc []float64, start int, alpha float64) {
	row := t.Row(alpha)

	n := len(acc)
	if start+Taps <= n {
		vecmath.AddBlockInPlace(acc[start:start+Taps], row)
		return
	}

	first := n - start
	vecmath.AddBlockInPlace(acc[start:], row[:first])
	vecmath.AddBlockInPlace(acc[:Taps-first], row[first:])
}

// Sample reads buf through the default table.
func Sample(buf []float64, start int, alpha float64) float64 {
	return DefaultTable().Sample(buf, start, alpha)
}

func rowIndex(alpha float64) int {
	if !(alpha > 0) {
		return 0
	}
	if alpha > maxAlpha {
		alpha = maxAlpha
	}
	return int(math.Floor(alpha * Steps))
}

// sinc returns sin(πx)/(πx), exact at integer arguments.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	if x == math.Trunc(x) {
		return 0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
