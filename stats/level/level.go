// Package level measures block-wise signal levels of rendered audio.
package level

import (
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// Levels summarises one channel.
type Levels struct {
	Frames        int
	DC            float64
	RMS           float64
	Peak          float64
	PeakPos       int
	ZeroCrossings int
	// NonFinite counts NaN and Inf samples. They are excluded from every
	// other field.
	NonFinite int
}

// RMSDB returns the RMS level in dBFS.
func (l Levels) RMSDB() float64 { return core.LinearToDB(l.RMS) }

// PeakDB returns the peak level in dBFS.
func (l Levels) PeakDB() float64 { return core.LinearToDB(l.Peak) }

// CrestDB returns peak over RMS in dB, or 0 for silence.
func (l Levels) CrestDB() float64 {
	if l.RMS == 0 {
		return 0
	}
	return core.LinearToDB(l.Peak / l.RMS)
}

// Meter accumulates [Levels] across blocks. The zero value is ready to use.
type Meter struct {
	n         int
	finite    int
	sum       float64
	sumSq     float64
	peak      float64
	peakPos   int
	crossings int
	last      float64
	nonFinite int
}

// Update adds a block of consecutive samples.
func (m *Meter) Update(block []float64) {
	for _, x := range block {
		pos := m.n
		m.n++

		if math.IsNaN(x) || math.IsInf(x, 0) {
			m.nonFinite++
			continue
		}

		if m.finite > 0 && (m.last < 0 && x >= 0 || m.last >= 0 && x < 0) {
			m.crossings++
		}
		m.last = x
		m.finite++

		m.sum += x
		m.sumSq += x * x
		if a := math.Abs(x); a > m.peak {
			m.peak = a
			m.peakPos = pos
		}
	}
}

// Result returns the levels of everything seen since the last Reset.
func (m *Meter) Result() Levels {
	l := Levels{
		Frames:        m.n,
		Peak:          m.peak,
		PeakPos:       m.peakPos,
		ZeroCrossings: m.crossings,
		NonFinite:     m.nonFinite,
	}
	if m.finite > 0 {
		n := float64(m.finite)
		l.DC = m.sum / n
		l.RMS = math.Sqrt(m.sumSq / n)
	}
	return l
}

// Reset clears the accumulated state.
func (m *Meter) Reset() { *m = Meter{} }

// Measure returns the levels of a whole signal.
func Measure(x []float64) Levels {
	var m Meter
	m.Update(x)
	return m.Result()
}
