package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/delay"
	"github.com/cwbudde/algo-fx/dsp/interp"
)

const (
	// GrainSec is the grain length in seconds.
	GrainSec = 0.02

	minSemitones = -12.0
	maxSemitones = 12.0
)

// Controls is the per-block control snapshot of [Shifter].
type Controls struct {
	Semitones float64 // [-12, 12]
}

// Ratio returns the read-rate ratio 2^(semitones/12) after clamping.
func (c Controls) Ratio() float64 {
	s := c.Semitones
	if math.IsNaN(s) {
		s = 0
	}
	return core.SemitonesToRatio(core.Clamp(s, minSemitones, maxSemitones))
}

// grainUnit renders one grain every n samples from its own input history.
type grainUnit struct {
	in   *delay.Buffer
	out  []float64
	read int
}

func newGrainUnit(n, phase int) (*grainUnit, error) {
	in, err := delay.NewBuffer(2*n + interp.Taps)
	if err != nil {
		return nil, err
	}
	return &grainUnit{in: in, out: make([]float64, n), read: phase}, nil
}

func (g *grainUnit) process(x, ratio float64) float64 {
	y := g.out[g.read]
	g.in.Write(x)

	g.read++
	if g.read == len(g.out) {
		g.read = 0
		g.render(ratio)
	}
	g.in.Advance()
	return y
}

// render fills the output grain. The read position starts n(1+ratio/2)
// samples back and advances by ratio per output sample, so the grain
// centre stays a fixed distance behind the write cursor.
func (g *grainUnit) render(ratio float64) {
	n := len(g.out)
	pos := -float64(n) * (1 + ratio*0.5)
	for i := range g.out {
		dInt := math.Floor(pos)
		frac := pos - dInt
		start := g.in.Index(-interp.Taps/2 - 1 + int(dInt))
		g.out[i] = g.in.Fractional(start, frac) * triangle(float64(i)/float64(n))
		pos += ratio
	}
}

func (g *grainUnit) reset(phase int) {
	g.in.Reset()
	clear(g.out)
	g.read = phase
}

func triangle(a float64) float64 {
	if a <= 0.5 {
		return 2 * a
	}
	return 2 - 2*a
}

// Shifter is a two-grain pitch shifter.
type Shifter struct {
	grain int
	units [2]*grainUnit
}

// NewShifter returns a shifter with GrainSec grains at sampleRate.
func NewShifter(sampleRate float64) (*Shifter, error) {
	if err := core.ValidateSampleRate("pitch shifter", sampleRate); err != nil {
		return nil, err
	}
	n := int(GrainSec * sampleRate)
	if n < 2 {
		return nil, fmt.Errorf("pitch shifter sample rate too low for a %g s grain: %f", GrainSec, sampleRate)
	}

	s := &Shifter{grain: n}
	for i := range s.units {
		u, err := newGrainUnit(n, i*n/2)
		if err != nil {
			return nil, err
		}
		s.units[i] = u
	}
	return s, nil
}

// GrainSize returns the grain length in samples.
func (s *Shifter) GrainSize() int { return s.grain }

// Latency returns the delay of the unshifted signal in samples.
func (s *Shifter) Latency() int { return s.grain*3/2 + 2 }

// Reset clears both grain units.
func (s *Shifter) Reset() {
	for i, u := range s.units {
		u.reset(i * s.grain / 2)
	}
}

// Run processes len(out) samples of in.
func (s *Shifter) Run(ctrl Controls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}

	ratio := ctrl.Ratio()
	for i := range out {
		x := in[i]
		out[i] = s.units[0].process(x, ratio) + s.units[1].process(x, ratio)
	}
	return nil
}
