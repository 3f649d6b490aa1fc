package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestSineQuarterRate(t *testing.T) {
	s, err := NewSine(1000)
	if err != nil {
		t.Fatalf("NewSine() error = %v", err)
	}
	out := make([]float64, 8)
	if err := s.Run(SineControls{FrequencyHz: 250}, out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestSineAmplitude(t *testing.T) {
	s, _ := NewSine(48000)
	out := make([]float64, 4800)
	_ = s.Run(SineControls{FrequencyHz: 1000, AmplitudeDB: -20}, out)
	peak := 0.0
	for _, v := range out {
		peak = max(peak, math.Abs(v))
	}
	if math.Abs(peak-0.1) > 1e-9 {
		t.Fatalf("peak = %v, want 0.1", peak)
	}
}

func TestSineBlockSplitAtConstantFrequency(t *testing.T) {
	ctrl := SineControls{FrequencyHz: 440}
	a, _ := NewSine(8000)
	want := make([]float64, 300)
	_ = a.Run(ctrl, want)

	b, _ := NewSine(8000)
	got := make([]float64, 300)
	for start := 0; start < len(got); start += 64 {
		end := min(start+64, len(got))
		_ = b.Run(ctrl, got[start:end])
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestSineFrequencyRamp(t *testing.T) {
	const fs = 8000.0
	s, _ := NewSine(fs)
	first := make([]float64, 100)
	_ = s.Run(SineControls{FrequencyHz: 100}, first)
	start := s.Phase()

	second := make([]float64, 100)
	_ = s.Run(SineControls{FrequencyHz: 300}, second)

	// Σ f_i for f_i = 100 + 200·i/100, i = 0..99.
	var sum float64
	for i := range 100 {
		sum += 100 + 200*float64(i)/100
	}
	want := math.Mod(start+2*math.Pi*sum/fs, 2*math.Pi)
	if math.Abs(s.Phase()-want) > 1e-9 {
		t.Fatalf("phase = %v, want %v", s.Phase(), want)
	}

	// The ramp starts where the previous block ended.
	if math.Abs(second[0]-math.Sin(start)) > 1e-12 {
		t.Fatalf("second[0] = %v, want %v", second[0], math.Sin(start))
	}
}

func TestSineReset(t *testing.T) {
	s, _ := NewSine(1000)
	out := make([]float64, 10)
	_ = s.Run(SineControls{FrequencyHz: 123}, out)
	s.Reset()
	if s.Phase() != 0 {
		t.Fatalf("phase after reset = %v", s.Phase())
	}
	if _, err := NewSine(-1); err == nil {
		t.Fatal("expected sample rate error")
	}
}
