package modulation

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestResonatorPeakGain(t *testing.T) {
	for _, gain := range []float64{-12, 0, 6} {
		c := Resonator(1500, 100, gain, 48000)
		got := 20 * math.Log10(cmplx.Abs(c.Response(1500, 48000)))
		if math.Abs(got-gain) > 1e-9 {
			t.Fatalf("peak gain = %v dB, want %v", got, gain)
		}
		if !c.IsStable() {
			t.Fatal("resonator must be stable")
		}
	}

	c := Resonator(1500, 100, 0, 48000)
	if dc := cmplx.Abs(c.Response(0, 48000)); dc > 1e-3 {
		t.Fatalf("DC gain = %v, want ~0", dc)
	}
}

func TestLFOBandpassStaticMatchesResonator(t *testing.T) {
	const sampleRate = 8000.0
	b, err := NewLFOBandpass(sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	ctrl := BandControls{FrequencyHz: 1000, BandwidthHz: 50, GainDB: -6, LFOFrequencyHz: 1}
	process := func(in, out []float64) {
		b.Reset()
		_ = b.Run(ctrl, in, out)
	}

	if got := testutil.ToneGainDB(process, 1000, sampleRate, 2000, 800); math.Abs(got+6) > 0.05 {
		t.Fatalf("centre gain = %v dB, want -6", got)
	}
	if got := testutil.ToneGainDB(process, 2000, sampleRate, 2000, 800); got > -30 {
		t.Fatalf("off-centre gain = %v dB, want < -30", got)
	}
}

func TestLFOBandpassSweepChangesOutput(t *testing.T) {
	in := testutil.DeterministicNoise(5, 0.5, 2000)

	run := func(amount float64) []float64 {
		b, _ := NewLFOBandpass(8000)
		out := make([]float64, len(in))
		_ = b.Run(BandControls{FrequencyHz: 500, BandwidthHz: 50, LFOFrequencyHz: 3, LFOAmount: amount}, in, out)
		return out
	}

	diff, err := testutil.MaxAbsDiff(run(0), run(1000))
	if err != nil {
		t.Fatal(err)
	}
	if diff < 1e-3 {
		t.Fatalf("sweep had no effect: max diff %v", diff)
	}
}

func TestLFOBandpass5SumsBands(t *testing.T) {
	const sampleRate = 8000.0
	in := testutil.DeterministicNoise(7, 0.5, 1024)

	var ctrl LFOBandpass5Controls
	want := make([]float64, len(in))
	for i := range ctrl.Bands {
		ctrl.Bands[i] = BandControls{
			FrequencyHz:    200 * float64(i+1),
			BandwidthHz:    40,
			GainDB:         -3,
			LFOFrequencyHz: 0.5 * float64(i+1),
			LFOAmount:      100,
		}
		single, _ := NewLFOBandpass(sampleRate)
		tmp := make([]float64, len(in))
		_ = single.Run(ctrl.Bands[i], in, tmp)
		for n := range want {
			want[n] += tmp[n]
		}
	}

	b, err := NewLFOBandpass5(sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	got := testutil.Ones(len(in))
	if err := b.Run(ctrl, in, got); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func randomControls() RandomBandpass5Controls {
	ctrl := RandomBandpass5Controls{PeriodSec: 0.05, PeriodModSec: 0.05}
	for i := range ctrl.Bands {
		ctrl.Bands[i] = RandomBandControls{
			FrequencyHz: 500,
			BandwidthHz: 80,
			GainDB:      0,
			Amount:      200,
		}
	}
	return ctrl
}

func TestRandomBandpass5SeedDeterminism(t *testing.T) {
	in := testutil.DeterministicNoise(3, 0.5, 4000)
	run := func(seed uint64) []float64 {
		b, err := NewRandomBandpass5(8000, core.WithSeed(seed))
		if err != nil {
			t.Fatal(err)
		}
		out := make([]float64, len(in))
		if err := b.Run(randomControls(), in, out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	a, b := run(42), run(42)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)

	c := run(43)
	if diff, _ := testutil.MaxAbsDiff(a, c); diff == 0 {
		t.Fatal("different seeds produced identical output")
	}
}

func TestRandomBandpass5CentresStayInRange(t *testing.T) {
	b, _ := NewRandomBandpass5(8000, core.WithSeed(9))
	if c := b.Centres(); c[0] != initialCentreHz {
		t.Fatalf("initial centre = %v", c[0])
	}

	ctrl := randomControls()
	in := make([]float64, 256)
	out := make([]float64, len(in))
	// The first glide leaves the initial centre, so skip it.
	for range 10 {
		_ = b.Run(ctrl, in, out)
	}
	for range 40 {
		if err := b.Run(ctrl, in, out); err != nil {
			t.Fatal(err)
		}
		for i, c := range b.Centres() {
			if c < 500-1e-9 || c > 700+1e-9 {
				t.Fatalf("band %d centre %v outside [500, 700]", i, c)
			}
		}
	}
}

func TestRandomBandpass5ResetReplays(t *testing.T) {
	in := testutil.DeterministicNoise(4, 0.5, 1500)
	b, _ := NewRandomBandpass5(8000, core.WithSeed(5))

	first := make([]float64, len(in))
	_ = b.Run(randomControls(), in, first)
	b.Reset()
	second := make([]float64, len(in))
	_ = b.Run(randomControls(), in, second)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}
