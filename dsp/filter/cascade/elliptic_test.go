package cascade

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestEllipticLowHigh(t *testing.T) {
	lp, err := NewEllipticLP(sr)
	if err != nil {
		t.Fatal(err)
	}
	hp, err := NewEllipticHP(sr)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]float64, 1)
	ctrl := EllipticControls{FrequencyHz: 1000}
	if err := lp.Run(ctrl, buf, buf); err != nil {
		t.Fatal(err)
	}
	if err := hp.Run(ctrl, buf, buf); err != nil {
		t.Fatal(err)
	}

	for _, f := range []float64{1, 100, 500, 900} {
		if got := MagnitudeDB(lp.Response(f)); math.Abs(got) > 0.2 {
			t.Fatalf("lowpass passband %v Hz: %v dB", f, got)
		}
		if got := MagnitudeDB(hp.Response(f)); got > -60 {
			t.Fatalf("highpass stopband %v Hz: %v dB", f, got)
		}
	}
	for _, f := range []float64{1200, 2000, 5000, 10000} {
		if got := MagnitudeDB(lp.Response(f)); got > -60 {
			t.Fatalf("lowpass stopband %v Hz: %v dB", f, got)
		}
		if got := MagnitudeDB(hp.Response(f)); math.Abs(got) > 0.2 {
			t.Fatalf("highpass passband %v Hz: %v dB", f, got)
		}
	}
}

func TestEllipticBand(t *testing.T) {
	bp, _ := NewEllipticBP(sr)
	bs, _ := NewEllipticBS(sr)
	buf := make([]float64, 1)
	ctrl := EllipticControls{FrequencyHz: 1000, Q: 2}
	if err := bp.Run(ctrl, buf, buf); err != nil {
		t.Fatal(err)
	}
	if err := bs.Run(ctrl, buf, buf); err != nil {
		t.Fatal(err)
	}

	if got := MagnitudeDB(bp.Response(1000)); math.Abs(got) > 0.2 {
		t.Fatalf("band-pass centre %v dB", got)
	}
	if got := MagnitudeDB(bs.Response(1000)); got > -60 {
		t.Fatalf("band-stop centre %v dB", got)
	}
	for _, f := range []float64{100, 5000} {
		if got := MagnitudeDB(bp.Response(f)); got > -60 {
			t.Fatalf("band-pass %v Hz: %v dB", f, got)
		}
		if got := MagnitudeDB(bs.Response(f)); math.Abs(got) > 0.2 {
			t.Fatalf("band-stop %v Hz: %v dB", f, got)
		}
	}
}

func TestEllipticLPMatchesResponse(t *testing.T) {
	lp, _ := NewEllipticLP(sr)
	in := testutil.DeterministicSine(200, sr, 1, 48000)
	out := make([]float64, len(in))
	if err := lp.Run(EllipticControls{FrequencyHz: 1000}, in, out); err != nil {
		t.Fatal(err)
	}
	testutil.RequireBounded(t, out, 2)

	got := 20 * math.Log10(testutil.RMS(out[24000:])/testutil.RMS(in[24000:]))
	want := MagnitudeDB(lp.Response(200))
	if math.Abs(got-want) > 0.05 {
		t.Fatalf("measured %v dB, response %v dB", got, want)
	}

	lp.Reset()
	for i := range out {
		out[i] = 0
	}
	if err := lp.Run(EllipticControls{FrequencyHz: 1000}, make([]float64, 8), out[:8]); err != nil {
		t.Fatal(err)
	}
	for i, v := range out[:8] {
		if v != 0 {
			t.Fatalf("after Reset out[%d] = %v", i, v)
		}
	}
}

func TestEllipticPrototypeIsCopy(t *testing.T) {
	p := EllipticPrototype()
	p[0].Num0 = 0
	if EllipticPrototype()[0].Num0 == 0 {
		t.Fatal("prototype table mutated through copy")
	}
}
