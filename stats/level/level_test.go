package level

import (
	"math"
	"testing"
)

func TestMeasureSine(t *testing.T) {
	const n = 4800
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5*math.Sin(2*math.Pi*float64(i)/48) + 0.1
	}

	l := Measure(x)
	if l.Frames != n {
		t.Fatalf("Frames = %d, want %d", l.Frames, n)
	}
	if math.Abs(l.DC-0.1) > 1e-9 {
		t.Fatalf("DC = %g, want 0.1", l.DC)
	}
	wantRMS := math.Sqrt(0.125 + 0.01)
	if math.Abs(l.RMS-wantRMS) > 1e-9 {
		t.Fatalf("RMS = %g, want %g", l.RMS, wantRMS)
	}
	if math.Abs(l.Peak-0.6) > 1e-9 || l.PeakPos != 12 {
		t.Fatalf("Peak = %g at %d, want 0.6 at 12", l.Peak, l.PeakPos)
	}
	// Two crossings per period, 100 periods.
	if l.ZeroCrossings < 198 || l.ZeroCrossings > 200 {
		t.Fatalf("ZeroCrossings = %d, want about 200", l.ZeroCrossings)
	}
	if got := l.CrestDB(); math.Abs(got-20*math.Log10(0.6/wantRMS)) > 1e-9 {
		t.Fatalf("CrestDB = %g", got)
	}
}

func TestMeterBlocksMatchWhole(t *testing.T) {
	x := make([]float64, 1000)
	for i := range x {
		x[i] = math.Sin(float64(i)*0.37) * math.Cos(float64(i)*0.011)
	}

	var m Meter
	for start := 0; start < len(x); start += 37 {
		m.Update(x[start:min(start+37, len(x))])
	}

	if got, want := m.Result(), Measure(x); got != want {
		t.Fatalf("blockwise = %+v, whole = %+v", got, want)
	}

	m.Reset()
	if got := m.Result(); got != (Levels{}) {
		t.Fatalf("after Reset = %+v", got)
	}
}

func TestMeterSkipsNonFinite(t *testing.T) {
	l := Measure([]float64{0.5, math.NaN(), -0.5, math.Inf(1)})
	if l.Frames != 4 || l.NonFinite != 2 {
		t.Fatalf("Frames = %d NonFinite = %d", l.Frames, l.NonFinite)
	}
	if l.RMS != 0.5 || l.DC != 0 || l.Peak != 0.5 || l.PeakPos != 0 {
		t.Fatalf("levels = %+v", l)
	}
	if l.ZeroCrossings != 1 {
		t.Fatalf("ZeroCrossings = %d, want 1", l.ZeroCrossings)
	}
}

func TestSilence(t *testing.T) {
	l := Measure(make([]float64, 16))
	if !math.IsInf(l.PeakDB(), -1) || !math.IsInf(l.RMSDB(), -1) {
		t.Fatalf("PeakDB = %g RMSDB = %g", l.PeakDB(), l.RMSDB())
	}
	if l.CrestDB() != 0 || l.ZeroCrossings != 0 {
		t.Fatalf("levels = %+v", l)
	}
}
