package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/internal/testutil"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func smoother() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DirectForm2(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0]:
	//
	// n=0: w=1                      y=0.25
	// n=1: w=0.2                    y=0.25*0.2+0.5*1 = 0.55
	// n=2: w=0.2*0.2-0.04 = 0       y=0+0.5*0.2+0.25 = 0.35
	// n=3: w=0-0.04*0.2 = -0.008    y=0.25*-0.008+0+0.25*0.2 = 0.048
	s := NewSection(smoother())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("n=%d: got %v, want %v", i, y, w)
		}
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	in := testutil.DeterministicNoise(11, 1, 257)

	ref := NewSection(smoother())
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	blk := NewSection(smoother())
	got := append([]float64(nil), in...)
	blk.ProcessBlock(got[:100])
	blk.ProcessBlock(got[100:])
	testutil.RequireSliceNearlyEqual(t, got, want, eps)

	to := NewSection(smoother())
	dst := make([]float64, len(in))
	to.ProcessBlockTo(dst, in)
	testutil.RequireSliceNearlyEqual(t, dst, want, eps)
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s := NewSection(smoother())
	s.ProcessSample(1)
	before := s.State()
	s.SetCoefficients(Coefficients{B0: 1})
	if s.State() != before {
		t.Fatalf("state changed: %v -> %v", before, s.State())
	}
}

func TestResetAndSetState(t *testing.T) {
	s := NewSection(smoother())
	s.ProcessSample(1)
	s.ProcessSample(-0.3)
	saved := s.State()

	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("Reset left state %v", s.State())
	}
	s.SetState(saved)
	if s.State() != saved {
		t.Fatalf("SetState: got %v, want %v", s.State(), saved)
	}
}

func TestFirstOrder(t *testing.T) {
	// y[n] = 0.5x[n] + 0.5x[n-1] + 0.5y[n-1]
	s := FirstOrder{FirstOrderCoefficients: FirstOrderCoefficients{B0: 0.5, B1: 0.5, A1: -0.5}}
	want := []float64{0.5, 0.75, 0.375, 0.1875}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("n=%d: got %v, want %v", i, y, w)
		}
	}
	s.Reset()
	if y := s.ProcessSample(0); y != 0 {
		t.Fatalf("after Reset: got %v, want 0", y)
	}
}

func TestSection4MatchesTwoBiquads(t *testing.T) {
	// (smoother)^2 expanded into one fourth-order section.
	c := smoother()
	b := []float64{c.B0, c.B1, c.B2}
	a := []float64{1, c.A1, c.A2}
	var c4 Coefficients4
	var den [5]float64
	for i := range 3 {
		for j := range 3 {
			c4.B[i+j] += b[i] * b[j]
			den[i+j] += a[i] * a[j]
		}
	}
	copy(c4.A[:], den[1:])

	var s4 Section4
	s4.SetCoefficients(c4)
	s1, s2 := NewSection(c), NewSection(c)

	in := testutil.DeterministicNoise(5, 1, 200)
	for i, x := range in {
		want := s2.ProcessSample(s1.ProcessSample(x))
		if got := s4.ProcessSample(x); !almostEqual(got, want, 1e-10) {
			t.Fatalf("n=%d: got %v, want %v", i, got, want)
		}
	}

	s4.Reset()
	if s4.State() != [4]float64{} {
		t.Fatalf("Reset left state %v", s4.State())
	}
}

func TestK(t *testing.T) {
	// f = fs/4 maps to tan(π/4) = 1.
	if got := K(12000, 48000); !almostEqual(got, 1, 1e-12) {
		t.Fatalf("K(fs/4) = %v, want 1", got)
	}
	if K(100, 48000) <= K(1000, 48000) {
		t.Fatal("K must decrease with frequency")
	}
}
