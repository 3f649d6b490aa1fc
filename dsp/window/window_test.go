package window

import (
	"errors"
	"math"
	"testing"
)

var allTypes = []Type{TypeRectangular, TypeHamming, TypeBlackman, TypeKaiser, TypeTriangle}

func TestGenerateFiniteAndSymmetric(t *testing.T) {
	for _, typ := range allTypes {
		w := Generate(typ, 33, WithBeta(6))
		if len(w) != 33 {
			t.Fatalf("%v: len = %d, want 33", typ, len(w))
		}
		for i := range w {
			if math.IsNaN(w[i]) || math.IsInf(w[i], 0) {
				t.Fatalf("%v: w[%d] = %v", typ, i, w[i])
			}
			if j := len(w) - 1 - i; math.Abs(w[i]-w[j]) > 1e-12 {
				t.Fatalf("%v: w[%d] = %v, w[%d] = %v", typ, i, w[i], j, w[j])
			}
		}
		if math.Abs(w[16]-1) > 1e-12 {
			t.Fatalf("%v: centre = %v, want 1", typ, w[16])
		}
	}
}

func TestHammingClosedForm(t *testing.T) {
	const n = 20
	for i, got := range Generate(TypeHamming, n) {
		want := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("w[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestKaiserEdges(t *testing.T) {
	// w(0) = 1/I0(beta); I0(8.6) = 750.46...
	w := Generate(TypeKaiser, 9, WithBeta(8.6))
	if got, want := w[0], 1/besselI0(8.6); math.Abs(got-want) > 1e-15 {
		t.Fatalf("w[0] = %v, want %v", got, want)
	}
	if got := besselI0(8.6); math.Abs(got-750.4612) > 1e-3 {
		t.Fatalf("I0(8.6) = %v", got)
	}
	if got := besselI0(0); got != 1 {
		t.Fatalf("I0(0) = %v, want 1", got)
	}
	for _, v := range Generate(TypeKaiser, 5, WithBeta(0)) {
		if v != 1 {
			t.Fatalf("beta 0 must be rectangular, got %v", v)
		}
	}
}

func TestPeriodicDropsEndpoint(t *testing.T) {
	sym := Generate(TypeBlackman, 17)
	per := Generate(TypeBlackman, 16, WithPeriodic())
	for i := range per {
		if math.Abs(per[i]-sym[i]) > 1e-12 {
			t.Fatalf("periodic[%d] = %v, symmetric = %v", i, per[i], sym[i])
		}
	}
}

func TestAt(t *testing.T) {
	if v := At(TypeBlackman, -0.01); v != 0 {
		t.Fatalf("At(-0.01) = %v, want 0", v)
	}
	if v := At(TypeHamming, 1.5); v != 0 {
		t.Fatalf("At(1.5) = %v, want 0", v)
	}
	if v := At(TypeBlackman, 0.5); math.Abs(v-1) > 1e-12 {
		t.Fatalf("At(0.5) = %v, want 1", v)
	}
	if v := At(TypeTriangle, 0.25); v != 0.5 {
		t.Fatalf("triangle quarter = %v, want 0.5", v)
	}
}

func TestShortWindows(t *testing.T) {
	if w := Generate(TypeHamming, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(TypeHamming, 1); len(w) != 1 || math.Abs(w[0]-0.08) > 1e-12 {
		t.Fatalf("Generate(1) = %v", w)
	}
}

func TestApplyCoefficientsLength(t *testing.T) {
	err := ApplyCoefficientsInPlace(make([]float64, 3), make([]float64, 4))
	if !errors.Is(err, errLength) {
		t.Fatalf("err = %v, want errLength", err)
	}
}

func TestTypeString(t *testing.T) {
	if s := TypeKaiser.String(); s != "kaiser" {
		t.Fatalf("String() = %q", s)
	}
	if s := Type(42).String(); s != "window.Type(42)" {
		t.Fatalf("String() = %q", s)
	}
}
