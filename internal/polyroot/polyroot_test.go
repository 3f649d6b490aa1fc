package polyroot

import (
	"math"
	"math/cmplx"
	"slices"
	"testing"
)

func TestMonicRealRoots(t *testing.T) {
	// (z-1)(z-2)
	roots, err := Monic([]float64{-3, 2})
	if err != nil {
		t.Fatal(err)
	}
	r := []float64{real(roots[0]), real(roots[1])}
	slices.Sort(r)
	if math.Abs(r[0]-1) > 1e-12 || math.Abs(r[1]-2) > 1e-12 {
		t.Fatalf("roots = %v, want {1, 2}", r)
	}
}

func TestMonicUnitCircle(t *testing.T) {
	c := []float64{0, 0, 0, -1}
	roots, err := Monic(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 4 {
		t.Fatalf("len = %d, want 4", len(roots))
	}
	for i, r := range roots {
		if math.Abs(cmplx.Abs(r)-1) > 1e-10 {
			t.Fatalf("root %d: |r| = %v, want 1", i, cmplx.Abs(r))
		}
		if v := Eval(c, r); cmplx.Abs(v) > 1e-10 {
			t.Fatalf("root %d: p(r) = %v", i, v)
		}
	}
}

func TestMonicRepeatedRoots(t *testing.T) {
	// (z - 0.9)^2 (z - 0.8)^2
	r1, r2 := 0.9, 0.8
	c := []float64{
		-2 * (r1 + r2),
		r1*r1 + 4*r1*r2 + r2*r2,
		-2 * r1 * r2 * (r1 + r2),
		r1 * r1 * r2 * r2,
	}
	roots, err := Monic(c)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range roots {
		if v := Eval(c, r); cmplx.Abs(v) > 1e-9 {
			t.Fatalf("root %d: p(%v) = %v", i, r, v)
		}
	}
	if got := MaxRadius(roots); math.Abs(got-0.9) > 1e-4 {
		t.Fatalf("MaxRadius = %v, want 0.9", got)
	}
}

func TestMonicTrivial(t *testing.T) {
	if roots, err := Monic(nil); err != nil || roots != nil {
		t.Fatalf("Monic(nil) = %v, %v", roots, err)
	}
	roots, err := Monic([]float64{-0.5})
	if err != nil || len(roots) != 1 || roots[0] != 0.5 {
		t.Fatalf("Monic(-0.5) = %v, %v", roots, err)
	}
	// Trailing zeros put roots at the origin.
	roots, err = Monic([]float64{-1.2, 0.36, 0})
	if err != nil {
		t.Fatal(err)
	}
	zeros := 0
	for _, r := range roots {
		if cmplx.Abs(r) < 1e-12 {
			zeros++
		} else if cmplx.Abs(r-0.6) > 1e-6 {
			t.Fatalf("root %v, want 0.6 or 0", r)
		}
	}
	if zeros != 1 {
		t.Fatalf("roots at origin = %d, want 1", zeros)
	}
	if MaxRadius(nil) != 0 {
		t.Fatal("MaxRadius(nil) != 0")
	}
}
