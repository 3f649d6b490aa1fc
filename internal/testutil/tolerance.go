package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails unless got and want have equal length and
// every pair is within eps. The message names the worst index.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()

	d, err := MaxAbsDiff(got, want)
	if err != nil {
		tb.Fatal(err)
	}
	if d <= eps {
		return
	}

	worst := 0
	for i := range got {
		if math.Abs(got[i]-want[i]) > math.Abs(got[worst]-want[worst]) {
			worst = i
		}
	}
	tb.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", worst, got[worst], want[worst], d, eps)
}

// RequireFinite fails on the first NaN or Inf.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireBounded fails on a non-finite value or one with |v| > limit.
func RequireBounded(tb testing.TB, data []float64, limit float64) {
	tb.Helper()
	RequireFinite(tb, data)
	if i := PeakIndex(data); i >= 0 && math.Abs(data[i]) > limit {
		tb.Fatalf("index %d: |%v| exceeds %v", i, data[i], limit)
	}
}

// MaxAbsDiff returns the largest elementwise distance between a and b.
// NaN in either slice yields NaN.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	d := 0.0
	for i := range a {
		e := math.Abs(a[i] - b[i])
		if math.IsNaN(e) {
			return e, nil
		}
		d = max(d, e)
	}
	return d, nil
}

// PeakIndex returns the index of the largest |v|, or -1 for an empty slice.
func PeakIndex(data []float64) int {
	idx := -1
	peak := -1.0
	for i, v := range data {
		if a := math.Abs(v); a > peak {
			peak, idx = a, i
		}
	}
	return idx
}
