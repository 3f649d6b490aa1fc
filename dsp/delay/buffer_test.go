package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/interp"
)

func TestNewBufferRejectsShortSize(t *testing.T) {
	if _, err := NewBuffer(interp.Taps - 1); err == nil {
		t.Fatal("expected error for buffer shorter than the interpolation window")
	}
	if _, err := NewBuffer(interp.Taps); err != nil {
		t.Fatalf("NewBuffer(%d) error = %v", interp.Taps, err)
	}
}

func TestBufferIndexWraps(t *testing.T) {
	b, err := NewBuffer(40)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{-1, 39},
		{-41, 39},
		{41, 1},
	}
	for _, tc := range cases {
		if got := b.Index(tc.offset); got != tc.want {
			t.Fatalf("Index(%d) = %d, want %d", tc.offset, got, tc.want)
		}
	}

	for range 45 {
		b.Advance()
	}
	if b.WriteIndex() != 5 {
		t.Fatalf("WriteIndex() = %d, want 5", b.WriteIndex())
	}
	if got := b.Index(-6); got != 39 {
		t.Fatalf("Index(-6) = %d, want 39", got)
	}
}

func TestBufferFractionalIntegerRead(t *testing.T) {
	b, err := NewBuffer(64)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 64 {
		b.Write(float64(i))
		b.Advance()
	}

	// With alpha 0 the read lands Taps/2 past the window start.
	start := b.Index(-interp.Taps - 5)
	want := b.At(b.Index(-interp.Taps/2 - 5))
	if got := b.Fractional(start, 0); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Fractional() = %v, want %v", got, want)
	}
}

func TestBufferReset(t *testing.T) {
	b, err := NewBuffer(32)
	if err != nil {
		t.Fatal(err)
	}
	b.Write(1)
	b.Advance()
	b.Reset()

	if b.WriteIndex() != 0 || b.At(0) != 0 {
		t.Fatalf("Reset left cursor %d value %v", b.WriteIndex(), b.At(0))
	}
}

func TestSplitDelay(t *testing.T) {
	d, frac := splitDelay(10.25)
	if d != 11 || math.Abs(frac-0.75) > 1e-12 {
		t.Fatalf("splitDelay(10.25) = %d, %v", d, frac)
	}
	d, frac = splitDelay(7)
	if d != 7 || frac != 0 {
		t.Fatalf("splitDelay(7) = %d, %v", d, frac)
	}
}
