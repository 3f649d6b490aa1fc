package dither

import (
	"math"
	"testing"
)

func TestQuantizeRoundsWithoutDither(t *testing.T) {
	q, err := NewQuantizer(16)
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	tests := []struct {
		in      float64
		want    int
		clipped bool
	}{
		{0, 0, false},
		{0.5, 16384, false},
		{-1, -32768, false},
		{1, 32767, true},
		{2, 32767, true},
		{-2, -32768, true},
		{100.4 / 32768, 100, false},
		{math.NaN(), 0, true},
	}
	for _, tt := range tests {
		got, clipped := q.Quantize(tt.in)
		if got != tt.want || clipped != tt.clipped {
			t.Fatalf("Quantize(%g) = (%d, %v), want (%d, %v)", tt.in, got, clipped, tt.want, tt.clipped)
		}
	}
}

func TestQuantizeBitDepths(t *testing.T) {
	for _, bits := range []int{8, 24, 32} {
		q, err := NewQuantizer(bits)
		if err != nil {
			t.Fatalf("NewQuantizer(%d) error = %v", bits, err)
		}
		full := 1 << (bits - 1)
		if got, _ := q.Quantize(-1); got != -full {
			t.Fatalf("bits=%d: Quantize(-1) = %d, want %d", bits, got, -full)
		}
		if got, clipped := q.Quantize(1); got != full-1 || !clipped {
			t.Fatalf("bits=%d: Quantize(1) = (%d, %v)", bits, got, clipped)
		}
	}
}

func TestDitherRemovesQuantizationBias(t *testing.T) {
	const (
		n      = 20000
		target = 100.3
	)
	x := target / 32768

	for _, typ := range []Type{Rectangular, Triangular} {
		q, err := NewQuantizer(16, WithType(typ), WithSeed(7))
		if err != nil {
			t.Fatalf("NewQuantizer() error = %v", err)
		}

		sum := 0.0
		distinct := map[int]bool{}
		for range n {
			v, _ := q.Quantize(x)
			sum += float64(v)
			distinct[v] = true
		}

		if mean := sum / n; math.Abs(mean-target) > 0.02 {
			t.Fatalf("%v: mean code = %.4f, want %.1f", typ, mean, target)
		}
		if len(distinct) < 2 {
			t.Fatalf("%v: dither produced a single code", typ)
		}
	}
}

func TestFirstOrderShapingTracksMean(t *testing.T) {
	const (
		n      = 1000
		target = 100.3
	)

	q, err := NewQuantizer(16, WithShaping(FirstOrder))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	sum := 0.0
	for range n {
		v, _ := q.Quantize(target / 32768)
		sum += float64(v)
	}
	if mean := sum / n; math.Abs(mean-target) > 1e-3 {
		t.Fatalf("mean code = %.5f, want %.1f", mean, target)
	}
}

func TestSeedReproducible(t *testing.T) {
	run := func(seed uint64) []int {
		q, err := NewQuantizer(16, WithType(Triangular), WithSeed(seed))
		if err != nil {
			t.Fatalf("NewQuantizer() error = %v", err)
		}
		out := make([]int, 64)
		for i := range out {
			out[i], _ = q.Quantize(0.001 * float64(i))
		}
		return out
	}

	a, b, c := run(3), run(3), run(4)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for equal seeds: %d vs %d", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical output")
	}
}

func TestResetClearsHistory(t *testing.T) {
	q, err := NewQuantizer(16, WithShaping(FirstOrder))
	if err != nil {
		t.Fatalf("NewQuantizer() error = %v", err)
	}

	first, _ := q.Quantize(0.3 / 32768)
	q.Quantize(0.3 / 32768)
	q.Reset()
	if again, _ := q.Quantize(0.3 / 32768); again != first {
		t.Fatalf("after Reset got %d, want %d", again, first)
	}
}

func TestNewQuantizerRejectsBadOptions(t *testing.T) {
	cases := map[string][]Option{
		"type":      {WithType(Type(9))},
		"amplitude": {WithAmplitude(-1)},
		"shaping":   {WithShaping([]float64{math.Inf(1)})},
	}
	for name, opts := range cases {
		if _, err := NewQuantizer(16, opts...); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	for _, bits := range []int{0, 7, 33} {
		if _, err := NewQuantizer(bits); err == nil {
			t.Fatalf("bits=%d: expected error", bits)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{None, Rectangular, Triangular} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = (%v, %v)", typ.String(), got, err)
		}
	}
	if got, err := ParseType("Triangular"); err != nil || got != Triangular {
		t.Fatalf("ParseType(Triangular) = (%v, %v)", got, err)
	}
	if _, err := ParseType("gauss"); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if s := Type(9).String(); s != "dither.Type(9)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestNewChannelsIndependentNoise(t *testing.T) {
	qs, err := NewChannels(2, 16, WithType(Triangular), WithSeed(11))
	if err != nil {
		t.Fatalf("NewChannels() error = %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}

	differ := false
	for range 64 {
		a, _ := qs[0].Quantize(0.3 / 32768)
		b, _ := qs[1].Quantize(0.3 / 32768)
		if a != b {
			differ = true
		}
	}
	if !differ {
		t.Fatal("channels produced identical dither")
	}

	if _, err := NewChannels(2, 4); err == nil {
		t.Fatal("expected bit depth error")
	}
}
