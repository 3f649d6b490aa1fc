package lpc

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/window"
	"github.com/cwbudde/algo-fx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyzerOptions(t *testing.T) {
	an, err := NewAnalyzer()
	require.NoError(t, err)
	assert.Equal(t, DefaultOrder, an.Order())

	an, err = NewAnalyzer(WithOrder(4), WithWindow(window.TypeHamming))
	require.NoError(t, err)
	assert.Equal(t, 4, an.Order())

	for _, p := range []int{0, MaxOrder + 1} {
		_, err := NewAnalyzer(WithOrder(p))
		assert.Error(t, err, "order %d", p)
	}
}

func TestAnalyzerFrame(t *testing.T) {
	an, err := NewAnalyzer(WithOrder(2))
	require.NoError(t, err)

	x := ar2(1.3, -0.6, 8000)
	require.NoError(t, an.Analyze(x))
	assert.True(t, an.Voiced(RMSGate))
	assert.InDelta(t, 1.3, an.Coefficients()[0], 0.05)
	assert.InDelta(t, -0.6, an.Coefficients()[1], 0.05)

	r := an.Autocorrelation()
	assert.InDelta(t, r[1]/r[0], an.Reflection()[0], 1e-12)
	assert.InDelta(t, an.Coefficients()[1], an.Reflection()[1], 1e-12)
	for _, k := range an.Reflection() {
		assert.Less(t, math.Abs(k), 1.0)
	}
	assert.InDelta(t, testutil.RMS(x), an.RMS(), 1e-9)
}

func TestAnalyzerSilentFrame(t *testing.T) {
	an, err := NewAnalyzer(WithOrder(4))
	require.NoError(t, err)

	require.NoError(t, an.Analyze(ar2(0.5, 0, 256)))
	err = an.Analyze(make([]float64, 256))
	require.ErrorIs(t, err, ErrDegenerate)
	assert.False(t, an.Voiced(RMSGate))
	assert.Zero(t, an.Gain())
	assert.Equal(t, []float64{0, 0, 0, 0}, an.Coefficients())

	require.Error(t, an.Analyze(make([]float64, 4)))
}

func TestAnalyzerWindowLeavesInputUntouched(t *testing.T) {
	an, err := NewAnalyzer(WithOrder(8), WithWindow(window.TypeHamming))
	require.NoError(t, err)

	x := testutil.DeterministicSine(440, 8000, 1, 320)
	orig := append([]float64(nil), x...)
	require.NoError(t, an.Analyze(x))
	assert.Equal(t, orig, x)

	// Windowing lowers R[0] below the raw frame energy.
	var raw float64
	for _, v := range x {
		raw += v * v
	}
	assert.Less(t, an.Autocorrelation()[0], raw)
}

func TestInverseThenSynthesisIsIdentity(t *testing.T) {
	an, err := NewAnalyzer(WithOrder(6))
	require.NoError(t, err)
	x := ar2(1.1, -0.5, 2000)
	require.NoError(t, an.Analyze(x))

	inv, err := NewInverseFilter(6)
	require.NoError(t, err)
	syn, err := NewSynthesisFilter(6)
	require.NoError(t, err)
	require.NoError(t, inv.SetCoefficients(an.Coefficients()))
	require.NoError(t, syn.SetCoefficients(an.Coefficients()))

	residual := make([]float64, len(x))
	inv.ProcessBlockTo(residual, x)
	y := make([]float64, len(x))
	syn.ProcessBlockTo(y, residual)

	testutil.RequireSliceNearlyEqual(t, y, x, 1e-9)
	assert.Less(t, testutil.RMS(residual), testutil.RMS(x))
}

func TestSynthesisImpulseResponse(t *testing.T) {
	syn, err := NewSynthesisFilter(1)
	require.NoError(t, err)
	require.NoError(t, syn.SetCoefficients([]float64{0.5}))

	out := make([]float64, 4)
	syn.ProcessBlockTo(out, testutil.Impulse(4, 0))
	assert.Equal(t, []float64{1, 0.5, 0.25, 0.125}, out)

	syn.Reset()
	assert.Equal(t, 0.0, syn.ProcessSample(0))
}

func TestInverseFilterTaps(t *testing.T) {
	inv, err := NewInverseFilter(3)
	require.NoError(t, err)
	require.NoError(t, inv.SetCoefficients([]float64{1, 2, 3}))

	out := make([]float64, 6)
	inv.ProcessBlockTo(out, testutil.Impulse(6, 0))
	assert.Equal(t, []float64{1, -1, -2, -3, 0, 0}, out)
}

func TestFiltersSquashNonFinite(t *testing.T) {
	inv, _ := NewInverseFilter(2)
	assert.Equal(t, 0.0, inv.ProcessSample(math.Inf(1)))

	syn, _ := NewSynthesisFilter(2)
	require.NoError(t, syn.SetCoefficients([]float64{0.5, 0.1}))
	assert.Equal(t, 0.0, syn.ProcessSample(math.NaN()))
	assert.Equal(t, 1.0, syn.ProcessSample(1))
}

func TestFilterValidation(t *testing.T) {
	_, err := NewInverseFilter(0)
	require.Error(t, err)
	_, err = NewSynthesisFilter(MaxOrder + 1)
	require.Error(t, err)

	syn, _ := NewSynthesisFilter(3)
	require.Error(t, syn.SetCoefficients([]float64{1, 2}))
}

func TestPolesOfSecondOrder(t *testing.T) {
	poles, err := Poles([]float64{1.3, -0.6})
	require.NoError(t, err)
	require.Len(t, poles, 2)

	// z² - 1.3z + 0.6: sum 1.3, product 0.6.
	assert.InDelta(t, 1.3, real(poles[0]+poles[1]), 1e-10)
	assert.InDelta(t, 0.6, real(poles[0]*poles[1]), 1e-10)
	assert.InDelta(t, math.Sqrt(0.6), cmplx.Abs(poles[0]), 1e-10)

	poles, err = Poles(nil)
	require.NoError(t, err)
	assert.Empty(t, poles)
}

func TestFormantsOfResonator(t *testing.T) {
	const fs = 16000.0
	r, theta := 0.98, 2*math.Pi*1200/fs
	a := []float64{2 * r * math.Cos(theta), -r * r, 0}

	formants, err := Formants(a, fs)
	require.NoError(t, err)
	require.Len(t, formants, 1)
	assert.InDelta(t, 1200, formants[0].FrequencyHz, 1e-6)
	assert.InDelta(t, -math.Log(r)*fs/math.Pi, formants[0].BandwidthHz, 1e-6)
}
