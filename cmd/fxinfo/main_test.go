package main

import (
	"bytes"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/effectchain"
	"github.com/cwbudde/algo-fx/dsp/window"
	"github.com/cwbudde/algo-fx/internal/audioio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runOutput(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, run(args, &out, io.Discard))

	return out.String()
}

func TestListIsDefault(t *testing.T) {
	out := runOutput(t)

	for _, name := range []string{"butterworth-lp", "elliptic-bs", "rbj-peaking", "reverb", "vocoder", "sine"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "2 -> 2")
	assert.Contains(t, out, "0 -> 1")
}

func TestMeasureButterworthCutoff(t *testing.T) {
	_, params, resp, err := measureUnit("butterworth-lp", []string{"freqHz=1000", "order=2"}, 48000, 8192)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.InDelta(t, 2.0, params.GetNum("order", 0), 0)
	assert.InDelta(t, 0.0, resp.At(0), 0.01)

	hz, err := resp.Crossing(-3.0103, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1000, hz, 10)
}

func TestMeasurePeakingEQ(t *testing.T) {
	_, _, resp, err := measureUnit("rbj-peaking", []string{"gainDB=6"}, 48000, 8192)
	require.NoError(t, err)

	peak, hz := peakOf(resp)
	assert.InDelta(t, 6, peak, 0.1)
	assert.InDelta(t, 1000, hz, 20)
}

func TestMeasureStereoUnit(t *testing.T) {
	_, _, resp, err := measureUnit("compressor", nil, 48000, 1024)
	require.NoError(t, err)
	require.NotNil(t, resp)

	for _, v := range resp.MagnitudeDB() {
		require.False(t, math.IsNaN(v))
	}
}

func TestPrintUnit(t *testing.T) {
	out := runOutput(t, "-unit", "butterworth-hp", "-set", "freqHz=500", "-fft", "4096")
	assert.Contains(t, out, "Response at 48000 Hz (4096-point FFT)")
	assert.Contains(t, out, "-3 dB crossing:")
	assert.Contains(t, out, "freqHz")

	out = runOutput(t, "-unit", "sine")
	assert.Contains(t, out, "generator: no transfer function")
}

func TestPrintUnitErrors(t *testing.T) {
	err := run([]string{"-unit", "nope"}, io.Discard, io.Discard)
	require.ErrorIs(t, err, effectchain.ErrUnknownEffect)

	err = run([]string{"-unit", "delay", "-set", "q=1"}, io.Discard, io.Discard)
	require.ErrorIs(t, err, effectchain.ErrUnknownParam)
}

func TestMeasureDistortion(t *testing.T) {
	clean, err := measureDistortion("distortion", nil, 48000, 1000, 8192)
	require.NoError(t, err)
	assert.Less(t, clean.THD, 1e-3)
	assert.InDelta(t, 0.5, clean.Amplitude, 0.01)

	dirty, err := measureDistortion("distortion", []string{"shape=2"}, 48000, 1000, 8192)
	require.NoError(t, err)
	assert.Greater(t, dirty.THD, 0.05)

	_, err = measureDistortion("sine", nil, 48000, 1000, 8192)
	require.ErrorIs(t, err, errUsage)
}

func TestPrintUnitWithTHD(t *testing.T) {
	out := runOutput(t, "-unit", "distortion", "-set", "shape=3", "-thd", "500")
	assert.Contains(t, out, "Distortion of a 500 Hz sine")
	assert.Contains(t, out, "THD+N")
	assert.Contains(t, out, "Harmonic")
}

func TestLPCFormantOfSine(t *testing.T) {
	clip, err := audioio.NewClip(8000, 1, 4000)
	require.NoError(t, err)

	for i := range clip.Channels[0] {
		clip.Channels[0][i] = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/8000)
	}

	rep, err := analyzeFrame(clip, 0.1, 30, 2)
	require.NoError(t, err)
	require.Len(t, rep.formants, 1)
	assert.InDelta(t, 1000, rep.formants[0].FrequencyHz, 5)
	assert.Greater(t, rep.formants[0].Radius, 0.99)

	_, err = analyzeFrame(clip, 0.49, 30, 2)
	require.ErrorIs(t, err, errUsage)

	path := filepath.Join(t.TempDir(), "sine.wav")
	require.NoError(t, audioio.WriteWAV(path, clip, 16))

	out := runOutput(t, "-lpc", path, "-at", "0.1", "-order", "2")
	assert.Contains(t, out, "Order 2")
	assert.Contains(t, out, "Formants:")
	assert.Contains(t, out, "Poles:")
}

func TestMeasureWindow(t *testing.T) {
	tests := []struct {
		entry             windowEntry
		gain, enbw, bw3dB float64
	}{
		{windowEntry{"rectangular", window.TypeRectangular, nil}, 1, 1, 0.886},
		{windowEntry{"hamming", window.TypeHamming, nil}, 0.54, 1.363, 1.30},
		{windowEntry{"blackman", window.TypeBlackman, nil}, 0.42, 1.727, 1.64},
	}

	for _, tt := range tests {
		t.Run(tt.entry.name, func(t *testing.T) {
			s, err := measureWindow(tt.entry, 1024)
			require.NoError(t, err)
			assert.InDelta(t, tt.gain, s.coherentGain, 1e-3)
			assert.InDelta(t, tt.enbw, s.enbw, 5e-3)
			assert.InDelta(t, tt.bw3dB, s.bw3dB, 0.02)
		})
	}

	out := runOutput(t, "-windows", "-size", "256")
	assert.Contains(t, out, "kaiser")
	assert.Contains(t, out, "ENBW")
}

func TestParseFlagsErrors(t *testing.T) {
	bad := [][]string{
		{"-rate", "0"},
		{"-fft", "1000"},
		{"-frame", "0"},
		{"-at", "-1"},
		{"-size", "1"},
		{"-set", "q=1"},
		{"-thd", "1000"},
		{"-unit", "delay", "-thd", "-5"},
		{"-unit", "delay", "-thd", "30000"},
		{"-bogus"},
	}

	for _, args := range bad {
		_, err := parseFlags(args, io.Discard)
		assert.Error(t, err, "%v", args)
	}
}
