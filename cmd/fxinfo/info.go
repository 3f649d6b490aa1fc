package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"text/tabwriter"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/effectchain"
	"github.com/cwbudde/algo-fx/dsp/lpc"
	"github.com/cwbudde/algo-fx/dsp/spectrum"
	"github.com/cwbudde/algo-fx/dsp/window"
	"github.com/cwbudde/algo-fx/internal/audioio"
	"github.com/sirupsen/logrus"
)

// responsePoints are the frequencies printed for a measured response.
var responsePoints = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 15000, 20000}

const (
	thdAmplitude = 0.5
	thdSettle    = 0.25
	thdHarmonics = 9
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printList(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Unit\tPorts\tControls\tDescription\n")
	fmt.Fprintf(tw, "----\t-----\t--------\t-----------\n")

	for _, d := range effectchain.DefaultRegistry().Descriptors() {
		fmt.Fprintf(tw, "%s\t%d -> %d\t%d\t%s\n", d.Name, d.Inputs, d.Outputs, len(d.Params), d.Description)
	}

	return tw.Flush()
}

// unitChain builds a one-node chain for name, sized for its ports.
func unitChain(name string, sets []string, sampleRate float64) (effectchain.Descriptor, *effectchain.Chain, error) {
	reg := effectchain.DefaultRegistry()

	d, ok := reg.Lookup(name)
	if !ok {
		return d, nil, fmt.Errorf("%w: %s", effectchain.ErrUnknownEffect, name)
	}

	p, err := effectchain.ParseParams(sets)
	if err != nil {
		return d, nil, err
	}

	channels := 1
	if d.Stereo() {
		channels = 2
	}

	c, err := effectchain.New(effectchain.Context{SampleRate: sampleRate, Seed: 1}, reg, channels,
		[]effectchain.NodeSpec{{Type: name, Params: p}})
	if err != nil {
		return d, nil, err
	}

	return d, c, nil
}

// firstChannel runs c with in on the first channel and silence elsewhere,
// and returns the first output channel in out.
func firstChannel(c *effectchain.Chain) spectrum.ProcessFunc {
	return func(in, out []float64) error {
		block := make([][]float64, c.Channels())
		block[0] = out
		copy(out, in)
		for ch := 1; ch < len(block); ch++ {
			block[ch] = make([]float64, len(in))
		}

		return c.Process(block)
	}
}

// measureUnit records the impulse response of the first output channel with
// the impulse on the first input.
func measureUnit(name string, sets []string, sampleRate float64, fftSize int) (effectchain.Descriptor, effectchain.Params, *spectrum.Response, error) {
	d, c, err := unitChain(name, sets, sampleRate)
	if err != nil {
		return d, effectchain.Params{}, nil, err
	}

	if d.Inputs == 0 {
		return d, c.Params(0), nil, nil
	}

	resp, err := spectrum.Measure(firstChannel(c), fftSize, sampleRate)
	if err != nil {
		return d, c.Params(0), nil, err
	}

	return d, c.Params(0), resp, nil
}

// measureDistortion drives the unit with a sine of thdAmplitude at freqHz,
// lets it settle for thdSettle seconds, and analyses the next n samples.
func measureDistortion(name string, sets []string, sampleRate, freqHz float64, n int) (spectrum.Distortion, error) {
	d, c, err := unitChain(name, sets, sampleRate)
	if err != nil {
		return spectrum.Distortion{}, err
	}
	if d.Inputs == 0 {
		return spectrum.Distortion{}, fmt.Errorf("%w: %s has no input", errUsage, name)
	}

	settle := int(thdSettle * sampleRate)
	in := make([]float64, settle+n)
	for i := range in {
		in[i] = thdAmplitude * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRate)
	}
	out := make([]float64, len(in))

	if err := firstChannel(c)(in, out); err != nil {
		return spectrum.Distortion{}, err
	}

	return spectrum.MeasureTHD(out[settle:], sampleRate, freqHz, thdHarmonics)
}

func printUnit(w io.Writer, log logrus.FieldLogger, opts options) error {
	d, params, resp, err := measureUnit(opts.unit, opts.sets, opts.rate, opts.fft)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s (%d in, %d out)\n\n", d.Name, d.Description, d.Inputs, d.Outputs)

	tw := newTable(w)
	fmt.Fprintf(tw, "Control\tValue\tDefault\tRange\tUnit\n")
	for _, p := range d.Params {
		fmt.Fprintf(tw, "%s\t%g\t%g\t[%g, %g]\t%s\n", p.Name, params.GetNum(p.Name, p.Default), p.Default, p.Min, p.Max, p.Unit)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if resp == nil {
		_, err := fmt.Fprintf(w, "\ngenerator: no transfer function\n")
		return err
	}

	log.WithFields(logrus.Fields{"fft": opts.fft, "rate": opts.rate}).Debug("measured impulse response")

	fmt.Fprintf(w, "\nResponse at %g Hz (%d-point FFT):\n", opts.rate, opts.fft)

	gd := resp.GroupDelay()
	tw = newTable(w)
	fmt.Fprintf(tw, "Freq [Hz]\tGain [dB]\tGroup delay [samples]\n")

	for _, f := range responsePoints {
		if f >= opts.rate/2 {
			break
		}

		k := int(math.Round(f * float64(opts.fft) / opts.rate))
		fmt.Fprintf(tw, "%g\t%.2f\t%.2f\n", f, resp.At(f), gd[k])
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	peak, peakHz := peakOf(resp)
	fmt.Fprintf(w, "\nPeak: %.2f dB at %.1f Hz\n", peak, peakHz)

	if hz, err := resp.Crossing(peak-3, 0); err == nil {
		fmt.Fprintf(w, "-3 dB crossing: %.1f Hz\n", hz)
	} else {
		fmt.Fprintf(w, "-3 dB crossing: none\n")
	}

	if opts.thd > 0 {
		return printDistortion(w, opts)
	}

	return nil
}

func printDistortion(w io.Writer, opts options) error {
	dist, err := measureDistortion(opts.unit, opts.sets, opts.rate, opts.thd, opts.fft)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nDistortion of a %g Hz sine at %g:\n", opts.thd, thdAmplitude)
	fmt.Fprintf(w, "  fundamental %.1f Hz, amplitude %.4f\n", dist.FundamentalHz, dist.Amplitude)
	fmt.Fprintf(w, "  THD %.4f%% (%.1f dB), THD+N %.4f%% (%.1f dB)\n",
		100*dist.THD, dist.THDDB(), 100*dist.THDN, dist.THDNDB())

	tw := newTable(w)
	fmt.Fprintf(tw, "Harmonic\tLevel [dB]\n")
	for i, h := range dist.Harmonics {
		fmt.Fprintf(tw, "%d\t%.1f\n", i+2, core.LinearToDB(h))
	}

	return tw.Flush()
}

func peakOf(resp *spectrum.Response) (float64, float64) {
	db := resp.MagnitudeDB()
	best := 0
	for k, v := range db {
		if v > db[best] {
			best = k
		}
	}

	return db[best], resp.FrequencyHz(best)
}

type lpcReport struct {
	sampleRate int
	analyzer   *lpc.Analyzer
	poles      []complex128
	formants   []lpc.Formant
}

// analyzeFrame runs a Hamming-windowed analysis on the first channel of clip.
func analyzeFrame(clip *audioio.Clip, at, frameMs float64, order int) (*lpcReport, error) {
	fs := float64(clip.SampleRate)
	start := int(math.Round(at * fs))
	n := int(math.Round(frameMs / 1000 * fs))

	if start+n > clip.Frames() {
		return nil, fmt.Errorf("%w: frame [%d, %d) beyond %d frames", errUsage, start, start+n, clip.Frames())
	}

	an, err := lpc.NewAnalyzer(lpc.WithOrder(order), lpc.WithWindow(window.TypeHamming))
	if err != nil {
		return nil, err
	}

	if err := an.Analyze(clip.Channels[0][start : start+n]); err != nil {
		return nil, err
	}

	poles, err := lpc.Poles(an.Coefficients())
	if err != nil {
		return nil, err
	}

	formants, err := lpc.Formants(an.Coefficients(), fs)
	if err != nil {
		return nil, err
	}

	return &lpcReport{sampleRate: clip.SampleRate, analyzer: an, poles: poles, formants: formants}, nil
}

func printLPC(w io.Writer, log logrus.FieldLogger, opts options) error {
	audioio.Logger = log

	clip, err := audioio.Decode(opts.lpc)
	if err != nil {
		return err
	}

	rep, err := analyzeFrame(clip, opts.at, opts.frameMs, opts.order)
	if err != nil {
		return err
	}

	an := rep.analyzer
	fmt.Fprintf(w, "Order %d at %.3fs (%.1f ms frame, %d Hz)\n", an.Order(), opts.at, opts.frameMs, rep.sampleRate)
	fmt.Fprintf(w, "RMS %.2f dB, prediction gain %.4f\n\n", 20*math.Log10(max(an.RMS(), 1e-15)), an.Gain())

	tw := newTable(w)
	fmt.Fprintf(tw, "k\ta[k]\tReflection\n")
	for k, a := range an.Coefficients() {
		fmt.Fprintf(tw, "%d\t%.5f\t%.5f\n", k+1, a, an.Reflection()[k])
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPoles:\n")
	tw = newTable(w)
	fmt.Fprintf(tw, "|z|\tAngle [Hz]\n")
	for _, z := range rep.poles {
		fmt.Fprintf(tw, "%.5f\t%.1f\n", cmplx.Abs(z), cmplx.Phase(z)*float64(rep.sampleRate)/(2*math.Pi))
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nFormants:\n")
	tw = newTable(w)
	fmt.Fprintf(tw, "Freq [Hz]\tBandwidth [Hz]\tRadius\n")
	for _, f := range rep.formants {
		fmt.Fprintf(tw, "%.1f\t%.1f\t%.5f\n", f.FrequencyHz, f.BandwidthHz, f.Radius)
	}

	return tw.Flush()
}

type windowEntry struct {
	name string
	typ  window.Type
	opts []window.Option
}

var windows = []windowEntry{
	{"rectangular", window.TypeRectangular, nil},
	{"triangle", window.TypeTriangle, nil},
	{"hamming", window.TypeHamming, nil},
	{"blackman", window.TypeBlackman, nil},
	{"kaiser (beta=8.6)", window.TypeKaiser, []window.Option{window.WithBeta(8.6)}},
}

type windowStats struct {
	coherentGain float64
	enbw         float64 // equivalent noise bandwidth in bins
	bw3dB        float64 // full -3 dB width in bins
}

// measureWindow transforms the periodic window with 16x zero padding; with
// the sample rate set to the window length the response is in bins.
func measureWindow(e windowEntry, size int) (windowStats, error) {
	opts := append([]window.Option{window.WithPeriodic()}, e.opts...)
	w := window.Generate(e.typ, size, opts...)

	var sum, sumSq float64
	for _, v := range w {
		sum += v
		sumSq += v * v
	}

	fftSize := 16
	for fftSize < 16*size {
		fftSize <<= 1
	}

	resp, err := spectrum.MagnitudeResponse(w, fftSize, float64(size))
	if err != nil {
		return windowStats{}, err
	}

	half, err := resp.Crossing(resp.At(0)-3, 0)
	if err != nil {
		return windowStats{}, err
	}

	return windowStats{
		coherentGain: sum / float64(size),
		enbw:         float64(size) * sumSq / (sum * sum),
		bw3dB:        2 * half,
	}, nil
}

func printWindows(w io.Writer, size int) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\n")

	for _, e := range windows {
		s, err := measureWindow(e, size)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\n", e.name, size, s.coherentGain, s.enbw, s.bw3dB)
	}

	return tw.Flush()
}
