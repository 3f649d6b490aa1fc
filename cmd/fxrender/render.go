package main

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/dsp/effectchain"
	"github.com/cwbudde/algo-fx/dsp/signal"
	"github.com/cwbudde/algo-fx/internal/audioio"
	"github.com/cwbudde/algo-fx/stats/level"
	"github.com/sirupsen/logrus"
)

const (
	genAmplitude    = 0.5
	normalizePeakDB = -1.0
)

type result struct {
	source string
	clip   *audioio.Clip
	peakDB float64
	levels []level.Levels
}

func render(opts options, log *logrus.Logger) (*result, error) {
	audioio.Logger = log

	clip, source, err := loadInput(opts)
	if err != nil {
		return nil, err
	}

	if opts.tail > 0 {
		appendSilence(clip, int(math.Round(opts.tail*float64(clip.SampleRate))))
	}

	reg := effectchain.DefaultRegistry()

	specs, err := buildSpecs(reg, opts.units, opts.sets)
	if err != nil {
		return nil, err
	}

	need, err := effectchain.RequiredChannels(reg, specs)
	if err != nil {
		return nil, err
	}

	if err := fitChannels(clip, need, log); err != nil {
		return nil, err
	}

	ctx := effectchain.Context{SampleRate: float64(clip.SampleRate), Seed: opts.seed}

	log.WithFields(logrus.Fields{
		"chain":    strings.Join(opts.units, ","),
		"channels": len(clip.Channels),
		"frames":   clip.Frames(),
		"block":    opts.block,
	}).Info("rendering")

	start := time.Now()
	if need == 0 {
		err = renderPerChannel(ctx, reg, specs, clip, opts.block)
	} else {
		err = renderLinked(ctx, reg, specs, clip, opts.block)
	}

	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	log.WithFields(logrus.Fields{
		"elapsed":  elapsed.Round(time.Microsecond),
		"realtime": clip.Duration().Seconds() / max(elapsed.Seconds(), 1e-9),
	}).Debug("render finished")

	if opts.norm {
		gain, err := signal.Normalize(core.DBToLinear(normalizePeakDB), clip.Channels...)
		if err != nil {
			return nil, err
		}
		log.WithField("gainDB", core.LinearToDB(gain)).Debug("normalized output")
	}

	levels := make([]level.Levels, len(clip.Channels))
	for ch, x := range clip.Channels {
		levels[ch] = level.Measure(x)
		if levels[ch].NonFinite > 0 {
			log.WithFields(logrus.Fields{
				"channel": ch,
				"samples": levels[ch].NonFinite,
			}).Warn("non-finite output samples")
		}
	}

	if err := audioio.WriteWAV(opts.out, clip, opts.bits, quantizerOptions(opts)...); err != nil {
		return nil, err
	}

	return &result{source: source, clip: clip, peakDB: core.LinearToDB(clip.Peak()), levels: levels}, nil
}

func quantizerOptions(opts options) []dither.Option {
	q := []dither.Option{dither.WithType(opts.dither), dither.WithSeed(opts.seed)}
	if opts.shape {
		q = append(q, dither.WithShaping(dither.FirstOrder))
	}
	return q
}

func loadInput(opts options) (*audioio.Clip, string, error) {
	if opts.in != "" {
		clip, err := audioio.Decode(opts.in)
		if err != nil {
			return nil, "", err
		}

		return clip, opts.in, nil
	}

	n := int(math.Round(opts.dur * float64(opts.rate)))
	gen := signal.NewGenerator(core.WithSampleRate(float64(opts.rate)), core.WithSeed(opts.seed))

	var data []float64
	var err error

	switch opts.gen {
	case "sine":
		data, err = gen.Sine(opts.freq, genAmplitude, n)
	case "noise":
		data, err = gen.WhiteNoise(genAmplitude, n)
	case "impulse":
		data, err = gen.Impulse(1, n, 0)
	case "silence":
		data = make([]float64, n)
	default:
		return nil, "", fmt.Errorf("%w: unknown -gen %q", errUsage, opts.gen)
	}

	if err != nil {
		return nil, "", err
	}

	clip := &audioio.Clip{SampleRate: opts.rate, Channels: [][]float64{data}}

	return clip, "generated " + opts.gen, nil
}

// buildSpecs assigns every -set control to each unit that declares it.
func buildSpecs(reg *effectchain.Registry, units, sets []string) ([]effectchain.NodeSpec, error) {
	specs := make([]effectchain.NodeSpec, len(units))
	descs := make([]effectchain.Descriptor, len(units))

	for i, name := range units {
		d, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", effectchain.ErrUnknownEffect, name)
		}

		descs[i] = d
		specs[i].Type = name
	}

	for _, s := range sets {
		name, v, err := effectchain.ParseAssignment(s)
		if err != nil {
			return nil, err
		}

		used := false
		for i, d := range descs {
			if _, ok := d.Param(name); ok {
				specs[i].Params.Set(name, v)
				used = true
			}
		}

		if !used {
			return nil, fmt.Errorf("%w: no unit in the chain has control %q", effectchain.ErrUnknownParam, name)
		}
	}

	return specs, nil
}

// fitChannels duplicates a mono clip for chains that need a stereo pair.
func fitChannels(clip *audioio.Clip, need int, log logrus.FieldLogger) error {
	if need == 0 || len(clip.Channels) == need {
		return nil
	}

	if len(clip.Channels) == 1 && need == 2 {
		log.Info("duplicating mono input for a stereo unit")
		clip.Channels = append(clip.Channels, append([]float64(nil), clip.Channels[0]...))

		return nil
	}

	return fmt.Errorf("%w: chain needs %d channels, input has %d",
		effectchain.ErrChannels, need, len(clip.Channels))
}

func appendSilence(clip *audioio.Clip, frames int) {
	for ch := range clip.Channels {
		clip.Channels[ch] = append(clip.Channels[ch], make([]float64, frames)...)
	}
}

// renderPerChannel runs an independent chain on every channel concurrently.
func renderPerChannel(ctx effectchain.Context, reg *effectchain.Registry, specs []effectchain.NodeSpec, clip *audioio.Clip, block int) error {
	chains := make([]*effectchain.Chain, len(clip.Channels))
	for ch := range chains {
		chCtx := ctx
		chCtx.Seed += uint64(ch) << 32

		c, err := effectchain.New(chCtx, reg, 1, specs)
		if err != nil {
			return err
		}

		chains[ch] = c
	}

	errs := make([]error, len(chains))

	var wg sync.WaitGroup
	for ch, c := range chains {
		wg.Add(1)

		go func() {
			defer wg.Done()

			errs[ch] = processBlocks(c, clip.Channels[ch:ch+1], block)
		}()
	}

	wg.Wait()

	for ch, err := range errs {
		if err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}
	}

	return nil
}

// renderLinked runs one chain over all channels for stereo units.
func renderLinked(ctx effectchain.Context, reg *effectchain.Registry, specs []effectchain.NodeSpec, clip *audioio.Clip, block int) error {
	c, err := effectchain.New(ctx, reg, len(clip.Channels), specs)
	if err != nil {
		return err
	}

	return processBlocks(c, clip.Channels, block)
}

func processBlocks(c *effectchain.Chain, channels [][]float64, block int) error {
	frames := len(channels[0])
	view := make([][]float64, len(channels))

	for start := 0; start < frames; start += block {
		end := min(start+block, frames)
		for ch := range channels {
			view[ch] = channels[ch][start:end]
		}

		if err := c.Process(view); err != nil {
			return fmt.Errorf("frames %d-%d: %w", start, end, err)
		}
	}

	return nil
}
