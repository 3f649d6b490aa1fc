package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/effects/modulation"
)

var (
	paramBwHz      = Param{Name: "bwHz", Default: 100, Min: 10, Max: 1000, Unit: "Hz"}
	paramLFOAmount = Param{Name: "lfoAmount", Default: 500, Min: 0, Max: 5000, Unit: "Hz"}
	paramStages    = Param{Name: "stages", Default: 4, Min: 1, Max: modulation.MaxPhaserStages}
)

// indexed returns a copy of p named for band i (1-based).
func indexed(p Param, i int) Param {
	p.Name = fmt.Sprintf("%s%d", p.Name, i)
	return p
}

func bandControls(p Params, suffix string) modulation.BandControls {
	return modulation.BandControls{
		FrequencyHz:    p.GetNum("freqHz"+suffix, paramFreq.Default),
		BandwidthHz:    p.GetNum("bwHz"+suffix, paramBwHz.Default),
		GainDB:         p.GetNum("gainDB"+suffix, paramGain.Default),
		LFOFrequencyHz: p.GetNum("lfoHz"+suffix, paramLFO.Default),
		LFOAmount:      p.GetNum("lfoAmount"+suffix, paramLFOAmount.Default),
	}
}

//nolint:funlen
func registerModulation(r *Registry) {
	phaserFreq := Param{Name: "freqHz", Default: 400, Min: 10, Max: 5000, Unit: "Hz"}

	r.MustRegister(Descriptor{
		Name:        "phaser",
		Description: "first-order allpass phaser",
		Inputs:      1, Outputs: 1,
		Params: []Param{paramWet, phaserFreq, paramStages, paramLFO, paramLFOAmount},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := modulation.NewPhaser(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) modulation.PhaserControls {
				return modulation.PhaserControls{
					Wet:            p.GetNum("wet", paramWet.Default),
					FrequencyHz:    p.GetNum("freqHz", phaserFreq.Default),
					Stages:         p.GetNum("stages", paramStages.Default),
					LFOFrequencyHz: p.GetNum("lfoHz", paramLFO.Default),
					LFOAmount:      p.GetNum("lfoAmount", paramLFOAmount.Default),
				}
			}), nil
		},
	})

	radius := Param{Name: "radius", Default: 0.9, Min: 0.01, Max: 0.9995}
	r.MustRegister(Descriptor{
		Name:        "phaser2",
		Description: "second-order allpass phaser",
		Inputs:      1, Outputs: 1,
		Params: []Param{paramWet, phaserFreq, radius, paramStages, paramLFO, paramLFOAmount},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := modulation.NewPhaser2(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) modulation.Phaser2Controls {
				return modulation.Phaser2Controls{
					Wet:            p.GetNum("wet", paramWet.Default),
					FrequencyHz:    p.GetNum("freqHz", phaserFreq.Default),
					Radius:         p.GetNum("radius", radius.Default),
					Stages:         p.GetNum("stages", paramStages.Default),
					LFOFrequencyHz: p.GetNum("lfoHz", paramLFO.Default),
					LFOAmount:      p.GetNum("lfoAmount", paramLFOAmount.Default),
				}
			}), nil
		},
	})

	bandParams := []Param{paramFreq, paramBwHz, paramGain, paramLFO, paramLFOAmount}
	r.MustRegister(Descriptor{
		Name:        "lfo-bandpass",
		Description: "resonator with an LFO-swept centre",
		Inputs:      1, Outputs: 1,
		Params: bandParams,
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := modulation.NewLFOBandpass(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) modulation.BandControls {
				return bandControls(p, "")
			}), nil
		},
	})

	var params5 []Param
	for i := 1; i <= modulation.NumBands; i++ {
		for _, p := range bandParams {
			params5 = append(params5, indexed(p, i))
		}
	}
	r.MustRegister(Descriptor{
		Name:        "lfo-bandpass5",
		Description: "five resonators with independent LFOs",
		Inputs:      1, Outputs: 1,
		Params: params5,
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := modulation.NewLFOBandpass5(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) modulation.LFOBandpass5Controls {
				var c modulation.LFOBandpass5Controls
				for i := range c.Bands {
					c.Bands[i] = bandControls(p, fmt.Sprint(i+1))
				}

				return c
			}), nil
		},
	})

	amount := Param{Name: "amount", Default: 500, Min: 0, Max: 5000, Unit: "Hz"}
	period := Param{Name: "periodSec", Default: 0.1, Min: 0.01, Max: 1, Unit: "s"}
	periodMod := Param{Name: "periodModSec", Default: 0.05, Min: 0.01, Max: 1, Unit: "s"}
	randomParams := []Param{period, periodMod}
	for i := 1; i <= modulation.NumBands; i++ {
		for _, p := range []Param{paramFreq, paramBwHz, paramGain, amount} {
			randomParams = append(randomParams, indexed(p, i))
		}
	}
	r.MustRegister(Descriptor{
		Name:        "random-bandpass5",
		Description: "five resonators whose centres random-walk",
		Inputs:      1, Outputs: 1,
		Params: randomParams,
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := modulation.NewRandomBandpass5(ctx.SampleRate, core.WithSeed(ctx.Seed))
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) modulation.RandomBandpass5Controls {
				c := modulation.RandomBandpass5Controls{
					PeriodSec:    p.GetNum("periodSec", period.Default),
					PeriodModSec: p.GetNum("periodModSec", periodMod.Default),
				}
				for i := range c.Bands {
					s := fmt.Sprint(i + 1)
					c.Bands[i] = modulation.RandomBandControls{
						FrequencyHz: p.GetNum("freqHz"+s, paramFreq.Default),
						BandwidthHz: p.GetNum("bwHz"+s, paramBwHz.Default),
						GainDB:      p.GetNum("gainDB"+s, paramGain.Default),
						Amount:      p.GetNum("amount"+s, amount.Default),
					}
				}

				return c
			}), nil
		},
	})
}
