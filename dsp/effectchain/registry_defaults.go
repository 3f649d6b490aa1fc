package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/delay"
	"github.com/cwbudde/algo-fx/dsp/effects"
	"github.com/cwbudde/algo-fx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fx/dsp/effects/modulation"
	"github.com/cwbudde/algo-fx/dsp/effects/pitch"
	"github.com/cwbudde/algo-fx/dsp/effects/reverb"
	"github.com/cwbudde/algo-fx/dsp/filter/cascade"
	"github.com/cwbudde/algo-fx/dsp/filter/rbj"
	"github.com/cwbudde/algo-fx/dsp/lpc"
	"github.com/cwbudde/algo-fx/dsp/signal"
)

var (
	paramFreq  = Param{Name: "freqHz", Default: 1000, Min: 10, Max: 20000, Unit: "Hz"}
	paramQ     = Param{Name: "q", Default: 0.707, Min: 0.1, Max: 20}
	paramWet   = Param{Name: "wet", Default: 1, Min: -1, Max: 1}
	paramDry   = Param{Name: "dry", Default: 1, Min: 0, Max: 1}
	paramFb    = Param{Name: "feedback", Default: 0, Min: -1, Max: 1}
	paramLFO   = Param{Name: "lfoHz", Default: 0.5, Min: 0.001, Max: 10, Unit: "Hz"}
	paramGain  = Param{Name: "gainDB", Default: 0, Min: -60, Max: 24, Unit: "dB"}
	paramBwOct = Param{Name: "bwOct", Default: 1, Min: 0.1, Max: 4, Unit: "oct"}
)

// DefaultRegistry returns a Registry pre-populated with every built-in unit.
//
//nolint:funlen
func DefaultRegistry() *Registry {
	r := NewRegistry()

	registerCascades(r)
	registerRBJ(r)

	r.MustRegister(Descriptor{
		Name:        "delay",
		Description: "feedback delay line",
		Inputs:      1, Outputs: 1,
		Params: []Param{
			{Name: "delayMs", Default: 250, Min: 0, Max: delay.MaxDelayMs, Unit: "ms"},
			paramWet, paramDry, paramFb,
		},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := delay.NewDelay(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) delay.DelayControls {
				return delay.DelayControls{
					DelayMs:  p.GetNum("delayMs", 250),
					Wet:      p.GetNum("wet", 1),
					Dry:      p.GetNum("dry", 1),
					Feedback: p.GetNum("feedback", 0),
				}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "lfo-delay",
		Description: "delay line whose length is swept by a sine LFO",
		Inputs:      1, Outputs: 1,
		Params: []Param{
			{Name: "delayMs", Default: 250, Min: 0, Max: delay.MaxLFODelayMs, Unit: "ms"},
			paramWet, paramDry, paramFb, paramLFO,
			{Name: "lfoAmount", Default: 0.25, Min: 0, Max: 1},
		},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := delay.NewLFODelay(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) delay.LFODelayControls {
				return delay.LFODelayControls{
					DelayMs:        p.GetNum("delayMs", 250),
					Wet:            p.GetNum("wet", 1),
					Dry:            p.GetNum("dry", 1),
					Feedback:       p.GetNum("feedback", 0),
					LFOFrequencyHz: p.GetNum("lfoHz", 0.5),
					LFOAmount:      p.GetNum("lfoAmount", 0.25),
				}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "lfo-allpass",
		Description: "modulated allpass delay",
		Inputs:      1, Outputs: 1,
		Params: []Param{
			{Name: "delaySec", Default: 0.01, Min: 0, Max: delay.MaxAllpassDelaySec, Unit: "s"},
			{Name: "feedback", Default: 0.5, Min: 0, Max: 1},
			paramLFO,
			{Name: "lfoAmount", Default: 0.25, Min: 0, Max: 1},
		},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := delay.NewLFOAllpass(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) delay.LFOAllpassControls {
				return delay.LFOAllpassControls{
					DelaySec:       p.GetNum("delaySec", 0.01),
					Feedback:       p.GetNum("feedback", 0.5),
					LFOFrequencyHz: p.GetNum("lfoHz", 0.5),
					LFOAmount:      p.GetNum("lfoAmount", 0.25),
				}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "pitch-shift",
		Description: "two-grain crossfading pitch shifter",
		Inputs:      1, Outputs: 1,
		Params: []Param{{Name: "semitones", Default: 0, Min: -12, Max: 12, Unit: "st"}},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := pitch.NewShifter(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) pitch.Controls {
				return pitch.Controls{Semitones: p.GetNum("semitones", 0)}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "compressor",
		Description: "stereo-linked two-ratio compressor/expander",
		Inputs:      2, Outputs: 2,
		Params: []Param{
			{Name: "unityDB", Default: 0, Min: -96, Max: 0, Unit: "dB"},
			{Name: "ratioHi", Default: 1, Min: 0.01, Max: 100},
			{Name: "ratioLo", Default: 1, Min: 0.01, Max: 100},
			{Name: "thresholdDB", Default: -70, Min: -140, Max: 0, Unit: "dB"},
			{Name: "attackSec", Default: 0.07, Min: 0.001, Max: 5, Unit: "s"},
			{Name: "decaySec", Default: 0.07, Min: 0.001, Max: 5, Unit: "s"},
		},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := dynamics.NewCompressor(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return stereo(fx, func(p Params) dynamics.Controls {
				return dynamics.Controls{
					UnityDB:     p.GetNum("unityDB", 0),
					RatioHi:     p.GetNum("ratioHi", 1),
					RatioLo:     p.GetNum("ratioLo", 1),
					ThresholdDB: p.GetNum("thresholdDB", -70),
					AttackSec:   p.GetNum("attackSec", 0.07),
					DecaySec:    p.GetNum("decaySec", 0.07),
				}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "reverb",
		Description: "stereo allpass/comb reverb with randomised stage delays",
		Inputs:      2, Outputs: 2,
		Params: []Param{
			{Name: "mix", Default: 0.5, Min: 0, Max: 1},
			{Name: "allpassG", Default: 0.1, Min: 0.01, Max: 0.995},
			{Name: "t60Sec", Default: 1, Min: 1, Max: 1000, Unit: "s"},
			{Name: "allpasses", Default: reverb.MaxStages, Min: 0, Max: reverb.MaxStages},
			{Name: "combs", Default: reverb.MaxStages, Min: 0, Max: reverb.MaxStages},
		},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := reverb.NewReverb(ctx.SampleRate, reverb.WithSeed(ctx.Seed))
			if err != nil {
				return nil, err
			}

			return stereo(fx, func(p Params) reverb.Controls {
				return reverb.Controls{
					Mix:       p.GetNum("mix", 0.5),
					AllpassG:  p.GetNum("allpassG", 0.1),
					T60Sec:    p.GetNum("t60Sec", 1),
					Allpasses: p.GetNum("allpasses", reverb.MaxStages),
					Combs:     p.GetNum("combs", reverb.MaxStages),
				}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "dc-remove",
		Description: "one-pole DC blocking highpass",
		Inputs:      1, Outputs: 1,
		Params: []Param{{Name: "freqHz", Default: 5, Min: 1, Max: 10, Unit: "Hz"}},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := effects.NewDCRemover(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) effects.DCRemoverControls {
				return effects.DCRemoverControls{FrequencyHz: p.GetNum("freqHz", 5)}
			}), nil
		},
	})
	r.MustRegister(Descriptor{
		Name:        "distortion",
		Description: "power-law waveshaper",
		Inputs:      1, Outputs: 1,
		Params: []Param{
			{Name: "shape", Default: 1, Min: 1, Max: 20},
			{Name: "preDB", Default: 0, Min: 0, Max: 96, Unit: "dB"},
			{Name: "postDB", Default: 0, Min: -48, Max: 0, Unit: "dB"},
		},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := effects.NewDistortion(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) effects.DistortionControls {
				return effects.DistortionControls{
					Waveshape:  p.GetNum("shape", 1),
					PreGainDB:  p.GetNum("preDB", 0),
					PostGainDB: p.GetNum("postDB", 0),
				}
			}), nil
		},
	})

	registerModulation(r)
	registerSources(r)

	return r
}

func registerCascades(r *Registry) {
	order := Param{Name: "order", Default: 2, Min: 1, Max: cascade.MaxOrder}

	butterworth := []struct {
		name string
		band bool
		new  func(float64) (monoUnit[cascade.ButterworthControls], error)
	}{
		{"butterworth-lp", false, func(fs float64) (monoUnit[cascade.ButterworthControls], error) { return cascade.NewButterworthLP(fs) }},
		{"butterworth-hp", false, func(fs float64) (monoUnit[cascade.ButterworthControls], error) { return cascade.NewButterworthHP(fs) }},
		{"butterworth-bp", true, func(fs float64) (monoUnit[cascade.ButterworthControls], error) { return cascade.NewButterworthBP(fs) }},
		{"butterworth-bs", true, func(fs float64) (monoUnit[cascade.ButterworthControls], error) { return cascade.NewButterworthBS(fs) }},
	}
	for _, u := range butterworth {
		params := []Param{paramFreq, order}
		if u.band {
			params = []Param{paramFreq, paramQ, order}
		}

		r.MustRegister(Descriptor{
			Name:        u.name,
			Description: fmt.Sprintf("Butterworth cascade up to order %d", cascade.MaxOrder),
			Inputs:      1, Outputs: 1,
			Params: params,
			Factory: func(ctx Context) (Runtime, error) {
				fx, err := u.new(ctx.SampleRate)
				if err != nil {
					return nil, err
				}

				return mono(fx, func(p Params) cascade.ButterworthControls {
					return cascade.ButterworthControls{
						FrequencyHz: p.GetNum("freqHz", paramFreq.Default),
						Q:           p.GetNum("q", paramQ.Default),
						Order:       p.GetNum("order", order.Default),
					}
				}), nil
			},
		})
	}

	elliptic := []struct {
		name string
		band bool
		new  func(float64) (monoUnit[cascade.EllipticControls], error)
	}{
		{"elliptic-lp", false, func(fs float64) (monoUnit[cascade.EllipticControls], error) { return cascade.NewEllipticLP(fs) }},
		{"elliptic-hp", false, func(fs float64) (monoUnit[cascade.EllipticControls], error) { return cascade.NewEllipticHP(fs) }},
		{"elliptic-bp", true, func(fs float64) (monoUnit[cascade.EllipticControls], error) { return cascade.NewEllipticBP(fs) }},
		{"elliptic-bs", true, func(fs float64) (monoUnit[cascade.EllipticControls], error) { return cascade.NewEllipticBS(fs) }},
	}
	for _, u := range elliptic {
		params := []Param{paramFreq}
		if u.band {
			params = []Param{paramFreq, paramQ}
		}

		r.MustRegister(Descriptor{
			Name:        u.name,
			Description: fmt.Sprintf("%d-stage elliptical cascade", cascade.NumEllipticStages),
			Inputs:      1, Outputs: 1,
			Params: params,
			Factory: func(ctx Context) (Runtime, error) {
				fx, err := u.new(ctx.SampleRate)
				if err != nil {
					return nil, err
				}

				return mono(fx, func(p Params) cascade.EllipticControls {
					return cascade.EllipticControls{
						FrequencyHz: p.GetNum("freqHz", paramFreq.Default),
						Q:           p.GetNum("q", paramQ.Default),
					}
				}), nil
			},
		})
	}
}

func registerRBJ(r *Registry) {
	for _, kind := range rbj.Kinds() {
		var params []Param
		switch kind {
		case rbj.KindBandpassBW:
			params = []Param{paramFreq, paramBwOct, paramGain}
		case rbj.KindPeakingEQ:
			params = []Param{paramFreq, paramBwOct, paramGain}
		case rbj.KindLowShelf, rbj.KindHighShelf:
			params = []Param{paramFreq, paramGain}
		default:
			params = []Param{paramFreq, paramQ, paramGain}
		}

		r.MustRegister(Descriptor{
			Name:        "rbj-" + kind.String(),
			Description: "cookbook " + kind.String() + " biquad",
			Inputs:      1, Outputs: 1,
			Params: params,
			Factory: func(ctx Context) (Runtime, error) {
				fx, err := rbj.New(kind, ctx.SampleRate)
				if err != nil {
					return nil, err
				}

				return mono(fx, func(p Params) rbj.Controls {
					return rbj.Controls{
						FrequencyHz:  p.GetNum("freqHz", paramFreq.Default),
						Q:            p.GetNum("q", paramQ.Default),
						BandwidthOct: p.GetNum("bwOct", paramBwOct.Default),
						GainDB:       p.GetNum("gainDB", paramGain.Default),
					}
				}), nil
			},
		})
	}
}
