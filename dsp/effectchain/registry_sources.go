package effectchain

import (
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/lpc"
	"github.com/cwbudde/algo-fx/dsp/signal"
)

func registerSources(r *Registry) {
	ampDB := Param{Name: "ampDB", Default: 0, Min: -96, Max: 0, Unit: "dB"}
	freq := Param{Name: "freqHz", Default: 440, Min: 0, Max: 20000, Unit: "Hz"}

	r.MustRegister(Descriptor{
		Name:        "sine",
		Description: "sine oscillator with per-block frequency ramps",
		Inputs:      0, Outputs: 1,
		Params: []Param{freq, ampDB},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := signal.NewSine(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return generator(fx, func(p Params) signal.SineControls {
				return signal.SineControls{
					FrequencyHz: p.GetNum("freqHz", freq.Default),
					AmplitudeDB: p.GetNum("ampDB", ampDB.Default),
				}
			}), nil
		},
	})

	impulseFreq := Param{Name: "freqHz", Default: 100, Min: 0, Max: 20000, Unit: "Hz"}
	jitter := Param{Name: "jitter", Default: 0, Min: 0, Max: 1}
	r.MustRegister(Descriptor{
		Name:        "impulse",
		Description: "band-limited impulse train",
		Inputs:      0, Outputs: 1,
		Params: []Param{impulseFreq, ampDB, jitter},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := signal.NewImpulseGenerator(ctx.SampleRate, core.WithSeed(ctx.Seed))
			if err != nil {
				return nil, err
			}

			return generator(fx, func(p Params) signal.ImpulseControls {
				return signal.ImpulseControls{
					FrequencyHz: p.GetNum("freqHz", impulseFreq.Default),
					AmplitudeDB: p.GetNum("ampDB", ampDB.Default),
					Jitter:      p.GetNum("jitter", jitter.Default),
				}
			}), nil
		},
	})

	r.MustRegister(Descriptor{
		Name:        "voice-impulse",
		Description: "impulse train following the pitch of the input",
		Inputs:      1, Outputs: 1,
		Params: []Param{ampDB},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := signal.NewVoiceImpulseGenerator(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return mono(fx, func(p Params) signal.VoiceImpulseControls {
				return signal.VoiceImpulseControls{AmplitudeDB: p.GetNum("ampDB", ampDB.Default)}
			}), nil
		},
	})

	r.MustRegister(Descriptor{
		Name:        "vocoder",
		Description: "linear-prediction vocoder: left carrier, right modulator",
		Inputs:      2, Outputs: 2,
		Params: []Param{{Name: "gain", Default: 1, Min: 0, Max: 10}},
		Factory: func(ctx Context) (Runtime, error) {
			fx, err := lpc.NewVocoder(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return stereo(fx, func(p Params) lpc.VocoderControls {
				c := lpc.DefaultVocoderControls()
				c.Gain = p.GetNum("gain", c.Gain)

				return c
			}), nil
		},
	})
}
