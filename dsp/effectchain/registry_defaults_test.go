package effectchain

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	expectedTypes := []string{
		"butterworth-lp", "butterworth-hp", "butterworth-bp", "butterworth-bs",
		"elliptic-lp", "elliptic-hp", "elliptic-bp", "elliptic-bs",
		"rbj-lowpass", "rbj-highpass", "rbj-bandpass", "rbj-bandpass-bw",
		"rbj-peaking", "rbj-lowshelf", "rbj-highshelf",
		"rbj-lowpass12", "rbj-highpass12",
		"delay", "lfo-delay", "lfo-allpass", "pitch-shift",
		"compressor", "reverb", "dc-remove", "distortion",
		"phaser", "phaser2", "lfo-bandpass", "lfo-bandpass5", "random-bandpass5",
		"sine", "impulse", "voice-impulse", "vocoder",
	}

	reg := DefaultRegistry()

	for _, effectType := range expectedTypes {
		if _, ok := reg.Lookup(effectType); !ok {
			t.Errorf("DefaultRegistry missing effect type: %s", effectType)
		}
	}

	if got := len(reg.Names()); got != len(expectedTypes) {
		t.Errorf("DefaultRegistry has %d types, want %d", got, len(expectedTypes))
	}
}

func TestDefaultRegistryParamDefaultsInRange(t *testing.T) {
	t.Parallel()

	for _, d := range DefaultRegistry().Descriptors() {
		seen := map[string]bool{}

		for _, p := range d.Params {
			if seen[p.Name] {
				t.Errorf("%s: duplicate control %q", d.Name, p.Name)
			}

			seen[p.Name] = true

			if p.Min > p.Max || p.Default < p.Min || p.Default > p.Max {
				t.Errorf("%s.%s: default %v outside [%v, %v]", d.Name, p.Name, p.Default, p.Min, p.Max)
			}
		}
	}
}

// Every unit must build, accept its defaults, and produce finite output.
func TestDefaultRegistryRunsEveryUnit(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, d := range reg.Descriptors() {
		t.Run(d.Name, func(t *testing.T) {
			t.Parallel()

			channels := 1
			if d.Stereo() {
				channels = 2
			}

			c, err := New(Context{SampleRate: 44100, Seed: 7}, reg, channels, []NodeSpec{{Type: d.Name}})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			rng := rand.New(rand.NewPCG(1, 2))
			block := make([][]float64, channels)

			for range 8 {
				for ch := range block {
					block[ch] = make([]float64, 256)
					for i := range block[ch] {
						block[ch][i] = 0.5 * (2*rng.Float64() - 1)
					}
				}

				if err := c.Process(block); err != nil {
					t.Fatalf("Process: %v", err)
				}

				for ch := range block {
					for i, v := range block[ch] {
						if math.IsNaN(v) || math.IsInf(v, 0) {
							t.Fatalf("channel %d sample %d is %v", ch, i, v)
						}
					}
				}
			}
		})
	}
}

func TestDistortionDefaultsAreIdentity(t *testing.T) {
	t.Parallel()

	c, err := New(Context{SampleRate: 48000}, DefaultRegistry(), 1, []NodeSpec{{Type: "distortion"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	in := []float64{0, 0.25, -0.5, 1, -1}
	block := [][]float64{append([]float64(nil), in...)}

	if err := c.Process(block); err != nil {
		t.Fatalf("Process: %v", err)
	}

	for i := range in {
		if math.Abs(block[0][i]-in[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, block[0][i], in[i])
		}
	}
}

func TestSineGeneratorReplacesInput(t *testing.T) {
	t.Parallel()

	var p Params
	p.Set("freqHz", 12000)

	c, err := New(Context{SampleRate: 48000}, DefaultRegistry(), 2, []NodeSpec{{Type: "sine", Params: p}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	block := [][]float64{{9, 9, 9, 9}, {9, 9, 9, 9}}
	if err := c.Process(block); err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []float64{0, 1, 0, -1}
	for ch := range block {
		for i := range want {
			if math.Abs(block[ch][i]-want[i]) > 1e-9 {
				t.Fatalf("channel %d = %v, want %v", ch, block[ch], want)
			}
		}
	}
}
