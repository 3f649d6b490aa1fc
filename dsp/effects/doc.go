// Package effects provides small stateless and single-pole effect units.
//
// Subpackages hold the larger units:
//   - github.com/cwbudde/algo-fx/dsp/effects/dynamics
//   - github.com/cwbudde/algo-fx/dsp/effects/modulation
//   - github.com/cwbudde/algo-fx/dsp/effects/pitch
//   - github.com/cwbudde/algo-fx/dsp/effects/reverb
//
// Units in this package:
//   - DCRemover: one-pole highpass with its -3 dB point at FrequencyHz.
//   - Distortion: power-law waveshaper with pre and post gain.
package effects
