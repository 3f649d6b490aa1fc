// Package modulation provides LFO- and random-walk-modulated filter effects.
//
// Included units:
//   - Phaser: cascade of first-order phase stages swept by a sine LFO.
//   - Phaser2: cascade of second-order allpass stages with a fixed pole
//     radius and an LFO-swept pole angle.
//   - LFOBandpass: two-pole resonator with an LFO-swept centre.
//   - LFOBandpass5: five resonators, each with its own LFO, summed.
//   - RandomBandpass5: five resonators whose centres glide between random
//     targets drawn from an instance-owned generator.
//
// Sweeps follow f = f0 + (0.5 + 0.5·sin θ)·amount, so the LFO only ever
// raises the centre above f0.
package modulation
