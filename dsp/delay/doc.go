// Package delay provides the cyclic sample buffer shared by the delay-based
// units and three effects built on it: a feedback delay, an LFO-modulated
// feedback delay and an LFO-modulated allpass.
//
// Fractional reads go through the windowed-sinc table in dsp/interp, so
// every read is centred Taps/2 samples behind the window start. The delay
// units therefore report both their dry and wet paths with a latency of
// interp.Taps/2 samples.
package delay
