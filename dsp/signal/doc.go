// Package signal provides oscillator and impulse-train units plus a small
// generator of deterministic test signals.
//
// [Sine] ramps its frequency across each block. [ImpulseGenerator] emits
// band-limited impulses at fractional periods with optional random jitter,
// and [VoiceImpulseGenerator] takes its period from a pitch estimate of an
// input signal.
package signal
