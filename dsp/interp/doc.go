// Package interp provides the windowed-sinc fractional-delay primitive shared
// by the delay-based units.
//
// A [Table] holds [Steps] rows of [Taps] kernel coefficients, one row per
// super-sampled fractional offset. [DefaultTable] is the interpolation table
// read by delay lines, the pitch shifter, and the LFO effects;
// [ImpulseTable] is the band-limited impulse table used by the impulse
// generators. Both are built once and shared read-only by all instances.
package interp
