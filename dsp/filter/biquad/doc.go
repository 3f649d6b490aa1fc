// Package biquad provides the recursive filter sections that the effect
// units cascade: a second-order [Section], a [FirstOrder] single-pole
// section, and a fourth-order [Section4] used by band cascades.
//
// All sections run the Direct Form II recursion
//
//	w = x - a1*z1 - a2*z2 - ...
//	y = b0*w + b1*z1 + b2*z2 + ...
//
// with a0 normalised to 1. Coefficients may be replaced between blocks with
// SetCoefficients while the state is kept, which is how the units apply
// per-block control changes without clicks.
//
// Coefficient design lives with the units (dsp/filter/cascade,
// dsp/filter/rbj). [K] is the shared bilinear-transform helper.
package biquad
