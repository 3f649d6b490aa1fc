// Package cascade builds fixed-capacity chains of biquad sections whose
// coefficients are derived per block from the bilinear transform.
//
// The Butterworth units accept an order control in [1, MaxOrder]: even
// orders use N/2 second-order sections, odd orders add one single-pole
// section that runs first. Band-pass and band-stop variants substitute a
// fourth-order section per prototype pole pair.
//
// The elliptical units share one immutable five-stage prototype table and
// have no order control.
//
// Sections live in an [Arena] whose capacity is fixed at construction;
// requesting more sections than it holds is an error, not a resize.
package cascade
