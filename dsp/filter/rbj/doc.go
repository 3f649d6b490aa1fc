// Package rbj implements the cookbook biquad designs and the effect units
// built on them: low/high-pass with output gain, two band-pass flavours,
// peaking EQ, shelves, and twelfth-order low/high-pass made of six
// identical sections.
//
// Frequencies are expected in (0, sampleRate/2) and Q, bandwidth and slope
// positive. Outside that range coefficients are returned as computed and
// stability is undefined.
package rbj
