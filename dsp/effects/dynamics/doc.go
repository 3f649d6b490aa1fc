// Package dynamics provides a two-channel envelope-following compressor.
//
// Each channel runs its own peak follower with separate attack and decay
// coefficients. The static law maps the envelope level in dB through two
// ratios: RatioHi above the threshold and RatioLo below it, so the same
// unit compresses or expands depending on the settings.
package dynamics
