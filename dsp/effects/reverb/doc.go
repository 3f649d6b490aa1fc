// Package reverb provides a stereo Schroeder reverb with up to twenty
// allpass diffusers followed by up to twenty parallel feedback combs per
// channel.
//
// Stage delays are spread exponentially and jittered by the instance's
// random generator, so two reverbs built with the same seed are
// bit-identical and different seeds give decorrelated rooms.
package reverb
