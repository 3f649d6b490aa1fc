// Package spectrum measures the frequency response of effect units: it
// records an impulse response, transforms it with an FFT, and reads
// magnitude, phase, group delay, and cutoff frequencies off the bins.
package spectrum
