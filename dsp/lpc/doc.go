// Package lpc implements linear prediction: autocorrelation, the
// Levinson-Durbin recursion, whitening and colouring filters, an
// autocorrelation pitch estimator, and a linear-prediction vocoder.
//
// Prediction coefficients follow the convention
//
//	x[n] ≈ a[0]·x[n-1] + a[1]·x[n-2] + ... + a[p-1]·x[n-p]
//
// so the prediction error filter is 1 - Σ a[k] z^-(k+1) and the all-pole
// synthesis filter is its inverse.
package lpc
