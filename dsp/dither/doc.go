// Package dither converts normalized samples to integer PCM codes with
// optional dither noise and error-feedback noise shaping.
//
// A [Quantizer] with no options rounds to the nearest code and clips to the
// bit-depth range, which makes a decode/encode round trip exact. Adding
// dither trades that exactness for decorrelated quantization error:
//
//	q, _ := dither.NewQuantizer(16,
//		dither.WithType(dither.Triangular),
//		dither.WithShaping(dither.FirstOrder),
//		dither.WithSeed(1),
//	)
//	code, clipped := q.Quantize(0.25)
package dither
