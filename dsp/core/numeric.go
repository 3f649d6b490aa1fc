package core

import "math"

// denormalFloor is the magnitude below which recursive filter state is
// flushed to zero.
const denormalFloor = 1e-30

// Clamp limits value to [lo, hi]; swapped bounds are reordered. NaN passes
// through.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsNaN(value) {
		return value
	}
	return max(lo, min(hi, value))
}

// ClampUnit limits x to [-1, 1].
func ClampUnit(x float64) float64 { return Clamp(x, -1, 1) }

// FlushDenormals returns 0 for |x| below 1e-30.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}
	return x
}

// DBToLinear converts a level in dB to an amplitude factor.
func DBToLinear(db float64) float64 { return math.Pow(10, db/20) }

// LinearToDB converts an amplitude to dB: -Inf for 0, NaN for negative
// values.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// WrapPhase folds an oscillator phase into [0, 2π).
func WrapPhase(theta float64) float64 {
	const twoPi = 2 * math.Pi
	if theta >= 0 && theta < twoPi {
		return theta
	}
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	if theta >= twoPi {
		return 0
	}
	return theta
}

// SemitonesToRatio converts a pitch offset in semitones to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 { return math.Exp2(semitones / 12) }
