//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathLog10 uses log10(x) = ln(x) / ln(10).
func mathLog10(x float64) float64 {
	return approx.FastLog(x) / math.Ln10
}

// mathPower10 uses 10^x = e^(x·ln(10)).
func mathPower10(x float64) float64 {
	return approx.FastExp(x * math.Ln10)
}
