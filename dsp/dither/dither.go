package dither

import (
	"fmt"
	"strings"
)

// Type selects the probability density of the dither noise.
type Type int

const (
	// None rounds without noise.
	None Type = iota
	// Rectangular adds uniform noise of one LSB peak-to-peak.
	Rectangular
	// Triangular adds the difference of two uniform draws (TPDF).
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rect", "tpdf"}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("dither.Type(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool { return t >= 0 && t < typeCount }

// ParseType accepts the names printed by [Type.String], case-insensitively,
// plus "rectangular" and "triangular".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "rect", "rectangular":
		return Rectangular, nil
	case "tpdf", "triangular":
		return Triangular, nil
	}
	return None, fmt.Errorf("dither: unknown type %q", s)
}
