package biquad

import (
	"math/cmplx"

	"github.com/cwbudde/algo-fx/internal/polyroot"
)

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section numerator:
//
//	B0 + B1*z^-1 + B2*z^-2 = 0
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) IsStable() bool {
	p := c.Poles()
	return polyroot.MaxRadius(p[:]) < 1
}

// Pole returns the single pole of a first-order section.
func (c *FirstOrderCoefficients) Pole() complex128 {
	return complex(-c.A1, 0)
}

// IsStable reports whether the pole lies strictly inside the unit circle.
func (c *FirstOrderCoefficients) IsStable() bool {
	return cmplx.Abs(c.Pole()) < 1
}

// Poles returns the four poles of a fourth-order section.
func (c *Coefficients4) Poles() ([]complex128, error) {
	return polyroot.Monic(c.A[:])
}

// IsStable reports whether all four poles lie strictly inside the unit
// circle. A denominator the root finder cannot resolve counts as unstable.
func (c *Coefficients4) IsStable() bool {
	p, err := c.Poles()
	if err != nil {
		return false
	}
	return polyroot.MaxRadius(p) < 1
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
