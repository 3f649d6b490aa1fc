package cascade

import (
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
)

// EllipticStage is one second-order factor of the normalised elliptical
// lowpass prototype:
//
//	H(s) = (s² + Num0) / (s² + Den1·s + Den0)
type EllipticStage struct {
	Den1, Den0, Num0 float64
}

// NumEllipticStages is the fixed stage count of the elliptical units.
const NumEllipticStages = 5

// EllipticGain normalises the cascade to unity passband gain.
const EllipticGain = 4.99999955577744314e-04

var ellipticPrototype = [NumEllipticStages]EllipticStage{
	{7.8737555808994752e-01, 2.2612518911682630e-01, 2.2200334289017736e+01},
	{5.1505026950754629e-01, 5.2384818097805030e-01, 3.1479567020628543e+00},
	{2.5623536548281067e-01, 8.0399425385984968e-01, 1.6701585797026577e+00},
	{1.0696635942803545e-01, 9.5743148258236688e-01, 1.3088362651981131e+00},
	{2.8485290324588155e-02, 1.0177492800942483e+00, 1.2027898974572733e+00},
}

// EllipticPrototype returns a copy of the prototype table.
func EllipticPrototype() [NumEllipticStages]EllipticStage {
	return ellipticPrototype
}

// EllipticLowpassSection maps a prototype stage onto a lowpass section.
func EllipticLowpassSection(k float64, st EllipticStage) biquad.Coefficients {
	k2 := k * k
	a0 := k*st.Den1 + st.Den0 + k2
	b0 := st.Num0 + k2
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: (2*st.Num0 - 2*k2) / a0,
		B2: b0 / a0,
		A1: (2*st.Den0 - 2*k2) / a0,
		A2: (-k*st.Den1 + st.Den0 + k2) / a0,
	}
}

// EllipticHighpassSection maps a prototype stage onto a highpass section.
func EllipticHighpassSection(k float64, st EllipticStage) biquad.Coefficients {
	k2 := k * k
	a0 := k*st.Den1 + k2*st.Den0 + 1
	b0 := k2*st.Num0 + 1
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: (2 - 2*k2*st.Num0) / a0,
		B2: b0 / a0,
		A1: (2 - 2*k2*st.Den0) / a0,
		A2: (-k*st.Den1 + k2*st.Den0 + 1) / a0,
	}
}

// EllipticBandpassSection maps a prototype stage onto a fourth-order
// band-pass section.
func EllipticBandpassSection(k, q float64, st EllipticStage) biquad.Coefficients4 {
	k2 := k * k
	k3 := k2 * k
	k4 := k2 * k2
	q2 := q * q
	p := (k4 + 2*k2 + 1) * q2
	r := (6*k4 - 4*k2 + 6) * q2
	s := (4 - 4*k4) * q2
	a := [5]float64{
		(k3+k)*q*st.Den1 + k2*st.Den0 + p,
		(2*k-2*k3)*q*st.Den1 + s,
		r - 2*k2*st.Den0,
		(2*k3-2*k)*q*st.Den1 + s,
		-(k3+k)*q*st.Den1 + k2*st.Den0 + p,
	}
	b0 := k2*st.Num0 + p
	b := [5]float64{b0, s, r - 2*k2*st.Num0, s, b0}
	return normalise4(b, a)
}

// EllipticBandstopSection maps a prototype stage onto a fourth-order
// band-stop section.
func EllipticBandstopSection(k, q float64, st EllipticStage) biquad.Coefficients4 {
	k2 := k * k
	k3 := k2 * k
	k4 := k2 * k2
	q2 := q * q
	p := (k4 + 2*k2 + 1) * q2
	r := (6*k4 - 4*k2 + 6) * q2
	s := (4 - 4*k4) * q2
	a := [5]float64{
		(k3+k)*q*st.Den1 + k2 + p*st.Den0,
		(2*k-2*k3)*q*st.Den1 + s*st.Den0,
		r*st.Den0 - 2*k2,
		(2*k3-2*k)*q*st.Den1 + s*st.Den0,
		-(k3+k)*q*st.Den1 + k2 + p*st.Den0,
	}
	b0 := k2 + p*st.Num0
	b := [5]float64{b0, s * st.Num0, r*st.Num0 - 2*k2, s * st.Num0, b0}
	return normalise4(b, a)
}

// EllipticControls is the per-block control snapshot of an elliptical unit.
type EllipticControls struct {
	FrequencyHz float64
	// Q is the centre frequency over bandwidth; band units only.
	Q float64
}

// EllipticLP is a fixed tenth-order elliptical lowpass.
type EllipticLP struct {
	sampleRate float64
	sections   [NumEllipticStages]biquad.Section
}

// NewEllipticLP returns an elliptical lowpass for the given sample rate.
func NewEllipticLP(sampleRate float64) (*EllipticLP, error) {
	if err := core.ValidateSampleRate("elliptical lowpass", sampleRate); err != nil {
		return nil, err
	}
	return &EllipticLP{sampleRate: sampleRate}, nil
}

// Run filters len(out) samples of in.
func (f *EllipticLP) Run(ctrl EllipticControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	k := biquad.K(ctrl.FrequencyHz, f.sampleRate)
	for i := range f.sections {
		f.sections[i].SetCoefficients(EllipticLowpassSection(k, ellipticPrototype[i]))
	}
	runSections(f.sections[:], in, out)
	return nil
}

// Reset clears all section state.
func (f *EllipticLP) Reset() { resetSections(f.sections[:]) }

// Response returns the cascade response for the last Run's controls.
func (f *EllipticLP) Response(freqHz float64) complex128 {
	h := complex(EllipticGain, 0)
	for i := range f.sections {
		h *= f.sections[i].Response(freqHz, f.sampleRate)
	}
	return h
}

// EllipticHP is a fixed tenth-order elliptical highpass.
type EllipticHP struct {
	sampleRate float64
	sections   [NumEllipticStages]biquad.Section
}

// NewEllipticHP returns an elliptical highpass for the given sample rate.
func NewEllipticHP(sampleRate float64) (*EllipticHP, error) {
	if err := core.ValidateSampleRate("elliptical highpass", sampleRate); err != nil {
		return nil, err
	}
	return &EllipticHP{sampleRate: sampleRate}, nil
}

// Run filters len(out) samples of in.
func (f *EllipticHP) Run(ctrl EllipticControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	k := biquad.K(ctrl.FrequencyHz, f.sampleRate)
	for i := range f.sections {
		f.sections[i].SetCoefficients(EllipticHighpassSection(k, ellipticPrototype[i]))
	}
	runSections(f.sections[:], in, out)
	return nil
}

// Reset clears all section state.
func (f *EllipticHP) Reset() { resetSections(f.sections[:]) }

// Response returns the cascade response for the last Run's controls.
func (f *EllipticHP) Response(freqHz float64) complex128 {
	h := complex(EllipticGain, 0)
	for i := range f.sections {
		h *= f.sections[i].Response(freqHz, f.sampleRate)
	}
	return h
}

// EllipticBP is a fixed elliptical band-pass built from five fourth-order
// sections.
type EllipticBP struct {
	sampleRate float64
	sections   [NumEllipticStages]biquad.Section4
}

// NewEllipticBP returns an elliptical band-pass for the given sample rate.
func NewEllipticBP(sampleRate float64) (*EllipticBP, error) {
	if err := core.ValidateSampleRate("elliptical bandpass", sampleRate); err != nil {
		return nil, err
	}
	return &EllipticBP{sampleRate: sampleRate}, nil
}

// Run filters len(out) samples of in.
func (f *EllipticBP) Run(ctrl EllipticControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	k := biquad.K(ctrl.FrequencyHz, f.sampleRate)
	for i := range f.sections {
		f.sections[i].SetCoefficients(EllipticBandpassSection(k, ctrl.Q, ellipticPrototype[i]))
	}
	runSections4(f.sections[:], in, out)
	return nil
}

// Reset clears all section state.
func (f *EllipticBP) Reset() { resetSections4(f.sections[:]) }

// Response returns the cascade response for the last Run's controls.
func (f *EllipticBP) Response(freqHz float64) complex128 {
	h := complex(EllipticGain, 0)
	for i := range f.sections {
		h *= f.sections[i].Response(freqHz, f.sampleRate)
	}
	return h
}

// EllipticBS is a fixed elliptical band-stop built from five fourth-order
// sections.
type EllipticBS struct {
	sampleRate float64
	sections   [NumEllipticStages]biquad.Section4
}

// NewEllipticBS returns an elliptical band-stop for the given sample rate.
func NewEllipticBS(sampleRate float64) (*EllipticBS, error) {
	if err := core.ValidateSampleRate("elliptical bandstop", sampleRate); err != nil {
		return nil, err
	}
	return &EllipticBS{sampleRate: sampleRate}, nil
}

// Run filters len(out) samples of in.
func (f *EllipticBS) Run(ctrl EllipticControls, in, out []float64) error {
	if err := core.CheckBlock(out, in); err != nil {
		return err
	}
	k := biquad.K(ctrl.FrequencyHz, f.sampleRate)
	for i := range f.sections {
		f.sections[i].SetCoefficients(EllipticBandstopSection(k, ctrl.Q, ellipticPrototype[i]))
	}
	runSections4(f.sections[:], in, out)
	return nil
}

// Reset clears all section state.
func (f *EllipticBS) Reset() { resetSections4(f.sections[:]) }

// Response returns the cascade response for the last Run's controls.
func (f *EllipticBS) Response(freqHz float64) complex128 {
	h := complex(EllipticGain, 0)
	for i := range f.sections {
		h *= f.sections[i].Response(freqHz, f.sampleRate)
	}
	return h
}

func runSections(s []biquad.Section, in, out []float64) {
	for i := range out {
		x := in[i]
		for j := range s {
			x = s[j].ProcessSample(x)
		}
		out[i] = x * EllipticGain
	}
}

func runSections4(s []biquad.Section4, in, out []float64) {
	for i := range out {
		x := in[i]
		for j := range s {
			x = s[j].ProcessSample(x)
		}
		out[i] = x * EllipticGain
	}
}

func resetSections(s []biquad.Section) {
	for i := range s {
		s[i].Reset()
	}
}

func resetSections4(s []biquad.Section4) {
	for i := range s {
		s[i].Reset()
	}
}
