package biquad

import "math"

// Coefficients holds the transfer function of one second-order section,
// normalised so that a0 = 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II processing.
type Section struct {
	Coefficients

	z1, z2 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// SetCoefficients replaces the coefficients and keeps the state.
func (s *Section) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	w := x - s.A1*s.z1 - s.A2*s.z2
	y := s.B0*w + s.B1*s.z1 + s.B2*s.z2
	s.z2 = s.z1
	s.z1 = w

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	z1, z2 := s.z1, s.z2

	for i, x := range buf {
		w := x - a1*z1 - a2*z2
		buf[i] = b0*w + b1*z1 + b2*z2
		z2 = z1
		z1 = w
	}

	s.z1, s.z2 = z1, z2
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.z1 = 0
	s.z2 = 0
}

// State returns the current delay-line state [z1, z2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.z1, s.z2}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.z1 = state[0]
	s.z2 = state[1]
}

// FirstOrderCoefficients holds a single-pole section normalised to a0 = 1:
//
//	H(z) = (B0 + B1 z^-1) / (1 + A1 z^-1)
type FirstOrderCoefficients struct {
	B0, B1 float64
	A1     float64
}

// FirstOrder is a single-pole section used by odd-order cascades.
type FirstOrder struct {
	FirstOrderCoefficients

	z1 float64
}

// SetCoefficients replaces the coefficients and keeps the state.
func (s *FirstOrder) SetCoefficients(c FirstOrderCoefficients) {
	s.FirstOrderCoefficients = c
}

// ProcessSample filters one input sample and returns the output.
func (s *FirstOrder) ProcessSample(x float64) float64 {
	w := x - s.A1*s.z1
	y := s.B0*w + s.B1*s.z1
	s.z1 = w

	return y
}

// ProcessBlock filters a block of samples in-place.
func (s *FirstOrder) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the state.
func (s *FirstOrder) Reset() { s.z1 = 0 }

// Coefficients4 holds a fourth-order section normalised to a0 = 1.
// B holds b0..b4 and A holds a1..a4.
type Coefficients4 struct {
	B [5]float64
	A [4]float64
}

// Section4 is a fourth-order Direct Form II section. Band-pass and
// band-stop cascades use one per pole pair of the lowpass prototype.
type Section4 struct {
	Coefficients4

	z [4]float64
}

// SetCoefficients replaces the coefficients and keeps the state.
func (s *Section4) SetCoefficients(c Coefficients4) {
	s.Coefficients4 = c
}

// ProcessSample filters one input sample and returns the output.
func (s *Section4) ProcessSample(x float64) float64 {
	w := x - s.A[0]*s.z[0] - s.A[1]*s.z[1] - s.A[2]*s.z[2] - s.A[3]*s.z[3]
	y := s.B[0]*w + s.B[1]*s.z[0] + s.B[2]*s.z[1] + s.B[3]*s.z[2] + s.B[4]*s.z[3]
	s.z[3] = s.z[2]
	s.z[2] = s.z[1]
	s.z[1] = s.z[0]
	s.z[0] = w

	return y
}

// ProcessBlock filters a block of samples in-place.
func (s *Section4) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the state.
func (s *Section4) Reset() { s.z = [4]float64{} }

// State returns the current delay-line state.
func (s *Section4) State() [4]float64 { return s.z }

// K returns the bilinear-transform frequency constant 1/tan(π·f/fs),
// which maps an analogue prototype normalised to 1 rad/s onto freqHz.
//
// freqHz is expected in (0, sampleRate/2); outside that range the result
// is returned as computed.
func K(freqHz, sampleRate float64) float64 {
	return 1 / math.Tan(math.Pi*freqHz/sampleRate)
}
