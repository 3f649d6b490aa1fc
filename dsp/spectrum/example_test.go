package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/spectrum"
)

func ExampleMagnitudeResponse() {
	// Two-tap average: a lowpass with a null at Nyquist.
	r, err := spectrum.MagnitudeResponse([]float64{0.5, 0.5}, 8, 8000)
	if err != nil {
		panic(err)
	}
	for k, m := range r.Magnitude() {
		fmt.Printf("%4.0f Hz %.3f\n", r.FrequencyHz(k), m)
	}
	// Output:
	//    0 Hz 1.000
	// 1000 Hz 0.924
	// 2000 Hz 0.707
	// 3000 Hz 0.383
	// 4000 Hz 0.000
}
