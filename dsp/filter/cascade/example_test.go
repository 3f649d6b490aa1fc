package cascade_test

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/filter/cascade"
)

func ExampleButterworthLP() {
	f, err := cascade.NewButterworthLP(48000)
	if err != nil {
		panic(err)
	}

	in := make([]float64, 256)
	in[0] = 1
	out := make([]float64, len(in))
	if err := f.Run(cascade.ButterworthControls{FrequencyHz: 1000, Order: 4}, in, out); err != nil {
		panic(err)
	}

	fmt.Printf("order=%d cutoff=%.2f dB\n", f.Order(), cascade.MagnitudeDB(f.Response(1000)))
	// Output:
	// order=4 cutoff=-3.01 dB
}
