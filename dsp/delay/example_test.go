package delay_test

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/delay"
	"github.com/cwbudde/algo-fx/dsp/interp"
)

func ExampleDelay() {
	d, err := delay.NewDelay(1000)
	if err != nil {
		panic(err)
	}

	in := make([]float64, 80)
	in[0] = 1
	out := make([]float64, len(in))
	_ = d.Run(delay.DelayControls{DelayMs: 25, Wet: 1, Feedback: 0.5}, in, out)

	lat := interp.Taps / 2
	fmt.Printf("%.2f %.2f\n", out[lat+25], out[lat+50])

	// Output:
	// 1.00 0.50
}
