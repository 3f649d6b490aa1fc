package interp_test

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/interp"
)

func ExampleSample() {
	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = float64(i)
	}

	fmt.Printf("%.3f\n", interp.Sample(buf, 0, 0))
	// Output:
	// 16.000
}
