package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator(core.WithSampleRate(1000))
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	if math.Abs(x[4]) < 1e-12 {
		x[4] = 0
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleNormalize() {
	left := []float64{-0.5, 0.25, 1}
	right := []float64{0.5, 0, -0.25}

	gain, err := signal.Normalize(0.8, left, right)
	if err != nil {
		panic(err)
	}
	fmt.Printf("gain %.2f: %.2f %.2f %.2f | %.2f %.2f %.2f\n",
		gain, left[0], left[1], left[2], right[0], right[1], right[2])

	// Output:
	// gain 0.80: -0.40 0.20 0.80 | 0.40 0.00 -0.20
}

func ExampleImpulseGenerator() {
	g, err := signal.NewImpulseGenerator(8000)
	if err != nil {
		panic(err)
	}
	out := make([]float64, 250)
	_ = g.Run(signal.ImpulseControls{FrequencyHz: 80}, out)

	for i, v := range out {
		if math.Abs(v) > 0.5 {
			fmt.Println(i)
		}
	}
	// Output:
	// 116
	// 216
}
