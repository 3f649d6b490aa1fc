package core_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
		core.WithSeed(9),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d seed=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Seed)

	// Output:
	// sampleRate=44100 blockSize=256 seed=9
}

func ExampleCheckBlock() {
	in := make([]float64, 3)
	out := make([]float64, 4)

	err := core.CheckBlock(out, in)
	fmt.Println(errors.Is(err, core.ErrLength))

	// Output:
	// true
}

func ExampleSemitonesToRatio() {
	fmt.Printf("%.3f %.3f\n", core.SemitonesToRatio(12), core.SemitonesToRatio(-12))

	// Output:
	// 2.000 0.500
}
