package effectchain

// gainRuntime multiplies every sample by the "gain" control.
type gainRuntime struct {
	gain       float64
	resetCalls int
}

func (g *gainRuntime) Configure(params Params) error {
	g.gain = params.GetNum("gain", 1.0)

	return nil
}

func (g *gainRuntime) Process(in, out [][]float64) error {
	for i, v := range in[0] {
		out[0][i] = v * g.gain
	}

	return nil
}

func (g *gainRuntime) Reset() { g.resetCalls++ }

// addRuntime adds the "value" control to every sample.
type addRuntime struct {
	value float64
}

func (a *addRuntime) Configure(params Params) error {
	a.value = params.GetNum("value", 0)

	return nil
}

func (a *addRuntime) Process(in, out [][]float64) error {
	for i, v := range in[0] {
		out[0][i] = v + a.value
	}

	return nil
}

func (a *addRuntime) Reset() {}

// swapRuntime exchanges the two channels of a stereo pair.
type swapRuntime struct{}

func (swapRuntime) Configure(Params) error { return nil }

func (swapRuntime) Process(in, out [][]float64) error {
	copy(out[0], in[1])
	copy(out[1], in[0])

	return nil
}

func (swapRuntime) Reset() {}

// testRegistry returns a registry of the stub runtimes. Every gain runtime
// it creates is appended to *gains.
func testRegistry(gains *[]*gainRuntime) *Registry {
	r := NewRegistry()
	r.MustRegister(Descriptor{
		Name:   "gain",
		Inputs: 1, Outputs: 1,
		Params: []Param{{Name: "gain", Default: 1, Min: 0, Max: 10}},
		Factory: func(Context) (Runtime, error) {
			g := &gainRuntime{}
			if gains != nil {
				*gains = append(*gains, g)
			}

			return g, nil
		},
	})
	r.MustRegister(Descriptor{
		Name:   "add",
		Inputs: 1, Outputs: 1,
		Params: []Param{{Name: "value", Default: 0, Min: -1, Max: 1}},
		Factory: func(Context) (Runtime, error) {
			return &addRuntime{}, nil
		},
	})
	r.MustRegister(Descriptor{
		Name:   "swap",
		Inputs: 2, Outputs: 2,
		Factory: func(Context) (Runtime, error) {
			return swapRuntime{}, nil
		},
	})

	return r
}
