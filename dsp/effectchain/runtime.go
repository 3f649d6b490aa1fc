package effectchain

// Runtime is the per-node processing and configuration contract. Process
// reads len(in) input channels (none for generators) and fills every output
// channel; in and out never alias.
type Runtime interface {
	Configure(params Params) error
	Process(in, out [][]float64) error
	Reset()
}

type monoUnit[C any] interface {
	Run(ctrl C, in, out []float64) error
	Reset()
}

type generatorUnit[C any] interface {
	Run(ctrl C, out []float64) error
	Reset()
}

type stereoUnit[C any] interface {
	Run(ctrl C, inL, inR, outL, outR []float64) error
	Reset()
}

// monoRuntime adapts a one-in, one-out unit. The controls function maps a
// resolved parameter set to the unit's control snapshot.
type monoRuntime[C any] struct {
	fx       monoUnit[C]
	controls func(Params) C
	ctrl     C
}

func (r *monoRuntime[C]) Configure(p Params) error {
	r.ctrl = r.controls(p)
	return nil
}

func (r *monoRuntime[C]) Process(in, out [][]float64) error {
	return r.fx.Run(r.ctrl, in[0], out[0])
}

func (r *monoRuntime[C]) Reset() { r.fx.Reset() }

type generatorRuntime[C any] struct {
	fx       generatorUnit[C]
	controls func(Params) C
	ctrl     C
}

func (r *generatorRuntime[C]) Configure(p Params) error {
	r.ctrl = r.controls(p)
	return nil
}

func (r *generatorRuntime[C]) Process(_, out [][]float64) error {
	return r.fx.Run(r.ctrl, out[0])
}

func (r *generatorRuntime[C]) Reset() { r.fx.Reset() }

type stereoRuntime[C any] struct {
	fx       stereoUnit[C]
	controls func(Params) C
	ctrl     C
}

func (r *stereoRuntime[C]) Configure(p Params) error {
	r.ctrl = r.controls(p)
	return nil
}

func (r *stereoRuntime[C]) Process(in, out [][]float64) error {
	return r.fx.Run(r.ctrl, in[0], in[1], out[0], out[1])
}

func (r *stereoRuntime[C]) Reset() { r.fx.Reset() }

func mono[C any](fx monoUnit[C], controls func(Params) C) Runtime {
	return &monoRuntime[C]{fx: fx, controls: controls}
}

func generator[C any](fx generatorUnit[C], controls func(Params) C) Runtime {
	return &generatorRuntime[C]{fx: fx, controls: controls}
}

func stereo[C any](fx stereoUnit[C], controls func(Params) C) Runtime {
	return &stereoRuntime[C]{fx: fx, controls: controls}
}
