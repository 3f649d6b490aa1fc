package effectchain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEffect is returned when a node references an unregistered unit.
	ErrUnknownEffect = errors.New("unknown effect type")

	// ErrChannels is returned when a chain cannot run with the channel count.
	ErrChannels = errors.New("unsupported channel count")
)

// NodeSpec names a unit and the controls it runs with.
type NodeSpec struct {
	Type   string
	Params Params
}

// node holds one runtime per channel for per-channel units and a single
// runtime for stereo units.
type node struct {
	desc     Descriptor
	params   Params
	runtimes []Runtime
}

// Chain runs nodes in series over blocks of a fixed channel count.
type Chain struct {
	ctx      Context
	channels int
	nodes    []*node
	scratch  [][]float64
}

// RequiredChannels returns 2 when any node consumes a stereo pair and 0
// when the chain runs on any channel count.
func RequiredChannels(registry *Registry, specs []NodeSpec) (int, error) {
	need := 0
	for _, spec := range specs {
		desc, ok := registry.Lookup(spec.Type)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownEffect, spec.Type)
		}

		if desc.Stereo() {
			need = 2
		}
	}

	return need, nil
}

// New builds and configures a chain for the given channel count.
func New(ctx Context, registry *Registry, channels int, specs []NodeSpec) (*Chain, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrChannels, channels)
	}

	c := &Chain{ctx: ctx, channels: channels}
	for i, spec := range specs {
		n, err := c.newNode(registry, spec)
		if err != nil {
			return nil, fmt.Errorf("effectchain: node %d (%s): %w", i, spec.Type, err)
		}

		c.nodes = append(c.nodes, n)
	}

	return c, nil
}

func (c *Chain) newNode(registry *Registry, spec NodeSpec) (*node, error) {
	desc, ok := registry.Lookup(spec.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, spec.Type)
	}

	params, err := desc.Resolve(spec.Params)
	if err != nil {
		return nil, err
	}

	instances := c.channels
	if desc.Stereo() {
		if c.channels != 2 {
			return nil, fmt.Errorf("%w: %s needs 2 channels, have %d", ErrChannels, desc.Name, c.channels)
		}

		instances = 1
	}

	n := &node{desc: desc, params: params}
	for ch := range instances {
		ctx := c.ctx
		ctx.Seed += uint64(ch)

		rt, err := desc.Factory(ctx)
		if err != nil {
			return nil, err
		}

		if err := rt.Configure(params); err != nil {
			return nil, err
		}

		n.runtimes = append(n.runtimes, rt)
	}

	return n, nil
}

// Channels returns the channel count the chain was built for.
func (c *Chain) Channels() int { return c.channels }

// Len returns the number of nodes.
func (c *Chain) Len() int { return len(c.nodes) }

// Params returns the resolved controls of node i.
func (c *Chain) Params(i int) Params { return c.nodes[i].params }

// Configure replaces the controls of node i.
func (c *Chain) Configure(i int, p Params) error {
	if i < 0 || i >= len(c.nodes) {
		return fmt.Errorf("effectchain: node %d out of range", i)
	}

	n := c.nodes[i]
	params, err := n.desc.Resolve(p)
	if err != nil {
		return err
	}

	for _, rt := range n.runtimes {
		if err := rt.Configure(params); err != nil {
			return err
		}
	}

	n.params = params

	return nil
}

// Reset clears the state of every node.
func (c *Chain) Reset() {
	for _, n := range c.nodes {
		for _, rt := range n.runtimes {
			rt.Reset()
		}
	}
}

// Process runs the block through every node in place. All channels must
// have the same length.
func (c *Chain) Process(block [][]float64) error {
	if len(block) != c.channels {
		return fmt.Errorf("%w: block has %d channels, chain %d", ErrChannels, len(block), c.channels)
	}

	frames := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) != frames {
			return fmt.Errorf("effectchain: ragged block: %d and %d frames", frames, len(ch))
		}
	}

	out := c.prepareScratch(frames)

	for i, n := range c.nodes {
		if err := n.process(block, out); err != nil {
			return fmt.Errorf("effectchain: node %d (%s): %w", i, n.desc.Name, err)
		}

		for ch := range block {
			copy(block[ch], out[ch])
		}
	}

	return nil
}

func (n *node) process(in, out [][]float64) error {
	if n.desc.Stereo() {
		return n.runtimes[0].Process(in, out)
	}

	for ch, rt := range n.runtimes {
		var src [][]float64
		if n.desc.Inputs > 0 {
			src = in[ch : ch+1]
		}

		if err := rt.Process(src, out[ch:ch+1]); err != nil {
			return err
		}
	}

	return nil
}

func (c *Chain) prepareScratch(frames int) [][]float64 {
	if c.scratch == nil {
		c.scratch = make([][]float64, c.channels)
	}

	for ch, buf := range c.scratch {
		if cap(buf) < frames {
			buf = make([]float64, frames)
		}

		c.scratch[ch] = buf[:frames]
	}

	return c.scratch
}
