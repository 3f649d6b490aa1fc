// Package effectchain exposes every effect unit behind one uniform,
// parameter-map driven interface and runs serial chains of them over
// multi-channel blocks.
package effectchain

import (
	"errors"
	"fmt"
	"slices"
)

// Factory builds one Runtime instance for a node.
type Factory func(ctx Context) (Runtime, error)

// Param describes one named control of a unit.
type Param struct {
	Name     string
	Default  float64
	Min, Max float64
	Unit     string
}

// Descriptor is the catalogue entry of a unit.
type Descriptor struct {
	Name        string
	Description string
	// Inputs is 0 for generators, 1 for per-channel units and 2 for units
	// that consume a stereo pair.
	Inputs  int
	Outputs int
	Params  []Param
	Factory Factory
}

// Stereo reports whether the unit processes a channel pair as one instance.
func (d Descriptor) Stereo() bool { return d.Outputs == 2 }

// Param looks up a control by name.
func (d Descriptor) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// Resolve fills in defaults for every control missing from p and rejects
// names the unit does not declare.
func (d Descriptor) Resolve(p Params) (Params, error) {
	out := Params{Num: make(map[string]float64, len(d.Params))}
	for _, param := range d.Params {
		out.Num[param.Name] = param.Default
	}

	for name, v := range p.Num {
		if _, ok := d.Param(name); !ok {
			return Params{}, fmt.Errorf("%w: %s has no control %q", ErrUnknownParam, d.Name, name)
		}

		out.Num[name] = v
	}

	return out, nil
}

// Registry maps unit names to their descriptors.
type Registry struct {
	units map[string]Descriptor
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]Descriptor)}
}

// Register adds a unit descriptor.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.New("empty effect type")
	}

	if d.Factory == nil {
		return errors.New("nil factory")
	}

	if d.Outputs < 1 || d.Outputs > 2 || d.Inputs < 0 || d.Inputs > d.Outputs {
		return fmt.Errorf("%s: unsupported port layout %d -> %d", d.Name, d.Inputs, d.Outputs)
	}

	if _, exists := r.units[d.Name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, d.Name)
	}

	r.units[d.Name] = d

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(d Descriptor) {
	err := r.Register(d)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the descriptor for the given unit name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.units[name]
	return d, ok
}

// Names returns every registered unit name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Descriptors returns every descriptor sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.units))
	for _, name := range r.Names() {
		out = append(out, r.units[name])
	}

	return out
}
