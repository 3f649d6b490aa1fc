package effectchain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownParam is returned for controls a unit does not declare.
var ErrUnknownParam = errors.New("unknown parameter")

// Params holds the numeric controls of a single chain node.
type Params struct {
	Num map[string]float64
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Set stores v under key.
func (p *Params) Set(key string, v float64) {
	if p.Num == nil {
		p.Num = make(map[string]float64)
	}

	p.Num[key] = v
}

// ParseAssignment splits "name=value" into its parts.
func ParseAssignment(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("parameter %q: want name=value", s)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("parameter %q: %w", name, err)
	}

	return name, v, nil
}

// ParseParams parses a list of "name=value" assignments. Later entries win.
func ParseParams(assignments []string) (Params, error) {
	var p Params
	for _, a := range assignments {
		name, v, err := ParseAssignment(a)
		if err != nil {
			return Params{}, err
		}

		p.Set(name, v)
	}

	return p, nil
}
