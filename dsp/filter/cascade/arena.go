package cascade

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity is returned when a request exceeds an arena's capacity.
	ErrCapacity = errors.New("cascade: section capacity exceeded")
	// ErrOrder is returned for filter orders below 1 or non-finite values.
	ErrOrder = errors.New("cascade: invalid filter order")
)

// Arena is a fixed-capacity slab of filter sections with an explicit
// active count.
type Arena[S any] struct {
	items  []S
	active int
}

// NewArena allocates an arena holding up to capacity sections, none active.
func NewArena[S any](capacity int) *Arena[S] {
	return &Arena[S]{items: make([]S, max(capacity, 0))}
}

// NewArenaOf wraps prebuilt sections, none active. The arena takes
// ownership of items; use it for sections that own buffers of differing
// sizes.
func NewArenaOf[S any](items []S) *Arena[S] {
	return &Arena[S]{items: items}
}

// resetter is implemented by sections whose zero state is not their zero
// value, for example sections that own a delay buffer.
type resetter interface {
	Reset()
}

// Resize sets the number of active sections. Sections that become active
// start from zero state. Requests outside [0, Cap()] return an error and
// leave the arena unchanged.
func (a *Arena[S]) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d sections requested", ErrOrder, n)
	}
	if n > len(a.items) {
		return fmt.Errorf("%w: %d sections requested, capacity %d", ErrCapacity, n, len(a.items))
	}

	for i := a.active; i < n; i++ {
		a.clearItem(i)
	}
	a.active = n
	return nil
}

func (a *Arena[S]) clearItem(i int) {
	if r, ok := any(&a.items[i]).(resetter); ok {
		r.Reset()
		return
	}
	var zero S
	a.items[i] = zero
}

// Len returns the number of active sections.
func (a *Arena[S]) Len() int { return a.active }

// Cap returns the fixed capacity.
func (a *Arena[S]) Cap() int { return len(a.items) }

// At returns the i-th active section.
func (a *Arena[S]) At(i int) *S { return &a.Active()[i] }

// Active returns the active sections in evaluation order.
func (a *Arena[S]) Active() []S { return a.items[:a.active] }

// Reset zeroes every section, active or not.
func (a *Arena[S]) Reset() {
	for i := range a.items {
		a.clearItem(i)
	}
}
