package core

import (
	"errors"
	"fmt"
)

// ErrLength is returned when the buffers handed to a unit disagree in length.
var ErrLength = errors.New("buffer length mismatch")

// CheckBlock verifies that every buffer can hold len(out) frames.
// Units call it before touching any output so a bad call leaves out intact.
func CheckBlock(out []float64, bufs ...[]float64) error {
	for i, b := range bufs {
		if len(b) < len(out) {
			return fmt.Errorf("%w: buffer %d has %d samples, need %d", ErrLength, i, len(b), len(out))
		}
	}
	return nil
}
