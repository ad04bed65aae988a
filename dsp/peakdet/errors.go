package peakdet

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned for an empty signal, a non-positive or
// non-finite delta, or x-coordinates whose length differs from the signal.
var ErrInvalidArgument = errors.New("peakdet: invalid argument")

func validateDelta(delta float64) error {
	if !(delta > 0) || math.IsInf(delta, 0) {
		return fmt.Errorf("%w: delta must be finite and > 0: %v", ErrInvalidArgument, delta)
	}
	return nil
}

func validateSignal(v, x []float64) error {
	if len(v) == 0 {
		return fmt.Errorf("%w: empty signal", ErrInvalidArgument)
	}
	if x != nil && len(x) != len(v) {
		return fmt.Errorf("%w: x has %d values, signal has %d", ErrInvalidArgument, len(x), len(v))
	}
	return nil
}
