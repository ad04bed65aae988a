package model

import (
	"errors"
	"fmt"
)

var (
	// ErrParameterShape is returned by UpdateParams when the vector length
	// differs from NumParams. The receiver is left unchanged.
	ErrParameterShape = errors.New("model: parameter vector has wrong length")
	// ErrInvalidConstruction is returned by constructors given degenerate or
	// non-finite arguments.
	ErrInvalidConstruction = errors.New("model: invalid construction arguments")
	// ErrNotParameterized is returned when a component cannot report its
	// current parameters.
	ErrNotParameterized = errors.New("model: component does not expose its parameters")
)

func checkShape(p []float64, want int) error {
	if len(p) != want {
		return fmt.Errorf("%w: got %d values, want %d", ErrParameterShape, len(p), want)
	}
	return nil
}
