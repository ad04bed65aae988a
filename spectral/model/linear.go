package model

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// LinearBackground is the continuum slope*x + intercept.
// Its parameter vector is [slope, intercept].
type LinearBackground struct {
	slope     float64
	intercept float64
}

var (
	_ Background    = (*LinearBackground)(nil)
	_ Parameterized = (*LinearBackground)(nil)
)

// NewLinearBackground returns the line with the given slope and intercept.
func NewLinearBackground(slope, intercept float64) (*LinearBackground, error) {
	if !core.AllFinite(slope, intercept) {
		return nil, fmt.Errorf("%w: slope and intercept must be finite: %v, %v",
			ErrInvalidConstruction, slope, intercept)
	}
	return &LinearBackground{slope: slope, intercept: intercept}, nil
}

// NewLinearBackgroundFromPoints returns the line through a and b.
// The points must be finite and have distinct x.
func NewLinearBackgroundFromPoints(a, b Point) (*LinearBackground, error) {
	if !core.AllFinite(a.X, a.Y, b.X, b.Y) {
		return nil, fmt.Errorf("%w: points must be finite: %v, %v", ErrInvalidConstruction, a, b)
	}
	if a.X == b.X {
		return nil, fmt.Errorf("%w: points share x = %v", ErrInvalidConstruction, a.X)
	}

	slope := (b.Y - a.Y) / (b.X - a.X)
	return NewLinearBackground(slope, a.Y-slope*a.X)
}

// Slope returns the current slope.
func (l *LinearBackground) Slope() float64 { return l.slope }

// Intercept returns the current intercept.
func (l *LinearBackground) Intercept() float64 { return l.intercept }

// NumParams returns 2.
func (l *LinearBackground) NumParams() int { return 2 }

// Params returns [slope, intercept].
func (l *LinearBackground) Params() []float64 {
	return []float64{l.slope, l.intercept}
}

// UpdateParams sets slope = p[0] and intercept = p[1].
func (l *LinearBackground) UpdateParams(p []float64) error {
	if err := checkShape(p, 2); err != nil {
		return err
	}
	l.slope, l.intercept = p[0], p[1]
	return nil
}

// YData returns slope*x[i] + intercept for every x[i].
func (l *LinearBackground) YData(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = l.slope*xi + l.intercept
	}
	return out
}
