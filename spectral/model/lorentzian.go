package model

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Lorentzian is the line shape A*gamma^2 / ((x-x0)^2 + gamma^2), where gamma
// is the half width at half maximum. Its parameter vector is
// [amplitude, centroid, gamma].
type Lorentzian struct {
	amplitude float64
	centroid  float64
	gamma     float64
}

var (
	_ Peak          = (*Lorentzian)(nil)
	_ Parameterized = (*Lorentzian)(nil)
)

// NewLorentzian returns a Lorentzian line. gamma must be > 0.
func NewLorentzian(amplitude, centroid, gamma float64) (*Lorentzian, error) {
	if !core.AllFinite(amplitude, centroid, gamma) {
		return nil, fmt.Errorf("%w: lorentzian parameters must be finite: %v, %v, %v",
			ErrInvalidConstruction, amplitude, centroid, gamma)
	}
	if gamma <= 0 {
		return nil, fmt.Errorf("%w: lorentzian gamma must be > 0: %v", ErrInvalidConstruction, gamma)
	}
	return &Lorentzian{amplitude: amplitude, centroid: centroid, gamma: gamma}, nil
}

// Centroid returns the position of the line.
func (l *Lorentzian) Centroid() float64 { return l.centroid }

// FWHM returns 2*|gamma|.
func (l *Lorentzian) FWHM() float64 { return 2 * math.Abs(l.gamma) }

// NumParams returns 3.
func (l *Lorentzian) NumParams() int { return 3 }

// Params returns [amplitude, centroid, gamma].
func (l *Lorentzian) Params() []float64 {
	return []float64{l.amplitude, l.centroid, l.gamma}
}

// UpdateParams sets amplitude, centroid and gamma from p.
func (l *Lorentzian) UpdateParams(p []float64) error {
	if err := checkShape(p, 3); err != nil {
		return err
	}
	l.amplitude, l.centroid, l.gamma = p[0], p[1], p[2]
	return nil
}

// Area returns A*pi*|gamma|.
func (l *Lorentzian) Area() float64 {
	return l.amplitude * math.Pi * math.Abs(l.gamma)
}

// YData evaluates the line at every x. A zero gamma contributes nothing.
func (l *Lorentzian) YData(x []float64) []float64 {
	out := make([]float64, len(x))
	if l.gamma == 0 {
		return out
	}
	g2 := l.gamma * l.gamma
	for i, xi := range x {
		d := xi - l.centroid
		out[i] = l.amplitude * g2 / (d*d + g2)
	}
	return out
}
