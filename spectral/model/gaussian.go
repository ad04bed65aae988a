package model

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// fwhmPerSigma is 2*sqrt(2*ln 2).
var fwhmPerSigma = 2 * math.Sqrt(2*math.Ln2)

// Gaussian is the line shape A*exp(-(x-mu)^2 / (2 sigma^2)), the usual model
// of a photopeak in a scintillator or semiconductor detector.
// Its parameter vector is [amplitude, centroid, sigma].
//
// A fitter may drive sigma negative; the shape depends on sigma only through
// sigma^2, and Area and FWHM use |sigma|.
type Gaussian struct {
	amplitude float64
	centroid  float64
	sigma     float64
}

var (
	_ Peak          = (*Gaussian)(nil)
	_ Parameterized = (*Gaussian)(nil)
)

// NewGaussian returns a Gaussian line. sigma must be > 0.
func NewGaussian(amplitude, centroid, sigma float64) (*Gaussian, error) {
	if !core.AllFinite(amplitude, centroid, sigma) {
		return nil, fmt.Errorf("%w: gaussian parameters must be finite: %v, %v, %v",
			ErrInvalidConstruction, amplitude, centroid, sigma)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: gaussian sigma must be > 0: %v", ErrInvalidConstruction, sigma)
	}
	return &Gaussian{amplitude: amplitude, centroid: centroid, sigma: sigma}, nil
}

// NewGaussianFromFWHM returns a Gaussian line given its full width at half
// maximum instead of sigma.
func NewGaussianFromFWHM(amplitude, centroid, fwhm float64) (*Gaussian, error) {
	return NewGaussian(amplitude, centroid, fwhm/fwhmPerSigma)
}

// Amplitude returns the height of the line.
func (g *Gaussian) Amplitude() float64 { return g.amplitude }

// Centroid returns the position of the line.
func (g *Gaussian) Centroid() float64 { return g.centroid }

// Sigma returns the standard deviation of the line.
func (g *Gaussian) Sigma() float64 { return math.Abs(g.sigma) }

// FWHM returns the full width at half maximum.
func (g *Gaussian) FWHM() float64 { return fwhmPerSigma * math.Abs(g.sigma) }

// NumParams returns 3.
func (g *Gaussian) NumParams() int { return 3 }

// Params returns [amplitude, centroid, sigma].
func (g *Gaussian) Params() []float64 {
	return []float64{g.amplitude, g.centroid, g.sigma}
}

// UpdateParams sets amplitude, centroid and sigma from p.
func (g *Gaussian) UpdateParams(p []float64) error {
	if err := checkShape(p, 3); err != nil {
		return err
	}
	g.amplitude, g.centroid, g.sigma = p[0], p[1], p[2]
	return nil
}

// Area returns A*|sigma|*sqrt(2*pi).
func (g *Gaussian) Area() float64 {
	return g.amplitude * math.Abs(g.sigma) * math.Sqrt(2*math.Pi)
}

// YData evaluates the line at every x. A zero sigma contributes nothing.
func (g *Gaussian) YData(x []float64) []float64 {
	out := make([]float64, len(x))
	if g.sigma == 0 {
		return out
	}
	inv := 1 / g.sigma
	for i, xi := range x {
		d := (xi - g.centroid) * inv
		out[i] = g.amplitude * math.Exp(-0.5*d*d)
	}
	return out
}
