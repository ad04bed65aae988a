package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-spectra/spectral/model"
	"github.com/cwbudde/algo-spectra/stats/uncertainty"
)

// AreaVariance returns the variance of peak i's area given a fit result.
//
// Gaussian and Lorentzian areas are products of two parameters (amplitude
// and width) and are propagated with [uncertainty.ProductVariance], treating
// the two as independent. Other peaks implementing model.Parameterized use
// the first-order delta method with the full covariance block.
func AreaVariance(res Result, d *model.Decomposition, i int) (float64, error) {
	if res.Covariance == nil {
		return 0, ErrNoCovariance
	}
	peaks := d.Peaks()
	if i < 0 || i >= len(peaks) {
		return 0, fmt.Errorf("%w: peak %d of %d", ErrInvalidInput, i, len(peaks))
	}
	start, end := d.PeakParams(i)
	cov := res.Covariance

	switch p := peaks[i].(type) {
	case *model.Gaussian:
		params := p.Params()
		v := uncertainty.ProductVariance(params[0], cov.At(start, start), math.Abs(params[2]), cov.At(start+2, start+2))
		return uncertainty.ScaleVariance(math.Sqrt(2*math.Pi), v), nil
	case *model.Lorentzian:
		params := p.Params()
		v := uncertainty.ProductVariance(params[0], cov.At(start, start), math.Abs(params[2]), cov.At(start+2, start+2))
		return uncertainty.ScaleVariance(math.Pi, v), nil
	case model.Parameterized:
		return deltaMethod(peaks[i], p.Params(), cov.SliceSym(start, end).(*mat.SymDense))
	default:
		return 0, fmt.Errorf("fit: peak %d: %w", i, model.ErrNotParameterized)
	}
}

// deltaMethod returns g^T C g for the gradient g of the peak area with
// respect to its parameters p. The peak is restored to p afterwards.
func deltaMethod(peak model.Peak, p []float64, c *mat.SymDense) (float64, error) {
	area := func(q []float64) float64 {
		if err := peak.UpdateParams(q); err != nil {
			return math.NaN()
		}
		return peak.Area()
	}

	g := fd.Gradient(nil, area, p, &fd.Settings{Formula: fd.Central})
	if err := peak.UpdateParams(p); err != nil {
		return 0, err
	}

	gv := mat.NewVecDense(len(g), g)
	return mat.Inner(gv, c, gv), nil
}
