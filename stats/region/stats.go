// Package region summarises a region of interest of a spectrum: gross and
// net content above a straight baseline, the net-weighted centroid and
// spread, and the width at half of the net maximum.
package region

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrInvalidRegion is returned for regions that are out of range, reversed,
// or too short to hold a baseline and at least one interior channel.
var ErrInvalidRegion = errors.New("region: invalid region")

// fwhmPerSigma converts a Gaussian standard deviation to its FWHM.
var fwhmPerSigma = 2 * math.Sqrt(2*math.Ln2)

// Stats holds the summary of the channels lo..hi (inclusive).
type Stats struct {
	Lo, Hi   int
	Channels int

	Gross      float64 // sum of y over the region
	Background float64 // sum of the baseline through y[lo] and y[hi]
	Net        float64 // Gross - Background

	Max      float64 // largest net value
	MaxIndex int     // absolute index of Max

	// Net-weighted moments of x. Negative net values carry no weight.
	// NaN when the region has no positive net content.
	Centroid float64
	Spread   float64

	// Width between the half-maximum crossings of the net values, linearly
	// interpolated. Crossings that fall outside the region are clamped to
	// its ends. Zero without a positive maximum.
	FWHM float64
}

// SigmaEstimate converts FWHM to a Gaussian sigma, or returns NaN when the
// width is unknown.
func (s Stats) SigmaEstimate() float64 {
	if s.FWHM <= 0 {
		return math.NaN()
	}
	return s.FWHM / fwhmPerSigma
}

// Calculate summarises channels lo..hi of (x, y). x must be ascending.
func Calculate(x, y []float64, lo, hi int) (Stats, error) {
	if err := checkRegion(len(x), len(y), lo, hi); err != nil {
		return Stats{}, err
	}

	s := Stats{Lo: lo, Hi: hi, Channels: hi - lo + 1}
	net := netValues(x, y, lo, hi)

	weights := make([]float64, len(net))
	sumWeights := 0.0
	s.Max = net[0]
	s.MaxIndex = lo
	for i, v := range net {
		s.Gross += y[lo+i]
		s.Net += v
		if v > s.Max {
			s.Max = v
			s.MaxIndex = lo + i
		}
		if v > 0 {
			weights[i] = v
			sumWeights += v
		}
	}
	s.Background = s.Gross - s.Net

	if sumWeights > 0 {
		mean, variance := stat.PopMeanVariance(x[lo:hi+1], weights)
		s.Centroid = mean
		s.Spread = math.Sqrt(variance)
	} else {
		s.Centroid = math.NaN()
		s.Spread = math.NaN()
	}

	s.FWHM = halfMaxWidth(x[lo:hi+1], net, s.MaxIndex-lo)
	return s, nil
}

// NetVariance propagates per-channel variances to the variance of
// Stats.Net for the same region. The end channels enter both the gross sum
// and the baseline, so their weight is 1 - n/2.
func NetVariance(variances []float64, lo, hi int) (float64, error) {
	if err := checkRegion(len(variances), len(variances), lo, hi); err != nil {
		return 0, err
	}
	n := float64(hi - lo + 1)
	end := 1 - n/2

	v := end * end * (variances[lo] + variances[hi])
	for i := lo + 1; i < hi; i++ {
		v += variances[i]
	}
	return v, nil
}

func checkRegion(nx, ny, lo, hi int) error {
	if nx != ny {
		return fmt.Errorf("%w: %d x values for %d y values", ErrInvalidRegion, nx, ny)
	}
	if lo < 0 || hi >= nx || hi-lo < 2 {
		return fmt.Errorf("%w: [%d, %d] of %d channels", ErrInvalidRegion, lo, hi, nx)
	}
	return nil
}

// netValues returns y minus the straight line through (x[lo], y[lo]) and
// (x[hi], y[hi]) for every channel of the region.
func netValues(x, y []float64, lo, hi int) []float64 {
	net := make([]float64, hi-lo+1)
	dx := x[hi] - x[lo]
	for i := range net {
		t := 0.5
		if dx != 0 {
			t = (x[lo+i] - x[lo]) / dx
		}
		base := y[lo] + t*(y[hi]-y[lo])
		net[i] = y[lo+i] - base
	}
	return net
}

func halfMaxWidth(x, v []float64, peak int) float64 {
	peakVal := v[peak]
	if peakVal <= 0 {
		return 0
	}
	threshold := peakVal / 2

	lower := x[0]
	for i := peak; i >= 1; i-- {
		if v[i-1] <= threshold && v[i] > threshold {
			lower = crossing(x[i-1], x[i], v[i-1], v[i], threshold)
			break
		}
	}

	upper := x[len(x)-1]
	for i := peak; i < len(v)-1; i++ {
		if v[i+1] <= threshold && v[i] > threshold {
			upper = crossing(x[i], x[i+1], v[i], v[i+1], threshold)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

// crossing linearly interpolates the x at which the segment from (x0, v0)
// to (x1, v1) reaches threshold.
func crossing(x0, x1, v0, v1, threshold float64) float64 {
	denom := v1 - v0
	if denom == 0 {
		return (x0 + x1) / 2
	}
	t := (threshold - v0) / denom
	return x0 + t*(x1-x0)
}
