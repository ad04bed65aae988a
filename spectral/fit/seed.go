package fit

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/search"
	"github.com/cwbudde/algo-spectra/spectral/model"
)

// edgeSamples is how many samples at each end of the data are averaged into
// the two points seeding the linear background.
const edgeSamples = 5

// Seed builds a starting decomposition for [Fit]: a linear background
// through the averaged ends of the data and one Gaussian of width sigma at
// each center. A Gaussian's amplitude is the data above the background at
// the sample nearest its center. x must be ascending.
func Seed(x, y, centers []float64, sigma float64) (*model.Decomposition, error) {
	if len(x) < 2 || len(x) != len(y) {
		return nil, fmt.Errorf("%w: need at least 2 points with matching x and y, got %d and %d",
			ErrInvalidInput, len(x), len(y))
	}

	k := min(edgeSamples, len(x)/2)
	bg, err := model.NewLinearBackgroundFromPoints(mean(x[:k], y[:k]), mean(x[len(x)-k:], y[len(y)-k:]))
	if err != nil {
		return nil, fmt.Errorf("fit: seeding background: %w", err)
	}

	peaks := make([]model.Peak, 0, len(centers))
	for _, c := range centers {
		g, err := search.Nearest(x, c)
		if err != nil {
			return nil, fmt.Errorf("fit: seeding peak at %v: %w", c, err)
		}

		amp := y[g] - bg.YData(x[g:g+1])[0]
		if amp <= 0 {
			amp = y[g]
		}
		peak, err := model.NewGaussian(amp, c, sigma)
		if err != nil {
			return nil, fmt.Errorf("fit: seeding peak at %v: %w", c, err)
		}
		peaks = append(peaks, peak)
	}

	return model.NewDecomposition(bg, peaks...)
}

func mean(x, y []float64) model.Point {
	var p model.Point
	for i := range x {
		p.X += x[i]
		p.Y += y[i]
	}
	n := float64(len(x))
	p.X /= n
	p.Y /= n
	return p
}
