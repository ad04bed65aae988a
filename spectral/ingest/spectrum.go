package ingest

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/search"
	"github.com/cwbudde/algo-spectra/stats/uncertainty"
)

// Spectrum is a calibrated, live-time normalised spectrum.
type Spectrum struct {
	LiveTime   float64 // seconds the detector was able to record
	RealTime   float64 // seconds elapsed, including dead time
	Energies   []float64
	Counts     []float64 // raw counts per channel
	CountRates []float64 // Counts / LiveTime
}

// NewSpectrum validates the acquisition times and channel arrays and derives
// the count rates.
func NewSpectrum(liveTime, realTime float64, energies, counts []float64) (*Spectrum, error) {
	if !core.IsFinite(liveTime) || liveTime <= 0 {
		return nil, fmt.Errorf("%w: live time must be > 0: %v", ErrMalformed, liveTime)
	}
	if !core.IsFinite(realTime) || realTime < liveTime {
		return nil, fmt.Errorf("%w: real time %v is shorter than live time %v", ErrMalformed, realTime, liveTime)
	}
	if len(energies) != len(counts) {
		return nil, fmt.Errorf("%w: %d energies for %d channels", ErrMalformed, len(energies), len(counts))
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrMalformed)
	}
	if !core.IsNonDecreasing(energies) {
		return nil, fmt.Errorf("%w: energies are not ascending", ErrMalformed)
	}

	rates := make([]float64, len(counts))
	vecmath.ScaleBlock(rates, counts, 1/liveTime)

	return &Spectrum{
		LiveTime:   liveTime,
		RealTime:   realTime,
		Energies:   energies,
		Counts:     counts,
		CountRates: rates,
	}, nil
}

// Values returns the (live time, real time, energies, count rates) tuple.
func (s *Spectrum) Values() (liveTime, realTime float64, energies, countRates []float64) {
	return s.LiveTime, s.RealTime, s.Energies, s.CountRates
}

// Len returns the number of channels.
func (s *Spectrum) Len() int { return len(s.Counts) }

// DeadTimeFraction returns 1 - live/real.
func (s *Spectrum) DeadTimeFraction() float64 {
	return 1 - s.LiveTime/s.RealTime
}

// RateVariances returns the Poisson variance of every channel's count rate.
func (s *Spectrum) RateVariances() []float64 {
	return uncertainty.RateVariances(s.Counts, s.LiveTime)
}

// Channel returns the channel whose energy is closest to e.
func (s *Spectrum) Channel(e float64) (int, error) {
	return search.Nearest(s.Energies, e)
}

// TotalRate returns the summed count rate over all channels.
func (s *Spectrum) TotalRate() float64 {
	return vecmath.Sum(s.CountRates)
}
