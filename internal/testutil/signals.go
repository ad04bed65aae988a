package testutil

import (
	"math"
	"math/rand"
	randv2 "math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Axis returns n evenly spaced coordinates start, start+step, ...
func Axis(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// GaussianLine evaluates amplitude*exp(-(x-centroid)^2 / (2 sigma^2)) at x.
func GaussianLine(x []float64, amplitude, centroid, sigma float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		d := (xi - centroid) / sigma
		out[i] = amplitude * math.Exp(-0.5*d*d)
	}
	return out
}

// LinearContinuum evaluates slope*x + intercept at x.
func LinearContinuum(x []float64, slope, intercept float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = slope*xi + intercept
	}
	return out
}

// Sum returns the element-wise sum of equally long signals.
func Sum(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PoissonCounts draws one Poisson variate per channel with the given
// expectations, seeded for reproducibility. Non-positive expectations yield 0.
func PoissonCounts(seed uint64, expected []float64) []float64 {
	src := randv2.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	out := make([]float64, len(expected))
	for i, lambda := range expected {
		if lambda <= 0 {
			continue
		}
		out[i] = distuv.Poisson{Lambda: lambda, Src: src}.Rand()
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
