// Package uncertainty propagates variances through the arithmetic used to
// turn raw detector counts into calibrated quantities.
//
// All functions are pure. NaN and Inf inputs propagate under IEEE rules and
// are not rejected.
package uncertainty

// ProductVariance returns the variance of X*Y for independent X and Y with
// means e1, e2 and variances var1, var2:
//
//	var1*var2 + e1^2*var2 + e2^2*var1
//
// The result is exact for independent variables; no covariance term is
// included.
func ProductVariance(e1, var1, e2, var2 float64) float64 {
	return var1*var2 + e1*e1*var2 + e2*e2*var1
}

// ScaleVariance returns the variance of k*X given var(X).
func ScaleVariance(k, variance float64) float64 {
	return k * k * variance
}

// RateVariance returns the Poisson variance of counts/liveTime, which is
// counts/liveTime^2.
func RateVariance(counts, liveTime float64) float64 {
	return counts / (liveTime * liveTime)
}

// RateVariances is RateVariance applied to every channel.
func RateVariances(counts []float64, liveTime float64) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = RateVariance(c, liveTime)
	}
	return out
}
