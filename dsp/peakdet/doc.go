// Package peakdet finds local maxima and minima of a noisy 1-D signal.
//
// The detector is the classic hysteresis scan: a turning point is confirmed
// only once the signal has moved away from it by more than delta. Smaller
// wiggles are treated as noise. In a count-rate spectrum, delta is the
// excursion a photopeak must rise above its neighbourhood to be reported as
// a peak candidate.
//
// [Detect] scans a whole signal and returns both maxima and minima.
// [Maxima] returns the maxima only. [Detector] exposes the same state machine
// sample by sample for streaming use.
package peakdet
