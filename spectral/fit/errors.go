package fit

import "errors"

var (
	// ErrInvalidInput is returned for empty or mismatched data and weights.
	ErrInvalidInput = errors.New("fit: invalid input")
	// ErrNoCovariance is returned when an uncertainty is requested from a
	// result without a covariance matrix.
	ErrNoCovariance = errors.New("fit: covariance unavailable")
)
