package fit

import (
	"github.com/go-logr/logr"
)

// Method selects the minimisation algorithm.
type Method int

const (
	// NelderMead is the derivative-free downhill simplex.
	NelderMead Method = iota
	// BFGS is quasi-Newton with central finite-difference gradients.
	BFGS
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case NelderMead:
		return "nelder-mead"
	case BFGS:
		return "bfgs"
	default:
		return "unknown"
	}
}

// ParseMethod maps a method name to its Method.
func ParseMethod(name string) (Method, bool) {
	switch name {
	case "nelder-mead", "neldermead", "simplex":
		return NelderMead, true
	case "bfgs":
		return BFGS, true
	default:
		return 0, false
	}
}

// Option configures [Fit].
type Option func(*config)

type config struct {
	weights        []float64
	method         Method
	maxIterations  int
	tolerance      float64
	withCovariance bool
	logger         logr.Logger
}

func defaultConfig() config {
	return config{
		method:         NelderMead,
		maxIterations:  20000,
		tolerance:      1e-10,
		withCovariance: true,
		logger:         logr.Discard(),
	}
}

// WithWeights weights each squared residual, typically by 1/variance.
// Weights must be non-negative and as long as the data.
func WithWeights(w []float64) Option {
	return func(cfg *config) {
		cfg.weights = w
	}
}

// WithMethod selects the minimisation algorithm.
func WithMethod(m Method) Option {
	return func(cfg *config) {
		cfg.method = m
	}
}

// WithMaxIterations bounds the number of major iterations.
func WithMaxIterations(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxIterations = n
		}
	}
}

// WithTolerance sets the absolute and relative chi-square change below which
// the fit is considered converged.
func WithTolerance(tol float64) Option {
	return func(cfg *config) {
		if tol > 0 {
			cfg.tolerance = tol
		}
	}
}

// WithoutCovariance skips the Hessian evaluation after convergence.
func WithoutCovariance() Option {
	return func(cfg *config) {
		cfg.withCovariance = false
	}
}

// WithLogger sets the logger. Run summaries are logged at V(1), iterations
// at V(2).
func WithLogger(l logr.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}
