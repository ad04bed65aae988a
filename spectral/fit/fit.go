package fit

import (
	"context"
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/spectral/model"
)

// Result describes a finished fit. Its parameters have already been
// committed to the decomposition.
type Result struct {
	Params           []float64
	ChiSquare        float64
	DoF              int // data points minus parameters
	ReducedChiSquare float64
	Iterations       int
	FuncEvaluations  int
	Status           string
	Converged        bool // false when stopped by a limit or a stalled line search

	// Covariance of the parameters, or nil when it was skipped or the
	// Hessian was not positive definite.
	Covariance *mat.SymDense
}

// StdErr returns the standard error of parameter i, or NaN without a
// covariance matrix.
func (r Result) StdErr(i int) float64 {
	if r.Covariance == nil {
		return math.NaN()
	}
	return math.Sqrt(r.Covariance.At(i, i))
}

// Fit minimises sum_i w_i (y_i - d(x_i))^2 over the parameters of d.
//
// On success d holds the best parameters. On failure, including context
// cancellation, d is restored to the parameters it had on entry.
func Fit(ctx context.Context, d *model.Decomposition, x, y []float64, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validate(d, x, y, cfg.weights); err != nil {
		return Result{}, err
	}

	initial, err := d.Params()
	if err != nil {
		return Result{}, fmt.Errorf("fit: %w", err)
	}

	obj := newObjective(d, x, y, cfg.weights)
	problem := optimize.Problem{Func: obj.chiSquare}

	var method optimize.Method
	switch cfg.method {
	case BFGS:
		gradSettings := &fd.Settings{Formula: fd.Central}
		problem.Grad = func(grad, p []float64) {
			fd.Gradient(grad, obj.chiSquare, p, gradSettings)
		}
		method = &optimize.BFGS{}
	default:
		method = &optimize.NelderMead{}
	}

	settings := &optimize.Settings{
		MajorIterations: cfg.maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   cfg.tolerance,
			Relative:   cfg.tolerance,
			Iterations: 100,
		},
		Recorder: &contextRecorder{ctx: ctx, log: cfg.logger},
	}

	log := cfg.logger.WithValues("method", cfg.method.String(), "params", len(initial), "points", len(x))

	startChi2 := obj.chiSquare(initial)

	res, err := optimize.Minimize(problem, initial, settings, method)
	if ctxErr := ctx.Err(); ctxErr != nil {
		_ = d.UpdateParams(initial)
		log.V(1).Info("fit cancelled", "reason", ctxErr.Error())
		return Result{}, ctxErr
	}
	if res == nil {
		_ = d.UpdateParams(initial)
		if err == nil {
			err = errors.New("optimizer returned no result")
		}
		return Result{}, fmt.Errorf("fit: %s: %w", cfg.method, err)
	}
	if err != nil {
		// A line search that cannot make progress at the minimum still
		// leaves a usable point; anything that did not improve is a failure.
		if !core.IsFinite(res.F) || res.F > startChi2 {
			_ = d.UpdateParams(initial)
			return Result{}, fmt.Errorf("fit: %s: %w", cfg.method, err)
		}
		log.V(1).Info("optimizer stopped early", "reason", err.Error())
	}

	best := core.Clone(res.X)
	if err := d.UpdateParams(best); err != nil {
		return Result{}, fmt.Errorf("fit: committing parameters: %w", err)
	}

	out := Result{
		Params:          best,
		ChiSquare:       res.F,
		DoF:             len(x) - len(best),
		Iterations:      res.MajorIterations,
		FuncEvaluations: res.FuncEvaluations,
		Status:          res.Status.String(),
		Converged:       err == nil && converged(res.Status),
	}
	if out.DoF > 0 {
		out.ReducedChiSquare = out.ChiSquare / float64(out.DoF)
	}

	if cfg.withCovariance {
		// Without weights the residual scale is unknown and is estimated from
		// the reduced chi-square.
		scale := 1.0
		if cfg.weights == nil && out.DoF > 0 {
			scale = out.ReducedChiSquare
		}
		out.Covariance = covariance(obj.chiSquare, best, scale)
		if err := d.UpdateParams(best); err != nil {
			return Result{}, fmt.Errorf("fit: committing parameters: %w", err)
		}
		if out.Covariance == nil {
			log.V(1).Info("hessian not positive definite, covariance skipped")
		}
	}

	log.V(1).Info("fit finished",
		"status", out.Status,
		"converged", out.Converged,
		"chi2", out.ChiSquare,
		"reducedChi2", out.ReducedChiSquare,
		"iterations", out.Iterations,
		"evaluations", out.FuncEvaluations)

	return out, nil
}

func validate(d *model.Decomposition, x, y, w []float64) error {
	if d == nil {
		return fmt.Errorf("%w: nil decomposition", ErrInvalidInput)
	}
	if len(x) == 0 {
		return fmt.Errorf("%w: no data points", ErrInvalidInput)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x values for %d y values", ErrInvalidInput, len(x), len(y))
	}
	if d.NumParams() == 0 {
		return fmt.Errorf("%w: decomposition has no parameters", ErrInvalidInput)
	}
	if w == nil {
		return nil
	}
	if len(w) != len(y) {
		return fmt.Errorf("%w: %d weights for %d points", ErrInvalidInput, len(w), len(y))
	}
	for i, wi := range w {
		if wi < 0 || !core.IsFinite(wi) {
			return fmt.Errorf("%w: weight %d is %v", ErrInvalidInput, i, wi)
		}
	}
	return nil
}

// objective evaluates chi-square for trial parameter vectors. It owns its
// scratch buffers and is not safe for concurrent use.
type objective struct {
	d     *model.Decomposition
	x, y  []float64
	sqrtW []float64
	yhat  []float64
	resid []float64
}

func newObjective(d *model.Decomposition, x, y, w []float64) *objective {
	o := &objective{
		d:     d,
		x:     x,
		y:     y,
		resid: make([]float64, len(y)),
	}
	if w != nil {
		o.sqrtW = make([]float64, len(w))
		for i, wi := range w {
			o.sqrtW[i] = math.Sqrt(wi)
		}
	}
	return o
}

func (o *objective) chiSquare(p []float64) float64 {
	if err := o.d.UpdateParams(p); err != nil {
		return math.Inf(1)
	}
	o.yhat = o.d.YDataInto(o.yhat, o.x)

	floats.SubTo(o.resid, o.y, o.yhat)
	if o.sqrtW != nil {
		floats.Mul(o.resid, o.sqrtW)
	}

	chi2 := vecmath.DotProduct(o.resid, o.resid)
	if math.IsNaN(chi2) {
		return math.Inf(1)
	}
	return chi2
}

// covariance returns scale * 2 * H^-1 where H is the Hessian of chi-square
// at p, or nil if H is not positive definite.
func covariance(f func([]float64) float64, p []float64, scale float64) *mat.SymDense {
	h := mat.NewSymDense(len(p), nil)
	fd.Hessian(h, f, p, nil)

	var chol mat.Cholesky
	if ok := chol.Factorize(h); !ok {
		return nil
	}

	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil
	}
	cov.ScaleSym(2*scale, &cov)
	return &cov
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionConvergence, optimize.GradientThreshold,
		optimize.StepConvergence, optimize.MethodConverge, optimize.FunctionThreshold:
		return true
	default:
		return false
	}
}

type contextRecorder struct {
	ctx context.Context
	log logr.Logger
}

func (r *contextRecorder) Init() error { return r.ctx.Err() }

func (r *contextRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&optimize.MajorIteration != 0 {
		r.log.V(2).Info("iteration", "n", stats.MajorIterations, "chi2", loc.F)
	}
	return r.ctx.Err()
}
