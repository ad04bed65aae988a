// Package fit adjusts a model.Decomposition to an observed spectrum by
// weighted least squares.
//
// The fitter only uses the component contract from package model: it reads
// the flat parameter vector once, then repeatedly routes trial vectors
// through UpdateParams and sums YData. Minimisation is delegated to
// gonum's optimize package (Nelder-Mead by default, or BFGS with
// finite-difference gradients). Parameter covariance is estimated from a
// finite-difference Hessian of chi-square at the optimum.
//
// A Decomposition is mutated during a fit and must not be used concurrently.
// Fit independent decompositions in parallel if needed.
package fit
