package model

// Component is the contract shared by peaks and backgrounds.
type Component interface {
	// NumParams returns the fixed length of the parameter vector.
	NumParams() int
	// UpdateParams replaces the parameters. A vector whose length differs
	// from NumParams yields ErrParameterShape and changes nothing.
	UpdateParams(p []float64) error
	// YData returns the component's contribution at every x. It does not
	// modify the component.
	YData(x []float64) []float64
}

// Peak is a discrete spectral line.
type Peak interface {
	Component
	// Area returns the integral of the contribution over the real line.
	Area() float64
}

// Background is the smooth continuum under the peaks.
type Background interface {
	Component
}

// Parameterized is implemented by components that can report their current
// parameter vector. The returned slice is a copy.
type Parameterized interface {
	Params() []float64
}

// Point is an (x, y) pair, used to construct a line through two samples.
type Point struct {
	X, Y float64
}
