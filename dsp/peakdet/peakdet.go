package peakdet

import (
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Extremum is a confirmed turning point of a signal.
type Extremum struct {
	X     float64 // position: sample index or supplied x-coordinate
	Value float64
}

// Result holds the turning points of a scan in the order they were
// confirmed, which is ascending x.
type Result struct {
	Maxima []Extremum
	Minima []Extremum
}

// Option configures [Detect] and [Maxima].
type Option func(*config)

type config struct {
	x []float64
}

// WithX supplies the x-coordinate of every sample (typically energy).
// Without it, the sample index is used.
func WithX(x []float64) Option {
	return func(cfg *config) {
		cfg.x = x
	}
}

// Detect scans v once and returns its maxima and minima.
//
// A maximum is reported once the signal has fallen more than delta below it;
// a minimum once the signal has risen more than delta above it. The scan
// starts out looking for a maximum.
func Detect(v []float64, delta float64, opts ...Option) (Result, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateSignal(v, cfg.x); err != nil {
		return Result{}, err
	}

	d, err := NewDetector(delta)
	if err != nil {
		return Result{}, err
	}

	x := cfg.x
	if x == nil {
		x = core.Indices(len(v))
	}
	for i, this := range v {
		d.ProcessSample(x[i], this)
	}

	return d.Result(), nil
}

// Maxima is [Detect] reduced to the maxima.
func Maxima(v []float64, delta float64, opts ...Option) ([]Extremum, error) {
	res, err := Detect(v, delta, opts...)
	if err != nil {
		return nil, err
	}
	return res.Maxima, nil
}

// Detector is the incremental form of [Detect]. It is not safe for
// concurrent use.
type Detector struct {
	delta float64

	mx, mn       float64
	mxPos, mnPos float64
	lookForMax   bool

	maxima []Extremum
	minima []Extremum
}

// NewDetector returns a detector confirming turning points after an
// excursion larger than delta.
func NewDetector(delta float64) (*Detector, error) {
	if err := validateDelta(delta); err != nil {
		return nil, err
	}

	d := &Detector{delta: delta}
	d.Reset()
	return d, nil
}

// Reset discards all state and confirmed turning points.
func (d *Detector) Reset() {
	d.mx, d.mn = math.Inf(-1), math.Inf(1)
	d.mxPos, d.mnPos = math.NaN(), math.NaN()
	d.lookForMax = true
	d.maxima = nil
	d.minima = nil
}

// ProcessSample feeds one sample at position pos. NaN samples compare false
// against every threshold and so leave the state untouched.
func (d *Detector) ProcessSample(pos, this float64) {
	if this > d.mx {
		d.mx, d.mxPos = this, pos
	}
	if this < d.mn {
		d.mn, d.mnPos = this, pos
	}

	if d.lookForMax {
		if this < d.mx-d.delta {
			d.maxima = append(d.maxima, Extremum{X: d.mxPos, Value: d.mx})
			d.mn, d.mnPos = this, pos
			d.lookForMax = false
		}
		return
	}

	if this > d.mn+d.delta {
		d.minima = append(d.minima, Extremum{X: d.mnPos, Value: d.mn})
		d.mx, d.mxPos = this, pos
		d.lookForMax = true
	}
}

// LookingForMax reports whether the next turning point to be confirmed is a
// maximum.
func (d *Detector) LookingForMax() bool { return d.lookForMax }

// Result returns copies of the turning points confirmed so far.
func (d *Detector) Result() Result {
	res := Result{}
	if len(d.maxima) > 0 {
		res.Maxima = append([]Extremum(nil), d.maxima...)
	}
	if len(d.minima) > 0 {
		res.Minima = append([]Extremum(nil), d.minima...)
	}
	return res
}
