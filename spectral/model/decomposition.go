package model

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/dsp/core"
)

// Decomposition is a background plus zero or more peaks whose contributions
// add up to a modelled spectrum.
//
// The flat parameter layout is the background's parameters followed by each
// peak's, in the order the peaks were given. Member parameter counts are read
// once at construction; components must not change them afterwards.
type Decomposition struct {
	bg      Background
	peaks   []Peak
	offsets []int // offsets[i] is the start of member i; member 0 is the background
	n       int
}

// NewDecomposition builds a decomposition. Nil members are rejected.
func NewDecomposition(bg Background, peaks ...Peak) (*Decomposition, error) {
	if bg == nil {
		return nil, fmt.Errorf("%w: decomposition needs a background", ErrInvalidConstruction)
	}

	d := &Decomposition{
		bg:      bg,
		peaks:   append([]Peak(nil), peaks...),
		offsets: make([]int, 0, len(peaks)+1),
	}

	d.offsets = append(d.offsets, 0)
	d.n = bg.NumParams()
	for i, p := range d.peaks {
		if p == nil {
			return nil, fmt.Errorf("%w: peak %d is nil", ErrInvalidConstruction, i)
		}
		d.offsets = append(d.offsets, d.n)
		d.n += p.NumParams()
	}

	return d, nil
}

// Background returns the background member.
func (d *Decomposition) Background() Background { return d.bg }

// Peaks returns the peak members in parameter order.
func (d *Decomposition) Peaks() []Peak {
	return append([]Peak(nil), d.peaks...)
}

// NumParams returns the total parameter count of all members.
func (d *Decomposition) NumParams() int { return d.n }

// PeakParams returns the half-open range [start, end) of peak i's parameters
// within the flat vector. An i outside [0, len(Peaks())) yields the empty
// range (0, 0).
func (d *Decomposition) PeakParams(i int) (start, end int) {
	if i < 0 || i >= len(d.peaks) {
		return 0, 0
	}
	start = d.offsets[i+1]
	return start, start + d.peaks[i].NumParams()
}

// Params gathers the current flat parameter vector. Every member must
// implement [Parameterized].
func (d *Decomposition) Params() ([]float64, error) {
	out := make([]float64, 0, d.n)
	for i, m := range d.members() {
		pm, ok := m.(Parameterized)
		if !ok {
			return nil, fmt.Errorf("%w: member %d (%T)", ErrNotParameterized, i, m)
		}
		out = append(out, pm.Params()...)
	}
	return out, nil
}

// UpdateParams routes consecutive slices of p to the members. A length
// mismatch is reported before any member is touched.
func (d *Decomposition) UpdateParams(p []float64) error {
	if err := checkShape(p, d.n); err != nil {
		return err
	}

	members := d.members()
	for i, m := range members {
		end := d.n
		if i+1 < len(d.offsets) {
			end = d.offsets[i+1]
		}
		if err := m.UpdateParams(p[d.offsets[i]:end]); err != nil {
			return fmt.Errorf("member %d: %w", i, err)
		}
	}
	return nil
}

// YData returns the sum of every member's contribution at x.
func (d *Decomposition) YData(x []float64) []float64 {
	return d.YDataInto(nil, x)
}

// YDataInto is YData writing into dst, reusing its capacity when possible.
func (d *Decomposition) YDataInto(dst, x []float64) []float64 {
	dst = core.EnsureLen(dst, len(x))
	copy(dst, d.bg.YData(x))
	for _, p := range d.peaks {
		vecmath.AddBlockInPlace(dst, p.YData(x))
	}
	return dst
}

// Area returns the summed area of all peaks.
func (d *Decomposition) Area() float64 {
	var a float64
	for _, p := range d.peaks {
		a += p.Area()
	}
	return a
}

func (d *Decomposition) members() []Component {
	out := make([]Component, 0, len(d.peaks)+1)
	out = append(out, d.bg)
	for _, p := range d.peaks {
		out = append(out, p)
	}
	return out
}
