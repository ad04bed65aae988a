package search

import (
	"fmt"
	"math"
)

// linearScanMax is the length below which a plain scan replaces bisection.
const linearScanMax = 5

// Nearest returns the index of the element of l closest to e.
// l must be sorted ascending. Ties resolve to the lower index.
func Nearest(l []float64, e float64) (int, error) {
	return nearest(len(l), func(i int) float64 { return l[i] }, e)
}

// NearestKey returns the index of the record whose key is closest to e.
// l must be sorted ascending by key. Ties resolve to the lower index.
func NearestKey[T any](l []T, e float64, key func(T) float64) (int, error) {
	return nearest(len(l), func(i int) float64 { return key(l[i]) }, e)
}

// NearestColumn returns the index of the row whose value at column col is
// closest to e. rows must be sorted ascending by that column.
//
// Only the rows visited by the search are checked for width; a row too short
// to hold col yields [ErrInvalidColumn].
func NearestColumn(rows [][]float64, col int, e float64) (int, error) {
	if col < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}

	short := -1
	at := func(i int) float64 {
		r := rows[i]
		if col >= len(r) {
			if short < 0 {
				short = i
			}
			return math.NaN()
		}
		return r[col]
	}

	g, err := nearest(len(rows), at, e)
	if err != nil {
		return 0, err
	}
	if short >= 0 {
		return 0, fmt.Errorf("%w: column %d, row %d has %d values", ErrInvalidColumn, col, short, len(rows[short]))
	}
	return g, nil
}

func nearest(n int, at func(int) float64, e float64) (int, error) {
	if n == 0 {
		return 0, ErrEmptySequence
	}
	switch {
	case math.IsNaN(e):
		return 0, ErrInvalidQuery
	case math.IsInf(e, -1):
		return 0, nil
	case math.IsInf(e, 1):
		return firstOfRun(n-1, at), nil
	}
	if n < linearScanMax {
		return scan(n, at, e), nil
	}

	// Invariant once e lies inside the range: at(lo) < e <= at(hi).
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if at(mid) < e {
			lo = mid
		} else {
			hi = mid
		}
	}

	g := hi
	if math.Abs(at(lo)-e) <= math.Abs(at(hi)-e) {
		g = lo
	}

	return firstOfRun(g, at), nil
}

// firstOfRun walks back from g over repeats so equal samples resolve to the
// first of them.
func firstOfRun(g int, at func(int) float64) int {
	v := at(g)
	for g > 0 && at(g-1) == v {
		g--
	}
	return g
}

func scan(n int, at func(int) float64, e float64) int {
	best := 0
	bestDist := math.Abs(at(0) - e)
	for i := 1; i < n; i++ {
		if d := math.Abs(at(i) - e); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
