package search

import (
	"errors"
	"math"
	"testing"
)

func TestNearestOddSequence(t *testing.T) {
	l := []float64{1, 3, 5, 7, 9, 11, 13}

	tests := []struct {
		name string
		e    float64
		want int
	}{
		{name: "between tie resolves low", e: 6, want: 2},
		{name: "exact first", e: 1, want: 0},
		{name: "exact last", e: 13, want: 6},
		{name: "exact middle", e: 7, want: 3},
		{name: "below range", e: -100, want: 0},
		{name: "above range", e: 100, want: 6},
		{name: "closer to upper", e: 8.9, want: 4},
		{name: "closer to lower", e: 9.1, want: 4},
		{name: "between last pair", e: 12.5, want: 6},
		{name: "between first pair", e: 1.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nearest(l, tt.e)
			if err != nil {
				t.Fatalf("Nearest error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Nearest(%v)=%d want=%d", tt.e, got, tt.want)
			}
		})
	}
}

func TestNearestEmpty(t *testing.T) {
	if _, err := Nearest(nil, 1); !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
	if _, err := NearestColumn(nil, 0, 1); !errors.Is(err, ErrEmptySequence) {
		t.Fatalf("expected ErrEmptySequence, got %v", err)
	}
}

func TestNearestNaNQuery(t *testing.T) {
	if _, err := Nearest([]float64{1, 2}, math.NaN()); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

// Infinite queries resolve to the ends on both the scan and bisection paths.
func TestNearestInfiniteQuery(t *testing.T) {
	tests := []struct {
		name string
		l    []float64
		e    float64
		want int
	}{
		{name: "short +Inf", l: []float64{1, 2, 3}, e: math.Inf(1), want: 2},
		{name: "short -Inf", l: []float64{1, 2, 3}, e: math.Inf(-1), want: 0},
		{name: "long +Inf", l: []float64{1, 2, 3, 4, 5, 6}, e: math.Inf(1), want: 5},
		{name: "long -Inf", l: []float64{1, 2, 3, 4, 5, 6}, e: math.Inf(-1), want: 0},
		{name: "repeated last", l: []float64{1, 2, 3, 3}, e: math.Inf(1), want: 2},
		{name: "single", l: []float64{4}, e: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nearest(tt.l, tt.e)
			if err != nil {
				t.Fatalf("Nearest error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Nearest(%v, %v)=%d want=%d", tt.l, tt.e, got, tt.want)
			}
		})
	}
}

func TestNearestShortSequences(t *testing.T) {
	tests := []struct {
		name string
		l    []float64
		e    float64
		want int
	}{
		{name: "single below", l: []float64{4}, e: 0, want: 0},
		{name: "single above", l: []float64{4}, e: 9, want: 0},
		{name: "pair tie", l: []float64{2, 4}, e: 3, want: 0},
		{name: "pair upper", l: []float64{2, 4}, e: 3.5, want: 1},
		{name: "triple last", l: []float64{1, 2, 3}, e: 3, want: 2},
		{name: "quad first", l: []float64{1, 2, 3, 4}, e: 1, want: 0},
		{name: "quad last edge", l: []float64{1, 2, 3, 4}, e: 4.2, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Nearest(tt.l, tt.e)
			if err != nil {
				t.Fatalf("Nearest error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Nearest(%v, %v)=%d want=%d", tt.l, tt.e, got, tt.want)
			}
		})
	}
}

func TestNearestRepeatedValues(t *testing.T) {
	l := []float64{0, 1, 5, 5, 5, 8, 9}

	got, err := Nearest(l, 5)
	if err != nil {
		t.Fatalf("Nearest error: %v", err)
	}
	if got != 2 {
		t.Fatalf("Nearest=%d want=2", got)
	}

	got, err = Nearest(l, 5.4)
	if err != nil {
		t.Fatalf("Nearest error: %v", err)
	}
	if got != 2 {
		t.Fatalf("Nearest=%d want=2", got)
	}
}

// Brute force agrees with bisection on every query in a dense grid.
func TestNearestMatchesScan(t *testing.T) {
	l := []float64{-3, -1.5, 0, 0.25, 2, 2.5, 7, 7.5, 10, 20, 21}
	at := func(i int) float64 { return l[i] }

	for e := -5.0; e <= 25; e += 0.125 {
		got, err := Nearest(l, e)
		if err != nil {
			t.Fatalf("Nearest error: %v", err)
		}
		if want := scan(len(l), at, e); got != want {
			t.Fatalf("Nearest(%v)=%d want=%d", e, got, want)
		}
	}
}

func TestNearestKey(t *testing.T) {
	type line struct {
		name   string
		energy float64
	}
	lines := []line{
		{"Am-241", 59.5},
		{"Ba-133", 356.0},
		{"Cs-137", 661.7},
		{"Co-60a", 1173.2},
		{"Co-60b", 1332.5},
		{"K-40", 1460.8},
	}

	got, err := NearestKey(lines, 1300, func(l line) float64 { return l.energy })
	if err != nil {
		t.Fatalf("NearestKey error: %v", err)
	}
	if lines[got].name != "Co-60b" {
		t.Fatalf("NearestKey=%s want=Co-60b", lines[got].name)
	}
}

func TestNearestColumn(t *testing.T) {
	rows := [][]float64{
		{0, 10, 1},
		{1, 20, 1},
		{2, 30, 1},
		{3, 40, 1},
		{4, 50, 1},
		{5, 60, 1},
	}

	got, err := NearestColumn(rows, 1, 44)
	if err != nil {
		t.Fatalf("NearestColumn error: %v", err)
	}
	if got != 3 {
		t.Fatalf("NearestColumn=%d want=3", got)
	}

	if _, err := NearestColumn(rows, -1, 44); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if _, err := NearestColumn(rows, 3, 44); !errors.Is(err, ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
}
