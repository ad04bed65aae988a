package model

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func TestLinearBackgroundYData(t *testing.T) {
	bg, err := NewLinearBackground(2, -1)
	if err != nil {
		t.Fatalf("NewLinearBackground error: %v", err)
	}

	got := bg.YData([]float64{-1, 0, 0.5, 10})
	testutil.RequireSliceNearlyEqual(t, got, []float64{-3, -1, 0, 19}, 1e-15)

	if bg.NumParams() != 2 {
		t.Fatalf("NumParams=%d want=2", bg.NumParams())
	}
}

func TestLinearBackgroundFromPointsMatchesSlopeIntercept(t *testing.T) {
	const m, b = -0.0125, 42.5
	x := testutil.Axis(-50, 3.7, 100)

	direct, err := NewLinearBackground(m, b)
	if err != nil {
		t.Fatalf("NewLinearBackground error: %v", err)
	}
	fromPoints, err := NewLinearBackgroundFromPoints(
		Point{X: 100, Y: m*100 + b},
		Point{X: 900, Y: m*900 + b},
	)
	if err != nil {
		t.Fatalf("NewLinearBackgroundFromPoints error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, fromPoints.YData(x), direct.YData(x), 1e-12)
	testutil.RequireNearlyEqual(t, fromPoints.Slope(), m, 1e-15)
	testutil.RequireNearlyEqual(t, fromPoints.Intercept(), b, 1e-12)
}

func TestLinearBackgroundInvalidConstruction(t *testing.T) {
	if _, err := NewLinearBackgroundFromPoints(Point{X: 3, Y: 1}, Point{X: 3, Y: 5}); !errors.Is(err, ErrInvalidConstruction) {
		t.Fatalf("expected ErrInvalidConstruction for equal x, got %v", err)
	}
	if _, err := NewLinearBackgroundFromPoints(Point{X: math.NaN(), Y: 1}, Point{X: 3, Y: 5}); !errors.Is(err, ErrInvalidConstruction) {
		t.Fatalf("expected ErrInvalidConstruction for NaN point, got %v", err)
	}
	if _, err := NewLinearBackground(math.Inf(1), 0); !errors.Is(err, ErrInvalidConstruction) {
		t.Fatalf("expected ErrInvalidConstruction for infinite slope, got %v", err)
	}
}

func TestLinearBackgroundUpdateParams(t *testing.T) {
	bg, err := NewLinearBackground(1, 1)
	if err != nil {
		t.Fatalf("NewLinearBackground error: %v", err)
	}

	if err := bg.UpdateParams([]float64{3, 4}); err != nil {
		t.Fatalf("UpdateParams error: %v", err)
	}
	if bg.Slope() != 3 || bg.Intercept() != 4 {
		t.Fatalf("params=%v want=[3 4]", bg.Params())
	}

	for _, bad := range [][]float64{nil, {1}, {1, 2, 3}} {
		err := bg.UpdateParams(bad)
		if !errors.Is(err, ErrParameterShape) {
			t.Fatalf("UpdateParams(%v): expected ErrParameterShape, got %v", bad, err)
		}
		if bg.Slope() != 3 || bg.Intercept() != 4 {
			t.Fatalf("failed update changed params to %v", bg.Params())
		}
	}
}

func TestLinearBackgroundDeterministic(t *testing.T) {
	bg, err := NewLinearBackground(0.5, 2)
	if err != nil {
		t.Fatalf("NewLinearBackground error: %v", err)
	}
	if err := bg.UpdateParams([]float64{-1.25, 7}); err != nil {
		t.Fatalf("UpdateParams error: %v", err)
	}

	x := testutil.DeterministicNoise(11, 100, 64)
	a := bg.YData(x)
	b := bg.YData(x)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestLinearBackgroundParamsIsCopy(t *testing.T) {
	bg, err := NewLinearBackground(1, 2)
	if err != nil {
		t.Fatalf("NewLinearBackground error: %v", err)
	}
	p := bg.Params()
	p[0] = 99
	if bg.Slope() != 1 {
		t.Fatal("Params exposes internal state")
	}
}
