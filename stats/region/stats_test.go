package region

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

const tolerance = 1e-9

func TestCalculateTriangleOnFlatBaseline(t *testing.T) {
	x := testutil.Axis(0, 1, 7)
	y := []float64{1, 1, 2, 3, 2, 1, 1}

	s, err := Calculate(x, y, 0, 6)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if s.Channels != 7 {
		t.Fatalf("Channels=%d want=7", s.Channels)
	}
	testutil.RequireNearlyEqual(t, s.Gross, 11, tolerance)
	testutil.RequireNearlyEqual(t, s.Background, 7, tolerance)
	testutil.RequireNearlyEqual(t, s.Net, 4, tolerance)
	testutil.RequireNearlyEqual(t, s.Max, 2, tolerance)
	if s.MaxIndex != 3 {
		t.Fatalf("MaxIndex=%d want=3", s.MaxIndex)
	}
	testutil.RequireNearlyEqual(t, s.Centroid, 3, tolerance)
	testutil.RequireNearlyEqual(t, s.Spread, math.Sqrt(0.5), tolerance)
	testutil.RequireNearlyEqual(t, s.FWHM, 2, tolerance)
}

func TestCalculateSlopedBaseline(t *testing.T) {
	x := testutil.Axis(0, 1, 5)
	y := []float64{0, 1, 5, 3, 4}

	s, err := Calculate(x, y, 0, 4)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	testutil.RequireNearlyEqual(t, s.Background, 10, tolerance)
	testutil.RequireNearlyEqual(t, s.Net, 3, tolerance)
	testutil.RequireNearlyEqual(t, s.Centroid, 2, tolerance)
	testutil.RequireNearlyEqual(t, s.Spread, 0, tolerance)
	testutil.RequireNearlyEqual(t, s.FWHM, 1, tolerance)
}

func TestCalculateSubRegionUsesAbsoluteIndex(t *testing.T) {
	x := testutil.Axis(10, 2, 9)
	y := []float64{9, 9, 1, 1, 4, 1, 1, 9, 9}

	s, err := Calculate(x, y, 2, 6)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if s.MaxIndex != 4 {
		t.Fatalf("MaxIndex=%d want=4", s.MaxIndex)
	}
	testutil.RequireNearlyEqual(t, s.Centroid, 18, tolerance)
	testutil.RequireNearlyEqual(t, s.Net, 3, tolerance)
}

func TestCalculateGaussianLine(t *testing.T) {
	const (
		amp   = 100.0
		mu    = 100.0
		sigma = 8.0
	)
	x := testutil.Axis(0, 1, 201)
	y := testutil.Sum(testutil.GaussianLine(x, amp, mu, sigma), testutil.DC(5, len(x)))

	s, err := Calculate(x, y, 0, len(x)-1)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	testutil.RequireNearlyEqual(t, s.Centroid, mu, 1e-9)
	testutil.RequireNearlyEqual(t, s.Spread, sigma, 1e-6)
	testutil.RequireNearlyEqual(t, s.Net, amp*sigma*math.Sqrt(2*math.Pi), 1e-6)
	testutil.RequireNearlyEqual(t, s.FWHM, fwhmPerSigma*sigma, 0.05)
	testutil.RequireNearlyEqual(t, s.SigmaEstimate(), sigma, 0.02)
}

func TestCalculateNoNetContent(t *testing.T) {
	x := testutil.Axis(0, 1, 5)
	y := testutil.DC(3, 5)

	s, err := Calculate(x, y, 0, 4)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if !math.IsNaN(s.Centroid) || !math.IsNaN(s.Spread) {
		t.Fatalf("Centroid=%v Spread=%v want NaN", s.Centroid, s.Spread)
	}
	if s.FWHM != 0 {
		t.Fatalf("FWHM=%v want=0", s.FWHM)
	}
	if !math.IsNaN(s.SigmaEstimate()) {
		t.Fatalf("SigmaEstimate()=%v want NaN", s.SigmaEstimate())
	}
}

func TestCalculateInvalidRegion(t *testing.T) {
	x := testutil.Axis(0, 1, 6)
	y := testutil.DC(1, 6)

	tests := []struct {
		name   string
		x, y   []float64
		lo, hi int
	}{
		{"negative lo", x, y, -1, 3},
		{"hi past end", x, y, 0, 6},
		{"reversed", x, y, 4, 1},
		{"too short", x, y, 2, 3},
		{"length mismatch", x, y[:5], 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.x, tt.y, tt.lo, tt.hi)
			if !errors.Is(err, ErrInvalidRegion) {
				t.Fatalf("err=%v want ErrInvalidRegion", err)
			}
		})
	}
}

func TestNetVariance(t *testing.T) {
	v, err := NetVariance(testutil.DC(1, 5), 0, 4)
	if err != nil {
		t.Fatalf("NetVariance() error = %v", err)
	}
	// End weights are 1 - 5/2 = -1.5.
	testutil.RequireNearlyEqual(t, v, 2*2.25+3, tolerance)

	if _, err := NetVariance(testutil.DC(1, 5), 0, 1); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("err=%v want ErrInvalidRegion", err)
	}
}

func TestNetVarianceMatchesLinearCombination(t *testing.T) {
	// Net is linear in y, so its variance is sum(c_i^2 var_i) for the
	// coefficients obtained by differentiating Net with respect to y_i.
	x := testutil.Axis(0, 1, 8)
	variances := []float64{2, 3, 5, 7, 11, 13, 17, 19}
	lo, hi := 1, 6

	base := testutil.DC(0, len(x))
	s0, err := Calculate(x, base, lo, hi)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	want := 0.0
	for i := lo; i <= hi; i++ {
		y := testutil.DC(0, len(x))
		y[i] = 1
		s1, err := Calculate(x, y, lo, hi)
		if err != nil {
			t.Fatalf("Calculate() error = %v", err)
		}
		c := s1.Net - s0.Net
		want += c * c * variances[i]
	}

	got, err := NetVariance(variances, lo, hi)
	if err != nil {
		t.Fatalf("NetVariance() error = %v", err)
	}
	testutil.RequireNearlyEqual(t, got, want, 1e-9)
}
