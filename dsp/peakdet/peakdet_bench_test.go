package peakdet

import (
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func BenchmarkDetect(b *testing.B) {
	x := testutil.Axis(0, 1, 8192)
	v := testutil.Sum(
		testutil.GaussianLine(x, 100, 2000, 8),
		testutil.GaussianLine(x, 60, 6000, 12),
		testutil.DeterministicNoise(1, 2, len(x)),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Detect(v, 10)
	}
}
