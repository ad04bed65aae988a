package region

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{64, 1024, 16384} {
		x := testutil.Axis(0, 1, n)
		y := testutil.Sum(
			testutil.GaussianLine(x, 1000, float64(n)/2, float64(n)/50),
			testutil.LinearContinuum(x, 0.01, 20),
		)

		b.Run(fmt.Sprintf("channels=%d", n), func(b *testing.B) {
			b.SetBytes(int64(n * 8))
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_, _ = Calculate(x, y, 0, n-1)
			}
		})
	}
}
