package spectrum

import (
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-trace/internal/testutil"
)

func BenchmarkTransform(b *testing.B) {
	// Powers of two take the algo-fft path, the rest gonum.
	for _, n := range []int{256, 1000, 1024, 4096, 6000} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			x := testutil.UniformAxis(n, 0, 0.01)
			y := testutil.DeterministicNoise(1, 1, n)
			a := NewAnalyzer(WithLogger(zerolog.Nop()))

			b.SetBytes(int64(n * 8))
			b.ResetTimer()

			for range b.N {
				_, _ = a.Transform(x, y, UnitTime)
			}
		})
	}
}
