package window

import (
	"strconv"
	"testing"
)

func BenchmarkGenerate(b *testing.B) {
	sizes := []int{256, 1024, 4096}
	for _, n := range sizes {
		b.Run("hann/"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Generate(TypeHann, n, WithPeriodic())
			}
		})
	}
}

func BenchmarkApplyCoefficients(b *testing.B) {
	coeffs := Generate(TypeHann, 1024, WithPeriodic())
	src := make([]float64, len(coeffs))
	dst := make([]float64, len(coeffs))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ApplyCoefficients(dst, src, coeffs)
	}
}
