package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails tb if got and want differ in length or if
// any element pair differs by more than eps. The failure names the worst
// offending index rather than the first.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()

	if len(got) != len(want) {
		tb.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	idx, diff := worstDiff(got, want)
	if diff > eps {
		tb.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", idx, got[idx], want[idx], diff, eps)
	}
}

// RequireFinite fails tb if any element is NaN or Inf.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireAllZero fails tb if any element is not exactly zero.
func RequireAllZero(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if v != 0 {
			tb.Fatalf("index %d: got %v, want 0", i, v)
		}
	}
}

// worstDiff returns the index and size of the largest absolute difference.
// NaN differences count as infinite. Both slices must have equal length.
func worstDiff(a, b []float64) (int, float64) {
	idx, worst := 0, 0.0

	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}

		if d > worst {
			idx, worst = i, d
		}
	}

	return idx, worst
}
