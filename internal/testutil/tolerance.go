package testutil

import (
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBinsNearlyEqual is RequireSliceNearlyEqual for complex bins,
// comparing the modulus of the difference.
func RequireBinsNearlyEqual(t testing.TB, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := cmplx.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("bin %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireNonDecreasing fails t if data ever decreases.
func RequireNonDecreasing(t testing.TB, data []float64) {
	t.Helper()
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			t.Fatalf("index %d: %v < previous %v", i, data[i], data[i-1])
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
