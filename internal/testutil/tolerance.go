// Package testutil holds assertions and deterministic signals shared by the
// package tests.
package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
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

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSilent fails t if any element from index from onwards is not
// exactly zero.
func RequireSilent(t *testing.T, data []float64, from int) {
	t.Helper()
	if from < 0 {
		from = 0
	}
	for i := from; i < len(data); i++ {
		if data[i] != 0 {
			t.Fatalf("index %d: got %v, want silence", i, data[i])
		}
	}
}

// Energy returns the sum of squared samples.
func Energy(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return sum
}

// FirstNonZero returns the index of the first non-zero sample, or -1.
func FirstNonZero(data []float64) int {
	for i, v := range data {
		if v != 0 {
			return i
		}
	}
	return -1
}
