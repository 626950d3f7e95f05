package testutil

import "testing"

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{1, -2, 0.5}); got != 5.25 {
		t.Fatalf("Energy = %v, want 5.25", got)
	}
	if got := Energy(nil); got != 0 {
		t.Fatalf("Energy(nil) = %v, want 0", got)
	}
}

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero([]float64{0, 0, -1, 2}); got != 2 {
		t.Fatalf("FirstNonZero = %d, want 2", got)
	}
	if got := FirstNonZero([]float64{0, 0}); got != -1 {
		t.Fatalf("FirstNonZero = %d, want -1", got)
	}
}

func TestRequireSilentPassesOnTail(t *testing.T) {
	RequireSilent(t, []float64{3, 0, 0}, 1)
	RequireSilent(t, []float64{0}, -5)
}
