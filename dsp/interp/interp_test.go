package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
	if got := Linear2(0, 2, 4); got != 2 {
		t.Fatalf("got %v want 2", got)
	}
}

func TestModeTapsAndString(t *testing.T) {
	tests := []struct {
		mode Mode
		taps int
		name string
	}{
		{Hermite, 4, "hermite"},
		{Linear, 2, "linear"},
		{None, 1, "none"},
		{Mode(9), 1, "Mode(9)"},
	}
	for _, tc := range tests {
		if got := tc.mode.Taps(); got != tc.taps {
			t.Fatalf("%v.Taps() = %d, want %d", tc.mode, got, tc.taps)
		}
		if got := tc.mode.String(); got != tc.name {
			t.Fatalf("String() = %q, want %q", got, tc.name)
		}
	}
}
