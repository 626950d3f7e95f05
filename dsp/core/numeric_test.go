package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(-0.25); got != -0.25 {
		t.Fatalf("FlushDenormals(-0.25) = %v, want -0.25", got)
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 0.25, want: 0.25},
		{in: 1, want: 0},
		{in: 1.25, want: 0.25},
		{in: 7.5, want: 0.5},
		{in: -0.25, want: 0.75},
		{in: -1e-18, want: 0},
	}

	for _, tt := range tests {
		got := WrapPhase(tt.in)
		if got < 0 || got >= 1 {
			t.Fatalf("WrapPhase(%v) = %v, outside [0,1)", tt.in, got)
		}
		if !NearlyEqual(got, tt.want, 1e-12) {
			t.Fatalf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMIDINoteToHz(t *testing.T) {
	tests := []struct {
		note int
		want float64
	}{
		{note: 69, want: 440},
		{note: 60, want: 261.6256},
		{note: 81, want: 880},
		{note: 57, want: 220},
	}

	for _, tt := range tests {
		got := MIDINoteToHz(tt.note)
		if math.Abs(got-tt.want) > 1e-3 {
			t.Fatalf("MIDINoteToHz(%d) = %v, want %v", tt.note, got, tt.want)
		}
	}
}

func TestHzToMIDINote(t *testing.T) {
	if got := HzToMIDINote(MIDINoteToHz(60)); !NearlyEqual(got, 60, 1e-9) {
		t.Fatalf("HzToMIDINote(MIDINoteToHz(60)) = %v, want 60", got)
	}
	if !math.IsNaN(HzToMIDINote(0)) {
		t.Fatal("expected NaN for zero frequency")
	}
}
