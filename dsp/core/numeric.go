package core

import "math"

const defaultEpsilon = 1e-12

// Reference tuning for MIDI note conversions.
const (
	ReferenceNote = 69
	ReferenceHz   = 440.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// WrapPhase maps a normalized phase into [0, 1), whatever its magnitude or sign.
func WrapPhase(phase float64) float64 {
	if phase >= 0 && phase < 1 {
		return phase
	}

	phase -= math.Floor(phase)
	// Floor can round a tiny negative value up to exactly 1.
	if phase >= 1 {
		phase = 0
	}

	return phase
}

// MIDINoteToHz converts a MIDI note number to frequency in equal temperament
// with A4 (note 69) at 440 Hz.
func MIDINoteToHz(note int) float64 {
	return ReferenceHz * math.Pow(2, float64(note-ReferenceNote)/12)
}

// HzToMIDINote converts a frequency to a fractional MIDI note number.
// Returns NaN for non-positive frequencies.
func HzToMIDINote(hz float64) float64 {
	if hz <= 0 {
		return math.NaN()
	}

	return ReferenceNote + 12*math.Log2(hz/ReferenceHz)
}
