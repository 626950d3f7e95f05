package dither

import (
	"fmt"
	"strings"
)

// Type selects the probability distribution used for dither noise.
type Type int

const (
	// None rounds without adding noise.
	None Type = iota
	// Rectangular adds uniform noise of one LSB peak.
	Rectangular
	// Triangular adds TPDF noise, the sum of two uniform draws.
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rectangular", "triangular"}

// String returns the lower-case name of the dither type.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType maps a name such as "tpdf" or "none" to a Type.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "off":
		return None, nil
	case "rectangular", "rpdf":
		return Rectangular, nil
	case "triangular", "tpdf":
		return Triangular, nil
	}
	return None, fmt.Errorf("dither: unknown type %q", name)
}
