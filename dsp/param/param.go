package param

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrUnknownParam is returned when an ID is not part of a Store.
var ErrUnknownParam = errors.New("param: unknown parameter")

// Spec describes one parameter: its identifier, display name, range,
// quantization step and default value.
type Spec struct {
	ID      string
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// Validate reports whether the spec describes a usable range.
func (s Spec) Validate() error {
	if s.ID == "" {
		return errors.New("param: empty id")
	}
	if math.IsNaN(s.Min) || math.IsNaN(s.Max) || math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
		return fmt.Errorf("param %q: range must be finite: [%f, %f]", s.ID, s.Min, s.Max)
	}
	if s.Min >= s.Max {
		return fmt.Errorf("param %q: min must be < max: [%f, %f]", s.ID, s.Min, s.Max)
	}
	if s.Step < 0 || math.IsNaN(s.Step) || s.Step > s.Max-s.Min {
		return fmt.Errorf("param %q: step must be in [0, %f]: %f", s.ID, s.Max-s.Min, s.Step)
	}
	return nil
}

// Snap clamps v into range and rounds it to the nearest step from Min.
// NaN snaps to the default.
func (s Spec) Snap(v float64) float64 {
	if math.IsNaN(v) {
		v = s.Default
		if math.IsNaN(v) {
			v = s.Min
		}
	}
	if v <= s.Min {
		return s.Min
	}
	if v >= s.Max {
		return s.Max
	}
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		if v > s.Max {
			v = s.Max
		}
	}
	return v
}

// Param is a single atomically readable parameter value.
type Param struct {
	spec Spec
	bits atomic.Uint64
}

func newParam(spec Spec) *Param {
	p := &Param{spec: spec}
	p.Set(spec.Default)
	return p
}

// Spec returns the parameter description.
func (p *Param) Spec() Spec {
	return p.spec
}

// ID returns the parameter identifier.
func (p *Param) ID() string {
	return p.spec.ID
}

// Value returns the current value. It is wait-free.
func (p *Param) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Set snaps v into range and stores it. It returns the stored value.
func (p *Param) Set(v float64) float64 {
	v = p.spec.Snap(v)
	p.bits.Store(math.Float64bits(v))
	return v
}

// Normalized returns the current value mapped to [0, 1].
func (p *Param) Normalized() float64 {
	return (p.Value() - p.spec.Min) / (p.spec.Max - p.spec.Min)
}

// SetNormalized sets the value from a position in [0, 1].
func (p *Param) SetNormalized(n float64) float64 {
	return p.Set(p.spec.Min + n*(p.spec.Max-p.spec.Min))
}

// Reset restores the default value.
func (p *Param) Reset() {
	p.Set(p.spec.Default)
}
