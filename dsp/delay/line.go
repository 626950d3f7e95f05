package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/dsp/core"
	"github.com/cwbudde/algo-tapsynth/dsp/interp"
)

// Line is a circular delay line.
//
// Delays are measured from the write head: delay 1 is the most recently
// written sample. Used as Pop followed by Push, a line set to delay d
// reproduces its input d samples later.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
	delay    float64
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the fractional interpolation used by ReadFractional and Pop.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		d.mode = mode
	}
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	d := &Line{buffer: make([]float64, size), mode: interp.Hermite, delay: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.MaxDelay() < 1 {
		return nil, fmt.Errorf("delay size %d too small for %v interpolation", size, d.mode)
	}
	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation mode.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxDelay returns the largest delay in samples the line can reproduce with
// its interpolation mode.
func (d *Line) MaxDelay() float64 {
	switch d.mode {
	case interp.Hermite:
		return float64(len(d.buffer) - 3)
	case interp.Linear:
		return float64(len(d.buffer) - 1)
	default:
		return float64(len(d.buffer))
	}
}

// SetDelay sets the delay used by Pop, clamped to [1, MaxDelay].
// It returns the delay actually applied.
func (d *Line) SetDelay(samples float64) float64 {
	if math.IsNaN(samples) {
		samples = 1
	}
	d.delay = core.Clamp(samples, 1, d.MaxDelay())
	return d.delay
}

// Delay returns the delay used by Pop.
func (d *Line) Delay() float64 {
	return d.delay
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Push writes one sample. It is the counterpart of Pop.
func (d *Line) Push(sample float64) {
	d.Write(sample)
}

// Pop reads the sample at the current delay.
func (d *Line) Pop() float64 {
	return d.ReadFractional(d.delay)
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	if delay > size {
		delay = size
	}
	readPos := (d.writePos - delay + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay with the line's interpolation mode.
// The delay is clamped to [1, MaxDelay].
func (d *Line) ReadFractional(delay float64) float64 {
	if len(d.buffer) == 0 {
		return 0
	}
	delay = core.Clamp(delay, 1, d.MaxDelay())

	p := int(math.Floor(delay))
	t := delay - float64(p)

	switch d.mode {
	case interp.None:
		return d.Read(p)
	case interp.Linear:
		if t == 0 {
			return d.Read(p)
		}
		return interp.Linear2(t, d.Read(p), d.Read(p+1))
	default:
		x0 := d.Read(p)
		if t == 0 {
			return x0
		}
		xm1 := x0
		if p > 1 {
			xm1 = d.Read(p - 1)
		}
		return interp.Hermite4(t, xm1, x0, d.Read(p+1), d.Read(p+2))
	}
}

// Reset clears line state. The configured delay is kept.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}
