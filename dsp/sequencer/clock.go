package sequencer

import (
	"fmt"
	"math"
	"time"
)

// Clock reports elapsed milliseconds and is advanced once per block.
type Clock interface {
	Millis() int64
	Advance(numSamples int)
	Reset()
}

// SampleClock derives milliseconds from the number of rendered samples.
type SampleClock struct {
	sampleRate float64
	samples    int64
}

// NewSampleClock creates a sample-counting clock.
func NewSampleClock(sampleRate float64) (*SampleClock, error) {
	c := &SampleClock{}
	if err := c.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSampleRate changes the sample rate and restarts the count.
func (c *SampleClock) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sequencer sample rate must be > 0 and finite: %f", sampleRate)
	}
	c.sampleRate = sampleRate
	c.samples = 0
	return nil
}

// Millis returns the elapsed time in whole milliseconds.
func (c *SampleClock) Millis() int64 {
	return int64(float64(c.samples) * 1000 / c.sampleRate)
}

// Advance adds numSamples to the count. Negative values are ignored.
func (c *SampleClock) Advance(numSamples int) {
	if numSamples > 0 {
		c.samples += int64(numSamples)
	}
}

// Reset restarts the count at zero.
func (c *SampleClock) Reset() {
	c.samples = 0
}

// Samples returns the accumulated sample count.
func (c *SampleClock) Samples() int64 {
	return c.samples
}

// WallClock reports elapsed monotonic time. Its phase depends on host
// scheduling and is not reproducible across runs.
type WallClock struct {
	now   func() time.Time
	start time.Time
}

// NewWallClock creates a clock that counts from the moment it is created.
func NewWallClock() *WallClock {
	return newWallClock(time.Now)
}

func newWallClock(now func() time.Time) *WallClock {
	return &WallClock{now: now, start: now()}
}

// Millis returns the milliseconds elapsed since the clock was created. It
// reads the monotonic clock, so wall-time adjustments do not move it.
func (c *WallClock) Millis() int64 {
	return c.now().Sub(c.start).Milliseconds()
}

// Advance is a no-op; wall time advances by itself.
func (c *WallClock) Advance(int) {}

// Reset is a no-op.
func (c *WallClock) Reset() {}
