package osc

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/dsp/core"
)

const defaultLFORateScale = 2000.0

// Waveform selects the carrier shape.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
	Saw
	Square
)

// ParseWaveform maps a name to a Waveform. Unknown names yield Sine.
func ParseWaveform(name string) Waveform {
	switch name {
	case "triangle":
		return Triangle
	case "saw":
		return Saw
	case "square":
		return Square
	default:
		return Sine
	}
}

// String implements fmt.Stringer.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	case Saw:
		return "saw"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// Option mutates oscillator construction parameters.
type Option func(*Oscillator) error

// WithWaveform selects the carrier shape.
func WithWaveform(w Waveform) Option {
	return func(o *Oscillator) error {
		if w < Sine || w > Square {
			return fmt.Errorf("oscillator waveform out of range: %d", int(w))
		}
		o.waveform = w
		return nil
	}
}

// WithLFORateScale sets the factor applied to the LFO speed parameter before
// it is turned into a per-block phase increment.
func WithLFORateScale(scale float64) Option {
	return func(o *Oscillator) error {
		if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return fmt.Errorf("oscillator lfo rate scale must be > 0 and finite: %f", scale)
		}
		o.lfoRateScale = scale
		return nil
	}
}

// SweepFrequency returns the carrier frequency for an LFO phase in [0, 1).
func SweepFrequency(minFreq, maxFreq, lfoPhase float64) float64 {
	lfo := math.Sin(2 * math.Pi * lfoPhase)
	return minFreq + (maxFreq-minFreq)*(0.5+0.5*lfo)
}

// Oscillator is a continuous-phase carrier whose frequency an LFO sweeps
// between two bounds.
//
// It is real-time safe and not thread-safe.
type Oscillator struct {
	sampleRate   float64
	waveform     Waveform
	lfoRateScale float64

	freq     float64
	phase    float64
	lfoPhase float64
}

// New creates an oscillator at 440 Hz for the given sample rate.
func New(sampleRate float64, opts ...Option) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}

	o := &Oscillator{
		sampleRate:   sampleRate,
		waveform:     Sine,
		lfoRateScale: defaultLFORateScale,
		freq:         core.ReferenceHz,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// SetSampleRate updates the sample rate and resets both phases.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}
	o.sampleRate = sampleRate
	o.Reset()
	return nil
}

// SetFrequency sets the carrier frequency in Hz. Negative or non-finite
// values are ignored.
func (o *Oscillator) SetFrequency(hz float64) {
	if hz < 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return
	}
	o.freq = hz
}

// Modulate advances the LFO by one block step and retunes the carrier to the
// sweep law. It returns the new carrier frequency.
func (o *Oscillator) Modulate(lfoSpeed, minFreq, maxFreq float64) float64 {
	o.lfoPhase = core.WrapPhase(o.lfoPhase + o.lfoRateScale*lfoSpeed/o.sampleRate)
	o.SetFrequency(SweepFrequency(minFreq, maxFreq, o.lfoPhase))
	return o.freq
}

// Render writes len(dst) samples at the current frequency.
func (o *Oscillator) Render(dst []float64) {
	dt := o.freq / o.sampleRate
	if dt >= 0.5 {
		// At or above Nyquist nothing band-limited is left to play.
		for i := range dst {
			dst[i] = 0
		}
		o.phase = core.WrapPhase(o.phase + dt*float64(len(dst)))
		return
	}

	for i := range dst {
		dst[i] = o.sample(dt)
		o.phase += dt
		if o.phase >= 1 {
			o.phase -= 1
		}
	}
}

func (o *Oscillator) sample(dt float64) float64 {
	p := o.phase
	switch o.waveform {
	case Saw:
		return 2*p - 1 - polyBLEP(p, dt)
	case Square:
		return squareBLEP(p, dt)
	case Triangle:
		// Continuous shape; only the slope breaks, so aliasing stays low.
		return 4*math.Abs(p-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

func squareBLEP(p, dt float64) float64 {
	v := 1.0
	if p >= 0.5 {
		v = -1
	}
	v += polyBLEP(p, dt)
	return v - polyBLEP(math.Mod(p+0.5, 1), dt)
}

// polyBLEP returns the two-sample polynomial correction for a unit step at
// phase 0.
func polyBLEP(t, dt float64) float64 {
	switch {
	case t < dt:
		t /= dt
		return t + t - t*t - 1
	case t > 1-dt:
		t = (t - 1) / dt
		return t*t + t + t + 1
	default:
		return 0
	}
}

// Reset zeroes carrier and LFO phases.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.lfoPhase = 0
}

// Frequency returns the current carrier frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Phase returns the carrier phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// LFOPhase returns the LFO phase in [0, 1).
func (o *Oscillator) LFOPhase() float64 { return o.lfoPhase }

// Waveform returns the carrier shape.
func (o *Oscillator) Waveform() Waveform { return o.waveform }

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }
