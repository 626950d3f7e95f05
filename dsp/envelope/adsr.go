package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
)

const (
	defaultAttackSeconds  = 0.1
	defaultDecaySeconds   = 0.1
	defaultSustainLevel   = 1.0
	defaultReleaseSeconds = 0.1

	// levelEpsilon absorbs accumulated rounding at segment boundaries.
	levelEpsilon = 1e-9
)

// Stage is the current envelope segment.
type Stage int

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Option mutates envelope construction parameters.
type Option func(*config) error

type config struct {
	attack  float64
	decay   float64
	sustain float64
	release float64
}

func defaultConfig() config {
	return config{
		attack:  defaultAttackSeconds,
		decay:   defaultDecaySeconds,
		sustain: defaultSustainLevel,
		release: defaultReleaseSeconds,
	}
}

func validSeconds(name string, seconds float64) error {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("envelope %s must be >= 0 and finite: %f", name, seconds)
	}
	return nil
}

// WithAttack sets the attack time in seconds. Zero jumps straight to the peak.
func WithAttack(seconds float64) Option {
	return func(cfg *config) error {
		if err := validSeconds("attack", seconds); err != nil {
			return err
		}
		cfg.attack = seconds
		return nil
	}
}

// WithDecay sets the decay time in seconds.
func WithDecay(seconds float64) Option {
	return func(cfg *config) error {
		if err := validSeconds("decay", seconds); err != nil {
			return err
		}
		cfg.decay = seconds
		return nil
	}
}

// WithSustain sets the sustain level in [0, 1].
func WithSustain(level float64) Option {
	return func(cfg *config) error {
		if level < 0 || level > 1 || math.IsNaN(level) {
			return fmt.Errorf("envelope sustain must be in [0, 1]: %f", level)
		}
		cfg.sustain = level
		return nil
	}
}

// WithRelease sets the release time in seconds. Zero silences immediately on NoteOff.
func WithRelease(seconds float64) Option {
	return func(cfg *config) error {
		if err := validSeconds("release", seconds); err != nil {
			return err
		}
		cfg.release = seconds
		return nil
	}
}

// ADSR is a linear attack-decay-sustain-release envelope.
//
// It is real-time safe and not thread-safe.
type ADSR struct {
	sampleRate float64
	cfg        config

	attackRate  float64
	decayRate   float64
	releaseRate float64

	stage Stage
	value float64
}

// New creates an idle envelope for sampleRate with optional timing overrides.
func New(sampleRate float64, opts ...Option) (*ADSR, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	e := &ADSR{sampleRate: sampleRate, cfg: cfg}
	e.updateRates()
	return e, nil
}

// SetSampleRate recomputes segment rates and resets the envelope to Idle.
func (e *ADSR) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("envelope sample rate must be > 0 and finite: %f", sampleRate)
	}
	e.sampleRate = sampleRate
	e.updateRates()
	e.Reset()
	return nil
}

func (e *ADSR) updateRates() {
	e.attackRate = 0
	if e.cfg.attack > 0 {
		e.attackRate = 1 / (e.cfg.attack * e.sampleRate)
	}
	e.decayRate = 0
	if e.cfg.decay > 0 {
		e.decayRate = (1 - e.cfg.sustain) / (e.cfg.decay * e.sampleRate)
	}
}

// NoteOn starts the attack from the current level, whatever the stage.
func (e *ADSR) NoteOn() {
	switch {
	case e.attackRate > 0:
		e.stage = Attack
	case e.decayRate > 0:
		e.value = 1
		e.stage = Decay
	default:
		e.value = e.cfg.sustain
		e.stage = Sustain
	}
}

// NoteOff starts the release from the current level. It is a no-op when Idle.
// A release from zero level reaches Idle on the next sample.
func (e *ADSR) NoteOff() {
	if e.stage == Idle {
		return
	}
	if e.cfg.release > 0 {
		e.releaseRate = 0
		if e.value > 0 {
			e.releaseRate = e.value / (e.cfg.release * e.sampleRate)
		}
		e.stage = Release
		return
	}
	e.Reset()
}

// Reset returns the envelope to Idle at zero level.
func (e *ADSR) Reset() {
	e.stage = Idle
	e.value = 0
}

// IsActive reports whether the envelope is anywhere but Idle.
func (e *ADSR) IsActive() bool {
	return e.stage != Idle
}

// Stage returns the current segment.
func (e *ADSR) Stage() Stage {
	return e.stage
}

// Value returns the most recent envelope level.
func (e *ADSR) Value() float64 {
	return e.value
}

// Next advances the envelope by one sample and returns the new level.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case Attack:
		e.value += e.attackRate
		if e.value >= 1-levelEpsilon {
			e.value = 1
			if e.decayRate > 0 {
				e.stage = Decay
			} else {
				e.stage = Sustain
			}
		}
	case Decay:
		e.value -= e.decayRate
		if e.value <= e.cfg.sustain+levelEpsilon {
			e.value = e.cfg.sustain
			e.stage = Sustain
		}
	case Sustain:
		e.value = e.cfg.sustain
	case Release:
		e.value -= e.releaseRate
		if e.value <= levelEpsilon {
			e.Reset()
		}
	default:
		e.value = 0
	}
	return e.value
}

// Render writes successive envelope levels into dst.
func (e *ADSR) Render(dst []float64) {
	for i := range dst {
		dst[i] = e.Next()
	}
}

// ApplyToBuffer multiplies every channel of buf in [start, start+n) by the
// envelope and advances it by n samples. While Idle the range is silenced and
// the envelope is left untouched.
func (e *ADSR) ApplyToBuffer(buf *buffer.Buffer, start, n int) {
	if start < 0 {
		start = 0
	}
	end := start + n
	if end > buf.Frames() {
		end = buf.Frames()
	}
	if e.stage == Idle {
		buf.ZeroRange(start, end)
		return
	}

	channels := buf.NumChannels()
	for i := start; i < end; i++ {
		v := e.Next()
		for ch := 0; ch < channels; ch++ {
			buf.Channel(ch)[i] *= v
		}
	}
}
