package sequencer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/dsp/synth"
)

// Action is the gate decision for one block.
type Action uint8

const (
	None Action = iota
	NoteOn
	NoteOff
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case None:
		return "none"
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

const (
	defaultNote     = 60
	defaultVelocity = 1.0
)

// CycleValue reduces a millisecond counter to the cycle value in [0, 9].
func CycleValue(ms int64) int {
	m := ms % 1000
	if m < 0 {
		m += 1000
	}
	return int(m / 100)
}

// GateFor maps a cycle value to an action. The even check comes first, so 0
// and 6 close the gate.
func GateFor(v int) Action {
	switch {
	case v%2 == 0:
		return NoteOff
	case v%3 == 0:
		return NoteOn
	default:
		return None
	}
}

// Option mutates sequencer construction parameters.
type Option func(*Sequencer) error

// WithClock replaces the default sample clock.
func WithClock(c Clock) Option {
	return func(s *Sequencer) error {
		if c == nil {
			return fmt.Errorf("sequencer clock must not be nil")
		}
		s.clock = c
		return nil
	}
}

// WithNote sets the gated MIDI note.
func WithNote(note uint8) Option {
	return func(s *Sequencer) error {
		if note > 127 {
			return fmt.Errorf("sequencer note must be in [0, 127]: %d", note)
		}
		s.note = note
		return nil
	}
}

// WithVelocity sets the note-on velocity in (0, 1].
func WithVelocity(velocity float64) Option {
	return func(s *Sequencer) error {
		if velocity <= 0 || velocity > 1 || math.IsNaN(velocity) {
			return fmt.Errorf("sequencer velocity must be in (0, 1]: %f", velocity)
		}
		s.velocity = velocity
		return nil
	}
}

// WithChannel sets the zero-based MIDI channel.
func WithChannel(channel uint8) Option {
	return func(s *Sequencer) error {
		if channel > 15 {
			return fmt.Errorf("sequencer channel must be in [0, 15]: %d", channel)
		}
		s.channel = channel
		return nil
	}
}

// Sequencer gates a fixed note once per block.
type Sequencer struct {
	clock    Clock
	note     uint8
	velocity float64
	channel  uint8
}

// New creates a sequencer on a sample clock at sampleRate.
func New(sampleRate float64, opts ...Option) (*Sequencer, error) {
	clock, err := NewSampleClock(sampleRate)
	if err != nil {
		return nil, err
	}

	s := &Sequencer{
		clock:    clock,
		note:     defaultNote,
		velocity: defaultVelocity,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetSampleRate retunes a sample clock and restarts it. Other clocks are
// only reset.
func (s *Sequencer) SetSampleRate(sampleRate float64) error {
	if sc, ok := s.clock.(*SampleClock); ok {
		return sc.SetSampleRate(sampleRate)
	}
	s.clock.Reset()
	return nil
}

// Next samples the clock at block entry, advances it by numSamples and
// returns the gate action for the block.
func (s *Sequencer) Next(numSamples int) Action {
	v := CycleValue(s.clock.Millis())
	s.clock.Advance(numSamples)
	return GateFor(v)
}

// Step is Next expressed as a note event at offset 0. ok is false for None.
func (s *Sequencer) Step(numSamples int) (ev synth.Event, ok bool) {
	switch s.Next(numSamples) {
	case NoteOn:
		return synth.Event{Kind: synth.NoteOn, Channel: s.channel, Note: s.note, Velocity: s.velocity}, true
	case NoteOff:
		return synth.Event{Kind: synth.NoteOff, Channel: s.channel, Note: s.note, Velocity: s.velocity}, true
	default:
		return synth.Event{}, false
	}
}

// Reset restarts the clock.
func (s *Sequencer) Reset() {
	s.clock.Reset()
}

// Note returns the gated note.
func (s *Sequencer) Note() uint8 { return s.note }

// Channel returns the zero-based channel.
func (s *Sequencer) Channel() uint8 { return s.channel }

// Clock returns the active clock.
func (s *Sequencer) Clock() Clock { return s.clock }
