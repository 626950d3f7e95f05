package synth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
)

// Pool allocates a fixed set of voices to note events.
//
// When every voice is busy a new note steals the oldest released voice, or
// the oldest held voice if none is releasing.
type Pool struct {
	voices []*Voice
	sound  Sound
	clock  uint64
}

// NewPool creates a pool with n voices built from opts.
func NewPool(n int, opts ...VoiceOption) (*Pool, error) {
	if n <= 0 {
		return nil, fmt.Errorf("voice count must be > 0: %d", n)
	}

	p := &Pool{voices: make([]*Voice, n), sound: DefaultSound}
	for i := range p.voices {
		v, err := NewVoice(opts...)
		if err != nil {
			return nil, err
		}
		p.voices[i] = v
	}

	return p, nil
}

// Prepare prepares every voice.
func (p *Pool) Prepare(sampleRate float64, maxBlock, channels int) error {
	var errs []error
	for i, v := range p.voices {
		if err := v.Prepare(sampleRate, maxBlock, channels); err != nil {
			errs = append(errs, fmt.Errorf("voice %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// UpdateParams forwards parameter handles to every voice.
func (p *Pool) UpdateParams(src ParamSource) {
	for _, v := range p.voices {
		v.UpdateParams(src)
	}
}

// NoteOn starts note on channel. A voice already playing the same note on the
// same channel is released first.
func (p *Pool) NoteOn(channel uint8, note int, velocity float64) {
	for _, v := range p.voices {
		if v.IsActive() && v.Note() == note && v.Channel() == channel {
			v.StopNote(1, true)
		}
	}

	v := p.findFreeVoice()
	if v == nil || !v.CanRender(p.sound) {
		return
	}

	p.clock++
	v.channel = channel
	v.started = p.clock
	v.StartNote(note, velocity, p.sound, 0)
}

// NoteOff releases every held voice playing note on channel.
func (p *Pool) NoteOff(channel uint8, note int, velocity float64, allowTailOff bool) {
	for _, v := range p.voices {
		if v.IsKeyDown() && v.Note() == note && v.Channel() == channel {
			v.StopNote(velocity, allowTailOff)
		}
	}
}

// AllNotesOff releases every active voice on channel.
func (p *Pool) AllNotesOff(channel uint8, allowTailOff bool) {
	for _, v := range p.voices {
		if v.IsActive() && v.Channel() == channel {
			v.StopNote(1, allowTailOff)
		}
	}
}

// HandleEvent applies a single event immediately.
func (p *Pool) HandleEvent(ev Event) {
	switch ev.Kind {
	case NoteOn:
		if ev.Velocity == 0 {
			p.NoteOff(ev.Channel, int(ev.Note), 0, true)
			return
		}
		p.NoteOn(ev.Channel, int(ev.Note), ev.Velocity)
	case NoteOff:
		p.NoteOff(ev.Channel, int(ev.Note), ev.Velocity, true)
	case AllNotesOff:
		p.AllNotesOff(ev.Channel, true)
	}
}

// RenderNextBlock renders n frames into out starting at start, applying
// events at their offsets. Events must be ordered by offset; offsets outside
// the range are applied at the nearest edge.
func (p *Pool) RenderNextBlock(out *buffer.Buffer, events []Event, start, n int) {
	pos := start
	end := start + n

	for _, ev := range events {
		at := ev.Offset
		if at < pos {
			at = pos
		}
		if at > end {
			at = end
		}
		if at > pos {
			p.renderVoices(out, pos, at-pos)
			pos = at
		}
		p.HandleEvent(ev)
	}

	if pos < end {
		p.renderVoices(out, pos, end-pos)
	}
}

func (p *Pool) renderVoices(out *buffer.Buffer, start, n int) {
	for _, v := range p.voices {
		v.RenderNextBlock(out, start, n)
	}
}

func (p *Pool) findFreeVoice() *Voice {
	for _, v := range p.voices {
		if !v.IsActive() {
			return v
		}
	}

	var oldestReleased, oldestHeld *Voice
	for _, v := range p.voices {
		if v.IsKeyDown() {
			if oldestHeld == nil || v.started < oldestHeld.started {
				oldestHeld = v
			}
			continue
		}
		if oldestReleased == nil || v.started < oldestReleased.started {
			oldestReleased = v
		}
	}

	if oldestReleased != nil {
		return oldestReleased
	}
	return oldestHeld
}

// ActiveVoices returns the number of voices holding a note.
func (p *Pool) ActiveVoices() int {
	count := 0
	for _, v := range p.voices {
		if v.IsActive() {
			count++
		}
	}
	return count
}

// Len returns the number of voices.
func (p *Pool) Len() int { return len(p.voices) }

// Voice returns voice i, or nil when out of range.
func (p *Pool) Voice(i int) *Voice {
	if i < 0 || i >= len(p.voices) {
		return nil
	}
	return p.voices[i]
}
