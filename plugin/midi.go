package plugin

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-tapsynth/dsp/synth"
)

const ccAllNotesOff = 123

// DecodeMIDI converts a raw MIDI message into a note event at offset. Note-on
// with velocity 0 decodes as note-off. ok is false for anything else.
func DecodeMIDI(offset int, msg midi.Message) (ev synth.Event, ok bool) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return synth.Event{Offset: offset, Kind: synth.NoteOn, Channel: ch, Note: key, Velocity: float64(vel) / 127}, true
	case msg.GetNoteEnd(&ch, &key):
		return synth.Event{Offset: offset, Kind: synth.NoteOff, Channel: ch, Note: key}, true
	case msg.GetControlChange(&ch, &key, &vel) && key == ccAllNotesOff:
		return synth.Event{Offset: offset, Kind: synth.AllNotesOff, Channel: ch}, true
	default:
		return synth.Event{}, false
	}
}

// EncodeEvent converts a note event back into a MIDI message.
func EncodeEvent(ev synth.Event) (midi.Message, bool) {
	switch ev.Kind {
	case synth.NoteOn:
		vel := uint8(ev.Velocity*127 + 0.5)
		if vel == 0 {
			vel = 1
		}
		return midi.NoteOn(ev.Channel, ev.Note, vel), true
	case synth.NoteOff:
		return midi.NoteOff(ev.Channel, ev.Note), true
	case synth.AllNotesOff:
		return midi.ControlChange(ev.Channel, ccAllNotesOff, 0), true
	default:
		return nil, false
	}
}
