package synth

import "fmt"

// EventKind identifies a note event.
type EventKind uint8

const (
	NoteOn EventKind = iota + 1
	NoteOff
	AllNotesOff
)

// String implements fmt.Stringer.
func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case AllNotesOff:
		return "all-notes-off"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a note event positioned inside a block. Offset is the frame index
// in the block buffer at which the event takes effect. Channel is zero-based.
type Event struct {
	Offset   int
	Kind     EventKind
	Channel  uint8
	Note     uint8
	Velocity float64
}

// Sound describes what a voice can play. There is a single kind of sound;
// the value only carries a display name.
type Sound struct {
	Name string
}

// DefaultSound is the sound every voice accepts.
var DefaultSound = Sound{Name: "swept-sine"}
