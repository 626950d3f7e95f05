// Package envelope provides the attack-decay-sustain-release amplitude
// envelope used by synth voices.
//
// Segments are linear in amplitude. NoteOn always restarts the attack from
// the current level, NoteOff releases from the current level, and the
// envelope returns to Idle once the release reaches zero.
package envelope
