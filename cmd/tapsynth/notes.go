package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gitlab.com/gomidi/midi/v2"
)

const (
	scriptChannel  = 0
	scriptVelocity = 100
	// Fraction of a step the key stays down.
	scriptGate = 0.75
)

type scheduledMessage struct {
	frame int
	msg   midi.Message
}

// scheduleNotes turns a note script into frame-stamped MIDI messages. Each
// token takes one step of stepMs milliseconds.
func scheduleNotes(text string, stepMs, sampleRate float64) ([]scheduledMessage, error) {
	if stepMs <= 0 {
		return nil, fmt.Errorf("note step must be > 0: %f", stepMs)
	}
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no notes provided")
	}

	step := stepMs * sampleRate / 1000
	out := make([]scheduledMessage, 0, 2*len(tokens))
	for i, tok := range tokens {
		n, isRest, err := parseNoteToken(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid note %q: %w", tok, err)
		}
		if isRest {
			continue
		}
		on := int(float64(i) * step)
		off := int((float64(i) + scriptGate) * step)
		out = append(out,
			scheduledMessage{frame: on, msg: midi.NoteOn(scriptChannel, n, scriptVelocity)},
			scheduledMessage{frame: off, msg: midi.NoteOff(scriptChannel, n)},
		)
	}
	return out, nil
}

// parseNoteToken accepts note names like C4, F#3 or Bb2, plain MIDI numbers,
// and "r" or "rest".
func parseNoteToken(tok string) (uint8, bool, error) {
	t := strings.TrimSpace(tok)
	if t == "" {
		return 0, false, fmt.Errorf("empty token")
	}
	if strings.EqualFold(t, "r") || strings.EqualFold(t, "rest") {
		return 0, true, nil
	}
	if n, err := strconv.Atoi(t); err == nil {
		if n < 0 || n > 127 {
			return 0, false, fmt.Errorf("MIDI note out of range: %d", n)
		}
		return uint8(n), false, nil
	}
	if len(t) < 2 {
		return 0, false, fmt.Errorf("too short")
	}

	semitone, ok := map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}[byte(unicode.ToUpper(rune(t[0])))]
	if !ok {
		return 0, false, fmt.Errorf("invalid note letter %q", t[:1])
	}

	rest := t[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}
	if rest == "" {
		return 0, false, fmt.Errorf("missing octave")
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false, fmt.Errorf("invalid octave: %w", err)
	}

	n := 12*(octave+1) + semitone
	if n < 0 || n > 127 {
		return 0, false, fmt.Errorf("MIDI note out of range: %d", n)
	}
	return uint8(n), false, nil
}
