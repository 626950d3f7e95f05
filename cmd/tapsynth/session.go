package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
	"github.com/cwbudde/algo-tapsynth/dsp/osc"
	"github.com/cwbudde/algo-tapsynth/dsp/synth"
	"github.com/cwbudde/algo-tapsynth/plugin"
)

// sessionFlags are shared by render and play.
type sessionFlags struct {
	rate      float64
	block     int
	channels  int
	seconds   float64
	voices    int
	waveform  string
	preset    string
	notes     string
	noteMs    float64
	noSeq     bool
	startNote bool
	dryMix    float64
	clampGain bool
	values    map[string]*float64
}

func registerSessionFlags(fs *flag.FlagSet) *sessionFlags {
	f := &sessionFlags{values: make(map[string]*float64)}
	fs.Float64Var(&f.rate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&f.block, "block", 512, "block size in frames")
	fs.IntVar(&f.channels, "channels", 2, "output channels (1 or 2)")
	fs.Float64Var(&f.seconds, "seconds", 3, "duration in seconds")
	fs.IntVar(&f.voices, "voices", 4, "polyphony")
	fs.StringVar(&f.waveform, "wave", "sine", "carrier waveform: sine, triangle, saw, square")
	fs.StringVar(&f.preset, "preset", "", "YAML state file with parameter values")
	fs.StringVar(&f.notes, "notes", "", `note script, e.g. "C4 E4 G4 r C5"`)
	fs.Float64Var(&f.noteMs, "note-ms", 400, "note script step length in milliseconds")
	fs.BoolVar(&f.noSeq, "no-seq", false, "disable the built-in gate sequencer")
	fs.BoolVar(&f.startNote, "start-note", false, "play middle C when the stream starts")
	fs.Float64Var(&f.dryMix, "dry", 0, "dry signal level added to the spatialized output")
	fs.BoolVar(&f.clampGain, "clamp-gain", false, "keep distance gains inside [0, 1]")
	for _, spec := range plugin.ParameterLayout() {
		v := fs.Float64(spec.ID, -1, fmt.Sprintf("%s [%g, %g] (overrides preset)", spec.Name, spec.Min, spec.Max))
		f.values[spec.ID] = v
	}
	return f
}

// session drives a processor block by block with scripted note events.
type session struct {
	proc     *plugin.Processor
	schedule []scheduledMessage
	next     int
	frame    int
	full     *buffer.Buffer
	events   []synth.Event
	channels int
	block    int
}

func (f *sessionFlags) newSession() (*session, error) {
	wave := osc.ParseWaveform(f.waveform)
	if wave.String() != f.waveform && f.waveform != "" {
		return nil, fmt.Errorf("unknown waveform %q", f.waveform)
	}

	proc, err := plugin.New(
		plugin.WithVoices(f.voices),
		plugin.WithVoiceOptions(synth.WithWaveform(wave)),
		plugin.WithSequencer(!f.noSeq),
		plugin.WithStartNote(f.startNote),
		plugin.WithDryMix(f.dryMix),
		plugin.WithGainClamp(f.clampGain),
	)
	if err != nil {
		return nil, err
	}

	if f.preset != "" {
		data, err := os.ReadFile(f.preset)
		if err != nil {
			return nil, err
		}
		if err := proc.SetState(data); err != nil {
			return nil, fmt.Errorf("preset %s: %w", f.preset, err)
		}
	}
	for id, v := range f.values {
		if *v < 0 {
			continue
		}
		if _, err := proc.Params().Set(id, *v); err != nil {
			return nil, err
		}
	}

	if err := proc.Prepare(f.rate, f.block, f.channels); err != nil {
		return nil, err
	}

	var schedule []scheduledMessage
	if f.notes != "" {
		if schedule, err = scheduleNotes(f.notes, f.noteMs, f.rate); err != nil {
			return nil, err
		}
	}

	return &session{
		proc:     proc,
		schedule: schedule,
		full:     buffer.New(f.channels, f.block),
		events:   make([]synth.Event, 0, 16),
		channels: f.channels,
		block:    f.block,
	}, nil
}

// render produces the next n frames, n <= block size.
func (s *session) render(n int) *buffer.Buffer {
	buf := s.full
	if n != s.block {
		buf = buffer.New(s.channels, n)
	}

	s.events = s.events[:0]
	end := s.frame + n
	for s.next < len(s.schedule) && s.schedule[s.next].frame < end {
		msg := s.schedule[s.next]
		if ev, ok := plugin.DecodeMIDI(msg.frame-s.frame, msg.msg); ok {
			s.events = append(s.events, ev)
		}
		s.next++
	}

	s.proc.ProcessBlock(buf, s.events)
	s.frame = end
	return buf
}
