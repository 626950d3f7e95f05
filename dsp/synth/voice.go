package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
	"github.com/cwbudde/algo-tapsynth/dsp/core"
	"github.com/cwbudde/algo-tapsynth/dsp/envelope"
	"github.com/cwbudde/algo-tapsynth/dsp/osc"
	"github.com/cwbudde/algo-tapsynth/dsp/param"
)

// Parameter IDs a voice reads once per block.
const (
	ParamLFOSpeed = "lfoSpeed"
	ParamMinFreq  = "minFreq"
	ParamMaxFreq  = "maxFreq"
)

const (
	defaultVoiceGain       = 0.3
	defaultVoiceSampleRate = 48000.0
)

// ParamSource resolves parameter handles by ID. *param.Store implements it.
type ParamSource interface {
	Lookup(id string) *param.Param
}

// Renderer is the capability contract a voice pool relies on.
type Renderer interface {
	CanRender(sound Sound) bool
	StartNote(note int, velocity float64, sound Sound, pitchWheel int)
	StopNote(velocity float64, allowTailOff bool)
	UpdateParams(src ParamSource)
	RenderNextBlock(out *buffer.Buffer, start, n int)
	IsActive() bool
}

// VoiceOption mutates voice construction parameters.
type VoiceOption func(*voiceConfig) error

type voiceConfig struct {
	gain     float64
	oscOpts  []osc.Option
	envOpts  []envelope.Option
	waveform osc.Waveform
}

// WithGain sets the fixed linear gain applied before the envelope.
func WithGain(gain float64) VoiceOption {
	return func(cfg *voiceConfig) error {
		if gain < 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
			return fmt.Errorf("voice gain must be >= 0 and finite: %f", gain)
		}
		cfg.gain = gain
		return nil
	}
}

// WithWaveform selects the carrier shape.
func WithWaveform(w osc.Waveform) VoiceOption {
	return func(cfg *voiceConfig) error {
		cfg.waveform = w
		return nil
	}
}

// WithOscillatorOptions forwards options to the voice oscillator.
func WithOscillatorOptions(opts ...osc.Option) VoiceOption {
	return func(cfg *voiceConfig) error {
		cfg.oscOpts = append(cfg.oscOpts, opts...)
		return nil
	}
}

// WithEnvelopeOptions forwards options to the voice envelope.
func WithEnvelopeOptions(opts ...envelope.Option) VoiceOption {
	return func(cfg *voiceConfig) error {
		cfg.envOpts = append(cfg.envOpts, opts...)
		return nil
	}
}

// Voice renders a single note. It must be prepared before it makes sound.
//
// A Voice is real-time safe and not thread-safe.
type Voice struct {
	gain float64

	osc     *osc.Oscillator
	env     *envelope.ADSR
	scratch *buffer.Buffer

	prepared bool
	active   bool
	keyDown  bool
	note     int
	channel  uint8
	velocity float64
	started  uint64
	ended    uint64

	lfoSpeed *param.Param
	minFreq  *param.Param
	maxFreq  *param.Param
}

// NewVoice creates an unprepared, inactive voice.
func NewVoice(opts ...VoiceOption) (*Voice, error) {
	cfg := voiceConfig{gain: defaultVoiceGain, waveform: osc.Sine}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	o, err := osc.New(defaultVoiceSampleRate, append([]osc.Option{osc.WithWaveform(cfg.waveform)}, cfg.oscOpts...)...)
	if err != nil {
		return nil, err
	}
	env, err := envelope.New(defaultVoiceSampleRate, cfg.envOpts...)
	if err != nil {
		return nil, err
	}

	return &Voice{
		gain: cfg.gain,
		osc:  o,
		env:  env,
		note: -1,
	}, nil
}

// Prepare sizes the scratch buffer and resets oscillator and envelope state.
func (v *Voice) Prepare(sampleRate float64, maxBlock, channels int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlock, Channels: channels}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("voice prepare: %w", err)
	}
	if err := v.osc.SetSampleRate(sampleRate); err != nil {
		return err
	}
	if err := v.env.SetSampleRate(sampleRate); err != nil {
		return err
	}
	v.scratch = buffer.New(channels, maxBlock)
	v.active = false
	v.keyDown = false
	v.note = -1
	v.prepared = true
	return nil
}

// CanRender reports whether the voice can play sound. Every sound qualifies.
func (v *Voice) CanRender(Sound) bool {
	return true
}

// StartNote tunes the oscillator to note and opens the envelope.
func (v *Voice) StartNote(note int, velocity float64, _ Sound, _ int) {
	v.osc.SetFrequency(core.MIDINoteToHz(note))
	v.env.NoteOn()
	v.note = note
	v.velocity = velocity
	v.keyDown = true
	v.active = true
}

// StopNote releases the envelope. The tail always plays out, whatever
// allowTailOff says.
func (v *Voice) StopNote(_ float64, _ bool) {
	v.keyDown = false
	v.env.NoteOff()
}

// PitchWheelMoved is accepted and ignored.
func (v *Voice) PitchWheelMoved(int) {}

// ControllerMoved is accepted and ignored.
func (v *Voice) ControllerMoved(int, int) {}

// UpdateParams caches the modulation parameter handles. Missing handles
// disable modulation until a later call supplies them.
func (v *Voice) UpdateParams(src ParamSource) {
	if src == nil {
		v.lfoSpeed, v.minFreq, v.maxFreq = nil, nil, nil
		return
	}
	v.lfoSpeed = src.Lookup(ParamLFOSpeed)
	v.minFreq = src.Lookup(ParamMinFreq)
	v.maxFreq = src.Lookup(ParamMaxFreq)
}

// RenderNextBlock adds n frames of the note to out starting at start. It does
// nothing while unprepared or inactive. When the envelope has finished the
// voice frees itself.
func (v *Voice) RenderNextBlock(out *buffer.Buffer, start, n int) {
	if !v.prepared || !v.active || out == nil {
		return
	}
	if n > v.scratch.Frames() {
		n = v.scratch.Frames()
	}
	if start < 0 {
		return
	}
	if start+n > out.Frames() {
		n = out.Frames() - start
	}
	if n <= 0 {
		return
	}

	v.scratch.ZeroRange(0, n)

	if v.lfoSpeed != nil && v.minFreq != nil && v.maxFreq != nil {
		v.osc.Modulate(v.lfoSpeed.Value(), v.minFreq.Value(), v.maxFreq.Value())
	}

	first := v.scratch.Channel(0)[:n]
	v.osc.Render(first)
	for ch := 1; ch < v.scratch.NumChannels(); ch++ {
		copy(v.scratch.Channel(ch)[:n], first)
	}
	for ch := 0; ch < v.scratch.NumChannels(); ch++ {
		v.scratch.ApplyGain(ch, 0, n, v.gain)
	}
	v.env.ApplyToBuffer(v.scratch, 0, n)

	for ch := 0; ch < out.NumChannels(); ch++ {
		out.AddFrom(ch, start, v.scratch, ch%v.scratch.NumChannels(), 0, n)
	}

	if !v.env.IsActive() {
		v.clearCurrentNote()
	}
}

func (v *Voice) clearCurrentNote() {
	v.active = false
	v.keyDown = false
	v.note = -1
	v.ended++
}

// IsActive reports whether the voice holds a note.
func (v *Voice) IsActive() bool { return v.active }

// IsKeyDown reports whether the note has not been released yet.
func (v *Voice) IsKeyDown() bool { return v.active && v.keyDown }

// Note returns the playing MIDI note, or -1 when inactive.
func (v *Voice) Note() int { return v.note }

// Channel returns the channel of the playing note.
func (v *Voice) Channel() uint8 { return v.channel }

// Velocity returns the velocity the note was started with.
func (v *Voice) Velocity() float64 { return v.velocity }

// Frequency returns the current carrier frequency in Hz.
func (v *Voice) Frequency() float64 { return v.osc.Frequency() }

// LFOPhase returns the LFO phase in [0, 1).
func (v *Voice) LFOPhase() float64 { return v.osc.LFOPhase() }

// EnvelopeStage returns the envelope segment.
func (v *Voice) EnvelopeStage() envelope.Stage { return v.env.Stage() }

// NotesEnded returns how many times the voice has freed itself.
func (v *Voice) NotesEnded() uint64 { return v.ended }

// Prepared reports whether Prepare has succeeded.
func (v *Voice) Prepared() bool { return v.prepared }
