package plugin

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
	"github.com/cwbudde/algo-tapsynth/dsp/core"
	"github.com/cwbudde/algo-tapsynth/dsp/effects/spatial"
	"github.com/cwbudde/algo-tapsynth/dsp/param"
	"github.com/cwbudde/algo-tapsynth/dsp/sequencer"
	"github.com/cwbudde/algo-tapsynth/dsp/synth"
)

// Name is the processor display name.
const Name = "TapSynth"

const (
	defaultVoices    = 1
	startNoteNumber  = 60
	defaultTailSecs  = 2.0
	startNoteChannel = 0
)

// ErrUnsupportedLayout is returned by Prepare for channel counts the
// processor cannot drive.
var ErrUnsupportedLayout = errors.New("plugin: unsupported channel layout")

// Option mutates processor construction parameters.
type Option func(*config) error

type config struct {
	voices       int
	voiceOpts    []synth.VoiceOption
	useSequencer bool
	clock        sequencer.Clock
	seqOpts      []sequencer.Option
	startNote    bool
	spatialOpts  []spatial.Option
}

func defaultConfig() config {
	return config{
		voices:       defaultVoices,
		useSequencer: true,
	}
}

// WithVoices sets the polyphony.
func WithVoices(n int) Option {
	return func(cfg *config) error {
		if n <= 0 {
			return fmt.Errorf("voice count must be > 0: %d", n)
		}
		cfg.voices = n
		return nil
	}
}

// WithVoiceOptions forwards options to every voice.
func WithVoiceOptions(opts ...synth.VoiceOption) Option {
	return func(cfg *config) error {
		cfg.voiceOpts = append(cfg.voiceOpts, opts...)
		return nil
	}
}

// WithSequencer enables or disables the built-in gate sequencer.
func WithSequencer(enabled bool) Option {
	return func(cfg *config) error {
		cfg.useSequencer = enabled
		return nil
	}
}

// WithClock drives the sequencer from c instead of the sample count.
func WithClock(c sequencer.Clock) Option {
	return func(cfg *config) error {
		if c == nil {
			return errors.New("plugin: sequencer clock must not be nil")
		}
		cfg.clock = c
		return nil
	}
}

// WithSequencerOptions forwards options to the sequencer.
func WithSequencerOptions(opts ...sequencer.Option) Option {
	return func(cfg *config) error {
		cfg.seqOpts = append(cfg.seqOpts, opts...)
		return nil
	}
}

// WithStartNote plays middle C on every Prepare.
func WithStartNote(enabled bool) Option {
	return func(cfg *config) error {
		cfg.startNote = enabled
		return nil
	}
}

// WithGeometry overrides the spatializer ear layout.
func WithGeometry(g spatial.Geometry) Option {
	return func(cfg *config) error {
		if err := g.Validate(); err != nil {
			return err
		}
		cfg.spatialOpts = append(cfg.spatialOpts, spatial.WithGeometry(g))
		return nil
	}
}

// WithDryMix mixes the unprocessed signal into the spatializer output.
func WithDryMix(level float64) Option {
	return func(cfg *config) error {
		cfg.spatialOpts = append(cfg.spatialOpts, spatial.WithDryMix(level))
		return nil
	}
}

// WithGainClamp keeps spatializer gains inside [0, 1].
func WithGainClamp(enabled bool) Option {
	return func(cfg *config) error {
		cfg.spatialOpts = append(cfg.spatialOpts, spatial.WithGainClamp(enabled))
		return nil
	}
}

// Processor runs one block of the instrument per host callback.
//
// ProcessBlock must only be called from one goroutine. Parameter writes
// through Params may come from any goroutine.
type Processor struct {
	cfg    config
	params *param.Store
	pool   *synth.Pool
	seq    *sequencer.Sequencer
	space  *spatial.Spatializer

	x, y, z *param.Param

	prepared   bool
	sampleRate float64
	maxBlock   int
	channels   int
}

// New builds an unprepared processor.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	params, err := param.NewStore(ParameterLayout()...)
	if err != nil {
		return nil, err
	}
	pool, err := synth.NewPool(cfg.voices, cfg.voiceOpts...)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		cfg:    cfg,
		params: params,
		pool:   pool,
		x:      params.Lookup(ParamX),
		y:      params.Lookup(ParamY),
		z:      params.Lookup(ParamZ),
	}

	if cfg.useSequencer {
		seqOpts := cfg.seqOpts
		if cfg.clock != nil {
			seqOpts = append([]sequencer.Option{sequencer.WithClock(cfg.clock)}, seqOpts...)
		}
		if p.seq, err = sequencer.New(core.DefaultProcessorConfig().SampleRate, seqOpts...); err != nil {
			return nil, err
		}
	}

	// Validate spatial options up front so Prepare only fails on format.
	if _, err := spatial.New(core.DefaultProcessorConfig().SampleRate, cfg.spatialOpts...); err != nil {
		return nil, err
	}

	pool.UpdateParams(params)
	return p, nil
}

// Prepare allocates every buffer for the stream format and resets all
// oscillator, envelope, delay and clock state.
func (p *Processor) Prepare(sampleRate float64, maxBlockFrames, numChannels int) error {
	p.prepared = false

	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockFrames, Channels: numChannels}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !IsLayoutSupported(BusLayout{OutputChannels: numChannels}, true) {
		return fmt.Errorf("%w: %d output channels", ErrUnsupportedLayout, numChannels)
	}

	if err := p.pool.Prepare(sampleRate, maxBlockFrames, numChannels); err != nil {
		return err
	}
	space, err := spatial.New(sampleRate, p.cfg.spatialOpts...)
	if err != nil {
		return err
	}
	if p.seq != nil {
		if err := p.seq.SetSampleRate(sampleRate); err != nil {
			return err
		}
	}

	p.space = space
	p.sampleRate = sampleRate
	p.maxBlock = maxBlockFrames
	p.channels = numChannels
	p.pool.UpdateParams(p.params)
	p.prepared = true

	if p.cfg.startNote {
		p.pool.NoteOn(startNoteChannel, startNoteNumber, 1)
	}
	return nil
}

// ProcessBlock renders one block into buf, replacing its contents. events
// must be ordered by offset. An unprepared processor or a buffer that does
// not match the prepared format yields silence.
func (p *Processor) ProcessBlock(buf *buffer.Buffer, events []synth.Event) {
	if buf == nil {
		return
	}
	buf.Zero()
	if !p.prepared || buf.NumChannels() != p.channels || buf.Frames() > p.maxBlock {
		return
	}
	n := buf.Frames()
	if n == 0 {
		return
	}

	p.space.SetPosition(p.x.Value(), p.y.Value())

	if p.seq != nil {
		if ev, ok := p.seq.Step(n); ok {
			p.pool.HandleEvent(ev)
		}
	}

	p.pool.UpdateParams(p.params)
	p.pool.RenderNextBlock(buf, events, 0, n)
	p.space.ProcessInPlace(buf)
}

// IsLayoutSupported reports whether the processor can run with l.
func (p *Processor) IsLayoutSupported(l BusLayout) bool {
	return IsLayoutSupported(l, true)
}

// Params returns the parameter store.
func (p *Processor) Params() *param.Store { return p.params }

// Pool returns the voice pool.
func (p *Processor) Pool() *synth.Pool { return p.pool }

// Spatializer returns the prepared spatializer, or nil before Prepare.
func (p *Processor) Spatializer() *spatial.Spatializer { return p.space }

// Prepared reports whether Prepare has succeeded.
func (p *Processor) Prepared() bool { return p.prepared }

// SampleRate returns the prepared sample rate.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Channels returns the prepared channel count.
func (p *Processor) Channels() int { return p.channels }

// Depth returns the third position axis. It is exposed but does not
// affect rendering.
func (p *Processor) Depth() float64 { return p.z.Value() }

// TailSeconds returns how long output continues after input stops.
func (p *Processor) TailSeconds() float64 {
	if p.space == nil {
		return defaultTailSecs
	}
	return p.space.MaxDelaySamples() / p.sampleRate
}

// Name returns the processor display name.
func (p *Processor) Name() string { return Name }
