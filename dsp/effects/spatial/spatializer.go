package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
	"github.com/cwbudde/algo-tapsynth/dsp/core"
	"github.com/cwbudde/algo-tapsynth/dsp/delay"
	"github.com/cwbudde/algo-tapsynth/dsp/interp"
)

const (
	defaultMaxDelaySeconds = 2.0
	defaultPositionMin     = 1.0
	defaultPositionMax     = 100.0

	// Extra slots beyond the worst-case delay for interpolation taps.
	capacityGuard = 4
)

// Option mutates spatializer construction parameters.
type Option func(*config) error

type config struct {
	geometry        Geometry
	positionMin     float64
	positionMax     float64
	maxDelaySeconds float64
	dryMix          float64
	clampGain       bool
	mode            interp.Mode
}

func defaultConfig() config {
	return config{
		geometry:        DefaultGeometry(),
		positionMin:     defaultPositionMin,
		positionMax:     defaultPositionMax,
		maxDelaySeconds: defaultMaxDelaySeconds,
		mode:            interp.Linear,
	}
}

// WithGeometry overrides the ear positions and max distance.
func WithGeometry(g Geometry) Option {
	return func(cfg *config) error {
		if err := g.Validate(); err != nil {
			return err
		}
		cfg.geometry = g
		return nil
	}
}

// WithPositionRange sets the range each source coordinate can take. The
// delay lines are sized for the farthest corner of that square.
func WithPositionRange(minPos, maxPos float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(minPos) || math.IsNaN(maxPos) || math.IsInf(minPos, 0) || math.IsInf(maxPos, 0) || minPos > maxPos {
			return fmt.Errorf("spatial position range must be finite with min <= max: [%f, %f]", minPos, maxPos)
		}
		cfg.positionMin = minPos
		cfg.positionMax = maxPos
		return nil
	}
}

// WithMaxDelaySeconds sets the minimum delay line capacity in seconds.
func WithMaxDelaySeconds(seconds float64) Option {
	return func(cfg *config) error {
		if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("spatial max delay must be > 0 and finite: %f", seconds)
		}
		cfg.maxDelaySeconds = seconds
		return nil
	}
}

// WithDryMix adds the unprocessed input scaled by level to the output.
// Zero, the default, replaces the input with the delayed signal.
func WithDryMix(level float64) Option {
	return func(cfg *config) error {
		if level < 0 || level > 1 || math.IsNaN(level) {
			return fmt.Errorf("spatial dry mix must be in [0, 1]: %f", level)
		}
		cfg.dryMix = level
		return nil
	}
}

// WithGainClamp limits the distance gain to [0, 1].
func WithGainClamp(enabled bool) Option {
	return func(cfg *config) error {
		cfg.clampGain = enabled
		return nil
	}
}

// WithInterpolation selects how fractional delays are read.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		switch mode {
		case interp.Hermite, interp.Linear, interp.None:
			cfg.mode = mode
			return nil
		default:
			return fmt.Errorf("spatial interpolation mode not supported: %v", mode)
		}
	}
}

// Spatializer renders a source at a movable position through two delay
// lines, one per ear.
//
// It is real-time safe and not thread-safe.
type Spatializer struct {
	sampleRate float64
	cfg        config

	left  *delay.Line
	right *delay.Line

	pos    Point
	delayL float64
	delayR float64
	gainL  float64
	gainR  float64
}

// New creates a spatializer for sampleRate with the source at the midpoint
// between the ears.
func New(sampleRate float64, opts ...Option) (*Spatializer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spatializer sample rate must be > 0 and finite: %f", sampleRate)
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

	s := &Spatializer{sampleRate: sampleRate, cfg: cfg}
	capacity := s.capacity()

	var err error
	if s.left, err = delay.New(capacity, delay.WithMode(cfg.mode)); err != nil {
		return nil, err
	}
	if s.right, err = delay.New(capacity, delay.WithMode(cfg.mode)); err != nil {
		return nil, err
	}

	mid := cfg.geometry.Midpoint()
	s.SetPosition(mid.X, mid.Y)
	return s, nil
}

// capacity returns the line length covering both the configured seconds and
// the farthest reachable source position.
func (s *Spatializer) capacity() int {
	worst := 0.0
	corners := []Point{
		{X: s.cfg.positionMin, Y: s.cfg.positionMin},
		{X: s.cfg.positionMin, Y: s.cfg.positionMax},
		{X: s.cfg.positionMax, Y: s.cfg.positionMin},
		{X: s.cfg.positionMax, Y: s.cfg.positionMax},
	}
	for _, c := range corners {
		for _, ear := range []Point{s.cfg.geometry.LeftEar, s.cfg.geometry.RightEar} {
			worst = math.Max(worst, DelaySamples(s.sampleRate, math.Hypot(c.X-ear.X, c.Y-ear.Y)))
		}
	}
	need := math.Max(s.cfg.maxDelaySeconds*s.sampleRate, worst)
	return int(math.Ceil(need)) + capacityGuard
}

// SetPosition moves the source and recomputes per-ear delay and gain. Call
// it once per block. Delays beyond the line capacity are clamped.
func (s *Spatializer) SetPosition(x, y float64) {
	s.pos = Point{X: x, Y: y}
	g := s.cfg.geometry

	distL := Distance(s.pos, g.LeftEar)
	distR := Distance(s.pos, g.RightEar)

	s.delayL = s.left.SetDelay(DelaySamples(s.sampleRate, distL))
	s.delayR = s.right.SetDelay(DelaySamples(s.sampleRate, distR))

	s.gainL = Gain(g.MaxDistance, distL)
	s.gainR = Gain(g.MaxDistance, distR)
	if s.cfg.clampGain {
		s.gainL = core.Clamp(s.gainL, 0, 1)
		s.gainR = core.Clamp(s.gainR, 0, 1)
	}
}

// ProcessInPlace replaces buf with the delayed, attenuated signal. Channel 0
// runs through the left line and every further channel through the right
// line; a mono buffer only uses the left path.
func (s *Spatializer) ProcessInPlace(buf *buffer.Buffer) {
	if buf == nil {
		return
	}
	for ch := 0; ch < buf.NumChannels(); ch++ {
		if ch == 0 {
			s.processChannel(buf.Channel(ch), s.left, s.gainL)
			continue
		}
		// Extra channels share the right line, so only the first one feeds it.
		if ch == 1 {
			s.processChannel(buf.Channel(ch), s.right, s.gainR)
			continue
		}
		copy(buf.Channel(ch), buf.Channel(1))
	}
}

func (s *Spatializer) processChannel(samples []float64, line *delay.Line, gain float64) {
	dry := s.cfg.dryMix
	for i, x := range samples {
		out := line.Pop()
		line.Push(x * gain)
		samples[i] = core.FlushDenormals(out + dry*x)
	}
}

// Reset clears both delay lines and keeps the current position.
func (s *Spatializer) Reset() {
	s.left.Reset()
	s.right.Reset()
}

// Position returns the current source position.
func (s *Spatializer) Position() Point { return s.pos }

// Delays returns the active left and right delays in samples.
func (s *Spatializer) Delays() (left, right float64) { return s.delayL, s.delayR }

// Gains returns the active left and right gains.
func (s *Spatializer) Gains() (left, right float64) { return s.gainL, s.gainR }

// MaxDelaySamples returns the largest delay the lines can hold.
func (s *Spatializer) MaxDelaySamples() float64 { return s.left.MaxDelay() }

// Geometry returns the configured ear layout.
func (s *Spatializer) Geometry() Geometry { return s.cfg.geometry }

// SampleRate returns the sample rate.
func (s *Spatializer) SampleRate() float64 { return s.sampleRate }
