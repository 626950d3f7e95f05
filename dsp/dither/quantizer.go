package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultBitDepth = 16
	minBitDepth     = 2
	maxBitDepth     = 32
)

type config struct {
	bitDepth  int
	typ       Type
	amplitude float64
	feedback  bool
	rng       *rand.Rand
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target word length (2-32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithType sets the dither noise PDF (default [Triangular]).
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type: %d", int(t))
		}
		cfg.typ = t
		return nil
	}
}

// WithAmplitude scales the dither noise in LSBs (default 1).
func WithAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}
		cfg.amplitude = amp
		return nil
	}
}

// WithErrorFeedback subtracts the previous quantization error from each
// input, pushing the noise floor towards high frequencies.
func WithErrorFeedback(enabled bool) Option {
	return func(cfg *config) error {
		cfg.feedback = enabled
		return nil
	}
}

// WithSeed makes the noise sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		return nil
	}
}

// Quantizer maps samples in [-1, 1] to signed integers of a fixed word
// length.
type Quantizer struct {
	bitDepth  int
	typ       Type
	amplitude float64
	feedback  bool
	rng       *rand.Rand

	scale   float64
	limitLo int
	limitHi int
	lastErr float64
}

// NewQuantizer creates a 16-bit TPDF quantizer unless options say otherwise.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := config{
		bitDepth:  defaultBitDepth,
		typ:       Triangular,
		amplitude: 1,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	full := math.Exp2(float64(cfg.bitDepth-1)) - 1
	return &Quantizer{
		bitDepth:  cfg.bitDepth,
		typ:       cfg.typ,
		amplitude: cfg.amplitude,
		feedback:  cfg.feedback,
		rng:       cfg.rng,
		scale:     full,
		limitLo:   -int(full),
		limitHi:   int(full),
	}, nil
}

// ProcessInteger quantizes one sample. The result is clamped to the
// symmetric range of the word length.
func (q *Quantizer) ProcessInteger(input float64) int {
	scaled := input * q.scale
	if q.feedback {
		scaled -= q.lastErr
	}
	if math.IsNaN(scaled) {
		scaled = 0
	}

	result := int(math.Round(min(max(scaled+q.noise(), float64(q.limitLo)), float64(q.limitHi))))
	if q.feedback {
		q.lastErr = float64(result) - scaled
	}
	return result
}

// ProcessBlock quantizes src into dst and returns the number of samples
// written.
func (q *Quantizer) ProcessBlock(dst []int, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = q.ProcessInteger(src[i])
	}
	return n
}

func (q *Quantizer) noise() float64 {
	switch q.typ {
	case Rectangular:
		return q.amplitude * (q.rng.Float64() - 0.5)
	case Triangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// Reset clears the error feedback state.
func (q *Quantizer) Reset() {
	q.lastErr = 0
}

// BitDepth returns the target word length.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// Type returns the dither noise PDF.
func (q *Quantizer) Type() Type { return q.typ }

// FullScale returns the largest positive output value.
func (q *Quantizer) FullScale() int { return q.limitHi }
