package pitch

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tapsynth/dsp/core"
	"github.com/cwbudde/algo-tapsynth/dsp/window"
)

const (
	defaultFFTSize = 8192
	defaultMinHz   = 20.0
)

// ErrNoPeak is returned when no bin in the search band carries energy.
var ErrNoPeak = errors.New("pitch: no spectral peak in search band")

// Config controls the estimator.
type Config struct {
	SampleRate float64
	// FFTSize is rounded up to a power of two. Zero selects 8192.
	FFTSize int
	// Window defaults to Hann; the zero value selects it too.
	Window window.Type
	// MinHz and MaxHz bound the peak search. Zero MaxHz means Nyquist.
	MinHz float64
	MaxHz float64
}

// Result is one frequency estimate.
type Result struct {
	Frequency float64
	// Note is the fractional MIDI note number of Frequency.
	Note float64
	// Magnitude is the peak amplitude corrected for the window gain.
	Magnitude float64
	Bin       int
}

type forwardPlan interface {
	Forward(dst, src []complex128) error
}

// Estimator holds the FFT plan and scratch for one configuration.
type Estimator struct {
	cfg    Config
	plan   forwardPlan
	coeffs []float64
	gain   float64
	in     []complex128
	out    []complex128
	re, im []float64
	mag    []float64
}

// New validates cfg and allocates an estimator.
func New(cfg Config) (*Estimator, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("pitch sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.FFTSize < 0 {
		return nil, fmt.Errorf("pitch fft size must be >= 0: %d", cfg.FFTSize)
	}
	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}
	cfg.FFTSize = nextPowerOf2(cfg.FFTSize)
	if cfg.FFTSize < 4 {
		cfg.FFTSize = 4
	}
	if cfg.Window == 0 {
		cfg.Window = window.TypeHann
	}
	if cfg.MinHz <= 0 {
		cfg.MinHz = defaultMinHz
	}
	nyquist := cfg.SampleRate / 2
	if cfg.MaxHz <= 0 || cfg.MaxHz > nyquist {
		cfg.MaxHz = nyquist
	}
	if cfg.MinHz >= cfg.MaxHz {
		return nil, fmt.Errorf("pitch search band must satisfy min < max: [%f, %f]", cfg.MinHz, cfg.MaxHz)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("pitch fft plan: %w", err)
	}

	bins := cfg.FFTSize/2 + 1
	return &Estimator{
		cfg:  cfg,
		plan: plan,
		in:   make([]complex128, cfg.FFTSize),
		out:  make([]complex128, cfg.FFTSize),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
		mag:  make([]float64, bins),
	}, nil
}

// Config returns the effective configuration.
func (e *Estimator) Config() Config { return e.cfg }

// BinHz returns the frequency spacing of FFT bins.
func (e *Estimator) BinHz() float64 {
	return e.cfg.SampleRate / float64(e.cfg.FFTSize)
}

// Estimate analyzes at most FFTSize samples of signal.
func (e *Estimator) Estimate(signal []float64) (Result, error) {
	n := len(signal)
	if n > e.cfg.FFTSize {
		n = e.cfg.FFTSize
	}
	if n < 2 {
		return Result{}, fmt.Errorf("pitch needs at least 2 samples: %d", n)
	}

	if len(e.coeffs) != n {
		e.coeffs = window.Generate(e.cfg.Window, n, window.WithPeriodic())
		e.gain = window.CoherentGain(e.coeffs)
	}
	for i := range e.in {
		e.in[i] = 0
	}
	for i := 0; i < n; i++ {
		e.in[i] = complex(signal[i]*e.coeffs[i], 0)
	}

	if err := e.plan.Forward(e.out, e.in); err != nil {
		return Result{}, fmt.Errorf("pitch fft: %w", err)
	}

	for k := range e.mag {
		e.re[k] = real(e.out[k])
		e.im[k] = imag(e.out[k])
	}
	vecmath.Magnitude(e.mag, e.re, e.im)

	binHz := e.BinHz()
	lo := int(math.Ceil(e.cfg.MinHz / binHz))
	hi := int(math.Floor(e.cfg.MaxHz / binHz))
	if lo < 1 {
		lo = 1
	}
	if hi > len(e.mag)-1 {
		hi = len(e.mag) - 1
	}

	peak := -1
	for k := lo; k <= hi; k++ {
		if peak < 0 || e.mag[k] > e.mag[peak] {
			peak = k
		}
	}
	if peak < 0 || e.mag[peak] <= 0 {
		return Result{}, ErrNoPeak
	}

	offset := 0.0
	if peak > 0 && peak < len(e.mag)-1 {
		offset = parabolicOffset(e.mag[peak-1], e.mag[peak], e.mag[peak+1])
	}

	freq := (float64(peak) + offset) * binHz
	amp := e.mag[peak] * 2 / (float64(n) * e.gain)

	return Result{
		Frequency: freq,
		Note:      core.HzToMIDINote(freq),
		Magnitude: amp,
		Bin:       peak,
	}, nil
}

// Estimate is a one-shot convenience wrapper around New and Estimate.
func Estimate(signal []float64, cfg Config) (Result, error) {
	e, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	return e.Estimate(signal)
}

// parabolicOffset returns the peak position relative to the center bin from
// the log magnitudes of three neighbors.
func parabolicOffset(a, b, c float64) float64 {
	if a <= 0 || b <= 0 || c <= 0 {
		return 0
	}
	la, lb, lc := math.Log(a), math.Log(b), math.Log(c)
	den := la - 2*lb + lc
	if den == 0 {
		return 0
	}
	return core.Clamp(0.5*(la-lc)/den, -0.5, 0.5)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
