package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tapsynth/dsp/window"
	"github.com/cwbudde/algo-tapsynth/internal/testutil"
)

func TestEstimateSine(t *testing.T) {
	tests := []struct {
		freq float64
		amp  float64
	}{
		{freq: 440, amp: 1},
		{freq: 261.6255653005986, amp: 0.3},
		{freq: 1000, amp: 0.5},
		{freq: 3500, amp: 0.8},
	}
	for _, tt := range tests {
		sig := testutil.Sine(tt.freq, 48000, tt.amp, 8192)
		res, err := Estimate(sig, Config{SampleRate: 48000})
		if err != nil {
			t.Fatalf("%v Hz: Estimate() error = %v", tt.freq, err)
		}
		if math.Abs(res.Frequency-tt.freq) > 1 {
			t.Fatalf("%v Hz: Frequency = %v", tt.freq, res.Frequency)
		}
		if math.Abs(res.Magnitude-tt.amp) > 0.2*tt.amp {
			t.Fatalf("%v Hz: Magnitude = %v, want about %v", tt.freq, res.Magnitude, tt.amp)
		}
	}
}

func TestEstimateNote(t *testing.T) {
	sig := testutil.Sine(440, 44100, 1, 16384)
	res, err := Estimate(sig, Config{SampleRate: 44100, FFTSize: 16384})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Note-69) > 0.05 {
		t.Fatalf("Note = %v, want 69", res.Note)
	}
}

func TestSearchBand(t *testing.T) {
	sig := testutil.Sine(200, 48000, 1, 8192)
	hi := testutil.Sine(2000, 48000, 0.5, 8192)
	for i := range sig {
		sig[i] += hi[i]
	}

	res, err := Estimate(sig, Config{SampleRate: 48000, MinHz: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Frequency-2000) > 2 {
		t.Fatalf("Frequency = %v, want 2000", res.Frequency)
	}
}

func TestSilenceHasNoPeak(t *testing.T) {
	_, err := Estimate(make([]float64, 4096), Config{SampleRate: 48000})
	if !errors.Is(err, ErrNoPeak) {
		t.Fatalf("Estimate(silence) error = %v, want ErrNoPeak", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []Config{
		{SampleRate: 0},
		{SampleRate: 48000, FFTSize: -1},
		{SampleRate: 48000, MinHz: 5000, MaxHz: 1000},
	}
	for _, cfg := range tests {
		if _, err := New(cfg); err == nil {
			t.Fatalf("New(%+v) expected error", cfg)
		}
	}

	e, err := New(Config{SampleRate: 48000, FFTSize: 1000, Window: window.TypeBlackman})
	if err != nil {
		t.Fatal(err)
	}
	if got := e.Config().FFTSize; got != 1024 {
		t.Fatalf("FFTSize = %d, want 1024", got)
	}
	if got := e.Config().MaxHz; got != 24000 {
		t.Fatalf("MaxHz = %v, want 24000", got)
	}
	if _, err := e.Estimate([]float64{1}); err == nil {
		t.Fatal("expected error for a single sample")
	}
}

func TestParabolicOffset(t *testing.T) {
	if got := parabolicOffset(1, 2, 1); got != 0 {
		t.Fatalf("symmetric offset = %v, want 0", got)
	}
	if got := parabolicOffset(1, 2, 1.5); got <= 0 {
		t.Fatalf("offset = %v, want > 0", got)
	}
	if got := parabolicOffset(0, 2, 1); got != 0 {
		t.Fatalf("offset with zero neighbor = %v, want 0", got)
	}
}

func BenchmarkEstimate(b *testing.B) {
	sig := testutil.Sine(440, 48000, 1, 8192)
	e, err := New(Config{SampleRate: 48000})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Estimate(sig); err != nil {
			b.Fatal(err)
		}
	}
}
