package osc

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tapsynth/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := New(48000, WithWaveform(Waveform(12))); err == nil {
		t.Fatal("expected error for unknown waveform")
	}
	if _, err := New(48000, WithLFORateScale(0)); err == nil {
		t.Fatal("expected error for zero lfo rate scale")
	}
}

func TestSweepFrequencyLaw(t *testing.T) {
	tests := []struct {
		phase float64
		want  float64
	}{
		{phase: 0, want: 200},
		{phase: 0.25, want: 300},
		{phase: 0.5, want: 200},
		{phase: 0.75, want: 100},
	}
	for _, tt := range tests {
		got := SweepFrequency(100, 300, tt.phase)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("SweepFrequency(100, 300, %v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestSweepWithEqualBoundsIsConstant(t *testing.T) {
	for _, p := range []float64{0, 0.1, 0.3, 0.9} {
		if got := SweepFrequency(500, 500, p); got != 500 {
			t.Fatalf("SweepFrequency(500, 500, %v) = %v, want 500", p, got)
		}
	}
}

func TestLFOPhaseStaysInRange(t *testing.T) {
	for _, speed := range []float64{0.1, 0.5, 1, 5, 1234} {
		o, err := New(8000)
		if err != nil {
			t.Fatal(err)
		}
		for block := 0; block < 100000; block++ {
			o.Modulate(speed, 50, 4000)
			if p := o.LFOPhase(); p < 0 || p >= 1 {
				t.Fatalf("speed %v block %d: lfo phase %v outside [0,1)", speed, block, p)
			}
		}
	}
}

func TestModulateAdvancesOncePerCall(t *testing.T) {
	o, err := New(48000, WithLFORateScale(1))
	if err != nil {
		t.Fatal(err)
	}

	// 12000 Hz-units per block at 48 kHz is a quarter turn.
	freq := o.Modulate(12000, 100, 300)
	if math.Abs(o.LFOPhase()-0.25) > 1e-12 {
		t.Fatalf("LFOPhase() = %v, want 0.25", o.LFOPhase())
	}
	if math.Abs(freq-300) > 1e-9 || math.Abs(o.Frequency()-300) > 1e-9 {
		t.Fatalf("frequency = %v, want 300", freq)
	}
}

func TestSetFrequencyIgnoresInvalid(t *testing.T) {
	o, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}
	o.SetFrequency(261.63)
	o.SetFrequency(-1)
	o.SetFrequency(math.NaN())
	if o.Frequency() != 261.63 {
		t.Fatalf("Frequency() = %v, want 261.63", o.Frequency())
	}
}

func TestRenderSineMatchesReference(t *testing.T) {
	const sr = 48000.0
	o, err := New(sr)
	if err != nil {
		t.Fatal(err)
	}
	o.SetFrequency(1000)

	got := make([]float64, 480)
	o.Render(got[:200])
	o.Render(got[200:])

	want := testutil.Sine(1000, sr, 1, len(got))
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)

	if p := o.Phase(); p < 0 || p >= 1 {
		t.Fatalf("carrier phase %v outside [0,1)", p)
	}
}

func TestRenderWaveformsBounded(t *testing.T) {
	for _, w := range []Waveform{Sine, Triangle, Saw, Square} {
		o, err := New(48000, WithWaveform(w))
		if err != nil {
			t.Fatal(err)
		}
		o.SetFrequency(441)

		buf := make([]float64, 4800)
		o.Render(buf)
		testutil.RequireFinite(t, buf)

		peak := 0.0
		for _, v := range buf {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak < 0.5 || peak > 1.2 {
			t.Fatalf("%v: peak %v outside expected range", w, peak)
		}
	}
}

func TestRenderAboveNyquistIsSilent(t *testing.T) {
	o, err := New(8000)
	if err != nil {
		t.Fatal(err)
	}
	o.SetFrequency(4000)

	buf := testutil.Ones(64)
	o.Render(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestResetAndSetSampleRate(t *testing.T) {
	o, err := New(48000)
	if err != nil {
		t.Fatal(err)
	}
	o.Modulate(1, 100, 200)
	o.Render(make([]float64, 33))

	if err := o.SetSampleRate(44100); err != nil {
		t.Fatal(err)
	}
	if o.Phase() != 0 || o.LFOPhase() != 0 {
		t.Fatalf("phases = %v/%v after SetSampleRate, want 0/0", o.Phase(), o.LFOPhase())
	}
	if err := o.SetSampleRate(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestParseWaveform(t *testing.T) {
	for _, w := range []Waveform{Sine, Triangle, Saw, Square} {
		if got := ParseWaveform(w.String()); got != w {
			t.Fatalf("ParseWaveform(%q) = %v, want %v", w.String(), got, w)
		}
	}
	if ParseWaveform("bogus") != Sine {
		t.Fatal("unknown names should map to sine")
	}
}

func BenchmarkRenderSine(b *testing.B) {
	o, _ := New(48000)
	buf := make([]float64, 512)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o.Modulate(0.5, 100, 1000)
		o.Render(buf)
	}
}
