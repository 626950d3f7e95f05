package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tapsynth/dsp/interp"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}

	if _, err := New(3); err == nil {
		t.Fatal("expected error for a Hermite line too short to hold one sample of delay")
	}
}

func TestNewDefaults(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	if d.Mode() != interp.Hermite {
		t.Fatalf("default mode: got %v want Hermite", d.Mode())
	}

	if d.Delay() != 1 {
		t.Fatalf("default delay: got %v want 1", d.Delay())
	}
}

func TestNewWithOptions(t *testing.T) {
	d, err := New(16, WithMode(interp.Linear), nil)
	if err != nil {
		t.Fatal(err)
	}

	if d.Mode() != interp.Linear {
		t.Fatalf("mode: got %v want Linear", d.Mode())
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i))
	}
	// delay=1 => most recently written (7)
	if got := d.Read(1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from write head
	if got := d.Read(3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d.Write(float64(i))
	}
	// buffer should contain [8, 9, 6, 7], writePos=2
	if got := d.Read(1); got != 9 {
		t.Fatalf("got %v want 9", got)
	}
	if got := d.Read(4); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(1)
	d.Write(2)
	d.Reset()

	for i := 0; i < 4; i++ {
		if got := d.Read(i); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", i, got)
		}
	}
}

// --- delay setting and push/pop ---

func TestSetDelayClamps(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in   float64
		want float64
	}{
		{in: 10.5, want: 10.5},
		{in: 0, want: 1},
		{in: -4, want: 1},
		{in: 1000, want: d.MaxDelay()},
		{in: math.NaN(), want: 1},
	}
	for _, tc := range tests {
		if got := d.SetDelay(tc.in); got != tc.want {
			t.Fatalf("SetDelay(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPopPushReproducesInputLater(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Hermite, interp.Linear, interp.None} {
		d, err := New(600, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}
		d.SetDelay(480)

		out := make([]float64, 1000)
		for n := range out {
			in := 0.0
			if n == 0 {
				in = 1
			}
			out[n] = d.Pop()
			d.Push(in)
		}

		for n, v := range out {
			want := 0.0
			if n == 480 {
				want = 1
			}
			if v != want {
				t.Fatalf("%v: out[%d] = %v, want %v", mode, n, v, want)
			}
		}
	}
}

func TestPopMinimumDelayIsOneSample(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	d.SetDelay(0)

	var out []float64
	for _, x := range []float64{1, 2, 3} {
		out = append(out, d.Pop())
		d.Push(x)
	}
	if out[0] != 0 || out[1] != 1 || out[2] != 2 {
		t.Fatalf("got %v, want [0 1 2]", out)
	}
}

// --- fractional reads ---

// fillRamp fills a delay line with a linear ramp [0, 1, 2, ..., size-1].
func fillRamp(d *Line) {
	for i := 0; i < d.Len(); i++ {
		d.Write(float64(i))
	}
}

func TestReadFractionalLinearRamp(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)

	if got := d.ReadFractional(3.5); got < 12.49 || got > 12.51 {
		t.Fatalf("got %v want about 12.5", got)
	}
}

func TestReadFractionalClamped(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		d.Write(float64(i + 1))
	}

	if got := d.ReadFractional(-1.0); got != 8 {
		t.Fatalf("negative delay: got %v want most recent sample 8", got)
	}
	got := d.ReadFractional(100)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("oversized delay produced %v", got)
	}
}

func TestReadFractionalModesOnRamp(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Hermite} {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		fillRamp(d)
		got := d.ReadFractional(5.5)

		want := float64(d.Len()) - 5.5 // 26.5
		if !approxEqual(got, want, 1e-10) {
			t.Fatalf("%v: got %v want %v", mode, got, want)
		}
	}
}

func TestReadFractionalNoneTruncates(t *testing.T) {
	d, err := New(32, WithMode(interp.None))
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(d)
	if got := d.ReadFractional(5.9); got != 27 {
		t.Fatalf("got %v want 27", got)
	}
}

func TestAllModesDCPreservation(t *testing.T) {
	for _, mode := range []interp.Mode{interp.Linear, interp.Hermite, interp.None} {
		d, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < d.Len(); i++ {
			d.Write(42.0)
		}

		got := d.ReadFractional(5.3)
		if !approxEqual(got, 42.0, 1e-9) {
			t.Fatalf("%v DC: got %v want 42", mode, got)
		}
	}
}

func TestHermiteSineQuality(t *testing.T) {
	freq := 0.02 // low frequency relative to sample rate
	size := 256

	d, err := New(size)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < size; i++ {
		d.Write(math.Sin(2 * math.Pi * freq * float64(i)))
	}

	delay := 20.37
	// Read(k) for integer k returns sample written at index (size-k),
	// so fractional delay d corresponds to sample index (size-d).
	want := math.Sin(2 * math.Pi * freq * (float64(size) - delay))
	got := d.ReadFractional(delay)

	if e := math.Abs(got - want); e > 1e-4 {
		t.Fatalf("sine: got %v want %v (err=%e)", got, want, e)
	}
}

// --- benchmarks ---

func BenchmarkPopPushHermite(b *testing.B) {
	d, _ := New(96000)
	d.SetDelay(1234.56)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.Push(d.Pop())
	}
}

func BenchmarkPopPushLinear(b *testing.B) {
	d, _ := New(96000, WithMode(interp.Linear))
	d.SetDelay(1234.56)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.Push(d.Pop())
	}
}
