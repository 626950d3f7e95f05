package plugin

import "testing"

func TestIsLayoutSupported(t *testing.T) {
	tests := []struct {
		layout BusLayout
		synth  bool
		want   bool
	}{
		{layout: BusLayout{OutputChannels: 1}, synth: true, want: true},
		{layout: BusLayout{OutputChannels: 2}, synth: true, want: true},
		{layout: BusLayout{OutputChannels: 6}, synth: true, want: false},
		{layout: BusLayout{OutputChannels: 0}, synth: true, want: false},
		{layout: BusLayout{InputChannels: 2, OutputChannels: 2}, synth: false, want: true},
		{layout: BusLayout{InputChannels: 1, OutputChannels: 2}, synth: false, want: false},
		{layout: BusLayout{InputChannels: 1, OutputChannels: 2}, synth: true, want: true},
	}
	for _, tt := range tests {
		if got := IsLayoutSupported(tt.layout, tt.synth); got != tt.want {
			t.Fatalf("IsLayoutSupported(%+v, %v) = %v, want %v", tt.layout, tt.synth, got, tt.want)
		}
	}

	p, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsLayoutSupported(BusLayout{OutputChannels: 2}) {
		t.Fatal("processor should accept stereo output")
	}
}
