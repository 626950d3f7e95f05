package plugin

// BusLayout is a host channel configuration.
type BusLayout struct {
	InputChannels  int
	OutputChannels int
}

// IsLayoutSupported accepts mono or stereo output. An effect (synth false)
// also needs its input to match its output.
func IsLayoutSupported(l BusLayout, synth bool) bool {
	if l.OutputChannels != 1 && l.OutputChannels != 2 {
		return false
	}
	if !synth && l.InputChannels != l.OutputChannels {
		return false
	}
	return true
}
