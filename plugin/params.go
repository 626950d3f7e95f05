package plugin

import (
	"github.com/cwbudde/algo-tapsynth/dsp/param"
	"github.com/cwbudde/algo-tapsynth/dsp/synth"
)

// Parameter IDs exposed by the processor.
const (
	ParamLFOSpeed = synth.ParamLFOSpeed
	ParamMinFreq  = synth.ParamMinFreq
	ParamMaxFreq  = synth.ParamMaxFreq
	ParamX        = "x"
	ParamY        = "y"
	ParamZ        = "z"
)

// ParameterLayout returns the parameter specs the processor registers, in
// display order.
//
// The position defaults sit below their range and snap to 1 on creation.
func ParameterLayout() []param.Spec {
	return []param.Spec{
		{ID: ParamLFOSpeed, Name: "LFO Speed", Min: 0.1, Max: 5, Step: 0.01, Default: 0.5},
		{ID: ParamMinFreq, Name: "Min Frequency", Min: 50, Max: 4000, Step: 1, Default: 500},
		{ID: ParamMaxFreq, Name: "Max Frequency", Min: 50, Max: 4000, Step: 1, Default: 500},
		{ID: ParamX, Name: "X", Min: 1, Max: 100, Step: 1, Default: 0},
		{ID: ParamY, Name: "Y", Min: 1, Max: 100, Step: 1, Default: 0},
		{ID: ParamZ, Name: "Z", Min: 1, Max: 100, Step: 1, Default: 0},
	}
}
