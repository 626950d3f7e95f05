package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-tapsynth/dsp/buffer"
)

func ExampleBuffer() {
	mix := buffer.New(2, 4)
	voice := buffer.FromChannels([][]float64{{1, 1, 1, 1}})

	// Mono source fanned out to both output channels.
	for ch := 0; ch < mix.NumChannels(); ch++ {
		mix.AddFrom(ch, 0, voice, ch%voice.NumChannels(), 0, voice.Frames())
	}
	mix.ApplyGain(1, 0, mix.Frames(), 0.5)
	mix.ZeroRange(0, 1)

	fmt.Println(mix.Channel(0))
	fmt.Println(mix.Channel(1))

	// Output:
	// [0 1 1 1]
	// [0 0.5 0.5 0.5]
}
