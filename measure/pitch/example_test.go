package pitch_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tapsynth/measure/pitch"
)

func ExampleEstimate() {
	sig := make([]float64, 8192)
	for i := range sig {
		sig[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / 48000)
	}
	res, err := pitch.Estimate(sig, pitch.Config{SampleRate: 48000})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f Hz\n", res.Frequency)
	// Output: 1000 Hz
}
