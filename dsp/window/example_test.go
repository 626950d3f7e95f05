package window

import "fmt"

func ExampleGenerate() {
	// Periodic form, as fed to the pitch analyzer's FFT.
	w := Generate(TypeHann, 4, WithPeriodic())
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.50 1.00 0.50
}

func ExampleApply() {
	block := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, block)
	fmt.Printf("%.2f %.2f %.2f %.2f %.2f\n", block[0], block[1], block[2], block[3], block[4])
	// Output:
	// 0.00 1.00 2.00 1.00 0.00
}

func ExampleCoherentGain() {
	hann := CoherentGain(Generate(TypeHann, 1024, WithPeriodic()))
	blackman := CoherentGain(Generate(TypeBlackman, 1024, WithPeriodic()))
	fmt.Printf("hann %.3f blackman %.3f\n", hann, blackman)
	// Output:
	// hann 0.500 blackman 0.420
}
