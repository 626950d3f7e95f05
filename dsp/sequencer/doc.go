// Package sequencer implements a coarse gate generator that opens and closes
// a fixed note on a one second cycle.
//
// Once per block the clock is reduced to a cycle value v = (ms mod 1000)/100.
// Even values close the gate, odd multiples of three open it, and the rest
// leave it alone. The default [SampleClock] counts rendered samples, so the
// pattern is reproducible; [WallClock] follows real time instead.
package sequencer
