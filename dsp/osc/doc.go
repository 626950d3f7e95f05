// Package osc provides the LFO-swept carrier oscillator used by synth voices.
//
// The carrier frequency is recomputed once per block from the sweep law
//
//	f = min + (max - min) * (0.5 + 0.5*sin(2π*lfoPhase))
//
// so a sweep is heard as a staircase at block granularity. That is the
// intended behavior: it keeps parameter reads at block rate.
package osc
