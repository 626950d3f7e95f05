// Package synth provides the polyphonic voice layer: a [Voice] that renders
// one note through an LFO-swept oscillator, a fixed gain and an ADSR
// envelope, and a [Pool] that allocates voices to incoming note events.
//
// Voices satisfy the [Renderer] capability contract, so a different
// allocation policy can drive them without knowing the concrete type.
// Rendering never allocates: all scratch memory is sized by Prepare.
package synth
