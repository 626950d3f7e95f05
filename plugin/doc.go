// Package plugin wires the synth core into a host-facing block processor.
//
// A [Processor] owns the parameter store, a voice pool, the gate sequencer
// and the spatializer. The host calls Prepare whenever the stream format
// changes and ProcessBlock once per audio callback. Parameter values may be
// written from any goroutine; the audio path reads them once per block.
package plugin
