// Package spatial places a moving mono source in front of two fixed ears.
//
// [Spatializer] feeds each output channel through its own variable delay
// line. The delay and gain of a line follow the 2-D distance between the
// source and that ear: one distance unit is one millisecond of delay, and the
// gain falls linearly from 1 at the ear to 0 at the maximum distance.
//
// The delayed signal replaces the input by default. [WithDryMix] adds the
// unprocessed signal back and [WithGainClamp] keeps gains inside [0, 1].
package spatial
