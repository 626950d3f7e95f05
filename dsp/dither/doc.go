// Package dither converts floating-point samples to fixed-point integers
// with optional dither noise and first-order error feedback.
//
// A [Quantizer] is stateful when error feedback is enabled, so use one per
// channel.
package dither
