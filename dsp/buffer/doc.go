// Package buffer provides a channel × frame sample matrix for block-based
// processing. Buffers are sized once, outside the real-time path, and then
// reused: every method here works in place and never allocates, except
// [New], [Buffer.Copy] and the interleaving helpers that size their output.
//
// Gain, mixing and multiplication kernels are delegated to algo-vecmath so
// they pick up SIMD implementations where the platform has them.
package buffer
