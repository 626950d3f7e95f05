// Package param holds the ranged control values a processor reads once per
// block.
//
// A [Store] is built once from a list of [Spec] values and never changes
// shape afterwards, so looking up a [Param] is safe from any goroutine. Each
// Param keeps its value in a single atomic word: one control goroutine
// writes with [Param.Set], the audio goroutine reads with [Param.Value]
// without locking or blocking.
package param
