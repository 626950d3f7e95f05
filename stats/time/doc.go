// Package time reports time-domain level statistics of rendered audio.
package time
