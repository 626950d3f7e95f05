// Package pitch estimates the dominant frequency of a rendered signal.
//
// The estimator windows the signal, takes an FFT, picks the strongest bin
// inside a search band and refines it by parabolic interpolation of the
// log magnitudes around the peak. It is an offline measurement tool and
// allocates its working buffers once per [Estimator].
package pitch
