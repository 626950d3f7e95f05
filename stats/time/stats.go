package time

import "math"

// Stats holds level statistics for a signal.
type Stats struct {
	Length      int
	DC          float64
	RMS         float64
	RMSdB       float64
	Peak        float64
	PeakPos     int
	PeakdB      float64
	CrestFactor float64
}

func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

// Calculate computes the statistics of signal in one pass.
func Calculate(signal []float64) Stats {
	var s Streaming
	s.Update(signal)
	return s.Result()
}

// RMS returns the root-mean-square of signal, or 0 when it is empty.
func RMS(signal []float64) float64 {
	return Calculate(signal).RMS
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	return Calculate(signal).Peak
}

// Streaming accumulates statistics across blocks. The zero value is ready
// to use.
type Streaming struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	peakPos int
}

// Update folds a block of samples into the running statistics.
func (s *Streaming) Update(samples []float64) {
	for i, x := range samples {
		s.sum += x
		s.sumSq += x * x
		if a := math.Abs(x); a > s.peak {
			s.peak = a
			s.peakPos = s.n + i
		}
	}
	s.n += len(samples)
}

// Reset discards all accumulated samples.
func (s *Streaming) Reset() {
	*s = Streaming{}
}

// Result returns the statistics of every sample seen so far.
func (s *Streaming) Result() Stats {
	if s.n == 0 {
		return Stats{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1)}
	}
	rms := math.Sqrt(s.sumSq / float64(s.n))
	st := Stats{
		Length:  s.n,
		DC:      s.sum / float64(s.n),
		RMS:     rms,
		RMSdB:   ampTodB(rms),
		Peak:    s.peak,
		PeakPos: s.peakPos,
		PeakdB:  ampTodB(s.peak),
	}
	if rms > 0 {
		st.CrestFactor = s.peak / rms
	}
	return st
}
