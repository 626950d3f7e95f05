package buffer

import "github.com/cwbudde/algo-vecmath"

// Buffer holds one float64 slice per channel, all of equal length.
type Buffer struct {
	channels [][]float64
	frames   int
}

// New returns a zero-filled Buffer with the given channel and frame counts.
// Negative sizes are treated as zero.
func New(channels, frames int) *Buffer {
	if channels < 0 {
		channels = 0
	}
	if frames < 0 {
		frames = 0
	}

	backing := make([]float64, channels*frames)
	b := &Buffer{channels: make([][]float64, channels), frames: frames}
	for ch := range b.channels {
		b.channels[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}
	return b
}

// FromChannels wraps existing channel slices without copying. The frame count
// is the length of the shortest slice.
func FromChannels(data [][]float64) *Buffer {
	frames := 0
	for i, ch := range data {
		if i == 0 || len(ch) < frames {
			frames = len(ch)
		}
	}

	b := &Buffer{channels: make([][]float64, len(data)), frames: frames}
	for i, ch := range data {
		b.channels[i] = ch[:frames]
	}
	return b
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.channels)
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	return b.frames
}

// Channel returns the samples of channel ch, or nil if ch is out of range.
func (b *Buffer) Channel(ch int) []float64 {
	if ch < 0 || ch >= len(b.channels) {
		return nil
	}
	return b.channels[ch]
}

// Zero sets all samples of all channels to 0.
func (b *Buffer) Zero() {
	for _, ch := range b.channels {
		for i := range ch {
			ch[i] = 0
		}
	}
}

// ZeroRange sets samples in [start, end) of every channel to 0.
// Indices are clamped to valid bounds.
func (b *Buffer) ZeroRange(start, end int) {
	start, end = b.clampRange(start, end)
	for _, ch := range b.channels {
		for i := start; i < end; i++ {
			ch[i] = 0
		}
	}
}

// ApplyGain multiplies n samples of channel ch, starting at start, by gain.
func (b *Buffer) ApplyGain(ch, start, n int, gain float64) {
	data := b.Channel(ch)
	if data == nil {
		return
	}
	start, end := b.clampRange(start, start+n)
	if start >= end {
		return
	}
	vecmath.ScaleBlockInPlace(data[start:end], gain)
}

// ApplyGainAll multiplies every sample of every channel by gain.
func (b *Buffer) ApplyGainAll(gain float64) {
	for ch := range b.channels {
		b.ApplyGain(ch, 0, b.frames, gain)
	}
}

// AddFrom adds n samples of src channel srcCh, starting at srcStart, into
// channel dstCh of b starting at dstStart. The range is truncated to fit
// both buffers.
func (b *Buffer) AddFrom(dstCh, dstStart int, src *Buffer, srcCh, srcStart, n int) {
	dst := b.Channel(dstCh)
	in := src.Channel(srcCh)
	if dst == nil || in == nil || n <= 0 || dstStart < 0 || srcStart < 0 {
		return
	}
	if dstStart+n > len(dst) {
		n = len(dst) - dstStart
	}
	if srcStart+n > len(in) {
		n = len(in) - srcStart
	}
	if n <= 0 {
		return
	}
	vecmath.AddBlockInPlace(dst[dstStart:dstStart+n], in[srcStart:srcStart+n])
}

// MulRange multiplies channel ch, starting at start, element-wise by gains.
// The number of affected samples is len(gains), truncated to the buffer.
func (b *Buffer) MulRange(ch, start int, gains []float64) {
	data := b.Channel(ch)
	if data == nil || start < 0 || start >= len(data) {
		return
	}
	n := len(gains)
	if start+n > len(data) {
		n = len(data) - start
	}
	vecmath.MulBlockInPlace(data[start:start+n], gains[:n])
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	out := New(len(b.channels), b.frames)
	for ch, data := range b.channels {
		copy(out.channels[ch], data)
	}
	return out
}

// Interleave writes frames as L, R, L, R, ... float32 samples into dst and
// returns the number of frames written.
func (b *Buffer) Interleave(dst []float32) int {
	nch := len(b.channels)
	if nch == 0 {
		return 0
	}
	frames := len(dst) / nch
	if frames > b.frames {
		frames = b.frames
	}
	for i := 0; i < frames; i++ {
		for ch, data := range b.channels {
			dst[i*nch+ch] = float32(data[i])
		}
	}
	return frames
}

func (b *Buffer) clampRange(start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > b.frames {
		end = b.frames
	}
	if start > end {
		start = end
	}
	return start, end
}
