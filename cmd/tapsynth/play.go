package main

import (
	"encoding/binary"
	"flag"
	"log"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	sf := registerSessionFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := sf.newSession()
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sf.rate),
		ChannelCount: sf.channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return err
	}
	<-ready

	player := ctx.NewPlayer(newStream(s))
	player.Play()
	log.Printf("playing %.1f s at %.0f Hz", sf.seconds, sf.rate)

	time.Sleep(time.Duration(sf.seconds * float64(time.Second)))
	return player.Close()
}

// stream adapts a session to the byte reader oto pulls from.
type stream struct {
	s       *session
	encoded []byte
	pending []byte
	scratch []float32
}

func newStream(s *session) *stream {
	return &stream{
		s:       s,
		scratch: make([]float32, s.block*s.channels),
	}
}

// Read implements io.Reader with interleaved little-endian float32 frames.
func (st *stream) Read(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		if len(st.pending) == 0 {
			buf := st.s.render(st.s.block)
			frames := buf.Interleave(st.scratch)
			st.encoded = encodeFloat32LE(st.encoded[:0], st.scratch[:frames*st.s.channels])
			st.pending = st.encoded
		}
		c := copy(p[written:], st.pending)
		st.pending = st.pending[c:]
		written += c
	}
	return written, nil
}

func encodeFloat32LE(dst []byte, src []float32) []byte {
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}
