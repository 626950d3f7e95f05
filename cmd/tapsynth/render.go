package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/youpy/go-wav"

	"github.com/cwbudde/algo-tapsynth/dsp/dither"
	"github.com/cwbudde/algo-tapsynth/measure/pitch"
	levels "github.com/cwbudde/algo-tapsynth/stats/time"
)

const wavBits = 16

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	sf := registerSessionFlags(fs)
	out := fs.String("o", "tapsynth.wav", "output WAV file")
	ditherName := fs.String("dither", "tpdf", "dither for 16-bit export: none, rpdf, tpdf")
	analyze := fs.Bool("analyze", false, "print the dominant frequency of the rendered left channel")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dt, err := dither.ParseType(*ditherName)
	if err != nil {
		return err
	}
	s, err := sf.newSession()
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	frames := int(sf.seconds * sf.rate)
	left, err := renderWAV(f, s, frames, sf.rate, dt)
	if err != nil {
		return err
	}
	log.Printf("wrote %s: %d frames, %d channels, %.0f Hz", *out, frames, sf.channels, sf.rate)
	st := levels.Calculate(left)
	log.Printf("left channel: peak %.1f dBFS at frame %d, rms %.1f dBFS", st.PeakdB, st.PeakPos, st.RMSdB)

	if *analyze {
		res, err := pitch.Estimate(left, pitch.Config{SampleRate: sf.rate, FFTSize: len(left)})
		if err != nil {
			return err
		}
		fmt.Printf("dominant frequency: %.2f Hz (MIDI %.2f), amplitude %.3f\n", res.Frequency, res.Note, res.Magnitude)
	}
	return nil
}

// renderWAV writes frames of s to w as 16-bit PCM and returns the left
// channel before quantization.
func renderWAV(w io.Writer, s *session, frames int, sampleRate float64, dt dither.Type) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("duration must be > 0 frames: %d", frames)
	}

	quant := make([]*dither.Quantizer, min(s.channels, 2))
	for ch := range quant {
		q, err := dither.NewQuantizer(dither.WithBitDepth(wavBits), dither.WithType(dt))
		if err != nil {
			return nil, err
		}
		quant[ch] = q
	}

	ww := wav.NewWriter(w, uint32(frames), uint16(s.channels), uint32(sampleRate), wavBits)
	samples := make([]wav.Sample, s.block)
	left := make([]float64, 0, frames)

	for done := 0; done < frames; {
		n := min(s.block, frames-done)
		buf := s.render(n)
		for i := 0; i < n; i++ {
			var smp wav.Sample
			for ch, q := range quant {
				smp.Values[ch] = q.ProcessInteger(buf.Channel(ch)[i])
			}
			samples[i] = smp
		}
		if err := ww.WriteSamples(samples[:n]); err != nil {
			return nil, err
		}
		left = append(left, buf.Channel(0)[:n]...)
		done += n
	}
	return left, nil
}
