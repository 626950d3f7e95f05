package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-tapsynth/dsp/core"
	"github.com/cwbudde/algo-tapsynth/plugin"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	feat := cpu.DetectFeatures()
	def := core.DefaultProcessorConfig()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		key string
		val any
	}{
		{"processor", plugin.Name},
		{"go", runtime.Version()},
		{"arch", feat.Architecture},
		{"sse2", feat.HasSSE2},
		{"avx2", feat.HasAVX2},
		{"generic kernels forced", feat.ForceGeneric},
		{"default sample rate", def.SampleRate},
		{"default block size", def.BlockSize},
		{"default channels", def.Channels},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%v\n", r.key, r.val); err != nil {
			return err
		}
	}
	return tw.Flush()
}
