package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-tapsynth/plugin"
)

func runParams(args []string) error {
	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	state := fs.Bool("state", false, "print the default state as a YAML preset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	proc, err := plugin.New()
	if err != nil {
		return err
	}

	if *state {
		data, err := proc.GetState()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "ID\tName\tMin\tMax\tStep\tValue\n"); err != nil {
		return err
	}
	for _, spec := range proc.Params().Specs() {
		v, _ := proc.Params().Value(spec.ID)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n", spec.ID, spec.Name, spec.Min, spec.Max, spec.Step, v); err != nil {
			return err
		}
	}
	return tw.Flush()
}
