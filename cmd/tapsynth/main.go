// Command tapsynth renders, plays and inspects the tapsynth instrument.
//
// Usage:
//
//	tapsynth <command> [flags]
//
// Commands:
//
//	render   render to a 16-bit WAV file
//	play     play through the default audio device
//	info     print build and CPU information
//	params   list parameters or print a state preset
//
// Examples:
//
//	tapsynth render -o sweep.wav -seconds 4 -x 30 -y 70
//	tapsynth render -notes "C4 E4 G4 r C5" -no-seq -analyze
//	tapsynth play -preset preset.yaml
//	tapsynth params -state > preset.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{name: "render", usage: "render to a 16-bit WAV file", run: runRender},
	{name: "play", usage: "play through the default audio device", run: runPlay},
	{name: "info", usage: "print build and CPU information", run: runInfo},
	{name: "params", usage: "list parameters or print a state preset", run: runParams},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("tapsynth: ")

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	name := flag.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		err := c.run(flag.Args()[1:])
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: tapsynth <command> [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nRun 'tapsynth <command> -h' for command flags.\n")
}
