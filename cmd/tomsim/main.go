// Command tomsim runs the Tomasulo's-algorithm-with-reorder-buffer
// simulator over a plain-text program and prints the resulting timing
// table.
//
// For the full engine, see the sim package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/tomsim/asmtext"
	"github.com/sarchlab/tomsim/sim"
	"github.com/sarchlab/tomsim/sim/latency"
)

var (
	maxCycles  = flag.Uint64("max-cycles", sim.DefaultMaxCycles, "cycle cap before the run is declared non-terminating")
	configPath = flag.String("config", "", "path to a functional-unit latency configuration JSON file")
	verbose    = flag.Bool("v", false, "include RAW/structural hazard annotations in the report")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: tomsim [options] <program.asm>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(programPath string) error {
	data, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}

	instructions, err := asmtext.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse program: %w", err)
	}

	latencyCfg := latency.Default()
	if *configPath != "" {
		latencyCfg, err = latency.Load(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load latency config: %w", err)
		}
	}

	result, err := sim.Run(instructions, *maxCycles,
		sim.WithLatencyConfig(latencyCfg),
		sim.WithVerbose(*verbose),
	)
	if err != nil {
		return err
	}

	fmt.Print(result.Report)

	if result.CapHit {
		fmt.Fprintf(os.Stderr, "\nsimulation did not terminate within %d cycles\n", *maxCycles)
	} else {
		fmt.Printf("\nterminal cycle: %d\n", result.TerminalCycle)
	}

	return nil
}
