// Command tomsim-info prints a short usage pointer to the full CLI.
//
// For the full CLI, use: go run ./cmd/tomsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tomsim - Tomasulo's algorithm with reorder buffer simulator")
	fmt.Println("")
	fmt.Println("Usage: tomsim [options] <program.asm>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -max-cycles  Cycle cap before the run is declared non-terminating")
	fmt.Println("  -config      Path to a functional-unit latency configuration JSON file")
	fmt.Println("  -v           Include RAW/structural hazard annotations in the report")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tomsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: you provided arguments. Use 'go run ./cmd/tomsim' instead.")
	}
}
