// Package asmtext parses the simulator's plain-text program format, one
// instruction per line, e.g.
//
//	ADD.D F2 F0 F4
//
// into sim.Instruction values: the first token is the opcode, the second is
// the destination register (or the literal "-" for no destination), and
// every remaining token is a source register.
package asmtext

import (
	"fmt"
	"strings"

	"github.com/sarchlab/tomsim/sim"
)

// NoDestination is the token a line uses to mean "this instruction writes no
// register", for instructions like branches or stores that only read.
const NoDestination = "-"

// ParseLine parses a single non-empty instruction line. It uses
// strings.Fields rather than a single-space split, so repeated whitespace
// between tokens never produces empty register names.
func ParseLine(line string) (sim.Instruction, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return sim.Instruction{}, fmt.Errorf("%w: line %q has fewer than 2 tokens", sim.ErrMalformedInstruction, line)
	}

	instr := sim.Instruction{
		Opcode:        tokens[0],
		WriteRegister: tokens[1],
		ReadRegisters: append([]string(nil), tokens[2:]...),
	}

	if instr.WriteRegister == NoDestination {
		instr.WriteRegister = ""
	}

	return instr, nil
}

// Parse parses a whole program, one instruction per non-blank line. Blank
// lines (and lines that are only whitespace) are skipped, so callers can
// separate instructions with blank lines for readability.
func Parse(program string) ([]sim.Instruction, error) {
	var instructions []sim.Instruction

	for i, line := range strings.Split(program, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		instr, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		instructions = append(instructions, instr)
	}

	return instructions, nil
}
