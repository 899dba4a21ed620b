package sim

import (
	"fmt"

	"github.com/sarchlab/tomsim/sim/latency"
)

// Result is everything a caller needs out of a completed (or cap-hit) run:
// the rendered timing table, the terminal cycle if the run completed
// normally, and whether the cap was hit instead. The terminal cycle lives on
// the value returned from Run, whose lifetime the caller owns, rather than
// in package-level mutable state.
type Result struct {
	Report        string
	TerminalCycle uint64
	CapHit        bool
	Records       []*InstructionRecord
}

// DefaultMaxCycles is the cap GetMax uses when it runs a program to
// determine its terminal cycle.
const DefaultMaxCycles = 1000

// Run simulates instructions to completion or until maxCycles is reached,
// whichever comes first, and returns the rendered report together with
// termination metadata. maxCycles must be positive.
//
// Per cycle, in this fixed order: termination check, issue, dispatch,
// functional-unit update, CDB arbitration/writeback, commit, flush. Every
// stage reads actual state, which only the flush updates, so a record issued
// in one cycle is dispatched in the next; CDB arbitration runs after the
// functional-unit update so that a record finishing EX can win the CDB in
// the same cycle.
func Run(instructions []Instruction, maxCycles uint64, opts ...Option) (*Result, error) {
	cfg := buildConfig(opts)

	for i, instr := range instructions {
		if err := instr.Validate(); err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	tracker := NewInstructionTracker(instructions)
	rob := NewReorderBuffer(cfg.ROBCapacity)
	pool := NewFunctionalUnitPool(cfg.Latency)
	renaming := NewRenamingMap()
	rs := NewReservationStation(tracker.Records())
	cdb := &CDB{}

	cycle := uint64(0)
	for !tracker.Update(cycle, maxCycles) {
		tracker.IssueNext(rob)
		dispatch(rob.IterIS(), renaming, rs, pool)
		pool.Update(cdb, cycle)
		Arbitrate(cdb, rs, renaming, pool)
		rob.Commit()

		cycle++
	}

	return &Result{
		Report:        Render(tracker.Records(), cfg.Verbose),
		TerminalCycle: tracker.TerminalCycle,
		CapHit:        tracker.CapHit,
		Records:       tracker.Records(),
	}, nil
}

// GetMax runs instructions with the default 1000-cycle cap and returns the
// terminal cycle, or -1 if the run did not complete within that cap.
func GetMax(instructions []Instruction) int64 {
	result, err := Run(instructions, DefaultMaxCycles)
	if err != nil || result.CapHit {
		return -1
	}

	return int64(result.TerminalCycle)
}

// Option configures a Run call.
type Option func(*runConfig)

type runConfig struct {
	ROBCapacity int
	Latency     *latency.Config
	Verbose     bool
}

func buildConfig(opts []Option) runConfig {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithROBCapacity bounds the reorder buffer to n entries instead of the
// effectively-unbounded default.
func WithROBCapacity(n int) Option {
	return func(cfg *runConfig) {
		cfg.ROBCapacity = n
	}
}

// WithLatencyConfig supplies non-default functional-unit durations.
func WithLatencyConfig(lc *latency.Config) Option {
	return func(cfg *runConfig) {
		cfg.Latency = lc
	}
}

// WithVerbose includes each record's hazard messages in the rendered report.
func WithVerbose(v bool) Option {
	return func(cfg *runConfig) {
		cfg.Verbose = v
	}
}
