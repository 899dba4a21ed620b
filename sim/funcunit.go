package sim

import (
	"sort"

	"github.com/sarchlab/tomsim/sim/latency"
)

// Functional unit names, used both as each unit's Name and as the Resource
// field of structural-hazard Messages.
const (
	NameIntFU   = "Int FU"
	NameFPAddFU = "FP Add FU"
	NameFPMulFU = "FP Mul FU"
	NameFPDivFU = "FP Div FU"
)

// FunctionalUnit is a single pipelined (here: one-in-flight) execution
// resource with a fixed latency. Instructions wait in Queue until the unit
// is idle, then occupy it for Duration cycles.
type FunctionalUnit struct {
	Name     string
	Duration uint64

	Queue              []*InstructionRecord
	CurrentInstruction *InstructionRecord
	EndCycle           uint64
	hasEndCycle        bool
}

// NewFunctionalUnit creates an idle unit with the given name and latency.
func NewFunctionalUnit(name string, duration uint64) *FunctionalUnit {
	return &FunctionalUnit{Name: name, Duration: duration}
}

// busy reports whether the unit is still occupied at the given cycle.
func (fu *FunctionalUnit) busy(cycle uint64) bool {
	return fu.hasEndCycle && cycle < fu.EndCycle
}

// Enqueue appends record to the unit's wait queue and moves it into
// queued-for-EX. The record becomes eligible to enter EX once it reaches
// the head of the queue (by Index) and the unit is idle.
func (fu *FunctionalUnit) Enqueue(record *InstructionRecord) {
	fu.Queue = append(fu.Queue, record)
	record.setPending(StateQueuedForEX)
}

// dispatchNext pops the lowest-index queued record into the unit, if idle.
func (fu *FunctionalUnit) dispatchNext(cycle uint64) {
	if fu.busy(cycle) || len(fu.Queue) == 0 {
		return
	}

	sort.SliceStable(fu.Queue, func(i, j int) bool {
		return fu.Queue[i].Index < fu.Queue[j].Index
	})

	next := fu.Queue[0]
	fu.Queue = fu.Queue[1:]

	fu.CurrentInstruction = next
	next.setPending(StateEX)
	fu.EndCycle = cycle + fu.Duration
	fu.hasEndCycle = true
}

// Update advances the unit for one cycle: it completes any instruction whose
// EndCycle has arrived (placing it on the CDB), pulls its next queued
// instruction into EX if idle, and annotates every still-queued record with
// a structural-hazard message naming the current occupant.
func (fu *FunctionalUnit) Update(cdb *CDB, cycle uint64) {
	if fu.hasEndCycle && cycle == fu.EndCycle {
		fu.CurrentInstruction.setPending(StateQueuedForWB)
		cdb.Add(fu.CurrentInstruction)
		fu.CurrentInstruction = nil
		fu.hasEndCycle = false
	}

	fu.dispatchNext(cycle)

	if fu.CurrentInstruction == nil {
		return
	}

	for _, waiting := range fu.Queue {
		waiting.addMessage(Message{
			Kind:     HazardStructural,
			Resource: fu.Name,
			Producer: fu.CurrentInstruction.Index,
		})
	}
}

// FunctionalUnitPool owns the fixed set of functional units and the
// opcode-to-unit routing table.
type FunctionalUnitPool struct {
	intFU   *FunctionalUnit
	fpAddFU *FunctionalUnit
	fpMulFU *FunctionalUnit
	fpDivFU *FunctionalUnit

	units []*FunctionalUnit
}

// NewFunctionalUnitPool builds the four-unit pool with latencies taken from
// cfg. A nil cfg uses the default latencies (1/2/10/40 cycles).
func NewFunctionalUnitPool(cfg *latency.Config) *FunctionalUnitPool {
	if cfg == nil {
		cfg = latency.Default()
	}

	p := &FunctionalUnitPool{
		intFU:   NewFunctionalUnit(NameIntFU, cfg.IntCycles),
		fpAddFU: NewFunctionalUnit(NameFPAddFU, cfg.FPAddCycles),
		fpMulFU: NewFunctionalUnit(NameFPMulFU, cfg.FPMulCycles),
		fpDivFU: NewFunctionalUnit(NameFPDivFU, cfg.FPDivCycles),
	}
	p.units = []*FunctionalUnit{p.intFU, p.fpAddFU, p.fpMulFU, p.fpDivFU}

	return p
}

// unitFor routes an opcode to its functional unit. Any opcode not named
// below is integer-class and routed to the Int FU.
func (p *FunctionalUnitPool) unitFor(opcode string) *FunctionalUnit {
	switch opcode {
	case OpAddDouble, OpSubDouble:
		return p.fpAddFU
	case OpMulDouble:
		return p.fpMulFU
	case OpDivDouble:
		return p.fpDivFU
	default:
		return p.intFU
	}
}

// Enqueue routes record to the functional unit matching its opcode.
func (p *FunctionalUnitPool) Enqueue(record *InstructionRecord) {
	p.unitFor(record.Instruction.Opcode).Enqueue(record)
}

// Update advances every unit in the pool for one cycle.
func (p *FunctionalUnitPool) Update(cdb *CDB, cycle uint64) {
	for _, u := range p.units {
		u.Update(cdb, cycle)
	}
}

// Units returns the pool's four functional units, in the fixed order
// Int, FP Add, FP Mul, FP Div, for inspection (e.g. by a report renderer
// or a test asserting on occupancy).
func (p *FunctionalUnitPool) Units() []*FunctionalUnit {
	return p.units
}
