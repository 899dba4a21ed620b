package sim

import (
	"fmt"
	"strings"
)

// Stage is the instruction state machine's sum type, an exhaustively-matched
// enum so that a typo can never silently produce a new "state" at runtime.
type Stage int

// The nine stages an InstructionRecord can occupy, in the order a record
// normally passes through them.
const (
	StateUnissued Stage = iota
	StateIS
	StateReservationStation
	StateQueuedForEX
	StateEX
	StateQueuedForWB
	StateWB
	StateWaitingForCommit
	StateCommitted
)

func (s Stage) String() string {
	switch s {
	case StateUnissued:
		return "unissued"
	case StateIS:
		return "IS"
	case StateReservationStation:
		return "reservation-station"
	case StateQueuedForEX:
		return "queued-for-EX"
	case StateEX:
		return "EX"
	case StateQueuedForWB:
		return "queued-for-WB"
	case StateWB:
		return "WB"
	case StateWaitingForCommit:
		return "waiting-for-commit"
	case StateCommitted:
		return "CM"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// valid reports whether s is one of the nine enumerated stages.
func (s Stage) valid() bool {
	return s >= StateUnissued && s <= StateCommitted
}

// HazardKind distinguishes the two annotation triples a record can carry in
// its Messages set.
type HazardKind int

const (
	// HazardRAW marks a read-after-write dependence discovered at dispatch.
	HazardRAW HazardKind = iota
	// HazardStructural marks contention for a functional unit slot or CDB.
	HazardStructural
)

// Message is one hazard annotation recorded against an InstructionRecord.
// For HazardRAW, Resource is the register name and Producer is the index of
// the instruction that still owns it. For HazardStructural, Resource is
// either a functional unit's name or the literal "CDB", and Producer is the
// index of the instruction currently occupying that resource.
type Message struct {
	Kind     HazardKind
	Resource string
	Producer int
}

func (m Message) String() string {
	switch m.Kind {
	case HazardRAW:
		return fmt.Sprintf("RAW on %s (from %d)", m.Resource, m.Producer)
	default:
		return fmt.Sprintf("SD on %s (from %d)", m.Resource, m.Producer)
	}
}

// HistoryEntry records the cycle at which a record entered a reportable
// stage. EX is recorded on entry; the matching EX-end entry is appended at
// the flush following the cycle the record leaves EX.
type HistoryEntry struct {
	Stage string
	Cycle uint64
}

// InstructionRecord is the tracked, mutable twin of an immutable Instruction.
// Exactly one InstructionRecord exists per input instruction, keyed by its
// program-order Index, which is the sole tie-breaker used throughout
// dispatch, CDB arbitration, functional-unit queueing, and commit.
type InstructionRecord struct {
	Index       int
	Instruction *Instruction

	State        Stage
	pendingState Stage
	hasPending   bool

	DependenceCount int

	History  []HistoryEntry
	Messages map[Message]struct{}
}

// newInstructionRecord builds the tracked record for instruction i at
// program position index. Initial state is StateUnissued.
func newInstructionRecord(instr *Instruction, index int) *InstructionRecord {
	return &InstructionRecord{
		Index:       index,
		Instruction: instr,
		State:       StateUnissued,
		Messages:    make(map[Message]struct{}),
	}
}

// setPending requests a transition for the next flush. It is the only way
// State changes; callers never assign to State directly. An out-of-range
// Stage is a programming error and panics wrapped in ErrIllegalStateTransition,
// since every call site in this package only ever passes a named constant.
func (r *InstructionRecord) setPending(s Stage) {
	if !s.valid() {
		panic(fmt.Errorf("%w: %d", ErrIllegalStateTransition, int(s)))
	}

	r.pendingState = s
	r.hasPending = true
}

// addMessage records a hazard annotation. Messages is a set: the same triple
// recorded twice (e.g. losing CDB arbitration to the same winner on two
// different cycles) only appears once.
func (r *InstructionRecord) addMessage(m Message) {
	r.Messages[m] = struct{}{}
}

// readyToCommit reports whether the ROB may retire this record.
func (r *InstructionRecord) readyToCommit() bool {
	return r.State == StateWB || r.State == StateWaitingForCommit
}

// flush copies pendingState into State, appending history entries for the
// reportable transitions IS, EX, WB and CM stamped with cycle, the cycle in
// which the transition was requested, and, when a record leaves EX, an
// EX-end entry stamped cycle-1, its last cycle in EX. This is the only place State is
// mutated; every transition anywhere else in the package writes pendingState
// and waits for the InstructionTracker to call flush on all records in
// program order during Update.
func (r *InstructionRecord) flush(cycle uint64) {
	if r.hasPending {
		switch r.pendingState {
		case StateIS, StateEX, StateWB, StateCommitted:
			r.History = append(r.History, HistoryEntry{Stage: r.pendingState.String(), Cycle: cycle})
		}

		if r.State == StateEX {
			r.History = append(r.History, HistoryEntry{Stage: "EX-end", Cycle: cycle - 1})
		}

		r.State = r.pendingState
		r.pendingState = StateUnissued
		r.hasPending = false

		return
	}

	// No explicit transition was requested this cycle. A record sitting in
	// WB that didn't just get there implicitly becomes waiting-for-commit:
	// it has already broadcast on the CDB and is simply queued behind an
	// earlier record for in-order retirement.
	if r.State == StateWB {
		r.State = StateWaitingForCommit
	}
}

// historyCycle returns the cycle recorded for the first history entry with
// the given stage label, and whether one was found.
func (r *InstructionRecord) historyCycle(stage string) (uint64, bool) {
	for _, h := range r.History {
		if h.Stage == stage {
			return h.Cycle, true
		}
	}

	return 0, false
}

// InstructionText renders "<opcode> <write>, <read0>, <read1>, ..." the way
// the report column expects it.
func (r *InstructionRecord) InstructionText() string {
	regs := make([]string, 0, 1+len(r.Instruction.ReadRegisters))
	regs = append(regs, r.Instruction.WriteRegister)
	regs = append(regs, r.Instruction.ReadRegisters...)

	return r.Instruction.Opcode + " " + strings.Join(regs, ", ")
}
