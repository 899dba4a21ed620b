package sim

// InstructionTracker owns every InstructionRecord for a run and drives their
// shared per-cycle flush. It also knows which record is next to issue and
// whether the run has finished.
type InstructionTracker struct {
	records []*InstructionRecord

	// TerminalCycle is set to the cycle at which the last instruction
	// committed. It is only meaningful when CapHit is false.
	TerminalCycle uint64
	// CapHit is true if Update returned done because the cycle cap was
	// reached before the last instruction committed.
	CapHit bool
}

// NewInstructionTracker builds the per-instruction records for a program, in
// program order.
func NewInstructionTracker(instructions []Instruction) *InstructionTracker {
	t := &InstructionTracker{
		records: make([]*InstructionRecord, len(instructions)),
	}

	for i := range instructions {
		instr := instructions[i]
		t.records[i] = newInstructionRecord(&instr, i)
	}

	return t
}

// Records returns every tracked record, in program order.
func (t *InstructionTracker) Records() []*InstructionRecord {
	return t.records
}

// IssueNext finds the lowest-index record still unissued and, if the ROB has
// room, adds it to the ROB and moves it into IS. At most one record issues
// per call.
func (t *InstructionTracker) IssueNext(rob *ReorderBuffer) {
	for _, r := range t.records {
		if r.State != StateUnissued {
			continue
		}

		if rob.IsFull() {
			return
		}

		if err := rob.Add(r); err != nil {
			// IsFull was just checked, so this should be unreachable; surface
			// it rather than losing the instruction silently.
			panic(err)
		}

		r.setPending(StateIS)

		return
	}
}

// Update flushes, in program order, every pending state that was requested
// while cycle-1 was simulated, stamping history with cycle-1 (the cycle in
// which each transition happened), and reports whether the run is finished:
// either the last instruction has committed (TerminalCycle is set to the
// cycle of its CM entry) or the cycle cap has been reached (CapHit is set to
// true). At cycle 0 nothing has been simulated yet, so nothing is flushed.
func (t *InstructionTracker) Update(cycle, maxCycles uint64) bool {
	if cycle > 0 {
		for _, r := range t.records {
			r.flush(cycle - 1)
		}
	}

	if len(t.records) == 0 {
		return true
	}

	if last := t.records[len(t.records)-1]; last.State == StateCommitted {
		t.TerminalCycle = cycle - 1

		return true
	}

	if cycle >= maxCycles {
		t.CapHit = true

		return true
	}

	return false
}
