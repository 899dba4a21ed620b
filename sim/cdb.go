package sim

import "sort"

// CDB is the Common Data Bus: the staging list of records that have
// finished EX and are waiting for a writeback slot. At most one record
// leaves the CDB per cycle.
type CDB struct {
	pending []*InstructionRecord
}

// Add places record on the CDB, to be arbitrated (possibly on a later
// cycle, if it loses to a lower-index record).
func (c *CDB) Add(record *InstructionRecord) {
	c.pending = append(c.pending, record)
}

// Arbitrate resolves one cycle of CDB contention. If the CDB holds any
// records, it sorts them by Index, annotates every non-winner with a
// structural-hazard message naming the winner, moves the winner into WB,
// drains its reservation-station waiters onto the functional-unit pool
// wherever a waiter's last dependence just cleared, and removes the
// renaming-map entry for the winner's destination register if it still
// names the winner.
func Arbitrate(c *CDB, rs *ReservationStation, renaming *RenamingMap, pool *FunctionalUnitPool) {
	if len(c.pending) == 0 {
		return
	}

	sort.SliceStable(c.pending, func(i, j int) bool {
		return c.pending[i].Index < c.pending[j].Index
	})

	winner := c.pending[0]
	for _, loser := range c.pending[1:] {
		loser.addMessage(Message{
			Kind:     HazardStructural,
			Resource: "CDB",
			Producer: winner.Index,
		})
	}

	c.pending = c.pending[1:]

	winner.setPending(StateWB)

	for _, waiter := range rs.Drain(winner.Index) {
		waiter.DependenceCount--
		if waiter.DependenceCount == 0 {
			pool.Enqueue(waiter)
		}
	}

	renaming.ClearIfOwnedBy(winner.Instruction.WriteRegister, winner.Index)
}
