package sim

// dispatch resolves source registers for every record currently in IS
// (in ROB insertion order), parking records with an unresolved source in the
// reservation station and routing the rest straight onto the functional-unit
// pool. The destination register is claimed in the renaming map
// unconditionally, even for a record that stalls, so that a later issue in
// the same cycle observes the new producer.
func dispatch(isRecords []*InstructionRecord, renaming *RenamingMap, rs *ReservationStation, pool *FunctionalUnitPool) {
	for _, record := range isRecords {
		hasDependence := false

		for _, reg := range record.Instruction.ReadRegisters {
			producer, claimed := renaming.Lookup(reg)
			if !claimed {
				continue
			}

			hasDependence = true
			record.setPending(StateReservationStation)
			record.DependenceCount++
			rs.Wait(producer, record.Index)
			record.addMessage(Message{Kind: HazardRAW, Resource: reg, Producer: producer})
		}

		if !hasDependence {
			pool.Enqueue(record)
		}

		renaming.Claim(record.Instruction.WriteRegister, record.Index)
	}
}
