package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomsim/sim"
)

var _ = Describe("Stage", func() {
	It("names every enumerated stage", func() {
		Expect(sim.StateUnissued.String()).To(Equal("unissued"))
		Expect(sim.StateIS.String()).To(Equal("IS"))
		Expect(sim.StateReservationStation.String()).To(Equal("reservation-station"))
		Expect(sim.StateQueuedForEX.String()).To(Equal("queued-for-EX"))
		Expect(sim.StateEX.String()).To(Equal("EX"))
		Expect(sim.StateQueuedForWB.String()).To(Equal("queued-for-WB"))
		Expect(sim.StateWB.String()).To(Equal("WB"))
		Expect(sim.StateWaitingForCommit.String()).To(Equal("waiting-for-commit"))
		Expect(sim.StateCommitted.String()).To(Equal("CM"))
	})
})

var _ = Describe("Instruction", func() {
	It("rejects an empty opcode", func() {
		err := sim.Instruction{}.Validate()
		Expect(err).To(MatchError(sim.ErrMalformedInstruction))
	})

	It("accepts an instruction with no write register", func() {
		err := sim.Instruction{Opcode: "DADDI", ReadRegisters: []string{"R1"}}.Validate()
		Expect(err).NotTo(HaveOccurred())
	})
})
