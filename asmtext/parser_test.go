package asmtext_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomsim/asmtext"
	"github.com/sarchlab/tomsim/sim"
)

var _ = Describe("ParseLine", func() {
	It("parses an opcode, a destination and any number of source registers", func() {
		instr, err := asmtext.ParseLine("ADD.D F2 F0 F4")
		Expect(err).NotTo(HaveOccurred())
		Expect(instr).To(Equal(sim.Instruction{
			Opcode:        "ADD.D",
			WriteRegister: "F2",
			ReadRegisters: []string{"F0", "F4"},
		}))
	})

	It("parses an instruction with no source registers", func() {
		instr, err := asmtext.ParseLine("DADDI R1")
		Expect(err).NotTo(HaveOccurred())
		Expect(instr.Opcode).To(Equal("DADDI"))
		Expect(instr.WriteRegister).To(Equal("R1"))
		Expect(instr.ReadRegisters).To(BeEmpty())
	})

	It("treats the no-destination marker as an empty write register", func() {
		instr, err := asmtext.ParseLine("BEQ - R1 R2")
		Expect(err).NotTo(HaveOccurred())
		Expect(instr.WriteRegister).To(Equal(""))
		Expect(instr.ReadRegisters).To(Equal([]string{"R1", "R2"}))
	})

	It("collapses repeated whitespace between tokens", func() {
		instr, err := asmtext.ParseLine("ADD.D   F2   F0   F4")
		Expect(err).NotTo(HaveOccurred())
		Expect(instr.ReadRegisters).To(Equal([]string{"F0", "F4"}))
	})

	It("rejects a line with only one token", func() {
		_, err := asmtext.ParseLine("ADD.D")
		Expect(err).To(MatchError(sim.ErrMalformedInstruction))
	})
})

var _ = Describe("Parse", func() {
	It("parses one instruction per non-blank line", func() {
		instructions, err := asmtext.Parse("L.D F0\n\nADD.D F2 F0 F4\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(instructions).To(HaveLen(2))
		Expect(instructions[0].Opcode).To(Equal("L.D"))
		Expect(instructions[1].Opcode).To(Equal("ADD.D"))
	})

	It("skips lines that are blank or only whitespace", func() {
		instructions, err := asmtext.Parse("L.D F0\n   \nDADDI R1\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(instructions).To(HaveLen(2))
	})

	It("reports the 1-indexed line number of a malformed line", func() {
		_, err := asmtext.Parse("L.D F0\nBADLINE\n")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 2"))
	})
})
