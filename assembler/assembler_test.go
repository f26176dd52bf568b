package assembler_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/RickyBoyd/aca-simulator/assembler"
	"github.com/RickyBoyd/aca-simulator/isa"
)

func TestAssembler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assembler Suite")
}

var _ = Describe("Assemble", func() {
	It("assembles the straight-line program from scenario 1", func() {
		prog, err := assembler.AssembleLines([]string{
			"LDC 1 10",
			"LDC 2 20",
			"ADD 3 1 2",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(prog).To(Equal([]isa.Instruction{
			{Op: isa.OpLdc, Rd: 1, Imm: 10},
			{Op: isa.OpLdc, Rd: 2, Imm: 20},
			{Op: isa.OpAdd, Rd: 3, Rs: 1, Rt: 2},
		}))
	})

	It("skips blank lines and comments", func() {
		prog, err := assembler.AssembleLines([]string{
			"# a comment",
			"",
			"; another comment style",
			"NOOP",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(prog).To(Equal([]isa.Instruction{{Op: isa.OpNoop}}))
	})

	It("is case-insensitive on mnemonics", func() {
		prog, err := assembler.AssembleLines([]string{"add 1 2 3"})
		Expect(err).NotTo(HaveOccurred())
		Expect(prog[0].Op).To(Equal(isa.OpAdd))
	})

	It("parses memory and control-flow instructions", func() {
		prog, err := assembler.AssembleLines([]string{
			"SW 2 1",
			"LW 2 3",
			"J 10",
			"BEQ 1 2 5",
			"BEQZ 1 5",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(prog).To(Equal([]isa.Instruction{
			{Op: isa.OpSw, Rs: 2, Rt: 1},
			{Op: isa.OpLw, Rs: 2, Rd: 3},
			{Op: isa.OpJ, Target: 10},
			{Op: isa.OpBeq, Rs: 1, Rt: 2, Target: 5},
			{Op: isa.OpBeqz, Rs: 1, Target: 5},
		}))
	})

	It("rejects an unknown mnemonic with a line number", func() {
		_, err := assembler.Assemble(strings.NewReader("FOO 1 2 3"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 1"))
		Expect(err.Error()).To(ContainSubstring("unknown mnemonic"))
	})

	It("rejects the wrong operand count", func() {
		_, err := assembler.Assemble(strings.NewReader("ADD 1 2"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("expects 3 operand"))
	})

	It("rejects a register index above 31", func() {
		_, err := assembler.Assemble(strings.NewReader("LDC 99 1"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("out of range"))
	})

	It("rejects a non-numeric operand", func() {
		_, err := assembler.Assemble(strings.NewReader("LDC 1 notanumber"))
		Expect(err).To(HaveOccurred())
	})
})
