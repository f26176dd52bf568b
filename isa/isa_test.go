package isa_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/RickyBoyd/aca-simulator/isa"
)

func TestISA(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ISA Suite")
}

var _ = Describe("Instruction classification", func() {
	It("classifies three-register arithmetic/logic ops", func() {
		for _, op := range []isa.Op{isa.OpAdd, isa.OpSub, isa.OpMult, isa.OpDiv, isa.OpMod, isa.OpAnd, isa.OpOr, isa.OpXor} {
			inst := isa.Instruction{Op: op}
			Expect(inst.IsThreeRegister()).To(BeTrue(), "op %v", op)
		}
	})

	It("classifies register+immediate ops", func() {
		for _, op := range []isa.Op{isa.OpAddI, isa.OpSubI, isa.OpAndI, isa.OpSl, isa.OpSr} {
			inst := isa.Instruction{Op: op}
			Expect(inst.IsRegImm()).To(BeTrue(), "op %v", op)
		}
	})

	It("routes ALU-family ops to the ALU and MULT/DIV/MOD to the multiplier", func() {
		Expect(isa.Instruction{Op: isa.OpAdd}.IsALU()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpMov}.IsALU()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpLdc}.IsALU()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpMult}.IsALU()).To(BeFalse())
		Expect(isa.Instruction{Op: isa.OpMult}.IsMultiplier()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpDiv}.IsMultiplier()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpMod}.IsMultiplier()).To(BeTrue())
	})

	It("identifies memory instructions", func() {
		Expect(isa.Instruction{Op: isa.OpLw}.IsMemory()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpSw}.IsMemory()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpAdd}.IsMemory()).To(BeFalse())
	})

	It("distinguishes unconditional jumps from conditional branches", func() {
		Expect(isa.Instruction{Op: isa.OpJ}.IsUnconditionalJump()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpJ}.IsBranch()).To(BeFalse())
		Expect(isa.Instruction{Op: isa.OpBeqz}.IsBranch()).To(BeTrue())
		Expect(isa.Instruction{Op: isa.OpBeqz}.IsControlFlow()).To(BeTrue())
	})

	It("renders mnemonics for every opcode", func() {
		Expect(isa.OpAdd.String()).To(Equal("ADD"))
		Expect(isa.OpBeqz.String()).To(Equal("BEQZ"))
		Expect(isa.Op(255).String()).To(Equal("UNKNOWN"))
		for op := isa.OpNoop; op <= isa.OpBeqz; op++ {
			Expect(op.String()).NotTo(Equal("UNKNOWN"), "op %d", op)
		}
	})
})
