package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/RickyBoyd/aca-simulator/core"
	"github.com/RickyBoyd/aca-simulator/isa"
)

var _ = Describe("BranchPredictor", func() {
	It("always predicts fall-through with a static (P=0) predictor", func() {
		bp := core.NewBranchPredictor(0, 4)
		branch := isa.Instruction{Op: isa.OpBlt, Rs: 1, Rt: 2, Target: 100}

		next := bp.Predict(branch, 5)
		Expect(next).To(Equal(uint32(6)))

		correct := bp.Resolve(5, 6, false)
		Expect(correct).To(BeTrue())
		Expect(bp.Stats().Accuracy()).To(Equal(1.0))
	})

	It("always predicts an unconditional jump's target correctly", func() {
		bp := core.NewBranchPredictor(2, 4)
		jump := isa.Instruction{Op: isa.OpJ, Target: 42}

		next := bp.Predict(jump, 7)
		Expect(next).To(Equal(uint32(42)))

		correct := bp.Resolve(7, 42, true)
		Expect(correct).To(BeTrue())
	})

	It("scores a mispredicted fall-through as incorrect and adapts", func() {
		bp := core.NewBranchPredictor(2, 4)
		branch := isa.Instruction{Op: isa.OpBeq, Rs: 1, Rt: 2, Target: 20}

		// Counters start weakly-taken, so the first prediction is taken.
		next := bp.Predict(branch, 3)
		Expect(next).To(Equal(uint32(20)))

		correct := bp.Resolve(3, 4, false) // actually fell through
		Expect(correct).To(BeFalse())
		Expect(bp.Stats().Predictions).To(Equal(uint64(1)))
		Expect(bp.Stats().Correct).To(Equal(uint64(0)))

		// The not-taken outcome moved the counter to weakly not-taken.
		Expect(bp.Predict(branch, 3)).To(Equal(uint32(4)))
	})
})
