package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/RickyBoyd/aca-simulator/isa"
)

var _ = Describe("FunctionalUnit", func() {
	It("pipelines one queued dispatch while the current op has one cycle left", func() {
		fu := newTestALU(2)

		Expect(fu.CanAccept()).To(BeTrue())
		fu.Dispatch(isa.OpAdd, 1, 1, 0, 10)
		Expect(fu.Busy()).To(BeTrue())

		// One cycle left, so a second dispatch is accepted and queued.
		fu.Advance()
		Expect(fu.CanAccept()).To(BeTrue())
		fu.Dispatch(isa.OpAdd, 2, 2, 0, 11)

		// The first op finishes this cycle; the queued op has not started yet.
		fu.Advance()
		res, ok := fu.Harvest()
		Expect(ok).To(BeTrue())
		Expect(res.RobEntry).To(Equal(10))
		Expect(res.Value).To(Equal(uint32(2)))

		// Now the queued op promotes into current and eventually completes.
		fu.Advance()
		fu.Advance()
		res, ok = fu.Harvest()
		Expect(ok).To(BeTrue())
		Expect(res.RobEntry).To(Equal(11))
		Expect(res.Value).To(Equal(uint32(4)))
	})

	It("holds a completed result until harvested", func() {
		fu := newTestALU(1)
		fu.Dispatch(isa.OpAdd, 3, 4, 0, 1)
		fu.Advance()
		Expect(fu.Busy()).To(BeTrue())
		fu.Advance() // must not recompute or lose the pending result
		res, ok := fu.Harvest()
		Expect(ok).To(BeTrue())
		Expect(res.Value).To(Equal(uint32(7)))
		Expect(fu.Busy()).To(BeFalse())
	})
})
