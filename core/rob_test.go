package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/RickyBoyd/aca-simulator/core"
)

var _ = Describe("ReorderBuffer", func() {
	It("allocates in program order and reuses slots after retire", func() {
		rob := core.NewReorderBuffer(2)
		Expect(rob.Empty()).To(BeTrue())

		a := rob.Alloc(1, true)
		b := rob.Alloc(2, true)
		Expect(rob.Full()).To(BeTrue())

		Expect(rob.HeadIndex()).To(Equal(a))
		rob.Retire()
		Expect(rob.Full()).To(BeFalse())
		Expect(rob.HeadIndex()).To(Equal(b))

		c := rob.Alloc(3, true)
		Expect(c).To(Equal(a), "the freed slot should be reused")
	})

	It("empties completely on Reset", func() {
		rob := core.NewReorderBuffer(4)
		rob.Alloc(1, true)
		rob.Alloc(2, true)
		rob.Reset()
		Expect(rob.Empty()).To(BeTrue())
		Expect(rob.Full()).To(BeFalse())
	})
})
