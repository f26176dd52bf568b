package core_test

import (
	"github.com/RickyBoyd/aca-simulator/core"
	"github.com/RickyBoyd/aca-simulator/isa"
)

// newTestALU returns a functional unit computing plain addition with a
// fixed latency, used to exercise FunctionalUnit's pipelining behavior
// in isolation from the rest of the CPU.
func newTestALU(latency int) *core.FunctionalUnit {
	return core.NewFunctionalUnit(
		core.FUALU,
		func(isa.Op) int { return latency },
		func(op isa.Op, v1, v2, _ uint32) core.FUResult {
			return core.FUResult{Value: v1 + v2}
		},
	)
}
