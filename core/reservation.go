package core

import "github.com/RickyBoyd/aca-simulator/isa"

// ReservationStation is one entry of the shared reservation-station
// pool that arithmetic, multiply, and branch instructions wait in
// until their operands resolve. Grounded on the structure-per-concern
// idiom of timing/pipeline/hazard.go; the wakeup-on-broadcast
// scheduling itself follows classic Tomasulo as sketched (but not
// copied) in Maemo32-SupraX_Legacy/SupraX.go's bitmap scheduler.
//
// A free station has Busy false and Op1/Op2 set to NoOperand.
type ReservationStation struct {
	Busy  bool
	Ready bool

	Op  isa.Op
	Op1 Operand
	Op2 Operand

	// Address is the branch/jump target, valid only when Op is control
	// flow.
	Address uint32

	RobEntry int
}

// NewReservationStationPool returns size free reservation stations.
func NewReservationStationPool(size int) []ReservationStation {
	return make([]ReservationStation, size)
}

// FindFree returns the index of a free station, or -1 if the pool is
// full.
func FindFree(pool []ReservationStation) int {
	for i := range pool {
		if !pool[i].Busy {
			return i
		}
	}
	return -1
}

// recomputeReady refreshes rs.Ready from its current operands. Called
// after any operand update (issue, or a broadcast resolving a tag).
func recomputeReady(rs *ReservationStation) {
	rs.Ready = rs.Op1.Resolved() && rs.Op2.Resolved()
}

// freeStation returns a reservation station to the free pool.
func freeStation(rs *ReservationStation) {
	*rs = ReservationStation{}
}

// acceptsALU reports whether op is dispatched to the ALU functional unit.
func acceptsALU(op isa.Op) bool {
	return isa.Instruction{Op: op}.IsALU()
}

// acceptsMultiplier reports whether op is dispatched to the multiplier
// functional unit.
func acceptsMultiplier(op isa.Op) bool {
	return isa.Instruction{Op: op}.IsMultiplier()
}

// acceptsBranch reports whether op is dispatched to the branch
// functional unit.
func acceptsBranch(op isa.Op) bool {
	return isa.Instruction{Op: op}.IsControlFlow()
}
