package core

import "github.com/RickyBoyd/aca-simulator/isa"

// FUKind names a functional unit's instruction class.
type FUKind uint8

const (
	FUALU FUKind = iota
	FUMultiplier
	FUBranch
)

// FUResult is the outcome a functional unit publishes once its
// cycle counter reaches zero.
type FUResult struct {
	RobEntry int

	// Value is the computed result, meaningful for ALU/multiplier
	// results and for loads.
	Value uint32

	// Taken/BranchTarget are meaningful only for branch-unit results.
	Taken        bool
	BranchTarget uint32
}

// ComputeFunc computes a functional unit's result from its operation
// and resolved operands. address is the branch/jump target and is
// ignored by the ALU and multiplier compute functions.
type ComputeFunc func(op isa.Op, v1, v2, address uint32) FUResult

// LatencyFunc returns the number of cycles op occupies a functional
// unit before producing a result.
type LatencyFunc func(op isa.Op) int

type funcUnitSlot struct {
	valid      bool
	op         isa.Op
	v1, v2     uint32
	address    uint32
	robEntry   int
	cyclesLeft int
}

// FunctionalUnit is a single typed execution unit with one in-flight
// operation (current) and one queued operation (next), giving it
// one-deep pipelining: it can accept a new dispatch while its current
// operation still has one cycle left to run. Grounded on the
// structure-per-concern idiom of timing/pipeline/stages.go, generalized
// from that file's fixed ALU/memory stages to a typed, latency-aware
// unit.
//
// Invariant: a unit with cyclesLeft > 0 never holds a result; a unit
// with cyclesLeft == 0 and a held result is stalled until Harvest is
// called.
type FunctionalUnit struct {
	kind    FUKind
	latency LatencyFunc
	compute ComputeFunc

	current funcUnitSlot
	next    funcUnitSlot
	result  *FUResult
}

// NewFunctionalUnit returns an idle functional unit of the given kind.
func NewFunctionalUnit(kind FUKind, latency LatencyFunc, compute ComputeFunc) *FunctionalUnit {
	return &FunctionalUnit{kind: kind, latency: latency, compute: compute}
}

// CanAccept reports whether the unit can take one more dispatch this
// cycle: its next slot must be empty, and its current operation (if
// any) must have one cycle or fewer left to run.
func (u *FunctionalUnit) CanAccept() bool {
	if u.next.valid {
		return false
	}
	return !u.current.valid || u.current.cyclesLeft <= 1
}

// Dispatch hands the unit a new operation. If current is idle it
// starts immediately; otherwise it is queued in next and promoted once
// current frees up.
func (u *FunctionalUnit) Dispatch(op isa.Op, v1, v2, address uint32, robEntry int) {
	slot := funcUnitSlot{valid: true, op: op, v1: v1, v2: v2, address: address, robEntry: robEntry, cyclesLeft: u.latency(op)}
	if !u.current.valid {
		u.current = slot
		return
	}
	u.next = slot
}

// Advance runs one execution cycle: promotes a queued next into an
// empty current, then ticks current's counter down, computing and
// latching a result the cycle it reaches zero.
func (u *FunctionalUnit) Advance() {
	if !u.current.valid && u.next.valid {
		u.current = u.next
		u.next = funcUnitSlot{}
	}
	if !u.current.valid || u.result != nil {
		return
	}
	if u.current.cyclesLeft > 0 {
		u.current.cyclesLeft--
	}
	if u.current.cyclesLeft == 0 {
		res := u.compute(u.current.op, u.current.v1, u.current.v2, u.current.address)
		res.RobEntry = u.current.robEntry
		u.result = &res
	}
}

// Harvest returns and clears a completed result, freeing the unit's
// current slot. Called from the writeback stage, which runs before
// Advance in the cycle ordering, so a result computed on one cycle is
// harvested before Advance ever promotes next into current.
func (u *FunctionalUnit) Harvest() (FUResult, bool) {
	if u.result == nil {
		return FUResult{}, false
	}
	res := *u.result
	u.result = nil
	u.current = funcUnitSlot{}
	return res, true
}

// Busy reports whether the unit holds any in-flight or queued
// operation, used by the termination check.
func (u *FunctionalUnit) Busy() bool {
	return u.current.valid || u.next.valid || u.result != nil
}

// Reset discards all in-flight and queued state, used on squash.
func (u *FunctionalUnit) Reset() {
	u.current = funcUnitSlot{}
	u.next = funcUnitSlot{}
	u.result = nil
}
