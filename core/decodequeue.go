package core

import "github.com/RickyBoyd/aca-simulator/isa"

// decodeEntry is one fetched-but-not-yet-decoded instruction.
type decodeEntry struct {
	PC   uint32
	Inst isa.Instruction
}

// DecodeQueue is the FIFO between fetch and decode.
type DecodeQueue struct {
	entries []decodeEntry
	reset   bool
}

// NewDecodeQueue returns an empty decode queue.
func NewDecodeQueue() *DecodeQueue {
	return &DecodeQueue{}
}

// Push appends a fetched instruction at the tail.
func (q *DecodeQueue) Push(pc uint32, inst isa.Instruction) {
	q.entries = append(q.entries, decodeEntry{PC: pc, Inst: inst})
}

// PeekFront returns the oldest entry without removing it.
func (q *DecodeQueue) PeekFront() (decodeEntry, bool) {
	if len(q.entries) == 0 {
		return decodeEntry{}, false
	}
	return q.entries[0], true
}

// PopFront removes the oldest entry.
func (q *DecodeQueue) PopFront() {
	if len(q.entries) == 0 {
		return
	}
	q.entries = q.entries[1:]
}

// Len returns the number of queued entries.
func (q *DecodeQueue) Len() int {
	return len(q.entries)
}

// EffectivelyEmpty reports whether the queue has nothing left to
// decode: either it is literally empty, or the only thing left is the
// terminal Halt marker, which decode leaves in place forever once
// reached (spec.md §4.2) rather than popping.
func (q *DecodeQueue) EffectivelyEmpty() bool {
	if len(q.entries) == 0 {
		return true
	}
	return len(q.entries) == 1 && q.entries[0].Inst.Op == isa.OpHalt
}

// SetReset marks the queue to be cleared with a one-cycle bubble the
// next time Clear-on-reset runs, mirroring Fetch's own reset flag.
func (q *DecodeQueue) SetReset() {
	q.reset = true
}

// clearIfReset clears the queue and consumes the pending reset flag,
// reporting whether it did so. Called by the decode stage.
func (q *DecodeQueue) clearIfReset() bool {
	if !q.reset {
		return false
	}
	q.entries = q.entries[:0]
	q.reset = false
	return true
}
