// Package memory provides the flat word-addressed data memory shared by
// the load/store queue's memory unit and the final-state report.
//
// The core's ISA operates on 32-bit words; addresses name word slots,
// not bytes (spec.md's memory model has no byte-level sub-addressing).
package memory

import "fmt"

// Memory is a fixed-size array of 32-bit words.
type Memory struct {
	words []uint32
}

// New creates a Memory with the given number of 32-bit word slots.
func New(size int) *Memory {
	return &Memory{words: make([]uint32, size)}
}

// Size returns the number of addressable words.
func (m *Memory) Size() int {
	return len(m.words)
}

// Read returns the word at addr. Out-of-range addresses read as zero,
// matching the ALU/load-store unit's treatment of a programmer error as
// something that must not crash the cycle loop mid-flight; assemblers
// and loaders are responsible for keeping programs in bounds.
func (m *Memory) Read(addr uint32) uint32 {
	if int(addr) >= len(m.words) {
		return 0
	}
	return m.words[addr]
}

// Write stores value at addr. Out-of-range addresses are silently
// ignored, mirroring Read's bounds behavior.
func (m *Memory) Write(addr uint32, value uint32) {
	if int(addr) >= len(m.words) {
		return
	}
	m.words[addr] = value
}

// Seed initializes memory word i to fn(i) for every slot. Program
// loading and initial memory seeding are external collaborators (see
// spec.md §1); Seed is the narrow hook they use.
func (m *Memory) Seed(fn func(i int) uint32) {
	for i := range m.words {
		m.words[i] = fn(i)
	}
}

// Image returns a copy of the full memory contents, for final-state
// reporting.
func (m *Memory) Image() []uint32 {
	out := make([]uint32, len(m.words))
	copy(out, m.words)
	return out
}

// String describes the memory by its size in words, for
// debugging/tracing; it does not render the contents.
func (m *Memory) String() string {
	return fmt.Sprintf("Memory(%d words)", len(m.words))
}
