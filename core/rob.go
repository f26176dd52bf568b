package core

// commitKind discriminates what a reorder-buffer entry produces once
// it is ready to commit. A dedicated kind (rather than overloading the
// destination-register field to also mean "branch target", as some
// source variants of this design do) keeps Dest meaningful only for
// entries that actually write the register file.
type commitKind uint8

const (
	// commitPending means the entry's result has not been produced yet;
	// commit must stall on it.
	commitPending commitKind = iota
	// commitValue means Value holds the result to write to Dest.
	commitValue
	// commitBranchTaken means the branch resolved taken; BranchTarget is
	// the architectural next PC.
	commitBranchTaken
	// commitBranchNotTaken means the branch resolved not taken;
	// FallthroughPC is the architectural next PC.
	commitBranchNotTaken
	// commitStore means the entry is a store; its matching load/store
	// queue entry is marked committed and left to drain.
	commitStore
)

// ROBEntry is one reorder-buffer slot. Dest/HasDest are meaningful only
// for commitValue entries; branches never have a destination register
// and carry their outcome in BranchTarget/FallthroughPC instead.
type ROBEntry struct {
	Valid bool

	HasDest bool
	Dest    uint8

	Kind  commitKind
	Value uint32

	BranchPC      uint32
	BranchTarget  uint32
	FallthroughPC uint32
}

// ReorderBuffer is a fixed-size circular array of ROBEntry. Head is the
// oldest in-flight entry, the next to commit; new entries are allocated
// at (head+count)%len(entries). Physical slot indices are reused once
// an entry retires, exactly as a circular buffer implies.
type ReorderBuffer struct {
	entries []ROBEntry
	head    int
	count   int
}

// NewReorderBuffer returns an empty reorder buffer with the given
// number of entries.
func NewReorderBuffer(size int) *ReorderBuffer {
	return &ReorderBuffer{entries: make([]ROBEntry, size)}
}

// Full reports whether every entry is occupied.
func (r *ReorderBuffer) Full() bool {
	return r.count == len(r.entries)
}

// Empty reports whether no entry is occupied.
func (r *ReorderBuffer) Empty() bool {
	return r.count == 0
}

// Len returns the number of occupied entries.
func (r *ReorderBuffer) Len() int {
	return r.count
}

// Alloc reserves the next entry in program order for an instruction
// with the given destination register (hasDest false for instructions
// that do not write the register file, i.e. branches and stores). The
// caller must check !Full() first; Alloc does not itself reject a full
// buffer.
func (r *ReorderBuffer) Alloc(dest uint8, hasDest bool) int {
	idx := (r.head + r.count) % len(r.entries)
	r.entries[idx] = ROBEntry{Valid: true, HasDest: hasDest, Dest: dest, Kind: commitPending}
	r.count++
	return idx
}

// HeadIndex returns the physical slot of the oldest in-flight entry.
// Valid only when !Empty().
func (r *ReorderBuffer) HeadIndex() int {
	return r.head
}

// Entry returns a pointer to the entry at physical slot idx, for
// reading or updating in place.
func (r *ReorderBuffer) Entry(idx int) *ROBEntry {
	return &r.entries[idx]
}

// Retire advances past the oldest entry, freeing its slot for reuse.
func (r *ReorderBuffer) Retire() {
	r.entries[r.head] = ROBEntry{}
	r.head = (r.head + 1) % len(r.entries)
	r.count--
}

// Reset empties the buffer, discarding every in-flight entry. Used
// when a misprediction squashes speculative state.
func (r *ReorderBuffer) Reset() {
	for i := range r.entries {
		r.entries[i] = ROBEntry{}
	}
	r.head = 0
	r.count = 0
}
