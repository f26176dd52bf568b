package core

import "github.com/RickyBoyd/aca-simulator/memory"

type lsqKind uint8

const (
	lsqLoad lsqKind = iota
	lsqStore
)

// LSQEntry is one in-flight memory instruction, kept in program order.
// Addr and Value start as Rob-tagged operands and resolve to Value
// operands as their producers broadcast.
type LSQEntry struct {
	Kind      lsqKind
	PC        uint32
	RobEntry  int
	Addr      Operand
	Value     Operand
	Committed bool
}

func (e LSQEntry) executable() bool {
	if !e.Addr.Resolved() {
		return false
	}
	if e.Kind == lsqLoad {
		return true
	}
	return e.Committed && e.Value.Resolved()
}

// LSQ is the load/store queue: a FIFO preserving program order between
// memory instructions. No address disambiguation is performed: only the
// head entry is ever issued (TryIssueHead), so every load waits behind
// all older loads and stores, including an older store that has not yet
// committed, whatever the addresses involved.
type LSQ struct {
	entries []LSQEntry
}

// NewLSQ returns an empty load/store queue.
func NewLSQ() *LSQ {
	return &LSQ{}
}

// Enqueue appends a new memory instruction at the tail, in program order.
func (q *LSQ) Enqueue(e LSQEntry) {
	q.entries = append(q.entries, e)
}

// Empty reports whether the queue holds no entries.
func (q *LSQ) Empty() bool {
	return len(q.entries) == 0
}

// Len returns the number of entries in the queue.
func (q *LSQ) Len() int {
	return len(q.entries)
}

// TryIssueHead removes and returns the head entry if it is executable:
// a load with a resolved address, or a committed store with a resolved
// address and value. The memory unit is the only consumer, and it only
// ever looks at the head, preserving memory program order.
func (q *LSQ) TryIssueHead() (LSQEntry, bool) {
	if len(q.entries) == 0 {
		return LSQEntry{}, false
	}
	head := q.entries[0]
	if !head.executable() {
		return LSQEntry{}, false
	}
	q.entries = q.entries[1:]
	return head, true
}

// ResolveOperand updates any entry whose address or value operand is
// tagged with robEntry, called when that reorder-buffer entry
// broadcasts its result.
func (q *LSQ) ResolveOperand(robEntry int, value uint32) {
	for i := range q.entries {
		e := &q.entries[i]
		if e.Addr.Kind == OperandRob && e.Addr.Rob == robEntry {
			e.Addr = ValueOperand(value)
		}
		if e.Value.Kind == OperandRob && e.Value.Rob == robEntry {
			e.Value = ValueOperand(value)
		}
	}
}

// MarkCommitted marks the entry matching robEntry as committed,
// allowing a store to finally execute.
func (q *LSQ) MarkCommitted(robEntry int) {
	for i := range q.entries {
		if q.entries[i].RobEntry == robEntry {
			q.entries[i].Committed = true
			return
		}
	}
}

// SquashKeepCommitted discards every speculative (uncommitted) entry,
// keeping committed stores so they still drain to memory in order.
func (q *LSQ) SquashKeepCommitted() {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.Committed {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}

// MemoryUnit holds at most one in-flight memory operation. A store
// writes memory and releases the instant its latency elapses; a load
// instead latches its result and stalls until Harvest is called,
// mirroring the functional unit result-register protocol.
type MemoryUnit struct {
	busy       bool
	op         lsqKind
	addr       uint32
	value      uint32
	robEntry   int
	cyclesLeft int

	resultPending bool
	loadedValue   uint32
}

// NewMemoryUnit returns an idle memory unit.
func NewMemoryUnit() *MemoryUnit {
	return &MemoryUnit{}
}

// Busy reports whether the unit holds an in-flight or unharvested operation.
func (u *MemoryUnit) Busy() bool {
	return u.busy
}

// Start installs e into the unit with the given latency.
func (u *MemoryUnit) Start(e LSQEntry, latency int) {
	u.busy = true
	u.op = e.Kind
	u.robEntry = e.RobEntry
	u.cyclesLeft = latency
	u.resultPending = false
	if e.Addr.Kind == OperandValue {
		u.addr = e.Addr.Value
	}
	if e.Kind == lsqStore && e.Value.Kind == OperandValue {
		u.value = e.Value.Value
	}
}

// Advance runs one cycle of the in-flight operation. A store writes
// memory and releases the unit immediately; a load latches its value
// for Harvest.
func (u *MemoryUnit) Advance(mem *memory.Memory) {
	if !u.busy || u.resultPending {
		return
	}
	if u.cyclesLeft > 0 {
		u.cyclesLeft--
	}
	if u.cyclesLeft != 0 {
		return
	}
	switch u.op {
	case lsqStore:
		mem.Write(u.addr, u.value)
		u.busy = false
	case lsqLoad:
		u.loadedValue = mem.Read(u.addr)
		u.resultPending = true
	}
}

// Harvest returns and clears a completed load's result. Stores never
// produce a harvestable result: they already release in Advance.
func (u *MemoryUnit) Harvest() (FUResult, bool) {
	if !u.resultPending {
		return FUResult{}, false
	}
	res := FUResult{RobEntry: u.robEntry, Value: u.loadedValue}
	u.resultPending = false
	u.busy = false
	return res, true
}

// Reset discards in-flight state on squash, with one exception: a
// store is only ever pulled from the LSQ once committed (see
// LSQEntry.executable), so a store found here has already retired and
// must be left to keep draining. Discarding it would silently lose an
// architecturally-committed memory write. Any in-flight load, being
// necessarily speculative, is safe to drop: its reorder-buffer entry
// is about to be wiped anyway, and harvesting it later would write
// into whatever unrelated entry is reallocated at that same physical
// slot.
func (u *MemoryUnit) Reset() {
	if u.busy && u.op == lsqStore {
		return
	}
	*u = MemoryUnit{}
}
