package core

// RenameTable maps an architectural register to the reorder-buffer
// entry that will produce its next value, if any is currently
// in flight. A register with no in-flight producer reads straight
// from the register file.
type RenameTable struct {
	mapped [32]bool
	rob    [32]int
}

// NewRenameTable returns a table with every register unmapped.
func NewRenameTable() *RenameTable {
	return &RenameTable{}
}

// Lookup reports the reorder-buffer index currently renaming reg, if any.
func (rt *RenameTable) Lookup(reg uint8) (int, bool) {
	if !rt.mapped[reg] {
		return 0, false
	}
	return rt.rob[reg], true
}

// Set records that reg's next value will come from rob entry idx.
func (rt *RenameTable) Set(reg uint8, idx int) {
	rt.mapped[reg] = true
	rt.rob[reg] = idx
}

// Clear removes any renaming of reg, so future lookups fall through to
// the register file.
func (rt *RenameTable) Clear(reg uint8) {
	rt.mapped[reg] = false
}

// Reset clears every renaming, used when the pipeline is squashed.
func (rt *RenameTable) Reset() {
	*rt = RenameTable{}
}
