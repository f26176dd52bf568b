package core

// RegFile is the architectural register file: 32 general-purpose
// 32-bit registers, written only at commit. Grounded on emu/regfile.go,
// narrowed from that file's variable-width bank to the fixed 32x32-bit
// layout spec.md §3 describes.
type RegFile struct {
	regs [32]uint32
}

// NewRegFile returns a register file with every register zeroed.
func NewRegFile() *RegFile {
	return &RegFile{}
}

// Read returns the architectural value of reg. Registers are always in
// range 0-31; the assembler rejects anything else at assemble time.
func (r *RegFile) Read(reg uint8) uint32 {
	return r.regs[reg]
}

// Write sets the architectural value of reg.
func (r *RegFile) Write(reg uint8, v uint32) {
	r.regs[reg] = v
}

// Snapshot returns a copy of the current register contents, used for
// final-state reporting and tests.
func (r *RegFile) Snapshot() [32]uint32 {
	return r.regs
}
