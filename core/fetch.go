package core

import "github.com/RickyBoyd/aca-simulator/isa"

// Fetch is the fetch stage: a program counter walking a fixed
// instruction slice, redirected by Mispredict on a squash. Grounded on
// spec.md §4.1; the reset-flag bubble mirrors DecodeQueue's.
type Fetch struct {
	pc       uint32
	program  []isa.Instruction
	reset    bool
	haltSent bool
}

// NewFetch returns a Fetch starting at PC 0 over program.
func NewFetch(program []isa.Instruction) *Fetch {
	return &Fetch{program: program}
}

// PC returns the current program counter.
func (f *Fetch) PC() uint32 {
	return f.pc
}

// Finished reports whether the PC has run off the end of the program.
func (f *Fetch) Finished() bool {
	return int(f.pc) >= len(f.program)
}

// Mispredict redirects fetch to pc and marks the next Step call as a
// one-cycle bubble, so the redirect is visible starting the cycle
// after the one that discovered the misprediction.
func (f *Fetch) Mispredict(pc uint32) {
	f.pc = pc
	f.reset = true
	f.haltSent = false
}

// Step fetches up to width instructions into dq, consulting predictor
// for each one's successor PC. If pc has run past the end of the
// program, it enqueues a single Halt marker (once only) and stops.
func (f *Fetch) Step(width int, predictor *BranchPredictor, dq *DecodeQueue) {
	if f.reset {
		f.reset = false
		return
	}

	for i := 0; i < width; i++ {
		if f.Finished() {
			if !f.haltSent {
				dq.Push(f.pc, isa.Instruction{Op: isa.OpHalt})
				f.haltSent = true
			}
			break
		}

		inst := f.program[f.pc]
		pc := f.pc
		dq.Push(pc, inst)
		f.pc = predictor.Predict(inst, pc)
	}
}
