package core

import (
	"fmt"

	"github.com/RickyBoyd/aca-simulator/isa"
)

// stepDecodeDispatch runs decode/rename/issue for up to DecodeWidth
// instructions, then dispatches ready reservation stations into free
// functional units and lets the memory unit pull a new instruction off
// the load/store queue. Grounded on spec.md §4.2's issue-rule table.
func (c *CPU) stepDecodeDispatch() {
	if !c.decodeQueue.clearIfReset() {
		c.decode()
	}
	c.dispatch()
	c.pullMemoryUnit()
}

func (c *CPU) decode() {
	for i := 0; i < c.cfg.DecodeWidth; i++ {
		entry, ok := c.decodeQueue.PeekFront()
		if !ok {
			return
		}
		if entry.Inst.Op == isa.OpHalt {
			// Halt has nothing to execute; it is left in the queue
			// forever so the termination check (decode queue
			// effectively empty) can still observe it.
			return
		}
		if !c.tryIssue(entry.PC, entry.Inst) {
			return
		}
		c.decodeQueue.PopFront()
	}
}

// readOperand resolves an architectural register to either its
// current value or a pending reorder-buffer tag, early-unwrapping a
// tag whose producer has already written back this cycle.
func (c *CPU) readOperand(reg uint8) Operand {
	robIdx, renamed := c.rename.Lookup(reg)
	if !renamed {
		return ValueOperand(c.regs.Read(reg))
	}
	entry := c.rob.Entry(robIdx)
	if entry.Kind == commitValue {
		return ValueOperand(entry.Value)
	}
	return RobOperand(robIdx)
}

// tryIssue attempts to issue one instruction, reserving whatever
// structural resources it needs. It reports false (and reserves
// nothing) if a required resource is unavailable, so decode retries
// the same instruction next cycle without having partially issued it.
func (c *CPU) tryIssue(pc uint32, inst isa.Instruction) bool {
	switch {
	case inst.Op == isa.OpNoop:
		return true

	case inst.IsThreeRegister() || inst.IsRegImm() || inst.Op == isa.OpMov || inst.Op == isa.OpLdc:
		return c.issueALUlike(inst)

	case inst.IsControlFlow():
		return c.issueBranch(pc, inst)

	case inst.Op == isa.OpLw:
		return c.issueLoad(pc, inst)

	case inst.Op == isa.OpSw:
		return c.issueStore(pc, inst)

	default:
		panic(fmt.Sprintf("core: decode has no issue rule for opcode %v", inst.Op))
	}
}

func (c *CPU) issueALUlike(inst isa.Instruction) bool {
	rsIdx := FindFree(c.rsPool)
	if rsIdx < 0 || c.rob.Full() {
		return false
	}

	var op1, op2 Operand
	switch {
	case inst.IsThreeRegister():
		op1 = c.readOperand(inst.Rs)
		op2 = c.readOperand(inst.Rt)
	case inst.IsRegImm():
		op1 = c.readOperand(inst.Rs)
		op2 = ValueOperand(inst.Imm)
	case inst.Op == isa.OpMov:
		op1 = c.readOperand(inst.Rs)
		op2 = NoOperand
	case inst.Op == isa.OpLdc:
		op1 = ValueOperand(inst.Imm)
		op2 = NoOperand
	}

	robIdx := c.rob.Alloc(inst.Rd, true)
	c.rename.Set(inst.Rd, robIdx)

	rs := ReservationStation{Busy: true, Op: inst.Op, Op1: op1, Op2: op2, RobEntry: robIdx}
	recomputeReady(&rs)
	c.rsPool[rsIdx] = rs
	return true
}

func (c *CPU) issueBranch(pc uint32, inst isa.Instruction) bool {
	rsIdx := FindFree(c.rsPool)
	if rsIdx < 0 || c.rob.Full() {
		return false
	}

	var op1, op2 Operand
	switch inst.Op {
	case isa.OpJ:
		op1, op2 = NoOperand, NoOperand
	case isa.OpBeqz:
		op1 = c.readOperand(inst.Rs)
		op2 = ValueOperand(0)
	default: // Beq, Blt, Bgt
		op1 = c.readOperand(inst.Rs)
		op2 = c.readOperand(inst.Rt)
	}

	robIdx := c.rob.Alloc(0, false)
	entry := c.rob.Entry(robIdx)
	entry.BranchPC = pc
	entry.FallthroughPC = pc + 1

	rs := ReservationStation{Busy: true, Op: inst.Op, Op1: op1, Op2: op2, Address: inst.Target, RobEntry: robIdx}
	recomputeReady(&rs)
	c.rsPool[rsIdx] = rs
	return true
}

func (c *CPU) issueLoad(pc uint32, inst isa.Instruction) bool {
	if c.rob.Full() {
		return false
	}
	robIdx := c.rob.Alloc(inst.Rd, true)
	c.rename.Set(inst.Rd, robIdx)

	addr := c.readOperand(inst.Rs)
	c.lsq.Enqueue(LSQEntry{Kind: lsqLoad, PC: pc, RobEntry: robIdx, Addr: addr, Value: NoOperand})
	return true
}

// issueStore does not rename the value register, unlike the
// register-tracking some Tomasulo descriptions use to serialize stores
// against later writers of the same register. The load/store queue is
// already a strict program-order FIFO, so store-store and store-load
// ordering is preserved by queue position alone; renaming the value
// register here would only add a speculative tag that nothing ever
// broadcasts a resolution for (a store's reorder-buffer entry never
// produces a functional-unit result), which would permanently stall
// any later reader of that register issued before this store commits.
func (c *CPU) issueStore(pc uint32, inst isa.Instruction) bool {
	if c.rob.Full() {
		return false
	}
	robIdx := c.rob.Alloc(0, false)
	c.rob.Entry(robIdx).Kind = commitStore

	addr := c.readOperand(inst.Rs)
	value := c.readOperand(inst.Rt)
	c.lsq.Enqueue(LSQEntry{Kind: lsqStore, PC: pc, RobEntry: robIdx, Addr: addr, Value: value})
	return true
}

// dispatch pushes the first ready reservation station each functional
// unit accepts into that unit, in reservation-station index order.
func (c *CPU) dispatch() {
	c.dispatchInto(c.aluUnit, acceptsALU)
	c.dispatchInto(c.mulUnit, acceptsMultiplier)
	c.dispatchInto(c.branchUnit, acceptsBranch)
}

func (c *CPU) dispatchInto(fu *FunctionalUnit, accepts func(isa.Op) bool) {
	if !fu.CanAccept() {
		return
	}
	for i := range c.rsPool {
		rs := &c.rsPool[i]
		if !rs.Busy || !rs.Ready || !accepts(rs.Op) {
			continue
		}
		var v1, v2 uint32
		if rs.Op1.Kind == OperandValue {
			v1 = rs.Op1.Value
		}
		if rs.Op2.Kind == OperandValue {
			v2 = rs.Op2.Value
		}
		fu.Dispatch(rs.Op, v1, v2, rs.Address, rs.RobEntry)
		freeStation(rs)
		return
	}
}

// pullMemoryUnit lets the memory unit pull the load/store queue head,
// if the unit is currently idle and the head is executable.
func (c *CPU) pullMemoryUnit() {
	if c.memUnit.Busy() {
		return
	}
	entry, ok := c.lsq.TryIssueHead()
	if !ok {
		return
	}
	c.memUnit.Start(entry, c.cfg.MemLatency)
}
