package core

// stepWriteback harvests any result a functional unit or the memory
// unit latched during the previous cycle's execute, writes it into its
// reorder-buffer entry, and broadcasts it to wake up waiting
// reservation stations and load/store queue entries. It runs before
// execute so a value computed last cycle is visible to this cycle's
// decode stage via early-unwrap.
func (c *CPU) stepWriteback() {
	c.harvestValue(c.aluUnit)
	c.harvestValue(c.mulUnit)
	c.harvestBranch()
	c.harvestMemory()
}

func (c *CPU) harvestValue(fu *FunctionalUnit) {
	res, ok := fu.Harvest()
	if !ok {
		return
	}
	entry := c.rob.Entry(res.RobEntry)
	entry.Kind = commitValue
	entry.Value = res.Value
	c.broadcast(res.RobEntry, res.Value)
}

func (c *CPU) harvestBranch() {
	res, ok := c.branchUnit.Harvest()
	if !ok {
		return
	}
	entry := c.rob.Entry(res.RobEntry)
	if res.Taken {
		entry.Kind = commitBranchTaken
		entry.BranchTarget = res.BranchTarget
	} else {
		entry.Kind = commitBranchNotTaken
	}
	// Branch outcomes carry no register dataflow: nothing else in the
	// pipeline waits on a branch's result, so there is nothing to
	// broadcast.
}

func (c *CPU) harvestMemory() {
	res, ok := c.memUnit.Harvest()
	if !ok {
		return
	}
	entry := c.rob.Entry(res.RobEntry)
	entry.Kind = commitValue
	entry.Value = res.Value
	c.broadcast(res.RobEntry, res.Value)
}

// broadcast resolves every reservation-station and load/store-queue
// operand tagged with robEntry to the given value, over the common
// data bus. Every matching consumer resolves in the same cycle; there
// is no port contention to model.
func (c *CPU) broadcast(robEntry int, value uint32) {
	val := ValueOperand(value)
	for i := range c.rsPool {
		rs := &c.rsPool[i]
		if !rs.Busy {
			continue
		}
		if rs.Op1.Kind == OperandRob && rs.Op1.Rob == robEntry {
			rs.Op1 = val
		}
		if rs.Op2.Kind == OperandRob && rs.Op2.Rob == robEntry {
			rs.Op2 = val
		}
		recomputeReady(rs)
	}
	c.lsq.ResolveOperand(robEntry, value)
}
