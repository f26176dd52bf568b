package core

// stepExecute advances every functional unit and the memory unit by
// one cycle.
func (c *CPU) stepExecute() {
	c.aluUnit.Advance()
	c.mulUnit.Advance()
	c.branchUnit.Advance()
	c.memUnit.Advance(c.mem)
}
