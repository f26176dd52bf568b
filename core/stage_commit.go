package core

// stepCommit retires up to CommitWidth reorder-buffer entries in
// order, stopping at the first entry whose result is not yet produced.
// It reports whether a branch misprediction was discovered and
// squashed, in which case it stops retiring for the rest of this
// cycle even if CommitWidth allowed more.
func (c *CPU) stepCommit() bool {
	for i := 0; i < c.cfg.CommitWidth; i++ {
		if c.rob.Empty() {
			return false
		}
		idx := c.rob.HeadIndex()
		entry := c.rob.Entry(idx)
		if entry.Kind == commitPending {
			return false
		}

		switch entry.Kind {
		case commitValue:
			if entry.HasDest {
				c.regs.Write(entry.Dest, entry.Value)
			}
		case commitStore:
			c.lsq.MarkCommitted(idx)
		case commitBranchTaken, commitBranchNotTaken:
			actualTaken := entry.Kind == commitBranchTaken
			actualNext := entry.FallthroughPC
			if actualTaken {
				actualNext = entry.BranchTarget
			}
			correct := c.predictor.Resolve(entry.BranchPC, actualNext, actualTaken)

			// Branches never carry a destination register, so there is
			// no rename entry to clear here.
			c.rob.Retire()
			c.stats.Committed++

			if !correct {
				c.squash(actualNext)
				return true
			}
			continue
		}

		if entry.HasDest {
			if owner, ok := c.rename.Lookup(entry.Dest); ok && owner == idx {
				c.rename.Clear(entry.Dest)
			}
		}
		c.rob.Retire()
		c.stats.Committed++
	}
	return false
}
