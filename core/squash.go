package core

// squash discards all speculative state after a branch misprediction
// resolves at commit, then redirects fetch to the architecturally
// correct next PC. Per spec.md §4.5:
//   - the rename table and every reservation station are cleared,
//   - every functional unit's in-flight and queued state is discarded,
//   - the reorder buffer is emptied,
//   - the load/store queue keeps only its already-committed stores,
//     which must still drain to memory,
//   - fetch and decode are redirected with a one-cycle bubble each.
func (c *CPU) squash(target uint32) {
	c.rename.Reset()
	for i := range c.rsPool {
		freeStation(&c.rsPool[i])
	}
	c.aluUnit.Reset()
	c.mulUnit.Reset()
	c.branchUnit.Reset()
	c.memUnit.Reset()
	c.rob.Reset()
	c.lsq.SquashKeepCommitted()

	c.fetchUnit.Mispredict(target)
	c.decodeQueue.SetReset()
}
