package core

// stepFetch runs the fetch stage, the last to run each cycle so any
// redirect issued by commit this same cycle lands as a full one-cycle
// bubble before the new PC is actually fetched from.
func (c *CPU) stepFetch() {
	c.fetchUnit.Step(c.cfg.FetchWidth, c.predictor, c.decodeQueue)
}
