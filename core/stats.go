package core

// Stats summarizes a completed or in-progress run, reported by the
// CLI the same way cmd/m2sim/main.go reports timing/pipeline's
// Pipeline.Stats().
type Stats struct {
	Cycles      uint64
	Committed   uint64
	Flushes     uint64
	Predictions uint64
	Correct     uint64
}

// IPC returns instructions committed per cycle, or 0 if no cycles ran.
func (s Stats) IPC() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Committed) / float64(s.Cycles)
}

// BranchAccuracy returns the fraction of resolved branch predictions
// that were correct, or 1 if none resolved.
func (s Stats) BranchAccuracy() float64 {
	if s.Predictions == 0 {
		return 1
	}
	return float64(s.Correct) / float64(s.Predictions)
}
