package core

import "github.com/RickyBoyd/aca-simulator/isa"

// btbEntry is one branch target buffer slot: the predicted next PC and
// whether that prediction was a taken branch.
type btbEntry struct {
	valid           bool
	predictedNextPC uint32
	predictedTaken  bool
}

// BranchPredictorStats tracks prediction accuracy.
type BranchPredictorStats struct {
	Predictions uint64
	Correct     uint64
}

// Accuracy returns the fraction of resolved predictions that matched
// the actual outcome, or 1 if none have resolved yet.
func (s BranchPredictorStats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 1
	}
	return float64(s.Correct) / float64(s.Predictions)
}

// BranchPredictor is a branch history table of P-bit saturating
// counters paired with a branch target buffer, both sized 2^m and
// indexed by the low m bits of the branch PC. Grounded almost 1:1 on
// timing/pipeline/branch_predictor.go, adapted to an instruction-index
// PC (no byte-address shift) and a configurable counter width matching
// spec.md §4.6 (P=0 static always-fall-through, P=1 one-bit, P>=2
// P-bit saturating).
type BranchPredictor struct {
	width int // P
	mask  uint32
	max   uint8 // (1<<P)-1

	counters []uint8
	btb      []btbEntry

	stats BranchPredictorStats
}

// NewBranchPredictor returns a predictor with a 2^tableBits-entry table
// and width-bit saturating counters. width 0 selects the static
// always-fall-through predictor.
func NewBranchPredictor(width, tableBits int) *BranchPredictor {
	size := 1 << uint(tableBits)
	bp := &BranchPredictor{
		width: width,
		mask:  uint32(size - 1),
		btb:   make([]btbEntry, size),
	}
	if width > 0 {
		bp.max = uint8((1 << uint(width)) - 1)
		bp.counters = make([]uint8, size)
		// Initialize every counter to "weakly taken" rather than zero,
		// matching timing/pipeline/branch_predictor.go's bias: branches
		// this simulator predicts are disproportionately backward loop
		// edges, which are taken far more often than not.
		initial := (bp.max + 1) / 2
		for i := range bp.counters {
			bp.counters[i] = initial
		}
	}
	return bp
}

func (bp *BranchPredictor) index(pc uint32) uint32 {
	return pc & bp.mask
}

// Predict computes the next PC to fetch after inst, currently at pc,
// and records the prediction in the BTB so Resolve can later score it.
// Counters are never mutated here; they update only when Resolve
// learns the actual outcome at commit.
func (bp *BranchPredictor) Predict(inst isa.Instruction, pc uint32) uint32 {
	idx := bp.index(pc)
	fallthroughPC := pc + 1

	var nextPC uint32
	var taken bool

	switch {
	case inst.IsUnconditionalJump():
		nextPC, taken = inst.Target, true
	case inst.IsBranch():
		if bp.width == 0 {
			nextPC, taken = fallthroughPC, false
		} else if bp.counters[idx] > bp.max/2 {
			nextPC, taken = inst.Target, true
		} else {
			nextPC, taken = fallthroughPC, false
		}
	default:
		nextPC, taken = fallthroughPC, false
	}

	bp.btb[idx] = btbEntry{valid: true, predictedNextPC: nextPC, predictedTaken: taken}
	return nextPC
}

// Resolve scores a predictor outcome once a branch commits and updates
// the saturating counter from the actual outcome: taken saturates up,
// not-taken saturates down. This is equivalent to spec.md §4.6's
// match/mismatch phrasing (match+predicted-taken and
// mismatch+predicted-not-taken both mean the branch was actually
// taken, and vice versa), expressed directly in terms of the outcome
// rather than the prediction.
func (bp *BranchPredictor) Resolve(branchPC, actualNextPC uint32, actualTaken bool) bool {
	idx := bp.index(branchPC)
	entry := bp.btb[idx]
	correct := entry.valid && entry.predictedNextPC == actualNextPC

	bp.stats.Predictions++
	if correct {
		bp.stats.Correct++
	}

	if bp.width > 0 {
		if actualTaken {
			if bp.counters[idx] < bp.max {
				bp.counters[idx]++
			}
		} else {
			if bp.counters[idx] > 0 {
				bp.counters[idx]--
			}
		}
	}

	return correct
}

// Stats returns the predictor's accumulated prediction accuracy.
func (bp *BranchPredictor) Stats() BranchPredictorStats {
	return bp.stats
}
