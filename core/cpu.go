package core

import (
	"github.com/RickyBoyd/aca-simulator/config"
	"github.com/RickyBoyd/aca-simulator/corelog"
	"github.com/RickyBoyd/aca-simulator/isa"
	"github.com/RickyBoyd/aca-simulator/memory"
)

// CPU is the top-level out-of-order core: fetch, decode/rename/issue,
// execute, writeback, and commit, wired together by Cycle in the
// reverse stage order spec.md §5 requires. Grounded on
// timing/pipeline.Pipeline, whose Tick method this mirrors, and built
// with the teacher's functional-option constructor pattern.
type CPU struct {
	cfg *config.Config
	log *corelog.Logger

	regs   *RegFile
	rename *RenameTable
	rob    *ReorderBuffer

	rsPool []ReservationStation

	aluUnit    *FunctionalUnit
	mulUnit    *FunctionalUnit
	branchUnit *FunctionalUnit

	lsq     *LSQ
	memUnit *MemoryUnit
	mem     *memory.Memory

	predictor   *BranchPredictor
	fetchUnit   *Fetch
	decodeQueue *DecodeQueue

	stats Stats
}

// Option configures a CPU at construction, following the teacher's
// PipelineOption/EmulatorOption functional-option pattern.
type Option func(*CPU)

// WithLogger attaches a logger for per-cycle tracing.
func WithLogger(l *corelog.Logger) Option {
	return func(c *CPU) { c.log = l }
}

// WithEntryPoint sets the initial program counter, for tests that want
// to start mid-program.
func WithEntryPoint(pc uint32) Option {
	return func(c *CPU) { c.fetchUnit.Mispredict(pc) }
}

// New builds a CPU configured by cfg, executing program against mem.
func New(cfg *config.Config, program []isa.Instruction, mem *memory.Memory, opts ...Option) *CPU {
	c := &CPU{
		cfg:         cfg,
		regs:        NewRegFile(),
		rename:      NewRenameTable(),
		rob:         NewReorderBuffer(cfg.ROBSize),
		rsPool:      NewReservationStationPool(cfg.ReservationStations),
		aluUnit:     NewFunctionalUnit(FUALU, aluLatency(cfg.ALULatency), computeALU),
		mulUnit:     NewFunctionalUnit(FUMultiplier, multiplierLatency(cfg.MultiplyLatency, cfg.DivideLatency), computeMultiplier),
		branchUnit:  NewFunctionalUnit(FUBranch, branchLatency(cfg.BranchLatency), computeBranch),
		lsq:         NewLSQ(),
		memUnit:     NewMemoryUnit(),
		mem:         mem,
		predictor:   NewBranchPredictor(cfg.PredictorWidth, cfg.PredictorTableBits),
		fetchUnit:   NewFetch(program),
		decodeQueue: NewDecodeQueue(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cycle runs one cycle of the pipeline: commit, writeback, execute,
// decode/dispatch, fetch, in that order. The reverse ordering relative
// to the conventional fetch-first description ensures a result
// produced by execute is visible to writeback (and hence to decode's
// early-unwrap) the very next cycle, and that a squash discovered in
// commit has already cleared speculative state before decode and fetch
// run for the same cycle, so they correctly see nothing to do.
func (c *CPU) Cycle() {
	if c.Finished() {
		return
	}
	c.stats.Cycles++

	if c.stepCommit() {
		c.stats.Flushes++
	}
	c.stepWriteback()
	c.stepExecute()
	c.stepDecodeDispatch()
	c.stepFetch()

	ps := c.predictor.Stats()
	c.stats.Predictions = ps.Predictions
	c.stats.Correct = ps.Correct

	if c.log != nil {
		c.log.Tracef("cycle %d: committed=%d rob=%d lsq=%d pc=%d", c.stats.Cycles, c.stats.Committed, c.rob.Len(), c.lsq.Len(), c.fetchUnit.PC())
	}
}

// Run executes cycles until the pipeline drains, i.e. Finished()
// becomes true.
func (c *CPU) Run() {
	for !c.Finished() {
		c.Cycle()
	}
}

// RunCycles executes up to n cycles and reports whether the pipeline
// finished within that budget, for tests that want a hang-safety limit.
func (c *CPU) RunCycles(n uint64) bool {
	for i := uint64(0); i < n; i++ {
		if c.Finished() {
			return true
		}
		c.Cycle()
	}
	return c.Finished()
}

// Finished reports whether the pipeline has drained completely: fetch
// exhausted, nothing left to decode, every functional unit and the
// memory unit idle, and both the reorder buffer and load/store queue
// empty.
func (c *CPU) Finished() bool {
	return c.fetchUnit.Finished() &&
		c.decodeQueue.EffectivelyEmpty() &&
		!c.aluUnit.Busy() &&
		!c.mulUnit.Busy() &&
		!c.branchUnit.Busy() &&
		!c.memUnit.Busy() &&
		c.rob.Empty() &&
		c.lsq.Empty()
}

// Stats returns the accumulated run statistics.
func (c *CPU) Stats() Stats {
	return c.stats
}

// Registers returns a snapshot of the architectural register file.
func (c *CPU) Registers() [32]uint32 {
	return c.regs.Snapshot()
}

// Memory returns the data memory the CPU executes against.
func (c *CPU) Memory() *memory.Memory {
	return c.mem
}
