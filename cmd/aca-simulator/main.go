// Package main provides the entry point for aca-simulator, a
// cycle-level out-of-order superscalar pipeline simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RickyBoyd/aca-simulator/assembler"
	"github.com/RickyBoyd/aca-simulator/config"
	"github.com/RickyBoyd/aca-simulator/core"
	"github.com/RickyBoyd/aca-simulator/corelog"
	"github.com/RickyBoyd/aca-simulator/isa"
	"github.com/RickyBoyd/aca-simulator/memory"
)

var (
	configPath = flag.String("config", "", "Path to a microarchitecture configuration JSON file")
	maxCycles  = flag.Uint64("max-cycles", 1_000_000, "Cycle budget before giving up on a hung program")
	verbose    = flag.Bool("v", false, "Print a per-cycle trace")
	dumpRegs   = flag.Bool("regs", false, "Print final register values")
	dumpMem    = flag.Int("mem", 0, "Print the first N words of final memory state")
	predType   = flag.Int("p", -1, "Branch predictor width: 0 = static, N = N-bit saturating (overrides -config)")
)

func main() {
	flag.IntVar(predType, "pred-type", -1, "Same as -p")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: aca-simulator [options] <program.asm>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	programPath := flag.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *predType >= 0 {
		cfg.PredictorWidth = *predType
	}

	program, err := loadProgram(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	level := corelog.LevelSilent
	if *verbose {
		level = corelog.LevelTrace
	}
	logger := corelog.New(corelog.Config{Level: level, Output: os.Stderr})

	mem := memory.New(cfg.MemSize)
	cpu := core.New(cfg, program, mem, core.WithLogger(logger))

	if !cpu.RunCycles(*maxCycles) {
		fmt.Fprintf(os.Stderr, "Simulation did not finish within %d cycles\n", *maxCycles)
		os.Exit(1)
	}

	report(cpu)
}

// loadConfig returns a validated Config: the default configuration, or
// the file at path overlaid on it if path is non-empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadProgram assembles the program at path.
func loadProgram(path string) ([]isa.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assembler.Assemble(f)
}

// report prints the final statistics and, if requested, the final
// architectural state, matching the teacher's runTiming breakdown
// style in cmd/m2sim/main.go.
func report(cpu *core.CPU) {
	stats := cpu.Stats()

	fmt.Printf("Cycles:      %d\n", stats.Cycles)
	fmt.Printf("Committed:   %d\n", stats.Committed)
	fmt.Printf("IPC:         %.3f\n", stats.IPC())
	fmt.Printf("Flushes:     %d\n", stats.Flushes)
	fmt.Printf("Predictions: %d\n", stats.Predictions)
	fmt.Printf("Branch accuracy: %.3f\n", stats.BranchAccuracy())

	if *dumpRegs {
		regs := cpu.Registers()
		fmt.Printf("\nRegisters:\n")
		for i, v := range regs {
			fmt.Printf("  r%-2d = %d\n", i, v)
		}
	}

	if *dumpMem > 0 {
		img := cpu.Memory().Image()
		n := *dumpMem
		if n > len(img) {
			n = len(img)
		}
		fmt.Printf("\nMemory[0:%d]:\n", n)
		for i := 0; i < n; i++ {
			fmt.Printf("  [%d] = %d\n", i, img[i])
		}
	}
}
