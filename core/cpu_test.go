package core_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/RickyBoyd/aca-simulator/assembler"
	"github.com/RickyBoyd/aca-simulator/config"
	"github.com/RickyBoyd/aca-simulator/core"
	"github.com/RickyBoyd/aca-simulator/isa"
	"github.com/RickyBoyd/aca-simulator/memory"
)

func TestCore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Core Suite")
}

func mustAssemble(lines ...string) []isa.Instruction {
	prog, err := assembler.AssembleLines(lines)
	Expect(err).NotTo(HaveOccurred())
	return prog
}

func runToCompletion(cfg *config.Config, lines []string, memSize int) *core.CPU {
	prog := mustAssemble(lines...)
	mem := memory.New(memSize)
	cpu := core.New(cfg, prog, mem)
	ok := cpu.RunCycles(100000)
	Expect(ok).To(BeTrue(), "program did not drain within the cycle budget")
	return cpu
}

var _ = Describe("CPU end-to-end scenarios", func() {
	var cfg *config.Config

	BeforeEach(func() {
		cfg = config.Default()
	})

	It("scenario 1: straight-line execution", func() {
		cpu := runToCompletion(cfg, []string{
			"LDC 1 10",
			"LDC 2 20",
			"ADD 3 1 2",
		}, 64)

		regs := cpu.Registers()
		Expect(regs[1]).To(Equal(uint32(10)))
		Expect(regs[2]).To(Equal(uint32(20)))
		Expect(regs[3]).To(Equal(uint32(30)))

		stats := cpu.Stats()
		Expect(stats.Cycles).To(BeNumerically(">", 0))
		Expect(stats.IPC()).To(BeNumerically(">", 0))
	})

	It("scenario 2: a dependent multiply does not block commit order", func() {
		cpu := runToCompletion(cfg, []string{
			"LDC 1 5",
			"LDC 2 7",
			"MULT 3 1 2",
			"ADD 4 3 1",
		}, 64)

		regs := cpu.Registers()
		Expect(regs[3]).To(Equal(uint32(35)))
		Expect(regs[4]).To(Equal(uint32(40)))
	})

	It("scenario 3: a backward branch loop predicts accurately once warm", func() {
		cfg.PredictorWidth = 2
		cpu := runToCompletion(cfg, []string{
			"LDC 1 0",   // 0
			"LDC 2 10",  // 1
			"ADDI 1 1 1", // 2
			"BLT 1 2 2", // 3: loop while r1 < r2
			"ADD 3 1 2", // 4: final
		}, 64)

		regs := cpu.Registers()
		Expect(regs[1]).To(Equal(uint32(10)))

		stats := cpu.Stats()
		Expect(stats.Predictions).To(BeNumerically(">=", 10))
		Expect(float64(stats.Correct) / float64(stats.Predictions)).To(BeNumerically(">=", 0.85))
	})

	It("scenario 4: a load observes a store only after it commits and drains", func() {
		cpu := runToCompletion(cfg, []string{
			"LDC 1 100", // 0: r1 = 100
			"LDC 2 5",   // 1: r2 = 5 (address)
			"SW 2 1",    // 2: mem[5] = 100
			"LW 2 3",    // 3: r3 = mem[5]
		}, 64)

		regs := cpu.Registers()
		Expect(regs[3]).To(Equal(uint32(100)))
		Expect(cpu.Memory().Read(5)).To(Equal(uint32(100)))
	})

	It("scenario 5: a jump leaves the destinations it skips untouched", func() {
		lines := make([]string, 11)
		lines[0] = "J 10"
		for i := 1; i < 10; i++ {
			lines[i] = "LDC 7 999"
		}
		lines[10] = "LDC 1 42"

		cpu := runToCompletion(cfg, lines, 64)

		regs := cpu.Registers()
		Expect(regs[7]).To(Equal(uint32(0)))
		Expect(regs[1]).To(Equal(uint32(42)))
	})

	It("scenario 6: division by zero yields 0 and the simulation proceeds", func() {
		cpu := runToCompletion(cfg, []string{
			"LDC 1 10",
			"LDC 2 0",
			"DIV 3 1 2",
		}, 64)

		regs := cpu.Registers()
		Expect(regs[3]).To(Equal(uint32(0)))
	})

	It("a full ROB blocks decode without deadlocking once commit frees a slot", func() {
		cfg.ROBSize = 2
		cfg.ReservationStations = 2
		cpu := runToCompletion(cfg, []string{
			"LDC 1 1",
			"LDC 2 2",
			"LDC 3 3",
			"LDC 4 4",
			"LDC 5 5",
		}, 64)

		regs := cpu.Registers()
		Expect(regs[1]).To(Equal(uint32(1)))
		Expect(regs[5]).To(Equal(uint32(5)))
	})
})
