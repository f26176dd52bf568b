// Package assembler turns assembly text into encoded instructions.
//
// Assembly text parsing is deliberately out of scope of the pipeline
// core (spec.md §1): this package is the thin external collaborator the
// core depends on only through its output type, []isa.Instruction.
// Grounded on original_source/src/main.rs's assemble/three_args/two_args
// helpers, generalized to spec.md §6's full mnemonic table and reworked
// to return an error instead of panicking, matching loader.Load's
// (*Program, error) boundary style.
package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RickyBoyd/aca-simulator/isa"
)

// mnemonicArity is the number of whitespace-separated operand tokens
// each mnemonic expects, used only to produce a precise arity error.
var mnemonicArity = map[string]int{
	"NOOP": 0,
	"ADD":  3, "SUB": 3, "MULT": 3, "DIV": 3, "MOD": 3, "AND": 3, "OR": 3, "XOR": 3,
	"ADDI": 3, "SUBI": 3, "ANDI": 3, "SL": 3, "SR": 3,
	"MOV": 2, "LDC": 2,
	"LW": 2, "SW": 2,
	"J":    1,
	"BEQ":  3, "BLT": 3, "BGT": 3,
	"BEQZ": 2,
}

// Assemble parses one instruction per non-blank, non-comment line of
// source and returns the encoded program in order. A line is a comment
// if, after trimming whitespace, it starts with "#" or ";" or is empty.
//
// Malformed input (unknown mnemonic, wrong operand count, or an operand
// that does not parse as an unsigned 32-bit integer) is a fatal,
// load-time error, never a panic: spec.md §7 classifies "malformed
// program" as fatal at load time, a boundary condition, not a
// programmer-invariant breach.
func Assemble(src io.Reader) ([]isa.Instruction, error) {
	var program []isa.Instruction

	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		inst, err := assembleLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		program = append(program, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading assembly: %w", err)
	}

	return program, nil
}

// AssembleLines is a convenience wrapper for callers that already have
// the source split into lines (e.g. a REPL or an in-memory test fixture).
func AssembleLines(lines []string) ([]isa.Instruction, error) {
	return Assemble(strings.NewReader(strings.Join(lines, "\n")))
}

func assembleLine(line string) (isa.Instruction, error) {
	fields := strings.Fields(line)
	mnemonic := strings.ToUpper(fields[0])
	args := fields[1:]

	arity, known := mnemonicArity[mnemonic]
	if !known {
		return isa.Instruction{}, fmt.Errorf("unknown mnemonic %q", fields[0])
	}
	if len(args) != arity {
		return isa.Instruction{}, fmt.Errorf("%s expects %d operand(s), got %d", mnemonic, arity, len(args))
	}

	switch mnemonic {
	case "NOOP":
		return isa.Instruction{Op: isa.OpNoop}, nil

	case "ADD", "SUB", "MULT", "DIV", "MOD", "AND", "OR", "XOR":
		d, s, t, err := threeRegs(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: threeRegOp(mnemonic), Rd: d, Rs: s, Rt: t}, nil

	case "ADDI", "SUBI", "ANDI", "SL", "SR":
		d, s, imm, err := regRegImm(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: regImmOp(mnemonic), Rd: d, Rs: s, Imm: imm}, nil

	case "MOV":
		d, s, err := twoRegs(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: isa.OpMov, Rd: d, Rs: s}, nil

	case "LDC":
		d, imm, err := regImm(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: isa.OpLdc, Rd: d, Imm: imm}, nil

	case "LW":
		addr, dest, err := twoRegs(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: isa.OpLw, Rs: addr, Rd: dest}, nil

	case "SW":
		addr, val, err := twoRegs(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: isa.OpSw, Rs: addr, Rt: val}, nil

	case "J":
		target, err := parseU32(args[0])
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: isa.OpJ, Target: target}, nil

	case "BEQ", "BLT", "BGT":
		s, t, target, err := tworegTarget(args)
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: branchOp(mnemonic), Rs: s, Rt: t, Target: target}, nil

	case "BEQZ":
		s, err := parseReg(args[0])
		if err != nil {
			return isa.Instruction{}, err
		}
		target, err := parseU32(args[1])
		if err != nil {
			return isa.Instruction{}, err
		}
		return isa.Instruction{Op: isa.OpBeqz, Rs: s, Target: target}, nil

	default:
		return isa.Instruction{}, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
}

func threeRegOp(mnemonic string) isa.Op {
	switch mnemonic {
	case "ADD":
		return isa.OpAdd
	case "SUB":
		return isa.OpSub
	case "MULT":
		return isa.OpMult
	case "DIV":
		return isa.OpDiv
	case "MOD":
		return isa.OpMod
	case "AND":
		return isa.OpAnd
	case "OR":
		return isa.OpOr
	case "XOR":
		return isa.OpXor
	default:
		panic("unreachable: threeRegOp called with non-three-register mnemonic " + mnemonic)
	}
}

func regImmOp(mnemonic string) isa.Op {
	switch mnemonic {
	case "ADDI":
		return isa.OpAddI
	case "SUBI":
		return isa.OpSubI
	case "ANDI":
		return isa.OpAndI
	case "SL":
		return isa.OpSl
	case "SR":
		return isa.OpSr
	default:
		panic("unreachable: regImmOp called with non-reg-imm mnemonic " + mnemonic)
	}
}

func branchOp(mnemonic string) isa.Op {
	switch mnemonic {
	case "BEQ":
		return isa.OpBeq
	case "BLT":
		return isa.OpBlt
	case "BGT":
		return isa.OpBgt
	default:
		panic("unreachable: branchOp called with non-branch mnemonic " + mnemonic)
	}
}

// parseReg parses a register index operand (0..31).
func parseReg(tok string) (uint8, error) {
	v, err := strconv.ParseUint(tok, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid register operand %q: %w", tok, err)
	}
	if v > 31 {
		return 0, fmt.Errorf("register operand %q out of range (0-31)", tok)
	}
	return uint8(v), nil
}

func parseU32(tok string) (uint32, error) {
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid immediate/target operand %q: %w", tok, err)
	}
	return uint32(v), nil
}

func threeRegs(args []string) (d, s, t uint8, err error) {
	if d, err = parseReg(args[0]); err != nil {
		return
	}
	if s, err = parseReg(args[1]); err != nil {
		return
	}
	t, err = parseReg(args[2])
	return
}

func twoRegs(args []string) (a, b uint8, err error) {
	if a, err = parseReg(args[0]); err != nil {
		return
	}
	b, err = parseReg(args[1])
	return
}

func regImm(args []string) (d uint8, imm uint32, err error) {
	if d, err = parseReg(args[0]); err != nil {
		return
	}
	imm, err = parseU32(args[1])
	return
}

func regRegImm(args []string) (d, s uint8, imm uint32, err error) {
	if d, err = parseReg(args[0]); err != nil {
		return
	}
	if s, err = parseReg(args[1]); err != nil {
		return
	}
	imm, err = parseU32(args[2])
	return
}

func tworegTarget(args []string) (s, t uint8, target uint32, err error) {
	if s, err = parseReg(args[0]); err != nil {
		return
	}
	if t, err = parseReg(args[1]); err != nil {
		return
	}
	target, err = parseU32(args[2])
	return
}
