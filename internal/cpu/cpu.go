// Package cpu implements the AIZ32 register bank, memory bus, and the
// fetch-decode-execute loop that drives them. Grounded structurally in
// the teacher's cpu_ie32.go (CPU struct, getRegister, Step/Execute
// dispatch-by-form shape); the instruction semantics themselves are
// grounded in original_source/aiz32core/src/cpu.rs.
//
// License: GPLv3 or later
package cpu

import (
	"fmt"

	"github.com/intuitionamiga/aiz32/internal/alu"
	"github.com/intuitionamiga/aiz32/internal/iobus"
	"github.com/intuitionamiga/aiz32/internal/isa"
)

// UnknownOpcodeFault wraps an isa.DecodeError as a fatal CPU fault, per
// SPEC_FULL.md §7's "decode errors are fatal".
type UnknownOpcodeFault struct {
	PC  uint32
	Err error
}

func (e *UnknownOpcodeFault) Error() string {
	return fmt.Sprintf("cpu: fetch at PC=0x%08X: %s", e.PC, e.Err)
}
func (e *UnknownOpcodeFault) Unwrap() error { return e.Err }

// CPU is the AIZ32 execution core: register bank + memory bus + I/O bus,
// one Step at a time. Single-threaded, cooperative (SPEC_FULL.md §5) —
// the type itself holds no mutex; internal/machine supplies the
// goroutine-safety boundary around Step.
type CPU struct {
	Regs   Registers
	Mem    *Memory
	IO     *iobus.Bus
	Halted bool
	Cycles uint64
}

// New constructs a CPU with the given memory and I/O bus, PC and SP set
// to the caller-supplied initial values (SPEC_FULL.md §3 "Lifecycles").
func New(mem *Memory, io *iobus.Bus, initialPC, initialSP uint32) *CPU {
	c := &CPU{Mem: mem, IO: io}
	c.Regs.SetPC(initialPC)
	c.Regs.SetSP(initialSP)
	return c
}

// Step executes exactly one instruction to completion, per SPEC_FULL.md
// §4.6: if halted, return immediately; otherwise fetch, decode, dispatch,
// advance PC by 4 unless the dispatcher already updated it, and count
// the cycle.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}

	word, err := c.Mem.Read32(c.Regs.PC())
	if err != nil {
		return err
	}
	inst, err := isa.Decode(word)
	if err != nil {
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: err}
	}

	updatedPC, err := c.dispatch(inst)
	if err != nil {
		return err
	}
	if !updatedPC {
		c.Regs.SetPC(c.Regs.PC() + 4)
	}
	c.Cycles++
	return nil
}

// Run steps until Halted or an error occurs.
func (c *CPU) Run() error {
	for !c.Halted {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *CPU) dispatch(inst isa.Instruction) (updatedPC bool, err error) {
	switch inst.Form {
	case isa.FormR:
		return false, c.execAluReg(inst)
	case isa.FormI:
		return false, c.execAluImm(inst)
	case isa.FormMem:
		return false, c.execMem(inst)
	case isa.FormJ:
		return c.execJump(inst)
	case isa.FormSys:
		return false, c.execSys(inst)
	case isa.FormFP:
		return false, c.execFP(inst)
	case isa.FormIO:
		return false, c.execIO(inst)
	default:
		return false, &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("unhandled form %v", inst.Form)}
	}
}

// execAluReg dispatches R-ALU ops: both operands come from registers.
func (c *CPU) execAluReg(inst isa.Instruction) error {
	aluOp, _, ok := isa.IsAluFamily(inst.Op)
	if !ok {
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("opcode %s is not an R-ALU op", isa.Mnemonic(inst.Op))}
	}
	a := c.Regs.Get(inst.Rs1)
	b := c.Regs.Get(inst.Rs2)
	value, flags := alu.Execute(alu.Op(aluOp), a, b, c.Regs.Flags())
	c.Regs.SetFlags(flags)
	if !isCompareOp(alu.Op(aluOp)) {
		c.Regs.Set(inst.Rd, value)
	}
	return nil
}

// execAluImm dispatches I-ALU ops: the second operand is the raw 14-bit
// immediate, NOT sign-extended — original_source/aiz32core/src/cpu.rs
// passes imm to the ALU zero-extended to 32 bits, and SPEC_FULL.md §9
// resolves the corresponding Open Question by preserving that behavior
// rather than "fixing" it (unlike the decoder mask bug, the spec
// explicitly leaves this one to the implementer). Concretely, ADDI r,r,#-1
// adds 0x3FFF, not -1.
func (c *CPU) execAluImm(inst isa.Instruction) error {
	aluOp, _, ok := isa.IsAluFamily(inst.Op)
	if !ok {
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("opcode %s is not an I-ALU op", isa.Mnemonic(inst.Op))}
	}
	a := c.Regs.Get(inst.Rs1)
	b := inst.Imm
	value, flags := alu.Execute(alu.Op(aluOp), a, b, c.Regs.Flags())
	c.Regs.SetFlags(flags)
	if !isCompareOp(alu.Op(aluOp)) {
		c.Regs.Set(inst.Rd, value)
	}
	return nil
}

func isCompareOp(op alu.Op) bool {
	return op == alu.OpCMP || op == alu.OpUCMP
}
