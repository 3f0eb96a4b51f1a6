package cpu

import (
	"fmt"

	"github.com/intuitionamiga/aiz32/internal/isa"
)

// execSys dispatches Sys-type move/control instructions
// (SPEC_FULL.md §4.6's "Sys" bullet).
func (c *CPU) execSys(inst isa.Instruction) error {
	switch inst.Op {
	case isa.MOV:
		// imm holds the source register index, not an immediate value.
		c.Regs.Set(inst.Rd, c.Regs.Get(uint8(inst.Imm)))
	case isa.LI:
		c.Regs.Set(inst.Rd, inst.Imm&0xFFFF)
	case isa.LUI:
		c.Regs.Set(inst.Rd, inst.Imm<<16)
	case isa.MOVPC:
		c.Regs.Set(inst.Rd, c.Regs.PC())
	case isa.MTSR:
		c.Regs.SetFlagsWord(c.Regs.Get(inst.Rd))
	case isa.MFSR:
		c.Regs.Set(inst.Rd, c.Regs.FlagsWord())
	case isa.MOVSP:
		c.Regs.Set(inst.Rd, c.Regs.SP())
	case isa.SETSP:
		c.Regs.SetSP(c.Regs.Get(inst.Rd))
	default:
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("opcode %s is not a Sys op", isa.Mnemonic(inst.Op))}
	}
	return nil
}

// execIO dispatches port reads/writes.
func (c *CPU) execIO(inst isa.Instruction) error {
	switch inst.Op {
	case isa.IN:
		c.Regs.Set(inst.Rd, c.IO.Read(inst.Port))
	case isa.OUT:
		c.IO.Write(inst.Port, c.Regs.Get(inst.Rd))
	default:
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("opcode %s is not an IO op", isa.Mnemonic(inst.Op))}
	}
	return nil
}
