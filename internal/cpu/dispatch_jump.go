package cpu

import (
	"fmt"

	"github.com/intuitionamiga/aiz32/internal/isa"
)

// execJump dispatches J-type control flow. Offsets are stored in units
// of one instruction (4 bytes); the CPU multiplies by 4 here
// (SPEC_FULL.md §4.6 "Relative-address unit"). Returns updatedPC=true
// whenever PC was set explicitly by this instruction, so Step knows not
// to add 4 on top.
func (c *CPU) execJump(inst isa.Instruction) (bool, error) {
	pc := c.Regs.PC()
	f := c.Regs.Flags()
	target := func() uint32 { return uint32(int64(pc) + int64(inst.Offset)*4) }

	switch inst.Op {
	case isa.JMP:
		c.Regs.SetPC(target())
		return true, nil
	case isa.JZ:
		return c.branchIf(f.Z, target), nil
	case isa.JNZ:
		return c.branchIf(!f.Z, target), nil
	case isa.JEQ:
		return c.branchIf(f.E, target), nil
	case isa.JNE:
		return c.branchIf(f.NE, target), nil
	case isa.JLT:
		return c.branchIf(f.L, target), nil
	case isa.JGT:
		return c.branchIf(f.G, target), nil
	case isa.JLE:
		return c.branchIf(f.LE, target), nil
	case isa.JGE:
		return c.branchIf(f.GE, target), nil
	case isa.JC:
		return c.branchIf(f.C, target), nil
	case isa.JO:
		return c.branchIf(f.O, target), nil
	case isa.CALL:
		retAddr := pc + 4
		newSP := c.Regs.SP() - 4
		if err := c.Mem.Write32(newSP, retAddr); err != nil {
			return false, err
		}
		c.Regs.SetSP(newSP)
		c.Regs.SetPC(target())
		return true, nil
	case isa.RET:
		retAddr, err := c.Mem.Read32(c.Regs.SP())
		if err != nil {
			return false, err
		}
		c.Regs.SetSP(c.Regs.SP() + 4)
		c.Regs.SetPC(retAddr)
		return true, nil
	case isa.HALT:
		// PC freezes exactly on the HALT instruction; the halted state
		// is sticky (SPEC_FULL.md §14 item 1).
		c.Halted = true
		return true, nil
	default:
		return false, &UnknownOpcodeFault{PC: pc, Err: fmt.Errorf("opcode %s is not a J op", isa.Mnemonic(inst.Op))}
	}
}

func (c *CPU) branchIf(taken bool, target func() uint32) bool {
	if !taken {
		return false
	}
	c.Regs.SetPC(target())
	return true
}
