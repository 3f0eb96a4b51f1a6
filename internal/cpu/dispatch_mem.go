package cpu

import (
	"fmt"

	"github.com/intuitionamiga/aiz32/internal/isa"
)

// execMem dispatches Mem-type loads/stores, and FLD/FST (which decode as
// Mem-type despite living in the FP mnemonic range; see SPEC_FULL.md
// §14 item 3). Effective address is regs[rs1]+imm, both unsigned.
func (c *CPU) execMem(inst isa.Instruction) error {
	addr := c.Regs.Get(inst.Rs1) + inst.Imm

	switch inst.Op {
	case isa.LDB:
		v, err := c.Mem.ReadByte(addr)
		if err != nil {
			return err
		}
		c.Regs.Set(inst.Rd, uint32(int32(int8(v))))
	case isa.LDBU:
		v, err := c.Mem.ReadByte(addr)
		if err != nil {
			return err
		}
		c.Regs.Set(inst.Rd, uint32(v))
	case isa.LDH:
		v, err := c.Mem.Read16(addr)
		if err != nil {
			return err
		}
		c.Regs.Set(inst.Rd, uint32(int32(int16(v))))
	case isa.LDHU:
		v, err := c.Mem.Read16(addr)
		if err != nil {
			return err
		}
		c.Regs.Set(inst.Rd, uint32(v))
	case isa.LDW, isa.LDLR:
		v, err := c.Mem.Read32(addr)
		if err != nil {
			return err
		}
		c.Regs.Set(inst.Rd, v)
	case isa.STB:
		return c.Mem.WriteByte(addr, byte(c.Regs.Get(inst.Rd)))
	case isa.STH:
		return c.Mem.Write16(addr, uint16(c.Regs.Get(inst.Rd)))
	case isa.STW, isa.STLR:
		return c.Mem.Write32(addr, c.Regs.Get(inst.Rd))
	case isa.FLD:
		v, err := c.Mem.Read32(addr)
		if err != nil {
			return err
		}
		c.Regs.SetF(inst.Rd, float32FromBits(v))
	case isa.FST:
		return c.Mem.Write32(addr, float32Bits(c.Regs.GetF(inst.Rd)))
	default:
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("opcode %s is not a Mem op", isa.Mnemonic(inst.Op))}
	}
	return nil
}
