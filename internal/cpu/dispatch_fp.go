package cpu

import (
	"fmt"
	"math"

	"github.com/intuitionamiga/aiz32/internal/isa"
)

func float32Bits(f float32) uint32     { return math.Float32bits(f) }
func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }

// execFP dispatches floating-point arithmetic and conversion
// (SPEC_FULL.md §4.6's "FP" bullet). FLD/FST are handled in
// dispatch_mem.go's execMem, per SPEC_FULL.md §14 item 3.
func (c *CPU) execFP(inst isa.Instruction) error {
	a := c.Regs.GetF(inst.Rs1)
	b := c.Regs.GetF(inst.Rs2)

	switch inst.Op {
	case isa.FADD:
		c.Regs.SetF(inst.Rd, a+b)
	case isa.FSUB:
		c.Regs.SetF(inst.Rd, a-b)
	case isa.FMUL:
		c.Regs.SetF(inst.Rd, a*b)
	case isa.FDIV:
		c.Regs.SetF(inst.Rd, a/b)
	case isa.FCMP:
		f := c.Regs.Flags()
		f.Z = a == b
		f.L = a < b
		f.G = a > b
		c.Regs.SetFlags(f)
	case isa.FEQ:
		c.Regs.Set(inst.Rd, boolToU32(a == b))
	case isa.FLT:
		c.Regs.Set(inst.Rd, boolToU32(a < b))
	case isa.FGT:
		c.Regs.Set(inst.Rd, boolToU32(a > b))
	case isa.FTOI:
		c.Regs.Set(inst.Rd, uint32(int32(a)))
	case isa.ITOF:
		// Signed cast, per SPEC_FULL.md §14 item 2 (the literal spec
		// text), not original_source's unsigned u32->f32 cast.
		c.Regs.SetF(inst.Rd, float32(int32(c.Regs.Get(inst.Rs1))))
	case isa.FMOV:
		c.Regs.SetF(inst.Rd, a)
	default:
		return &UnknownOpcodeFault{PC: c.Regs.PC(), Err: fmt.Errorf("opcode %s is not an FP op", isa.Mnemonic(inst.Op))}
	}
	return nil
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
