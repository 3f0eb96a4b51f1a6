package alu

import "math/bits"

// Op identifies one of the 32 ALU operations shared by the R-ALU and
// I-ALU opcode families (isa.IsAluFamily maps both families onto this
// same 0-31 index space).
type Op uint8

const (
	OpNOP Op = iota
	OpADD
	OpSUB
	OpMUL
	OpDIV
	OpMOD
	OpINC
	OpDEC
	OpNEG
	OpABS
	OpAND
	OpOR
	OpXOR
	OpNAND
	OpNOR
	OpXNOR
	OpNOT
	OpSHL
	OpSHR
	OpSAR
	OpROL
	OpROR
	OpSEXTB
	OpZEXTB
	OpPOPCNT
	OpCMP
	OpUCMP
	OpSETZ
	OpSETNZ
	OpPASS
	OpSEXTH
	OpZEXTH
)

// overflowAdd32 reports signed overflow of a+b per two's-complement
// sign-of-operands-vs-sign-of-result analysis (grounded in
// original_source/aiz32core/src/alu.rs's overflow_add_i32): overflow iff
// both operands share a sign and the result's sign differs from it.
func overflowAdd32(a, b, result int32) bool {
	return (a >= 0) == (b >= 0) && (result >= 0) != (a >= 0)
}

// overflowSub32 is overflowAdd32's subtraction counterpart: overflow iff
// the operands' signs differ and the result's sign differs from the
// minuend's.
func overflowSub32(a, b, result int32) bool {
	return (a >= 0) != (b >= 0) && (result >= 0) != (a >= 0)
}

// Execute is the ALU's single entry point: a pure function from
// (op, a, b, in_flags) to (value, out_flags). Z and S are derived from
// the produced value for every value-producing op; C and O are set
// per-operation below; relational bits are left untouched except by
// Cmp/Ucmp.
func Execute(op Op, a, b uint32, in Flags) (uint32, Flags) {
	out := in // relational bits carry forward unless this op is Cmp/Ucmp
	var value uint32
	setBasic := true

	switch op {
	case OpNOP:
		value = 0
		out.C, out.O = in.C, in.O
		setBasic = false

	case OpADD, OpINC:
		ib := b
		if op == OpINC {
			ib = 1
		}
		sum := a + ib
		value = sum
		out.C = sum < a // unsigned overflow (carry out)
		out.O = overflowAdd32(int32(a), int32(ib), int32(sum))

	case OpSUB, OpDEC:
		ib := b
		if op == OpDEC {
			ib = 1
		}
		diff := a - ib
		value = diff
		out.C = a < ib // borrow
		out.O = overflowSub32(int32(a), int32(ib), int32(diff))

	case OpNEG:
		value = uint32(-int32(a))
		out.C = a != 0
		out.O = a == 0x80000000

	case OpABS:
		ai := int32(a)
		if ai < 0 {
			value = uint32(-ai)
		} else {
			value = a
		}
		out.C = false
		out.O = a == 0x80000000

	case OpMUL:
		wide := int64(int32(a)) * int64(int32(b))
		value = uint32(wide)
		signExt := int64(int32(value))
		overflow := wide != signExt
		out.C = overflow
		out.O = overflow

	case OpDIV:
		ai, bi := int32(a), int32(b)
		if b == 0 || (ai == math_MinInt32 && bi == -1) {
			value = 0
			out.O = true
		} else {
			value = uint32(ai / bi)
			out.O = false
		}
		out.C = false

	case OpMOD:
		ai, bi := int32(a), int32(b)
		switch {
		case b == 0:
			value = 0
			out.O = true
		case ai == math_MinInt32 && bi == -1:
			value = 0
			out.O = false
		default:
			value = uint32(ai % bi)
			out.O = false
		}
		out.C = false

	case OpAND:
		value = a & b
		out.C, out.O = false, false
	case OpOR:
		value = a | b
		out.C, out.O = false, false
	case OpXOR:
		value = a ^ b
		out.C, out.O = false, false
	case OpNAND:
		value = ^(a & b)
		out.C, out.O = false, false
	case OpNOR:
		value = ^(a | b)
		out.C, out.O = false, false
	case OpXNOR:
		value = ^(a ^ b)
		out.C, out.O = false, false
	case OpNOT:
		value = ^a
		out.C, out.O = false, false

	case OpSHL:
		shift := b % 32
		if shift == 0 {
			value = a
			out.C = false
		} else {
			value = a << shift
			out.C = (a>>(32-shift))&1 != 0
		}
		out.O = false

	case OpSHR:
		shift := b % 32
		if shift == 0 {
			value = a
			out.C = false
		} else {
			value = a >> shift
			out.C = (a>>(shift-1))&1 != 0
		}
		out.O = false

	case OpSAR:
		shift := b % 32
		if shift == 0 {
			value = a
			out.C = false
		} else {
			value = uint32(int32(a) >> shift)
			out.C = (a>>(shift-1))&1 != 0
		}
		out.O = false

	case OpROL:
		shift := b % 32
		value = bits.RotateLeft32(a, int(shift))
		out.C = value&1 != 0
		out.O = false

	case OpROR:
		shift := b % 32
		value = bits.RotateLeft32(a, -int(shift))
		out.C = value&0x80000000 != 0
		out.O = false

	case OpSEXTB:
		value = uint32(int32(int8(a)))
		out.C, out.O = false, false
	case OpZEXTB:
		value = a & 0xFF
		out.C, out.O = false, false
	case OpSEXTH:
		value = uint32(int32(int16(a)))
		out.C, out.O = false, false
	case OpZEXTH:
		value = a & 0xFFFF
		out.C, out.O = false, false

	case OpPOPCNT:
		value = uint32(bits.OnesCount32(a))
		out.C, out.O = false, false

	case OpCMP:
		diff := a - b
		ai, bi := int32(a), int32(b)
		out.C = a < b
		out.O = overflowSub32(ai, bi, int32(diff))
		out.G = ai > bi
		out.E = ai == bi
		out.NE = ai != bi
		out.L = ai < bi
		out.GE = ai >= bi
		out.LE = ai <= bi
		value = 0
		setBasic = false

	case OpUCMP:
		out.C = a < b
		out.O = false
		out.G = a > b
		out.E = a == b
		out.NE = a != b
		out.L = a < b
		out.GE = a >= b
		out.LE = a <= b
		value = 0
		setBasic = false

	case OpSETZ:
		if in.Z {
			value = 1
		} else {
			value = 0
		}
		out.C, out.O = false, false

	case OpSETNZ:
		if in.Z {
			value = 0
		} else {
			value = 1
		}
		out.C, out.O = false, false

	case OpPASS:
		value = a
		out.C, out.O = false, false

	default:
		value = 0
	}

	if setBasic {
		basic(&out, value)
	}
	return value, out
}

const math_MinInt32 = -1 << 31
