// Package alu implements AIZ32's arithmetic/logic unit: a pure function
// from (op, a, b, input flags) to (result, output flags). No side
// effects, no memory access — the R-ALU and I-ALU opcode families route
// through here; FP arithmetic is computed by the CPU's FP dispatcher.
//
// License: GPLv3 or later
package alu

// Flags is the unpacked, named-boolean view of the ten-bit flags word.
// The wire format (for MTSR/MFSR) is the packed uint32 form; Pack/Unpack
// round-trip losslessly: unpack(pack(f)) == f.
type Flags struct {
	Z  bool // result was zero
	C  bool // carry/borrow, or shifted-out bit
	O  bool // signed overflow
	S  bool // result sign (two's-complement negative)
	G  bool // greater (set by CMP signed, UCMP unsigned, FCMP)
	E  bool // equal
	NE bool // not equal
	L  bool // signed less
	GE bool // signed greater-or-equal
	LE bool // signed less-or-equal
}

const (
	bitZ = 1 << iota
	bitC
	bitO
	bitS
	bitG
	bitE
	bitNE
	bitL
	bitGE
	bitLE
)

// Pack bit-packs f into the low ten bits of a uint32, the MTSR/MFSR wire
// format.
func Pack(f Flags) uint32 {
	var w uint32
	set := func(b bool, mask uint32) {
		if b {
			w |= mask
		}
	}
	set(f.Z, bitZ)
	set(f.C, bitC)
	set(f.O, bitO)
	set(f.S, bitS)
	set(f.G, bitG)
	set(f.E, bitE)
	set(f.NE, bitNE)
	set(f.L, bitL)
	set(f.GE, bitGE)
	set(f.LE, bitLE)
	return w
}

// Unpack reverses Pack.
func Unpack(w uint32) Flags {
	return Flags{
		Z:  w&bitZ != 0,
		C:  w&bitC != 0,
		O:  w&bitO != 0,
		S:  w&bitS != 0,
		G:  w&bitG != 0,
		E:  w&bitE != 0,
		NE: w&bitNE != 0,
		L:  w&bitL != 0,
		GE: w&bitGE != 0,
		LE: w&bitLE != 0,
	}
}

// basic sets Z and S from value, leaving the relational bits and C/O at
// whatever the caller already decided.
func basic(f *Flags, value uint32) {
	f.Z = value == 0
	f.S = int32(value) < 0
}
