package cpu

import "github.com/intuitionamiga/aiz32/internal/alu"

// Registers is the AIZ32 register bank: 32 general-purpose 32-bit
// integer registers with R0 write-suppressed, a disjoint 32-entry
// single-precision float file, and the dedicated PC/SP/flags
// accessors. Grounded in original_source/aiz32core/src/registers.rs's
// RegisterBank, restyled in the teacher's cpu_ie32.go getRegister idiom.
type Registers struct {
	gpr   [32]uint32
	fpr   [32]float32
	pc    uint32
	sp    uint32
	flags alu.Flags
}

// Get reads integer register idx. The index is masked to 5 bits, so an
// out-of-range idx wraps into 0-31 rather than panicking; decoded
// register fields are always 0-31 anyway.
func (r *Registers) Get(idx uint8) uint32 {
	return r.gpr[idx&0x1F]
}

// Set writes integer register idx. Writes to index 0 are silently
// dropped (soft hard-zero, per original_source/aiz32core/src/registers.rs
// and SPEC_FULL.md §9's resolution of the Register 0 open question).
func (r *Registers) Set(idx uint8, v uint32) {
	idx &= 0x1F
	if idx == 0 {
		return
	}
	r.gpr[idx] = v
}

// GetF reads float register idx.
func (r *Registers) GetF(idx uint8) float32 {
	return r.fpr[idx&0x1F]
}

// SetF writes float register idx. The float file has no analogue of
// R0's write suppression; all 32 entries are ordinary storage.
func (r *Registers) SetF(idx uint8, v float32) {
	r.fpr[idx&0x1F] = v
}

func (r *Registers) PC() uint32     { return r.pc }
func (r *Registers) SetPC(v uint32) { r.pc = v }
func (r *Registers) SP() uint32     { return r.sp }
func (r *Registers) SetSP(v uint32) { r.sp = v }

// Flags returns the unpacked flag state.
func (r *Registers) Flags() alu.Flags { return r.flags }

// SetFlags replaces the unpacked flag state (used after every
// ALU-executing instruction, and by MTSR via Registers.SetFlagsWord).
func (r *Registers) SetFlags(f alu.Flags) { r.flags = f }

// FlagsWord returns the packed wire-format flags (MFSR).
func (r *Registers) FlagsWord() uint32 { return alu.Pack(r.flags) }

// SetFlagsWord unpacks and installs a wire-format flags word (MTSR).
func (r *Registers) SetFlagsWord(w uint32) { r.flags = alu.Unpack(w) }
