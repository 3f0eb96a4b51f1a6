package debug

import (
	"fmt"

	"github.com/intuitionamiga/aiz32/internal/isa"
)

// Disassemble renders a decoded instruction as assembler source text,
// grounded in the teacher's debug_disasm_ie32.go mnemonic-plus-operands
// rendering.
func Disassemble(inst isa.Instruction) string {
	mnem := isa.Mnemonic(inst.Op)
	switch inst.Form {
	case isa.FormR, isa.FormFP:
		return fmt.Sprintf("%s R%d, R%d, R%d", mnem, inst.Rd, inst.Rs1, inst.Rs2)
	case isa.FormI:
		return fmt.Sprintf("%s R%d, R%d, #%d", mnem, inst.Rd, inst.Rs1, inst.Imm)
	case isa.FormMem:
		return fmt.Sprintf("%s R%d, [R%d, #%d]", mnem, inst.Rd, inst.Rs1, inst.Imm)
	case isa.FormJ:
		return fmt.Sprintf("%s %+d", mnem, inst.Offset)
	case isa.FormSys:
		return fmt.Sprintf("%s R%d, #%d", mnem, inst.Rd, inst.Imm)
	case isa.FormIO:
		return fmt.Sprintf("%s R%d, 0x%04X", mnem, inst.Rd, inst.Port)
	default:
		return mnem
	}
}
