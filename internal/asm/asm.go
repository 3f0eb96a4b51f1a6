// Package asm implements the AIZ32 two-pass assembler: the first pass
// resolves labels at instruction-unit granularity, the second
// tokenizes operands and emits encoded 32-bit words. Grounded in
// assembler/ie32asm.go's Assembler struct/handleDirective shape (labels
// map, equates map, directive dispatch) and
// original_source/aiz32asm/src/parser.rs's exact tokenize/first_pass/
// second_pass algorithm.
//
// License: GPLv3 or later
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/intuitionamiga/aiz32/internal/isa"
)

// SourceError reports an assembly failure with the offending line
// number and text, per SPEC_FULL.md §7's "reported with source line
// number and content". The assembler collects the first error per line
// and surfaces it; it does not attempt recovery (§7 "Propagation
// policy").
type SourceError struct {
	Line int
	Text string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("asm: line %d: %s: %v", e.Line, e.Text, e.Err)
}
func (e *SourceError) Unwrap() error { return e.Err }

// item is one instruction-unit slot in the program stream: either a real
// instruction (tokens awaiting pass-2 encoding) or pre-encoded data
// words from a directive (§4.7's two-pass description doesn't cover
// directives explicitly; data directives here occupy whole
// instruction-unit slots so label arithmetic in instruction units, per
// §4.7, stays exact — a documented simplification, see DESIGN.md).
type item struct {
	lineNo int
	text   string
	tokens []string // nil for pre-encoded data
	words  []uint32 // non-nil for data directives
}

// Assembler holds the symbol table and program stream across the two
// passes.
type Assembler struct {
	labels     map[string]uint32 // name -> pc, instruction units
	equates    map[string]int64
	program    []item
	includeDir string
}

// New returns an empty Assembler.
func New() *Assembler {
	return &Assembler{
		labels:  make(map[string]uint32),
		equates: make(map[string]int64),
	}
}

// Assemble runs both passes over source and returns the encoded words.
func Assemble(source string) ([]uint32, error) {
	return New().Assemble(source)
}

// Assemble runs both passes over source on this Assembler instance,
// honoring any prior SetIncludeDir call (for .incbin resolution).
func (a *Assembler) Assemble(source string) ([]uint32, error) {
	if err := a.firstPass(source); err != nil {
		return nil, err
	}
	return a.secondPass()
}

func tokenize(line string) []string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.ReplaceAll(line, ",", " ")
	line = strings.ReplaceAll(line, "[", " ")
	line = strings.ReplaceAll(line, "]", " ")
	fields := strings.Fields(line)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f)
	}
	return fields
}

// firstPass assigns instruction-unit pc values to labels and builds the
// program item stream.
func (a *Assembler) firstPass(source string) error {
	pc := uint32(0)
	for lineNo, rawLine := range strings.Split(source, "\n") {
		lineNo++ // 1-based for error reporting

		if label, text, ok := tryAsciiDirective(rawLine); ok {
			if label != "" {
				a.labels[label] = pc
			}
			words := packWords([]byte(text))
			a.program = append(a.program, item{lineNo: lineNo, text: rawLine, words: words})
			pc += uint32(len(words))
			continue
		}

		tokens := tokenize(rawLine)
		if len(tokens) == 0 {
			continue
		}

		if strings.HasSuffix(tokens[0], ":") {
			label := strings.TrimSuffix(tokens[0], ":")
			a.labels[label] = pc
			tokens = tokens[1:]
			if len(tokens) == 0 {
				continue
			}
		}

		if tokens[0] == ".EQU" {
			if len(tokens) != 3 {
				return &SourceError{lineNo, rawLine, fmt.Errorf(".equ requires NAME, value")}
			}
			v, err := parseImmediate(tokens[2])
			if err != nil {
				return &SourceError{lineNo, rawLine, err}
			}
			a.equates[tokens[1]] = v
			continue
		}
		if tokens[0] == ".ORG" {
			if len(tokens) != 2 {
				return &SourceError{lineNo, rawLine, fmt.Errorf(".org requires an address")}
			}
			v, err := parseImmediate(tokens[1])
			if err != nil {
				return &SourceError{lineNo, rawLine, err}
			}
			pc = uint32(v)
			continue
		}

		if isDirective(tokens[0]) {
			words, err := a.handleDirective(tokens)
			if err != nil {
				return &SourceError{lineNo, rawLine, err}
			}
			a.program = append(a.program, item{lineNo: lineNo, text: rawLine, words: words})
			pc += uint32(len(words))
			continue
		}

		a.program = append(a.program, item{lineNo: lineNo, text: rawLine, tokens: tokens})
		pc++
	}
	return nil
}

func (a *Assembler) resolveImmediate(tok string) (int64, error) {
	if v, ok := a.equates[tok]; ok {
		return v, nil
	}
	return parseImmediate(tok)
}

// parseImmediate implements §4.7's immediate grammar: 0x-prefixed hex,
// #-prefixed signed decimal, otherwise plain decimal.
func parseImmediate(tok string) (int64, error) {
	switch {
	case strings.HasPrefix(tok, "0X"):
		return strconv.ParseInt(tok[2:], 16, 64)
	case strings.HasPrefix(tok, "#"):
		return strconv.ParseInt(tok[1:], 10, 64)
	default:
		return strconv.ParseInt(tok, 10, 64)
	}
}

func parseRegister(tok string) (uint8, error) {
	if len(tok) < 2 || (tok[0] != 'R' && tok[0] != 'F') {
		return 0, fmt.Errorf("%q is not a register operand", tok)
	}
	n, err := strconv.Atoi(tok[1:])
	if err != nil || n < 0 || n > 31 {
		return 0, fmt.Errorf("%q is not a valid register 0-31", tok)
	}
	return uint8(n), nil
}

// secondPass tokenizes operands per opcode form and emits encoded
// words, per §4.7's second pass.
func (a *Assembler) secondPass() ([]uint32, error) {
	var out []uint32
	pc := uint32(0)
	for _, it := range a.program {
		if it.words != nil {
			out = append(out, it.words...)
			pc += uint32(len(it.words))
			continue
		}
		word, err := a.encodeLine(pc, it.tokens)
		if err != nil {
			return nil, &SourceError{it.lineNo, it.text, err}
		}
		out = append(out, word)
		pc++
	}
	return out, nil
}

func (a *Assembler) encodeLine(pc uint32, tokens []string) (uint32, error) {
	mnemonic := tokens[0]
	op, ok := isa.Lookup(mnemonic)
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	form, _ := isa.FormOf(op)
	operands := tokens[1:]

	switch form {
	case isa.FormR, isa.FormFP:
		if op == isa.FMOV || op == isa.FEQ || op == isa.FLT || op == isa.FGT ||
			op == isa.FTOI || op == isa.ITOF || op == isa.FCMP {
			// FP ops may be 2- or 3-operand; pad rs2 with 0 when absent.
			rd, rs1, rs2, err := a.parseRRR(operands, true)
			if err != nil {
				return 0, err
			}
			return isa.EncodeR(op, rd, rs1, rs2), nil
		}
		if op == isa.NOP && len(operands) == 0 {
			return isa.EncodeR(op, 0, 0, 0), nil
		}
		rd, rs1, rs2, err := a.parseRRR(operands, false)
		if err != nil {
			return 0, err
		}
		return isa.EncodeR(op, rd, rs1, rs2), nil

	case isa.FormI:
		rd, rs1, imm, err := a.parseRRI(operands)
		if err != nil {
			return 0, err
		}
		return isa.EncodeI(op, rd, rs1, uint32(imm)), nil

	case isa.FormMem:
		rd, rs1, imm, err := a.parseMem(operands)
		if err != nil {
			return 0, err
		}
		return isa.EncodeI(op, rd, rs1, uint32(imm)), nil

	case isa.FormJ:
		return a.encodeJump(pc, op, operands)

	case isa.FormSys:
		return a.encodeSys(op, operands)

	case isa.FormIO:
		return a.encodeIO(op, operands)

	default:
		return 0, fmt.Errorf("opcode %s has no known form", mnemonic)
	}
}

func (a *Assembler) parseRRR(operands []string, rs2Optional bool) (rd, rs1, rs2 uint8, err error) {
	need := 3
	if rs2Optional && len(operands) == 2 {
		need = 2
	}
	if len(operands) != need {
		return 0, 0, 0, fmt.Errorf("expected %d register operands, got %d", need, len(operands))
	}
	if rd, err = parseRegister(operands[0]); err != nil {
		return
	}
	if rs1, err = parseRegister(operands[1]); err != nil {
		return
	}
	if need == 3 {
		rs2, err = parseRegister(operands[2])
	}
	return
}

func (a *Assembler) parseRRI(operands []string) (rd, rs1 uint8, imm int64, err error) {
	if len(operands) != 3 {
		return 0, 0, 0, fmt.Errorf("expected rd, rs1, imm, got %d operands", len(operands))
	}
	if rd, err = parseRegister(operands[0]); err != nil {
		return
	}
	if rs1, err = parseRegister(operands[1]); err != nil {
		return
	}
	imm, err = a.resolveImmediate(operands[2])
	return
}

// parseMem handles the "[Rn, imm]" memory-operand grammar; tokenize has
// already stripped the brackets.
func (a *Assembler) parseMem(operands []string) (rd, rs1 uint8, imm int64, err error) {
	if len(operands) < 2 || len(operands) > 3 {
		return 0, 0, 0, fmt.Errorf("expected rd, rs1[, imm], got %d operands", len(operands))
	}
	if rd, err = parseRegister(operands[0]); err != nil {
		return
	}
	if rs1, err = parseRegister(operands[1]); err != nil {
		return
	}
	if len(operands) == 3 {
		imm, err = a.resolveImmediate(operands[2])
	}
	return
}

func (a *Assembler) encodeJump(pc uint32, op isa.Opcode, operands []string) (uint32, error) {
	switch op {
	case isa.RET, isa.HALT:
		return isa.EncodeJ(op, 0), nil
	}
	if len(operands) != 1 {
		return 0, fmt.Errorf("expected a single label operand, got %d", len(operands))
	}
	target, ok := a.labels[operands[0]]
	if !ok {
		return 0, fmt.Errorf("unknown label %q", operands[0])
	}
	offset := int32(int64(target) - int64(pc))
	return isa.EncodeJ(op, offset), nil
}

func (a *Assembler) encodeSys(op isa.Opcode, operands []string) (uint32, error) {
	switch op {
	case isa.MOV:
		if len(operands) != 2 {
			return 0, fmt.Errorf("MOV expects rd, rs")
		}
		rd, err := parseRegister(operands[0])
		if err != nil {
			return 0, err
		}
		rs, err := parseRegister(operands[1])
		if err != nil {
			return 0, err
		}
		return isa.EncodeSys(op, rd, uint32(rs)), nil
	case isa.LI, isa.LUI:
		if len(operands) != 2 {
			return 0, fmt.Errorf("%s expects rd, imm", isa.Mnemonic(op))
		}
		rd, err := parseRegister(operands[0])
		if err != nil {
			return 0, err
		}
		imm, err := a.resolveImmediate(operands[1])
		if err != nil {
			return 0, err
		}
		return isa.EncodeSys(op, rd, uint32(imm)), nil
	default: // MOVPC, MTSR, MFSR, MOVSP, SETSP: single register operand
		if len(operands) != 1 {
			return 0, fmt.Errorf("%s expects a single register operand", isa.Mnemonic(op))
		}
		rd, err := parseRegister(operands[0])
		if err != nil {
			return 0, err
		}
		return isa.EncodeSys(op, rd, 0), nil
	}
}

func (a *Assembler) encodeIO(op isa.Opcode, operands []string) (uint32, error) {
	if len(operands) != 2 {
		return 0, fmt.Errorf("%s expects rd, port", isa.Mnemonic(op))
	}
	rd, err := parseRegister(operands[0])
	if err != nil {
		return 0, err
	}
	port, err := a.resolveImmediate(operands[1])
	if err != nil {
		return 0, err
	}
	return isa.EncodeIO(op, uint16(port), rd), nil
}
