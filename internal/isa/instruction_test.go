package isa

import "testing"

// TestRTypeRoundTrip is the concrete scenario from SPEC_FULL.md §8:
// ADD R1, R2, R3 assembles to word 0x01088600.
func TestRTypeRoundTrip(t *testing.T) {
	word := EncodeR(ADD, 1, 2, 3)
	if want := uint32(0x01088600); word != want {
		t.Fatalf("EncodeR(ADD,1,2,3) = 0x%08X, want 0x%08X", word, want)
	}
	inst, err := Decode(word)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Op != ADD || inst.Rd != 1 || inst.Rs1 != 2 || inst.Rs2 != 3 {
		t.Fatalf("decoded %+v", inst)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cases := []Instruction{
		{Op: ADD, Form: FormR, Rd: 5, Rs1: 6, Rs2: 7},
		{Op: ADDI, Form: FormI, Rd: 1, Rs1: 2, Imm: 0x1FFF},
		{Op: LDB, Form: FormMem, Rd: 3, Rs1: 4, Imm: 10},
		{Op: JMP, Form: FormJ, Offset: 12345},
		{Op: JMP, Form: FormJ, Offset: -3},
		{Op: LI, Form: FormSys, Rd: 9, Imm: 0x7FFFF},
		{Op: FADD, Form: FormFP, Rd: 1, Rs1: 2, Rs2: 3},
		{Op: IN, Form: FormIO, Rd: 4, Port: 0x1234},
	}
	for _, c := range cases {
		word := Encode(c)
		got, err := Decode(word)
		if err != nil {
			t.Fatalf("Decode(%#v) error: %v", c, err)
		}
		if got != c {
			t.Fatalf("round trip mismatch: encoded %+v as 0x%08X, decoded %+v", c, word, got)
		}
	}
}

func TestBackwardJumpOffset(t *testing.T) {
	// "TARGET: NOP / NOP / NOP / JMP TARGET" — JMP at pc=3, TARGET at pc=0.
	offset := int32(0) - int32(3)
	word := EncodeJ(JMP, offset)
	if want := uint32(0xFFFFFD); word&0xFFFFFF != want {
		t.Fatalf("offset field = 0x%06X, want 0x%06X", word&0xFFFFFF, want)
	}
	inst, err := Decode(word)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Offset != -3 {
		t.Fatalf("decoded offset = %d, want -3", inst.Offset)
	}
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	_, err := Decode(0xFF000000) // 0xFF is not in any opcode block
	if err == nil {
		t.Fatal("expected decode error for unknown opcode byte")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
}

func TestImmediateFieldWidths(t *testing.T) {
	// Decoder must mask to the corrected widths (14 for I/Mem, 19 for
	// Sys), not the historical 9-bit bug (SPEC_FULL.md §4.1).
	word := EncodeI(ADDI, 1, 2, 0x3FFF)
	inst, err := Decode(word)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Imm != 0x3FFF {
		t.Fatalf("I-type imm = 0x%X, want 0x3FFF (14-bit field)", inst.Imm)
	}

	word = EncodeSys(LI, 1, 0x7FFFF)
	inst, err = Decode(word)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Imm != 0x7FFFF {
		t.Fatalf("Sys imm = 0x%X, want 0x7FFFF (19-bit field)", inst.Imm)
	}
}
