package alu

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	f := Flags{Z: true, C: false, O: true, S: true, G: false, E: true, NE: false, L: true, GE: false, LE: true}
	if got := Unpack(Pack(f)); got != f {
		t.Fatalf("Unpack(Pack(f)) = %+v, want %+v", got, f)
	}
}

func TestAddOverflow(t *testing.T) {
	// 0x7FFFFFFF + 1: O=1, value=0x80000000, C=0.
	value, f := Execute(OpADD, 0x7FFFFFFF, 1, Flags{})
	if value != 0x80000000 {
		t.Fatalf("value = 0x%08X, want 0x80000000", value)
	}
	if !f.O || f.C {
		t.Fatalf("flags = %+v, want O=true C=false", f)
	}
}

func TestSubBorrow(t *testing.T) {
	value, f := Execute(OpSUB, 0, 1, Flags{})
	if value != 0xFFFFFFFF {
		t.Fatalf("value = 0x%08X, want 0xFFFFFFFF", value)
	}
	if !f.C {
		t.Fatal("expected C=true (borrow)")
	}
}

func TestMulOverflow(t *testing.T) {
	// 0x10000 * 0x10000 = 0x100000000, truncates to 0, O=1, C=1.
	value, f := Execute(OpMUL, 0x10000, 0x10000, Flags{})
	if value != 0 {
		t.Fatalf("value = 0x%08X, want 0", value)
	}
	if !f.O || !f.C {
		t.Fatalf("flags = %+v, want O=true C=true", f)
	}
}

func TestDivMinIntByNegOne(t *testing.T) {
	value, f := Execute(OpDIV, 0x80000000, 0xFFFFFFFF, Flags{})
	if value != 0 {
		t.Fatalf("value = 0x%08X, want 0", value)
	}
	if !f.O {
		t.Fatal("expected O=true for DIV(INT_MIN,-1)")
	}
}

func TestDivByZero(t *testing.T) {
	value, f := Execute(OpDIV, 42, 0, Flags{})
	if value != 0 || !f.O {
		t.Fatalf("value=%d O=%v, want 0/true", value, f.O)
	}
}

func TestNegZero(t *testing.T) {
	value, f := Execute(OpNEG, 0, 0, Flags{})
	if value != 0 || f.C || f.O {
		t.Fatalf("NEG(0) = %d flags=%+v, want 0, C=false O=false", value, f)
	}
}

func TestNegMinInt(t *testing.T) {
	value, f := Execute(OpNEG, 0x80000000, 0, Flags{})
	if value != 0x80000000 {
		t.Fatalf("NEG(INT_MIN) = 0x%08X, want 0x80000000", value)
	}
	if !f.O {
		t.Fatal("expected O=true for NEG(INT_MIN)")
	}
}

func TestShiftByZeroAndThirtyTwo(t *testing.T) {
	v0, f0 := Execute(OpSHL, 1, 0, Flags{})
	v32, f32 := Execute(OpSHL, 1, 32, Flags{})
	if v0 != 1 || f0.C {
		t.Fatalf("shift by 0: value=%d C=%v", v0, f0.C)
	}
	if v32 != 1 || f32.C {
		t.Fatalf("shift by 32 (mod 32 = 0): value=%d C=%v", v32, f32.C)
	}
}

func TestCmpFlagSemantics(t *testing.T) {
	// R1=5, R2=7: CMP R1,R2 -> E=0 NE=1 L=1 G=0 LE=1 GE=0 C=1 (borrow).
	value, f := Execute(OpCMP, 5, 7, Flags{})
	if value != 0 {
		t.Fatalf("CMP value = %d, want 0 (no register write)", value)
	}
	if f.E || !f.NE || !f.L || f.G || !f.LE || f.GE || !f.C {
		t.Fatalf("flags = %+v, want E=0 NE=1 L=1 G=0 LE=1 GE=0 C=1", f)
	}
}

func TestCmpDoesNotTouchBasicFlags(t *testing.T) {
	in := Flags{Z: true, S: true}
	_, f := Execute(OpCMP, 5, 7, in)
	if f.Z != true || f.S != true {
		t.Fatalf("CMP must not set Z/S; got Z=%v S=%v", f.Z, f.S)
	}
}

func TestNonCompareOpLeavesRelationalBitsAlone(t *testing.T) {
	in := Flags{E: true, L: true}
	_, f := Execute(OpADD, 1, 1, in)
	if !f.E || !f.L {
		t.Fatalf("ADD must leave relational bits untouched; got %+v", f)
	}
}

func TestSetzSetnz(t *testing.T) {
	zSet := Flags{Z: true}
	v, _ := Execute(OpSETZ, 0, 0, zSet)
	if v != 1 {
		t.Fatalf("SETZ with Z=1 -> %d, want 1", v)
	}
	v, _ = Execute(OpSETNZ, 0, 0, zSet)
	if v != 0 {
		t.Fatalf("SETNZ with Z=1 -> %d, want 0", v)
	}
}

func TestDeterminism(t *testing.T) {
	v1, f1 := Execute(OpADD, 3, 4, Flags{C: true})
	v2, f2 := Execute(OpADD, 3, 4, Flags{C: true})
	if v1 != v2 || f1 != f2 {
		t.Fatal("Execute is not deterministic")
	}
}
