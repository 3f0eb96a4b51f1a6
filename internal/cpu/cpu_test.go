package cpu

import (
	"testing"

	"github.com/intuitionamiga/aiz32/internal/iobus"
	"github.com/intuitionamiga/aiz32/internal/isa"
)

// newTestCPU builds a CPU over ramSize bytes of RAM with no ROM, PC
// starting at 0 (so test programs can write directly to addresses the
// CPU will fetch from) and SP starting at ramSize — grounded in
// cpu_ie32_instruction_test.go's ie32TestRig helper shape.
func newTestCPU(ramSize uint32) *CPU {
	return New(NewMemory(ramSize, nil), iobus.New(), 0, ramSize)
}

func (c *CPU) loadWord(addr uint32, word uint32) {
	if err := c.Mem.Write32(addr, word); err != nil {
		panic(err)
	}
}

func TestRegisterZeroWriteSuppressed(t *testing.T) {
	c := newTestCPU(64)
	c.Regs.Set(0, 0xDEADBEEF)
	if v := c.Regs.Get(0); v != 0 {
		t.Fatalf("R0 = 0x%08X, want 0 (write suppressed)", v)
	}
}

func TestAddRegisterRegister(t *testing.T) {
	c := newTestCPU(64)
	c.Regs.Set(2, 10)
	c.Regs.Set(3, 5)
	c.loadWord(0, isa.EncodeR(isa.ADD, 1, 2, 3))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if v := c.Regs.Get(1); v != 15 {
		t.Fatalf("R1 = %d, want 15", v)
	}
	if c.Regs.PC() != 4 {
		t.Fatalf("PC = %d, want 4 (non-branch advances by 4)", c.Regs.PC())
	}
}

func TestAddiIsNotSignExtended(t *testing.T) {
	// SPEC_FULL.md §9's preserved Open Question: ADDI r,r,#-1 adds
	// 0x3FFF, not -1, because imm reaches the ALU zero-extended.
	c := newTestCPU(64)
	c.Regs.Set(1, 10)
	c.loadWord(0, isa.EncodeI(isa.ADDI, 1, 1, 0x3FFF)) // encodes -1 as 14-bit two's complement
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	want := uint32(10) + uint32(0x3FFF)
	if v := c.Regs.Get(1); v != want {
		t.Fatalf("R1 = %d, want %d (imm treated as 0x3FFF, not -1)", v, want)
	}
}

func TestConditionalBranchNotTakenAdvancesByFour(t *testing.T) {
	c := newTestCPU(64)
	c.loadWord(0, isa.EncodeJ(isa.JZ, 100)) // Z is false by default
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.PC() != 4 {
		t.Fatalf("PC = %d, want 4", c.Regs.PC())
	}
}

func TestForwardJumpTaken(t *testing.T) {
	c := newTestCPU(64)
	c.loadWord(0, isa.EncodeJ(isa.JMP, 3))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if want := uint32(0 + 4*3); c.Regs.PC() != want {
		t.Fatalf("PC = %d, want %d", c.Regs.PC(), want)
	}
}

func TestCallRet(t *testing.T) {
	// Starting SP=1024, PC=10: CALL offset=200 leaves SP=1020,
	// mem[1020]=PC+4=14 (PC is a byte address), PC=10+4*200=810.
	// RET restores PC=14, SP=1024.
	c := newTestCPU(2048)
	c.Regs.SetSP(1024)
	c.Regs.SetPC(10)
	c.loadWord(10, isa.EncodeJ(isa.CALL, 200))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.SP() != 1020 {
		t.Fatalf("SP = %d, want 1020", c.Regs.SP())
	}
	if c.Regs.PC() != 810 {
		t.Fatalf("PC = %d, want 810", c.Regs.PC())
	}
	retAddr, _ := c.Mem.Read32(1020)
	if retAddr != 14 {
		t.Fatalf("mem[1020] = %d, want 14", retAddr)
	}

	c.loadWord(810, isa.EncodeJ(isa.RET, 0))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.PC() != 14 || c.Regs.SP() != 1024 {
		t.Fatalf("after RET: PC=%d SP=%d, want PC=14 SP=1024", c.Regs.PC(), c.Regs.SP())
	}
}

func TestLoadSignExtension(t *testing.T) {
	c := newTestCPU(64)
	c.Mem.WriteByte(0, 0xAB)
	c.Regs.Set(1, 0)
	c.loadWord(4, isa.EncodeI(isa.LDB, 3, 1, 0))
	c.Regs.SetPC(4)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if v := c.Regs.Get(3); v != 0xFFFFFFAB {
		t.Fatalf("LDB = 0x%08X, want 0xFFFFFFAB", v)
	}

	c.loadWord(8, isa.EncodeI(isa.LDBU, 3, 1, 0))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if v := c.Regs.Get(3); v != 0x000000AB {
		t.Fatalf("LDBU = 0x%08X, want 0x000000AB", v)
	}
}

func TestHaltFreezesPC(t *testing.T) {
	c := newTestCPU(64)
	c.loadWord(8, isa.EncodeJ(isa.HALT, 0))
	c.Regs.SetPC(8)
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if !c.Halted {
		t.Fatal("expected Halted = true")
	}
	if c.Regs.PC() != 8 {
		t.Fatalf("PC = %d, want 8 (PC stays on HALT)", c.Regs.PC())
	}
	// Halted state is sticky: further Step calls are no-ops.
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.Regs.PC() != 8 {
		t.Fatal("Step after halt must be a no-op")
	}
}

func TestUnknownOpcodeFault(t *testing.T) {
	c := newTestCPU(64)
	c.loadWord(0, 0xFF000000)
	if err := c.Step(); err == nil {
		t.Fatal("expected fault for unknown opcode")
	}
}

func TestIOBusRoundTrip(t *testing.T) {
	c := newTestCPU(64)
	c.Regs.Set(1, 0x42)
	c.loadWord(0, isa.EncodeIO(isa.OUT, 7, 1))
	c.loadWord(4, isa.EncodeIO(isa.IN, 7, 2))
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if v := c.Regs.Get(2); v != 0x42 {
		t.Fatalf("IN after OUT = 0x%X, want 0x42", v)
	}
}
