package cpu

import "testing"

func TestRAMReadWrite(t *testing.T) {
	m := NewMemory(16, []byte{0xAA, 0xBB})
	if err := m.Write32(0, 0x12345678); err != nil {
		t.Fatal(err)
	}
	v, err := m.Read32(0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x12345678 {
		t.Fatalf("read = 0x%08X, want 0x12345678", v)
	}
}

func TestLittleEndian(t *testing.T) {
	m := NewMemory(16, nil)
	m.Write32(0, 0x01020304)
	b0, _ := m.ReadByte(0)
	b3, _ := m.ReadByte(3)
	if b0 != 0x04 || b3 != 0x01 {
		t.Fatalf("bytes = [%02X ... %02X], want [04 ... 01] (little-endian)", b0, b3)
	}
}

func TestWriteToROMFails(t *testing.T) {
	m := NewMemory(16, []byte{0, 0, 0, 0})
	if err := m.WriteByte(16, 0xFF); err == nil {
		t.Fatal("expected fault writing to ROM")
	}
}

func TestReadPastEndFails(t *testing.T) {
	m := NewMemory(4, []byte{1, 2, 3, 4})
	if _, err := m.ReadByte(8); err == nil {
		t.Fatal("expected fault reading past ROM end")
	}
}

func TestROMInvariance(t *testing.T) {
	rom := []byte{1, 2, 3, 4}
	m := NewMemory(16, rom)
	m.Write32(0, 0xFFFFFFFF)
	m.WriteByte(15, 0xFF)
	for i, want := range rom {
		got, err := m.ReadByte(uint32(16 + i))
		if err != nil || got != want {
			t.Fatalf("ROM byte %d = %v (err %v), want %d", i, got, err, want)
		}
	}
}
