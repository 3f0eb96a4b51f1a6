package cpu

import "fmt"

// MemFault reports a fatal memory-bus violation: a write above the RAM
// boundary, or a read/write past the end of the addressable space.
// Memory violations are fatal per SPEC_FULL.md §7.
type MemFault struct {
	Addr  uint32
	Write bool
	Msg   string
}

func (e *MemFault) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("memory: %s fault at 0x%08X: %s", dir, e.Addr, e.Msg)
}

// Memory is the unified flat address space: addresses below ramSize are
// RAM (read/write); addresses in [ramSize, ramSize+len(rom)) are ROM
// (read-only). Grounded in the teacher's machine_bus.go bus-with-regions
// shape, simplified to AIZ32's two-region split
// (original_source/aiz32core/src/memory.rs's RAM/ROM/MemoryBus).
type Memory struct {
	ram     []byte
	rom     []byte
	ramSize uint32
}

// NewMemory allocates a Memory with ramSize bytes of RAM and rom as the
// ROM image (copied, loaded starting at absolute address ramSize).
func NewMemory(ramSize uint32, rom []byte) *Memory {
	m := &Memory{
		ram:     make([]byte, ramSize),
		rom:     make([]byte, len(rom)),
		ramSize: ramSize,
	}
	copy(m.rom, rom)
	return m
}

// RAMSize returns the RAM/ROM boundary address.
func (m *Memory) RAMSize() uint32 { return m.ramSize }

// ROMSize returns the length of the ROM image.
func (m *Memory) ROMSize() uint32 { return uint32(len(m.rom)) }

func (m *Memory) byteAt(addr uint32, write bool) (*byte, error) {
	if addr < m.ramSize {
		return &m.ram[addr], nil
	}
	romOff := addr - m.ramSize
	if romOff >= uint32(len(m.rom)) {
		return nil, &MemFault{Addr: addr, Write: write, Msg: "out of bounds"}
	}
	if write {
		return nil, &MemFault{Addr: addr, Write: true, Msg: "cannot write to ROM"}
	}
	return &m.rom[romOff], nil
}

// ReadByte reads a single byte. Fatal (returns a *MemFault) past the end
// of RAM+ROM.
func (m *Memory) ReadByte(addr uint32) (byte, error) {
	p, err := m.byteAt(addr, false)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// WriteByte writes a single byte. Fatal on any address >= ramSize
// (the ROM region), per SPEC_FULL.md §4.4.
func (m *Memory) WriteByte(addr uint32, v byte) error {
	p, err := m.byteAt(addr, true)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Read16 and Read32 decompose into little-endian ReadByte calls
// (no alignment requirement is enforced, per SPEC_FULL.md §3).
func (m *Memory) Read16(addr uint32) (uint16, error) {
	lo, err := m.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (m *Memory) Read32(addr uint32) (uint32, error) {
	var v uint32
	for i := uint32(0); i < 4; i++ {
		b, err := m.ReadByte(addr + i)
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << (8 * i)
	}
	return v, nil
}

func (m *Memory) Write16(addr uint32, v uint16) error {
	if err := m.WriteByte(addr, byte(v)); err != nil {
		return err
	}
	return m.WriteByte(addr+1, byte(v>>8))
}

func (m *Memory) Write32(addr uint32, v uint32) error {
	for i := uint32(0); i < 4; i++ {
		if err := m.WriteByte(addr+i, byte(v>>(8*i))); err != nil {
			return err
		}
	}
	return nil
}
