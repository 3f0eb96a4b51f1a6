// Package machine wires a cpu.CPU, its memory, and its I/O-bus
// peripherals into one runnable unit, and supplies the goroutine-safety
// boundary SPEC_FULL.md §5 describes: Step is serialized under a
// sync.RWMutex the way the teacher's cpu_ie32.go guards register/memory
// state against its real-time audio goroutines.
//
// License: GPLv3 or later
package machine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/aiz32/internal/cpu"
	"github.com/intuitionamiga/aiz32/internal/iobus"
	"github.com/intuitionamiga/aiz32/internal/logx"
)

// Shutdowner is implemented by peripherals that hold resources needing
// an orderly close (an open Lua interpreter, a file handle). Peripherals
// that don't need cleanup simply don't implement it.
type Shutdowner interface {
	Close() error
}

// Machine bundles a CPU with its I/O bus and tracks attached peripherals
// for teardown.
type Machine struct {
	mu  sync.RWMutex
	CPU *cpu.CPU
	IO  *iobus.Bus
}

// New constructs a Machine with ramSize bytes of RAM, rom loaded at the
// RAM/ROM boundary, and the given initial SP/PC.
func New(ramSize uint32, rom []byte, initialSP, initialPC uint32) *Machine {
	io := iobus.New()
	mem := cpu.NewMemory(ramSize, rom)
	return &Machine{
		CPU: cpu.New(mem, io, initialPC, initialSP),
		IO:  io,
	}
}

// Attach registers a peripheral on the I/O bus. Must be called before
// Step/Run, per SPEC_FULL.md §3's "no runtime registration".
func (m *Machine) Attach(p iobus.Peripheral) {
	m.IO.Attach(p)
}

// Step executes exactly one instruction, serialized against concurrent
// peripheral-input delivery from other goroutines (e.g. a Keyboard.Push
// call from a UI goroutine).
func (m *Machine) Step() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.CPU.Step()
	if err != nil {
		logx.Fault(m.CPU.Regs.PC(), err)
	}
	return err
}

// Run steps until halted or faulted.
func (m *Machine) Run() error {
	for !m.CPU.Halted {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// WithPeripherals runs fn while holding the write lock, for operations
// that need to mutate peripheral state between steps (keyboard input
// delivery, a debug-monitor memory poke) without racing Step.
func (m *Machine) WithPeripherals(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// Shutdown closes every attached peripheral that implements Shutdowner,
// concurrently, grounded in the teacher's reliance on golang.org/x/sync
// (transitively, via x/term) for its own teardown fan-out
// (SPEC_FULL.md §11).
func (m *Machine) Shutdown(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	for _, p := range m.IO.Peripherals() {
		if s, ok := p.(Shutdowner); ok {
			g.Go(s.Close)
		}
	}
	return g.Wait()
}
