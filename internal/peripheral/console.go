// Package peripheral provides AIZ32's example I/O-bus attachments:
// Console, Keyboard, a GPU port-claim stub, and a Lua-scripted
// peripheral. Grounded in original_source/aiz32emu/src/{console,keyboard,gpu}.rs
// for port ranges and protocol, restyled in the teacher's Go idiom
// (exported constructor, small claim-predicate struct).
//
// License: GPLv3 or later
package peripheral

import (
	"bufio"
	"io"
)

// Console ports, per SPEC_FULL.md §12.
const (
	ConsolePortOut = 0x00
	consolePortLo  = 0x00
	consolePortHi  = 0x03
)

// Console is a minimal character-output peripheral: writing a byte to
// ConsolePortOut emits it to the attached writer. Grounded in
// original_source/aiz32emu/src/console.rs.
type Console struct {
	w *bufio.Writer
}

// NewConsole wraps w for buffered byte-at-a-time output.
func NewConsole(w io.Writer) *Console {
	return &Console{w: bufio.NewWriter(w)}
}

func (c *Console) HandlesPort(port uint16) bool {
	return port >= consolePortLo && port <= consolePortHi
}

func (c *Console) Read(port uint16) uint32 {
	return 0
}

func (c *Console) Write(port uint16, value uint32) {
	if port != ConsolePortOut {
		return
	}
	c.w.WriteByte(byte(value))
	c.w.Flush()
}
