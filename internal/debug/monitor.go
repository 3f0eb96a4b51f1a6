// Package debug implements a line-oriented monitor REPL over a running
// machine.Machine: step/run, register dump, memory inspection,
// disassembly, and a clipboard copy command. Grounded structurally in the teacher's
// debug_monitor.go / debug_commands.go command-dispatch shape,
// restyled around AIZ32's simpler register/memory model
// (SPEC_FULL.md §10.4, §11).
//
// License: GPLv3 or later
package debug

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.design/x/clipboard"

	"github.com/intuitionamiga/aiz32/internal/isa"
	"github.com/intuitionamiga/aiz32/internal/machine"
)

// RegisterInfo describes a single register for monitor display,
// grounded in the teacher's debug_interface.go RegisterInfo struct.
type RegisterInfo struct {
	Name  string
	Value uint32
	Group string // "int", "float", "special"
}

// Monitor is the command dispatcher for the REPL.
type Monitor struct {
	m   *machine.Machine
	out io.Writer
}

// New returns a Monitor driving m, writing REPL output to out.
func New(m *machine.Machine, out io.Writer) *Monitor {
	return &Monitor{m: m, out: out}
}

// Registers snapshots the integer register file plus PC/SP/flags for
// display, grounded in debug_interface.go's RegisterInfo usage.
func (mon *Monitor) Registers() []RegisterInfo {
	regs := mon.m.CPU.Regs
	infos := make([]RegisterInfo, 0, 35)
	for i := 0; i < 32; i++ {
		infos = append(infos, RegisterInfo{Name: fmt.Sprintf("R%d", i), Value: regs.Get(uint8(i)), Group: "int"})
	}
	infos = append(infos,
		RegisterInfo{Name: "PC", Value: regs.PC(), Group: "special"},
		RegisterInfo{Name: "SP", Value: regs.SP(), Group: "special"},
		RegisterInfo{Name: "FLAGS", Value: regs.FlagsWord(), Group: "special"},
	)
	return infos
}

// RunREPL reads commands from in until "quit" or EOF. Commands:
//
//	step [n]       execute n instructions (default 1)
//	run            execute until halted or faulted
//	regs           print the register file
//	mem <addr>     print the 32-bit word at addr
//	disasm <addr> <n>  disassemble n words starting at addr
//	copy           copy the current register dump to the system clipboard
//	quit
func (mon *Monitor) RunREPL(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(mon.out, "aiz32> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "step":
			n := 1
			if len(fields) > 1 {
				n, _ = strconv.Atoi(fields[1])
			}
			for i := 0; i < n && !mon.m.CPU.Halted; i++ {
				if err := mon.m.Step(); err != nil {
					fmt.Fprintln(mon.out, "fault:", err)
					break
				}
			}
		case "run":
			if err := mon.m.Run(); err != nil {
				fmt.Fprintln(mon.out, "fault:", err)
			}
		case "regs":
			mon.printRegisters()
		case "mem":
			if len(fields) != 2 {
				fmt.Fprintln(mon.out, "usage: mem <addr>")
				continue
			}
			addr, err := strconv.ParseUint(fields[1], 0, 32)
			if err != nil {
				fmt.Fprintln(mon.out, "bad address:", err)
				continue
			}
			v, err := mon.m.CPU.Mem.Read32(uint32(addr))
			if err != nil {
				fmt.Fprintln(mon.out, "fault:", err)
				continue
			}
			fmt.Fprintf(mon.out, "[0x%08X] = 0x%08X\n", addr, v)
		case "disasm":
			mon.cmdDisasm(fields)
		case "copy":
			mon.copyRegistersToClipboard()
		default:
			fmt.Fprintln(mon.out, "unknown command:", fields[0])
		}
	}
}

func (mon *Monitor) printRegisters() {
	for _, r := range mon.Registers() {
		fmt.Fprintf(mon.out, "%-6s = 0x%08X\n", r.Name, r.Value)
	}
}

func (mon *Monitor) cmdDisasm(fields []string) {
	if len(fields) != 3 {
		fmt.Fprintln(mon.out, "usage: disasm <addr> <n>")
		return
	}
	addr, err1 := strconv.ParseUint(fields[1], 0, 32)
	n, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(mon.out, "bad arguments")
		return
	}
	for i := 0; i < n; i++ {
		a := uint32(addr) + uint32(i)*4
		word, err := mon.m.CPU.Mem.Read32(a)
		if err != nil {
			fmt.Fprintln(mon.out, "fault:", err)
			return
		}
		inst, err := isa.Decode(word)
		if err != nil {
			fmt.Fprintf(mon.out, "0x%08X: <bad opcode 0x%08X>\n", a, word)
			continue
		}
		fmt.Fprintf(mon.out, "0x%08X: %s\n", a, Disassemble(inst))
	}
}

// copyRegistersToClipboard repoints the teacher's golang.design/x/clipboard
// dependency from its original GUI-paste use onto the one text surface
// this core keeps (SPEC_FULL.md §11).
func (mon *Monitor) copyRegistersToClipboard() {
	if err := clipboard.Init(); err != nil {
		fmt.Fprintln(mon.out, "clipboard unavailable:", err)
		return
	}
	var b strings.Builder
	for _, r := range mon.Registers() {
		fmt.Fprintf(&b, "%-6s = 0x%08X\n", r.Name, r.Value)
	}
	clipboard.Write(clipboard.FmtText, []byte(b.String()))
	fmt.Fprintln(mon.out, "register dump copied to clipboard")
}
