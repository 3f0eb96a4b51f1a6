package debug

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// StepOnKeypress puts stdin into raw mode and executes one instruction
// per keypress until 'q' is pressed or the machine halts — a quick
// single-key stepping mode, grounded in the teacher's debug_monitor.go
// use of golang.org/x/term for interactive raw-mode input
// (SPEC_FULL.md §11).
func (mon *Monitor) StepOnKeypress() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("debug: stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	fmt.Fprintln(mon.out, "press any key to step, q to quit")
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}
		if buf[0] == 'q' {
			return nil
		}
		if mon.m.CPU.Halted {
			fmt.Fprintln(mon.out, "\r\nhalted")
			return nil
		}
		if err := mon.m.Step(); err != nil {
			fmt.Fprintf(mon.out, "\r\nfault: %v\r\n", err)
			return nil
		}
		fmt.Fprintf(mon.out, "\r\nPC=0x%08X", mon.m.CPU.Regs.PC())
	}
}
