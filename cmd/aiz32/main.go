// cmd/aiz32 is the AIZ32 emulator CLI: load a binary program image into
// ROM and run or step it, optionally dropping into the debug monitor.
// Grounded in oisee-z80-optimizer's cobra command-tree shape
// (SPEC_FULL.md §10.3) and the teacher's main.go entrypoint
// conventions.
//
// License: GPLv3 or later
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/intuitionamiga/aiz32/internal/debug"
	"github.com/intuitionamiga/aiz32/internal/logx"
	"github.com/intuitionamiga/aiz32/internal/machine"
	"github.com/intuitionamiga/aiz32/internal/peripheral"
)

const defaultRAMSize = 1 << 20 // 1 MiB

func main() {
	var ramSize uint32
	var logFormat string
	var verbose bool

	root := &cobra.Command{
		Use:   "aiz32",
		Short: "AIZ32 virtual CPU emulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logFormat == "json" {
				logx.UseJSON()
			}
		},
	}
	root.PersistentFlags().Uint32Var(&ramSize, "ram", defaultRAMSize, "RAM size in bytes")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print a stack trace alongside fatal errors")

	root.AddCommand(runCmd(&ramSize), stepCmd(&ramSize), monitorCmd(&ramSize))

	if err := root.Execute(); err != nil {
		logx.Log.WithError(err).Error("aiz32 failed")
		if verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", errors.WithStack(err))
		}
		os.Exit(1)
	}
}

func loadMachine(path string, ramSize uint32) (*machine.Machine, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load program image")
	}
	m := machine.New(ramSize, rom, ramSize, ramSize)
	m.Attach(peripheral.NewConsole(os.Stdout))
	m.Attach(peripheral.NewKeyboard())
	m.Attach(peripheral.NewGPU())
	return m, nil
}

func runCmd(ramSize *uint32) *cobra.Command {
	return &cobra.Command{
		Use:   "run <program.bin>",
		Short: "Run a program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0], *ramSize)
			if err != nil {
				return err
			}
			return errors.Wrap(m.Run(), "run")
		},
	}
}

func stepCmd(ramSize *uint32) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "step <program.bin>",
		Short: "Execute a fixed number of instructions and print PC, SP and flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0], *ramSize)
			if err != nil {
				return err
			}
			mon := debug.New(m, os.Stdout)
			for i := 0; i < n && !m.CPU.Halted; i++ {
				if err := m.Step(); err != nil {
					return errors.Wrapf(err, "step %d", i)
				}
			}
			for _, r := range mon.Registers() {
				if r.Group == "special" {
					cmd.Printf("%-6s = 0x%08X\n", r.Name, r.Value)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "count", 1, "number of instructions to execute")
	return cmd
}

func monitorCmd(ramSize *uint32) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor <program.bin>",
		Short: "Load a program and drop into the interactive debug monitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0], *ramSize)
			if err != nil {
				return err
			}
			mon := debug.New(m, os.Stdout)
			return errors.Wrap(mon.RunREPL(os.Stdin), "monitor")
		},
	}
}
