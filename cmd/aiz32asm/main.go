// cmd/aiz32asm is the AIZ32 assembler CLI: asm <input.asm> <output.bin>
// [--raw]. Grounded in oisee-z80-optimizer's cobra-based CLI shape
// (SPEC_FULL.md §10.3), contract grounded in
// original_source/aiz32asm/src/main.rs (the .rawhex/.rawbin sidecar
// files are derived from the INPUT file's stem, per SPEC_FULL.md §12).
//
// License: GPLv3 or later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/intuitionamiga/aiz32/internal/asm"
	"github.com/intuitionamiga/aiz32/internal/logx"
)

func main() {
	var raw, verbose bool

	root := &cobra.Command{
		Use:   "aiz32asm <input.asm> <output.bin>",
		Short: "Assemble AIZ32 source into a binary instruction image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], raw)
		},
	}
	root.Flags().BoolVar(&raw, "raw", false, "also emit <input-stem>.rawhex and <input-stem>.rawbin")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a stack trace alongside fatal errors")

	if err := root.Execute(); err != nil {
		logx.Log.WithError(err).Error("assembly failed")
		if verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", errors.WithStack(err))
		}
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, raw bool) error {
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	a := asm.New()
	a.SetIncludeDir(filepath.Dir(inputPath))
	words, err := a.Assemble(string(src))
	if err != nil {
		return errors.Wrap(err, "assemble")
	}

	if err := os.WriteFile(outputPath, asm.ToBinary(words), 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	fmt.Printf("wrote %s (%d words)\n", outputPath, len(words))

	if raw {
		stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		if err := os.WriteFile(stem+".rawhex", []byte(asm.ToRawHex(words)), 0o644); err != nil {
			return errors.Wrap(err, "write rawhex")
		}
		if err := os.WriteFile(stem+".rawbin", []byte(asm.ToRawBin(words)), 0o644); err != nil {
			return errors.Wrap(err, "write rawbin")
		}
		fmt.Printf("wrote %s.rawhex, %s.rawbin\n", stem, stem)
	}
	return nil
}
