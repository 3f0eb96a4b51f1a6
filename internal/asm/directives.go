package asm

import (
	"fmt"
	"os"
	"strings"
)

// SetIncludeDir sets the base directory .incbin paths are resolved
// against. Defaults to the current working directory.
func (a *Assembler) SetIncludeDir(dir string) { a.includeDir = dir }

// tryAsciiDirective recognizes an optionally-labeled ".ascii \"...\""
// line and pulls the string literal straight out of rawLine, before
// firstPass's normal tokenize() ever runs its ToUpper/comma-stripping
// pass over the line. .ascii is the one directive whose payload is
// case- and punctuation-sensitive text (e.g. for internal/peripheral's
// Console), so it cannot go through the same tokenizer as every other
// line — assembler/ie32asm.go avoids the same trap by extracting the
// quoted substring from the raw line rather than from tokenized
// fields, and this mirrors that.
func tryAsciiDirective(rawLine string) (label, text string, ok bool) {
	rest := strings.TrimLeft(rawLine, " \t")

	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		prefix := rest[:idx]
		if prefix != "" && !strings.ContainsAny(prefix, " \t.\"") {
			label = strings.ToUpper(prefix)
			rest = strings.TrimLeft(rest[idx+1:], " \t")
		}
	}

	const kw = ".ascii"
	if len(rest) < len(kw) || !strings.EqualFold(rest[:len(kw)], kw) {
		return "", "", false
	}
	rest = strings.TrimLeft(rest[len(kw):], " \t")
	if len(rest) == 0 || rest[0] != '"' {
		return "", "", false
	}
	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		return "", "", false
	}
	return label, rest[1 : 1+end], true
}

// packWords groups raw bytes into little-endian 32-bit words, zero-padding
// the final word if bytes isn't a multiple of 4. Data directives occupy
// whole instruction-unit slots (see the item doc comment in asm.go) so
// label-offset arithmetic stays exact in instruction units.
func packWords(data []byte) []uint32 {
	n := (len(data) + 3) / 4
	words := make([]uint32, n)
	for i, b := range data {
		words[i/4] |= uint32(b) << (8 * (i % 4))
	}
	return words
}

// handleDirective dispatches a data/include directive during the first
// pass, returning the words it produces (possibly none, for .equ/.org,
// which firstPass already special-cases before reaching here, and
// .ascii, which firstPass intercepts via tryAsciiDirective before
// tokenize() ever runs on the line).
// Grounded in assembler/ie32asm.go's handleDirective switch, semantics
// grounded in original_source/aiz32asm/src/parser.rs (SPEC_FULL.md §12).
func (a *Assembler) handleDirective(tokens []string) ([]uint32, error) {
	switch tokens[0] {
	case ".WORD":
		vals := tokens[1:]
		if len(vals) == 0 {
			return nil, fmt.Errorf(".word requires at least one value")
		}
		words := make([]uint32, len(vals))
		for i, t := range vals {
			v, err := a.resolveImmediate(t)
			if err != nil {
				return nil, err
			}
			words[i] = uint32(v)
		}
		return words, nil

	case ".BYTE":
		vals := tokens[1:]
		if len(vals) == 0 {
			return nil, fmt.Errorf(".byte requires at least one value")
		}
		data := make([]byte, len(vals))
		for i, t := range vals {
			v, err := a.resolveImmediate(t)
			if err != nil {
				return nil, err
			}
			data[i] = byte(v)
		}
		return packWords(data), nil

	case ".SPACE":
		if len(tokens) != 2 {
			return nil, fmt.Errorf(".space requires a byte count")
		}
		n, err := a.resolveImmediate(tokens[1])
		if err != nil {
			return nil, err
		}
		return make([]uint32, (n+3)/4), nil

	case ".INCBIN":
		if len(tokens) != 2 {
			return nil, fmt.Errorf(".incbin requires a path")
		}
		path := strings.Trim(tokens[1], `"`)
		if a.includeDir != "" {
			path = a.includeDir + "/" + path
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return packWords(data), nil

	default:
		return nil, fmt.Errorf("unknown directive %q", tokens[0])
	}
}

// isDirective does not list .ascii: that directive is recognized by
// tryAsciiDirective straight off the raw line, before tokenize() (and
// so before this function) ever sees it.
func isDirective(tok string) bool {
	switch tok {
	case ".WORD", ".BYTE", ".SPACE", ".INCBIN":
		return true
	}
	return false
}
