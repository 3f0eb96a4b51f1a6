package asm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ToBinary concatenates words as little-endian 32-bit values, no header
// (SPEC_FULL.md §6 "Binary program file").
func ToBinary(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// ToRawHex renders one line per word, big-endian hex text — the byte
// order is reversed relative to the little-endian wire bytes, so the
// text reads as the numeric word value (SPEC_FULL.md §4.7).
func ToRawHex(words []uint32) string {
	var b strings.Builder
	for _, w := range words {
		fmt.Fprintf(&b, "%08X\n", w)
	}
	return b.String()
}

// ToRawBin renders one line per word: the 4 little-endian bytes of the
// word, each printed as 8 binary digits, concatenated (not reversed).
func ToRawBin(words []uint32) string {
	var b strings.Builder
	for _, w := range words {
		var lebytes [4]byte
		binary.LittleEndian.PutUint32(lebytes[:], w)
		for _, by := range lebytes {
			fmt.Fprintf(&b, "%08b", by)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
