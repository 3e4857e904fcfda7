// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package eeprom

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// WordSize is the width of a word in a dump, in bits.
type WordSize int

const (
	Word8  WordSize = 8
	Word16 WordSize = 16
	Word32 WordSize = 32
)

// wordsPerLine is the number of words printed after each offset prefix.
const wordsPerLine = 8

// Valid reports whether ws is one of the supported widths.
func (ws WordSize) Valid() bool {
	return ws == Word8 || ws == Word16 || ws == Word32
}

// Bytes returns the number of bytes in a word.
func (ws WordSize) Bytes() int {
	return int(ws) / 8
}

// Dump writes data, read from EEPROM offset, as rows of eight hexadecimal
// words each prefixed with its offset:
//
//	\r\n00000000: FFFF FFFF FFFF FFFF FFFF FFFF FFFF FFFF \r\n
//
// Words are decoded little endian. len(data) must be a multiple of the word
// size.
func Dump(w io.Writer, offset uint32, data []byte, ws WordSize) error {
	if !ws.Valid() {
		return fmt.Errorf("eeprom: unsupported word size %d", int(ws))
	}
	step := ws.Bytes()
	if len(data)%step != 0 {
		return fmt.Errorf("eeprom: %d bytes is not a whole number of %d-bit words", len(data), int(ws))
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < len(data); i += step {
		if (i/step)%wordsPerLine == 0 {
			fmt.Fprintf(bw, "\r\n%08X: ", offset+uint32(i))
		}
		switch ws {
		case Word8:
			fmt.Fprintf(bw, "%02X ", data[i])
		case Word16:
			fmt.Fprintf(bw, "%04X ", binary.LittleEndian.Uint16(data[i:]))
		case Word32:
			fmt.Fprintf(bw, "%08X ", binary.LittleEndian.Uint32(data[i:]))
		}
	}
	bw.WriteString("\r\n")
	return bw.Flush()
}
