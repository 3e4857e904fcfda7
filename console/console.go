// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console implements the EEPROM commands of the board's serial
// console.
//
// Handlers follow the firmware convention: args[0] is the command name and
// the return value is the command's exit code. Text uses "\r\n" line endings
// as it is meant for a serial terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/iapeeprom/eeprom"
	"github.com/GermanBionicSystems/iapeeprom/iap"
)

// Handler is a console command.
type Handler func(w io.Writer, args []string) int

// Reader is the part of eeprom.Dev used by Dump.
type Reader interface {
	Read(offset uint32, b []byte) (iap.Status, error)
}

// NotImplemented returns a handler that only reports that name is not
// available. It succeeds whatever the arguments.
func NotImplemented(name string) Handler {
	return func(w io.Writer, args []string) int {
		fmt.Fprintf(w, "%s not implemented yet!\n", name)
		return 0
	}
}

// Dump returns the "e word_size hex_offset num_words" handler.
//
// It reads num_words words of word_size bits (8, 16 or 32) starting at
// hex_offset with a single read and prints them with eeprom.Dump.
func Dump(r Reader) Handler {
	return func(w io.Writer, args []string) int {
		ws, offset, n, err := parseDumpArgs(args)
		if err != nil {
			fmt.Fprint(w, "\r\nUsage: e word_size hex_offset num_words\r\n")
			return 1
		}
		if !ws.Valid() {
			fmt.Fprintf(w, "\r\nUnsupported word size %d\r\n", int(ws))
			return 1
		}
		fmt.Fprintf(w, "\r\nReading %d %d-bit words starting at 0x%X in EEPROM\r\n", n, int(ws), offset)
		data := make([]byte, n*uint64(ws.Bytes()))
		s, err := r.Read(offset, data)
		if err != nil {
			fmt.Fprintf(w, "\r\nEEPROM Read failed: %v\r\n", err)
			return 1
		}
		if s != iap.Success {
			fmt.Fprintf(w, "\r\nEEPROM Read failed with error code %d (%s)\r\n", uint32(s), s)
			return 1
		}
		if err := eeprom.Dump(w, offset, data, ws); err != nil {
			return 1
		}
		return 0
	}
}

// parseDumpArgs parses "e word_size hex_offset num_words". Extra arguments
// are ignored.
func parseDumpArgs(args []string) (eeprom.WordSize, uint32, uint64, error) {
	if len(args) < 4 {
		return 0, 0, 0, fmt.Errorf("expected 3 arguments, got %d", len(args)-1)
	}
	ws, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, 0, err
	}
	offset, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(args[2]), "0x"), 16, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	n, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	if w := eeprom.WordSize(ws); w.Valid() && n*uint64(w.Bytes()) > math.MaxUint32 {
		return 0, 0, 0, errors.New("span exceeds the address space")
	}
	return eeprom.WordSize(ws), uint32(offset), n, nil
}

// Table maps command names to handlers.
type Table map[string]Handler

// Run splits line on white space and runs the matching handler.
func (t Table) Run(w io.Writer, line string) int {
	args := strings.Fields(line)
	if len(args) == 0 {
		return 0
	}
	h, ok := t[args[0]]
	if !ok {
		fmt.Fprintf(w, "unknown command %q\r\n", args[0])
		return 1
	}
	return h(w, args)
}

// Names returns the registered command names, sorted.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Commands returns the EEPROM commands of the board: "eeprom" is reserved
// and not implemented, "e" dumps EEPROM contents.
func Commands(r Reader) Table {
	return Table{
		"eeprom": NotImplemented("eeprom"),
		"e":      Dump(r),
	}
}
