// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iap

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// Code is an IAP command code, word 0 of the command block.
type Code uint32

const (
	// CmdEEPROMWrite copies RAM to EEPROM.
	CmdEEPROMWrite Code = 61
	// CmdEEPROMRead copies EEPROM to RAM.
	CmdEEPROMRead Code = 62
)

// DefaultClock is the system clock handed to the ROM by the EEPROM
// commands. The ROM uses it for its programming timings.
const DefaultClock physic.Frequency = 46875 * physic.KiloHertz

// Status is the code returned in word 0 of the result block.
//
// Values match the LPC11Uxx ROM and must not be renumbered.
type Status uint32

const (
	Success                   Status = 0
	InvalidCommand            Status = 1
	SrcAddrError              Status = 2
	DstAddrError              Status = 3
	SrcAddrNotMapped          Status = 4
	DstAddrNotMapped          Status = 5
	CountError                Status = 6
	InvalidSector             Status = 7
	SectorNotBlank            Status = 8
	SectorNotPreparedForWrite Status = 9
	CompareError              Status = 10
	Busy                      Status = 11
	ParamError                Status = 12
	AddrError                 Status = 13
	AddrNotMapped             Status = 14
	CmdLocked                 Status = 15
	InvalidCode               Status = 16
	InvalidBaudRate           Status = 17
	InvalidStopBit            Status = 18
	CodeReadProtectionEnabled Status = 19
)

var statusNames = [...]string{
	Success:                   "CMD_SUCCESS",
	InvalidCommand:            "INVALID_COMMAND",
	SrcAddrError:              "SRC_ADDR_ERROR",
	DstAddrError:              "DST_ADDR_ERROR",
	SrcAddrNotMapped:          "SRC_ADDR_NOT_MAPPED",
	DstAddrNotMapped:          "DST_ADDR_NOT_MAPPED",
	CountError:                "COUNT_ERROR",
	InvalidSector:             "INVALID_SECTOR",
	SectorNotBlank:            "SECTOR_NOT_BLANK",
	SectorNotPreparedForWrite: "SECTOR_NOT_PREPARED_FOR_WRITE_OPERATION",
	CompareError:              "COMPARE_ERROR",
	Busy:                      "BUSY",
	ParamError:                "PARAM_ERROR",
	AddrError:                 "ADDR_ERROR",
	AddrNotMapped:             "ADDR_NOT_MAPPED",
	CmdLocked:                 "CMD_LOCKED",
	InvalidCode:               "INVALID_CODE",
	InvalidBaudRate:           "INVALID_BAUD_RATE",
	InvalidStopBit:            "INVALID_STOP_BIT",
	CodeReadProtectionEnabled: "CODE_READ_PROTECTION_ENABLED",
}

// String returns the name used by the vendor headers.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint32(s))
}

// NotMapped reports whether s says that an address is outside the memory
// map.
func (s Status) NotMapped() bool {
	return s == SrcAddrNotMapped || s == DstAddrNotMapped || s == AddrNotMapped
}

// Command is the parameter block passed to the IAP entry point.
type Command [5]uint32

// NewCommand returns a command block for code with up to four parameters.
func NewCommand(code Code, params ...uint32) Command {
	var c Command
	c[0] = uint32(code)
	copy(c[1:], params)
	return c
}

// Code returns the command code.
func (c *Command) Code() Code {
	return Code(c[0])
}

// Result is the result block filled by the IAP entry point.
type Result [4]uint32

// Status returns the status code in word 0.
func (r *Result) Status() Status {
	return Status(r[0])
}

// Entry is the IAP ROM entry point.
//
// Call runs cmd to completion and fills res. The returned error only reports
// a failure to reach the ROM; the outcome of the command itself is in res.
type Entry interface {
	Call(cmd *Command, res *Result) error
}

// Target is a microcontroller whose IAP entry point can be invoked and whose
// RAM can be accessed to stage the buffers named in a command block.
type Target interface {
	Entry
	// ReadRAM reads len(b) bytes of target RAM at addr.
	ReadRAM(addr uint32, b []byte) error
	// WriteRAM writes b to target RAM at addr.
	WriteRAM(addr uint32, b []byte) error
}

// StatusError is returned by helpers that convert a ROM status into an
// error.
type StatusError struct {
	Op     string
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("iap: %s failed with status %d (%s)", e.Op, uint32(e.Status), e.Status)
}

// Check returns nil if s is Success and a *StatusError otherwise.
func Check(op string, s Status) error {
	if s == Success {
		return nil
	}
	return &StatusError{Op: op, Status: s}
}

// ClockKHz returns f in kHz, the unit of the clock word.
func ClockKHz(f physic.Frequency) uint32 {
	return uint32(f / physic.KiloHertz)
}
