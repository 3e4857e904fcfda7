// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package iaptest is meant to be used to test drivers over a fake IAP ROM.
package iaptest

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/iapeeprom/iap"
)

const (
	// EEPROMSize is the EEPROM size of the LPC11U24 and LPC11U35.
	EEPROMSize = 4096
	// RAMBase is the start of the main SRAM block.
	RAMBase uint32 = 0x10000000
	// RAMSize is the main SRAM size of the LPC11U24.
	RAMSize = 8192
)

// Sim simulates the EEPROM commands of an LPC11Uxx IAP ROM.
//
// It implements iap.Target. The EEPROM starts erased (all 0xFF).
type Sim struct {
	sync.Mutex
	EEPROM  []byte
	RAMBase uint32
	RAM     []byte
	// Calls lists every command block received, in order.
	Calls []iap.Command
}

// NewSim returns a Sim with the LPC11U24 memory layout.
func NewSim() *Sim {
	s := &Sim{
		EEPROM:  make([]byte, EEPROMSize),
		RAMBase: RAMBase,
		RAM:     make([]byte, RAMSize),
	}
	for i := range s.EEPROM {
		s.EEPROM[i] = 0xFF
	}
	return s
}

func (s *Sim) String() string {
	return "sim"
}

// Call implements iap.Entry.
func (s *Sim) Call(cmd *iap.Command, res *iap.Result) error {
	s.Lock()
	defer s.Unlock()
	s.Calls = append(s.Calls, *cmd)
	*res = iap.Result{}
	res[0] = uint32(s.run(cmd))
	return nil
}

func (s *Sim) run(cmd *iap.Command) iap.Status {
	switch cmd.Code() {
	case iap.CmdEEPROMRead, iap.CmdEEPROMWrite:
	default:
		return iap.InvalidCommand
	}
	offset, addr, n, clk := cmd[1], cmd[2], cmd[3], cmd[4]
	if clk == 0 {
		return iap.ParamError
	}
	ee, eeOK := window(0, len(s.EEPROM), offset, n)
	ram, ramOK := window(s.RAMBase, len(s.RAM), addr, n)
	if cmd.Code() == iap.CmdEEPROMRead {
		if !eeOK {
			return iap.SrcAddrNotMapped
		}
		if !ramOK {
			return iap.DstAddrNotMapped
		}
		copy(s.RAM[ram:ram+int(n)], s.EEPROM[ee:ee+int(n)])
		return iap.Success
	}
	if !ramOK {
		return iap.SrcAddrNotMapped
	}
	if !eeOK {
		return iap.DstAddrNotMapped
	}
	copy(s.EEPROM[ee:ee+int(n)], s.RAM[ram:ram+int(n)])
	return iap.Success
}

// ReadRAM implements iap.Target.
func (s *Sim) ReadRAM(addr uint32, b []byte) error {
	s.Lock()
	defer s.Unlock()
	i, ok := window(s.RAMBase, len(s.RAM), addr, uint32(len(b)))
	if !ok {
		return fmt.Errorf("iaptest: RAM read 0x%08X+%d out of range", addr, len(b))
	}
	copy(b, s.RAM[i:])
	return nil
}

// WriteRAM implements iap.Target.
func (s *Sim) WriteRAM(addr uint32, b []byte) error {
	s.Lock()
	defer s.Unlock()
	i, ok := window(s.RAMBase, len(s.RAM), addr, uint32(len(b)))
	if !ok {
		return fmt.Errorf("iaptest: RAM write 0x%08X+%d out of range", addr, len(b))
	}
	copy(s.RAM[i:], b)
	return nil
}

// window returns the index of [addr, addr+n) inside a region of size bytes
// mapped at base.
func window(base uint32, size int, addr, n uint32) (int, bool) {
	if addr < base {
		return 0, false
	}
	start := uint64(addr - base)
	if start+uint64(n) > uint64(size) {
		return 0, false
	}
	return int(start), true
}

// Record wraps a Target and records every command block.
type Record struct {
	sync.Mutex
	Target iap.Target
	Calls  []iap.Command
}

func (r *Record) String() string {
	return "record"
}

// Call implements iap.Entry.
func (r *Record) Call(cmd *iap.Command, res *iap.Result) error {
	r.Lock()
	r.Calls = append(r.Calls, *cmd)
	r.Unlock()
	if r.Target == nil {
		res[0] = uint32(iap.Success)
		return nil
	}
	return r.Target.Call(cmd, res)
}

// ReadRAM implements iap.Target.
func (r *Record) ReadRAM(addr uint32, b []byte) error {
	if r.Target == nil {
		return nil
	}
	return r.Target.ReadRAM(addr, b)
}

// WriteRAM implements iap.Target.
func (r *Record) WriteRAM(addr uint32, b []byte) error {
	if r.Target == nil {
		return nil
	}
	return r.Target.WriteRAM(addr, b)
}

var _ iap.Target = &Sim{}
var _ iap.Target = &Record{}
