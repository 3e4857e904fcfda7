// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// I2CAddr is the default I²C address of the IAP bridge firmware.
const I2CAddr uint16 = 0x2C

// DefaultMaxTransfer is the largest RAM payload moved in one transaction.
const DefaultMaxTransfer = 64

// Mailbox opcodes, the first byte of every write.
const (
	opCall     byte = 0x01
	opReadRAM  byte = 0x02
	opWriteRAM byte = 0x03
)

const (
	commandSize = 4 * len(Command{})
	resultSize  = 4 * len(Result{})
)

// ErrTransfer is returned when a RAM transfer is larger than the mailbox can
// describe.
var ErrTransfer = errors.New("iap: transfer too large")

// Bridge is a Target reached through a mailbox running on the target.
//
// Every request is a single Tx on the underlying connection:
//
//	call:      W = 0x01 cmd[20]           R = result[16]
//	read RAM:  W = 0x02 addr[4] len[2]    R = data[len]
//	write RAM: W = 0x03 addr[4] data...
//
// Multi-byte fields are little endian, matching the Cortex-M0 word layout.
type Bridge struct {
	c           conn.Conn
	mu          sync.Mutex
	maxTransfer int
}

// New returns a Bridge using c.
//
// maxTransfer bounds the RAM payload per transaction; 0 selects
// DefaultMaxTransfer.
func New(c conn.Conn, maxTransfer int) (*Bridge, error) {
	if maxTransfer < 0 || maxTransfer > 0xFFFF {
		return nil, fmt.Errorf("iap: invalid max transfer %d", maxTransfer)
	}
	if maxTransfer == 0 {
		maxTransfer = DefaultMaxTransfer
	}
	return &Bridge{c: c, maxTransfer: maxTransfer}, nil
}

// NewI2C returns a Bridge talking to the mailbox over I²C.
//
// The default address is iap.I2CAddr.
func NewI2C(b i2c.Bus, addr uint16) (*Bridge, error) {
	return New(&i2c.Dev{Bus: b, Addr: addr}, 0)
}

// Call implements Entry.
func (b *Bridge) Call(cmd *Command, res *Result) error {
	w := make([]byte, 1+commandSize)
	w[0] = opCall
	for i, v := range cmd {
		binary.LittleEndian.PutUint32(w[1+4*i:], v)
	}
	r := make([]byte, resultSize)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.c.Tx(w, r); err != nil {
		return fmt.Errorf("iap: call %d: %w", cmd[0], err)
	}
	for i := range res {
		res[i] = binary.LittleEndian.Uint32(r[4*i:])
	}
	return nil
}

// ReadRAM implements Target.
func (b *Bridge) ReadRAM(addr uint32, p []byte) error {
	if uint64(addr)+uint64(len(p)) > 1<<32 {
		return ErrTransfer
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(p) > 0 {
		n := min(len(p), b.maxTransfer)
		w := make([]byte, 7)
		w[0] = opReadRAM
		binary.LittleEndian.PutUint32(w[1:], addr)
		binary.LittleEndian.PutUint16(w[5:], uint16(n))
		if err := b.c.Tx(w, p[:n]); err != nil {
			return fmt.Errorf("iap: read RAM 0x%08X: %w", addr, err)
		}
		addr += uint32(n)
		p = p[n:]
	}
	return nil
}

// WriteRAM implements Target.
func (b *Bridge) WriteRAM(addr uint32, p []byte) error {
	if uint64(addr)+uint64(len(p)) > 1<<32 {
		return ErrTransfer
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(p) > 0 {
		n := min(len(p), b.maxTransfer)
		w := make([]byte, 5+n)
		w[0] = opWriteRAM
		binary.LittleEndian.PutUint32(w[1:], addr)
		copy(w[5:], p[:n])
		if err := b.c.Tx(w, nil); err != nil {
			return fmt.Errorf("iap: write RAM 0x%08X: %w", addr, err)
		}
		addr += uint32(n)
		p = p[n:]
	}
	return nil
}

// String implements conn.Resource.
func (b *Bridge) String() string {
	return fmt.Sprintf("iap: %s", b.c)
}

// Halt implements conn.Resource. The mailbox has no operation in flight
// between transactions so there is nothing to stop.
func (b *Bridge) Halt() error {
	return nil
}

var _ Target = &Bridge{}
var _ conn.Resource = &Bridge{}
