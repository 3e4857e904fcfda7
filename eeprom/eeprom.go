// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package eeprom

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/GermanBionicSystems/iapeeprom/iap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

const (
	// Size is the EEPROM size of the reference hardware.
	Size uint32 = 4096
	// Buffer is the default SRAM staging address. It leaves the first 2 KiB
	// of SRAM to the firmware and fits a whole EEPROM image below the top of
	// the 8 KiB block.
	Buffer uint32 = 0x10000800
)

// Opts represents configurable options for the EEPROM access layer.
//
// Zero fields take the value from DefaultOpts.
type Opts struct {
	// Size is the EEPROM size in bytes.
	Size uint32
	// Clock is the system clock the ROM uses for its timings.
	Clock physic.Frequency
	// Buffer is the target RAM address where data is staged.
	Buffer uint32
	// ReadCmd and WriteCmd are the IAP command codes.
	ReadCmd  iap.Code
	WriteCmd iap.Code
	// EnableWrite allows Write to reach the ROM. When false Write always
	// reports iap.InvalidCommand.
	EnableWrite bool
}

// DefaultOpts is the configuration of the reference board.
var DefaultOpts = Opts{
	Size:     Size,
	Clock:    iap.DefaultClock,
	Buffer:   Buffer,
	ReadCmd:  iap.CmdEEPROMRead,
	WriteCmd: iap.CmdEEPROMWrite,
}

// Dev is a handle to the EEPROM of one target.
//
// Dev is safe for concurrent use. Every Dev created on the same target shares
// one lock, since an access is an IAP call plus a staging buffer transfer and
// the staging buffer belongs to the target.
type Dev struct {
	t    iap.Target
	opts Opts
	mu   *sync.Mutex
}

// locks holds one *sync.Mutex per target.
var locks sync.Map

// lockFor returns the lock shared by all Devs on t.
//
// Targets of a type that cannot be a map key get their own lock.
func lockFor(t iap.Target) *sync.Mutex {
	if !reflect.TypeOf(t).Comparable() {
		return &sync.Mutex{}
	}
	l, _ := locks.LoadOrStore(t, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// New returns a Dev using t.
//
// If opts is nil, DefaultOpts is used.
func New(t iap.Target, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("eeprom: nil target")
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
		if o.Size == 0 {
			o.Size = DefaultOpts.Size
		}
		if o.Clock == 0 {
			o.Clock = DefaultOpts.Clock
		}
		if o.Buffer == 0 {
			o.Buffer = DefaultOpts.Buffer
		}
		if o.ReadCmd == 0 {
			o.ReadCmd = DefaultOpts.ReadCmd
		}
		if o.WriteCmd == 0 {
			o.WriteCmd = DefaultOpts.WriteCmd
		}
	}
	if o.Clock < physic.KiloHertz {
		return nil, fmt.Errorf("eeprom: invalid clock %s", o.Clock)
	}
	return &Dev{t: t, opts: o, mu: lockFor(t)}, nil
}

// Read reads len(b) bytes of EEPROM starting at offset.
//
// The range is not checked; the ROM rejects unmapped ranges and its status
// is returned as is. b is only written when the status is iap.Success.
//
// The error is only set when the target could not be reached. The status is
// then iap.InvalidCommand, the value the result block is primed with, and
// does not come from the ROM.
func (d *Dev) Read(offset uint32, b []byte) (iap.Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cmd := iap.NewCommand(d.opts.ReadCmd, offset, d.opts.Buffer, uint32(len(b)), iap.ClockKHz(d.opts.Clock))
	var res iap.Result
	res[0] = uint32(iap.InvalidCommand)
	if err := d.t.Call(&cmd, &res); err != nil {
		return iap.InvalidCommand, err
	}
	if s := res.Status(); s != iap.Success {
		return s, nil
	}
	if len(b) == 0 {
		return iap.Success, nil
	}
	// b stays untouched if the copy fails.
	tmp := make([]byte, len(b))
	if err := d.t.ReadRAM(d.opts.Buffer, tmp); err != nil {
		return iap.InvalidCommand, err
	}
	copy(b, tmp)
	return iap.Success, nil
}

// Write writes b to the EEPROM starting at offset.
//
// Unless Opts.EnableWrite is set, it returns iap.InvalidCommand without
// touching the target. As with Read, the status is iap.InvalidCommand
// whenever the error is set.
func (d *Dev) Write(offset uint32, b []byte) (iap.Status, error) {
	if !d.opts.EnableWrite {
		return iap.InvalidCommand, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(b) != 0 {
		if err := d.t.WriteRAM(d.opts.Buffer, b); err != nil {
			return iap.InvalidCommand, err
		}
	}
	cmd := iap.NewCommand(d.opts.WriteCmd, offset, d.opts.Buffer, uint32(len(b)), iap.ClockKHz(d.opts.Clock))
	var res iap.Result
	res[0] = uint32(iap.InvalidCommand)
	if err := d.t.Call(&cmd, &res); err != nil {
		return iap.InvalidCommand, err
	}
	return res.Status(), nil
}

// ReadAt implements io.ReaderAt.
//
// Reads are clamped to the EEPROM size. A ROM rejection is returned as an
// *iap.StatusError.
func (d *Dev) ReadAt(p []byte, off int64) (int, error) {
	n, err := d.clamp(p, off)
	if n == 0 {
		return 0, err
	}
	s, cerr := d.Read(uint32(off), p[:n])
	if cerr != nil {
		return 0, cerr
	}
	if cerr = iap.Check("read", s); cerr != nil {
		return 0, cerr
	}
	return n, err
}

// WriteAt implements io.WriterAt.
//
// Writing past the end of the EEPROM returns io.ErrShortWrite after writing
// what fits.
func (d *Dev) WriteAt(p []byte, off int64) (int, error) {
	n, err := d.clamp(p, off)
	if err == io.EOF {
		err = io.ErrShortWrite
	}
	if n == 0 {
		return 0, err
	}
	s, cerr := d.Write(uint32(off), p[:n])
	if cerr != nil {
		return 0, cerr
	}
	if cerr = iap.Check("write", s); cerr != nil {
		return 0, cerr
	}
	return n, err
}

// clamp returns how many bytes of p fit at off, and io.EOF when that is
// less than len(p).
func (d *Dev) clamp(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("eeprom: negative offset")
	}
	if off >= int64(d.opts.Size) {
		return 0, io.EOF
	}
	n := len(p)
	if rem := int64(d.opts.Size) - off; int64(n) > rem {
		return int(rem), io.EOF
	}
	return n, nil
}

// Size returns the EEPROM size in bytes.
func (d *Dev) Size() uint32 {
	return d.opts.Size
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("eeprom: %s", d.t)
}

// Halt implements conn.Resource.
//
// IAP calls run to completion so there is nothing to abort.
func (d *Dev) Halt() error {
	return nil
}

var _ conn.Resource = &Dev{}
var _ io.ReaderAt = &Dev{}
var _ io.WriterAt = &Dev{}
