// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package iap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestBridgeCall(t *testing.T) {
	ops := []i2ctest.IO{
		{
			Addr: I2CAddr,
			W:    []byte{
				opCall,
				62, 0, 0, 0,
				0x10, 0, 0, 0,
				0x00, 0x08, 0x00, 0x10,
				16, 0, 0, 0,
				0x1B, 0xB7, 0, 0,
			},
			R: []byte{
				4, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
			},
		},
	}
	pb := &i2ctest.Playback{Ops: ops, DontPanic: true}
	defer pb.Close()
	b, err := NewI2C(pb, I2CAddr)
	if err != nil {
		t.Fatal(err)
	}
	cmd := NewCommand(CmdEEPROMRead, 0x10, 0x10000800, 16, 46875)
	var res Result
	if err := b.Call(&cmd, &res); err != nil {
		t.Fatal(err)
	}
	if res.Status() != SrcAddrNotMapped {
		t.Errorf("status = %s", res.Status())
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
}

func TestBridgeRAM(t *testing.T) {
	for _, test := range []struct {
		name string
		max  int
		ops  []i2ctest.IO
	}{
		{
			name: "single",
			max:  0,
			ops: []i2ctest.IO{
				{Addr: I2CAddr, W: []byte{opWriteRAM, 0x00, 0x08, 0x00, 0x10, 1, 2, 3, 4, 5}},
				{Addr: I2CAddr, W: []byte{opReadRAM, 0x00, 0x08, 0x00, 0x10, 5, 0}, R: []byte{1, 2, 3, 4, 5}},
			},
		},
		{
			name: "chunked",
			max:  2,
			ops: []i2ctest.IO{
				{Addr: I2CAddr, W: []byte{opWriteRAM, 0x00, 0x08, 0x00, 0x10, 1, 2}},
				{Addr: I2CAddr, W: []byte{opWriteRAM, 0x02, 0x08, 0x00, 0x10, 3, 4}},
				{Addr: I2CAddr, W: []byte{opWriteRAM, 0x04, 0x08, 0x00, 0x10, 5}},
				{Addr: I2CAddr, W: []byte{opReadRAM, 0x00, 0x08, 0x00, 0x10, 2, 0}, R: []byte{1, 2}},
				{Addr: I2CAddr, W: []byte{opReadRAM, 0x02, 0x08, 0x00, 0x10, 2, 0}, R: []byte{3, 4}},
				{Addr: I2CAddr, W: []byte{opReadRAM, 0x04, 0x08, 0x00, 0x10, 1, 0}, R: []byte{5}},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			pb := &i2ctest.Playback{Ops: test.ops, DontPanic: true}
			defer pb.Close()
			record := &i2ctest.Record{Bus: pb}
			b, err := New(&i2c.Dev{Bus: record, Addr: I2CAddr}, test.max)
			if err != nil {
				t.Fatal(err)
			}
			data := []byte{1, 2, 3, 4, 5}
			if err := b.WriteRAM(0x10000800, data); err != nil {
				t.Fatal(err)
			}
			got := make([]byte, len(data))
			if err := b.ReadRAM(0x10000800, got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(got, data); diff != "" {
				t.Errorf("RAM mismatch (-got +want):\n%s", diff)
			}
			if diff := cmp.Diff(record.Ops, test.ops); diff != "" {
				t.Errorf("ops mismatch (-got +want):\n%s", diff)
			}
			if err := pb.Close(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestBridgeErrors(t *testing.T) {
	if _, err := New(nil, -1); err == nil {
		t.Error("expected error for negative max transfer")
	}
	pb := &i2ctest.Playback{DontPanic: true}
	b, err := NewI2C(pb, I2CAddr)
	if err != nil {
		t.Fatal(err)
	}
	cmd := NewCommand(CmdEEPROMRead)
	var res Result
	if err := b.Call(&cmd, &res); err == nil {
		t.Error("expected bus error")
	}
	if err := b.ReadRAM(0xFFFFFFFF, make([]byte, 2)); !errors.Is(err, ErrTransfer) {
		t.Errorf("expected ErrTransfer, got %v", err)
	}
	if err := b.WriteRAM(0xFFFFFFFF, make([]byte, 2)); !errors.Is(err, ErrTransfer) {
		t.Errorf("expected ErrTransfer, got %v", err)
	}
	if s := b.String(); s == "" {
		t.Error("empty String()")
	}
}
