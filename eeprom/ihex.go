// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package eeprom

import (
	"fmt"
	"io"

	"github.com/GermanBionicSystems/iapeeprom/iap"
	"github.com/marcinbor85/gohex"
)

// hexLineLength is the number of data bytes per Intel HEX record.
const hexLineLength = 16

// ExportHex reads the whole EEPROM and writes it to w as Intel HEX. Record
// addresses are EEPROM offsets.
func ExportHex(w io.Writer, d *Dev) error {
	data := make([]byte, d.Size())
	s, err := d.Read(0, data)
	if err != nil {
		return err
	}
	if err := iap.Check("read", s); err != nil {
		return err
	}
	mem := gohex.NewMemory()
	if err := mem.AddBinary(0, data); err != nil {
		return err
	}
	return mem.DumpIntelHex(w, hexLineLength)
}

// ImportHex parses an Intel HEX image from r and writes every data segment
// to the EEPROM. Each segment is written with a single IAP call.
//
// The image is validated against the EEPROM size before anything is
// written.
func ImportHex(r io.Reader, d *Dev) error {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return err
	}
	segments := mem.GetDataSegments()
	for _, seg := range segments {
		if uint64(seg.Address)+uint64(len(seg.Data)) > uint64(d.Size()) {
			return fmt.Errorf("eeprom: segment 0x%08X+%d does not fit in %d bytes", seg.Address, len(seg.Data), d.Size())
		}
	}
	for _, seg := range segments {
		s, err := d.Write(seg.Address, seg.Data)
		if err != nil {
			return err
		}
		if err := iap.Check("write", s); err != nil {
			return err
		}
	}
	return nil
}
