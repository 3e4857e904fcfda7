// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package eeprom accesses the on-chip EEPROM of an NXP LPC11Uxx through the
// IAP ROM.
//
// Size: 4 KiB on the LPC11U24/LPC11U35.
//
// The driver only marshals requests into IAP command blocks. The ROM decides
// whether an address range is mapped and the status it returns is handed back
// to the caller unchanged. Writes are refused with INVALID_COMMAND unless
// explicitly enabled in Opts.
//
// Dump formats a read as the hex listing produced by the board's "e" console
// command. ExportHex and ImportHex move whole EEPROM images as Intel HEX.
//
// For detailed information, refer to section 20.14 of the [user manual].
//
// [user manual]: https://www.nxp.com/docs/en/user-guide/UM10462.pdf
package eeprom
