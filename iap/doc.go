// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package iap describes the In-Application Programming (IAP) ROM interface
// of the NXP LPC11Uxx family.
//
// The IAP entry point takes a 5-word command block and fills a 4-word
// result block. Word 0 of the command selects the operation and word 0 of the
// result is the status code. The remaining words depend on the command; for
// the EEPROM commands they are the EEPROM offset, the RAM buffer address, the
// byte count and the system clock in kHz.
//
// The ROM only sees target memory, so a Target exposes both the entry point
// and access to the target SRAM where buffers are staged.
//
// Bridge reaches the ROM of a remote board through a small mailbox protocol
// carried over any periph conn.Conn, typically an I²C device.
//
// For detailed information, refer to chapter 20 of the [user manual].
//
// [user manual]: https://www.nxp.com/docs/en/user-guide/UM10462.pdf
package iap
