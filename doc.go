// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package iapeeprom is a container for the LPC11Uxx EEPROM access packages.
//
// iap describes the ROM calling convention and reaches a board through an
// I²C mailbox, iap/iaptest simulates the ROM, eeprom is the access layer,
// console holds the board's EEPROM console commands and heatmap visualises
// EEPROM images. cmd/eepromctl ties them together.
package iapeeprom
