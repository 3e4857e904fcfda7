// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package eeprom_test

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/GermanBionicSystems/iapeeprom/eeprom"
	"github.com/GermanBionicSystems/iapeeprom/iap"
	"github.com/GermanBionicSystems/iapeeprom/iap/iaptest"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	// The board runs the IAP mailbox at the default address.
	b, err := iap.NewI2C(bus, iap.I2CAddr)
	if err != nil {
		log.Fatal(err)
	}
	dev, err := eeprom.New(b, nil)
	if err != nil {
		log.Fatal(err)
	}

	buf := make([]byte, 32)
	s, err := dev.Read(0, buf)
	if err != nil {
		log.Fatal(err)
	}
	if s != iap.Success {
		log.Fatalf("EEPROM read failed with error code %d (%s)", s, s)
	}
	if err := eeprom.Dump(os.Stdout, 0, buf, eeprom.Word32); err != nil {
		log.Fatal(err)
	}
}

func ExampleDump() {
	dev, err := eeprom.New(iaptest.NewSim(), nil)
	if err != nil {
		log.Fatal(err)
	}
	buf := make([]byte, 8)
	if s, err := dev.Read(0x40, buf); err != nil || s != iap.Success {
		log.Fatalf("read: %s, %v", s, err)
	}
	var out strings.Builder
	if err := eeprom.Dump(&out, 0x40, buf, eeprom.Word16); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", out.String())

	// Writes are refused until enabled in Opts.
	s, _ := dev.Write(0x40, []byte{0})
	fmt.Println(s)
	// Output:
	// "\r\n00000040: FFFF FFFF FFFF FFFF \r\n"
	// INVALID_COMMAND
}
