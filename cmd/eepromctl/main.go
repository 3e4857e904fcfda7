// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// eepromctl reads and writes the EEPROM of an LPC11Uxx board through its IAP
// ROM.
//
// The board is reached over I²C through the IAP mailbox firmware, or
// simulated with -sim.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GermanBionicSystems/iapeeprom/eeprom"
	"github.com/GermanBionicSystems/iapeeprom/iap"
	"github.com/GermanBionicSystems/iapeeprom/iap/iaptest"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

type flags struct {
	bus         string
	addr        uint16
	sim         bool
	enableWrite bool
	clockKHz    uint32
	size        uint32
	buffer      uint32
}

type app struct {
	flags
	out   io.Writer
	color bool
	// closer releases the bus opened by open.
	closer io.Closer
}

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func (a *app) open() (*eeprom.Dev, error) {
	opts := eeprom.Opts{
		Size:        a.size,
		Clock:       physic.Frequency(a.clockKHz) * physic.KiloHertz,
		Buffer:      a.buffer,
		EnableWrite: a.enableWrite,
	}
	var t iap.Target
	if a.sim {
		t = iaptest.NewSim()
	} else {
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		bus, err := i2creg.Open(a.bus)
		if err != nil {
			return nil, fmt.Errorf("failed to open I²C: %w", err)
		}
		a.closer = bus
		if t, err = iap.NewI2C(bus, a.addr); err != nil {
			return nil, err
		}
	}
	return eeprom.New(t, &opts)
}

func (a *app) close() {
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			log.Print(err)
		}
		a.closer = nil
	}
}

// check turns a non-success status into an error and prints it styled.
func (a *app) check(op string, s iap.Status) error {
	if s == iap.Success {
		return nil
	}
	err := iap.Check(op, s)
	msg := fmt.Sprintf("%s failed with error code %d (%s)", op, uint32(s), s)
	if a.color {
		msg = errStyle.Render(msg)
	}
	fmt.Fprintln(a.out, msg)
	return err
}

func (a *app) ok(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if a.color {
		msg = okStyle.Render(msg)
	}
	fmt.Fprintln(a.out, msg)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "eepromctl",
		Short:         "Access the EEPROM of an LPC11Uxx board",
		Long:          `Read, dump, write and visualise the on-chip EEPROM through the IAP ROM.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.bus, "bus", "", "I²C bus to use")
	pf.Uint16Var(&a.addr, "addr", iap.I2CAddr, "I²C address of the IAP mailbox")
	pf.BoolVar(&a.sim, "sim", false, "use a simulated board")
	pf.BoolVar(&a.enableWrite, "enable-write", false, "allow EEPROM writes")
	pf.Uint32Var(&a.clockKHz, "clock-khz", iap.ClockKHz(iap.DefaultClock), "system clock passed to the ROM, in kHz")
	pf.Uint32Var(&a.size, "size", eeprom.Size, "EEPROM size in bytes")
	pf.Uint32Var(&a.buffer, "buffer", eeprom.Buffer, "target RAM staging address")

	root.AddCommand(
		newReadCmd(a),
		newDumpCmd(a),
		newWriteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newMapCmd(a),
		newConsoleCmd(a),
	)
	return root
}

func mainImpl() error {
	a := &app{out: os.Stdout}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		a.out = colorable.NewColorableStdout()
		a.color = true
	}
	root := newRootCmd(a)
	defer a.close()
	return root.Execute()
}

func main() {
	log.SetFlags(0)
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "eepromctl: %s.\n", err)
		os.Exit(1)
	}
}
