// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/iapeeprom/console"
	"github.com/GermanBionicSystems/iapeeprom/eeprom"
	"github.com/GermanBionicSystems/iapeeprom/heatmap"
	"github.com/spf13/cobra"
)

// parseUint32 accepts decimal or 0x prefixed hexadecimal.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read OFFSET LENGTH",
		Short: "Read bytes and print them as a hex dump",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := parseUint32(args[0])
			if err != nil {
				return err
			}
			n, err := parseUint32(args[1])
			if err != nil {
				return err
			}
			dev, err := a.open()
			if err != nil {
				return err
			}
			buf := make([]byte, n)
			s, err := dev.Read(offset, buf)
			if err != nil {
				return err
			}
			if err := a.check("EEPROM read", s); err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, hex.Dump(buf))
			return err
		},
	}
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump WORD_SIZE HEX_OFFSET NUM_WORDS",
		Short: "Print words of 8, 16 or 32 bits, eight per line",
		Long: `Print EEPROM contents the way the board's "e" console command does.

WORD_SIZE is 8, 16 or 32, HEX_OFFSET is hexadecimal and NUM_WORDS decimal.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := a.open()
			if err != nil {
				return err
			}
			if code := console.Dump(dev)(a.out, append([]string{"e"}, args...)); code != 0 {
				return fmt.Errorf("dump exited with code %d", code)
			}
			return nil
		},
	}
}

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write OFFSET HEXBYTES",
		Short: "Write bytes given in hexadecimal",
		Long: `Write bytes to the EEPROM. Requires --enable-write; without it the
write is refused with INVALID_COMMAND.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := parseUint32(args[0])
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
			if err != nil {
				return err
			}
			dev, err := a.open()
			if err != nil {
				return err
			}
			s, err := dev.Write(offset, data)
			if err != nil {
				return err
			}
			if err := a.check("EEPROM write", s); err != nil {
				return err
			}
			a.ok("wrote %d bytes at 0x%X", len(data), offset)
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE.hex",
		Short: "Save the whole EEPROM as Intel HEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := a.open()
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := eeprom.ExportHex(f, dev); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.ok("saved %d bytes to %s", dev.Size(), args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.hex",
		Short: "Write an Intel HEX image to the EEPROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := a.open()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := eeprom.ImportHex(f, dev); err != nil {
				return err
			}
			a.ok("imported %s", args[0])
			return nil
		},
	}
}

func newMapCmd(a *app) *cobra.Command {
	var pngPath string
	var columns int
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show the EEPROM as a grid of grey cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := a.open()
			if err != nil {
				return err
			}
			data := make([]byte, dev.Size())
			s, err := dev.Read(0, data)
			if err != nil {
				return err
			}
			if err := a.check("EEPROM read", s); err != nil {
				return err
			}
			if pngPath == "" {
				if !a.color {
					return errors.New("map needs a terminal; use --png")
				}
				return heatmap.WriteANSI(a.out, data, columns, nil)
			}
			f, err := os.Create(pngPath)
			if err != nil {
				return err
			}
			opts := heatmap.Opts{Columns: columns, Scale: heatmap.DefaultOpts.Scale, Title: dev.String()}
			if err := heatmap.WritePNG(f, data, &opts); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "write a PNG image instead of printing")
	cmd.Flags().IntVar(&columns, "columns", heatmap.DefaultOpts.Columns, "bytes per row")
	return cmd
}

func newConsoleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "console LINE...",
		Short: "Run a board console command locally",
		Long: `Run one of the board's EEPROM console commands against the target,
for example: eepromctl console e 32 0 16`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := a.open()
			if err != nil {
				return err
			}
			if code := console.Commands(dev).Run(a.out, strings.Join(args, " ")); code != 0 {
				return fmt.Errorf("%s exited with code %d", args[0], code)
			}
			return nil
		},
	}
}
