// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package heatmap draws an EEPROM image as a grid of grey cells, one per
// byte: 0x00 is black and 0xFF, the erased value, is white.
//
// Render produces an image.Image and WriteANSI prints the same grid to a
// terminal using 256 color ANSI codes.
package heatmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/maruel/ansi256"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Opts represents the options available for rendering.
type Opts struct {
	// Columns is the number of bytes per row. 4096 bytes at 64 columns is a
	// square.
	Columns int
	// Scale is the cell size in pixels.
	Scale int
	// Title is drawn above the grid when not empty.
	Title string

	_ struct{}
}

// DefaultOpts renders a 4 KiB EEPROM as a 256x256 square.
var DefaultOpts = Opts{Columns: 64, Scale: 4}

const (
	titleSize   = 12
	titleHeight = 20
)

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func titleFace() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			faceErr = err
			return
		}
		face = truetype.NewFace(f, &truetype.Options{Size: titleSize, DPI: 72})
	})
	return face, faceErr
}

// Render draws data as a grid.
//
// If opts is nil, DefaultOpts is used.
func Render(data []byte, opts *Opts) (image.Image, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Columns <= 0 {
		o.Columns = DefaultOpts.Columns
	}
	if o.Scale <= 0 {
		o.Scale = DefaultOpts.Scale
	}
	rows := (len(data) + o.Columns - 1) / o.Columns
	top := 0
	if o.Title != "" {
		top = titleHeight
	}
	dc := gg.NewContext(o.Columns*o.Scale, rows*o.Scale+top)
	// Cells past the end of data stay transparent.
	for i, b := range data {
		x := (i % o.Columns) * o.Scale
		y := (i/o.Columns)*o.Scale + top
		dc.SetRGB255(int(b), int(b), int(b))
		dc.DrawRectangle(float64(x), float64(y), float64(o.Scale), float64(o.Scale))
		dc.Fill()
	}
	if o.Title != "" {
		f, err := titleFace()
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(f)
		dc.SetRGB255(0xFF, 0x80, 0x00)
		dc.DrawString(o.Title, 2, titleSize+2)
	}
	return dc.Image(), nil
}

// WritePNG renders data and encodes it to w as PNG.
func WritePNG(w io.Writer, data []byte, opts *Opts) error {
	img, err := Render(data, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteANSI prints data to w as rows of columns colored blocks.
//
// If p is nil, ansi256.Default is used.
func WriteANSI(w io.Writer, data []byte, columns int, p *ansi256.Palette) error {
	if p == nil {
		p = ansi256.Default
	}
	if columns <= 0 {
		columns = DefaultOpts.Columns
	}
	var buf bytes.Buffer
	_, _ = buf.WriteString("\033[0m")
	for i, b := range data {
		_, _ = io.WriteString(&buf, p.Block(color.NRGBA{b, b, b, 255}))
		if (i+1)%columns == 0 || i == len(data)-1 {
			_, _ = buf.WriteString("\033[0m\n")
		}
	}
	_, err := buf.WriteTo(w)
	return err
}
