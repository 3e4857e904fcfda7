// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package heatmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func gray(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestRender(t *testing.T) {
	data := bytes.Repeat([]byte{0xFF}, 4096)
	data[0] = 0x00
	data[65] = 0x80
	img, err := Render(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(img.Bounds(), image.Rect(0, 0, 256, 256)); diff != "" {
		t.Errorf("bounds mismatch (-got +want):\n%s", diff)
	}
	for _, test := range []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0x00},
		{3, 3, 0x00},
		{4, 0, 0xFF},
		{5, 5, 0x80},
		{255, 255, 0xFF},
	} {
		if got := gray(img, test.x, test.y); got != test.want {
			t.Errorf("pixel (%d,%d) = 0x%02X; want 0x%02X", test.x, test.y, got, test.want)
		}
	}
}

func TestRenderTitle(t *testing.T) {
	img, err := Render(make([]byte, 10), &Opts{Columns: 4, Scale: 2, Title: "EEPROM"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(img.Bounds(), image.Rect(0, 0, 8, 6+titleHeight)); diff != "" {
		t.Errorf("bounds mismatch (-got +want):\n%s", diff)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, []byte{0, 0xFF}, &Opts{Columns: 2, Scale: 1}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if gray(img, 0, 0) != 0 || gray(img, 1, 0) != 0xFF {
		t.Errorf("unexpected pixels %v %v", img.At(0, 0), img.At(1, 0))
	}
}

func TestWriteANSI(t *testing.T) {
	var b strings.Builder
	if err := WriteANSI(&b, bytes.Repeat([]byte{0x80}, 10), 4, nil); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("%d rows; want 3", got)
	}
	if !strings.HasPrefix(out, "\033[0m") || !strings.HasSuffix(out, "\033[0m\n") {
		t.Errorf("colors not reset: %q", out)
	}
}
