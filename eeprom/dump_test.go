// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package eeprom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	seq := make([]byte, 20)
	for i := range seq {
		seq[i] = byte(i)
	}
	for _, test := range []struct {
		name   string
		offset uint32
		data   []byte
		ws     WordSize
		want   string
	}{
		{
			name:   "bytes",
			offset: 0x10,
			data:   seq[:10],
			ws:     Word8,
			want:   "\r\n00000010: 00 01 02 03 04 05 06 07 \r\n00000018: 08 09 \r\n",
		},
		{
			name:   "halfwords",
			offset: 0,
			data:   seq[:4],
			ws:     Word16,
			want:   "\r\n00000000: 0100 0302 \r\n",
		},
		{
			name:   "words",
			offset: 0xFF0,
			data:   append(bytes.Repeat([]byte{0xFF}, 32), seq[:4]...),
			ws:     Word32,
			want: "\r\n00000FF0: FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF FFFFFFFF " +
				"\r\n00001010: 03020100 \r\n",
		},
		{
			name: "empty",
			ws:   Word8,
			want: "\r\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var b strings.Builder
			if err := Dump(&b, test.offset, test.data, test.ws); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(b.String(), test.want); diff != "" {
				t.Errorf("dump mismatch (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDumpErrors(t *testing.T) {
	var b strings.Builder
	if err := Dump(&b, 0, []byte{1, 2}, WordSize(12)); err == nil {
		t.Error("expected error for word size 12")
	}
	if err := Dump(&b, 0, []byte{1, 2, 3}, Word16); err == nil {
		t.Error("expected error for odd length")
	}
	if b.Len() != 0 {
		t.Errorf("unexpected output %q", b.String())
	}
}

func TestWordSize(t *testing.T) {
	for _, test := range []struct {
		ws    WordSize
		valid bool
		bytes int
	}{
		{Word8, true, 1},
		{Word16, true, 2},
		{Word32, true, 4},
		{WordSize(24), false, 3},
		{WordSize(0), false, 0},
	} {
		if got := test.ws.Valid(); got != test.valid {
			t.Errorf("%d.Valid() = %t", int(test.ws), got)
		}
		if got := test.ws.Bytes(); got != test.bytes {
			t.Errorf("%d.Bytes() = %d", int(test.ws), got)
		}
	}
}
