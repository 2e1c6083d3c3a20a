// seehuhn.de/go/iconfont - assemble SVG icons into web fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package sfntfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt/header"
)

func TestChecksum(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint32
	}{
		{nil, 0},
		{[]byte{0, 0, 0, 1}, 1},
		{[]byte{0, 0, 0, 1, 0, 0, 0, 2}, 3},
		{[]byte{1}, 0x01000000},
		{[]byte{0, 0, 0, 1, 0, 2}, 0x00020001},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 2}, 1},
	}
	for i, c := range cases {
		if got := Checksum(c.in); got != c.want {
			t.Errorf("%d: got %08x, want %08x", i, got, c.want)
		}
	}
}

func TestTableChecksum(t *testing.T) {
	head := make([]byte, 54)
	head[0] = 1
	binary.BigEndian.PutUint32(head[8:12], 0x12345678)
	if got := TableChecksum("head", head); got != 0x01000000 {
		t.Errorf("head: got %08x, want 01000000", got)
	}
	if got := TableChecksum("glyf", head); got != 0x13345678 {
		t.Errorf("glyf: got %08x, want 13345678", got)
	}

	// agrees with the table directory written by header.Write
	tables := map[string][]byte{"head": head, "name": {1, 2, 3}}
	buf := &bytes.Buffer{}
	if _, err := header.Write(buf, header.ScalerTypeTrueType, tables); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	for i := range 2 {
		rec := data[12+16*i:]
		name := string(rec[:4])
		want := binary.BigEndian.Uint32(rec[4:8])
		if got := TableChecksum(name, tables[name]); got != want {
			t.Errorf("%s: got %08x, want %08x", name, got, want)
		}
	}
}

func TestReadAll(t *testing.T) {
	head := make([]byte, 54)
	head[8] = 0xAA // checksum field, overwritten by header.Write
	tables := map[string][]byte{
		"head": head,
		"glyf": {1, 2, 3},
		"name": {4, 5, 6, 7, 8},
	}
	buf := &bytes.Buffer{}
	n, err := header.Write(buf, header.ScalerTypeTrueType, tables)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if sum := Checksum(data); sum != 0xB1B0AFBA {
		t.Errorf("whole-file checksum %08x, want B1B0AFBA", sum)
	}
	if size := Size([]uint32{54, 3, 5}); int64(size) != n {
		t.Errorf("computed size %d, wrote %d", size, n)
	}

	info, got, err := ReadAll(data)
	if err != nil {
		t.Fatal(err)
	}
	if info.ScalerType != header.ScalerTypeTrueType {
		t.Errorf("wrong scaler type %08x", info.ScalerType)
	}
	if d := cmp.Diff(tables, got); d != "" {
		t.Errorf("tables differ (-want +got):\n%s", d)
	}

	if _, _, err := ReadAll(data[:20]); err == nil {
		t.Error("truncated file accepted")
	}
}
