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

package woff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/parser"

	"seehuhn.de/go/iconfont/internal/sfntfile"
	"seehuhn.de/go/iconfont/svgfont"
	"seehuhn.de/go/iconfont/ttf"
)

const testDoc = `<svg xmlns="http://www.w3.org/2000/svg"><defs>
<font id="t" horiz-adv-x="1000">
<font-face font-family="Test" units-per-em="1000" ascent="1000" descent="0"/>
<glyph glyph-name="a" unicode="&#xEA01;" d="M0 0L1000 0L1000 1000Z"/>
<glyph glyph-name="b" unicode="&#xEA02;" d="M0 0L500 0L500 500L0 500Z"/>
</font></defs></svg>`

func makeTTF(t *testing.T) []byte {
	t.Helper()
	data, err := ttf.Convert(svgfont.Document(testDoc), &ttf.Options{
		Version:   "Version 2.5",
		Timestamp: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	fontData := makeTTF(t)
	meta := []byte(`<?xml version="1.0" encoding="UTF-8"?><metadata version="1.0"/>`)
	woff, err := Convert(fontData, &Options{Metadata: meta})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(woff, []byte("wOFF")) {
		t.Fatalf("wrong signature %q", woff[:4])
	}
	if len(woff)%4 != 0 {
		t.Errorf("length %d is not a multiple of 4", len(woff))
	}

	f, err := Read(woff)
	if err != nil {
		t.Fatal(err)
	}
	info, tables, err := sfntfile.ReadAll(fontData)
	if err != nil {
		t.Fatal(err)
	}
	if f.Flavor != info.ScalerType {
		t.Errorf("flavor %08x", f.Flavor)
	}
	if d := cmp.Diff(tables, f.Tables); d != "" {
		t.Errorf("tables differ (-want +got):\n%s", d)
	}
	if !bytes.Equal(f.Metadata, meta) {
		t.Errorf("metadata %q", f.Metadata)
	}
	if f.MajorVersion != 2 || f.MinorVersion != 500 {
		t.Errorf("version %d.%d", f.MajorVersion, f.MinorVersion)
	}
}

func TestRebuildSfnt(t *testing.T) {
	fontData := makeTTF(t)
	woff, err := Convert(fontData, nil)
	if err != nil {
		t.Fatal(err)
	}
	f, err := Read(woff)
	if err != nil {
		t.Fatal(err)
	}
	if f.Metadata != nil {
		t.Error("unexpected metadata")
	}

	buf := &bytes.Buffer{}
	if _, err := header.Write(buf, f.Flavor, f.Tables); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), fontData) {
		t.Error("rebuilt font differs from the original")
	}
}

// The table checksums in the WOFF directory match the ones in the sfnt
// table directory.
func TestChecksums(t *testing.T) {
	fontData := makeTTF(t)
	woff, err := Convert(fontData, nil)
	if err != nil {
		t.Fatal(err)
	}

	numTables := int(binary.BigEndian.Uint16(fontData[4:6]))
	if n := int(binary.BigEndian.Uint16(woff[12:14])); n != numTables {
		t.Fatalf("%d tables, want %d", n, numTables)
	}
	for i := range numTables {
		sfntRec := fontData[12+16*i:]
		woffRec := woff[headerSize+tableRecordSize*i:]
		if !bytes.Equal(sfntRec[:4], woffRec[:4]) {
			t.Fatalf("table %d: tag %q, want %q", i, woffRec[:4], sfntRec[:4])
		}
		want := binary.BigEndian.Uint32(sfntRec[4:8])
		got := binary.BigEndian.Uint32(woffRec[16:20])
		if got != want {
			t.Errorf("%q: checksum %08x, want %08x", sfntRec[:4], got, want)
		}
	}

	if size := binary.BigEndian.Uint32(woff[16:20]); int(size) != len(fontData) {
		t.Errorf("totalSfntSize %d, want %d", size, len(fontData))
	}
}

func TestDeterministic(t *testing.T) {
	fontData := makeTTF(t)
	a, err := Convert(fontData, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert(fontData, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("output differs between runs")
	}
}

func TestReadErrors(t *testing.T) {
	woff, err := Convert(makeTTF(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	bad := bytes.Clone(woff)
	bad[0] = 'x'
	for i, data := range [][]byte{nil, bad, woff[:len(woff)-4]} {
		_, err := Read(data)
		var ferr *parser.InvalidFontError
		if !errors.As(err, &ferr) {
			t.Errorf("%d: got %v", i, err)
		}
	}
}
