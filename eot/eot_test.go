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

package eot

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/iconfont/svgfont"
	"seehuhn.de/go/iconfont/ttf"
)

const testDoc = `<svg xmlns="http://www.w3.org/2000/svg"><defs>
<font id="t" horiz-adv-x="500">
<font-face font-family="Test" units-per-em="500" ascent="500" descent="0" font-style="italic"/>
<glyph glyph-name="a" unicode="&#xEA01;" d="M0 0L500 0L500 500Z"/>
</font></defs></svg>`

func makeTTF(t *testing.T) []byte {
	t.Helper()
	data, err := ttf.Convert(svgfont.Document(testDoc), &ttf.Options{Timestamp: 1})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	fontData := makeTTF(t)
	eot, err := Convert(fontData)
	if err != nil {
		t.Fatal(err)
	}

	if size := binary.LittleEndian.Uint32(eot); int(size) != len(eot) {
		t.Errorf("EOTSize %d, file size %d", size, len(eot))
	}

	hdr, body, err := Read(eot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(body, fontData) {
		t.Error("embedded font data differs")
	}

	want := Names{
		Family:  "Test",
		Style:   "Italic",
		Version: ttf.DefaultVersion,
		Full:    "Test Italic",
	}
	if d := cmp.Diff(want, hdr.Names); d != "" {
		t.Errorf("wrong names (-want +got):\n%s", d)
	}
	if hdr.Version != version || hdr.Weight != 400 || !hdr.Italic || hdr.FsType != 0 {
		t.Errorf("wrong header %+v", hdr)
	}

	r := bytes.NewReader(fontData)
	info, err := header.Read(r)
	if err != nil {
		t.Fatal(err)
	}
	headData, err := info.ReadTableBytes(r, "head")
	if err != nil {
		t.Fatal(err)
	}
	if want := binary.BigEndian.Uint32(headData[8:12]); hdr.CheckSumAdjustment != want {
		t.Errorf("checksum adjustment %08x, want %08x", hdr.CheckSumAdjustment, want)
	}
	if hdr.UnicodeRange[1]&(1<<(60-32)) == 0 {
		t.Error("private use area bit not set")
	}
}

func TestDeterministic(t *testing.T) {
	fontData := makeTTF(t)
	a, err := Convert(fontData)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert(fontData)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("output differs between runs")
	}
}

func TestErrors(t *testing.T) {
	if _, err := Convert([]byte("not a font")); err == nil {
		t.Error("garbage accepted")
	}

	noOS2 := &bytes.Buffer{}
	tables := map[string][]byte{"head": make([]byte, 54), "name": {0, 0, 0, 0, 0, 6}}
	if _, err := header.Write(noOS2, header.ScalerTypeTrueType, tables); err != nil {
		t.Fatal(err)
	}
	if _, err := Convert(noOS2.Bytes()); !header.IsMissing(err) {
		t.Errorf("missing OS/2 table: got %v", err)
	}
	if _, _, err := Read(make([]byte, 100)); err == nil {
		t.Error("zero header accepted")
	}

	eot, err := Convert(makeTTF(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(eot[:len(eot)-1]); err == nil {
		t.Error("truncated file accepted")
	}
}
