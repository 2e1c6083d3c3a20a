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

package ttf

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	xsfnt "golang.org/x/image/font/sfnt"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/parser"

	"seehuhn.de/go/iconfont/svgfont"
)

const testDoc = `<?xml version="1.0" standalone="no"?>
<svg xmlns="http://www.w3.org/2000/svg">
<defs>
  <font id="test" horiz-adv-x="1000">
    <font-face font-family="Test Icons"
      units-per-em="1000" ascent="850"
      descent="150" />
    <missing-glyph horiz-adv-x="0" />
    <glyph glyph-name="square"
      unicode="&#xEA01;"
      horiz-adv-x="1000" d="M100 0 L900 0 L900 800 L100 800Z" />
    <glyph glyph-name="circle"
      unicode="&#xEA02;"
      horiz-adv-x="800" d="M400 0 C620 0 800 180 800 400 C800 620 620 800 400 800 C180 800 0 620 0 400 C0 180 180 0 400 0Z" />
    <glyph glyph-name="smile"
      unicode="&#x1F600;"
      horiz-adv-x="1000" d="M0 0 Q500 1000 1000 0Z" />
    <glyph glyph-name="square-dup"
      unicode="&#xEA01;"
      horiz-adv-x="500" d="" />
  </font>
</defs>
</svg>
`

var testOptions = &Options{
	Copyright: "(c) 2026 test",
	Version:   "Version 2.5",
	Timestamp: 1700000000,
}

func TestConvertSeehuhnSfnt(t *testing.T) {
	data, err := Convert(svgfont.Document(testDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}

	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.FamilyName != "Test Icons" {
		t.Errorf("family name %q", info.FamilyName)
	}
	if info.UnitsPerEm != 1000 {
		t.Errorf("units per em %d", info.UnitsPerEm)
	}
	if n := info.NumGlyphs(); n != 5 {
		t.Errorf("%d glyphs, want 5", n)
	}
	if name := info.GlyphName(2); name != "circle" {
		t.Errorf("glyph 2 is %q", name)
	}

	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		t.Fatal(err)
	}
	for r, want := range map[rune]glyph.ID{0xEA01: 1, 0xEA02: 2, 0x1F600: 3, 'A': 0} {
		if got := cmap.Lookup(r); got != want {
			t.Errorf("%U: glyph %d, want %d", r, got, want)
		}
	}
}

func TestConvertXImage(t *testing.T) {
	data, err := Convert(svgfont.Document(testDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	f, err := xsfnt.Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	buf := &xsfnt.Buffer{}
	for id, want := range map[xsfnt.NameID]string{
		xsfnt.NameIDFamily:    "Test Icons",
		xsfnt.NameIDSubfamily: "Regular",
		xsfnt.NameIDVersion:   "Version 2.5",
		xsfnt.NameIDCopyright: "(c) 2026 test",
	} {
		got, err := f.Name(buf, id)
		if err != nil {
			t.Errorf("name %d: %v", id, err)
			continue
		}
		if got != want {
			t.Errorf("name %d: got %q, want %q", id, got, want)
		}
	}

	gid, err := f.GlyphIndex(buf, 0xEA01)
	if err != nil || gid != 1 {
		t.Errorf("GlyphIndex: %d, %v", gid, err)
	}
}

func TestConvertGoText(t *testing.T) {
	data, err := Convert(svgfont.Document(testDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if upem := face.Upem(); upem != 1000 {
		t.Errorf("upem %d", upem)
	}
	gid, ok := face.NominalGlyph(0x1F600)
	if !ok || gid != 3 {
		t.Errorf("NominalGlyph: %d, %t", gid, ok)
	}
}

func TestConvertTables(t *testing.T) {
	data, err := Convert(svgfont.Document(testDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	info, err := header.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	names := maps.Keys(info.Toc)
	slices.Sort(names)
	want := []string{"OS/2", "cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post"}
	if d := cmp.Diff(want, names); d != "" {
		t.Errorf("wrong tables (-want +got):\n%s", d)
	}
}

func TestDeterministic(t *testing.T) {
	a, err := Convert(svgfont.Document(testDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Convert(svgfont.Document(testDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("output differs between runs")
	}
}

func TestConvertErrors(t *testing.T) {
	doc := `<svg><font><font-face units-per-em="8"/></font></svg>`
	_, err := Convert(svgfont.Document(doc), nil)
	var ferr *parser.InvalidFontError
	if !errors.As(err, &ferr) {
		t.Errorf("got %v, want InvalidFontError", err)
	}

	_, err = Convert(svgfont.Document(`<svg/>`), nil)
	if err == nil {
		t.Error("missing font accepted")
	}
	if errors.As(err, &ferr) {
		t.Errorf("unexpected error type %T", err)
	}
}

func TestCubicToQuads(t *testing.T) {
	p0 := vec.Vec2{X: 0, Y: 0}
	p1 := vec.Vec2{X: 0, Y: 552}
	p2 := vec.Vec2{X: 448, Y: 1000}
	p3 := vec.Vec2{X: 1000, Y: 1000}
	quads := cubicToQuads(p0, p1, p2, p3)
	if len(quads) < 2 {
		t.Fatalf("only %d pieces", len(quads))
	}
	if quads[len(quads)-1].End != p3 {
		t.Errorf("end point %v", quads[len(quads)-1].End)
	}

	// check the distance between the curves at the midpoint of each piece
	start := p0
	n := float64(len(quads))
	for i, q := range quads {
		mid := start.Mul(0.25).Add(q.Ctrl.Mul(0.5)).Add(q.End.Mul(0.25))
		c := cubicAt(p0, p1, p2, p3, (float64(i)+0.5)/n)
		if d := math.Hypot(mid.X-c.X, mid.Y-c.Y); d > tolerance {
			t.Errorf("piece %d: distance %g", i, d)
		}
		start = q.End
	}

	// straight lines need only one piece
	line := cubicToQuads(p0, vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 2, Y: 2}, vec.Vec2{X: 3, Y: 3})
	if len(line) != 1 {
		t.Errorf("%d pieces for a line", len(line))
	}
}

func TestContours(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		QuadTo(vec.Vec2{X: 20, Y: 10}, vec.Vec2{X: 10, Y: 20}).
		QuadTo(vec.Vec2{X: 0, Y: 30}, vec.Vec2{X: 0, Y: 0}).
		Close().
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		Close()

	got := contours(p)
	want := []glyf.Contour{{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 0, OnCurve: true},
		{X: 20, Y: 10},
		{X: 0, Y: 30},
	}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong contours (-want +got):\n%s", d)
	}
}

const lineDoc = `<svg><font id="lines" horiz-adv-x="1000">
  <font-face font-family="Lines" units-per-em="1000" ascent="850" descent="150"
    font-style="italic" />
  <glyph glyph-name="square" unicode="A" horiz-adv-x="1000"
    d="M100 0 L900 0 L900 800 L100 800Z" />
  <glyph glyph-name="triangle" unicode="&#x2192;" horiz-adv-x="650"
    d="M0 0 L600 0 L300 700Z" />
</font></svg>`

func TestConvertMetrics(t *testing.T) {
	data, err := Convert(svgfont.Document(lineDoc), testOptions)
	if err != nil {
		t.Fatal(err)
	}
	r := bytes.NewReader(data)
	info, err := header.Read(r)
	if err != nil {
		t.Fatal(err)
	}

	hhea, err := info.ReadTableBytes(r, "hhea")
	if err != nil {
		t.Fatal(err)
	}
	i16 := func(offs int) funit.Int16 {
		return funit.Int16(uint16(hhea[offs])<<8 | uint16(hhea[offs+1]))
	}
	type metrics struct {
		Ascent, Descent, AdvanceMax, MinLSB, MinRSB, XMaxExtent funit.Int16
	}
	got := metrics{i16(4), i16(6), i16(10), i16(12), i16(14), i16(16)}
	want := metrics{850, -150, 1000, 0, 50, 900}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong hhea metrics (-want +got):\n%s", d)
	}

	fd, err := info.TableReader(r, "head")
	if err != nil {
		t.Fatal(err)
	}
	headInfo, err := head.Read(fd)
	if err != nil {
		t.Fatal(err)
	}
	if !headInfo.IsItalic {
		t.Error("italic bit missing in head table")
	}
	if headInfo.FontRevision != 0x00028000 {
		t.Errorf("font revision %s", headInfo.FontRevision)
	}

	fd, err = info.TableReader(r, "OS/2")
	if err != nil {
		t.Fatal(err)
	}
	os2Info, err := os2.Read(fd)
	if err != nil {
		t.Fatal(err)
	}
	if !os2Info.IsItalic || os2Info.IsRegular {
		t.Errorf("italic %t, regular %t", os2Info.IsItalic, os2Info.IsRegular)
	}
	if os2Info.Vendor != "UKWN" {
		t.Errorf("vendor %q", os2Info.Vendor)
	}
	wantRange := os2.UnicodeRange{}
	wantRange.Set(os2.URBasicLatin)
	wantRange.Set(37) // Arrows
	if os2Info.UnicodeRange != wantRange {
		t.Errorf("unicode range %08x, want %08x", os2Info.UnicodeRange, wantRange)
	}
}

func TestUnicodeRange(t *testing.T) {
	got := unicodeRange([]rune{0xEA01, 0x1F600, 0xF0001})
	var want os2.UnicodeRange
	want.Set(60)
	want.Set(90)
	if got != want {
		t.Errorf("got %08x, want %08x", got, want)
	}
}

func TestFontWeight(t *testing.T) {
	cases := []struct {
		in     string
		bold   bool
		weight os2.Weight
	}{
		{"", false, os2.WeightNormal},
		{"bold", true, os2.WeightBold},
		{"lighter", false, os2.WeightLight},
		{"600", true, os2.WeightSemiBold},
		{"1200", false, os2.WeightNormal},
	}
	for _, c := range cases {
		bold, weight := fontWeight(c.in)
		if bold != c.bold || weight != c.weight {
			t.Errorf("%q: got %t %d, want %t %d", c.in, bold, weight, c.bold, c.weight)
		}
	}
}
