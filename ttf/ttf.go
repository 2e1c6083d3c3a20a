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


// Package ttf converts SVG fonts into TrueType fonts.
//
// The generated fonts contain the tables "OS/2", "cmap", "glyf", "head",
// "hhea", "hmtx", "loca", "maxp", "name" and "post".  Glyph 0 is an empty
// ".notdef" glyph, the remaining glyphs appear in document order.
//
// The font is assembled by seehuhn.de/go/sfnt.  Afterwards the "name",
// "OS/2" and "head" tables are adjusted for the needs of icon fonts.
package ttf

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/maxp"
	"seehuhn.de/go/sfnt/name"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/parser"

	"seehuhn.de/go/iconfont/internal/logging"
	"seehuhn.de/go/iconfont/internal/sfntfile"
	"seehuhn.de/go/iconfont/svgfont"
)

// Options contain information which is stored in the "name" and "head"
// tables.  None of the options affect the glyph outlines.
type Options struct {
	Copyright   string `json:"copyright,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`

	// Version is the version string of the font.  The first number in the
	// string is also used as the font revision.  The default is "Version 1.0".
	Version string `json:"version,omitempty"`

	// Timestamp is the creation and modification time of the font, in
	// seconds since the Unix epoch.  If this is zero, the current time is
	// used.
	Timestamp int64 `json:"ts,omitempty"`
}

// DefaultVersion is used if no version string is given.
const DefaultVersion = "Version 1.0"

const (
	minUnitsPerEm = 16
	maxUnitsPerEm = 16384
)

func invalid(format string, args ...any) error {
	return &parser.InvalidFontError{
		SubSystem: "ttf",
		Reason:    fmt.Sprintf(format, args...),
	}
}

// Convert creates a TrueType font from an SVG font.
func Convert(doc svgfont.Document, opt *Options) ([]byte, error) {
	if opt == nil {
		opt = &Options{}
	}
	start := time.Now()

	font, err := svgfont.Parse(doc)
	if err != nil {
		return nil, err
	}

	upm := math.Round(font.UnitsPerEm)
	if upm < minUnitsPerEm || upm > maxUnitsPerEm {
		return nil, invalid("units per em %g out of range", font.UnitsPerEm)
	}
	numGlyphs := len(font.Glyphs) + 1
	if numGlyphs > 0xFFFF {
		return nil, invalid("too many glyphs (%d)", numGlyphs)
	}

	outlines := &glyf.Outlines{
		Glyphs: make(glyf.Glyphs, numGlyphs),
		Widths: make([]funit.Int16, numGlyphs),
		Names:  make([]string, numGlyphs),
		Maxp:   &maxp.TTFInfo{MaxZones: 2},
	}
	outlines.Names[0] = ".notdef"

	bmp := cmap.Format4{}
	full := cmap.Format12{}
	var codes []rune
	for i, g := range font.Glyphs {
		gid := glyph.ID(i + 1)
		if cc := contours(g.Outline); len(cc) > 0 {
			simple := &glyf.SimpleUnpacked{Contours: cc}
			gg := simple.AsGlyph()
			outlines.Glyphs[gid] = &gg
			updateMaxp(outlines.Maxp, cc)
		}
		outlines.Widths[gid] = toFUnit(g.HorizAdvX)

		outlines.Names[gid] = g.Name
		if g.Name == "" {
			outlines.Names[gid] = "glyph" + strconv.Itoa(int(gid))
		}

		// Strings of several characters would be ligatures.  U+FFFF
		// terminates format 4 subtables and cannot be mapped.
		r, size := utf8.DecodeRuneInString(g.Unicode)
		if size == 0 || size != len(g.Unicode) || r == 0xFFFF {
			continue
		}
		if _, seen := full[uint32(r)]; seen {
			continue
		}
		full[uint32(r)] = gid
		if r < 0xFFFF {
			bmp[uint16(r)] = gid
		}
		codes = append(codes, r)
	}

	isBold, weight := fontWeight(font.Weight)
	isItalic := font.Style == "italic" || font.Style == "oblique"

	family := font.Family
	if family == "" {
		family = font.ID
	}
	if family == "" {
		family = "iconfont"
	}

	version := opt.Version
	if version == "" {
		version = DefaultVersion
	}
	ts := time.Unix(opt.Timestamp, 0)
	if opt.Timestamp == 0 {
		ts = time.Now()
	}
	ts = ts.UTC().Truncate(time.Second)

	u := upm
	f := &sfnt.Font{
		FamilyName: family,
		Width:      os2.WidthNormal,
		Weight:     weight,
		IsBold:     isBold,
		IsItalic:   isItalic,

		Version:          head.Version(math.Round(versionNumber(version) * 65536)),
		CreationTime:     ts,
		ModificationTime: ts,

		Copyright:   opt.Copyright,
		Description: opt.Description,
		PermUse:     os2.PermInstall,

		UnitsPerEm: uint16(upm),
		FontMatrix: matrix.Matrix{1 / u, 0, 0, 1 / u, 0, 0},

		Ascent:    toFUnit(font.Ascent),
		Descent:   -toFUnit(font.Descent),
		CapHeight: toFUnit(font.Ascent),

		UnderlinePosition:  funit.Float64(-math.Round(0.075 * u)),
		UnderlineThickness: funit.Float64(math.Round(0.05 * u)),

		Outlines: outlines,
	}
	f.IsRegular = f.Subfamily() == "Regular"

	cmapTable := cmap.Table{}
	bmpData := bmp.Encode(0)
	cmapTable[cmap.Key{PlatformID: 0, EncodingID: 3}] = bmpData
	cmapTable[cmap.Key{PlatformID: 3, EncodingID: 1}] = bmpData
	if len(full) > len(bmp) {
		fullData := full.Encode(0)
		cmapTable[cmap.Key{PlatformID: 0, EncodingID: 4}] = fullData
		cmapTable[cmap.Key{PlatformID: 3, EncodingID: 10}] = fullData
	}
	f.CMapTable = cmapTable

	for _, r := range codes {
		if r >= 0x20 && r < 0x100 {
			f.CodePageRange.Set(os2.CP1252)
			break
		}
	}

	raw := &bytes.Buffer{}
	if _, err := f.Write(raw); err != nil {
		return nil, err
	}
	_, tables, err := sfntfile.ReadAll(raw.Bytes())
	if err != nil {
		return nil, err
	}

	tables["name"] = makeName(f, version, opt.URL)

	os2Info, err := os2.Read(bytes.NewReader(tables["OS/2"]))
	if err != nil {
		return nil, err
	}
	os2Info.IsItalic = isItalic
	os2Info.Vendor = "UKWN"
	os2Info.UnicodeRange = unicodeRange(codes)
	os2Info.SubscriptXSize = toFUnit(0.65 * u)
	os2Info.SubscriptYSize = toFUnit(0.7 * u)
	os2Info.SubscriptYOffset = toFUnit(0.14 * u)
	os2Info.SuperscriptXSize = toFUnit(0.65 * u)
	os2Info.SuperscriptYSize = toFUnit(0.7 * u)
	os2Info.SuperscriptYOffset = toFUnit(0.48 * u)
	os2Info.StrikeoutSize = toFUnit(0.05 * u)
	os2Info.StrikeoutPosition = toFUnit(0.26 * u)
	tables["OS/2"] = os2Info.Encode()

	// sfnt derives the italic bit from the italic angle, which is zero
	// for icons.
	headInfo, err := head.Read(bytes.NewReader(tables["head"]))
	if err != nil {
		return nil, err
	}
	headInfo.IsItalic = isItalic
	tables["head"] = headInfo.Encode()

	buf := &bytes.Buffer{}
	if _, err := header.Write(buf, header.ScalerTypeTrueType, tables); err != nil {
		return nil, err
	}

	logging.Logger().Debug("ttf font created",
		"glyphs", numGlyphs,
		"codePoints", len(codes),
		"bytes", buf.Len(),
		"elapsed", time.Since(start))

	return buf.Bytes(), nil
}

// makeName builds the "name" table.  The version string is stored as
// given, and the full name of a regular font is the family name alone.
func makeName(f *sfnt.Font, version, url string) []byte {
	subfamily := f.Subfamily()
	fullName := f.FamilyName
	if subfamily != "Regular" {
		fullName += " " + subfamily
	}
	t := &name.Table{
		Copyright:      f.Copyright,
		Family:         f.FamilyName,
		Subfamily:      subfamily,
		Identifier:     fmt.Sprintf("%s:%s:%d", version, fullName, f.CreationTime.Unix()),
		FullName:       fullName,
		Version:        version,
		PostScriptName: postScriptName(fullName),
		Description:    f.Description,
		VendorURL:      url,
	}
	info := &name.Info{
		Mac:     name.Tables{"en": t},
		Windows: name.Tables{"en-US": t},
	}
	return info.Encode(1)
}

func updateMaxp(info *maxp.TTFInfo, cc []glyf.Contour) {
	points := 0
	for _, c := range cc {
		points += len(c)
	}
	info.MaxPoints = max(info.MaxPoints, uint16(min(points, math.MaxUint16)))
	info.MaxContours = max(info.MaxContours, uint16(min(len(cc), math.MaxUint16)))
}

// fontWeight interprets the value of the font-weight attribute.
func fontWeight(s string) (isBold bool, weightClass os2.Weight) {
	switch s {
	case "", "normal":
		return false, os2.WeightNormal
	case "bold", "bolder":
		return true, os2.WeightBold
	case "lighter":
		return false, os2.WeightLight
	}
	w, err := strconv.Atoi(s)
	if err != nil || w < 1 || w > 1000 {
		return false, os2.WeightNormal
	}
	return w >= 600, os2.Weight(w)
}

var versionRe = regexp.MustCompile(`\d+(\.\d+)?`)

// versionNumber extracts the first number from a version string.
func versionNumber(s string) float64 {
	x, err := strconv.ParseFloat(versionRe.FindString(s), 64)
	if err != nil {
		return 1
	}
	return x
}

// postScriptName removes characters which are not allowed in PostScript
// font names.
func postScriptName(s string) string {
	res := strings.Map(func(r rune) rune {
		if r < 33 || r > 126 || strings.ContainsRune("[](){}<>/%", r) {
			return -1
		}
		return r
	}, s)
	if len(res) > 63 {
		res = res[:63]
	}
	if res == "" {
		res = "iconfont"
	}
	return res
}

// unicodeBlocks lists the ulUnicodeRange bits which can be set by an
// icon font.  Characters outside these blocks do not set any bit.
var unicodeBlocks = []struct {
	first, last rune
	bit         os2.UnicodeRangeBit
}{
	{0x0000, 0x007F, os2.URBasicLatin},
	{0x0080, 0x00FF, os2.URLatin1Sup},
	{0x0100, 0x017F, os2.URLatinExtA},
	{0x2000, 0x206F, os2.URGeneralPunctuation},
	{0x2190, 0x21FF, 37},    // Arrows
	{0x2200, 0x22FF, 38},    // Mathematical Operators
	{0x2500, 0x257F, 43},    // Box Drawing
	{0x25A0, 0x25FF, 45},    // Geometric Shapes
	{0x2600, 0x26FF, 46},    // Miscellaneous Symbols
	{0x2700, 0x27BF, 47},    // Dingbats
	{0xE000, 0xF8FF, 60},    // Private Use Area (plane 0)
	{0xF0000, 0x10FFFF, 90}, // Private Use (plane 15 and 16)
}

// unicodeRange returns the OS/2 Unicode range bits for the given code
// points.  The "Non-Plane 0" bit is set by the os2 package.
func unicodeRange(codes []rune) os2.UnicodeRange {
	var res os2.UnicodeRange
	for _, r := range codes {
		for _, blk := range unicodeBlocks {
			if r >= blk.first && r <= blk.last {
				res.Set(blk.bit)
				break
			}
		}
	}
	return res
}
