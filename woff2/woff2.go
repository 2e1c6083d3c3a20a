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

// Package woff2 converts TrueType fonts to the WOFF 2.0 format.
//
// The "glyf" and "loca" tables are stored using the null transform, all
// tables are compressed together into a single Brotli stream.
// See https://www.w3.org/TR/WOFF2/ for a description of the format.
package woff2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/andybalholm/brotli"
	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/parser"

	"seehuhn.de/go/iconfont/internal/sfntfile"
)

const (
	signature  = 0x774F4632 // "wOF2"
	headerSize = 48

	arbitraryTag  = 63
	nullTransform = 3 // transform version of untransformed glyf and loca
)

type fileHeader struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// knownTags lists the tags which can be encoded by their index.
var knownTags = [...]string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

var tagIndex = func() map[string]byte {
	res := make(map[string]byte, len(knownTags))
	for i, tag := range knownTags {
		res[tag] = byte(i)
	}
	return res
}()

// Convert converts a TrueType (or OpenType) font into WOFF2 format.
// Bit 11 of the head flags is set in the output and the head checksum
// adjustment is updated to match.  The input is not modified.
func Convert(ttf []byte) ([]byte, error) {
	info, tables, err := sfntfile.ReadAll(ttf)
	if err != nil {
		return nil, err
	}

	hdr := &fileHeader{
		Signature: signature,
		Flavor:    info.ScalerType,
		NumTables: uint16(len(tables)),
	}
	if headData, ok := tables["head"]; ok {
		headInfo, err := head.Read(bytes.NewReader(headData))
		if err != nil {
			return nil, err
		}
		v := uint32(headInfo.FontRevision)
		hdr.MajorVersion = uint16(v >> 16)
		hdr.MinorVersion = uint16(math.Round(float64(v&0xFFFF) / 65536 * 1000))

		if err := markTransformed(info.ScalerType, tables); err != nil {
			return nil, err
		}
	}

	names := maps.Keys(tables)
	slices.Sort(names)
	names = tableOrder(names)

	dir := &bytes.Buffer{}
	stream := &bytes.Buffer{}
	sfntSize := uint64(12 + 16*len(names))
	for _, name := range names {
		data := tables[name]

		idx, known := tagIndex[name]
		if !known {
			idx = arbitraryTag
		}
		flags := idx
		if name == "glyf" || name == "loca" {
			flags |= nullTransform << 6
		}
		dir.WriteByte(flags)
		if !known {
			dir.WriteString(name)
		}
		dir.Write(appendBase128(nil, uint32(len(data))))

		stream.Write(data)
		sfntSize += (uint64(len(data)) + 3) &^ 3
	}
	if sfntSize > math.MaxUint32 {
		return nil, malformed("font too large")
	}
	hdr.TotalSfntSize = uint32(sfntSize)

	packed := &bytes.Buffer{}
	w := brotli.NewWriterLevel(packed, brotli.BestCompression)
	if _, err := w.Write(stream.Bytes()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	hdr.TotalCompressedSize = uint32(packed.Len())

	length := headerSize + dir.Len() + packed.Len()
	length = (length + 3) &^ 3
	hdr.Length = uint32(length)

	out := bytes.NewBuffer(make([]byte, 0, length))
	binary.Write(out, binary.BigEndian, hdr)
	out.Write(dir.Bytes())
	out.Write(packed.Bytes())
	for out.Len() < length {
		out.WriteByte(0)
	}
	return out.Bytes(), nil
}

// markTransformed sets the "font has been transformed" bit in the head flags
// and recomputes the checksum adjustment for the resulting sfnt file.
func markTransformed(scalerType uint32, tables map[string][]byte) error {
	headData := tables["head"]
	if len(headData) < 18 {
		return malformed("head table too short")
	}
	headData = slices.Clone(headData)
	flags := binary.BigEndian.Uint16(headData[16:18])
	binary.BigEndian.PutUint16(headData[16:18], flags|1<<11)
	tables["head"] = headData

	// header.Write stores the new checksum adjustment in headData
	_, err := header.Write(io.Discard, scalerType, tables)
	return err
}

// tableOrder moves "loca" directly after "glyf".
func tableOrder(names []string) []string {
	if !slices.Contains(names, "glyf") || !slices.Contains(names, "loca") {
		return names
	}
	res := make([]string, 0, len(names))
	for _, name := range names {
		switch name {
		case "loca":
			// written together with glyf
		case "glyf":
			res = append(res, "glyf", "loca")
		default:
			res = append(res, name)
		}
	}
	return res
}

// appendBase128 appends x in UIntBase128 encoding.
func appendBase128(buf []byte, x uint32) []byte {
	n := 1
	for y := x >> 7; y > 0; y >>= 7 {
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b := byte(x>>(7*i)) & 0x7F
		if i > 0 {
			b |= 0x80
		}
		buf = append(buf, b)
	}
	return buf
}

var errBase128 = errors.New("invalid UIntBase128 value")

func readBase128(r io.ByteReader) (uint32, error) {
	var res uint32
	for i := range 5 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == 0 && b == 0x80 {
			return 0, errBase128 // leading zeros
		}
		if res&0xFE000000 != 0 {
			return 0, errBase128 // overflow
		}
		res = res<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return res, nil
		}
	}
	return 0, errBase128
}

// Font is the content of a WOFF2 file.
type Font struct {
	Flavor       uint32
	MajorVersion uint16
	MinorVersion uint16
	Tables       map[string][]byte
}

func malformed(reason string) error {
	return &parser.InvalidFontError{SubSystem: "woff2", Reason: reason}
}

// Read decodes a WOFF2 file.  Only fonts without transformed tables are
// supported.
func Read(data []byte) (*Font, error) {
	r := bytes.NewReader(data)
	hdr := &fileHeader{}
	if err := binary.Read(r, binary.BigEndian, hdr); err != nil {
		return nil, malformed("header truncated")
	}
	if hdr.Signature != signature {
		return nil, malformed("wrong signature")
	}
	if int(hdr.Length) != len(data) {
		return nil, malformed("wrong length")
	}

	type entry struct {
		tag    string
		length uint32
	}
	entries := make([]entry, hdr.NumTables)
	for i := range entries {
		flags, err := r.ReadByte()
		if err != nil {
			return nil, malformed("table directory truncated")
		}
		idx := flags & 0x3F
		var tag string
		if idx == arbitraryTag {
			var buf [4]byte
			if _, err := io.ReadFull(r, buf[:]); err != nil {
				return nil, malformed("table directory truncated")
			}
			tag = string(buf[:])
		} else if int(idx) < len(knownTags) {
			tag = knownTags[idx]
		} else {
			return nil, malformed("invalid table index")
		}

		transform := flags >> 6
		isGlyf := tag == "glyf" || tag == "loca"
		if (isGlyf && transform != nullTransform) || (!isGlyf && transform != 0) {
			return nil, &parser.NotSupportedError{
				SubSystem: "woff2",
				Feature:   fmt.Sprintf("transformed %q table", tag),
			}
		}

		length, err := readBase128(r)
		if err != nil {
			return nil, malformed(err.Error())
		}
		entries[i] = entry{tag, length}
	}

	start := len(data) - r.Len()
	end := uint64(start) + uint64(hdr.TotalCompressedSize)
	if end > uint64(len(data)) {
		return nil, malformed("compressed data out of range")
	}
	stream, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data[start:end])))
	if err != nil {
		return nil, fmt.Errorf("woff2: %w", err)
	}

	res := &Font{
		Flavor:       hdr.Flavor,
		MajorVersion: hdr.MajorVersion,
		MinorVersion: hdr.MinorVersion,
		Tables:       make(map[string][]byte, len(entries)),
	}
	pos := uint64(0)
	for _, e := range entries {
		next := pos + uint64(e.length)
		if next > uint64(len(stream)) {
			return nil, malformed("table data out of range")
		}
		res.Tables[e.tag] = stream[pos:next]
		pos = next
	}
	return res, nil
}
