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

// Package eot wraps TrueType fonts in the Embedded OpenType format.
//
// See https://www.w3.org/submissions/EOT/ for a description of the format.
package eot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/os2"
	"seehuhn.de/go/sfnt/parser"

	"seehuhn.de/go/iconfont/internal/sfntfile"
)

const (
	version     = 0x00020001
	magicNumber = 0x504C

	defaultCharset = 1
)

// fixedHeader is the part of the EOT header before the name strings.
// All values are little-endian.
type fixedHeader struct {
	EOTSize            uint32
	FontDataSize       uint32
	Version            uint32
	Flags              uint32
	Panose             [10]byte
	Charset            byte
	Italic             byte
	Weight             uint32
	FsType             uint16
	MagicNumber        uint16
	UnicodeRange       [4]uint32
	CodePageRange      [2]uint32
	CheckSumAdjustment uint32
	Reserved           [4]uint32
	Padding1           uint16
}

// Names are the strings stored in the EOT header.
type Names struct {
	Family  string
	Style   string
	Version string
	Full    string
}

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Convert wraps a TrueType font into an EOT file.
func Convert(ttf []byte) ([]byte, error) {
	_, tables, err := sfntfile.ReadAll(ttf)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"head", "OS/2", "name"} {
		if tables[name] == nil {
			return nil, &header.ErrMissing{TableName: name}
		}
	}
	headData, os2Data := tables["head"], tables["OS/2"]
	if len(headData) < 12 || len(os2Data) < 10 {
		return nil, &parser.InvalidFontError{
			SubSystem: "eot",
			Reason:    "truncated head or OS/2 table",
		}
	}
	os2Info, err := os2.Read(bytes.NewReader(os2Data))
	if err != nil {
		return nil, err
	}
	names, err := readNames(ttf)
	if err != nil {
		return nil, err
	}

	hdr := &fixedHeader{
		FontDataSize:       uint32(len(ttf)),
		Version:            version,
		Panose:             os2Info.Panose,
		Charset:            defaultCharset,
		Weight:             uint32(os2Info.WeightClass),
		FsType:             binary.BigEndian.Uint16(os2Data[8:10]),
		MagicNumber:        magicNumber,
		UnicodeRange:       os2Info.UnicodeRange,
		CodePageRange:      [2]uint32{uint32(os2Info.CodePageRange), uint32(os2Info.CodePageRange >> 32)},
		CheckSumAdjustment: binary.BigEndian.Uint32(headData[8:12]),
	}
	if os2Info.IsItalic {
		hdr.Italic = 1
	}

	var nameData [][]byte
	for _, s := range []string{names.Family, names.Style, names.Version, names.Full} {
		b, err := utf16LE.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, err
		}
		if len(b) > 0xFFFF {
			return nil, &parser.InvalidFontError{
				SubSystem: "eot",
				Reason:    "name string too long",
			}
		}
		nameData = append(nameData, b)
	}

	size := binary.Size(hdr)
	for _, b := range nameData {
		size += 2 + len(b) + 2 // size, string, padding
	}
	size += 2 // root string size
	size += len(ttf)
	hdr.EOTSize = uint32(size)

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	for _, b := range nameData {
		binary.Write(buf, binary.LittleEndian, uint16(len(b)))
		buf.Write(b)
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}
	binary.Write(buf, binary.LittleEndian, uint16(0))
	buf.Write(ttf)

	return buf.Bytes(), nil
}

// readNames gets the family, style, version and full names from the
// "name" table of a TrueType font.
func readNames(ttf []byte) (*Names, error) {
	f, err := xsfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("eot: %w", err)
	}

	buf := &xsfnt.Buffer{}
	get := func(id xsfnt.NameID) (string, error) {
		s, err := f.Name(buf, id)
		if errors.Is(err, xsfnt.ErrNotFound) {
			return "", nil
		}
		return s, err
	}

	res := &Names{}
	for _, x := range []struct {
		id  xsfnt.NameID
		out *string
	}{
		{xsfnt.NameIDFamily, &res.Family},
		{xsfnt.NameIDSubfamily, &res.Style},
		{xsfnt.NameIDVersion, &res.Version},
		{xsfnt.NameIDFull, &res.Full},
	} {
		*x.out, err = get(x.id)
		if err != nil {
			return nil, fmt.Errorf("eot: %w", err)
		}
	}
	return res, nil
}

// Header is the information from the header of an EOT file.
type Header struct {
	Version            uint32
	Panose             [10]byte
	Italic             bool
	Weight             uint32
	FsType             uint16
	UnicodeRange       [4]uint32
	CodePageRange      [2]uint32
	CheckSumAdjustment uint32
	Names
}

var errMalformed = &parser.InvalidFontError{
	SubSystem: "eot",
	Reason:    "malformed header",
}

// Read decodes an uncompressed EOT file and returns the header together
// with the embedded font data.
func Read(data []byte) (*Header, []byte, error) {
	hdr := &fixedHeader{}
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, hdr); err != nil {
		return nil, nil, errMalformed
	}
	if hdr.MagicNumber != magicNumber || int(hdr.EOTSize) != len(data) {
		return nil, nil, errMalformed
	}
	if hdr.Flags != 0 {
		return nil, nil, &parser.NotSupportedError{
			SubSystem: "eot",
			Feature:   fmt.Sprintf("flags 0x%x", hdr.Flags),
		}
	}

	res := &Header{
		Version:            hdr.Version,
		Panose:             hdr.Panose,
		Italic:             hdr.Italic != 0,
		Weight:             hdr.Weight,
		FsType:             hdr.FsType,
		UnicodeRange:       hdr.UnicodeRange,
		CodePageRange:      hdr.CodePageRange,
		CheckSumAdjustment: hdr.CheckSumAdjustment,
	}

	dec := utf16LE.NewDecoder()
	for i, out := range []*string{&res.Family, &res.Style, &res.Names.Version, &res.Full} {
		if i > 0 {
			var pad uint16
			if err := binary.Read(r, binary.LittleEndian, &pad); err != nil {
				return nil, nil, errMalformed
			}
		}
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil || int(n) > r.Len() {
			return nil, nil, errMalformed
		}
		b := make([]byte, n)
		r.Read(b)
		s, err := dec.Bytes(b)
		if err != nil {
			return nil, nil, errMalformed
		}
		*out = string(s)
	}

	if hdr.Version >= version {
		var pad, rootSize uint16
		binary.Read(r, binary.LittleEndian, &pad)
		if err := binary.Read(r, binary.LittleEndian, &rootSize); err != nil || int(rootSize) > r.Len() {
			return nil, nil, errMalformed
		}
		r.Seek(int64(rootSize), io.SeekCurrent)
	}

	start := len(data) - r.Len()
	if int(hdr.FontDataSize) != r.Len() {
		return nil, nil, errMalformed
	}
	return res, data[start:], nil
}
