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

// Package woff converts TrueType fonts to the WOFF 1.0 format.
//
// See https://www.w3.org/TR/WOFF/ for a description of the format.
package woff

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/exp/maps"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/parser"

	"seehuhn.de/go/iconfont/internal/sfntfile"
)

const (
	signature       = 0x774F4646 // "wOFF"
	headerSize      = 44
	tableRecordSize = 20
)

// Options control the WOFF conversion.
type Options struct {
	// Metadata is stored, compressed, in the extended metadata block.
	// This should be an XML document, but the content is not checked.
	Metadata []byte
}

type fileHeader struct {
	Signature      uint32
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	Reserved       uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
}

type tableRecord struct {
	Tag          [4]byte
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

// Convert converts a TrueType (or OpenType) font into WOFF format.
func Convert(ttf []byte, opt *Options) ([]byte, error) {
	info, tables, err := sfntfile.ReadAll(ttf)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		opt = &Options{}
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
		hdr.MajorVersion, hdr.MinorVersion = splitVersion(headInfo.FontRevision)
	}

	names := maps.Keys(tables)
	slices.Sort(names)
	records := make([]tableRecord, len(names))
	lengths := make([]uint32, len(names))
	var body bytes.Buffer
	offset := uint32(headerSize + tableRecordSize*len(names))
	for i, name := range names {
		data := tables[name]
		packed, err := compress(data)
		if err != nil {
			return nil, err
		}
		if len(packed) >= len(data) {
			packed = data
		}

		rec := &records[i]
		copy(rec.Tag[:], name)
		rec.Offset = offset + uint32(body.Len())
		rec.CompLength = uint32(len(packed))
		rec.OrigLength = uint32(len(data))
		rec.OrigChecksum = sfntfile.TableChecksum(name, data)
		lengths[i] = rec.OrigLength

		body.Write(packed)
		pad4(&body)
	}
	hdr.TotalSfntSize = sfntfile.Size(lengths)

	if len(opt.Metadata) > 0 {
		packed, err := compress(opt.Metadata)
		if err != nil {
			return nil, err
		}
		hdr.MetaOffset = offset + uint32(body.Len())
		hdr.MetaLength = uint32(len(packed))
		hdr.MetaOrigLength = uint32(len(opt.Metadata))
		body.Write(packed)
		pad4(&body)
	}

	total := int(offset) + body.Len()
	if total > math.MaxUint32 {
		return nil, &parser.InvalidFontError{SubSystem: "woff", Reason: "font too large"}
	}
	hdr.Length = uint32(total)

	out := bytes.NewBuffer(make([]byte, 0, total))
	binary.Write(out, binary.BigEndian, hdr)
	binary.Write(out, binary.BigEndian, records)
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// splitVersion converts a font revision into the major and minor version
// numbers, where the minor number counts thousandths.
func splitVersion(v head.Version) (uint16, uint16) {
	major := uint16(v >> 16)
	minor := math.Round(float64(v&0xFFFF) / 65536 * 1000)
	return major, uint16(minor)
}

func compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pad4(buf *bytes.Buffer) {
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
}

// Font is the content of a WOFF file.
type Font struct {
	Flavor       uint32
	MajorVersion uint16
	MinorVersion uint16
	Tables       map[string][]byte
	Metadata     []byte
}

func malformed(reason string) error {
	return &parser.InvalidFontError{SubSystem: "woff", Reason: reason}
}

// Read decodes a WOFF file.
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

	records := make([]tableRecord, hdr.NumTables)
	if err := binary.Read(r, binary.BigEndian, records); err != nil {
		return nil, malformed("table directory truncated")
	}

	res := &Font{
		Flavor:       hdr.Flavor,
		MajorVersion: hdr.MajorVersion,
		MinorVersion: hdr.MinorVersion,
		Tables:       make(map[string][]byte, len(records)),
	}
	for _, rec := range records {
		name := string(rec.Tag[:])
		body, err := unpack(data, rec.Offset, rec.CompLength, rec.OrigLength)
		if err != nil {
			return nil, fmt.Errorf("woff: table %q: %w", name, err)
		}
		res.Tables[name] = body
	}
	if hdr.MetaLength > 0 {
		meta, err := unpack(data, hdr.MetaOffset, hdr.MetaLength, hdr.MetaOrigLength)
		if err != nil {
			return nil, fmt.Errorf("woff: metadata: %w", err)
		}
		res.Metadata = meta
	}
	return res, nil
}

func unpack(data []byte, offset, compLength, origLength uint32) ([]byte, error) {
	end := uint64(offset) + uint64(compLength)
	if end > uint64(len(data)) {
		return nil, malformed("data out of range")
	}
	packed := data[offset:end]
	if compLength == origLength {
		return packed, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(packed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	res, err := io.ReadAll(io.LimitReader(zr, int64(origLength)+1))
	if err != nil {
		return nil, err
	}
	if len(res) != int(origLength) {
		return nil, malformed("wrong uncompressed length")
	}
	return res, nil
}
