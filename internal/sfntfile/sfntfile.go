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


// Package sfntfile holds the pieces of sfnt file handling which the web
// font containers need beyond what seehuhn.de/go/sfnt/header exports.
package sfntfile

import (
	"bytes"

	"seehuhn.de/go/sfnt/header"
)

// ReadAll reads an in-memory sfnt file and returns the directory together
// with the contents of every table.
func ReadAll(data []byte) (*header.Info, map[string][]byte, error) {
	r := bytes.NewReader(data)
	info, err := header.Read(r)
	if err != nil {
		return nil, nil, err
	}
	tables := make(map[string][]byte, len(info.Toc))
	for name := range info.Toc {
		body, err := info.ReadTableBytes(r, name)
		if err != nil {
			return nil, nil, err
		}
		tables[name] = body
	}
	return info, tables, nil
}

// Checksum computes the sfnt checksum of a table.  The data is treated as a
// sequence of big-endian uint32 values, padded with zeros to a multiple of
// four bytes.
func Checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) / 4 * 4
	for i := 0; i < n; i += 4 {
		sum += uint32(data[i])<<24 | uint32(data[i+1])<<16 |
			uint32(data[i+2])<<8 | uint32(data[i+3])
	}
	if k := len(data) - n; k > 0 {
		var last [4]byte
		copy(last[:], data[n:])
		sum += uint32(last[0])<<24 | uint32(last[1])<<16 |
			uint32(last[2])<<8 | uint32(last[3])
	}
	return sum
}

// TableChecksum returns the checksum of a table as stored in the sfnt table
// directory.  For the "head" table the checkSumAdjustment field counts as
// zero.
func TableChecksum(name string, data []byte) uint32 {
	sum := Checksum(data)
	if name == "head" && len(data) >= 12 {
		sum -= uint32(data[8])<<24 | uint32(data[9])<<16 |
			uint32(data[10])<<8 | uint32(data[11])
	}
	return sum
}

// Size returns the size of an sfnt file with tables of the given lengths,
// including the table directory and all padding.
func Size(lengths []uint32) uint32 {
	total := uint32(12 + 16*len(lengths))
	for _, l := range lengths {
		total += 4 * ((l + 3) / 4)
	}
	return total
}
