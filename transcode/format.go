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

package transcode

import (
	"fmt"
	"slices"
)

// Format identifies an output font format.
type Format string

// These are the supported output formats.
const (
	SVG   Format = "svg"
	TTF   Format = "ttf"
	EOT   Format = "eot"
	WOFF  Format = "woff"
	WOFF2 Format = "woff2"
)

// AllFormats lists all supported formats, in canonical order.
var AllFormats = []Format{SVG, TTF, EOT, WOFF, WOFF2}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	return slices.Contains(AllFormats, f)
}

// ParseFormat converts a format name like "woff2" into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown font format %q", s)
	}
	return f, nil
}

// Artifact is one generated font file.
type Artifact struct {
	Format Format
	Data   []byte
}

// Sorted returns the artifacts in canonical format order.
func Sorted(m map[Format][]byte) []Artifact {
	var res []Artifact
	for _, f := range AllFormats {
		if data, ok := m[f]; ok {
			res = append(res, Artifact{Format: f, Data: data})
		}
	}
	return res
}
