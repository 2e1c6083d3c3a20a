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

package loader

import (
	"path"
	"slices"
	"strconv"
	"strings"
)

// Compare defines the canonical order of glyph source files.
//
// Files whose name starts with an explicit code point prefix, like
// "uE001-home.svg", come first.  Apart from this, paths are compared
// piecewise: runs of decimal digits compare by numeric value, all other
// text compares byte by byte, so that "icon2.svg" sorts before
// "icon10.svg" and upper case letters sort before lower case letters.
// Paths which are still equal, like "a01.svg" and "a1.svg", are ordered
// by plain string comparison.
//
// The result is negative if a sorts before b, positive if a sorts after
// b, and zero if the paths are identical.
func Compare(a, b string) int {
	_, _, aPrefix := ParseName(a)
	_, _, bPrefix := ParseName(b)
	if aPrefix != bPrefix {
		if aPrefix {
			return -1
		}
		return 1
	}
	if c := naturalCompare(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort sorts paths into canonical order and removes duplicates.
func Sort(paths []string) []string {
	res := slices.Clone(paths)
	slices.SortFunc(res, Compare)
	return slices.Compact(res)
}

func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		aDigit, bDigit := isDigit(a[0]), isDigit(b[0])
		if aDigit != bDigit {
			return strings.Compare(a[:1], b[:1])
		}

		var pa, pb string
		pa, a = splitRun(a, aDigit)
		pb, b = splitRun(b, bDigit)
		var c int
		if aDigit {
			c = compareNumbers(pa, pb)
		} else {
			c = strings.Compare(pa, pb)
		}
		if c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func splitRun(s string, digits bool) (string, string) {
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

// compareNumbers compares two strings of decimal digits by value.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseName splits the base name of an icon file into the explicit code
// points and the glyph name.  File names of the form
// "uE001-name.svg" or "uE001,uE002-name.svg" carry explicit code points.
// For other names, the code point list is nil and the glyph name is the
// file name without extension.  The last return value reports whether
// a code point prefix was found.
func ParseName(p string) ([]rune, string, bool) {
	stem := strings.TrimSuffix(path.Base(toSlash(p)), path.Ext(p))

	dash := strings.IndexByte(stem, '-')
	if dash <= 0 || dash == len(stem)-1 {
		return nil, stem, false
	}
	var codes []rune
	for _, part := range strings.Split(stem[:dash], ",") {
		if part == "" {
			continue
		}
		if part[0] != 'u' && part[0] != 'U' {
			return nil, stem, false
		}
		for _, hex := range strings.FieldsFunc(part[1:], func(r rune) bool { return r == 'u' || r == 'U' }) {
			if len(hex) < 4 || len(hex) > 6 {
				return nil, stem, false
			}
			x, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return nil, stem, false
			}
			codes = append(codes, rune(x))
		}
	}
	if len(codes) == 0 {
		return nil, stem, false
	}
	return codes, stem[dash+1:], true
}

// toSlash converts Windows path separators, so that path.Base works on
// all platforms.
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
