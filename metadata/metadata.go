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

// Package metadata assigns glyph names and code points to icons.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"unicode/utf8"

	"seehuhn.de/go/iconfont/loader"
)

// Metadata is the identity of one glyph.
type Metadata struct {
	Name       string `json:"name"`
	CodePoints []rune `json:"unicode"`
	Path       string `json:"path"`

	// Renamed is set if the glyph name was changed from the file stem
	// by prepending the code point.
	Renamed bool `json:"renamed"`
}

// Provider assigns metadata to glyph source files.  Assign is called once
// per file, in canonical order.
type Provider interface {
	Assign(path string) (*Metadata, error)
}

// ProviderFunc adapts an ordinary function to the Provider interface.
type ProviderFunc func(path string) (*Metadata, error)

// Assign implements the Provider interface.
func (f ProviderFunc) Assign(path string) (*Metadata, error) {
	return f(path)
}

// Counter is the default metadata provider.
//
// Glyph names are the file stems.  Files named like "uE001-home.svg" get
// the code points given in the name, all other files get the next unused
// code point from a running counter.
type Counter struct {
	prependUnicode bool

	mu   sync.Mutex
	next rune
	used map[rune]bool
}

// DefaultStart is the first code point assigned by a Counter, unless a
// different start value is given.
const DefaultStart rune = 0xEA01

// NewCounter returns a new Counter, which assigns code points starting
// at start.  If prependUnicode is set, the glyph names are prefixed with
// the code point, as in "uea01-home".
func NewCounter(start rune, prependUnicode bool) *Counter {
	return &Counter{
		prependUnicode: prependUnicode,
		next:           start,
		used:           make(map[rune]bool),
	}
}

// Assign implements the Provider interface.
func (c *Counter) Assign(path string) (*Metadata, error) {
	codes, name, explicit := loader.ParseName(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if explicit {
		for _, r := range codes {
			c.used[r] = true
		}
	} else {
		for c.used[c.next] || !isXMLChar(c.next) && c.next <= utf8.MaxRune {
			c.next++
		}
		if c.next > utf8.MaxRune {
			return nil, errExhausted
		}
		codes = []rune{c.next}
		c.used[c.next] = true
		c.next++
	}

	md := &Metadata{
		Name:       name,
		CodePoints: codes,
		Path:       path,
	}
	if c.prependUnicode && !explicit {
		md.Name = "u" + strconv.FormatInt(int64(codes[0]), 16) + "-" + name
		md.Renamed = true
	}
	return md, nil
}

var errExhausted = errors.New("no more code points available")

// Error reports a metadata problem for a glyph source file.
type Error struct {
	Path string
	Err  error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: metadata error: %v", err.Path, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Assign obtains the metadata for all records from the provider.  The
// provider is called sequentially, in the order of the records, and the
// result has the same order.  If p is nil, a Counter starting at
// DefaultStart is used.
func Assign(ctx context.Context, p Provider, records []*loader.Record) ([]*Metadata, error) {
	if p == nil {
		p = NewCounter(DefaultStart, false)
	}

	res := make([]*Metadata, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		md, err := p.Assign(rec.Path)
		if err != nil {
			return nil, &Error{Path: rec.Path, Err: err}
		}
		if err := check(md); err != nil {
			return nil, &Error{Path: rec.Path, Err: err}
		}
		if md.Path == "" {
			md.Path = rec.Path
		}
		res[i] = md
	}
	return res, nil
}

func check(md *Metadata) error {
	if md == nil {
		return errors.New("no metadata")
	}
	if md.Name == "" {
		return errors.New("empty glyph name")
	}
	if len(md.CodePoints) == 0 {
		return errors.New("no code points")
	}
	for _, r := range md.CodePoints {
		if !isXMLChar(r) {
			return fmt.Errorf("invalid code point %U", r)
		}
	}
	return nil
}

// isXMLChar reports whether r may appear in an XML 1.0 document.  Only
// these code points can be written to the unicode attribute of an SVG
// glyph.
func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r < 0x20:
		return false
	case r >= 0xD800 && r <= 0xDFFF:
		return false
	case r == 0xFFFE || r == 0xFFFF:
		return false
	}
	return r <= utf8.MaxRune
}
