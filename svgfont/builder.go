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

package svgfont

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/iconfont/internal/logging"
	"seehuhn.de/go/iconfont/loader"
	"seehuhn.de/go/iconfont/metadata"
	"seehuhn.de/go/iconfont/svgpath"
)

// Document is a finished SVG font.
type Document []byte

// Unit is one glyph, ready to be added to a font.
type Unit struct {
	Record *loader.Record
	Meta   *metadata.Metadata
}

// Options control the layout of the generated font.
type Options struct {
	FontName string

	// FontID is the id of the <font> element.  If this is empty, FontName
	// is used.
	FontID string

	FontStyle  string
	FontWeight string

	// FontHeight is the units-per-em value of the font.  If this is zero,
	// the height of the tallest glyph is used.
	FontHeight float64

	// Ascent is the font ascent.  If this is zero, FontHeight-Descent is
	// used.
	Ascent float64

	// Descent is the (positive) depth of the font below the baseline.
	Descent float64

	FixedWidth         bool
	CenterHorizontally bool
	Normalize          bool

	// Round is the rounding precision for coordinates.  Coordinates are
	// rounded to multiples of 1/Round.  Zero disables rounding.
	Round float64

	// Metadata, if non-empty, is included in a <metadata> element.
	Metadata string
}

// Error reports a glyph which could not be added to the font.
type Error struct {
	Path  string
	Glyph string
	Err   error
}

func (err *Error) Error() string {
	if err.Path == "" {
		return "assembly error: " + err.Err.Error()
	}
	return fmt.Sprintf("%s: assembly error: %v", err.Path, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

var (
	errFinished = errors.New("svgfont: builder already finished")
	errNoGlyphs = errors.New("no glyphs")
	errNoMeta   = errors.New("no code points")
	errZeroSize = errors.New("glyph has zero height")
)

type glyphData struct {
	path  string
	name  string
	codes []rune
	icon  *icon
}

// Builder assembles glyphs into an SVG font.  Glyphs are added one at a
// time using Submit, the document is created by Finish.
type Builder struct {
	opt    Options
	glyphs []*glyphData
	err    error
	done   bool
}

// NewBuilder creates a new Builder.
func NewBuilder(opt *Options) *Builder {
	b := &Builder{}
	if opt != nil {
		b.opt = *opt
	}
	if b.opt.FontID == "" {
		b.opt.FontID = b.opt.FontName
	}
	return b
}

// Submit adds a glyph to the font.  Glyphs appear in the font in the order
// they are submitted.  After the first error, all further calls to Submit
// and Finish return this error.
func (b *Builder) Submit(u *Unit) error {
	if b.done {
		return errFinished
	}
	if b.err != nil {
		return b.err
	}

	ic, err := b.parse(u)
	if err != nil {
		b.err = err
		return err
	}
	b.glyphs = append(b.glyphs, &glyphData{
		path:  u.Record.Path,
		name:  u.Meta.Name,
		codes: u.Meta.CodePoints,
		icon:  ic,
	})
	return nil
}

func (b *Builder) parse(u *Unit) (*icon, error) {
	if u == nil || u.Record == nil {
		return nil, &Error{Err: errors.New("missing glyph record")}
	}
	wrap := func(err error) error {
		res := &Error{Path: u.Record.Path, Err: err}
		if u.Meta != nil {
			res.Glyph = u.Meta.Name
		}
		return res
	}

	if u.Meta == nil || len(u.Meta.CodePoints) == 0 {
		return nil, wrap(errNoMeta)
	}
	ic, err := parseIcon(u.Record.Contents)
	if err != nil {
		return nil, wrap(err)
	}
	if ic.Height <= 0 || ic.Width < 0 {
		return nil, wrap(errZeroSize)
	}
	return ic, nil
}

// Finish signals the end of input and returns the font.
func (b *Builder) Finish() (Document, error) {
	if b.done {
		return nil, errFinished
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	if len(b.glyphs) == 0 {
		return nil, &Error{Err: errNoGlyphs}
	}

	start := time.Now()
	opt := &b.opt

	var maxWidth, maxHeight float64
	for _, g := range b.glyphs {
		maxWidth = max(maxWidth, g.icon.Width)
		maxHeight = max(maxHeight, g.icon.Height)
	}
	fontHeight := opt.FontHeight
	if fontHeight <= 0 {
		fontHeight = maxHeight
	}
	fontWidth := maxWidth
	if opt.Normalize {
		fontWidth = 0
		for _, g := range b.glyphs {
			fontWidth = max(fontWidth, fontHeight/g.icon.Height*g.icon.Width)
		}
	} else if opt.FontHeight > 0 {
		fontWidth *= fontHeight / maxHeight
	}
	ascent := opt.Ascent
	if ascent == 0 {
		ascent = fontHeight - opt.Descent
	}

	buf := &bytes.Buffer{}
	buf.WriteString(`<?xml version="1.0" standalone="no"?>` + "\n")
	buf.WriteString(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd" >` + "\n")
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">` + "\n")
	if opt.Metadata != "" {
		buf.WriteString("<metadata>")
		xml.EscapeText(buf, []byte(opt.Metadata))
		buf.WriteString("</metadata>\n")
	}
	buf.WriteString("<defs>\n")
	fmt.Fprintf(buf, "  <font id=%s horiz-adv-x=%s>\n",
		quote(opt.FontID), quote(b.number(fontWidth)))
	fmt.Fprintf(buf, "    <font-face font-family=%s\n", quote(opt.FontName))
	fmt.Fprintf(buf, "      units-per-em=%s ascent=%s\n",
		quote(b.number(fontHeight)), quote(b.number(ascent)))
	fmt.Fprintf(buf, "      descent=%s", quote(b.number(opt.Descent)))
	if opt.FontWeight != "" {
		fmt.Fprintf(buf, " font-weight=%s", quote(opt.FontWeight))
	}
	if opt.FontStyle != "" {
		fmt.Fprintf(buf, " font-style=%s", quote(opt.FontStyle))
	}
	buf.WriteString(" />\n")
	buf.WriteString(`    <missing-glyph horiz-adv-x="0" />` + "\n")

	for _, g := range b.glyphs {
		ratio := fontHeight / maxHeight
		if opt.Normalize {
			ratio = fontHeight / g.icon.Height
		}
		width := g.icon.Width * ratio
		height := g.icon.Height * ratio
		if opt.FixedWidth {
			width = fontWidth
		}

		// flip the y-axis and move the baseline down by the descent
		m := matrix.Matrix{ratio, 0, 0, -ratio, 0, height - opt.Descent}
		if opt.CenterHorizontally {
			if bbox, ok := svgpath.Bounds(g.icon.Outline.Iter().Transform(m)); ok {
				dx := (width-(bbox.URx-bbox.LLx))/2 - bbox.LLx
				m = m.Translate(dx, 0)
			}
		}
		d := svgpath.Format(svgpath.Round(g.icon.Outline.Iter().Transform(m), opt.Round))

		for i, r := range g.codes {
			name := g.name
			if i > 0 {
				name += "-" + strconv.Itoa(i)
			}
			fmt.Fprintf(buf, "    <glyph glyph-name=%s\n", quote(name))
			fmt.Fprintf(buf, "      unicode=\"&#x%X;\"\n", r)
			fmt.Fprintf(buf, "      horiz-adv-x=%s d=%s />\n",
				quote(b.number(width)), quote(d))
		}
	}
	buf.WriteString("  </font>\n</defs>\n</svg>\n")

	logging.Logger().Debug("svg font assembled",
		"glyphs", len(b.glyphs),
		"fontHeight", fontHeight,
		"fontWidth", fontWidth,
		"elapsed", time.Since(start))

	return Document(buf.Bytes()), nil
}

func (b *Builder) number(x float64) string {
	if p := b.opt.Round; p > 0 {
		x = math.Round(x*p) / p
	}
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// quote returns s as a double-quoted XML attribute value.
func quote(s string) string {
	buf := &bytes.Buffer{}
	buf.WriteByte('"')
	xml.EscapeText(buf, []byte(s))
	buf.WriteByte('"')
	return buf.String()
}
