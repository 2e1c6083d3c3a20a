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
	"io"
	"math"
	"strings"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/iconfont/svgpath"
)

// Font is the content of an SVG font document.
type Font struct {
	ID         string
	Family     string
	Weight     string
	Style      string
	UnitsPerEm float64
	Ascent     float64
	Descent    float64 // positive
	HorizAdvX  float64
	Metadata   string
	Glyphs     []*Glyph
}

// Glyph is one <glyph> element of an SVG font.
type Glyph struct {
	Name      string
	Unicode   string
	HorizAdvX float64
	Outline   *path.Data
}

var errNoFont = errors.New("svgfont: no <font> element")

// Parse reads an SVG font document.  Only the first <font> element is
// used.
func Parse(doc Document) (*Font, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	var res *Font
	var stack []string
	var meta strings.Builder
	hasAscent := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("svgfont: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			switch t.Name.Local {
			case "font":
				if res != nil {
					if err := dec.Skip(); err != nil {
						return nil, fmt.Errorf("svgfont: %w", err)
					}
					stack = stack[:len(stack)-1]
					continue
				}
				res = &Font{
					ID:         attr(t.Attr, "id"),
					UnitsPerEm: 1000,
				}
				res.HorizAdvX, _ = parseLength(attr(t.Attr, "horiz-adv-x"))

			case "font-face":
				if res == nil {
					continue
				}
				res.Family = attr(t.Attr, "font-family")
				res.Weight = attr(t.Attr, "font-weight")
				res.Style = attr(t.Attr, "font-style")
				if x, ok := parseLength(attr(t.Attr, "units-per-em")); ok {
					res.UnitsPerEm = x
				}
				if x, ok := parseLength(attr(t.Attr, "descent")); ok {
					res.Descent = math.Abs(x)
				}
				if x, ok := parseLength(attr(t.Attr, "ascent")); ok {
					res.Ascent = x
					hasAscent = true
				}

			case "glyph":
				if res == nil {
					continue
				}
				g := &Glyph{
					Name:      attr(t.Attr, "glyph-name"),
					Unicode:   attrRaw(t.Attr, "unicode"),
					HorizAdvX: res.HorizAdvX,
				}
				if x, ok := parseLength(attr(t.Attr, "horiz-adv-x")); ok {
					g.HorizAdvX = x
				}
				outline, err := svgpath.Parse(attr(t.Attr, "d"))
				if err != nil {
					return nil, fmt.Errorf("svgfont: glyph %q: %w", g.Name, err)
				}
				g.Outline = outline
				res.Glyphs = append(res.Glyphs, g)
			}

		case xml.CharData:
			if len(stack) > 0 && stack[len(stack)-1] == "metadata" {
				meta.Write(t)
			}

		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if res == nil {
		return nil, errNoFont
	}
	if !hasAscent {
		res.Ascent = res.UnitsPerEm - res.Descent
	}
	res.Metadata = strings.TrimSpace(meta.String())
	return res, nil
}

// attrRaw is like attr, but does not strip white space.
func attrRaw(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
