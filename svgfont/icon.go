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
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/iconfont/svgpath"
)

// icon is the outline of one source SVG file, in the coordinate system of
// the file (y pointing down).
type icon struct {
	Width, Height float64
	Outline       path.Data
}

// Elements which never contribute to the outline.
var skipElement = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"symbol":   true,
	"pattern":  true,
	"marker":   true,
	"style":    true,
	"title":    true,
	"desc":     true,
	"metadata": true,
	"text":     true,
}

var (
	errNoSize  = errors.New("missing width/height or viewBox")
	errNoRoot  = errors.New("root element is not <svg>")
	errBadSize = errors.New("invalid viewBox")
)

// parseIcon extracts the size and the filled outline of an SVG icon.
func parseIcon(data []byte) (*icon, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	res := &icon{}
	var stack []matrix.Matrix
	seenRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if skipElement[name] || isHidden(t.Attr) {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			parent := matrix.Identity
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			if !seenRoot {
				if name != "svg" {
					return nil, errNoRoot
				}
				seenRoot = true
				m, err := res.setSize(t.Attr)
				if err != nil {
					return nil, err
				}
				parent = m
			}

			m, err := parseTransform(attr(t.Attr, "transform"))
			if err != nil {
				return nil, err
			}
			m = m.Mul(parent)
			stack = append(stack, m)

			outline, err := shape(name, t.Attr)
			if err != nil {
				return nil, fmt.Errorf("<%s>: %w", name, err)
			}
			if outline != nil {
				svgpath.Append(&res.Outline, outline.Iter().Transform(m))
			}

		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if !seenRoot {
		return nil, errNoRoot
	}
	return res, nil
}

// setSize reads the icon size from the root element and returns the
// transformation which moves the viewBox origin to (0, 0).
func (ic *icon) setSize(attrs []xml.Attr) (matrix.Matrix, error) {
	if vb := attr(attrs, "viewBox"); vb != "" {
		xx, err := svgpath.ParseNumbers(vb)
		if err != nil || len(xx) != 4 || xx[2] < 0 || xx[3] < 0 {
			return matrix.Identity, errBadSize
		}
		ic.Width = xx[2]
		ic.Height = xx[3]
		return matrix.Translate(-xx[0], -xx[1]), nil
	}

	w, okW := parseLength(attr(attrs, "width"))
	h, okH := parseLength(attr(attrs, "height"))
	if !okW || !okH {
		return matrix.Identity, errNoSize
	}
	ic.Width = w
	ic.Height = h
	return matrix.Identity, nil
}

// shape converts a basic shape element into a path.  Elements which are
// not shapes give a nil path.
func shape(name string, attrs []xml.Attr) (*path.Data, error) {
	num := func(key string, dflt float64) float64 {
		x, ok := parseLength(attr(attrs, key))
		if !ok {
			return dflt
		}
		return x
	}

	switch name {
	case "path":
		return svgpath.Parse(attr(attrs, "d"))
	case "rect":
		return svgpath.Rect(num("x", 0), num("y", 0),
			num("width", 0), num("height", 0),
			num("rx", -1), num("ry", -1)), nil
	case "circle":
		return svgpath.Circle(num("cx", 0), num("cy", 0), num("r", 0)), nil
	case "ellipse":
		return svgpath.Ellipse(num("cx", 0), num("cy", 0), num("rx", 0), num("ry", 0)), nil
	case "line":
		return svgpath.Line(num("x1", 0), num("y1", 0), num("x2", 0), num("y2", 0)), nil
	case "polyline":
		return svgpath.Polyline(attr(attrs, "points"))
	case "polygon":
		return svgpath.Polygon(attr(attrs, "points"))
	}
	return nil, nil
}

func isHidden(attrs []xml.Attr) bool {
	return attr(attrs, "display") == "none" || attr(attrs, "visibility") == "hidden"
}

func attr(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// parseLength parses an SVG length.  Absolute units are converted to user
// units, percentages are not supported.
func parseLength(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	unit := 1.0
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			unit = u.factor
			break
		}
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, false
	}
	return x * unit, true
}

var units = []struct {
	suffix string
	factor float64
}{
	{"px", 1},
	{"pt", 4.0 / 3},
	{"pc", 16},
	{"mm", 96 / 25.4},
	{"cm", 96 / 2.54},
	{"in", 96},
}

// parseTransform parses the value of an SVG transform attribute.
func parseTransform(s string) (matrix.Matrix, error) {
	res := matrix.Identity
	for {
		s = strings.TrimLeft(s, " \t\r\n,")
		if s == "" {
			return res, nil
		}

		open := strings.IndexByte(s, '(')
		end := strings.IndexByte(s, ')')
		if open < 0 || end < open {
			return matrix.Identity, fmt.Errorf("malformed transform %q", s)
		}
		name := strings.TrimSpace(s[:open])
		args, err := svgpath.ParseNumbers(s[open+1 : end])
		if err != nil {
			return matrix.Identity, err
		}
		s = s[end+1:]

		m, err := transformMatrix(name, args)
		if err != nil {
			return matrix.Identity, err
		}
		// The rightmost transformation is applied first.
		res = m.Mul(res)
	}
}

func transformMatrix(name string, args []float64) (matrix.Matrix, error) {
	n := len(args)
	switch {
	case name == "matrix" && n == 6:
		return matrix.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]}, nil
	case name == "translate" && n == 1:
		return matrix.Translate(args[0], 0), nil
	case name == "translate" && n == 2:
		return matrix.Translate(args[0], args[1]), nil
	case name == "scale" && n == 1:
		return matrix.Scale(args[0], args[0]), nil
	case name == "scale" && n == 2:
		return matrix.Scale(args[0], args[1]), nil
	case name == "rotate" && (n == 1 || n == 3):
		if n == 3 {
			cx, cy := args[1], args[2]
			return matrix.Translate(-cx, -cy).RotateDeg(args[0]).Translate(cx, cy), nil
		}
		return matrix.RotateDeg(args[0]), nil
	case name == "skewX" && n == 1:
		return matrix.Matrix{1, 0, math.Tan(args[0] * math.Pi / 180), 1, 0, 0}, nil
	case name == "skewY" && n == 1:
		return matrix.Matrix{1, math.Tan(args[0] * math.Pi / 180), 0, 1, 0, 0}, nil
	}
	return matrix.Identity, fmt.Errorf("invalid transform %s with %d arguments", name, n)
}
