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

package svgpath

import (
	"fmt"
	"strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// SyntaxError is returned when path data cannot be parsed.
type SyntaxError struct {
	Pos    int // byte offset into the path data
	Reason string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("svgpath: %s at offset %d", err.Reason, err.Pos)
}

// Parse parses SVG path data, as found in the "d" attribute of a <path>
// element.  All commands of the SVG 1.1 path grammar are supported.
//
// As in web browsers, a syntax error ends the path.  The segments before
// the error are returned, together with the error.
func Parse(d string) (*path.Data, error) {
	s := &scanner{data: d}
	p := &path.Data{}

	var start, cur, lastCtrl vec.Vec2
	var prevCmd byte
	var cmd byte
	for {
		s.skipSpace()
		if s.eof() {
			break
		}

		c := s.data[s.pos]
		switch {
		case isCommand(c):
			cmd = c
			s.pos++
		case cmd == 0:
			return p, s.errorf("path must start with a command")
		case cmd == 'M':
			cmd = 'L' // implicit lineto after moveto
		case cmd == 'm':
			cmd = 'l'
		case cmd == 'Z' || cmd == 'z':
			return p, s.errorf("unexpected number after closepath")
		}

		rel := cmd >= 'a'
		base := vec.Vec2{}
		if rel {
			base = cur
		}

		var err error
		switch cmd {
		case 'M', 'm':
			var pt vec.Vec2
			pt, err = s.point(base)
			if err == nil {
				p.MoveTo(pt)
				start, cur = pt, pt
			}

		case 'L', 'l':
			var pt vec.Vec2
			pt, err = s.point(base)
			if err == nil {
				p.LineTo(pt)
				cur = pt
			}

		case 'H', 'h':
			var x float64
			x, err = s.number()
			if err == nil {
				pt := vec.Vec2{X: base.X + x, Y: cur.Y}
				p.LineTo(pt)
				cur = pt
			}

		case 'V', 'v':
			var y float64
			y, err = s.number()
			if err == nil {
				pt := vec.Vec2{X: cur.X, Y: base.Y + y}
				p.LineTo(pt)
				cur = pt
			}

		case 'C', 'c':
			var pts []vec.Vec2
			pts, err = s.points(base, 3)
			if err == nil {
				p.CubeTo(pts[0], pts[1], pts[2])
				lastCtrl, cur = pts[1], pts[2]
			}

		case 'S', 's':
			var pts []vec.Vec2
			pts, err = s.points(base, 2)
			if err == nil {
				c1 := cur
				if isCubic(prevCmd) {
					c1 = cur.Mul(2).Sub(lastCtrl)
				}
				p.CubeTo(c1, pts[0], pts[1])
				lastCtrl, cur = pts[0], pts[1]
			}

		case 'Q', 'q':
			var pts []vec.Vec2
			pts, err = s.points(base, 2)
			if err == nil {
				p.QuadTo(pts[0], pts[1])
				lastCtrl, cur = pts[0], pts[1]
			}

		case 'T', 't':
			var pt vec.Vec2
			pt, err = s.point(base)
			if err == nil {
				ctrl := cur
				if isQuad(prevCmd) {
					ctrl = cur.Mul(2).Sub(lastCtrl)
				}
				p.QuadTo(ctrl, pt)
				lastCtrl, cur = ctrl, pt
			}

		case 'A', 'a':
			var rx, ry, phi float64
			var large, sweep bool
			var pt vec.Vec2
			rx, err = s.number()
			if err == nil {
				ry, err = s.number()
			}
			if err == nil {
				phi, err = s.number()
			}
			if err == nil {
				large, err = s.flag()
			}
			if err == nil {
				sweep, err = s.flag()
			}
			if err == nil {
				pt, err = s.point(base)
			}
			if err == nil {
				ArcTo(p, rx, ry, phi, large, sweep, pt)
				cur = pt
			}

		case 'Z', 'z':
			p.Close()
			cur = start
		}
		if err != nil {
			return p, err
		}
		prevCmd = cmd
	}

	return p, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func isCubic(c byte) bool {
	return c == 'C' || c == 'c' || c == 'S' || c == 's'
}

func isQuad(c byte) bool {
	return c == 'Q' || c == 'q' || c == 'T' || c == 't'
}

// ParseNumbers parses a list of numbers separated by white space and/or
// commas, as used in the "points" attribute of <polyline> and <polygon>.
func ParseNumbers(list string) ([]float64, error) {
	s := &scanner{data: list}
	var res []float64
	for {
		s.skipSpace()
		if s.eof() {
			return res, nil
		}
		x, err := s.number()
		if err != nil {
			return res, err
		}
		res = append(res, x)
	}
}

type scanner struct {
	data string
	pos  int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			s.pos++
		default:
			return
		}
	}
}

// skipSeparator skips white space and at most one comma.
func (s *scanner) skipSeparator() {
	s.skipSpace()
	if s.pos < len(s.data) && s.data[s.pos] == ',' {
		s.pos++
		s.skipSpace()
	}
}

func (s *scanner) errorf(format string, args ...any) error {
	return &SyntaxError{Pos: s.pos, Reason: fmt.Sprintf(format, args...)}
}

func (s *scanner) number() (float64, error) {
	s.skipSeparator()
	start := s.pos
	i := s.pos
	if i < len(s.data) && (s.data[i] == '+' || s.data[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s.data) && isDigit(s.data[i]) {
		i++
		digits++
	}
	if i < len(s.data) && s.data[i] == '.' {
		i++
		for i < len(s.data) && isDigit(s.data[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, s.errorf("expected number")
	}
	if i < len(s.data) && (s.data[i] == 'e' || s.data[i] == 'E') {
		j := i + 1
		if j < len(s.data) && (s.data[j] == '+' || s.data[j] == '-') {
			j++
		}
		if j < len(s.data) && isDigit(s.data[j]) {
			for j < len(s.data) && isDigit(s.data[j]) {
				j++
			}
			i = j
		}
	}

	x, err := strconv.ParseFloat(s.data[start:i], 64)
	if err != nil {
		return 0, s.errorf("invalid number %q", s.data[start:i])
	}
	s.pos = i
	return x, nil
}

// flag reads an arc flag.  Flags need not be separated from the
// following number.
func (s *scanner) flag() (bool, error) {
	s.skipSeparator()
	if s.pos < len(s.data) {
		switch s.data[s.pos] {
		case '0':
			s.pos++
			return false, nil
		case '1':
			s.pos++
			return true, nil
		}
	}
	return false, s.errorf("expected flag")
}

func (s *scanner) point(base vec.Vec2) (vec.Vec2, error) {
	x, err := s.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	y, err := s.number()
	if err != nil {
		return vec.Vec2{}, err
	}
	return vec.Vec2{X: base.X + x, Y: base.Y + y}, nil
}

func (s *scanner) points(base vec.Vec2, n int) ([]vec.Vec2, error) {
	res := make([]vec.Vec2, n)
	for i := range res {
		pt, err := s.point(base)
		if err != nil {
			return nil, err
		}
		res[i] = pt
	}
	return res, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
