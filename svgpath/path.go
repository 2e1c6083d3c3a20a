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


// Package svgpath reads SVG path data into [path.Data].
//
// Paths are stored in absolute coordinates, using only the move, line,
// quadratic Bézier, cubic Bézier and close commands of the geom path
// package.  Arcs and the shorthand forms of the SVG path syntax are
// converted when the path is built.
package svgpath

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var cmdLetter = map[path.Command]byte{
	path.CmdMoveTo: 'M',
	path.CmdLineTo: 'L',
	path.CmdQuadTo: 'Q',
	path.CmdCubeTo: 'C',
	path.CmdClose:  'Z',
}

// Append adds all segments of p to the end of d.
func Append(d *path.Data, p path.Path) {
	for cmd, pts := range p {
		d.Cmds = append(d.Cmds, cmd)
		d.Coords = append(d.Coords, pts...)
	}
}

// Current returns the current point of d, i.e. the point where the next
// segment starts.
func Current(d *path.Data) vec.Vec2 {
	var start, cur vec.Vec2
	for cmd, pts := range d.Iter() {
		switch {
		case cmd == path.CmdClose:
			cur = start
		case cmd == path.CmdMoveTo:
			start = pts[0]
			cur = start
		default:
			cur = pts[len(pts)-1]
		}
	}
	return cur
}

// Bounds returns the exact bounding box of the path, including the
// extreme points of curves.  The second return value is false if the
// path contains no drawing commands.
//
// Unlike [path.Path.BBox], control points off the curve do not
// enlarge the box.
func Bounds(p path.Path) (rect.Rect, bool) {
	var bbox rect.Rect
	found := false
	add := func(pt vec.Vec2) {
		if !found {
			bbox = rect.Rect{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
			found = true
			return
		}
		bbox.Add(pt.X, pt.Y)
	}

	var start, cur vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			start = pts[0]
			cur = start
			continue
		case path.CmdClose:
			cur = start
			continue
		case path.CmdLineTo:
			add(cur)
		case path.CmdQuadTo:
			add(cur)
			for _, t := range quadExtrema(cur, pts[0], pts[1]) {
				add(quadAt(cur, pts[0], pts[1], t))
			}
		case path.CmdCubeTo:
			add(cur)
			for _, t := range cubeExtrema(cur, pts[0], pts[1], pts[2]) {
				add(cubeAt(cur, pts[0], pts[1], pts[2], t))
			}
		}
		cur = pts[len(pts)-1]
		add(cur)
	}
	return bbox, found
}

// Round rounds all coordinates to multiples of 1/precision.  A precision
// of zero leaves the path unchanged.
func Round(p path.Path, precision float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for cmd, pts := range p {
			for i, pt := range pts {
				buf[i] = vec.Vec2{X: round(pt.X, precision), Y: round(pt.Y, precision)}
			}
			if !yield(cmd, buf[:len(pts)]) {
				return
			}
		}
	}
}

func round(x, precision float64) float64 {
	if precision == 0 {
		return x
	}
	y := math.Round(x*precision) / precision
	if y == 0 {
		return 0 // avoid negative zero
	}
	return y
}

// Format returns the path in SVG path data syntax.
func Format(p path.Path) string {
	b := &strings.Builder{}
	first := true
	for cmd, pts := range p {
		if !first && cmd != path.CmdClose {
			b.WriteByte(' ')
		}
		first = false
		b.WriteByte(cmdLetter[cmd])
		for j, pt := range pts {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatNumber(pt.X))
			b.WriteByte(' ')
			b.WriteString(formatNumber(pt.Y))
		}
	}
	return b.String()
}

func formatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func quadAt(p0, p1, p2 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
}

func cubeAt(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return p0.Mul(s * s * s).
		Add(p1.Mul(3 * s * s * t)).
		Add(p2.Mul(3 * s * t * t)).
		Add(p3.Mul(t * t * t))
}

// quadExtrema returns the parameter values in (0, 1) where one of the
// coordinates of a quadratic Bézier curve has a local extremum.
func quadExtrema(p0, p1, p2 vec.Vec2) []float64 {
	var res []float64
	for _, c := range [][3]float64{{p0.X, p1.X, p2.X}, {p0.Y, p1.Y, p2.Y}} {
		den := c[0] - 2*c[1] + c[2]
		if den == 0 {
			continue
		}
		t := (c[0] - c[1]) / den
		if t > 0 && t < 1 {
			res = append(res, t)
		}
	}
	return res
}

// cubeExtrema returns the parameter values in (0, 1) where one of the
// coordinates of a cubic Bézier curve has a local extremum.
func cubeExtrema(p0, p1, p2, p3 vec.Vec2) []float64 {
	var res []float64
	for _, c := range [][4]float64{{p0.X, p1.X, p2.X, p3.X}, {p0.Y, p1.Y, p2.Y, p3.Y}} {
		// derivative divided by 3: a t^2 + b t + c
		a := c[3] - 3*c[2] + 3*c[1] - c[0]
		b := 2 * (c[2] - 2*c[1] + c[0])
		cc := c[1] - c[0]
		for _, t := range solveQuadratic(a, b, cc) {
			if t > 0 && t < 1 {
				res = append(res, t)
			}
		}
	}
	return res
}

func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}
