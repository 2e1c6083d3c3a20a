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

package ttf

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/glyf"
)

// tolerance is the maximal distance, in font units, between a cubic
// Bézier curve and its quadratic approximation.
const tolerance = 0.3

// maxQuads limits the number of quadratic pieces per cubic curve.
const maxQuads = 64

// quadSeg is a quadratic curve piece, given by the control point and the
// end point.  The start point is the end point of the previous piece.
type quadSeg struct {
	Ctrl, End vec.Vec2
}

// cubicToQuads approximates a cubic Bézier curve by a sequence of quadratic
// curves.
//
// The distance between a cubic curve and the quadratic with control point
// (3(p1+p2) - p0 - p3)/4 is at most sqrt(3)/36 |p3 - 3p2 + 3p1 - p0|.
// Splitting into n pieces reduces this bound by a factor n^3.
func cubicToQuads(p0, p1, p2, p3 vec.Vec2) []quadSeg {
	d := p3.Sub(p2.Mul(3)).Add(p1.Mul(3)).Sub(p0)
	bound := math.Sqrt(3) / 36 * math.Hypot(d.X, d.Y)

	n := 1
	if bound > tolerance {
		n = int(math.Ceil(math.Cbrt(bound / tolerance)))
		n = min(n, maxQuads)
	}

	res := make([]quadSeg, 0, n)
	for i := range n {
		t0 := float64(i) / float64(n)
		t1 := float64(i+1) / float64(n)
		q0, q1, q2, q3 := subCubic(p0, p1, p2, p3, t0, t1)
		ctrl := q1.Add(q2).Mul(3).Sub(q0).Sub(q3).Mul(0.25)
		res = append(res, quadSeg{Ctrl: ctrl, End: q3})
	}
	return res
}

// subCubic returns the control points of the part of a cubic curve between
// t0 and t1.
func subCubic(p0, p1, p2, p3 vec.Vec2, t0, t1 float64) (vec.Vec2, vec.Vec2, vec.Vec2, vec.Vec2) {
	q0 := cubicAt(p0, p1, p2, p3, t0)
	q3 := cubicAt(p0, p1, p2, p3, t1)
	scale := (t1 - t0) / 3
	q1 := q0.Add(cubicDeriv(p0, p1, p2, p3, t0).Mul(scale))
	q2 := q3.Sub(cubicDeriv(p0, p1, p2, p3, t1).Mul(scale))
	return q0, q1, q2, q3
}

func cubicAt(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return p0.Mul(s * s * s).
		Add(p1.Mul(3 * s * s * t)).
		Add(p2.Mul(3 * s * t * t)).
		Add(p3.Mul(t * t * t))
}

func cubicDeriv(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return p1.Sub(p0).Mul(3 * s * s).
		Add(p2.Sub(p1).Mul(6 * s * t)).
		Add(p3.Sub(p2).Mul(3 * t * t))
}

// contours converts an outline into TrueType contours.
func contours(outline *path.Data) []glyf.Contour {
	if outline == nil {
		return nil
	}

	var res []glyf.Contour
	var cur glyf.Contour
	var start, pos vec.Vec2

	flush := func() {
		if c := cleanContour(cur); len(c) > 1 {
			res = append(res, c)
		}
		cur = nil
	}

	for cmd, pts := range outline.Iter() {
		if cmd != path.CmdMoveTo && cmd != path.CmdClose && cur == nil {
			cur = append(cur, point(pos, true))
		}
		switch cmd {
		case path.CmdMoveTo:
			flush()
			start = pts[0]
			pos = start
			cur = append(cur, point(pos, true))
		case path.CmdLineTo:
			pos = pts[0]
			cur = append(cur, point(pos, true))
		case path.CmdQuadTo:
			pos = pts[1]
			cur = append(cur, point(pts[0], false), point(pos, true))
		case path.CmdCubeTo:
			for _, q := range cubicToQuads(pos, pts[0], pts[1], pts[2]) {
				cur = append(cur, point(q.Ctrl, false), point(q.End, true))
			}
			pos = pts[2]
		case path.CmdClose:
			flush()
			pos = start
		}
	}
	flush()
	return res
}

func point(p vec.Vec2, onCurve bool) glyf.Point {
	return glyf.Point{X: toFUnit(p.X), Y: toFUnit(p.Y), OnCurve: onCurve}
}

func toFUnit(x float64) funit.Int16 {
	x = math.Round(x)
	switch {
	case x > math.MaxInt16:
		return math.MaxInt16
	case x < math.MinInt16:
		return math.MinInt16
	}
	return funit.Int16(x)
}

// cleanContour removes repeated on-curve points, the closing point if it
// coincides with the start point, and on-curve points which are implied
// by the midpoint rule for consecutive off-curve points.
func cleanContour(cc glyf.Contour) glyf.Contour {
	var res glyf.Contour
	for _, p := range cc {
		if n := len(res); n > 0 && p.OnCurve && res[n-1].OnCurve &&
			p.X == res[n-1].X && p.Y == res[n-1].Y {
			continue
		}
		res = append(res, p)
	}
	if n := len(res); n > 1 && res[0].OnCurve && res[n-1].OnCurve &&
		res[0].X == res[n-1].X && res[0].Y == res[n-1].Y {
		res = res[:n-1]
	}

	// The first point stays, so that the start of the contour is fixed.
	for i := 1; i < len(res)-1; {
		prev, p, next := res[i-1], res[i], res[i+1]
		if p.OnCurve && !prev.OnCurve && !next.OnCurve &&
			2*int(p.X) == int(prev.X)+int(next.X) &&
			2*int(p.Y) == int(prev.Y)+int(next.Y) {
			res = append(res[:i], res[i+1:]...)
			continue
		}
		i++
	}
	return res
}
