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
	"errors"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Rect returns the outline of an SVG <rect> element.  Negative values for
// rx or ry mean that the attribute was not given.  A rectangle without
// area gives an empty path.
func Rect(x, y, width, height, rx, ry float64) *path.Data {
	p := &path.Data{}
	if width <= 0 || height <= 0 {
		return p
	}
	switch {
	case rx < 0 && ry < 0:
		rx, ry = 0, 0
	case rx < 0:
		rx = ry
	case ry < 0:
		ry = rx
	}
	rx = min(rx, width/2)
	ry = min(ry, height/2)

	if rx == 0 || ry == 0 {
		p.MoveTo(vec.Vec2{X: x, Y: y})
		p.LineTo(vec.Vec2{X: x + width, Y: y})
		p.LineTo(vec.Vec2{X: x + width, Y: y + height})
		p.LineTo(vec.Vec2{X: x, Y: y + height})
		p.Close()
		return p
	}

	p.MoveTo(vec.Vec2{X: x + rx, Y: y})
	p.LineTo(vec.Vec2{X: x + width - rx, Y: y})
	ArcTo(p, rx, ry, 0, false, true, vec.Vec2{X: x + width, Y: y + ry})
	p.LineTo(vec.Vec2{X: x + width, Y: y + height - ry})
	ArcTo(p, rx, ry, 0, false, true, vec.Vec2{X: x + width - rx, Y: y + height})
	p.LineTo(vec.Vec2{X: x + rx, Y: y + height})
	ArcTo(p, rx, ry, 0, false, true, vec.Vec2{X: x, Y: y + height - ry})
	p.LineTo(vec.Vec2{X: x, Y: y + ry})
	ArcTo(p, rx, ry, 0, false, true, vec.Vec2{X: x + rx, Y: y})
	p.Close()
	return p
}

// Circle returns the outline of an SVG <circle> element.
func Circle(cx, cy, r float64) *path.Data {
	return Ellipse(cx, cy, r, r)
}

// Ellipse returns the outline of an SVG <ellipse> element.
func Ellipse(cx, cy, rx, ry float64) *path.Data {
	p := &path.Data{}
	if rx <= 0 || ry <= 0 {
		return p
	}
	ellipse(p, cx, cy, rx, ry)
	return p
}

// Line returns the path of an SVG <line> element.
func Line(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x2, Y: y2})
}

// Polyline returns the path of an SVG <polyline> element, given the
// value of the "points" attribute.
func Polyline(points string) (*path.Data, error) {
	return poly(points, false)
}

// Polygon returns the path of an SVG <polygon> element, given the value
// of the "points" attribute.
func Polygon(points string) (*path.Data, error) {
	return poly(points, true)
}

var errOddPoints = errors.New("svgpath: odd number of coordinates")

func poly(points string, closed bool) (*path.Data, error) {
	xy, err := ParseNumbers(points)
	if err != nil {
		return nil, err
	}
	if len(xy)%2 != 0 {
		return nil, errOddPoints
	}
	p := &path.Data{}
	for i := 0; i+1 < len(xy); i += 2 {
		pt := vec.Vec2{X: xy[i], Y: xy[i+1]}
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	if closed && len(p.Cmds) > 0 {
		p.Close()
	}
	return p, nil
}
