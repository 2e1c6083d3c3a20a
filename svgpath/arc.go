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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ArcTo adds an elliptical arc to the current subpath of p, using the
// endpoint parameterization of the SVG "A" command.  The arc is approximated by
// cubic Bézier curves, each spanning at most 90 degrees.
// https://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes
func ArcTo(p *path.Data, rx, ry, phiDeg float64, large, sweep bool, end vec.Vec2) {
	start := Current(p)
	if start == end {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(end)
		return
	}

	phi := phiDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	dx2 := (start.X - end.X) / 2
	dy2 := (start.Y - end.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// scale up the radii if no ellipse fits
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math.Sqrt(max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (start.X+end.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (start.Y+end.Y)/2

	u := vec.Vec2{X: (x1p - cxp) / rx, Y: (y1p - cyp) / ry}
	v := vec.Vec2{X: (-x1p - cxp) / rx, Y: (-y1p - cyp) / ry}
	theta1 := angle(vec.Vec2{X: 1}, u)
	dTheta := angle(u, v)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	point := func(a float64) vec.Vec2 {
		sin, cos := math.Sincos(a)
		return vec.Vec2{
			X: cx + rx*cos*cosPhi - ry*sin*sinPhi,
			Y: cy + rx*cos*sinPhi + ry*sin*cosPhi,
		}
	}
	tangent := func(a float64) vec.Vec2 {
		sin, cos := math.Sincos(a)
		return vec.Vec2{
			X: -rx*sin*cosPhi - ry*cos*sinPhi,
			Y: -rx*sin*sinPhi + ry*cos*cosPhi,
		}
	}

	n := int(math.Ceil(math.Abs(dTheta)/(math.Pi/2) - 1e-9))
	n = max(n, 1)
	delta := dTheta / float64(n)
	k := 4.0 / 3.0 * math.Tan(delta/4)

	p0 := start
	for i := 0; i < n; i++ {
		a1 := theta1 + float64(i)*delta
		a2 := a1 + delta
		p3 := point(a2)
		if i == n-1 {
			p3 = end
		}
		c1 := p0.Add(tangent(a1).Mul(k))
		c2 := p3.Sub(tangent(a2).Mul(k))
		p.CubeTo(c1, c2, p3)
		p0 = p3
	}
}

// ellipse appends a closed ellipse, made of four cubic Bézier curves.
func ellipse(p *path.Data, cx, cy, rx, ry float64) {
	const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	kx, ky := kappa*rx, kappa*ry
	p.MoveTo(vec.Vec2{X: cx + rx, Y: cy})
	p.CubeTo(vec.Vec2{X: cx + rx, Y: cy + ky}, vec.Vec2{X: cx + kx, Y: cy + ry}, vec.Vec2{X: cx, Y: cy + ry})
	p.CubeTo(vec.Vec2{X: cx - kx, Y: cy + ry}, vec.Vec2{X: cx - rx, Y: cy + ky}, vec.Vec2{X: cx - rx, Y: cy})
	p.CubeTo(vec.Vec2{X: cx - rx, Y: cy - ky}, vec.Vec2{X: cx - kx, Y: cy - ry}, vec.Vec2{X: cx, Y: cy - ry})
	p.CubeTo(vec.Vec2{X: cx + kx, Y: cy - ry}, vec.Vec2{X: cx + rx, Y: cy - ky}, vec.Vec2{X: cx + rx, Y: cy})
	p.Close()
}

func angle(u, v vec.Vec2) float64 {
	return math.Atan2(u.X*v.Y-u.Y*v.X, u.X*v.X+u.Y*v.Y)
}
