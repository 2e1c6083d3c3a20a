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

// Package iconfont assembles a set of SVG icons into web fonts.
//
// The icons are combined into an SVG font, which is then converted into
// TrueType, EOT, WOFF and WOFF2 fonts.  A stylesheet referencing the fonts
// is rendered from a template.
//
// The conversion runs in stages:
//
//   - loader: the SVG files are read concurrently and checked for
//     well-formedness.  The files are processed in a canonical order,
//     independent of the order in which reads complete.
//   - metadata: every icon gets a glyph name and one or more code points.
//   - svgfont: the icons are scaled and combined into one SVG font.
//   - transcode: the SVG font is converted into the binary formats.
//   - style: the stylesheet is rendered.
//
// Typical use:
//
//	paths, err := iconfont.GlobDiscoverer{}.Discover([]string{"icons/*.svg"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := iconfont.Generate(ctx, paths, &iconfont.Options{
//	    FontName: "icons",
//	    Formats:  []string{"woff2", "woff"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for format, data := range res.Artifacts {
//	    ... write data to res.Filename(format) ...
//	}
package iconfont
