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

package iconfont

import (
	"io/fs"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// A Discoverer expands patterns into the list of glyph source paths.
type Discoverer interface {
	Discover(patterns []string) ([]string, error)
}

// GlobDiscoverer finds files using "**"-style glob patterns.
type GlobDiscoverer struct {
	// FS is the file system to search.  If this is nil, the patterns are
	// matched against the operating system's file system.
	FS fs.FS
}

// Discover returns the files matching any of the patterns, without
// duplicates.  Directories are not included.  An invalid pattern is an
// error, a pattern which matches nothing is not.
func (d GlobDiscoverer) Discover(patterns []string) ([]string, error) {
	var res []string
	for _, pat := range patterns {
		var matches []string
		var err error
		if d.FS == nil {
			matches, err = doublestar.FilepathGlob(pat, doublestar.WithFilesOnly())
		} else {
			matches, err = doublestar.Glob(d.FS, pat, doublestar.WithFilesOnly())
		}
		if err != nil {
			return nil, &Error{Kind: KindDiscovery, Path: pat, Err: err}
		}
		res = append(res, matches...)
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}
