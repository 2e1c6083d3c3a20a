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

package main

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/iconfont"
)

// outputWriter writes the generated files.  Files whose contents have not
// changed since the last write are skipped.
type outputWriter struct {
	fonts  string
	styles string
	hashes map[string][sha256.Size]byte
}

func newOutputWriter(fonts, styles string) *outputWriter {
	return &outputWriter{
		fonts:  fonts,
		styles: styles,
		hashes: make(map[string][sha256.Size]byte),
	}
}

// Write stores the fonts and the stylesheet of res, and returns the names
// of the files which were written.
func (w *outputWriter) Write(res *iconfont.Result) ([]string, error) {
	var written []string
	formats := maps.Keys(res.Artifacts)
	slices.Sort(formats)
	for _, f := range formats {
		name := filepath.Join(w.fonts, res.Filename(f))
		ok, err := w.writeFile(name, res.Artifacts[f])
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, name)
		}
	}

	ok, err := w.writeFile(w.styles, []byte(res.Styles))
	if err != nil {
		return written, err
	}
	if ok {
		written = append(written, w.styles)
	}
	return written, nil
}

func (w *outputWriter) writeFile(name string, data []byte) (bool, error) {
	sum := sha256.Sum256(data)
	if prev, seen := w.hashes[name]; seen && prev == sum {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return false, err
	}
	w.hashes[name] = sum
	return true, nil
}
