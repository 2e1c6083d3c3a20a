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

// Package loader reads the SVG source files of an icon font.
//
// The files are read concurrently, with a bounded number of reads in
// flight.  The result is always in canonical order, independent of the
// order in which the reads complete.
package loader

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/iconfont/internal/logging"
)

// Source is a candidate glyph source file.
type Source struct {
	Path string
}

// Record is a validated glyph source.
type Record struct {
	Source

	// Contents is the non-empty, well-formed XML text of the file.
	Contents []byte

	// Index is the position of the record in canonical order.
	Index int
}

// Options control the loader.
type Options struct {
	// MaxConcurrency is the maximal number of files read at the same
	// time.  If this is zero, runtime.NumCPU() is used.
	MaxConcurrency int
}

// Load reads and validates the glyph source files.  Paths without the
// ".svg" extension are ignored.  If fsys is nil, the files are read from
// the operating system's file system.
//
// The first error cancels all reads which have not started yet, and is
// returned.  No records are returned in this case.
func Load(ctx context.Context, fsys fs.FS, paths []string, opt *Options) ([]*Record, error) {
	var candidates []string
	for _, p := range paths {
		if path.Ext(toSlash(p)) == ".svg" {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoSources
	}
	candidates = Sort(candidates)

	limit := runtime.NumCPU()
	if opt != nil && opt.MaxConcurrency > 0 {
		limit = opt.MaxConcurrency
	}

	log := logging.Logger()
	start := time.Now()

	res := make([]*Record, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, p := range candidates {
		g.Go(func() error {
			// Tasks which start after a failure do no I/O.
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := loadOne(fsys, p)
			if err != nil {
				return err
			}
			rec.Index = i
			res[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug("glyph sources loaded",
		"files", len(res),
		"concurrency", limit,
		"duration", time.Since(start))
	return res, nil
}

func loadOne(fsys fs.FS, p string) (*Record, error) {
	var data []byte
	var err error
	if fsys == nil {
		data, err = os.ReadFile(p)
	} else {
		data, err = fs.ReadFile(fsys, p)
	}
	if err != nil {
		return nil, &Error{Kind: KindRead, Path: p, Err: err}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &Error{Kind: KindValidation, Path: p, Err: errEmpty}
	}
	if err := validate(data); err != nil {
		return nil, &Error{Kind: KindValidation, Path: p, Err: err}
	}

	rec := &Record{
		Source:   Source{Path: p},
		Contents: data,
	}
	return rec, nil
}

var errNoRoot = errors.New("no root element")

// validate checks that data is a well-formed XML document.
func validate(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	hasRoot := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		if _, ok := tok.(xml.StartElement); ok {
			hasRoot = true
		}
	}
	if !hasRoot {
		return errNoRoot
	}
	return nil
}
