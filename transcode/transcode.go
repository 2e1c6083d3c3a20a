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

// Package transcode converts SVG fonts into the binary font formats.
//
// The TrueType font is always generated first.  EOT, WOFF and WOFF2 are
// each derived from the TrueType data and are computed concurrently.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/iconfont/eot"
	"seehuhn.de/go/iconfont/internal/logging"
	"seehuhn.de/go/iconfont/svgfont"
	"seehuhn.de/go/iconfont/ttf"
	"seehuhn.de/go/iconfont/woff"
	"seehuhn.de/go/iconfont/woff2"
)

// Options select the output formats and hold the per-format options.
type Options struct {
	// Formats lists the formats to generate.  If this is empty, all
	// formats are generated.
	Formats []Format

	TTF  *ttf.Options
	WOFF *woff.Options
}

// Error reports a failed conversion.
type Error struct {
	Format Format
	Err    error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: transcode error: %v", err.Format, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

var errUnknownFormat = errors.New("unknown format")

// wrappers are the formats derived from the TrueType font.
var wrappers = map[Format]func([]byte, *Options) ([]byte, error){
	EOT: func(ttf []byte, _ *Options) ([]byte, error) {
		return eot.Convert(ttf)
	},
	WOFF: func(ttf []byte, opt *Options) ([]byte, error) {
		return woff.Convert(ttf, opt.WOFF)
	},
	WOFF2: func(ttf []byte, _ *Options) ([]byte, error) {
		return woff2.Convert(ttf)
	},
}

// Run converts an SVG font into the requested formats.  The result
// contains exactly the requested formats.  If any conversion fails, no
// result is returned.
func Run(ctx context.Context, doc svgfont.Document, opt *Options) (map[Format][]byte, error) {
	if opt == nil {
		opt = &Options{}
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = AllFormats
	}
	for _, f := range formats {
		if !f.Valid() {
			return nil, &Error{Format: f, Err: errUnknownFormat}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.Logger()

	start := time.Now()
	ttfData, err := ttf.Convert(doc, opt.TTF)
	if err != nil {
		return nil, &Error{Format: TTF, Err: err}
	}
	log.Debug("transcoded", "format", TTF, "bytes", len(ttfData), "elapsed", time.Since(start))

	res := make(map[Format][]byte, len(formats))
	var todo []Format
	for _, f := range formats {
		switch f {
		case SVG:
			res[SVG] = []byte(doc)
		case TTF:
			res[TTF] = ttfData
		default:
			if _, seen := res[f]; !seen {
				res[f] = nil
				todo = append(todo, f)
			}
		}
	}

	out := make([][]byte, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range todo {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			data, err := wrappers[f](ttfData, opt)
			if err != nil {
				return &Error{Format: f, Err: err}
			}
			out[i] = data
			log.Debug("transcoded", "format", f, "bytes", len(data), "elapsed", time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, f := range todo {
		res[f] = out[i]
	}
	return res, nil
}
