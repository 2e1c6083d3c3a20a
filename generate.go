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
	"context"
	"errors"
	"time"

	"seehuhn.de/go/iconfont/loader"
	"seehuhn.de/go/iconfont/metadata"
	"seehuhn.de/go/iconfont/style"
	"seehuhn.de/go/iconfont/svgfont"
	"seehuhn.de/go/iconfont/transcode"
)

// Result holds the output of a Generate run.
type Result struct {
	// Artifacts maps each requested format to the font data.
	Artifacts map[transcode.Format][]byte

	// Styles is the rendered stylesheet.
	Styles string

	// Glyphs lists the glyph metadata in font order.
	Glyphs []*metadata.Metadata

	Config Config
}

// Filename returns the file name used for the font in the given format.
func (r *Result) Filename(f transcode.Format) string {
	return r.Config.FontName + "." + string(f)
}

// Generate builds an icon font from the SVG files in paths.
//
// Paths without the ".svg" extension are ignored.  The glyph order, and
// thus the code point assignment, does not depend on the order of paths.
// On failure, an *Error is returned.  If ctx is cancelled, the context
// error is returned.
func Generate(ctx context.Context, paths []string, opts *Options) (*Result, error) {
	cfg, err := opts.Resolve()
	if err != nil {
		return nil, wrap(KindConfig, err)
	}
	if opts == nil {
		opts = &Options{}
	}

	log := Logger()
	start := time.Now()

	records, err := loader.Load(ctx, opts.FS, paths, cfg.loaderOptions())
	if err != nil {
		return nil, wrap(KindRead, err)
	}

	provider := opts.MetadataProvider
	if provider == nil {
		provider = metadata.NewCounter(cfg.StartUnicode, cfg.PrependUnicode)
	}
	glyphs, err := metadata.Assign(ctx, provider, records)
	if err != nil {
		return nil, wrap(KindMetadata, err)
	}

	b := svgfont.NewBuilder(cfg.svgOptions())
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := b.Submit(&svgfont.Unit{Record: rec, Meta: glyphs[i]})
		if err != nil {
			return nil, wrap(KindAssembly, err)
		}
	}
	doc, err := b.Finish()
	if err != nil {
		return nil, wrap(KindAssembly, err)
	}

	artifacts := map[transcode.Format][]byte{}
	if len(cfg.Formats) > 0 {
		artifacts, err = transcode.Run(ctx, doc, cfg.transcodeOptions())
		if err != nil {
			return nil, wrap(KindTranscode, err)
		}
	}

	if opts.GlyphTransformFn != nil {
		for _, md := range glyphs {
			opts.GlyphTransformFn(md)
		}
	}

	renderer := opts.Renderer
	if renderer == nil {
		t, err := style.New(cfg.Template)
		if err != nil {
			return nil, wrap(KindConfig, err)
		}
		renderer = t
	}
	styles, err := renderer.Render(ctx, &style.Context{
		Glyphs:   glyphs,
		FontName: cfg.FontName,
		FontPath: cfg.CSSFontPath,
		Formats:  cfg.Formats,
		Config:   cfg,
	})
	if err != nil {
		return nil, wrap(KindRender, err)
	}

	log.Debug("icon font generated",
		"font", cfg.FontName,
		"glyphs", len(glyphs),
		"formats", len(artifacts),
		"duration", time.Since(start))

	res := &Result{
		Artifacts: artifacts,
		Styles:    styles,
		Glyphs:    glyphs,
		Config:    cfg,
	}
	return res, nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
