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
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"unicode/utf8"

	"seehuhn.de/go/iconfont/loader"
	"seehuhn.de/go/iconfont/metadata"
	"seehuhn.de/go/iconfont/style"
	"seehuhn.de/go/iconfont/svgfont"
	"seehuhn.de/go/iconfont/transcode"
	"seehuhn.de/go/iconfont/ttf"
	"seehuhn.de/go/iconfont/woff"
)

// Default values for the options.
const (
	DefaultFontName     = "iconfont"
	DefaultStartUnicode = metadata.DefaultStart
	DefaultRound        = 10e12
	DefaultTemplate     = "scss"
	DefaultCSSFontPath  = "/static/fonts/"
)

// Options configure a Generate run.  The zero value is valid, all fields
// have defaults.  The JSON tags match the keys of the configuration file.
type Options struct {
	// SVGs are the glob patterns which select the source files.  They are
	// used by the command line tool, Generate takes the file list directly.
	SVGs []string `json:"svgs,omitempty"`

	// Formats lists the output formats.  If this is nil, all formats are
	// generated.  An empty, non-nil list generates no fonts, only the
	// stylesheet.
	Formats []string `json:"formats"`

	// MaxConcurrency limits the number of files read at the same time.
	// The default is the number of CPUs.
	MaxConcurrency int `json:"maxConcurrency,omitempty"`

	// StartUnicode is the first code point assigned by the default
	// metadata provider.  The default is U+EA01.
	StartUnicode rune `json:"startUnicode,omitempty"`

	// PrependUnicode makes the default metadata provider prefix glyph
	// names with their code point.
	PrependUnicode bool `json:"prependUnicode,omitempty"`

	FontName   string  `json:"fontName,omitempty"`
	FontID     string  `json:"fontId,omitempty"`
	FontStyle  string  `json:"fontStyle,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty"`
	FontHeight float64 `json:"fontHeight,omitempty"`
	Ascent     float64 `json:"ascent,omitempty"`
	Descent    float64 `json:"descent,omitempty"`

	FixedWidth         bool    `json:"fixedWidth,omitempty"`
	CenterHorizontally bool    `json:"centerHorizontally,omitempty"`
	Normalize          bool    `json:"normalize,omitempty"`
	Round              float64 `json:"round,omitempty"`

	// Metadata is included in the SVG font and in the WOFF file.
	Metadata string `json:"metadata,omitempty"`

	FormatsOptions FormatsOptions `json:"formatsOptions"`

	// Template is the stylesheet template, either "css", "scss", "less" or
	// the path of a text/template file.
	Template string `json:"template,omitempty"`

	// CSSFontPath is the URL prefix of the fonts in the stylesheet.
	CSSFontPath string `json:"cssFontPath,omitempty"`

	Verbose bool `json:"verbose,omitempty"`

	// MetadataProvider replaces the default metadata provider.
	MetadataProvider metadata.Provider `json:"-"`

	// GlyphTransformFn, if set, is called once for every glyph, in font
	// order, before the stylesheet is rendered.
	GlyphTransformFn func(*metadata.Metadata) `json:"-"`

	// Renderer replaces the template based stylesheet renderer.
	Renderer style.Renderer `json:"-"`

	// FS is the file system the source files are read from.  If this is
	// nil, the paths are operating system paths.
	FS fs.FS `json:"-"`
}

// FormatsOptions holds the per-format options.
type FormatsOptions struct {
	TTF ttf.Options `json:"ttf"`
}

// Config is the resolved configuration of a Generate run.  It is created by
// Options.Resolve and is not modified afterwards.
type Config struct {
	Formats            []transcode.Format `json:"formats"`
	MaxConcurrency     int                `json:"maxConcurrency"`
	StartUnicode       rune               `json:"startUnicode"`
	PrependUnicode     bool               `json:"prependUnicode"`
	FontName           string             `json:"fontName"`
	FontID             string             `json:"fontId"`
	FontStyle          string             `json:"fontStyle"`
	FontWeight         string             `json:"fontWeight"`
	FontHeight         float64            `json:"fontHeight"`
	Ascent             float64            `json:"ascent"`
	Descent            float64            `json:"descent"`
	FixedWidth         bool               `json:"fixedWidth"`
	CenterHorizontally bool               `json:"centerHorizontally"`
	Normalize          bool               `json:"normalize"`
	Round              float64            `json:"round"`
	Metadata           string             `json:"metadata"`
	FormatsOptions     FormatsOptions     `json:"formatsOptions"`
	Template           string             `json:"template"`
	CSSFontPath        string             `json:"cssFontPath"`
	Verbose            bool               `json:"verbose"`
}

// Resolve fills in the defaults and checks the options.
func (opt *Options) Resolve() (Config, error) {
	if opt == nil {
		opt = &Options{}
	}
	cfg := Config{
		MaxConcurrency:     opt.MaxConcurrency,
		StartUnicode:       opt.StartUnicode,
		PrependUnicode:     opt.PrependUnicode,
		FontName:           opt.FontName,
		FontID:             opt.FontID,
		FontStyle:          opt.FontStyle,
		FontWeight:         opt.FontWeight,
		FontHeight:         opt.FontHeight,
		Ascent:             opt.Ascent,
		Descent:            opt.Descent,
		FixedWidth:         opt.FixedWidth,
		CenterHorizontally: opt.CenterHorizontally,
		Normalize:          opt.Normalize,
		Round:              opt.Round,
		Metadata:           opt.Metadata,
		FormatsOptions:     opt.FormatsOptions,
		Template:           opt.Template,
		CSSFontPath:        opt.CSSFontPath,
		Verbose:            opt.Verbose,
	}

	if opt.Formats == nil {
		cfg.Formats = append(cfg.Formats, transcode.AllFormats...)
	} else {
		cfg.Formats = make([]transcode.Format, 0, len(opt.Formats))
	}
	seen := make(map[transcode.Format]bool)
	for _, s := range opt.Formats {
		f, err := transcode.ParseFormat(s)
		if err != nil {
			return Config{}, err
		}
		if !seen[f] {
			seen[f] = true
			cfg.Formats = append(cfg.Formats, f)
		}
	}

	switch {
	case cfg.MaxConcurrency < 0:
		return Config{}, errors.New("maxConcurrency must be positive")
	case cfg.MaxConcurrency == 0:
		cfg.MaxConcurrency = runtime.NumCPU()
	}

	if cfg.StartUnicode == 0 {
		cfg.StartUnicode = DefaultStartUnicode
	}
	if !utf8.ValidRune(cfg.StartUnicode) {
		return Config{}, fmt.Errorf("invalid startUnicode %U", cfg.StartUnicode)
	}

	if cfg.FontName == "" {
		cfg.FontName = DefaultFontName
	}
	if cfg.FontID == "" {
		cfg.FontID = cfg.FontName
	}
	switch {
	case cfg.FontHeight < 0:
		return Config{}, errors.New("fontHeight must not be negative")
	case cfg.Descent < 0:
		return Config{}, errors.New("descent must not be negative")
	case cfg.Round < 0:
		return Config{}, errors.New("round must not be negative")
	case cfg.Round == 0:
		cfg.Round = DefaultRound
	}

	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	if cfg.CSSFontPath == "" {
		cfg.CSSFontPath = DefaultCSSFontPath
	}
	if cfg.FormatsOptions.TTF.Version == "" {
		cfg.FormatsOptions.TTF.Version = ttf.DefaultVersion
	}
	return cfg, nil
}

func (cfg *Config) loaderOptions() *loader.Options {
	return &loader.Options{MaxConcurrency: cfg.MaxConcurrency}
}

func (cfg *Config) svgOptions() *svgfont.Options {
	return &svgfont.Options{
		FontName:           cfg.FontName,
		FontID:             cfg.FontID,
		FontStyle:          cfg.FontStyle,
		FontWeight:         cfg.FontWeight,
		FontHeight:         cfg.FontHeight,
		Ascent:             cfg.Ascent,
		Descent:            cfg.Descent,
		FixedWidth:         cfg.FixedWidth,
		CenterHorizontally: cfg.CenterHorizontally,
		Normalize:          cfg.Normalize,
		Round:              cfg.Round,
		Metadata:           cfg.Metadata,
	}
}

func (cfg *Config) transcodeOptions() *transcode.Options {
	ttfOpt := cfg.FormatsOptions.TTF
	res := &transcode.Options{
		Formats: cfg.Formats,
		TTF:     &ttfOpt,
	}
	if cfg.Metadata != "" {
		res.WOFF = &woff.Options{Metadata: []byte(cfg.Metadata)}
	}
	return res
}
