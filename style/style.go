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

// Package style renders the stylesheet which goes with an icon font.
package style

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"seehuhn.de/go/iconfont/metadata"
	"seehuhn.de/go/iconfont/transcode"
)

// Context is the data available to stylesheet templates.
type Context struct {
	// Glyphs lists the glyphs in font order.
	Glyphs []*metadata.Metadata

	FontName string

	// FontPath is the URL prefix of the font files, e.g. "/static/fonts/".
	FontPath string

	// Formats lists the generated font formats.
	Formats []transcode.Format

	// Config is the complete configuration of the run.
	Config any
}

// Renderer produces the stylesheet text.
type Renderer interface {
	Render(ctx context.Context, sc *Context) (string, error)
}

// Template is a Renderer based on text/template.
type Template struct {
	name string
	tmpl *template.Template
}

//go:embed templates/*.tmpl
var builtin embed.FS

// Builtin lists the names of the built-in templates.
var Builtin = []string{"css", "less", "scss"}

// IsBuiltin reports whether name refers to a built-in template.
func IsBuiltin(name string) bool {
	return slices.Contains(Builtin, name)
}

// New returns the renderer for a template.  The name is either one of the
// built-in template names, or the path of a template file.
func New(name string) (*Template, error) {
	if IsBuiltin(name) {
		body, err := builtin.ReadFile("templates/template." + name + ".tmpl")
		if err != nil {
			return nil, err
		}
		return Parse(name, string(body))
	}

	body, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Parse(filepath.Base(name), string(body))
}

// Parse returns a renderer for the given template text.
func Parse(name, text string) (*Template, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

// Render implements the Renderer interface.
func (t *Template) Render(ctx context.Context, sc *Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	buf := &strings.Builder{}
	err := t.tmpl.Execute(buf, sc)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", t.name, err)
	}
	return buf.String(), nil
}

var funcs = template.FuncMap{
	"hex":       hex,
	"codepoint": codepoint,
	"has":       has,
	"url":       url,
	"sources":   sources,
}

// hex formats a code point as upper case hexadecimal.
func hex(r rune) string {
	return strings.ToUpper(strconv.FormatInt(int64(r), 16))
}

// codepoint returns the CSS escape for the first code point of a glyph.
func codepoint(md *metadata.Metadata) string {
	if len(md.CodePoints) == 0 {
		return ""
	}
	return `\` + hex(md.CodePoints[0])
}

func has(formats []transcode.Format, f string) bool {
	return slices.Contains(formats, transcode.Format(f))
}

func url(sc *Context, f string) string {
	return sc.FontPath + sc.FontName + "." + f
}

var cssFormat = map[transcode.Format]string{
	transcode.EOT:   "embedded-opentype",
	transcode.WOFF2: "woff2",
	transcode.WOFF:  "woff",
	transcode.TTF:   "truetype",
	transcode.SVG:   "svg",
}

// sources returns the value of the "src" descriptor, listing the most
// compact formats first.
func sources(sc *Context) string {
	var parts []string
	for _, f := range []transcode.Format{transcode.EOT, transcode.WOFF2, transcode.WOFF, transcode.TTF, transcode.SVG} {
		if !slices.Contains(sc.Formats, f) {
			continue
		}
		u := url(sc, string(f))
		switch f {
		case transcode.EOT:
			u += "?#iefix"
		case transcode.SVG:
			u += "#" + sc.FontName
		}
		parts = append(parts, fmt.Sprintf("url(%q) format(%q)", u, cssFormat[f]))
	}
	return strings.Join(parts, ",\n    ")
}
