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

package style

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/iconfont/metadata"
	"seehuhn.de/go/iconfont/transcode"
)

func testContext(formats ...transcode.Format) *Context {
	return &Context{
		Glyphs: []*metadata.Metadata{
			{Name: "home", CodePoints: []rune{0xEA01}},
			{Name: "star", CodePoints: []rune{0x1F600, 0xEA02}},
		},
		FontName: "icons",
		FontPath: "/static/fonts/",
		Formats:  formats,
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range Builtin {
		r, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		out, err := r.Render(context.Background(), testContext(transcode.AllFormats...))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, want := range []string{
			`font-family: "icons";`,
			`url("/static/fonts/icons.eot");`,
			`url("/static/fonts/icons.eot?#iefix") format("embedded-opentype")`,
			`url("/static/fonts/icons.svg#icons") format("svg")`,
			`\EA01`,
			`\1F600`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: missing %q in\n%s", name, want, out)
			}
		}
	}
}

func TestCSS(t *testing.T) {
	r, err := New("css")
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(context.Background(), testContext(transcode.WOFF2, transcode.WOFF))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ".icons-home:before {\n  content: \"\\EA01\";\n}") {
		t.Errorf("missing glyph rule in\n%s", out)
	}
	if strings.Contains(out, ".eot") || strings.Contains(out, "truetype") {
		t.Errorf("unrequested formats in\n%s", out)
	}
	woff2 := strings.Index(out, "icons.woff2")
	woff := strings.Index(out, "icons.woff\"")
	if woff2 < 0 || woff < 0 || woff2 > woff {
		t.Errorf("woff2 should come before woff in\n%s", out)
	}
}

func TestNoFormats(t *testing.T) {
	for _, name := range Builtin {
		r, err := New(name)
		if err != nil {
			t.Fatal(err)
		}
		out, err := r.Render(context.Background(), testContext())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.Contains(out, "src:") {
			t.Errorf("%s: src descriptor without fonts in\n%s", name, out)
		}
		if !strings.Contains(out, `\EA01`) {
			t.Errorf("%s: missing glyph rule in\n%s", name, out)
		}
	}
}

func TestSCSSMap(t *testing.T) {
	r, err := New("scss")
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(context.Background(), testContext(transcode.WOFF))
	if err != nil {
		t.Fatal(err)
	}
	want := "$icons-glyphs: (\n  \"home\": \"\\EA01\",\n  \"star\": \"\\1F600\"\n);"
	if !strings.Contains(out, want) {
		t.Errorf("missing glyph map in\n%s", out)
	}
}

func TestCustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	text := `{{ range .Glyphs }}{{ .Name }}={{ hex (index .CodePoints 0) }} {{ end }}`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(context.Background(), testContext())
	if err != nil {
		t.Fatal(err)
	}
	if out != "home=EA01 star=1F600 " {
		t.Errorf("got %q", out)
	}
}

func TestErrors(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing.tmpl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v", err)
	}
	if _, err := Parse("bad", "{{ .Foo "); err == nil {
		t.Error("syntax error accepted")
	}

	r, err := Parse("fail", "{{ .NoSuchField }}")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render(context.Background(), testContext()); err == nil {
		t.Error("missing field accepted")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ = New("css")
	if _, err := r.Render(ctx, testContext()); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}
