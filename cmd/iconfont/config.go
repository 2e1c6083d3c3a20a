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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"seehuhn.de/go/iconfont"
)

// fileConfig is the contents of the JSON configuration file.
type fileConfig struct {
	iconfont.Options

	// Fonts is the output directory for the font files.
	Fonts string `json:"fonts"`

	// Styles is the output file for the stylesheet.
	Styles string `json:"styles"`
}

func readConfig(name string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if name == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cfg, nil
}

// listFlag collects a comma separated list, which may be given more than
// once on the command line.
type listFlag []string

func (l *listFlag) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// overrides holds the command line flags which replace values from the
// configuration file.
type overrides struct {
	svgs     listFlag
	formats  listFlag
	fonts    string
	styles   string
	fontName string
	template string
	verbose  bool
}

func (o *overrides) apply(cfg *fileConfig) {
	if len(o.svgs) > 0 {
		cfg.SVGs = o.svgs
	}
	if len(o.formats) > 0 {
		cfg.Formats = o.formats
	}
	if o.fonts != "" {
		cfg.Fonts = o.fonts
	}
	if o.styles != "" {
		cfg.Styles = o.styles
	}
	if o.fontName != "" {
		cfg.FontName = o.fontName
	}
	if o.template != "" {
		cfg.Template = o.template
	}
	if o.verbose {
		cfg.Verbose = true
	}
}

func (cfg *fileConfig) check() error {
	var missing []string
	if len(cfg.SVGs) == 0 {
		missing = append(missing, "svgs")
	}
	if cfg.Fonts == "" {
		missing = append(missing, "fonts")
	}
	if cfg.Styles == "" {
		missing = append(missing, "styles")
	}
	if len(missing) > 0 {
		return errors.New("missing required setting: " + strings.Join(missing, ", "))
	}
	return nil
}
