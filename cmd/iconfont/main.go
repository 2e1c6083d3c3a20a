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

// Iconfont builds an icon font from a set of SVG files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/term"

	"seehuhn.de/go/iconfont"
	"seehuhn.de/go/iconfont/internal/buildinfo"
	"seehuhn.de/go/iconfont/internal/profile"
)

func main() {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	configFile := flag.String("config", "", "read settings from the JSON `file`")
	watch := flag.Duration("watch", 0, "rebuild every `interval` until interrupted")

	var o overrides
	flag.Var(&o.svgs, "svgs", "glob `patterns` for the SVG files (comma separated)")
	flag.Var(&o.formats, "formats", "font `formats` to generate (comma separated)")
	flag.StringVar(&o.fonts, "fonts", "", "output `directory` for the font files")
	flag.StringVar(&o.styles, "styles", "", "output `file` for the stylesheet")
	flag.StringVar(&o.fontName, "name", "", "font `name`")
	flag.StringVar(&o.template, "template", "", "stylesheet template (css, scss, less or a file `name`)")
	flag.BoolVar(&o.verbose, "v", false, "show debug output")
	version := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "iconfont - assemble SVG icons into web fonts\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("iconfont"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  iconfont [options]\n\n")
		fmt.Fprintf(os.Stderr, "The settings svgs, fonts and styles are required, either\n")
		fmt.Fprintf(os.Stderr, "in the configuration file or as command line options.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  iconfont -svgs 'icons/**/*.svg' -fonts static/fonts -styles icons.scss\n")
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("iconfont"))
		return
	}
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := readConfig(*configFile)
	if err == nil {
		o.apply(cfg)
		err = cfg.check()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "iconfont:", err)
		os.Exit(2)
	}
	iconfont.SetLogger(newLogger(cfg.Verbose))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *watch, *cpuprofile, *memprofile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a text logger if stderr is a terminal, and a JSON
// logger otherwise.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

func run(ctx context.Context, cfg *fileConfig, watch time.Duration, cpuprofile, memprofile string) (err error) {
	prof, err := profile.Start(cpuprofile, memprofile)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := prof.Stop(); err == nil {
			err = err2
		}
	}()

	out := newOutputWriter(cfg.Fonts, cfg.Styles)
	d := iconfont.GlobDiscoverer{}
	if watch <= 0 {
		return build(ctx, cfg, d, out)
	}

	ticker := time.NewTicker(watch)
	defer ticker.Stop()
	for {
		err := build(ctx, cfg, d, out)
		if errors.Is(err, context.Canceled) {
			return nil
		} else if err != nil {
			// keep watching, the next change may fix the problem
			iconfont.Logger().Error("build failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func build(ctx context.Context, cfg *fileConfig, d iconfont.Discoverer, out *outputWriter) error {
	log := iconfont.Logger()

	paths, err := d.Discover(cfg.SVGs)
	if err != nil {
		return err
	}
	res, err := iconfont.Generate(ctx, paths, &cfg.Options)
	if err != nil {
		return err
	}

	written, err := out.Write(res)
	for _, name := range written {
		log.Info("wrote file", "name", name)
	}
	if err != nil {
		return err
	}
	if len(written) == 0 {
		log.Debug("outputs unchanged")
	}
	return nil
}
