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
	"strings"

	"seehuhn.de/go/iconfont/loader"
	"seehuhn.de/go/iconfont/metadata"
	"seehuhn.de/go/iconfont/svgfont"
	"seehuhn.de/go/iconfont/transcode"
)

// ErrNoSources is returned if none of the given paths is an SVG file.
var ErrNoSources = loader.ErrNoSources

// Kind classifies the errors returned by Generate.
type Kind int

// These are the possible error kinds.
const (
	KindConfig Kind = iota + 1
	KindDiscovery
	KindRead
	KindValidation
	KindMetadata
	KindAssembly
	KindTranscode
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindDiscovery:
		return "discovery"
	case KindRead:
		return "read"
	case KindValidation:
		return "validation"
	case KindMetadata:
		return "metadata"
	case KindAssembly:
		return "assembly"
	case KindTranscode:
		return "transcode"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Error is the error type returned by Generate.
type Error struct {
	Kind Kind

	// Path is the source file which caused the error, if any.
	Path string

	// Format is the output format which failed, for transcode errors.
	Format transcode.Format

	Err error
}

func (err *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString("iconfont: ")
	if err.Path != "" {
		b.WriteString(err.Path)
		b.WriteString(": ")
	}
	if err.Format != "" {
		b.WriteString(string(err.Format))
		b.WriteString(": ")
	}
	b.WriteString(err.Kind.String())
	b.WriteString(" error")
	if err.Err != nil {
		b.WriteString(": ")
		b.WriteString(innerMessage(err.Err))
	}
	return b.String()
}

func (err *Error) Unwrap() error {
	return err.Err
}

// innerMessage strips the path and kind prefix which the stage errors
// add, since Error prints these itself.
func innerMessage(err error) string {
	var (
		lErr *loader.Error
		mErr *metadata.Error
		sErr *svgfont.Error
		tErr *transcode.Error
	)
	switch {
	case errors.As(err, &lErr):
		return lErr.Err.Error()
	case errors.As(err, &mErr):
		return mErr.Err.Error()
	case errors.As(err, &sErr):
		return sErr.Err.Error()
	case errors.As(err, &tErr):
		return tErr.Err.Error()
	}
	return err.Error()
}

// wrap converts the error from a pipeline stage into an *Error.
// Context errors are returned unchanged.
func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoSources) {
		return &Error{Kind: KindDiscovery, Err: err}
	}
	if kind != KindConfig && isContextError(err) {
		return err
	}

	res := &Error{Kind: kind, Err: err}
	var (
		lErr *loader.Error
		mErr *metadata.Error
		sErr *svgfont.Error
		tErr *transcode.Error
	)
	switch {
	case errors.As(err, &lErr):
		res.Path = lErr.Path
		res.Kind = KindRead
		if lErr.Kind == loader.KindValidation {
			res.Kind = KindValidation
		}
	case errors.As(err, &mErr):
		res.Path = mErr.Path
		res.Kind = KindMetadata
	case errors.As(err, &sErr):
		res.Path = sErr.Path
		res.Kind = KindAssembly
	case errors.As(err, &tErr):
		res.Format = tErr.Format
		res.Kind = KindTranscode
	}
	return res
}
