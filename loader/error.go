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

package loader

import (
	"errors"
	"fmt"
)

// ErrNoSources is returned by Load if no path has the ".svg" extension.
var ErrNoSources = errors.New("no SVG files matched the glob patterns")

// Kind classifies loader errors.
type Kind int

// These are the possible error kinds.
const (
	KindRead Kind = iota + 1
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindValidation:
		return "validation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error reports a problem with a single glyph source file.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %v", err.Path, err.Kind, err.Err)
}

func (err *Error) Unwrap() error {
	return err.Err
}

var errEmpty = errors.New("empty file")
