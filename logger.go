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
	"log/slog"

	"seehuhn.de/go/iconfont/internal/logging"
)

// SetLogger sets the logger used by all packages of this module.
// By default, nothing is logged.  Passing nil restores the default.
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logging.Logger()
}
