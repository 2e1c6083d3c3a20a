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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		less bool
	}{
		{"icon2.svg", "icon10.svg", true},
		{"icon10.svg", "icon2.svg", false},
		{"B.svg", "a.svg", true},
		{"a.svg", "b.svg", true},
		{"uE002-zzz.svg", "aaa.svg", true},
		{"aaa.svg", "uE001-zzz.svg", false},
		{"uE001-b.svg", "uE002-a.svg", true},
		{"dir/uE001-b.svg", "a.svg", true},
		{"a01.svg", "a1.svg", true},
		{"a/b.svg", "a-b.svg", false},
		{"x.svg", "x.svg", false},
	}
	for _, c := range cases {
		got := Compare(c.a, c.b) < 0
		if got != c.less {
			t.Errorf("Compare(%q, %q) < 0 = %t", c.a, c.b, got)
		}
	}
	if Compare("x.svg", "x.svg") != 0 {
		t.Error("identical paths do not compare equal")
	}
}

func TestSort(t *testing.T) {
	in := []string{
		"icons/star10.svg",
		"icons/Star.svg",
		"icons/star2.svg",
		"icons/uEA05-home.svg",
		"icons/star2.svg",
		"icons/arrow.svg",
	}
	want := []string{
		"icons/uEA05-home.svg",
		"icons/Star.svg",
		"icons/arrow.svg",
		"icons/star2.svg",
		"icons/star10.svg",
	}
	got := Sort(in)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong order (-want +got):\n%s", d)
	}
	if in[0] != "icons/star10.svg" {
		t.Error("input slice was modified")
	}
}

func TestParseName(t *testing.T) {
	cases := []struct {
		path   string
		codes  []rune
		name   string
		prefix bool
	}{
		{"a/b/home.svg", nil, "home", false},
		{"uE001-home.svg", []rune{0xE001}, "home", true},
		{"UE001-home.svg", []rune{0xE001}, "home", true},
		{"uE001,uE002-arrow-left.svg", []rune{0xE001, 0xE002}, "arrow-left", true},
		{"u1F600-smile.svg", []rune{0x1F600}, "smile", true},
		{"arrow-left.svg", nil, "arrow-left", false},
		{"uxyz1-home.svg", nil, "uxyz1-home", false},
		{"u12-home.svg", nil, "u12-home", false},
		{"uE001-.svg", nil, "uE001-", false},
		{`c:\icons\uE001-home.svg`, []rune{0xE001}, "home", true},
	}
	for _, c := range cases {
		codes, name, prefix := ParseName(c.path)
		if d := cmp.Diff(c.codes, codes); d != "" {
			t.Errorf("%s: wrong code points (-want +got):\n%s", c.path, d)
		}
		if name != c.name || prefix != c.prefix {
			t.Errorf("%s: got %q %t, want %q %t", c.path, name, prefix, c.name, c.prefix)
		}
	}
}
