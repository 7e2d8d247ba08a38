// seehuhn.de/go/docx - a library for reading and writing DOCX files
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

package docx

import (
	"math"
	"testing"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		got  Length
		want int64
	}{
		{Inches(1), 914400},
		{Inches(0.5), 457200},
		{Centimeters(2.54), 914400},
		{Millimeters(1), 36000},
		{Points(72), 914400},
		{Twips(1440), 914400},
		{Inches(-1), -914400},
	}
	for i, c := range cases {
		if c.got.Emu() != c.want {
			t.Errorf("%d: got %d EMU, want %d", i, c.got.Emu(), c.want)
		}
	}
}

func TestConversions(t *testing.T) {
	l := Length(1828800)
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	if !near(l.Inches(), 2) {
		t.Errorf("Inches() = %g", l.Inches())
	}
	if !near(l.Cm(), 5.08) {
		t.Errorf("Cm() = %g", l.Cm())
	}
	if !near(l.Mm(), 50.8) {
		t.Errorf("Mm() = %g", l.Mm())
	}
	if !near(l.Pt(), 144) {
		t.Errorf("Pt() = %g", l.Pt())
	}
	if l.Twips() != 2880 {
		t.Errorf("Twips() = %d", l.Twips())
	}
	if s := l.String(); s != "2in" {
		t.Errorf("String() = %q", s)
	}
}
