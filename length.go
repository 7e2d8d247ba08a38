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
	"fmt"
	"math"
)

// Length is a distance in English Metric Units (EMU).
// There are 914400 EMU per inch and 360000 EMU per centimeter.
type Length int64

// Units, expressed in EMU.
const (
	Emu  Length = 1
	Twip Length = 635
	Pt   Length = 12700
	Mm   Length = 36000
	Cm   Length = 360000
	Inch Length = 914400
)

// Inches returns the length corresponding to x inches.
func Inches(x float64) Length {
	return fromFloat(x, Inch)
}

// Centimeters returns the length corresponding to x centimeters.
func Centimeters(x float64) Length {
	return fromFloat(x, Cm)
}

// Millimeters returns the length corresponding to x millimeters.
func Millimeters(x float64) Length {
	return fromFloat(x, Mm)
}

// Points returns the length corresponding to x PostScript points.
func Points(x float64) Length {
	return fromFloat(x, Pt)
}

// Twips returns the length corresponding to n twentieths of a point.
func Twips(n int64) Length {
	return Length(n) * Twip
}

func fromFloat(x float64, unit Length) Length {
	return Length(math.Round(x * float64(unit)))
}

// Emu returns the length in EMU.
func (l Length) Emu() int64 {
	return int64(l)
}

// Inches returns the length in inches.
func (l Length) Inches() float64 {
	return float64(l) / float64(Inch)
}

// Cm returns the length in centimeters.
func (l Length) Cm() float64 {
	return float64(l) / float64(Cm)
}

// Mm returns the length in millimeters.
func (l Length) Mm() float64 {
	return float64(l) / float64(Mm)
}

// Pt returns the length in points.
func (l Length) Pt() float64 {
	return float64(l) / float64(Pt)
}

// Twips returns the length in twips, rounded towards zero.
func (l Length) Twips() int64 {
	return int64(l / Twip)
}

func (l Length) String() string {
	return fmt.Sprintf("%gin", l.Inches())
}
