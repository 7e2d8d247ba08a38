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

// Package gif reads the header information of GIF images.
// GIF files carry no resolution information; 72 dpi is always used.
package gif

import (
	"encoding/binary"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// Signatures of the two GIF versions.
const (
	Signature87a = "GIF87a"
	Signature89a = "GIF89a"
)

// Decode reads the logical screen size of a GIF image.
func Decode(src stream.Source) (*header.Header, error) {
	r := stream.New(src, binary.LittleEndian)

	sig, err := r.String(0, 6, nil)
	if err != nil || (sig != Signature87a && sig != Signature89a) {
		return nil, header.Invalid(header.GIF, 0, "missing GIF signature")
	}
	width, err := r.Uint16(6)
	if err != nil {
		return nil, header.Wrap(header.GIF, 6, err)
	}
	height, err := r.Uint16(8)
	if err != nil {
		return nil, header.Wrap(header.GIF, 8, err)
	}

	return header.New(header.GIF, uint(width), uint(height),
		header.DefaultDPI, header.DefaultDPI, nil), nil
}
