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

// Package tiff reads the header information of TIFF images.
//
// Only the first image file directory is used.  The directory reader is
// also used for the TIFF structure embedded in JPEG Exif segments.
package tiff

import (
	"encoding/binary"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// Decode reads the header of a TIFF image.
func Decode(src stream.Source) (*header.Header, error) {
	d, err := ReadDirectory(stream.New(src, binary.BigEndian))
	if err != nil {
		return nil, err
	}

	width, ok := d.Uint(TagImageWidth)
	if !ok {
		return nil, header.Invalid(header.TIFF, 0, "missing or invalid ImageWidth")
	}
	height, ok := d.Uint(TagImageLength)
	if !ok {
		return nil, header.Invalid(header.TIFF, 0, "missing or invalid ImageLength")
	}
	horz, vert := d.Resolution()

	return header.New(header.TIFF, width, height, horz, vert, d.Metadata()), nil
}
