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

package jpeg

import (
	"fmt"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// Marker codes.  A marker is the byte 0xFF followed by one of these codes.
const (
	TEM   = 0x01
	SOF0  = 0xC0
	DHT   = 0xC4
	JPG   = 0xC8
	DAC   = 0xCC
	SOF15 = 0xCF
	RST0  = 0xD0
	RST7  = 0xD7
	SOI   = 0xD8
	EOI   = 0xD9
	SOS   = 0xDA
	APP0  = 0xE0
	APP1  = 0xE1
	APP2  = 0xE2
)

// IsSOF reports whether code is one of the start-of-frame markers
// SOF0 to SOF15.  DHT, JPG and DAC share the range but are not frame
// headers.
func IsSOF(code byte) bool {
	if code < SOF0 || code > SOF15 {
		return false
	}
	return code != DHT && code != JPG && code != DAC
}

// isStandalone reports whether a marker is not followed by a length field.
func isStandalone(code byte) bool {
	return code == TEM || code == SOI || code == EOI ||
		(code >= RST0 && code <= RST7)
}

// Segment describes a marker and the data following it.
type Segment struct {
	Code byte

	// Offset is the position of the length field, directly after the two
	// marker bytes.
	Offset int64

	// Length is the value of the length field, which includes the two
	// bytes of the length field itself.  Length is zero for standalone
	// markers.
	Length int64
}

func (s Segment) String() string {
	return fmt.Sprintf("FF%02X@%d+%d", s.Code, s.Offset, s.Length)
}

// Segments lists the markers of a JPEG stream, from the start of the file up
// to and including the first SOS or EOI marker.  Segments does not descend
// into entropy-coded data.
func Segments(r *stream.Reader) ([]Segment, error) {
	var res []Segment
	pos := int64(2)
	for {
		code, next, err := nextMarker(r, pos)
		if err != nil {
			return res, err
		}

		seg := Segment{Code: code, Offset: next}
		if !isStandalone(code) {
			length, err := r.Uint16(next)
			if err != nil {
				return res, header.Wrap(header.JPEG, next, err)
			}
			if length < 2 {
				return res, header.Invalid(header.JPEG, next,
					"invalid length %d for marker FF%02X", length, code)
			}
			if !r.InBounds(next, int64(length)) {
				return res, header.Invalid(header.JPEG, next,
					"marker FF%02X extends beyond end of stream", code)
			}
			seg.Length = int64(length)
		}
		res = append(res, seg)

		if code == SOS || code == EOI {
			return res, nil
		}
		pos = next + seg.Length
	}
}

// nextMarker finds the next marker at or after pos.  Fill bytes (0xFF) and
// any garbage before the marker are skipped.  The returned offset points
// to the byte after the marker code.
func nextMarker(r *stream.Reader, pos int64) (byte, int64, error) {
	for {
		ff, err := r.Index(pos, 0xFF)
		if err != nil {
			return 0, 0, header.Wrap(header.JPEG, pos, err)
		}
		if ff < 0 {
			return 0, 0, header.Invalid(header.JPEG, pos, "unexpected end of stream")
		}

		pos = ff + 1
		code, err := r.Uint8(pos)
		for err == nil && code == 0xFF {
			pos++
			code, err = r.Uint8(pos)
		}
		if err != nil {
			return 0, 0, header.Invalid(header.JPEG, pos, "unexpected end of stream")
		}
		pos++

		// FF 00 is a stuffed zero byte, not a marker
		if code != 0x00 {
			return code, pos, nil
		}
	}
}
