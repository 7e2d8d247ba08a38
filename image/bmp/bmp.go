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

// Package bmp reads the header information of Windows bitmap images.
package bmp

import (
	"encoding/binary"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// Signature is the start of every BMP file.
const Signature = "BM"

// DefaultDPI is used if the file gives no pixel density.
const DefaultDPI = 96

// Offsets in the file.  The info header starts at 0x0E.
const (
	offsInfoSize  = 0x0E
	offsWidth     = 0x12
	offsHeight    = 0x16
	offsHorzPPM   = 0x26
	offsVertPPM   = 0x2A
	coreInfoSize  = 12
	coreHeightPos = 0x14
)

// Decode reads the header of a BMP image.
//
// Both the original OS/2 core header and the Windows info headers are
// supported.  A negative height, used for top-down bitmaps, is returned as
// its absolute value.
func Decode(src stream.Source) (*header.Header, error) {
	r := stream.New(src, binary.LittleEndian)

	sig, err := r.String(0, 2, nil)
	if err != nil || sig != Signature {
		return nil, header.Invalid(header.BMP, 0, "missing BMP signature")
	}
	infoSize, err := r.Uint32(offsInfoSize)
	if err != nil {
		return nil, header.Wrap(header.BMP, offsInfoSize, err)
	}

	if infoSize == coreInfoSize {
		width, err := r.Uint16(offsWidth)
		if err != nil {
			return nil, header.Wrap(header.BMP, offsWidth, err)
		}
		height, err := r.Uint16(coreHeightPos)
		if err != nil {
			return nil, header.Wrap(header.BMP, coreHeightPos, err)
		}
		return header.New(header.BMP, uint(width), uint(height),
			DefaultDPI, DefaultDPI, nil), nil
	}

	width, err := r.Int32(offsWidth)
	if err != nil {
		return nil, header.Wrap(header.BMP, offsWidth, err)
	}
	height, err := r.Int32(offsHeight)
	if err != nil {
		return nil, header.Wrap(header.BMP, offsHeight, err)
	}
	horz, err := r.Uint32(offsHorzPPM)
	if err != nil {
		return nil, header.Wrap(header.BMP, offsHorzPPM, err)
	}
	vert, err := r.Uint32(offsVertPPM)
	if err != nil {
		return nil, header.Wrap(header.BMP, offsVertPPM, err)
	}

	return header.New(header.BMP, abs(width), abs(height),
		header.DPIFromPixelsPerMeter(uint(horz), DefaultDPI),
		header.DPIFromPixelsPerMeter(uint(vert), DefaultDPI),
		nil), nil
}

func abs(x int32) uint {
	if x < 0 {
		return uint(-int64(x))
	}
	return uint(x)
}
