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

package header

import (
	"bytes"
	"errors"

	"golang.org/x/text/language"
	"seehuhn.de/go/icc"
	"seehuhn.de/go/xmp"
)

// ColorSpace is the data color space of an ICC profile.
type ColorSpace int

// These are the color spaces recognised in embedded profiles.
const (
	OtherColorSpace ColorSpace = iota
	GrayColorSpace
	RGBColorSpace
	CMYKColorSpace
	LabColorSpace
)

func (cs ColorSpace) String() string {
	switch cs {
	case GrayColorSpace:
		return "Gray"
	case RGBColorSpace:
		return "RGB"
	case CMYKColorSpace:
		return "CMYK"
	case LabColorSpace:
		return "Lab"
	default:
		return "other"
	}
}

// ICCProfile is a color profile embedded in an image.
type ICCProfile struct {
	// Data is the binary profile, as stored in the image.
	Data []byte

	ColorSpace ColorSpace

	// Components is the number of color channels in the profile's
	// data color space.
	Components int
}

// DecodeICC decodes an ICC profile embedded in an image file.
func DecodeICC(data []byte) (*ICCProfile, error) {
	if len(data) == 0 {
		return nil, errors.New("empty ICC profile")
	}
	p, err := icc.Decode(data)
	if err != nil {
		return nil, err
	}

	res := &ICCProfile{
		Data:       data,
		Components: p.ColorSpace.NumComponents(),
	}
	switch p.ColorSpace {
	case icc.GraySpace:
		res.ColorSpace = GrayColorSpace
	case icc.RGBSpace:
		res.ColorSpace = RGBColorSpace
	case icc.CMYKSpace:
		res.ColorSpace = CMYKColorSpace
	case icc.CIELabSpace:
		res.ColorSpace = LabColorSpace
	}
	return res, nil
}

// DecodeXMP parses an XMP packet embedded in an image file.
func DecodeXMP(data []byte) (*xmp.Packet, error) {
	if len(data) == 0 {
		return nil, errors.New("empty XMP packet")
	}
	return xmp.Read(bytes.NewReader(data))
}

// TextEntry is a keyword/value pair stored in an image, for example in the
// tEXt, zTXt and iTXt chunks of a PNG file.
type TextEntry struct {
	Keyword string
	Text    string

	// Lang is the language of Text, or [language.Und] if unknown.
	Lang language.Tag
}
