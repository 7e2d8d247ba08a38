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

package png

import (
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/optional"
)

// readIHDR extracts the image size from the payload of an IHDR chunk.
func readIHDR(p *stream.Reader) (*Attributes, error) {
	width, err := p.Uint32(0)
	if err != nil {
		return nil, err
	}
	height, err := p.Uint32(4)
	if err != nil {
		return nil, err
	}
	return &Attributes{
		PxWidth:  optional.NewUInt(uint(width)),
		PxHeight: optional.NewUInt(uint(height)),
	}, nil
}

// readPHYs extracts the pixel density from the payload of a pHYs chunk.
func readPHYs(p *stream.Reader) (*Attributes, error) {
	horz, err := p.Uint32(0)
	if err != nil {
		return nil, err
	}
	vert, err := p.Uint32(4)
	if err != nil {
		return nil, err
	}
	units, err := p.Uint8(8)
	if err != nil {
		return nil, err
	}
	return &Attributes{
		HorzPxPerUnit:  optional.NewUInt(uint(horz)),
		VertPxPerUnit:  optional.NewUInt(uint(vert)),
		UnitsSpecifier: optional.NewUInt(uint(units)),
	}, nil
}
