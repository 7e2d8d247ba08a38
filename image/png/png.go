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

// Package png reads the header information of PNG images.
//
// Only the chunks needed to determine the image size and resolution are
// interpreted.  The image data is never decoded and chunk CRCs are not
// checked.
//
// See https://www.w3.org/TR/png-3/ for the file format.
package png

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/docx/image/chunk"
	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/optional"
)

// Signature is the fixed start of every PNG file.
const Signature = "\x89PNG\r\n\x1a\n"

// Chunk type tags used by this package.
const (
	TagIHDR = "IHDR"
	TagPHYs = "pHYs"
	TagIEND = "IEND"
	TagICCP = "iCCP"
	TagTEXT = "tEXt"
	TagZTXT = "zTXt"
	TagITXT = "iTXt"
)

// unitMeter is the pHYs unit specifier for pixels per meter.
const unitMeter = 1

var layout = &chunk.Layout{
	Format:   header.PNG,
	Start:    int64(len(Signature)),
	Trailer:  4,
	Terminal: TagIEND,
}

// Attributes holds the fields extracted from the IHDR and pHYs chunks.
// Fields which were not present in the file are unset.
type Attributes struct {
	PxWidth        optional.UInt
	PxHeight       optional.UInt
	HorzPxPerUnit  optional.UInt
	VertPxPerUnit  optional.UInt
	UnitsSpecifier optional.UInt
}

// merge copies all fields of other which are not yet set in a.
func (a *Attributes) merge(other *Attributes) {
	a.PxWidth.Merge(other.PxWidth)
	a.PxHeight.Merge(other.PxHeight)
	a.HorzPxPerUnit.Merge(other.HorzPxPerUnit)
	a.VertPxPerUnit.Merge(other.VertPxPerUnit)
	a.UnitsSpecifier.Merge(other.UnitsSpecifier)
}

// Chunks returns the chunk table of a PNG stream.
// The stream must start with the PNG signature; the signature itself is not
// checked.
func Chunks(r *stream.Reader) (*chunk.Table, error) {
	return chunk.Scan(r, layout)
}

// ParseAttributes extracts the size and density attributes of a PNG stream.
// The stream must start with the PNG signature; the signature itself is not
// checked.
func ParseAttributes(r *stream.Reader) (*Attributes, error) {
	table, err := Chunks(r)
	if err != nil {
		return nil, err
	}
	return attributesFromTable(r, table)
}

func attributesFromTable(r *stream.Reader, table *chunk.Table) (*Attributes, error) {
	ihdr, ok := table.Find(TagIHDR)
	if !ok {
		return nil, header.Invalid(header.PNG, 0, "no IHDR chunk")
	}

	attrs := &Attributes{}
	fields, err := extract(r, ihdr, readIHDR)
	if err != nil {
		return nil, err
	}
	attrs.merge(fields)

	if phys, ok := table.Find(TagPHYs); ok {
		fields, err := extract(r, phys, readPHYs)
		if err != nil {
			return nil, err
		}
		attrs.merge(fields)
	}

	return attrs, nil
}

func extract(r *stream.Reader, e chunk.Entry, read func(*stream.Reader) (*Attributes, error)) (*Attributes, error) {
	payload, err := chunk.Payload(r, e)
	if err != nil {
		return nil, header.Wrap(header.PNG, e.Offset, err)
	}
	attrs, err := read(payload)
	if err != nil {
		return nil, header.Wrap(header.PNG, e.Offset, err)
	}
	return attrs, nil
}

// NewHeader computes the image header from the extracted attributes.
// The metadata argument can be nil.
//
// The resolution is only used if the pHYs chunk specifies pixels per meter.
// Otherwise, or if the pHYs chunk is missing, 72 dpi is assumed.
func NewHeader(attrs *Attributes, meta *header.Metadata) *header.Header {
	width, _ := attrs.PxWidth.Get()
	height, _ := attrs.PxHeight.Get()
	horzDPI := dpi(attrs.UnitsSpecifier, attrs.HorzPxPerUnit)
	vertDPI := dpi(attrs.UnitsSpecifier, attrs.VertPxPerUnit)
	return header.New(header.PNG, width, height, horzDPI, vertDPI, meta)
}

func dpi(units, pxPerUnit optional.UInt) uint {
	u, ok := units.Get()
	if !ok || u != unitMeter {
		return header.DefaultDPI
	}
	ppu, ok := pxPerUnit.Get()
	if !ok {
		return header.DefaultDPI
	}
	return header.DPIFromPixelsPerMeter(ppu, header.DefaultDPI)
}

// Decode reads the header of a PNG image.
func Decode(src stream.Source) (*header.Header, error) {
	r := stream.New(src, binary.BigEndian)

	sig, err := r.Bytes(0, len(Signature))
	if err != nil || !bytes.Equal(sig, []byte(Signature)) {
		return nil, header.Invalid(header.PNG, 0, "missing PNG signature")
	}

	table, err := Chunks(r)
	if err != nil {
		return nil, err
	}
	attrs, err := attributesFromTable(r, table)
	if err != nil {
		return nil, err
	}
	return NewHeader(attrs, readMetadata(r, table)), nil
}
