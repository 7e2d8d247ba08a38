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

// Package webp reads the header information of WebP images.
//
// WebP files are RIFF containers.  The canvas size is taken from the VP8X
// chunk if present, and from the VP8L or VP8 bitstream header otherwise.
// An EXIF chunk, if present, supplies the resolution.
package webp

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/docx/image/chunk"
	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/image/tiff"
)

// Chunk tags.
const (
	TagVP8X = "VP8X"
	TagVP8L = "VP8L"
	TagVP8  = "VP8 "
	TagICCP = "ICCP"
	TagEXIF = "EXIF"
	TagXMP  = "XMP "
)

const (
	riffMagic = "RIFF"
	webpMagic = "WEBP"

	vp8lMagic = 0x2F
	vp8Magic  = "\x9D\x01\x2A"
)

var layout = &chunk.Layout{
	Format:   header.WebP,
	Start:    12,
	TagFirst: true,
	Align:    2,
}

// IsWebP reports whether data starts with a WebP file header.
func IsWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == riffMagic && string(data[8:12]) == webpMagic
}

// Chunks returns the chunk table of a WebP stream.
// Data beyond the size given in the RIFF header is ignored.
func Chunks(r *stream.Reader) (*chunk.Table, error) {
	head, err := r.Bytes(0, 12)
	if err != nil || !IsWebP(head) {
		return nil, header.Invalid(header.WebP, 0, "missing RIFF/WEBP header")
	}
	riffSize := int64(binary.LittleEndian.Uint32(head[4:]))
	if size := 8 + riffSize; size < r.Size() {
		if size < 12 {
			return nil, header.Invalid(header.WebP, 4, "invalid RIFF size %d", riffSize)
		}
		r, err = r.Section(0, size)
		if err != nil {
			return nil, header.Wrap(header.WebP, 4, err)
		}
	}
	return chunk.Scan(r, layout)
}

// Decode reads the header of a WebP image.
func Decode(src stream.Source) (*header.Header, error) {
	r := stream.New(src, binary.LittleEndian)
	table, err := Chunks(r)
	if err != nil {
		return nil, err
	}

	var width, height uint
	switch {
	case table.Has(TagVP8X):
		width, height, err = readChunk(r, table, TagVP8X, readVP8X)
	case table.Has(TagVP8L):
		width, height, err = readChunk(r, table, TagVP8L, readVP8L)
	case table.Has(TagVP8):
		width, height, err = readChunk(r, table, TagVP8, readVP8)
	default:
		return nil, header.Invalid(header.WebP, 12, "no image data")
	}
	if err != nil {
		return nil, err
	}

	horz, vert := uint(header.DefaultDPI), uint(header.DefaultDPI)
	meta := &header.Metadata{}
	if p, ok := payload(r, table, TagEXIF); ok {
		if dir, err := tiff.ReadDirectory(exifBody(p)); err == nil {
			horz, vert = dir.Resolution()
		}
	}
	if p, ok := payload(r, table, TagICCP); ok {
		if data, err := p.Bytes(0, int(p.Size())); err == nil {
			if profile, err := header.DecodeICC(data); err == nil {
				meta.ICC = profile
			}
		}
	}
	if p, ok := payload(r, table, TagXMP); ok {
		if data, err := p.Bytes(0, int(p.Size())); err == nil {
			if packet, err := header.DecodeXMP(data); err == nil {
				meta.XMP = packet
			}
		}
	}

	return header.New(header.WebP, width, height, horz, vert, meta), nil
}

func readChunk(r *stream.Reader, table *chunk.Table, tag string,
	read func(*stream.Reader) (uint, uint, error)) (uint, uint, error) {
	e, _ := table.Find(tag)
	p, err := chunk.Payload(r, e)
	if err != nil {
		return 0, 0, header.Wrap(header.WebP, e.Offset, err)
	}
	width, height, err := read(p)
	if err != nil {
		return 0, 0, header.Wrap(header.WebP, e.Offset, err)
	}
	return width, height, nil
}

func payload(r *stream.Reader, table *chunk.Table, tag string) (*stream.Reader, bool) {
	e, ok := table.Find(tag)
	if !ok {
		return nil, false
	}
	p, err := chunk.Payload(r, e)
	if err != nil {
		return nil, false
	}
	return p, true
}

// exifBody strips the "Exif\0\0" prefix which some encoders write before
// the TIFF header.
func exifBody(p *stream.Reader) *stream.Reader {
	prefix, err := p.Bytes(0, 6)
	if err == nil && bytes.Equal(prefix, []byte("Exif\x00\x00")) {
		if body, err := p.Section(6, p.Size()-6); err == nil {
			return body
		}
	}
	return p
}

// readVP8X reads the canvas size from an extended format header.  Both
// dimensions are stored as 24-bit values, minus one.
func readVP8X(p *stream.Reader) (uint, uint, error) {
	data, err := p.Bytes(4, 6)
	if err != nil {
		return 0, 0, err
	}
	width := uint(data[0]) | uint(data[1])<<8 | uint(data[2])<<16
	height := uint(data[3]) | uint(data[4])<<8 | uint(data[5])<<16
	return width + 1, height + 1, nil
}

// readVP8L reads the image size from a lossless bitstream header: a
// signature byte followed by two 14-bit fields, minus one.
func readVP8L(p *stream.Reader) (uint, uint, error) {
	magic, err := p.Uint8(0)
	if err != nil {
		return 0, 0, err
	}
	if magic != vp8lMagic {
		return 0, 0, header.Invalid(header.WebP, 0, "invalid VP8L signature")
	}
	bits, err := p.Uint32(1)
	if err != nil {
		return 0, 0, err
	}
	width := uint(bits&0x3FFF) + 1
	height := uint(bits>>14&0x3FFF) + 1
	return width, height, nil
}

// readVP8 reads the image size from a lossy key frame header.  The upper
// two bits of each dimension hold the scaling mode.
func readVP8(p *stream.Reader) (uint, uint, error) {
	magic, err := p.Bytes(3, 3)
	if err != nil {
		return 0, 0, err
	}
	if string(magic) != vp8Magic {
		return 0, 0, header.Invalid(header.WebP, 3, "invalid VP8 start code")
	}
	width, err := p.Uint16(6)
	if err != nil {
		return 0, 0, err
	}
	height, err := p.Uint16(8)
	if err != nil {
		return 0, 0, err
	}
	return uint(width & 0x3FFF), uint(height & 0x3FFF), nil
}
