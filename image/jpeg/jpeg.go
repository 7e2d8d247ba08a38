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

// Package jpeg reads the header information of JPEG images.
//
// The image size is taken from the first start-of-frame marker.  The
// resolution is taken from a JFIF APP0 segment if present, and from the
// TIFF structure of an Exif APP1 segment otherwise.
package jpeg

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/image/tiff"
)

// Signature is the start of every JPEG file: an SOI marker followed by the
// first byte of the next marker.
const Signature = "\xFF\xD8\xFF"

// Identifiers at the start of APPn segments.
const (
	jfifID = "JFIF\x00"
	exifID = "Exif\x00\x00"
	xmpID  = "http://ns.adobe.com/xap/1.0/\x00"
	iccID  = "ICC_PROFILE\x00"
)

// Values of the JFIF density unit field.
const (
	unitDotsPerInch = 1
	unitDotsPerCm   = 2
)

// JFIF holds the pixel density stored in a JFIF APP0 segment.
type JFIF struct {
	Units    uint8
	XDensity uint16
	YDensity uint16
}

// DPI converts the pixel density to dots per inch.  If no absolute unit is
// given, 72 dpi is used.
func (j *JFIF) DPI() (horz, vert uint) {
	conv := func(d uint16) uint {
		switch j.Units {
		case unitDotsPerInch:
			return header.DPIFromInches(float64(d), header.DefaultDPI)
		case unitDotsPerCm:
			return header.DPIFromPixelsPerCentimeter(float64(d), header.DefaultDPI)
		default:
			return header.DefaultDPI
		}
	}
	return conv(j.XDensity), conv(j.YDensity)
}

type decoder struct {
	r *stream.Reader

	haveSize bool
	width    uint
	height   uint

	jfif *JFIF
	exif *tiff.Directory
	xmp  []byte

	iccCount byte
	iccParts map[byte][]byte
}

// Decode reads the header of a JPEG image.
func Decode(src stream.Source) (*header.Header, error) {
	r := stream.New(src, binary.BigEndian)

	soi, err := r.Bytes(0, 2)
	if err != nil || soi[0] != 0xFF || soi[1] != SOI {
		return nil, header.Invalid(header.JPEG, 0, "missing SOI marker")
	}

	segments, err := Segments(r)
	if err != nil {
		return nil, err
	}

	d := &decoder{r: r}
	for _, seg := range segments {
		if err := d.readSegment(seg); err != nil {
			return nil, err
		}
	}
	if !d.haveSize {
		return nil, header.Invalid(header.JPEG, 0, "no start-of-frame marker")
	}

	horz, vert := uint(header.DefaultDPI), uint(header.DefaultDPI)
	if d.jfif != nil {
		horz, vert = d.jfif.DPI()
	} else if d.exif != nil {
		horz, vert = d.exif.Resolution()
	}

	return header.New(header.JPEG, d.width, d.height, horz, vert, d.metadata()), nil
}

func (d *decoder) readSegment(seg Segment) error {
	switch {
	case IsSOF(seg.Code):
		if d.haveSize {
			return nil
		}
		if seg.Length < 8 {
			return header.Invalid(header.JPEG, seg.Offset, "start-of-frame segment too short")
		}
		height, err := d.r.Uint16(seg.Offset + 3)
		if err != nil {
			return header.Wrap(header.JPEG, seg.Offset, err)
		}
		width, err := d.r.Uint16(seg.Offset + 5)
		if err != nil {
			return header.Wrap(header.JPEG, seg.Offset, err)
		}
		d.width, d.height = uint(width), uint(height)
		d.haveSize = true

	case seg.Code == APP0:
		if d.jfif != nil || !d.hasID(seg, jfifID) || seg.Length < 14 {
			return nil
		}
		data, err := d.r.Bytes(seg.Offset+9, 5)
		if err != nil {
			return header.Wrap(header.JPEG, seg.Offset, err)
		}
		d.jfif = &JFIF{
			Units:    data[0],
			XDensity: binary.BigEndian.Uint16(data[1:]),
			YDensity: binary.BigEndian.Uint16(data[3:]),
		}

	case seg.Code == APP1:
		switch {
		case d.exif == nil && d.hasID(seg, exifID):
			start := int64(2 + len(exifID))
			body, err := d.r.Section(seg.Offset+start, seg.Length-start)
			if err != nil {
				return nil
			}
			if dir, err := tiff.ReadDirectory(body); err == nil {
				d.exif = dir
			}
		case d.xmp == nil && d.hasID(seg, xmpID):
			start := int64(2 + len(xmpID))
			data, err := d.r.Bytes(seg.Offset+start, int(seg.Length-start))
			if err == nil {
				d.xmp = data
			}
		}

	case seg.Code == APP2:
		if !d.hasID(seg, iccID) {
			return nil
		}
		start := int64(2 + len(iccID))
		if seg.Length < start+2 {
			return nil
		}
		data, err := d.r.Bytes(seg.Offset+start, int(seg.Length-start))
		if err != nil {
			return nil
		}
		seq, count := data[0], data[1]
		if d.iccParts == nil {
			d.iccParts = make(map[byte][]byte)
			d.iccCount = count
		}
		if count == d.iccCount {
			d.iccParts[seq] = data[2:]
		}
	}
	return nil
}

// hasID reports whether the segment data starts with the given identifier.
func (d *decoder) hasID(seg Segment, id string) bool {
	if seg.Length < int64(2+len(id)) {
		return false
	}
	data, err := d.r.Bytes(seg.Offset+2, len(id))
	return err == nil && bytes.Equal(data, []byte(id))
}

// metadata assembles the ICC profile and XMP packet.  Broken or incomplete
// metadata is ignored.
func (d *decoder) metadata() *header.Metadata {
	meta := &header.Metadata{}
	if d.xmp != nil {
		if packet, err := header.DecodeXMP(d.xmp); err == nil {
			meta.XMP = packet
		}
	} else if d.exif != nil {
		meta.XMP = d.exif.Metadata().XMP
	}

	if profile := d.iccProfile(); profile != nil {
		if p, err := header.DecodeICC(profile); err == nil {
			meta.ICC = p
		}
	}
	return meta
}

// iccProfile joins the parts of an ICC profile split over several APP2
// segments.  Parts are numbered from 1.
func (d *decoder) iccProfile() []byte {
	if d.iccCount == 0 || len(d.iccParts) != int(d.iccCount) {
		return nil
	}
	seqs := make([]byte, 0, len(d.iccParts))
	for seq := range d.iccParts {
		seqs = append(seqs, seq)
	}
	slices.Sort(seqs)
	var res []byte
	for i, seq := range seqs {
		if int(seq) != i+1 {
			return nil
		}
		res = append(res, d.iccParts[seq]...)
	}
	return res
}
