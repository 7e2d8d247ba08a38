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

package tiff

import (
	"bytes"
	"encoding/binary"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// Byte order marks at the start of a TIFF file.
const (
	LittleEndianSignature = "II\x2A\x00"
	BigEndianSignature    = "MM\x00\x2A"
)

// Field types.
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSByte     = 6
	TypeUndefined = 7
	TypeSShort    = 8
	TypeSLong     = 9
	TypeSRational = 10
	TypeFloat     = 11
	TypeDouble    = 12
)

// typeSize gives the size in bytes of a single value of each field type.
var typeSize = [...]int64{
	TypeByte:      1,
	TypeASCII:     1,
	TypeShort:     2,
	TypeLong:      4,
	TypeRational:  8,
	TypeSByte:     1,
	TypeUndefined: 1,
	TypeSShort:    2,
	TypeSLong:     4,
	TypeSRational: 8,
	TypeFloat:     4,
	TypeDouble:    8,
}

// Tags used by this package.
const (
	TagImageWidth     = 256
	TagImageLength    = 257
	TagXResolution    = 282
	TagYResolution    = 283
	TagResolutionUnit = 296
	TagXMP            = 700
	TagICCProfile     = 34675
)

// Values of the ResolutionUnit tag.
const (
	UnitNone       = 1
	UnitInch       = 2
	UnitCentimeter = 3
)

// entrySize is the length of an IFD entry in bytes.
const entrySize = 12

// maxEntries limits the number of entries in an IFD.
// Real files have a few dozen.
const maxEntries = 4096

// Entry is a single field of an image file directory.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32

	// dataOffset is the position of the value, either inside the entry or
	// elsewhere in the file.
	dataOffset int64
}

// Size returns the number of bytes occupied by the values of e.
func (e Entry) Size() int64 {
	if int(e.Type) >= len(typeSize) {
		return 0
	}
	return typeSize[e.Type] * int64(e.Count)
}

// Directory is the first image file directory (IFD0) of a TIFF stream.
type Directory struct {
	r       *stream.Reader
	entries map[uint16]Entry
	order   []uint16
}

// ReadDirectory reads IFD0 from a TIFF stream.
// The byte order of the stream is taken from the first two bytes of r; the
// byte order of r itself is ignored.
func ReadDirectory(r *stream.Reader) (*Directory, error) {
	mark, err := r.Bytes(0, 4)
	if err != nil {
		return nil, header.Invalid(header.TIFF, 0, "missing TIFF header")
	}
	switch {
	case bytes.Equal(mark, []byte(LittleEndianSignature)):
		r = r.WithOrder(binary.LittleEndian)
	case bytes.Equal(mark, []byte(BigEndianSignature)):
		r = r.WithOrder(binary.BigEndian)
	default:
		return nil, header.Invalid(header.TIFF, 0, "invalid byte order mark %q", mark)
	}

	ifdOffset, err := r.Uint32(4)
	if err != nil {
		return nil, header.Wrap(header.TIFF, 4, err)
	}
	pos := int64(ifdOffset)
	numEntries, err := r.Uint16(pos)
	if err != nil {
		return nil, header.Wrap(header.TIFF, pos, err)
	}
	if numEntries > maxEntries {
		return nil, header.Invalid(header.TIFF, pos, "too many IFD entries (%d)", numEntries)
	}
	if !r.InBounds(pos+2, int64(numEntries)*entrySize) {
		return nil, header.Invalid(header.TIFF, pos, "IFD extends beyond end of stream")
	}

	d := &Directory{
		r:       r,
		entries: make(map[uint16]Entry, numEntries),
	}
	for i := range int64(numEntries) {
		e, err := readEntry(r, pos+2+i*entrySize)
		if err != nil {
			return nil, err
		}
		if _, seen := d.entries[e.Tag]; seen {
			continue
		}
		d.entries[e.Tag] = e
		d.order = append(d.order, e.Tag)
	}
	return d, nil
}

func readEntry(r *stream.Reader, pos int64) (Entry, error) {
	tag, err := r.Uint16(pos)
	if err != nil {
		return Entry{}, header.Wrap(header.TIFF, pos, err)
	}
	tp, err := r.Uint16(pos + 2)
	if err != nil {
		return Entry{}, header.Wrap(header.TIFF, pos, err)
	}
	count, err := r.Uint32(pos + 4)
	if err != nil {
		return Entry{}, header.Wrap(header.TIFF, pos, err)
	}

	e := Entry{Tag: tag, Type: tp, Count: count, dataOffset: pos + 8}
	if e.Size() > 4 {
		offset, err := r.Uint32(pos + 8)
		if err != nil {
			return Entry{}, header.Wrap(header.TIFF, pos, err)
		}
		e.dataOffset = int64(offset)
	}
	return e, nil
}

// Entries returns the entries of the directory, in file order.
func (d *Directory) Entries() []Entry {
	res := make([]Entry, len(d.order))
	for i, tag := range d.order {
		res[i] = d.entries[tag]
	}
	return res
}

// Has reports whether the directory contains the given tag.
func (d *Directory) Has(tag uint16) bool {
	_, ok := d.entries[tag]
	return ok
}

// Uint returns the first value of an integer field.
// The second return value is false if the field is missing, has a
// non-integer type, or cannot be read.
func (d *Directory) Uint(tag uint16) (uint, bool) {
	e, ok := d.entries[tag]
	if !ok || e.Count < 1 {
		return 0, false
	}
	var width int
	switch e.Type {
	case TypeByte:
		width = 1
	case TypeShort:
		width = 2
	case TypeLong:
		width = 4
	default:
		return 0, false
	}
	v, err := d.r.Uint(e.dataOffset, width)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// Rational returns the first value of a RATIONAL field, or the value of an
// integer field converted to float64.
func (d *Directory) Rational(tag uint16) (float64, bool) {
	e, ok := d.entries[tag]
	if !ok || e.Count < 1 {
		return 0, false
	}
	if e.Type != TypeRational {
		v, ok := d.Uint(tag)
		return float64(v), ok
	}
	num, err := d.r.Uint32(e.dataOffset)
	if err != nil {
		return 0, false
	}
	den, err := d.r.Uint32(e.dataOffset + 4)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// Bytes returns the raw value of a BYTE or UNDEFINED field.
func (d *Directory) Bytes(tag uint16) ([]byte, bool) {
	e, ok := d.entries[tag]
	if !ok || (e.Type != TypeByte && e.Type != TypeUndefined) {
		return nil, false
	}
	if !d.r.InBounds(e.dataOffset, e.Size()) {
		return nil, false
	}
	data, err := d.r.Bytes(e.dataOffset, int(e.Size()))
	if err != nil {
		return nil, false
	}
	return data, true
}

// ASCII returns the value of an ASCII field, without the trailing NUL.
func (d *Directory) ASCII(tag uint16) (string, bool) {
	e, ok := d.entries[tag]
	if !ok || e.Type != TypeASCII || e.Count == 0 {
		return "", false
	}
	if !d.r.InBounds(e.dataOffset, e.Size()) {
		return "", false
	}
	s, err := d.r.String(e.dataOffset, int(e.Count), nil)
	if err != nil {
		return "", false
	}
	if i := bytes.IndexByte([]byte(s), 0); i >= 0 {
		s = s[:i]
	}
	return s, true
}

// Resolution returns the horizontal and vertical resolution in dots per
// inch.  Missing resolution fields, and files which give no absolute unit,
// give 72 dpi.
func (d *Directory) Resolution() (horz, vert uint) {
	unit, ok := d.Uint(TagResolutionUnit)
	if !ok {
		unit = UnitInch
	}
	return d.dpi(TagXResolution, unit), d.dpi(TagYResolution, unit)
}

func (d *Directory) dpi(tag uint16, unit uint) uint {
	v, ok := d.Rational(tag)
	if !ok {
		return header.DefaultDPI
	}
	switch unit {
	case UnitInch:
		return header.DPIFromInches(v, header.DefaultDPI)
	case UnitCentimeter:
		return header.DPIFromPixelsPerCentimeter(v, header.DefaultDPI)
	default:
		return header.DefaultDPI
	}
}

// Metadata returns the XMP packet and ICC profile stored in the directory.
// Fields which are missing or malformed are left empty.
func (d *Directory) Metadata() *header.Metadata {
	meta := &header.Metadata{}
	if data, ok := d.Bytes(TagXMP); ok {
		if packet, err := header.DecodeXMP(data); err == nil {
			meta.XMP = packet
		}
	}
	if data, ok := d.Bytes(TagICCProfile); ok {
		if profile, err := header.DecodeICC(data); err == nil {
			meta.ICC = profile
		}
	}
	return meta
}
