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

// Package stream provides offset-addressed access to a buffered byte source.
//
// A [Reader] has no current position.  Every read names the absolute offset
// it wants, so that the fields of a chunk or segment can be decoded in any
// order.  Multi-byte integers are decoded using the byte order given when
// the Reader is created.
package stream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
)

// Source describes the requirements for the data underlying a Reader.
// Both [bytes.Reader] and [io.SectionReader] implement this interface.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Reader decodes fixed-width fields from a Source.
// A Reader never modifies the underlying data and can be shared between
// goroutines.
type Reader struct {
	src   Source
	base  int64
	size  int64
	order binary.ByteOrder
}

// New allocates a new Reader which reads from the whole of src.
func New(src Source, order binary.ByteOrder) *Reader {
	return &Reader{
		src:   src,
		size:  src.Size(),
		order: order,
	}
}

// FromBytes allocates a new Reader for an in-memory byte slice.
func FromBytes(data []byte, order binary.ByteOrder) *Reader {
	return New(bytes.NewReader(data), order)
}

// Size returns the number of bytes accessible through r.
func (r *Reader) Size() int64 {
	return r.size
}

// ByteOrder returns the byte order used to decode integers.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}

// WithOrder returns a Reader for the same bytes as r, which decodes
// integers using the given byte order.
func (r *Reader) WithOrder(order binary.ByteOrder) *Reader {
	res := *r
	res.order = order
	return &res
}

// Section returns a Reader for the n bytes starting at offset.
// Offsets used with the new Reader are relative to the section start.
func (r *Reader) Section(offset, n int64) (*Reader, error) {
	if err := r.check(offset, n); err != nil {
		return nil, err
	}
	res := *r
	res.base = r.base + offset
	res.size = n
	return &res, nil
}

// InBounds reports whether the n bytes starting at offset are inside the
// stream.
func (r *Reader) InBounds(offset, n int64) bool {
	return offset >= 0 && n >= 0 && offset <= r.size && n <= r.size-offset
}

func (r *Reader) check(offset, n int64) error {
	if !r.InBounds(offset, n) {
		return &OutOfBoundsError{Offset: offset, Length: n, Size: r.size}
	}
	return nil
}

// Bytes reads n bytes starting at offset.
// The returned slice is owned by the caller.
func (r *Reader) Bytes(offset int64, n int) ([]byte, error) {
	if err := r.check(offset, int64(n)); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	k, err := r.src.ReadAt(buf, r.base+offset)
	if k == n {
		return buf, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("read %d bytes at offset %d: %w", n, offset, err)
}

// Uint reads an unsigned integer of the given width (1, 2, 4 or 8 bytes)
// at offset.
func (r *Reader) Uint(offset int64, width int) (uint64, error) {
	buf, err := r.Bytes(offset, width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(r.order.Uint16(buf)), nil
	case 4:
		return uint64(r.order.Uint32(buf)), nil
	case 8:
		return r.order.Uint64(buf), nil
	default:
		panic(fmt.Sprintf("unsupported integer width %d", width))
	}
}

// Uint8 reads a single byte at offset.
func (r *Reader) Uint8(offset int64) (uint8, error) {
	v, err := r.Uint(offset, 1)
	return uint8(v), err
}

// Uint16 reads a 2-byte unsigned integer at offset.
func (r *Reader) Uint16(offset int64) (uint16, error) {
	v, err := r.Uint(offset, 2)
	return uint16(v), err
}

// Uint32 reads a 4-byte unsigned integer at offset.
func (r *Reader) Uint32(offset int64) (uint32, error) {
	v, err := r.Uint(offset, 4)
	return uint32(v), err
}

// Int32 reads a 4-byte two's complement integer at offset.
func (r *Reader) Int32(offset int64) (int32, error) {
	v, err := r.Uint(offset, 4)
	return int32(uint32(v)), err
}

// String reads a fixed-length string of n bytes at offset.
// If enc is nil, the bytes are returned unchanged.
func (r *Reader) String(offset int64, n int, enc encoding.Encoding) (string, error) {
	buf, err := r.Bytes(offset, n)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(buf), nil
	}
	dec, err := enc.NewDecoder().Bytes(buf)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

// Index returns the offset of the first occurrence of b at or after
// position from, or -1 if b does not occur.
func (r *Reader) Index(from int64, b byte) (int64, error) {
	if err := r.check(from, 0); err != nil {
		return -1, err
	}
	const bufSize = 512
	for pos := from; pos < r.size; {
		n := min(bufSize, r.size-pos)
		chunk, err := r.Bytes(pos, int(n))
		if err != nil {
			return -1, err
		}
		if i := bytes.IndexByte(chunk, b); i >= 0 {
			return pos + int64(i), nil
		}
		pos += n
	}
	return -1, nil
}

// OutOfBoundsError is returned when a read extends beyond the stream.
type OutOfBoundsError struct {
	Offset int64
	Length int64
	Size   int64
}

func (err *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds stream size %d",
		err.Length, err.Offset, err.Size)
}
