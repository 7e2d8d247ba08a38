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

package stream

import (
	"encoding/binary"
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestUint(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	type testCase struct {
		order  binary.ByteOrder
		offset int64
		width  int
		want   uint64
	}
	cases := []testCase{
		{binary.BigEndian, 0, 1, 0x01},
		{binary.BigEndian, 1, 2, 0x0203},
		{binary.LittleEndian, 1, 2, 0x0302},
		{binary.BigEndian, 4, 4, 0x05060708},
		{binary.LittleEndian, 4, 4, 0x08070605},
		{binary.BigEndian, 0, 8, 0x0102030405060708},
	}
	for _, c := range cases {
		r := FromBytes(data, c.order)
		got, err := r.Uint(c.offset, c.width)
		if err != nil {
			t.Errorf("%v Uint(%d, %d): %v", c.order, c.offset, c.width, err)
			continue
		}
		if got != c.want {
			t.Errorf("%v Uint(%d, %d) = %#x, want %#x", c.order, c.offset, c.width, got, c.want)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	r := FromBytes([]byte{1, 2, 3, 4}, binary.BigEndian)

	for _, offset := range []int64{-1, 1, 2, 4, 100} {
		_, err := r.Uint32(offset)
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Errorf("Uint32(%d): got %v, want OutOfBoundsError", offset, err)
			continue
		}
		if oob.Offset != offset || oob.Length != 4 || oob.Size != 4 {
			t.Errorf("Uint32(%d): wrong error details %+v", offset, oob)
		}
	}

	if _, err := r.Uint32(0); err != nil {
		t.Errorf("Uint32(0): %v", err)
	}
	if _, err := r.Bytes(4, 0); err != nil {
		t.Errorf("empty read at end of stream: %v", err)
	}
}

func TestSection(t *testing.T) {
	r := FromBytes([]byte{0, 0, 0xAA, 0xBB, 0xCC, 0xDD, 0}, binary.BigEndian)
	s, err := r.Section(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if s.Size() != 4 {
		t.Errorf("section size = %d, want 4", s.Size())
	}
	v, err := s.Uint16(0)
	if err != nil || v != 0xAABB {
		t.Errorf("Uint16(0) = %#x, %v", v, err)
	}
	if _, err := s.Uint16(3); err == nil {
		t.Error("read past the section end succeeded")
	}

	le := s.WithOrder(binary.LittleEndian)
	v, _ = le.Uint16(2)
	if v != 0xDDCC {
		t.Errorf("little-endian Uint16(2) = %#x, want 0xddcc", v)
	}

	if _, err := r.Section(5, 3); err == nil {
		t.Error("section extending beyond the stream succeeded")
	}
}

func TestInt32(t *testing.T) {
	r := FromBytes([]byte{0xFF, 0xFF, 0xFF, 0xFE}, binary.BigEndian)
	v, err := r.Int32(0)
	if err != nil || v != -2 {
		t.Errorf("Int32(0) = %d, %v, want -2", v, err)
	}
}

func TestString(t *testing.T) {
	r := FromBytes([]byte("IHDRt\xe9st"), binary.BigEndian)

	tag, err := r.String(0, 4, nil)
	if err != nil || tag != "IHDR" {
		t.Errorf("String(0, 4) = %q, %v", tag, err)
	}

	latin1, err := r.String(4, 4, charmap.ISO8859_1)
	if err != nil || latin1 != "tést" {
		t.Errorf("Latin-1 String(4, 4) = %q, %v", latin1, err)
	}
}

func TestIndex(t *testing.T) {
	data := make([]byte, 2000)
	data[1500] = 0xFF
	r := FromBytes(data, binary.BigEndian)

	pos, err := r.Index(0, 0xFF)
	if err != nil || pos != 1500 {
		t.Errorf("Index(0) = %d, %v, want 1500", pos, err)
	}
	pos, err = r.Index(1501, 0xFF)
	if err != nil || pos != -1 {
		t.Errorf("Index(1501) = %d, %v, want -1", pos, err)
	}
}
