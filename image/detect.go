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

package image

import (
	"fmt"

	"seehuhn.de/go/docx/image/bmp"
	"seehuhn.de/go/docx/image/gif"
	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/jpeg"
	"seehuhn.de/go/docx/image/png"
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/image/tiff"
	"seehuhn.de/go/docx/image/webp"
)

// headSize is the number of bytes inspected to detect the image format.
const headSize = 32

type decodeFunc func(stream.Source) (*header.Header, error)

// signature is a byte sequence expected at a fixed offset.
type signature struct {
	offset int
	magic  string
}

// formats lists the supported image formats, in the order in which they
// are tried.  All signatures of an entry must match.  BMP comes last
// because its signature is the shortest.
var formats = []struct {
	format header.Format
	sigs   []signature
	decode decodeFunc
}{
	{header.PNG, []signature{{0, png.Signature}}, png.Decode},
	{header.TIFF, []signature{{0, tiff.BigEndianSignature}}, tiff.Decode},
	{header.TIFF, []signature{{0, tiff.LittleEndianSignature}}, tiff.Decode},
	{header.JPEG, []signature{{0, jpeg.Signature}}, jpeg.Decode},
	{header.GIF, []signature{{0, gif.Signature87a}}, gif.Decode},
	{header.GIF, []signature{{0, gif.Signature89a}}, gif.Decode},
	{header.WebP, []signature{{0, "RIFF"}, {8, "WEBP"}}, webp.Decode},
	{header.BMP, []signature{{0, bmp.Signature}}, bmp.Decode},
}

// Detect returns the format of the image whose first bytes are given.
// At most the first 32 bytes are used.  If the format is not recognized,
// [header.Unknown] is returned.
func Detect(head []byte) header.Format {
	if _, f := lookup(head); f != nil {
		return *f
	}
	return header.Unknown
}

func lookup(head []byte) (decodeFunc, *header.Format) {
	if len(head) > headSize {
		head = head[:headSize]
	}
	for i := range formats {
		if matches(head, formats[i].sigs) {
			return formats[i].decode, &formats[i].format
		}
	}
	return nil, nil
}

func matches(head []byte, sigs []signature) bool {
	for _, s := range sigs {
		end := s.offset + len(s.magic)
		if end > len(head) || string(head[s.offset:end]) != s.magic {
			return false
		}
	}
	return true
}

// DecodeHeader detects the format of an image and reads its header.
// If the format is not recognized, an [*UnrecognizedImageError] is returned.
func DecodeHeader(src stream.Source) (*header.Header, error) {
	head := make([]byte, min(src.Size(), headSize))
	// ReadAt may return io.EOF together with a full buffer.
	if k, err := src.ReadAt(head, 0); k != len(head) {
		return nil, err
	}

	decode, _ := lookup(head)
	if decode == nil {
		return nil, &UnrecognizedImageError{Head: head}
	}
	return decode(src)
}

// UnrecognizedImageError is returned when the image format cannot be
// detected from the file signature.
type UnrecognizedImageError struct {
	// Head holds the first bytes of the stream.
	Head []byte
}

func (err *UnrecognizedImageError) Error() string {
	n := min(len(err.Head), 8)
	return fmt.Sprintf("unrecognized image format (file starts with % x)", err.Head[:n])
}
