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

// Package header describes the intrinsic properties of an embedded image.
//
// A [Header] is produced by one of the format packages (png, jpeg, gif, bmp,
// tiff, webp) and is immutable after construction.  The package also defines
// the error types shared by all image parsers.
package header

import (
	"fmt"
	"slices"

	"seehuhn.de/go/xmp"
)

// DefaultDPI is used when an image does not specify its resolution.
const DefaultDPI = 72

// Format identifies an image file format.
type Format int

// These are the supported image formats.
const (
	Unknown Format = iota
	BMP
	GIF
	JPEG
	PNG
	TIFF
	WebP
)

// ContentType returns the MIME type for images of format f.
func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case GIF:
		return "image/gif"
	case JPEG:
		return "image/jpeg"
	case PNG:
		return "image/png"
	case TIFF:
		return "image/tiff"
	case WebP:
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// DefaultExt returns the file name extension, without leading dot,
// normally used for images of format f.
func (f Format) DefaultExt() string {
	switch f {
	case BMP:
		return "bmp"
	case GIF:
		return "gif"
	case JPEG:
		return "jpg"
	case PNG:
		return "png"
	case TIFF:
		return "tiff"
	case WebP:
		return "webp"
	default:
		return "bin"
	}
}

func (f Format) String() string {
	switch f {
	case BMP:
		return "BMP"
	case GIF:
		return "GIF"
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	case TIFF:
		return "TIFF"
	case WebP:
		return "WebP"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Metadata holds optional information found in ancillary parts of an image
// file.  Any of the fields may be empty.
type Metadata struct {
	ICC  *ICCProfile
	XMP  *xmp.Packet
	Text []TextEntry
}

// Header describes the pixel size and resolution of an image.
type Header struct {
	format   Format
	pxWidth  uint
	pxHeight uint
	horzDPI  uint
	vertDPI  uint
	meta     Metadata
}

// New returns a Header for an image of the given format.
// The metadata argument can be nil.
func New(f Format, pxWidth, pxHeight, horzDPI, vertDPI uint, meta *Metadata) *Header {
	h := &Header{
		format:   f,
		pxWidth:  pxWidth,
		pxHeight: pxHeight,
		horzDPI:  horzDPI,
		vertDPI:  vertDPI,
	}
	if meta != nil {
		h.meta = *meta
		h.meta.Text = slices.Clone(meta.Text)
	}
	return h
}

// Format returns the file format of the image.
func (h *Header) Format() Format {
	return h.format
}

// ContentType returns the MIME type of the image, e.g. "image/png".
func (h *Header) ContentType() string {
	return h.format.ContentType()
}

// DefaultExt returns the usual file name extension for the image format.
func (h *Header) DefaultExt() string {
	return h.format.DefaultExt()
}

// PxWidth returns the image width in pixels.
func (h *Header) PxWidth() uint {
	return h.pxWidth
}

// PxHeight returns the image height in pixels.
func (h *Header) PxHeight() uint {
	return h.pxHeight
}

// HorzDPI returns the horizontal resolution in dots per inch.
func (h *Header) HorzDPI() uint {
	return h.horzDPI
}

// VertDPI returns the vertical resolution in dots per inch.
func (h *Header) VertDPI() uint {
	return h.vertDPI
}

// ICC returns the embedded color profile, or nil if there is none.
func (h *Header) ICC() *ICCProfile {
	return h.meta.ICC
}

// XMP returns the embedded XMP packet, or nil if there is none.
func (h *Header) XMP() *xmp.Packet {
	return h.meta.XMP
}

// Text returns the textual entries of the image, in file order.
func (h *Header) Text() []TextEntry {
	return slices.Clone(h.meta.Text)
}

func (h *Header) String() string {
	return fmt.Sprintf("%s %dx%d px, %dx%d dpi",
		h.format, h.pxWidth, h.pxHeight, h.horzDPI, h.vertDPI)
}
