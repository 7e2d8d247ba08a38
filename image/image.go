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

// Package image represents images embedded in DOCX documents.
//
// The image format is detected from the file signature.  Only the file
// header is parsed, to find the pixel size and resolution of the image;
// the pixel data is never decoded.  PNG, JPEG, GIF, BMP, TIFF and WebP
// files are supported.
package image

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/docx"
	"seehuhn.de/go/docx/image/header"
)

// Image is an image file together with its parsed header.
type Image struct {
	blob     []byte
	filename string
	hdr      *header.Header
}

// FromBlob returns the image stored in blob.
// The caller must not modify blob after the call.
func FromBlob(blob []byte) (*Image, error) {
	return newImage(blob, "")
}

// FromFile reads an image from a file.
// The base name of path is used as the image file name.
func FromFile(path string) (*Image, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := newImage(blob, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// FromReader reads an image from r.  If filename is empty, a default name
// based on the image format is used.
func FromReader(r io.Reader, filename string) (*Image, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return newImage(blob, filename)
}

func newImage(blob []byte, filename string) (*Image, error) {
	hdr, err := DecodeHeader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	if filename == "" {
		filename = "image." + hdr.DefaultExt()
	}
	return &Image{blob: blob, filename: filename, hdr: hdr}, nil
}

// Blob returns the bytes of the image file.
// The returned slice must not be modified.
func (img *Image) Blob() []byte {
	return img.blob
}

// Filename returns the file name of the image.  This is either the name
// given when the image was loaded, or "image.<ext>".
func (img *Image) Filename() string {
	return img.filename
}

// Ext returns the file name extension of the image, without the leading
// dot.  The extension of the file name is used if there is one, and the
// default extension of the image format otherwise.
func (img *Image) Ext() string {
	if ext := strings.TrimPrefix(filepath.Ext(img.filename), "."); ext != "" {
		return ext
	}
	return img.hdr.DefaultExt()
}

// Header returns the parsed image header.
func (img *Image) Header() *header.Header {
	return img.hdr
}

// ContentType returns the MIME type of the image, for example "image/png".
func (img *Image) ContentType() string {
	return img.hdr.ContentType()
}

// PxWidth returns the width of the image in pixels.
func (img *Image) PxWidth() uint {
	return img.hdr.PxWidth()
}

// PxHeight returns the height of the image in pixels.
func (img *Image) PxHeight() uint {
	return img.hdr.PxHeight()
}

// HorzDPI returns the horizontal resolution in dots per inch.
func (img *Image) HorzDPI() uint {
	return img.hdr.HorzDPI()
}

// VertDPI returns the vertical resolution in dots per inch.
func (img *Image) VertDPI() uint {
	return img.hdr.VertDPI()
}

// Width returns the native width of the image, at its resolution.
func (img *Image) Width() docx.Length {
	return nativeLength(img.hdr.PxWidth(), img.hdr.HorzDPI())
}

// Height returns the native height of the image, at its resolution.
func (img *Image) Height() docx.Length {
	return nativeLength(img.hdr.PxHeight(), img.hdr.VertDPI())
}

func nativeLength(px, dpi uint) docx.Length {
	return docx.Length(int64(px) * int64(docx.Inch) / int64(dpi))
}

// ScaledDimensions returns the size at which the image is shown, given the
// requested width and height.  A zero argument means "unspecified": if one
// side is given, the other is scaled to preserve the aspect ratio, and if
// neither is given, the native size is used.
func (img *Image) ScaledDimensions(width, height docx.Length) (docx.Length, docx.Length) {
	if width == 0 && height == 0 {
		return img.Width(), img.Height()
	}
	if width == 0 {
		width = scale(img.Width(), height, img.Height())
	}
	if height == 0 {
		height = scale(img.Height(), width, img.Width())
	}
	return width, height
}

// scale returns x*num/den, rounded to the nearest EMU.
func scale(x, num, den docx.Length) docx.Length {
	if den == 0 {
		return 0
	}
	return docx.Length(math.Round(float64(x) * float64(num) / float64(den)))
}

// SHA1 returns the SHA-1 hash of the image file, as a hexadecimal string.
// DOCX packages use this to recognize repeated images.
func (img *Image) SHA1() string {
	sum := sha1.Sum(img.blob)
	return hex.EncodeToString(sum[:])
}

// Extent returns the native size of the image in points (1/72 inch),
// with the lower left corner at the origin.
func (img *Image) Extent() rect.Rect {
	return rect.Rect{
		URx: img.Width().Pt(),
		URy: img.Height().Pt(),
	}
}

func (img *Image) String() string {
	return fmt.Sprintf("%s: %s", img.filename, img.hdr)
}
