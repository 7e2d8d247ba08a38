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
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash/crc32"
	"image"
	"image/color/palette"
	stdgif "image/gif"
	stdjpeg "image/jpeg"
	stdpng "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	xbmp "golang.org/x/image/bmp"
	xtiff "golang.org/x/image/tiff"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/docx"
	"seehuhn.de/go/docx/image/header"
)

func pngChunk(tag string, data []byte) []byte {
	buf := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
	buf = append(buf, tag...)
	buf = append(buf, data...)
	crc := crc32.ChecksumIEEE(append([]byte(tag), data...))
	return binary.BigEndian.AppendUint32(buf, crc)
}

// pngWithDensity returns a PNG header for an image of the given size and
// pixel density (in pixels per meter).  There is no image data.
func pngWithDensity(width, height, horzPPM, vertPPM uint32) []byte {
	ihdr := binary.BigEndian.AppendUint32(nil, width)
	ihdr = binary.BigEndian.AppendUint32(ihdr, height)
	ihdr = append(ihdr, 8, 2, 0, 0, 0)

	phys := binary.BigEndian.AppendUint32(nil, horzPPM)
	phys = binary.BigEndian.AppendUint32(phys, vertPPM)
	phys = append(phys, 1)

	buf := []byte("\x89PNG\r\n\x1a\n")
	buf = append(buf, pngChunk("IHDR", ihdr)...)
	buf = append(buf, pngChunk("pHYs", phys)...)
	buf = append(buf, pngChunk("IEND", nil)...)
	return buf
}

func TestDetect(t *testing.T) {
	cases := []struct {
		head string
		want header.Format
	}{
		{"\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR", header.PNG},
		{"MM\x00\x2a\x00\x00\x00\x08", header.TIFF},
		{"II\x2a\x00\x08\x00\x00\x00", header.TIFF},
		{"\xff\xd8\xff\xe0\x00\x10JFIF\x00", header.JPEG},
		{"\xff\xd8\xff\xe1\x00\x10Exif\x00\x00", header.JPEG},
		{"\xff\xd8\xff\xdb\x00\x84", header.JPEG},
		{"GIF87a\x01\x00", header.GIF},
		{"GIF89a\x01\x00", header.GIF},
		{"RIFF\x24\x00\x00\x00WEBPVP8L", header.WebP},
		{"BM\x36\x00\x00\x00", header.BMP},
		{"RIFF\x24\x00\x00\x00AVI LIST", header.Unknown},
		{"%PDF-1.7", header.Unknown},
		{"\xff\xd8", header.Unknown},
		{"", header.Unknown},
	}
	for _, c := range cases {
		if got := Detect([]byte(c.head)); got != c.want {
			t.Errorf("Detect(%q) = %v, want %v", c.head, got, c.want)
		}
	}
}

func TestDecodeHeaderFormats(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 21, 13))
	paletted := image.NewPaletted(rgba.Bounds(), palette.WebSafe)

	encoders := map[header.Format]func(*bytes.Buffer) error{
		header.PNG:  func(b *bytes.Buffer) error { return stdpng.Encode(b, rgba) },
		header.JPEG: func(b *bytes.Buffer) error { return stdjpeg.Encode(b, rgba, nil) },
		header.GIF:  func(b *bytes.Buffer) error { return stdgif.Encode(b, paletted, nil) },
		header.BMP:  func(b *bytes.Buffer) error { return xbmp.Encode(b, rgba) },
		header.TIFF: func(b *bytes.Buffer) error { return xtiff.Encode(b, rgba, nil) },
	}
	for format, encode := range encoders {
		t.Run(format.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := encode(buf); err != nil {
				t.Fatal(err)
			}
			h, err := DecodeHeader(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if h.Format() != format {
				t.Errorf("format = %v, want %v", h.Format(), format)
			}
			if h.PxWidth() != 21 || h.PxHeight() != 13 {
				t.Errorf("size = %dx%d, want 21x13", h.PxWidth(), h.PxHeight())
			}
		})
	}
}

func TestUnrecognized(t *testing.T) {
	_, err := FromBlob([]byte("this is not an image"))
	var unrecognized *UnrecognizedImageError
	if !errors.As(err, &unrecognized) {
		t.Fatalf("expected UnrecognizedImageError, got %v", err)
	}
	if string(unrecognized.Head) != "this is not an image" {
		t.Errorf("Head = %q", unrecognized.Head)
	}
}

func TestInvalidStream(t *testing.T) {
	// a PNG signature without any chunks
	_, err := FromBlob([]byte("\x89PNG\r\n\x1a\n\x00\x00"))
	var invalid *header.InvalidImageStreamError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidImageStreamError, got %v", err)
	}
}

func TestImageSize(t *testing.T) {
	// 600x150 pixels at 300x150 dpi is 2x1 inches
	img, err := FromBlob(pngWithDensity(600, 150, 11811, 5906))
	if err != nil {
		t.Fatal(err)
	}

	if img.HorzDPI() != 300 || img.VertDPI() != 150 {
		t.Errorf("dpi = %dx%d, want 300x150", img.HorzDPI(), img.VertDPI())
	}
	if img.Width() != 2*docx.Inch || img.Height() != docx.Inch {
		t.Errorf("size = %v x %v, want 2in x 1in", img.Width(), img.Height())
	}
	if d := cmp.Diff(rect.Rect{URx: 144, URy: 72}, img.Extent()); d != "" {
		t.Errorf("extent (-want +got):\n%s", d)
	}
}

func TestScaledDimensions(t *testing.T) {
	img, err := FromBlob(pngWithDensity(600, 150, 11811, 5906))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		w, h         docx.Length
		wantW, wantH docx.Length
	}{
		{0, 0, 2 * docx.Inch, docx.Inch},
		{4 * docx.Inch, 0, 4 * docx.Inch, 2 * docx.Inch},
		{0, docx.Cm, 2 * docx.Cm, docx.Cm},
		{docx.Inch, docx.Inch, docx.Inch, docx.Inch},
		{docx.Length(3), 0, 3, 2},
	}
	for _, c := range cases {
		w, h := img.ScaledDimensions(c.w, c.h)
		if w != c.wantW || h != c.wantH {
			t.Errorf("ScaledDimensions(%d, %d) = %d, %d, want %d, %d",
				c.w, c.h, w, h, c.wantW, c.wantH)
		}
	}
}

func TestFilename(t *testing.T) {
	blob := pngWithDensity(1, 1, 0, 0)

	img, err := FromBlob(blob)
	if err != nil {
		t.Fatal(err)
	}
	if img.Filename() != "image.png" || img.Ext() != "png" {
		t.Errorf("filename = %q, ext = %q", img.Filename(), img.Ext())
	}
	if img.ContentType() != "image/png" {
		t.Errorf("content type = %q", img.ContentType())
	}

	img, err = FromReader(bytes.NewReader(blob), "Logo.PNG")
	if err != nil {
		t.Fatal(err)
	}
	if img.Filename() != "Logo.PNG" || img.Ext() != "PNG" {
		t.Errorf("filename = %q, ext = %q", img.Filename(), img.Ext())
	}

	img, err = FromReader(bytes.NewReader(blob), "logo")
	if err != nil {
		t.Fatal(err)
	}
	if img.Ext() != "png" {
		t.Errorf("ext = %q, want png", img.Ext())
	}
}

func TestFromFile(t *testing.T) {
	blob := pngWithDensity(10, 20, 3780, 3780)
	path := filepath.Join(t.TempDir(), "scan.png")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Filename() != "scan.png" {
		t.Errorf("filename = %q", img.Filename())
	}
	if img.HorzDPI() != 96 {
		t.Errorf("dpi = %d, want 96", img.HorzDPI())
	}
	if !bytes.Equal(img.Blob(), blob) {
		t.Error("blob differs")
	}

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestSHA1(t *testing.T) {
	blob := pngWithDensity(1, 1, 0, 0)
	img, err := FromBlob(blob)
	if err != nil {
		t.Fatal(err)
	}
	sum := sha1.Sum(blob)
	if img.SHA1() != hex.EncodeToString(sum[:]) {
		t.Errorf("SHA1() = %s", img.SHA1())
	}
	if len(img.SHA1()) != 40 {
		t.Errorf("unexpected hash length %d", len(img.SHA1()))
	}
}

func FuzzDecodeHeader(f *testing.F) {
	f.Add(pngWithDensity(3, 4, 100, 100))
	f.Add([]byte("GIF89a\x01\x00\x02\x00"))
	f.Add([]byte("\xff\xd8\xff\xd9"))
	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := DecodeHeader(bytes.NewReader(data))
		if err != nil {
			return
		}
		if h.Format() != Detect(data) {
			t.Errorf("format %v, detected %v", h.Format(), Detect(data))
		}
		if h.HorzDPI() == 0 || h.VertDPI() == 0 {
			t.Errorf("zero dpi: %s", h)
		}
	})
}
