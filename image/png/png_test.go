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

package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	stdpng "image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/language"
	"seehuhn.de/go/icc"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/optional"
)

// makeChunk returns the encoding of a single PNG chunk, including the CRC.
func makeChunk(tag string, data []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(tag)
	buf.Write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(data)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
	return buf.Bytes()
}

// minimalPNG returns signature + IHDR + extra chunks + IEND.
func minimalPNG(width, height uint32, extra ...[]byte) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], width)
	binary.BigEndian.PutUint32(ihdr[4:], height)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // RGB

	buf := &bytes.Buffer{}
	buf.WriteString(Signature)
	buf.Write(makeChunk(TagIHDR, ihdr))
	for _, c := range extra {
		buf.Write(c)
	}
	buf.Write(makeChunk(TagIEND, nil))
	return buf.Bytes()
}

func physChunk(horz, vert uint32, units byte) []byte {
	data := make([]byte, 9)
	binary.BigEndian.PutUint32(data[0:], horz)
	binary.BigEndian.PutUint32(data[4:], vert)
	data[8] = units
	return makeChunk(TagPHYs, data)
}

// encodeWithChunks encodes img using the standard library and inserts the
// given chunks directly after IHDR.
func encodeWithChunks(t *testing.T, img image.Image, extra ...[]byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := stdpng.Encode(buf, img); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	const afterIHDR = 8 + 8 + 13 + 4
	var res []byte
	res = append(res, data[:afterIHDR]...)
	for _, c := range extra {
		res = append(res, c...)
	}
	res = append(res, data[afterIHDR:]...)
	return res
}

func TestReadIHDR(t *testing.T) {
	p := stream.FromBytes([]byte{0x00, 0x00, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x18}, binary.BigEndian)
	got, err := readIHDR(p)
	if err != nil {
		t.Fatal(err)
	}
	want := &Attributes{
		PxWidth:  optional.NewUInt(42),
		PxHeight: optional.NewUInt(24),
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("IHDR fields differ (-want +got):\n%s", d)
	}
}

func TestReadPHYs(t *testing.T) {
	p := stream.FromBytes([]byte{0x00, 0x00, 0x17, 0x12, 0x00, 0x00, 0x1E, 0xC2, 0x01}, binary.BigEndian)
	got, err := readPHYs(p)
	if err != nil {
		t.Fatal(err)
	}
	want := &Attributes{
		HorzPxPerUnit:  optional.NewUInt(5906),
		VertPxPerUnit:  optional.NewUInt(7874),
		UnitsSpecifier: optional.NewUInt(1),
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("pHYs fields differ (-want +got):\n%s", d)
	}

	// the unit byte is outside a truncated payload
	short := stream.FromBytes([]byte{0, 0, 0x17, 0x12, 0, 0, 0x1E, 0xC2}, binary.BigEndian)
	if _, err := readPHYs(short); err == nil {
		t.Error("truncated pHYs payload accepted")
	}
}

func TestParseAttributes(t *testing.T) {
	data := minimalPNG(42, 24, physChunk(5906, 7874, 1))
	attrs, err := ParseAttributes(stream.FromBytes(data, binary.BigEndian))
	if err != nil {
		t.Fatal(err)
	}
	want := &Attributes{
		PxWidth:        optional.NewUInt(42),
		PxHeight:       optional.NewUInt(24),
		HorzPxPerUnit:  optional.NewUInt(5906),
		VertPxPerUnit:  optional.NewUInt(7874),
		UnitsSpecifier: optional.NewUInt(1),
	}
	if d := cmp.Diff(want, attrs); d != "" {
		t.Errorf("attributes differ (-want +got):\n%s", d)
	}
}

func TestMissingPHYsLeavesDensityUnset(t *testing.T) {
	data := minimalPNG(3, 4)
	attrs, err := ParseAttributes(stream.FromBytes(data, binary.BigEndian))
	if err != nil {
		t.Fatal(err)
	}
	if attrs.HorzPxPerUnit.IsSet() || attrs.VertPxPerUnit.IsSet() || attrs.UnitsSpecifier.IsSet() {
		t.Errorf("density attributes should be unset: %+v", attrs)
	}
}

func TestMissingIHDR(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString(Signature)
	buf.Write(physChunk(1, 1, 1))
	buf.Write(makeChunk(TagIEND, nil))

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	var invalid *header.InvalidImageStreamError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidImageStreamError", err)
	}
}

func TestBadSignature(t *testing.T) {
	data := minimalPNG(1, 1)
	data[1] = 'X'
	_, err := Decode(bytes.NewReader(data))
	var invalid *header.InvalidImageStreamError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidImageStreamError", err)
	}
}

func TestShortIHDR(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString(Signature)
	buf.Write(makeChunk(TagIHDR, []byte{0, 0, 0, 1}))
	buf.Write(makeChunk(TagIEND, nil))

	_, err := Decode(bytes.NewReader(buf.Bytes()))
	var invalid *header.InvalidImageStreamError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidImageStreamError", err)
	}
	var oob *stream.OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Errorf("cause should be an OutOfBoundsError, got %v", err)
	}
}

func TestDPI(t *testing.T) {
	type testCase struct {
		extra    [][]byte
		horz     uint
		vert     uint
		comments string
	}
	cases := []testCase{
		{nil, 72, 72, "no pHYs chunk"},
		{[][]byte{physChunk(5906, 7874, 1)}, 150, 200, "pixels per meter"},
		{[][]byte{physChunk(11811, 11811, 1)}, 300, 300, "300 dpi"},
		{[][]byte{physChunk(2835, 2835, 1)}, 72, 72, "72 dpi"},
		{[][]byte{physChunk(5906, 7874, 0)}, 72, 72, "unitless"},
		{[][]byte{physChunk(666, 666, 0)}, 72, 72, "unitless"},
		{[][]byte{physChunk(0, 0, 1)}, 72, 72, "zero density"},
		{[][]byte{physChunk(5906, 5906, 1), physChunk(11811, 11811, 1)}, 150, 150, "first pHYs wins"},
	}
	for _, c := range cases {
		h, err := Decode(bytes.NewReader(minimalPNG(42, 24, c.extra...)))
		if err != nil {
			t.Errorf("%s: %v", c.comments, err)
			continue
		}
		if h.HorzDPI() != c.horz || h.VertDPI() != c.vert {
			t.Errorf("%s: got %d/%d dpi, want %d/%d", c.comments, h.HorzDPI(), h.VertDPI(), c.horz, c.vert)
		}
	}
}

func TestNewHeaderFallback(t *testing.T) {
	attrs := &Attributes{
		PxWidth:        optional.NewUInt(10),
		PxHeight:       optional.NewUInt(20),
		UnitsSpecifier: optional.NewUInt(1),
	}
	h := NewHeader(attrs, nil)
	if h.HorzDPI() != 72 || h.VertDPI() != 72 {
		t.Errorf("got %d/%d dpi, want 72/72", h.HorzDPI(), h.VertDPI())
	}
	if h.ContentType() != "image/png" {
		t.Errorf("content type %q", h.ContentType())
	}
}

func TestMinimalStream(t *testing.T) {
	h, err := Decode(bytes.NewReader(minimalPNG(42, 24)))
	if err != nil {
		t.Fatal(err)
	}
	got := [4]uint{h.PxWidth(), h.PxHeight(), h.HorzDPI(), h.VertDPI()}
	if got != [4]uint{42, 24, 72, 72} {
		t.Errorf("got %v, want [42 24 72 72]", got)
	}
}

func TestStandardLibraryImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 123, 45))
	data := encodeWithChunks(t, img, physChunk(11811, 5906, 1))

	h, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := stdpng.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if int(h.PxWidth()) != cfg.Width || int(h.PxHeight()) != cfg.Height {
		t.Errorf("got %dx%d, want %dx%d", h.PxWidth(), h.PxHeight(), cfg.Width, cfg.Height)
	}
	if h.HorzDPI() != 300 || h.VertDPI() != 150 {
		t.Errorf("got %d/%d dpi, want 300/150", h.HorzDPI(), h.VertDPI())
	}
}

func TestChunkOffsets(t *testing.T) {
	data := minimalPNG(1, 1, physChunk(1, 1, 1), makeChunk(TagTEXT, []byte("a\x00b")))
	table, err := Chunks(stream.FromBytes(data, binary.BigEndian))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int64{
		TagIHDR: 16,
		TagPHYs: 41,
		TagTEXT: 62,
		TagIEND: 62 + 3 + 4 + 8,
	}
	if d := cmp.Diff(want, table.Offsets()); d != "" {
		t.Errorf("offsets differ (-want +got):\n%s", d)
	}
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestMetadata(t *testing.T) {
	iccp := append([]byte("sRGB\x00\x00"), deflate(t, icc.SRGBv2Profile)...)

	packet := xmp.NewPacket()
	dc := &xmp.DublinCore{}
	dc.Title.Set(language.Und, "Chart")
	if err := packet.Set(dc); err != nil {
		t.Fatal(err)
	}
	xmpBuf := &bytes.Buffer{}
	if err := packet.Write(xmpBuf, nil); err != nil {
		t.Fatal(err)
	}
	xmpChunk := append([]byte(xmpKeyword+"\x00\x00\x00\x00\x00"), xmpBuf.Bytes()...)

	iTXt := append([]byte("Description\x00\x01\x00de\x00Beschreibung\x00"), deflate(t, []byte("Grüße"))...)
	zTXt := append([]byte("Comment\x00\x00"), deflate(t, []byte("caf\xe9"))...)

	data := minimalPNG(8, 8,
		makeChunk(TagICCP, iccp),
		makeChunk(TagTEXT, []byte("Title\x00Gr\xfc\xdfe")),
		makeChunk(TagITXT, xmpChunk),
		makeChunk(TagITXT, iTXt),
		makeChunk(TagZTXT, zTXt),
		makeChunk(TagTEXT, []byte("no separator")),
	)
	h, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if p := h.ICC(); p == nil || p.ColorSpace != header.RGBColorSpace {
		t.Errorf("ICC profile not decoded: %+v", p)
	}

	if h.XMP() == nil {
		t.Fatal("XMP packet not found")
	}
	var gotDC, wantDC xmp.DublinCore
	h.XMP().Get(&gotDC)
	packet.Get(&wantDC)
	if d := cmp.Diff(wantDC, gotDC); d != "" {
		t.Errorf("XMP differs (-want +got):\n%s", d)
	}

	want := []header.TextEntry{
		{Keyword: "Title", Text: "Grüße", Lang: language.Und},
		{Keyword: "Description", Text: "Grüße", Lang: language.German},
		{Keyword: "Comment", Text: "café", Lang: language.Und},
	}
	tagEqual := cmp.Comparer(func(a, b language.Tag) bool { return a == b })
	if d := cmp.Diff(want, h.Text(), tagEqual); d != "" {
		t.Errorf("text entries differ (-want +got):\n%s", d)
	}
}

func TestBrokenAncillaryChunkIsIgnored(t *testing.T) {
	data := minimalPNG(5, 6,
		makeChunk(TagICCP, []byte("x\x00\x00not zlib data")),
		makeChunk(TagZTXT, []byte("k\x00\x07")),
	)
	h, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if h.ICC() != nil || len(h.Text()) != 0 {
		t.Error("broken chunks should be skipped")
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(minimalPNG(42, 24))
	f.Add(minimalPNG(1, 1, physChunk(5906, 7874, 1)))
	f.Fuzz(func(t *testing.T, data []byte) {
		h1, err := Decode(bytes.NewReader(data))
		if err != nil {
			var invalid *header.InvalidImageStreamError
			if !errors.As(err, &invalid) {
				t.Errorf("unexpected error type %T: %v", err, err)
			}
			return
		}
		h2, err := Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		if h1.String() != h2.String() {
			t.Errorf("parsing is not repeatable: %s != %s", h1, h2)
		}
	})
}
