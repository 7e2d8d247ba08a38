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

package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"seehuhn.de/go/docx/image"
	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/jpeg"
	"seehuhn.de/go/docx/image/png"
	"seehuhn.de/go/docx/image/stream"
	"seehuhn.de/go/docx/image/tiff"
	"seehuhn.de/go/docx/image/webp"
	"seehuhn.de/go/docx/oxml"
)

// table writes rows of tab-separated cells, aligned into columns unless
// plain tab-separated output is requested.
type table struct {
	w  io.Writer
	tw *tabwriter.Writer
}

func newTable(w io.Writer, tsv bool) *table {
	if tsv {
		return &table{w: w}
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	return &table{w: tw, tw: tw}
}

func (t *table) row(cells ...string) {
	fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

func (t *table) flush() error {
	if t.tw == nil {
		return nil
	}
	return t.tw.Flush()
}

func listFile(out *table, fname string) error {
	img, err := image.FromFile(fname)
	if err != nil {
		return err
	}
	listImage(out, fname, img)
	return nil
}

func listImage(out *table, name string, img *image.Image) {
	w, h := img.Width(), img.Height()
	out.row(
		name,
		img.Header().Format().String(),
		fmt.Sprintf("%dx%d", img.PxWidth(), img.PxHeight()),
		fmt.Sprintf("%dx%d", img.HorzDPI(), img.VertDPI()),
		fmt.Sprintf("%.2fx%.2f", w.Inches(), h.Inches()),
		metaSummary(img.Header()),
		img.SHA1()[:12],
	)
	if *chunksArg {
		if err := listStructure(out, img); err != nil {
			out.row("", "error: "+err.Error())
		}
	}
}

func metaSummary(h *header.Header) string {
	var parts []string
	if p := h.ICC(); p != nil {
		parts = append(parts, "icc:"+p.ColorSpace.String())
	}
	if h.XMP() != nil {
		parts = append(parts, "xmp")
	}
	if n := len(h.Text()); n > 0 {
		parts = append(parts, fmt.Sprintf("text:%d", n))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// listStructure shows the container structure of an image, one row per
// chunk, marker segment or IFD entry.
func listStructure(out *table, img *image.Image) error {
	blob := img.Blob()
	switch img.Header().Format() {
	case header.PNG:
		table, err := png.Chunks(stream.FromBytes(blob, binary.BigEndian))
		if err != nil {
			return err
		}
		for _, e := range table.Entries() {
			out.row("", e.Tag, fmt.Sprintf("@%d", e.Offset), fmt.Sprintf("%d bytes", e.Length))
		}
	case header.WebP:
		table, err := webp.Chunks(stream.FromBytes(blob, binary.LittleEndian))
		if err != nil {
			return err
		}
		for _, e := range table.Entries() {
			out.row("", e.Tag, fmt.Sprintf("@%d", e.Offset), fmt.Sprintf("%d bytes", e.Length))
		}
	case header.JPEG:
		segs, err := jpeg.Segments(stream.FromBytes(blob, binary.BigEndian))
		if err != nil {
			return err
		}
		for _, s := range segs {
			out.row("", fmt.Sprintf("FF%02X", s.Code), fmt.Sprintf("@%d", s.Offset), fmt.Sprintf("%d bytes", s.Length))
		}
	case header.TIFF:
		dir, err := tiff.ReadDirectory(stream.FromBytes(blob, binary.BigEndian))
		if err != nil {
			return err
		}
		for _, e := range dir.Entries() {
			out.row("", fmt.Sprintf("tag %d", e.Tag), fmt.Sprintf("type %d", e.Type), fmt.Sprintf("%d values", e.Count))
		}
	}
	return nil
}

func listStyles(out *table, name string, styles *oxml.Styles) {
	out.row(name, "STYLES")
	for _, s := range styles.All() {
		styleName, _ := s.Name()
		var flags []string
		if s.Default() {
			flags = append(flags, "default")
		}
		if s.CustomStyle() {
			flags = append(flags, "custom")
		}
		if s.SemiHidden() {
			flags = append(flags, "hidden")
		}
		if base, ok := s.BasedOn(); ok {
			flags = append(flags, "based on "+base)
		}
		out.row("", s.StyleID(), string(s.Type()), styleName, strings.Join(flags, ","))
	}
}
