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

// Package chunk indexes container formats made of length-prefixed,
// type-tagged chunks, like PNG and RIFF.
package chunk

import (
	"fmt"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// TagSize is the length of a chunk type tag in bytes.
const TagSize = 4

// lengthSize is the length of the chunk length field in bytes.
const lengthSize = 4

// Layout describes how the chunks of a container format are arranged.
// Chunk lengths are decoded using the byte order of the stream.
type Layout struct {
	// Format is used in error messages.
	Format header.Format

	// Start is the offset of the first chunk header, i.e. the length of
	// the file signature.
	Start int64

	// TagFirst is set if the type tag precedes the length field (RIFF).
	// Otherwise the length comes first (PNG).
	TagFirst bool

	// Align is the alignment of chunk payloads.  Payloads of odd length
	// are followed by a pad byte if Align is 2.  Zero means no padding.
	Align int64

	// Trailer is the number of bytes following each payload, e.g. 4 for
	// the CRC of a PNG chunk.
	Trailer int64

	// Terminal, if non-empty, is the tag of the last chunk in the stream.
	// Scanning stops after this chunk.
	Terminal string
}

// Entry describes a single chunk.
type Entry struct {
	Tag string

	// Offset is the position of the first payload byte.
	Offset int64

	// Length is the declared payload length.
	Length int64
}

// Table maps chunk type tags to the first chunk with that tag.
type Table struct {
	first map[string]Entry
	all   []Entry
}

// Scan reads the chunk headers of r and returns the chunk table.
//
// Scanning starts at layout.Start and stops after the terminal chunk, or when
// the end of the stream is reached exactly at a chunk boundary.  A chunk
// header or payload which extends beyond the end of the stream gives an
// [header.InvalidImageStreamError].
func Scan(r *stream.Reader, layout *Layout) (*Table, error) {
	t := &Table{
		first: make(map[string]Entry),
	}

	pos := layout.Start
	headerSize := int64(lengthSize + TagSize)
	tagPos, lengthPos := int64(lengthSize), int64(0)
	if layout.TagFirst {
		tagPos, lengthPos = 0, TagSize
	}

	for pos != r.Size() {
		if !r.InBounds(pos, headerSize) {
			return nil, header.Invalid(layout.Format, pos, "truncated chunk header")
		}
		length, err := r.Uint32(pos + lengthPos)
		if err != nil {
			return nil, header.Wrap(layout.Format, pos, err)
		}
		tag, err := r.String(pos+tagPos, TagSize, nil)
		if err != nil {
			return nil, header.Wrap(layout.Format, pos, err)
		}

		payload := pos + headerSize
		next := payload + int64(length)
		if layout.Align > 1 {
			if k := int64(length) % layout.Align; k != 0 {
				next += layout.Align - k
			}
		}
		next += layout.Trailer

		// Padding after the last chunk is sometimes omitted.
		end := next
		if layout.Align > 1 && next > r.Size() && payload+int64(length)+layout.Trailer == r.Size() {
			end = r.Size()
		}
		if end > r.Size() {
			return nil, header.Invalid(layout.Format, pos,
				"chunk %q of length %d extends beyond end of stream", tag, length)
		}

		e := Entry{Tag: tag, Offset: payload, Length: int64(length)}
		if _, seen := t.first[tag]; !seen {
			t.first[tag] = e
		}
		t.all = append(t.all, e)

		if layout.Terminal != "" && tag == layout.Terminal {
			break
		}
		pos = end
	}

	return t, nil
}

// Has reports whether the table contains chunks with all given tags.
func (t *Table) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, ok := t.first[tag]; !ok {
			return false
		}
	}
	return true
}

// Find returns the first chunk with the given tag.
func (t *Table) Find(tag string) (Entry, bool) {
	e, ok := t.first[tag]
	return e, ok
}

// Offsets returns a map from chunk tags to the payload offset of the first
// chunk with that tag.
func (t *Table) Offsets() map[string]int64 {
	res := make(map[string]int64, len(t.first))
	for tag, e := range t.first {
		res[tag] = e.Offset
	}
	return res
}

// Tags returns the distinct chunk tags in the table, in sorted order.
func (t *Table) Tags() []string {
	tags := make([]string, 0, len(t.first))
	for tag := range t.first {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Entries returns all chunks, including repeated tags, in file order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.all)
}

// All returns all chunks with the given tag, in file order.
func (t *Table) All(tag string) []Entry {
	var res []Entry
	for _, e := range t.all {
		if e.Tag == tag {
			res = append(res, e)
		}
	}
	return res
}

// Payload returns a reader for the payload of e.
func Payload(r *stream.Reader, e Entry) (*stream.Reader, error) {
	return r.Section(e.Offset, e.Length)
}

func (e Entry) String() string {
	return fmt.Sprintf("%q at %d (%d bytes)", e.Tag, e.Offset, e.Length)
}
