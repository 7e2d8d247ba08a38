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
	"errors"
	"io"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"

	"seehuhn.de/go/docx/image/chunk"
	"seehuhn.de/go/docx/image/header"
	"seehuhn.de/go/docx/image/stream"
)

// xmpKeyword is the iTXt keyword used for XMP packets.
const xmpKeyword = "XML:com.adobe.xmp"

// maxInflated limits the size of decompressed ancillary data.
// The largest ICC profiles seen in practice are a few MB.
const maxInflated = 32 << 20

var (
	errNoSeparator        = errors.New("missing NUL separator")
	errUnknownCompression = errors.New("unknown compression method")
)

// readMetadata collects the ancillary information of a PNG file.
// Malformed ancillary chunks are skipped.
func readMetadata(r *stream.Reader, table *chunk.Table) *header.Metadata {
	meta := &header.Metadata{}
	for _, e := range table.Entries() {
		switch e.Tag {
		case TagICCP, TagTEXT, TagZTXT, TagITXT:
		default:
			continue
		}

		p, err := chunk.Payload(r, e)
		if err != nil {
			continue
		}
		data, err := p.Bytes(0, int(p.Size()))
		if err != nil {
			continue
		}

		switch e.Tag {
		case TagICCP:
			if meta.ICC != nil {
				continue
			}
			profile, err := readICCP(data)
			if err == nil {
				meta.ICC = profile
			}
		case TagTEXT:
			if entry, err := readTEXt(data); err == nil {
				meta.Text = append(meta.Text, entry)
			}
		case TagZTXT:
			if entry, err := readZTXt(data); err == nil {
				meta.Text = append(meta.Text, entry)
			}
		case TagITXT:
			entry, err := readITXt(data)
			if err != nil {
				continue
			}
			if entry.Keyword == xmpKeyword {
				if meta.XMP == nil {
					if packet, err := header.DecodeXMP([]byte(entry.Text)); err == nil {
						meta.XMP = packet
					}
				}
				continue
			}
			meta.Text = append(meta.Text, entry)
		}
	}
	return meta
}

// readICCP decodes an iCCP payload: keyword, NUL, compression method,
// zlib-compressed profile.
func readICCP(data []byte) (*header.ICCProfile, error) {
	_, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return nil, errNoSeparator
	}
	if len(rest) < 1 || rest[0] != 0 {
		return nil, errUnknownCompression
	}
	profile, err := inflate(rest[1:])
	if err != nil {
		return nil, err
	}
	return header.DecodeICC(profile)
}

// readTEXt decodes a tEXt payload: Latin-1 keyword, NUL, Latin-1 text.
func readTEXt(data []byte) (header.TextEntry, error) {
	keyword, text, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return header.TextEntry{}, errNoSeparator
	}
	return latin1Entry(keyword, text)
}

// readZTXt decodes a zTXt payload: Latin-1 keyword, NUL, compression method,
// zlib-compressed Latin-1 text.
func readZTXt(data []byte) (header.TextEntry, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return header.TextEntry{}, errNoSeparator
	}
	if len(rest) < 1 || rest[0] != 0 {
		return header.TextEntry{}, errUnknownCompression
	}
	text, err := inflate(rest[1:])
	if err != nil {
		return header.TextEntry{}, err
	}
	return latin1Entry(keyword, text)
}

func latin1Entry(keyword, text []byte) (header.TextEntry, error) {
	dec := charmap.ISO8859_1.NewDecoder()
	k, err := dec.Bytes(keyword)
	if err != nil {
		return header.TextEntry{}, err
	}
	v, err := dec.Bytes(text)
	if err != nil {
		return header.TextEntry{}, err
	}
	return header.TextEntry{
		Keyword: string(k),
		Text:    string(v),
		Lang:    language.Und,
	}, nil
}

// readITXt decodes an iTXt payload: Latin-1 keyword, NUL, compression flag,
// compression method, language tag, NUL, translated keyword, NUL, UTF-8
// text which is zlib-compressed if the flag is set.
func readITXt(data []byte) (header.TextEntry, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok || len(rest) < 2 {
		return header.TextEntry{}, errNoSeparator
	}
	compressed, method := rest[0], rest[1]
	rest = rest[2:]

	langTag, rest, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return header.TextEntry{}, errNoSeparator
	}
	_, text, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return header.TextEntry{}, errNoSeparator
	}

	if compressed != 0 {
		if method != 0 {
			return header.TextEntry{}, errUnknownCompression
		}
		var err error
		text, err = inflate(text)
		if err != nil {
			return header.TextEntry{}, err
		}
	}

	k, err := charmap.ISO8859_1.NewDecoder().Bytes(keyword)
	if err != nil {
		return header.TextEntry{}, err
	}

	lang := language.Und
	if len(langTag) > 0 {
		if tag, err := language.Parse(string(langTag)); err == nil {
			lang = tag
		}
	}

	return header.TextEntry{
		Keyword: string(k),
		Text:    string(text),
		Lang:    lang,
	}, nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxInflated+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxInflated {
		return nil, errors.New("decompressed data too large")
	}
	return out, nil
}
