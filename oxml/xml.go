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

package oxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Declaration is the XML declaration written by [WriteDocument].
const Declaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

var errNoRoot = errors.New("no root element")

// Parse reads an XML document and returns its root element.
// Comments, processing instructions and the XML declaration are dropped.
func Parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader

	var root *Element
	var stack []*Element
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(qualified(t.Name))
			for _, a := range t.Attr {
				el.attrs = append(el.attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					line, _ := d.InputPos()
					return nil, fmt.Errorf("line %d: more than one root element", line)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.insertAt(len(parent.children), el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			tag := qualified(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].tag != tag {
				line, _ := d.InputPos()
				return nil, fmt.Errorf("line %d: unexpected end tag </%s>", line, tag)
			}
			el := stack[len(stack)-1]
			if len(el.children) > 0 && strings.TrimSpace(el.text) == "" {
				el.text = ""
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errNoRoot
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>: %w",
			stack[len(stack)-1].tag, io.ErrUnexpectedEOF)
	}
	return root, nil
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// charsetReader converts documents in legacy encodings to UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// WriteTo writes the XML encoding of e and its descendants to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	e.write(buf)
	return buf.WriteTo(w)
}

// WriteDocument writes an XML declaration followed by root.
func WriteDocument(w io.Writer, root *Element) error {
	_, err := io.WriteString(w, Declaration+"\n")
	if err != nil {
		return err
	}
	_, err = root.WriteTo(w)
	return err
}

func (e *Element) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.tag)
	for _, a := range e.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		xml.EscapeText(buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	if len(e.children) == 0 && e.text == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	xml.EscapeText(buf, []byte(e.text))
	for _, c := range e.children {
		c.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(e.tag)
	buf.WriteByte('>')
}

// String returns the XML encoding of e.
func (e *Element) String() string {
	buf := &bytes.Buffer{}
	e.write(buf)
	return buf.String()
}
