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

// Package oxml provides a typed view of the XML elements of a DOCX package.
//
// Elements and attributes are addressed by their qualified names, for
// example "w:style" or "w:val".  Namespace prefixes are kept exactly as
// they appear in the input, so that a document can be written back with
// its original namespace declarations.  The package assumes the
// conventional "w" prefix for the WordprocessingML namespace.
package oxml

// NamespaceW is the WordprocessingML main namespace, conventionally bound
// to the prefix "w".
const NamespaceW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Attr is an XML attribute, with a qualified name.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of an XML tree.
//
// Only elements and character data are represented.  Character data is
// kept for elements without child elements; whitespace between child
// elements is dropped.
type Element struct {
	tag      string
	attrs    []Attr
	children []*Element
	text     string
	parent   *Element
}

// NewElement returns a new element with the given qualified tag and no
// attributes or children.
func NewElement(tag string) *Element {
	return &Element{tag: tag}
}

// Tag returns the qualified tag of the element, for example "w:style".
func (e *Element) Tag() string {
	return e.tag
}

// Parent returns the parent element, or nil for the root of a tree.
func (e *Element) Parent() *Element {
	return e.parent
}

// Text returns the character data of the element.
func (e *Element) Text() string {
	return e.text
}

// SetText sets the character data of the element.
func (e *Element) SetText(text string) {
	e.text = text
}

// Child returns the first child with the given tag, or nil if there is
// none.
func (e *Element) Child(tag string) *Element {
	for _, c := range e.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// Children returns the children with the given tag, in document order.
// If tag is empty, all children are returned.
func (e *Element) Children(tag string) []*Element {
	var res []*Element
	for _, c := range e.children {
		if tag == "" || c.tag == tag {
			res = append(res, c)
		}
	}
	return res
}

// AppendChild adds child as the last child of e.
// If child already has a parent, it is first removed from there.
func (e *Element) AppendChild(child *Element) {
	child.detach()
	e.insertAt(len(e.children), child)
}

// InsertOrdered inserts child, keeping the children of e in the order
// given by seq.  The child is placed before the first existing child whose
// tag comes after the tag of child in seq.  If there is no such child, or
// if the tag of child does not occur in seq, child is appended.
func (e *Element) InsertOrdered(child *Element, seq []string) {
	child.detach()

	successors := make(map[string]bool)
	found := false
	for _, tag := range seq {
		if found {
			successors[tag] = true
		} else if tag == child.tag {
			found = true
		}
	}

	pos := len(e.children)
	for i, c := range e.children {
		if successors[c.tag] {
			pos = i
			break
		}
	}
	e.insertAt(pos, child)
}

func (e *Element) detach() {
	if e.parent != nil {
		e.parent.Remove(e)
	}
}

func (e *Element) insertAt(pos int, child *Element) {
	e.children = append(e.children, nil)
	copy(e.children[pos+1:], e.children[pos:])
	e.children[pos] = child
	child.parent = e
}

// GetOrAddChild returns the first child with the given tag.  If there is
// no such child, a new, empty child is inserted using [Element.InsertOrdered]
// and returned.  A nil seq appends the new child.
func (e *Element) GetOrAddChild(tag string, seq []string) *Element {
	if c := e.Child(tag); c != nil {
		return c
	}
	c := NewElement(tag)
	e.InsertOrdered(c, seq)
	return c
}

// RemoveChild removes all children with the given tag.
func (e *Element) RemoveChild(tag string) {
	kept := e.children[:0]
	for _, c := range e.children {
		if c.tag == tag {
			c.parent = nil
			continue
		}
		kept = append(kept, c)
	}
	clear(e.children[len(kept):])
	e.children = kept
}

// Remove removes child from the children of e.
// It reports whether child was found.
func (e *Element) Remove(child *Element) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Attribute returns the value of the attribute with the given qualified
// name.  The second return value reports whether the attribute is present.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets the value of an attribute.
// An empty value removes the attribute.
func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.attrs {
		if a.Name != name {
			continue
		}
		if value == "" {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
		} else {
			e.attrs[i].Value = value
		}
		return
	}
	if value != "" {
		e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	}
}

// Attrs returns a copy of the attributes of e, in document order.
func (e *Element) Attrs() []Attr {
	return append([]Attr(nil), e.attrs...)
}
