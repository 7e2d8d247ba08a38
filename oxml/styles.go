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
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/docx/optional"
)

// Qualified names used in the styles part.
const (
	TagStyles     = "w:styles"
	TagStyle      = "w:style"
	TagName       = "w:name"
	TagBasedOn    = "w:basedOn"
	TagUIPriority = "w:uiPriority"
	TagSemiHidden = "w:semiHidden"
	TagPPr        = "w:pPr"
	TagRPr        = "w:rPr"

	attrVal         = "w:val"
	attrType        = "w:type"
	attrStyleID     = "w:styleId"
	attrDefault     = "w:default"
	attrCustomStyle = "w:customStyle"
)

// styleSeq is the order of the children of a w:style element.
var styleSeq = []string{
	"w:name", "w:aliases", "w:basedOn", "w:next", "w:link",
	"w:autoRedefine", "w:hidden", "w:uiPriority", "w:semiHidden",
	"w:unhideWhenUsed", "w:qFormat", "w:locked", "w:personal",
	"w:personalCompose", "w:personalReply", "w:rsid", "w:pPr", "w:rPr",
	"w:tblPr", "w:trPr", "w:tcPr", "w:tblStylePr",
}

// StyleType is the value of the w:type attribute of a style.
type StyleType string

// The style types defined by WordprocessingML.
const (
	ParagraphStyle StyleType = "paragraph"
	CharacterStyle StyleType = "character"
	TableStyle     StyleType = "table"
	NumberingStyle StyleType = "numbering"
)

// Style is a w:style element, which holds a style definition.
type Style struct {
	*Element
}

// Type returns the style type, or the empty string if no type is given.
func (s *Style) Type() StyleType {
	v, _ := s.Attribute(attrType)
	return StyleType(v)
}

// SetType sets the style type.  An empty value removes the attribute.
func (s *Style) SetType(tp StyleType) {
	s.SetAttribute(attrType, string(tp))
}

// StyleID returns the style identifier, which is used to refer to the
// style from the document body.
func (s *Style) StyleID() string {
	v, _ := s.Attribute(attrStyleID)
	return v
}

// SetStyleID sets the style identifier.
func (s *Style) SetStyleID(id string) {
	s.SetAttribute(attrStyleID, id)
}

// Default reports whether this is the default style for its type.
func (s *Style) Default() bool {
	return onOffAttribute(s.Element, attrDefault).IsTrue()
}

// SetDefault marks the style as default style for its type, or removes
// the mark.
func (s *Style) SetDefault(isDefault bool) {
	setOnOffAttribute(s.Element, attrDefault, isDefault)
}

// CustomStyle reports whether this is a user-defined style.
func (s *Style) CustomStyle() bool {
	return onOffAttribute(s.Element, attrCustomStyle).IsTrue()
}

// SetCustomStyle marks the style as user-defined, or removes the mark.
func (s *Style) SetCustomStyle(custom bool) {
	setOnOffAttribute(s.Element, attrCustomStyle, custom)
}

// Name returns the value of the w:name child.
// The second return value is false if there is no w:name child.
func (s *Style) Name() (string, bool) {
	return s.childVal(TagName)
}

// SetName sets the w:name child.  An empty name removes the child.
func (s *Style) SetName(name string) {
	s.setChildVal(TagName, name)
}

// BasedOn returns the style identifier in the w:basedOn child.
// The second return value is false if there is no w:basedOn child.
func (s *Style) BasedOn() (string, bool) {
	return s.childVal(TagBasedOn)
}

// SetBasedOn sets the w:basedOn child.  An empty id removes the child.
func (s *Style) SetBasedOn(id string) {
	s.setChildVal(TagBasedOn, id)
}

// BaseStyle returns the sibling style this style is based on.
// It returns nil if the style has no base style, if the base style is not
// found, or if the style is not part of a w:styles element.
func (s *Style) BaseStyle() *Style {
	id, ok := s.BasedOn()
	if !ok {
		return nil
	}
	parent := s.Parent()
	if parent == nil || parent.Tag() != TagStyles {
		return nil
	}
	return (&Styles{parent}).ByID(id)
}

// SemiHidden reports whether the style is hidden from the main user
// interface.  A missing w:semiHidden child means false.
func (s *Style) SemiHidden() bool {
	c := s.Child(TagSemiHidden)
	if c == nil {
		return false
	}
	v, ok := c.Attribute(attrVal)
	if !ok {
		return true
	}
	b, _ := parseOnOff(v).Get()
	return b
}

// SetSemiHidden sets or removes the w:semiHidden child.
func (s *Style) SetSemiHidden(hidden bool) {
	s.RemoveChild(TagSemiHidden)
	if hidden {
		s.InsertOrdered(NewElement(TagSemiHidden), styleSeq)
	}
}

// UIPriority returns the sort order of the style in the user interface.
// The result is unset if there is no w:uiPriority child, or if its value
// is not an integer.
func (s *Style) UIPriority() optional.Int {
	var res optional.Int
	v, ok := s.childVal(TagUIPriority)
	if !ok {
		return res
	}
	if k, err := strconv.Atoi(v); err == nil {
		res.Set(k)
	}
	return res
}

// SetUIPriority sets the w:uiPriority child, or removes it if p is unset.
func (s *Style) SetUIPriority(p optional.Int) {
	k, ok := p.Get()
	if !ok {
		s.RemoveChild(TagUIPriority)
		return
	}
	s.setChildVal(TagUIPriority, strconv.Itoa(k))
}

// PPr returns the paragraph properties of the style, or nil.
func (s *Style) PPr() *Element {
	return s.Child(TagPPr)
}

// GetOrAddPPr returns the paragraph properties of the style, adding an
// empty w:pPr child if needed.
func (s *Style) GetOrAddPPr() *Element {
	return s.GetOrAddChild(TagPPr, styleSeq)
}

// RPr returns the run properties of the style, or nil.
func (s *Style) RPr() *Element {
	return s.Child(TagRPr)
}

// GetOrAddRPr returns the run properties of the style, adding an empty
// w:rPr child if needed.
func (s *Style) GetOrAddRPr() *Element {
	return s.GetOrAddChild(TagRPr, styleSeq)
}

// Delete removes the style from its parent element.
func (s *Style) Delete() {
	if p := s.Parent(); p != nil {
		p.Remove(s.Element)
	}
}

func (s *Style) childVal(tag string) (string, bool) {
	c := s.Child(tag)
	if c == nil {
		return "", false
	}
	return c.Attribute(attrVal)
}

// setChildVal replaces the child with the given tag by a new child with
// the given w:val.  An empty value only removes the old child.
func (s *Style) setChildVal(tag, val string) {
	s.RemoveChild(tag)
	if val == "" {
		return
	}
	c := NewElement(tag)
	c.SetAttribute(attrVal, val)
	s.InsertOrdered(c, styleSeq)
}

// Styles is a w:styles element, the root element of the styles part
// (word/styles.xml).
type Styles struct {
	*Element
}

// NewStyles returns an empty w:styles element, with the WordprocessingML
// namespace declared.
func NewStyles() *Styles {
	e := NewElement(TagStyles)
	e.SetAttribute("xmlns:w", NamespaceW)
	return &Styles{e}
}

// ParseStyles reads the styles part of a DOCX package.
func ParseStyles(r io.Reader) (*Styles, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if root.Tag() != TagStyles {
		return nil, fmt.Errorf("unexpected root element <%s>, expected <%s>",
			root.Tag(), TagStyles)
	}
	return &Styles{root}, nil
}

// AddStyleOfType appends a new style with the given name and type.  The
// style identifier is derived from the name using [StyleIDFromName].
// Styles which are not built in are marked as custom styles.
func (s *Styles) AddStyleOfType(name string, tp StyleType, builtin bool) *Style {
	style := &Style{NewElement(TagStyle)}
	s.AppendChild(style.Element)
	style.SetType(tp)
	style.SetCustomStyle(!builtin)
	style.SetStyleID(StyleIDFromName(name))
	style.SetName(name)
	return style
}

// All returns the styles in document order.
func (s *Styles) All() []*Style {
	var res []*Style
	for _, e := range s.Children(TagStyle) {
		res = append(res, &Style{e})
	}
	return res
}

// DefaultFor returns the default style for the given type, or nil if
// there is none.  If several styles are marked as default, the last one
// in document order is used.
func (s *Styles) DefaultFor(tp StyleType) *Style {
	var res *Style
	for _, style := range s.All() {
		if style.Type() == tp && style.Default() {
			res = style
		}
	}
	return res
}

// ByID returns the first style with the given style identifier, or nil.
func (s *Styles) ByID(id string) *Style {
	for _, style := range s.All() {
		if v, ok := style.Attribute(attrStyleID); ok && v == id {
			return style
		}
	}
	return nil
}

// ByName returns the first style with the given name, or nil.
func (s *Styles) ByName(name string) *Style {
	for _, style := range s.All() {
		if v, ok := style.Name(); ok && v == name {
			return style
		}
	}
	return nil
}

// parseOnOff decodes a value of the ST_OnOff simple type.
// Unknown values give an unset result.
func parseOnOff(v string) optional.Bool {
	var res optional.Bool
	switch v {
	case "1", "true", "on":
		res.Set(true)
	case "0", "false", "off":
		res.Set(false)
	}
	return res
}

func onOffAttribute(e *Element, name string) optional.Bool {
	v, ok := e.Attribute(name)
	if !ok {
		return optional.Bool{}
	}
	return parseOnOff(v)
}

// setOnOffAttribute writes "1" for true and removes the attribute for
// false.
func setOnOffAttribute(e *Element, name string, v bool) {
	if v {
		e.SetAttribute(name, "1")
	} else {
		e.SetAttribute(name, "")
	}
}
