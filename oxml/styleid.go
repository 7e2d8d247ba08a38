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

import "strings"

// builtinIDs maps the names of built-in styles to their identifiers,
// where these differ from the name with spaces removed.
var builtinIDs = map[string]string{
	"caption":   "Caption",
	"heading 1": "Heading1",
	"heading 2": "Heading2",
	"heading 3": "Heading3",
	"heading 4": "Heading4",
	"heading 5": "Heading5",
	"heading 6": "Heading6",
	"heading 7": "Heading7",
	"heading 8": "Heading8",
	"heading 9": "Heading9",
}

// StyleIDFromName returns the style identifier for a style name.
func StyleIDFromName(name string) string {
	if id, ok := builtinIDs[name]; ok {
		return id
	}
	return strings.ReplaceAll(name, " ", "")
}
