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

package optional

// Int represents an optional signed integer.
type Int struct {
	isSet bool
	val   int
}

// NewInt creates a new Int with the given value.
func NewInt(v int) Int {
	var k Int
	k.Set(v)
	return k
}

// Get returns the value and whether it is set.
func (k Int) Get() (int, bool) {
	return k.val, k.isSet
}

// Set sets the value.
func (k *Int) Set(v int) {
	k.isSet = true
	k.val = v
}

// Clear clears the value.
func (k *Int) Clear() {
	k.isSet = false
	k.val = 0
}

// Equal compares two Ints for equality.
func (k Int) Equal(other Int) bool {
	return k.isSet == other.isSet && k.val == other.val
}
