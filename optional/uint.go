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

// UInt represents an optional unsigned integer.
type UInt struct {
	isSet bool
	val   uint
}

// NewUInt creates a new UInt with the given value.
func NewUInt(v uint) UInt {
	var k UInt
	k.Set(v)
	return k
}

// Get returns the value and whether it is set.
func (k UInt) Get() (uint, bool) {
	return k.val, k.isSet
}

// IsSet reports whether a value is present.
func (k UInt) IsSet() bool {
	return k.isSet
}

// Set sets the value.
func (k *UInt) Set(v uint) {
	k.isSet = true
	k.val = v
}

// Merge copies other into k, unless k is already set.
// The return value reports whether k was changed.
func (k *UInt) Merge(other UInt) bool {
	if k.isSet || !other.isSet {
		return false
	}
	*k = other
	return true
}

// Clear clears the value.
func (k *UInt) Clear() {
	k.isSet = false
	k.val = 0
}

// Equal compares two UInts for equality.
func (k UInt) Equal(other UInt) bool {
	return k.isSet == other.isSet && k.val == other.val
}
