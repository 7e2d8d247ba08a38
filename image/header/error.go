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

package header

import (
	"errors"
	"fmt"
	"strconv"
)

// InvalidImageStreamError indicates that an image could not be parsed,
// because its structure is inconsistent or a mandatory part is missing.
type InvalidImageStreamError struct {
	Format Format
	Pos    int64
	Err    error
}

// Invalid returns an InvalidImageStreamError with a formatted message.
func Invalid(f Format, pos int64, format string, a ...any) error {
	return &InvalidImageStreamError{
		Format: f,
		Pos:    pos,
		Err:    fmt.Errorf(format, a...),
	}
}

// Wrap converts err into an InvalidImageStreamError.
// Errors which already are an InvalidImageStreamError are returned unchanged.
// Wrap(f, pos, nil) returns nil.
func Wrap(f Format, pos int64, err error) error {
	if err == nil {
		return nil
	}
	var invalid *InvalidImageStreamError
	if errors.As(err, &invalid) {
		return err
	}
	return &InvalidImageStreamError{Format: f, Pos: pos, Err: err}
}

func (err *InvalidImageStreamError) Error() string {
	name := "image"
	if err.Format != Unknown {
		name = err.Format.String()
	}
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "invalid " + name + " stream" + middle + tail
}

func (err *InvalidImageStreamError) Unwrap() error {
	return err.Err
}
