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

// Package docx provides support for working with WordprocessingML (DOCX)
// documents.
//
// This package holds the length type used throughout the module.  The
// functionality is found in the sub-packages:
//
//   - [seehuhn.de/go/docx/image] detects the format of embedded images and
//     reads their pixel size and resolution, without decoding pixel data.
//   - [seehuhn.de/go/docx/oxml] provides a typed view of the XML elements
//     of the styles part of a document.
//
// The size of an image is found as follows:
//
//	img, err := image.FromFile("chart.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(img.PxWidth(), img.PxHeight(), img.HorzDPI())
//	fmt.Println(img.Width().Inches(), img.Height().Inches())
package docx
