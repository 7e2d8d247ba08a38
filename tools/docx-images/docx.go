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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/docx/image"
	"seehuhn.de/go/docx/oxml"
)

const (
	mediaDir  = "word/media/"
	stylesXML = "word/styles.xml"
)

// isDocx reports whether fname looks like a WordprocessingML package.
func isDocx(fname string) bool {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".docx", ".docm", ".dotx", ".dotm":
		return true
	}
	return false
}

// listDocx lists the images stored in the media folder of a .docx file,
// and optionally its styles.  Images which cannot be read are reported on
// stderr and skipped.
func listDocx(out *table, fname string) error {
	zr, err := zip.OpenReader(fname)
	if err != nil {
		return err
	}
	defer zr.Close()

	var media []*zip.File
	var styles *zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == stylesXML:
			styles = f
		case strings.HasPrefix(f.Name, mediaDir) && !f.FileInfo().IsDir():
			media = append(media, f)
		}
	}
	slices.SortFunc(media, func(a, b *zip.File) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, f := range media {
		name := fname + ":" + f.Name
		img, err := readMedia(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", name, err)
			continue
		}
		listImage(out, name, img)
	}

	if *stylesArg && styles != nil {
		rc, err := styles.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		s, err := oxml.ParseStyles(rc)
		if err != nil {
			return err
		}
		listStyles(out, fname+":"+stylesXML, s)
	}
	return nil
}

func readMedia(f *zip.File) (*image.Image, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	buf := &bytes.Buffer{}
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return image.FromReader(buf, path.Base(f.Name))
}
