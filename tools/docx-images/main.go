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
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/docx/tools/internal/buildinfo"
	"seehuhn.de/go/docx/tools/internal/profile"
)

var (
	chunksArg = flag.Bool("chunks", false, "list the chunks, segments or IFD entries of each image")
	stylesArg = flag.Bool("styles", false, "list the styles defined in .docx files")
	tsvArg    = flag.Bool("tsv", false, "write tab-separated values, even on a terminal")
	profOpt   = profile.Flags(flag.CommandLine)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "docx-images — show size and resolution of images\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("docx-images"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  docx-images [options] <file>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  file   image files, or .docx files whose media are listed\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docx-images chart.png photo.jpg\n")
		fmt.Fprintf(os.Stderr, "  docx-images -styles report.docx\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	stop, err := profOpt.Start()
	if err != nil {
		return err
	}
	defer stop()

	tsv := *tsvArg || !term.IsTerminal(int(os.Stdout.Fd()))
	out := newTable(os.Stdout, tsv)
	out.row("FILE", "TYPE", "PIXELS", "DPI", "INCHES", "META", "SHA1")

	for _, fname := range flag.Args() {
		var err error
		if isDocx(fname) {
			err = listDocx(out, fname)
		} else {
			err = listFile(out, fname)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", fname, err)
		}
	}
	return out.flush()
}
