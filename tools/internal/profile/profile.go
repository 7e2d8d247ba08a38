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

// Package profile adds CPU and memory profiling options to command line
// tools.
package profile

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Options holds the profile file names.  Empty names disable profiling.
type Options struct {
	CPU    string
	Memory string
}

// Flags registers the -cpuprofile and -memprofile options on fs.
func Flags(fs *flag.FlagSet) *Options {
	opt := &Options{}
	fs.StringVar(&opt.CPU, "cpuprofile", "", "write cpu profile to `file`")
	fs.StringVar(&opt.Memory, "memprofile", "", "write memory profile to `file`")
	return opt
}

// Start begins CPU profiling, if requested, and returns a function which
// stops CPU profiling and writes the memory profile.  The caller should
// defer the stop function.
func (opt *Options) Start() (stop func(), err error) {
	var cpuFile *os.File
	if opt.CPU != "" {
		cpuFile, err = os.Create(opt.CPU)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}

	stop = func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if opt.Memory != "" {
			if err := writeHeapProfile(opt.Memory); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
	return stop, nil
}

func writeHeapProfile(fname string) error {
	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer f.Close()

	runtime.GC()
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		return fmt.Errorf("could not lookup memory profile")
	}
	if err := allocs.WriteTo(f, 0); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}
