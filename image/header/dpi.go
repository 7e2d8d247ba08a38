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

import "math"

const (
	inchesPerMeter     = 0.0254
	centimetersPerInch = 2.54
)

// DPIFromPixelsPerMeter converts a density in pixels per meter to dots per
// inch.  Densities which round to zero give the fallback value.
func DPIFromPixelsPerMeter(pxPerMeter uint, fallback uint) uint {
	return DPIFromInches(float64(pxPerMeter)*inchesPerMeter, fallback)
}

// DPIFromPixelsPerCentimeter converts a density in pixels per centimeter to
// dots per inch.  Densities which round to zero give the fallback value.
func DPIFromPixelsPerCentimeter(pxPerCm float64, fallback uint) uint {
	return DPIFromInches(pxPerCm*centimetersPerInch, fallback)
}

// DPIFromInches rounds a density in pixels per inch to an integer.
// Densities which round to zero give the fallback value.
func DPIFromInches(pxPerInch float64, fallback uint) uint {
	dpi := roundDPI(pxPerInch)
	if dpi == 0 {
		return fallback
	}
	return dpi
}

func roundDPI(x float64) uint {
	if !(x > 0) || math.IsInf(x, 0) {
		return 0
	}
	r := math.Round(x)
	if r > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint(r)
}
