// This file is part of Dolpatch.
//
// Dolpatch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dolpatch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dolpatch.  If not, see <https://www.gnu.org/licenses/>.

package dol

// Sentinal error patterns.
const (
	LoadError        = "dol: %v"
	InvalidHeader    = "dol: invalid header: %v"
	InvalidSections  = "dol: invalid sections: %v"
	AddressNotMapped = "dol: address not mapped: %#08x"
	OutOfBounds      = "dol: out of bounds: %d bytes at %#08x extends beyond %s"
	OverlappingPatch = "dol: overlapping patch: %v overlaps %v"
	NotEditable      = "dol: file is not editable"
	EditInProgress   = "dol: edit already in progress"
	NoFreeSpace      = "dol: no free space region"
	InvalidFreeSpace = "dol: invalid free space region: %v"
	FlushError       = "dol: flush: %v"
)
