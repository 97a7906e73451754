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

// Package dol reads and patches DOL files, the executable format used by the
// GameCube and Wii.
//
// A DOL file starts with a 256 byte header describing up to seven text
// sections and eleven data sections. Each section has a file offset, a load
// address and a size. Sections with a size of zero are unused.
//
// The File type gives read access to the file by load address. All changes
// to the file are made through an editing session:
//
//	err := f.Edit(func(s *dol.Session) error {
//		return s.WritePatch(dol.Patch{Address: 0x80038020, Bytes: b})
//	})
//
// The session writes to a copy of the file's data. If the function returns
// nil then the copy replaces the file's data and is written to disk. If the
// function returns an error then the copy is discarded and neither the file
// nor the data on disk are changed. Only one session can be open at a time
// for any File.
//
// The header is never rewritten and the length of the file never changes.
package dol
