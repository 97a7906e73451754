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

// Package disassembly coordinates the disassembly of the text sections of a
// DOL file.
//
// For quick disassemblies of a whole file the FromFile() function can be
// used. FromRange() disassembles a single address range, which is useful for
// checking the result of a patch. Entries that were written by a patch can be
// marked with MarkPatched() and are then flagged in the output of Write().
//
// Every word is treated as an instruction. Words that are not supported by the
// ppc package are kept in the disassembly as undecodable entries.
package disassembly
