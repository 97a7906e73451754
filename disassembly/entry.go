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

package disassembly

import (
	"fmt"

	"github.com/jetsetilly/dolpatch/ppc"
)

// EntryLevel describes the level of the Entry.
type EntryLevel int

// List of valid EntryLevel values.
//
// Undecodable entries are words that do not decode to a supported instruction.
// They might be data in the text section or an instruction that dolpatch has
// no use for.
//
// Patched entries are decoded entries that have been written by a patch.
const (
	EntryLevelUndecodable EntryLevel = iota
	EntryLevelDecoded
	EntryLevelPatched
)

// Entry is a single disassembled word.
type Entry struct {
	Level EntryLevel

	Address uint32
	Word    uint32

	// not defined if Level is EntryLevelUndecodable
	Instruction ppc.Instruction
}

// Bytecode returns the word as a string of four hex bytes.
func (e Entry) Bytecode() string {
	return fmt.Sprintf("%02x %02x %02x %02x", e.Word>>24, (e.Word>>16)&0xff, (e.Word>>8)&0xff, e.Word&0xff)
}

// Operator returns the disassembled instruction or a word directive for
// undecodable entries.
func (e Entry) Operator() string {
	if e.Level == EntryLevelUndecodable {
		return fmt.Sprintf(".word 0x%08x", e.Word)
	}
	return e.Instruction.String()
}

func (e Entry) String() string {
	return fmt.Sprintf("%08x: %s", e.Address, e.Operator())
}
