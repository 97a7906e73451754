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
	"io"
)

// WriteAttr controls what is printed by the Write*() functions.
type WriteAttr struct {
	ByteCode bool
	Patched  bool
}

// Write the entire disassembly to io.Writer.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) error {
	for i := range dsm.Blocks {
		if i > 0 {
			if _, err := io.WriteString(output, "\n"); err != nil {
				return err
			}
		}
		if err := dsm.WriteBlock(output, attr, i); err != nil {
			return err
		}
	}
	return nil
}

// WriteBlock writes the disassembly of the selected block to io.Writer.
func (dsm *Disassembly) WriteBlock(output io.Writer, attr WriteAttr, block int) error {
	if block < 0 || block >= len(dsm.Blocks) {
		return fmt.Errorf("no such block (%d)", block)
	}

	blk := dsm.Blocks[block]

	if _, err := fmt.Fprintf(output, "--- %s ---\n", blk); err != nil {
		return err
	}

	for _, e := range blk.Entries {
		if err := dsm.WriteLine(output, attr, e); err != nil {
			return err
		}
	}

	return nil
}

// WriteLine writes a single entry to io.Writer.
func (dsm *Disassembly) WriteLine(output io.Writer, attr WriteAttr, e Entry) error {
	marker := " "
	if attr.Patched && e.Level == EntryLevelPatched {
		marker = "*"
	}

	if attr.ByteCode {
		_, err := fmt.Fprintf(output, "%s%08x  %s  %s\n", marker, e.Address, e.Bytecode(), e.Operator())
		return err
	}

	_, err := fmt.Fprintf(output, "%s%08x  %s\n", marker, e.Address, e.Operator())
	return err
}
