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
	"bytes"
	"fmt"
	"io"
	"strings"
)

// GrepScope limits the scope of the search.
type GrepScope int

// List of available scopes.
const (
	GrepMnemonic GrepScope = iota
	GrepOperand
	GrepAll
)

// Grep searches the disassembly for the specified search string. Matching
// lines are written to output under the header of the block they belong to.
func (dsm *Disassembly) Grep(output io.Writer, scope GrepScope, search string, caseSensitive bool) error {
	if !caseSensitive {
		search = strings.ToUpper(search)
	}

	// whether any block header has been written
	written := false

	for _, blk := range dsm.Blocks {
		blockHeader := false

		for _, e := range blk.Entries {
			// line representation of the entry. printed in case of a match
			line := &bytes.Buffer{}
			if err := dsm.WriteLine(line, WriteAttr{}, e); err != nil {
				return err
			}

			op := e.Operator()
			mnemonic, operand, _ := strings.Cut(op, " ")

			var s string
			switch scope {
			case GrepMnemonic:
				s = mnemonic
			case GrepOperand:
				s = strings.TrimSpace(operand)
			case GrepAll:
				s = line.String()
			}

			if !caseSensitive {
				s = strings.ToUpper(s)
			}

			if !strings.Contains(s, search) {
				continue
			}

			if !blockHeader {
				if written {
					if _, err := io.WriteString(output, "\n"); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(output, "--- %s ---\n", blk); err != nil {
					return err
				}
				blockHeader = true
				written = true
			}

			if _, err := output.Write(line.Bytes()); err != nil {
				return err
			}
		}
	}

	return nil
}
