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
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/ppc"
)

// DisasmError is the pattern for all errors from this package.
const DisasmError = "disassembly: %v"

// Block is a contiguous run of disassembled entries.
type Block struct {
	// the section containing the block
	Section dol.Section

	Start   uint32
	Entries []Entry
}

// End returns the address immediately after the last entry.
func (blk Block) End() uint32 {
	return blk.Start + uint32(len(blk.Entries)*4)
}

func (blk Block) String() string {
	return fmt.Sprintf("%s %#08x-%#08x", blk.Section.Name(), blk.Start, blk.End())
}

// Disassembly represents the disassembly of one or more address ranges of a
// DOL file.
type Disassembly struct {
	Blocks []Block
}

// FromFile disassembles every text section of the file.
func FromFile(f *dol.File) (*Disassembly, error) {
	dsm := &Disassembly{}

	for _, sec := range f.Sections() {
		if sec.Kind != dol.Text {
			continue
		}
		blk, err := disassemble(f, sec, sec.Address, sec.End()&^0x03)
		if err != nil {
			return nil, err
		}
		dsm.Blocks = append(dsm.Blocks, blk)
	}

	return dsm, nil
}

// FromRange disassembles the words from start up to but not including end.
// The range must be word aligned and must be inside a single section of any
// kind.
func FromRange(f *dol.File, start uint32, end uint32) (*Disassembly, error) {
	if start%4 != 0 || end%4 != 0 {
		return nil, curated.Errorf(DisasmError, "range must be word aligned")
	}
	if end <= start {
		return nil, curated.Errorf(DisasmError, "range is empty")
	}

	sec, err := f.SectionForAddress(start)
	if err != nil {
		return nil, curated.Errorf(DisasmError, err)
	}
	if uint64(end) > uint64(sec.Address)+uint64(sec.Size) {
		return nil, curated.Errorf(DisasmError, fmt.Sprintf("range extends beyond %s", sec.Name()))
	}

	blk, err := disassemble(f, sec, start, end)
	if err != nil {
		return nil, err
	}

	return &Disassembly{Blocks: []Block{blk}}, nil
}

func disassemble(f *dol.File, sec dol.Section, start uint32, end uint32) (Block, error) {
	blk := Block{
		Section: sec,
		Start:   start,
	}

	if end <= start {
		return blk, nil
	}

	data, err := f.Read(start, int(end-start))
	if err != nil {
		return Block{}, curated.Errorf(DisasmError, err)
	}

	blk.Entries = make([]Entry, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		e := Entry{
			Address: start + uint32(i),
			Word:    binary.BigEndian.Uint32(data[i:]),
		}

		ins, err := ppc.Decode(e.Word, e.Address)
		if err == nil {
			e.Level = EntryLevelDecoded
			e.Instruction = ins
		}

		blk.Entries = append(blk.Entries, e)
	}

	return blk, nil
}

// GetEntryByAddress returns the entry for the address.
func (dsm *Disassembly) GetEntryByAddress(addr uint32) (Entry, bool) {
	for _, blk := range dsm.Blocks {
		if addr >= blk.Start && addr < blk.End() {
			return blk.Entries[(addr-blk.Start)/4], true
		}
	}
	return Entry{}, false
}

// MarkPatched changes the level of every decoded entry that overlaps one of
// the patches to EntryLevelPatched.
func (dsm *Disassembly) MarkPatched(patches []dol.Patch) {
	for _, p := range patches {
		pstart := uint64(p.Address)
		pend := pstart + uint64(len(p.Bytes))

		for b := range dsm.Blocks {
			blk := &dsm.Blocks[b]
			for i := range blk.Entries {
				e := &blk.Entries[i]
				if e.Level != EntryLevelDecoded {
					continue
				}
				if uint64(e.Address) < pend && uint64(e.Address)+4 > pstart {
					e.Level = EntryLevelPatched
				}
			}
		}
	}
}
