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

package disassembly_test

import (
	"testing"

	"github.com/jetsetilly/dolpatch/disassembly"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/ppc"
	"github.com/jetsetilly/dolpatch/test"
)

func testFile(t *testing.T) *dol.File {
	t.Helper()

	data, err := dol.Create([]dol.Section{
		{Kind: dol.Text, Index: 0, Offset: 0x100, Address: 0x80003100, Size: 0x10},
		{Kind: dol.Text, Index: 1, Offset: 0x110, Address: 0x80004000, Size: 0x8},
		{Kind: dol.Data, Index: 0, Offset: 0x118, Address: 0x80400000, Size: 0x8},
	}, 0x80003100)
	test.DemandSuccess(t, err)

	f, err := dol.FromBytes(data)
	test.DemandSuccess(t, err)
	f.SetLogging(logger.Deny)
	f.SetEditable(true)

	err = f.Edit(func(s *dol.Session) error {
		err := s.WriteInstructions(0x80003100, []ppc.Instruction{
			ppc.Li(ppc.R3, ppc.Imm(1)),
			ppc.Blr(),
		})
		if err != nil {
			return err
		}
		err = s.WriteInstructions(0x8000310c, []ppc.Instruction{ppc.Nop()})
		if err != nil {
			return err
		}
		return s.WriteInstructions(0x80004000, []ppc.Instruction{
			ppc.Mflr(ppc.R0),
			ppc.Branch(ppc.Absolute(0x80003100)),
		})
	})
	test.DemandSuccess(t, err)

	return f
}

func TestFromFile(t *testing.T) {
	f := testFile(t)

	dsm, err := disassembly.FromFile(f)
	test.DemandSuccess(t, err)

	// data sections are not disassembled
	test.DemandEquality(t, len(dsm.Blocks), 2)
	test.ExpectEquality(t, len(dsm.Blocks[0].Entries), 4)
	test.ExpectEquality(t, len(dsm.Blocks[1].Entries), 2)

	e, ok := dsm.GetEntryByAddress(0x80003108)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Level, disassembly.EntryLevelUndecodable)

	_, ok = dsm.GetEntryByAddress(0x80003110)
	test.ExpectFailure(t, ok)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, dsm.Write(w, disassembly.WriteAttr{}))
	test.ExpectEquality(t, w.String(), "--- text0 0x80003100-0x80003110 ---\n"+
		" 80003100  li r3,1\n"+
		" 80003104  blr\n"+
		" 80003108  .word 0x00000000\n"+
		" 8000310c  nop\n"+
		"\n"+
		"--- text1 0x80004000-0x80004008 ---\n"+
		" 80004000  mflr r0\n"+
		" 80004004  b 0x80003100\n")
}

func TestFromRange(t *testing.T) {
	f := testFile(t)

	dsm, err := disassembly.FromRange(f, 0x80003100, 0x80003108)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, dsm.Write(w, disassembly.WriteAttr{ByteCode: true}))
	test.ExpectEquality(t, w.String(), "--- text0 0x80003100-0x80003108 ---\n"+
		" 80003100  38 60 00 01  li r3,1\n"+
		" 80003104  4e 80 00 20  blr\n")

	_, err = disassembly.FromRange(f, 0x80003102, 0x80003108)
	test.ExpectFailure(t, err)
	_, err = disassembly.FromRange(f, 0x80003108, 0x80003108)
	test.ExpectFailure(t, err)
	_, err = disassembly.FromRange(f, 0x80003100, 0x80003114)
	test.ExpectFailure(t, err)
	_, err = disassembly.FromRange(f, 0x80005000, 0x80005004)
	test.ExpectFailure(t, err)
}

func TestMarkPatched(t *testing.T) {
	f := testFile(t)

	dsm, err := disassembly.FromRange(f, 0x80003100, 0x80003110)
	test.DemandSuccess(t, err)

	// the undecodable entry is never marked
	dsm.MarkPatched([]dol.Patch{
		{Address: 0x80003106, Bytes: make([]byte, 4)},
	})

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, dsm.Write(w, disassembly.WriteAttr{Patched: true}))
	test.ExpectEquality(t, w.String(), "--- text0 0x80003100-0x80003110 ---\n"+
		" 80003100  li r3,1\n"+
		"*80003104  blr\n"+
		" 80003108  .word 0x00000000\n"+
		" 8000310c  nop\n")
}

func TestGrep(t *testing.T) {
	f := testFile(t)

	dsm, err := disassembly.FromFile(f)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, dsm.Grep(w, disassembly.GrepOperand, "0X80003100", false))
	test.ExpectEquality(t, w.String(), "--- text1 0x80004000-0x80004008 ---\n"+
		" 80004004  b 0x80003100\n")

	w.Clear()
	test.ExpectSuccess(t, dsm.Grep(w, disassembly.GrepMnemonic, "l", true))
	test.ExpectEquality(t, w.String(), "--- text0 0x80003100-0x80003110 ---\n"+
		" 80003100  li r3,1\n"+
		" 80003104  blr\n"+
		"\n"+
		"--- text1 0x80004000-0x80004008 ---\n"+
		" 80004000  mflr r0\n")

	w.Clear()
	test.ExpectSuccess(t, dsm.Grep(w, disassembly.GrepAll, "xyz", false))
	test.ExpectEquality(t, w.String(), "")
}
