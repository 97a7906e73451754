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

package ppc_test

import (
	"testing"

	"github.com/jetsetilly/dolpatch/ppc"
	"github.com/jetsetilly/dolpatch/test"
)

func TestDisassembly(t *testing.T) {
	for _, d := range []struct {
		word uint32
		pc   uint32
		s    string
	}{
		{word: 0x9421ffcc, s: "stwu r1,-0x34(r1)"},
		{word: 0x7c0802a6, s: "mflr r0"},
		{word: 0x7c0803a6, s: "mtlr r0"},
		{word: 0x7c7f1b78, s: "mr r31,r3"},
		{word: 0x889f0002, s: "lbz r4,2(r31)"},
		{word: 0x2c040000, s: "cmpwi r4,0"},
		{word: 0x40820018, pc: 0x80008038, s: "bne 0x80008050"},
		{word: 0x4e800020, s: "blr"},
		{word: 0x38c00000, s: "li r6,0"},
		{word: 0x3fc08000, s: "lis r30,0x8000"},
		{word: 0x63de807c, s: "ori r30,r30,0x807c"},
		{word: 0x3884ffe0, s: "addi r4,r4,-0x20"},
		{word: 0x7c04f7ac, s: "icbi r4,r30"},
		{word: 0x60000000, s: "nop"},
		{word: 0x7c0004ac, s: "sync"},
		{word: 0x4c00012c, s: "isync"},
		{word: 0x482c7389, pc: 0x80038054, s: "bl 0x802ff3dc"},
		{word: 0xc0020100, s: "lfs f0,0x100(r2)"},
		{word: 0x5463103a, s: "slwi r3,r3,2"},
		{word: 0x7d8903a6, s: "mtctr r12"},
		{word: 0x7f832000, s: "cmpw cr7,r3,r4"},
		{word: 0x4e800421, s: "bctrl"},
		{word: 0x70600001, s: "andi. r0,r3,0x1"},
		{word: 0x7c000775, s: "extsb. r0,r0"},
		{word: 0xec2200f2, s: "fmuls f1,f2,f3"},
	} {
		ins, err := ppc.Decode(d.word, d.pc)
		if test.ExpectSuccess(t, err, d.word) {
			test.ExpectEquality(t, ins.String(), d.s)
		}
	}
}

func TestSymbolicDisassembly(t *testing.T) {
	test.ExpectEquality(t, ppc.Bl(ppc.Label("foo")).String(), "bl foo")
	test.ExpectEquality(t, ppc.Li(ppc.R3, ppc.Lo(ppc.InstructionAt(3))).String(), "li r3,<3>@l")
	test.ExpectEquality(t, ppc.Lis(ppc.R3, ppc.Ha(ppc.Absolute(0x80038020))).String(), "lis r3,0x80038020@ha")
	test.ExpectEquality(t, ppc.Nop().WithLabel("loop").String(), "loop: nop")
	test.ExpectEquality(t, ppc.Bne(ppc.Relative(-0xc)).String(), "bne *-0xc")
}
