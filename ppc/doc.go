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

// Package ppc represents the subset of the 32 bit PowerPC instruction set
// (as implemented by the Gekko and Broadway processors) needed to patch DOL
// executables.
//
// An Instruction is a plain value: a Mnemonic and the operands for that
// mnemonic. The operands are named by the bit position they occupy in the
// encoded word rather than by their role in the instruction. So for the
// store instruction "stw r0,0x38(r1)" the source register r0 is in the D
// field and the base register r1 is in the A field.
//
// The constructor functions (Li(), Stw(), Bl(), etc.) should be used in
// preference to filling the Instruction fields directly.
//
//	seq := []ppc.Instruction{
//		ppc.Li(ppc.R4, ppc.Imm(0x100)),
//		ppc.Icbi(ppc.R4, ppc.R30).WithLabel("flush"),
//		ppc.Addi(ppc.R4, ppc.R4, ppc.Imm(-0x20)),
//		ppc.Bne(ppc.Label("flush")),
//	}
//
// Branch targets and the high/low halves of immediates can refer to other
// instructions symbolically. Encode() only resolves absolute and relative
// addresses. The assembler package resolves references to instructions and
// labels before calling EncodeSymbols().
//
// Decode() is the reverse of Encode(). Any word that can be decoded will
// encode back to the same word. Words that are outside the supported subset,
// or which have reserved bits set, are rejected.
//
// The String() function of the Instruction type produces a disassembly, using
// the simplified mnemonics (li, mr, blr, bne, etc.) where possible.
package ppc
