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

package ppc

import (
	"fmt"
	"strings"
)

func fpr(r Register) string {
	return fmt.Sprintf("f%d", r)
}

func crPrefix(crf uint8) string {
	if crf == 0 {
		return ""
	}
	return fmt.Sprintf("cr%d,", crf)
}

// the condition names for the BI field when the BO field is BranchIfTrue. the
// names for BranchIfFalse are the logical opposites
var conditionTrue = [...]string{"lt", "gt", "eq", "so"}
var conditionFalse = [...]string{"ge", "le", "ne", "ns"}

// condition returns the simplified mnemonic suffix for a conditional branch.
// returns false if there is no simplified mnemonic.
func condition(bo, bi uint8) (string, bool) {
	switch bo {
	case BranchIfTrue:
		return conditionTrue[bi%4], true
	case BranchIfFalse:
		return conditionFalse[bi%4], true
	}
	return "", false
}

// String returns the disassembly of the instruction. Simplified mnemonics are
// used where possible.
func (ins Instruction) String() string {
	defn, ok := ins.Definition()
	if !ok {
		return "undefined instruction"
	}

	mnemonic := defn.Mnemonic
	if ins.Rc {
		mnemonic = fmt.Sprintf("%s.", mnemonic)
	}

	s := ins.operands(defn, mnemonic)
	if ins.Label != "" {
		s = fmt.Sprintf("%s: %s", ins.Label, s)
	}

	return s
}

func (ins Instruction) operands(defn Definition, mnemonic string) string {
	switch defn.Shape {
	case ShapeNone:
		return mnemonic

	case ShapeDAImm:
		if ins.A == R0 {
			switch ins.Mnemonic {
			case ADDI:
				return fmt.Sprintf("li %s,%s", ins.D, ins.Imm)
			case ADDIS:
				return fmt.Sprintf("lis %s,%s", ins.D, ins.Imm)
			}
		}
		return fmt.Sprintf("%s %s,%s,%s", mnemonic, ins.D, ins.A, ins.Imm)

	case ShapeADImm:
		if ins.Mnemonic == ORI && ins.D == R0 && ins.A == R0 && ins.Imm.Kind == Literal && ins.Imm.Value == 0 {
			return "nop"
		}
		imm := ins.Imm.String()
		if ins.Imm.Kind == Literal {
			imm = fmt.Sprintf("%#x", ins.Imm.Value)
		}
		return fmt.Sprintf("%s %s,%s,%s", mnemonic, ins.A, ins.D, imm)

	case ShapeCmpImm:
		m := "cmpwi"
		if ins.Mnemonic == CMPLI {
			m = "cmplwi"
		}
		return fmt.Sprintf("%s %s%s,%s", m, crPrefix(ins.CRF), ins.A, ins.Imm)

	case ShapeMem:
		return fmt.Sprintf("%s %s,%s(%s)", mnemonic, ins.D, ins.Imm, ins.A)

	case ShapeFloatMem:
		return fmt.Sprintf("%s %s,%s(%s)", mnemonic, fpr(ins.D), ins.Imm, ins.A)

	case ShapeBranch:
		return fmt.Sprintf("%s %s", mnemonic, ins.Target)

	case ShapeBranchCond:
		if c, ok := condition(ins.BO, ins.BI); ok {
			return fmt.Sprintf("b%s %s%s", c, crPrefix(ins.BI/4), ins.Target)
		}
		switch ins.BO {
		case BranchDecNotZero:
			return fmt.Sprintf("bdnz %s", ins.Target)
		case BranchDecZero:
			return fmt.Sprintf("bdz %s", ins.Target)
		case BranchAlways:
			return fmt.Sprintf("b %s", ins.Target)
		}
		return fmt.Sprintf("%s %d,%d,%s", mnemonic, ins.BO, ins.BI, ins.Target)

	case ShapeBranchReg:
		reg := "lr"
		if ins.Mnemonic == BCCTR || ins.Mnemonic == BCCTRL {
			reg = "ctr"
		}
		suffix := ""
		if defn.Link {
			suffix = "l"
		}
		if ins.BO == BranchAlways {
			return fmt.Sprintf("b%s%s", reg, suffix)
		}
		if c, ok := condition(ins.BO, ins.BI); ok {
			s := fmt.Sprintf("b%s%s%s", c, reg, suffix)
			if ins.BI/4 != 0 {
				s = fmt.Sprintf("%s cr%d", s, ins.BI/4)
			}
			return s
		}
		return fmt.Sprintf("%s %d,%d", mnemonic, ins.BO, ins.BI)

	case ShapeCmp:
		m := "cmpw"
		if ins.Mnemonic == CMPL {
			m = "cmplw"
		}
		return fmt.Sprintf("%s %s%s,%s", m, crPrefix(ins.CRF), ins.A, ins.B)

	case ShapeDAB:
		return fmt.Sprintf("%s %s,%s,%s", mnemonic, ins.D, ins.A, ins.B)

	case ShapeADB:
		if ins.D == ins.B {
			switch ins.Mnemonic {
			case OR:
				return fmt.Sprintf("%s %s,%s", strings.Replace(mnemonic, "or", "mr", 1), ins.A, ins.D)
			case NOR:
				return fmt.Sprintf("%s %s,%s", strings.Replace(mnemonic, "nor", "not", 1), ins.A, ins.D)
			}
		}
		return fmt.Sprintf("%s %s,%s,%s", mnemonic, ins.A, ins.D, ins.B)

	case ShapeAD:
		return fmt.Sprintf("%s %s,%s", mnemonic, ins.A, ins.D)

	case ShapeDA:
		return fmt.Sprintf("%s %s,%s", mnemonic, ins.D, ins.A)

	case ShapeAB:
		return fmt.Sprintf("%s %s,%s", mnemonic, ins.A, ins.B)

	case ShapeMoveFromSPR:
		switch ins.SPR {
		case LR, CTR, XER:
			return fmt.Sprintf("mf%s %s", ins.SPR, ins.D)
		}
		return fmt.Sprintf("%s %s,%s", mnemonic, ins.D, ins.SPR)

	case ShapeMoveToSPR:
		switch ins.SPR {
		case LR, CTR, XER:
			return fmt.Sprintf("mt%s %s", ins.SPR, ins.D)
		}
		return fmt.Sprintf("%s %s,%s", mnemonic, ins.SPR, ins.D)

	case ShapeRotate:
		if !ins.Rc {
			switch {
			case ins.MB == 0 && ins.ME == 31-ins.SH:
				return fmt.Sprintf("slwi %s,%s,%d", ins.A, ins.D, ins.SH)
			case ins.SH != 0 && ins.ME == 31 && ins.MB == 32-ins.SH:
				return fmt.Sprintf("srwi %s,%s,%d", ins.A, ins.D, ins.MB)
			case ins.SH == 0 && ins.ME == 31:
				return fmt.Sprintf("clrlwi %s,%s,%d", ins.A, ins.D, ins.MB)
			}
		}
		return fmt.Sprintf("%s %s,%s,%d,%d,%d", mnemonic, ins.A, ins.D, ins.SH, ins.MB, ins.ME)

	case ShapeFloatDAB:
		return fmt.Sprintf("%s %s,%s,%s", mnemonic, fpr(ins.D), fpr(ins.A), fpr(ins.B))

	case ShapeFloatDAC:
		return fmt.Sprintf("%s %s,%s,%s", mnemonic, fpr(ins.D), fpr(ins.A), fpr(ins.C))

	case ShapeFloatDB:
		return fmt.Sprintf("%s %s,%s", mnemonic, fpr(ins.D), fpr(ins.B))
	}

	return fmt.Sprintf("%s (unknown operands)", mnemonic)
}
