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

	"github.com/jetsetilly/dolpatch/curated"
)

// Sentinal error patterns.
const (
	EncodingError     = "ppc: encoding error: %s: %v"
	DecodingError     = "ppc: decoding error: %08x: %v"
	UnresolvedAddress = "unresolved address: %v"
	OperandRange      = "%s out of range: %v"
	Displacement      = "branch displacement %s: %v"
)

// the range of branch displacements for I-Form and B-Form instructions
const (
	maxIFormDisplacement = 0x01ffffff
	maxBFormDisplacement = 0x7fff
)

// Encode the instruction as it would be at the address pc. Addresses that
// refer to other instructions or to labels cannot be resolved by this
// function. Use EncodeSymbols() or the assembler package for those.
func Encode(ins Instruction, pc uint32) (uint32, error) {
	return EncodeSymbols(ins, pc, nil)
}

// EncodeSymbols encodes the instruction as it would be at the address pc,
// using syms to resolve symbolic addresses. The syms argument can be nil.
//
// Any operand that does not fit in its field results in an EncodingError.
// Operands are never truncated.
func EncodeSymbols(ins Instruction, pc uint32, syms Symbols) (uint32, error) {
	defn, ok := ins.Definition()
	if !ok {
		return 0, curated.Errorf(EncodingError, ins.Mnemonic, "undefined mnemonic")
	}

	w, err := encode(defn, ins, pc, syms)
	if err != nil {
		return 0, curated.Errorf(EncodingError, defn.Mnemonic, err)
	}

	return w, nil
}

func encode(defn Definition, ins Instruction, pc uint32, syms Symbols) (uint32, error) {
	if err := checkRegisters(ins); err != nil {
		return 0, err
	}

	if ins.Rc && !defn.HasRecord() {
		return 0, fmt.Errorf("instruction has no record form")
	}

	w := uint32(defn.Opcode) << 26

	switch defn.Form {
	case DForm:
		d := uint32(ins.D)
		if defn.Shape == ShapeCmpImm {
			if ins.CRF > 7 {
				return 0, curated.Errorf(OperandRange, "condition register field", ins.CRF)
			}
			d = uint32(ins.CRF) << 2
		}

		imm, err := ins.Imm.field(defn.Imm, pc, syms)
		if err != nil {
			return 0, err
		}

		w |= d<<21 | uint32(ins.A)<<16 | imm

	case IForm:
		disp, err := displacement(ins.Target, pc, syms, maxIFormDisplacement)
		if err != nil {
			return 0, err
		}

		w |= uint32(disp)&0x03fffffc | link(defn)

	case BForm:
		if err := checkCondition(ins); err != nil {
			return 0, err
		}

		disp, err := displacement(ins.Target, pc, syms, maxBFormDisplacement)
		if err != nil {
			return 0, err
		}

		w |= uint32(ins.BO)<<21 | uint32(ins.BI)<<16 | uint32(disp)&0xfffc | link(defn)

	case XLForm:
		if defn.Shape == ShapeBranchReg {
			if err := checkCondition(ins); err != nil {
				return 0, err
			}
			w |= uint32(ins.BO)<<21 | uint32(ins.BI)<<16
		}

		w |= uint32(defn.ExtOpcode)<<1 | link(defn)

	case XForm, XOForm:
		d := uint32(ins.D)
		if defn.Shape == ShapeCmp {
			if ins.CRF > 7 {
				return 0, curated.Errorf(OperandRange, "condition register field", ins.CRF)
			}
			d = uint32(ins.CRF) << 2
		}

		w |= d<<21 | uint32(ins.A)<<16 | uint32(ins.B)<<11 | uint32(defn.ExtOpcode)<<1 | record(ins)

	case XFXForm:
		if ins.SPR > 0x3ff {
			return 0, curated.Errorf(OperandRange, "special purpose register", ins.SPR)
		}

		// the two halves of the SPR number are swapped in the encoding
		spr := (uint32(ins.SPR)&0x1f)<<5 | (uint32(ins.SPR)>>5)&0x1f

		w |= uint32(ins.D)<<21 | spr<<11 | uint32(defn.ExtOpcode)<<1

	case MForm:
		if ins.SH > 31 || ins.MB > 31 || ins.ME > 31 {
			return 0, curated.Errorf(OperandRange, "shift or mask", fmt.Sprintf("%d,%d,%d", ins.SH, ins.MB, ins.ME))
		}

		w |= uint32(ins.D)<<21 | uint32(ins.A)<<16 | uint32(ins.SH)<<11 | uint32(ins.MB)<<6 | uint32(ins.ME)<<1 | record(ins)

	case AForm:
		w |= uint32(ins.D)<<21 | uint32(ins.A)<<16 | uint32(ins.B)<<11 | uint32(ins.C)<<6 | uint32(defn.ExtOpcode)<<1 | record(ins)

	default:
		return 0, fmt.Errorf("unsupported instruction form (%s)", defn.Form)
	}

	return w, nil
}

// displacement returns the distance from the pc to the target. the distance
// must be word aligned and within the range of the field.
func displacement(target Address, pc uint32, syms Symbols, max int64) (int64, error) {
	addr, err := target.Resolve(pc, syms)
	if err != nil {
		return 0, err
	}

	disp := int64(int32(addr - pc))

	if disp&0x03 != 0 {
		return 0, curated.Errorf(Displacement, "not word aligned", signedHex(disp))
	}

	if disp > max || disp < -(max+1) {
		return 0, curated.Errorf(Displacement, "too large", signedHex(disp))
	}

	return disp, nil
}

func checkRegisters(ins Instruction) error {
	for _, r := range [...]Register{ins.D, ins.A, ins.B, ins.C} {
		if r >= numRegisters {
			return curated.Errorf(OperandRange, "register", uint8(r))
		}
	}
	return nil
}

func checkCondition(ins Instruction) error {
	if ins.BO > 31 {
		return curated.Errorf(OperandRange, "branch options", ins.BO)
	}
	if ins.BI > 31 {
		return curated.Errorf(OperandRange, "condition register bit", ins.BI)
	}
	return nil
}

func link(defn Definition) uint32 {
	if defn.Link {
		return 1
	}
	return 0
}

func record(ins Instruction) uint32 {
	if ins.Rc {
		return 1
	}
	return 0
}
