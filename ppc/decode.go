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

// the key used to find the definition for an instruction word
type decodeKey struct {
	opcode uint8
	ext    uint16
	link   bool
}

var decodeTable map[decodeKey]Mnemonic

func init() {
	decodeTable = make(map[decodeKey]Mnemonic)
	for m := Mnemonic(0); m < numMnemonics; m++ {
		defn := Definitions[m]
		k := decodeKey{opcode: defn.Opcode, ext: defn.ExtOpcode, link: defn.Link}

		// some mnemonics share an encoding with another. the first in the
		// list of definitions is used
		if _, ok := decodeTable[k]; !ok {
			decodeTable[k] = m
		}
	}
}

// keyForWord returns the decode key for the word. The key is formed
// differently depending on the primary opcode.
func keyForWord(word uint32) decodeKey {
	k := decodeKey{opcode: uint8(word >> 26)}

	switch k.opcode {
	case 16, 18:
		// AA bit. absolute branches are not supported so the resulting key
		// will not be found
		k.ext = uint16(word>>1) & 0x01
		k.link = word&0x01 == 0x01
	case 19:
		k.ext = uint16(word>>1) & 0x3ff
		k.link = word&0x01 == 0x01
	case 31, 63:
		// the OE bit of XO-Form instructions is included in the ten bit
		// extended opcode. instructions with OE set will not be found
		k.ext = uint16(word>>1) & 0x3ff
	case 59:
		k.ext = uint16(word>>1) & 0x1f
	}

	return k
}

// Decode the instruction word as it would be at the address pc. Branch
// targets are decoded to absolute addresses.
//
// Words outside the supported subset are rejected with a DecodingError, as
// are words with reserved bits set. The instruction returned by Decode() will
// always encode back to the original word.
func Decode(word uint32, pc uint32) (Instruction, error) {
	m, ok := decodeTable[keyForWord(word)]
	if !ok {
		return Instruction{}, curated.Errorf(DecodingError, word, "unsupported instruction")
	}

	defn := Definitions[m]
	ins := Instruction{Mnemonic: m}

	d := Register(word>>21) & 0x1f
	a := Register(word>>16) & 0x1f
	b := Register(word>>11) & 0x1f
	c := Register(word>>6) & 0x1f

	switch defn.Form {
	case DForm:
		ins.D = d
		ins.A = a
		if defn.Shape == ShapeCmpImm {
			ins.D = 0
			ins.CRF = uint8(d >> 2)
		}

		imm := int64(word & 0xffff)
		if defn.Imm == Signed {
			imm = int64(int16(word))
		}
		ins.Imm = Imm(imm)

	case IForm:
		// sign extend the 26 bit displacement
		disp := int64(int32(word<<6) >> 6)
		disp &^= 0x03
		ins.Target = Absolute(uint32(int64(pc) + disp))

	case BForm:
		ins.BO = uint8(d)
		ins.BI = uint8(a)
		disp := int64(int16(word & 0xfffc))
		ins.Target = Absolute(uint32(int64(pc) + disp))

	case XLForm:
		if defn.Shape == ShapeBranchReg {
			ins.BO = uint8(d)
			ins.BI = uint8(a)
		}

	case XForm, XOForm:
		ins.D = d
		ins.A = a
		ins.B = b
		if defn.Shape == ShapeCmp {
			ins.D = 0
			ins.CRF = uint8(d >> 2)
		}
		ins.Rc = word&0x01 == 0x01

	case XFXForm:
		ins.D = d
		spr := (word >> 11) & 0x3ff
		ins.SPR = SPR((spr&0x1f)<<5 | (spr>>5)&0x1f)

	case MForm:
		ins.D = d
		ins.A = a
		ins.SH = uint8(b)
		ins.MB = uint8(c)
		ins.ME = uint8(word>>1) & 0x1f
		ins.Rc = word&0x01 == 0x01

	case AForm:
		ins.D = d
		ins.A = a
		ins.B = b
		ins.C = c
		ins.Rc = word&0x01 == 0x01

	default:
		return Instruction{}, curated.Errorf(DecodingError, word, fmt.Sprintf("unsupported instruction form (%s)", defn.Form))
	}

	// reserved bits and fields that are not part of the instruction's operands
	// will not survive the re-encoding
	v, err := Encode(ins, pc)
	if err != nil {
		return Instruction{}, curated.Errorf(DecodingError, word, err)
	}
	if v != word {
		return Instruction{}, curated.Errorf(DecodingError, word, "reserved bits are set")
	}

	return ins, nil
}
