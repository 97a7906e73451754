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

import "fmt"

// Form is the layout of the fields in the instruction word.
type Form int

// List of supported instruction forms.
const (
	DForm Form = iota
	IForm
	BForm
	XLForm
	XForm
	XOForm
	XFXForm
	MForm
	AForm
)

func (f Form) String() string {
	switch f {
	case DForm:
		return "D"
	case IForm:
		return "I"
	case BForm:
		return "B"
	case XLForm:
		return "XL"
	case XForm:
		return "X"
	case XOForm:
		return "XO"
	case XFXForm:
		return "XFX"
	case MForm:
		return "M"
	case AForm:
		return "A"
	}
	return "unknown form"
}

// Shape describes the order and type of the operands as they appear in
// assembly language. Instructions of the same form can have different shapes.
type Shape int

// List of operand shapes.
const (
	ShapeNone       Shape = iota // sync
	ShapeDAImm                   // addi rD,rA,SIMM
	ShapeADImm                   // ori rA,rS,UIMM
	ShapeCmpImm                  // cmpwi crfD,rA,SIMM
	ShapeMem                     // lwz rD,d(rA)
	ShapeFloatMem                // lfs frD,d(rA)
	ShapeBranch                  // b target
	ShapeBranchCond              // bc BO,BI,target
	ShapeBranchReg               // bclr BO,BI
	ShapeCmp                     // cmpw crfD,rA,rB
	ShapeDAB                     // add rD,rA,rB
	ShapeADB                     // or rA,rS,rB
	ShapeAD                      // extsb rA,rS
	ShapeDA                      // neg rD,rA
	ShapeAB                      // icbi rA,rB
	ShapeMoveFromSPR             // mfspr rD,SPR
	ShapeMoveToSPR               // mtspr SPR,rS
	ShapeRotate                  // rlwinm rA,rS,SH,MB,ME
	ShapeFloatDAB                // fadds frD,frA,frB
	ShapeFloatDAC                // fmuls frD,frA,frC
	ShapeFloatDB                 // fmr frD,frB
)

// ImmRange is the range of literal values accepted by the immediate field of
// a D-Form instruction.
type ImmRange int

// List of immediate ranges.
const (
	NoImmediate ImmRange = iota

	// -0x8000 to 0x7fff
	Signed

	// 0x0000 to 0xffff
	Unsigned

	// either a signed or an unsigned value. used by addis, where a literal
	// is often the high half of an address
	Either
)

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Arithmetic EffectCategory = iota
	Logical
	Compare
	Load
	Store
	Flow
	Subroutine
	Cache
	Synchronise
	SpecialRegister
	Float
)

// Definition defines each instruction in the supported subset. One per
// Mnemonic.
type Definition struct {
	Mnemonic  string
	Form      Form
	Opcode    uint8
	ExtOpcode uint16

	// the value of the LK bit for branch instructions. the branch and the
	// branch-and-link instructions are separate definitions
	Link bool

	Shape  Shape
	Imm    ImmRange
	Effect EffectCategory
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undefined instruction"
	}
	return fmt.Sprintf("%s [form=%s op=%d xo=%d link=%t]", defn.Mnemonic, defn.Form, defn.Opcode, defn.ExtOpcode, defn.Link)
}

// IsBranch returns true if instruction has a branch target.
func (defn Definition) IsBranch() bool {
	return defn.Shape == ShapeBranch || defn.Shape == ShapeBranchCond
}

// HasRecord returns true if the instruction has an Rc bit.
func (defn Definition) HasRecord() bool {
	switch defn.Form {
	case XOForm, MForm, AForm:
		return true
	case XForm:
		switch defn.Shape {
		case ShapeADB, ShapeAD, ShapeFloatDB:
			return true
		}
	}
	return false
}

// Mnemonic identifies the instruction. The set of mnemonics is closed.
type Mnemonic int

// List of supported instructions. The order of the list is not significant.
const (
	ADDI Mnemonic = iota
	ADDIS
	ADDIC
	MULLI
	CMPI
	CMPLI
	ORI
	ORIS
	ANDI
	XORI
	LWZ
	LWZU
	LBZ
	LHZ
	LHA
	STW
	STWU
	STB
	STH
	LMW
	STMW
	LFS
	LFD
	STFS
	STFD
	B
	BL
	BC
	BCLR
	BCLRL
	BCCTR
	BCCTRL
	ISYNC
	CMP
	CMPL
	AND
	OR
	XOR
	NOR
	SLW
	SRW
	EXTSB
	EXTSH
	LWZX
	STWX
	LBZX
	STBX
	DCBF
	DCBST
	ICBI
	SYNC
	ADD
	SUBF
	MULLW
	DIVW
	NEG
	MFSPR
	MTSPR
	RLWINM
	FADDS
	FSUBS
	FMULS
	FDIVS
	FMR

	numMnemonics
)

func (m Mnemonic) String() string {
	if m < 0 || m >= numMnemonics {
		return fmt.Sprintf("mnemonic(%d)", int(m))
	}
	return Definitions[m].Mnemonic
}

// Definitions of every supported instruction, indexed by Mnemonic.
var Definitions = [numMnemonics]Definition{
	ADDI:  {Mnemonic: "addi", Form: DForm, Opcode: 14, Shape: ShapeDAImm, Imm: Signed, Effect: Arithmetic},
	ADDIS: {Mnemonic: "addis", Form: DForm, Opcode: 15, Shape: ShapeDAImm, Imm: Either, Effect: Arithmetic},
	ADDIC: {Mnemonic: "addic", Form: DForm, Opcode: 12, Shape: ShapeDAImm, Imm: Signed, Effect: Arithmetic},
	MULLI: {Mnemonic: "mulli", Form: DForm, Opcode: 7, Shape: ShapeDAImm, Imm: Signed, Effect: Arithmetic},
	CMPI:  {Mnemonic: "cmpi", Form: DForm, Opcode: 11, Shape: ShapeCmpImm, Imm: Signed, Effect: Compare},
	CMPLI: {Mnemonic: "cmpli", Form: DForm, Opcode: 10, Shape: ShapeCmpImm, Imm: Unsigned, Effect: Compare},
	ORI:   {Mnemonic: "ori", Form: DForm, Opcode: 24, Shape: ShapeADImm, Imm: Unsigned, Effect: Logical},
	ORIS:  {Mnemonic: "oris", Form: DForm, Opcode: 25, Shape: ShapeADImm, Imm: Unsigned, Effect: Logical},
	ANDI:  {Mnemonic: "andi.", Form: DForm, Opcode: 28, Shape: ShapeADImm, Imm: Unsigned, Effect: Logical},
	XORI:  {Mnemonic: "xori", Form: DForm, Opcode: 26, Shape: ShapeADImm, Imm: Unsigned, Effect: Logical},
	LWZ:   {Mnemonic: "lwz", Form: DForm, Opcode: 32, Shape: ShapeMem, Imm: Signed, Effect: Load},
	LWZU:  {Mnemonic: "lwzu", Form: DForm, Opcode: 33, Shape: ShapeMem, Imm: Signed, Effect: Load},
	LBZ:   {Mnemonic: "lbz", Form: DForm, Opcode: 34, Shape: ShapeMem, Imm: Signed, Effect: Load},
	LHZ:   {Mnemonic: "lhz", Form: DForm, Opcode: 40, Shape: ShapeMem, Imm: Signed, Effect: Load},
	LHA:   {Mnemonic: "lha", Form: DForm, Opcode: 42, Shape: ShapeMem, Imm: Signed, Effect: Load},
	STW:   {Mnemonic: "stw", Form: DForm, Opcode: 36, Shape: ShapeMem, Imm: Signed, Effect: Store},
	STWU:  {Mnemonic: "stwu", Form: DForm, Opcode: 37, Shape: ShapeMem, Imm: Signed, Effect: Store},
	STB:   {Mnemonic: "stb", Form: DForm, Opcode: 38, Shape: ShapeMem, Imm: Signed, Effect: Store},
	STH:   {Mnemonic: "sth", Form: DForm, Opcode: 44, Shape: ShapeMem, Imm: Signed, Effect: Store},
	LMW:   {Mnemonic: "lmw", Form: DForm, Opcode: 46, Shape: ShapeMem, Imm: Signed, Effect: Load},
	STMW:  {Mnemonic: "stmw", Form: DForm, Opcode: 47, Shape: ShapeMem, Imm: Signed, Effect: Store},
	LFS:   {Mnemonic: "lfs", Form: DForm, Opcode: 48, Shape: ShapeFloatMem, Imm: Signed, Effect: Load},
	LFD:   {Mnemonic: "lfd", Form: DForm, Opcode: 50, Shape: ShapeFloatMem, Imm: Signed, Effect: Load},
	STFS:  {Mnemonic: "stfs", Form: DForm, Opcode: 52, Shape: ShapeFloatMem, Imm: Signed, Effect: Store},
	STFD:  {Mnemonic: "stfd", Form: DForm, Opcode: 54, Shape: ShapeFloatMem, Imm: Signed, Effect: Store},

	B:  {Mnemonic: "b", Form: IForm, Opcode: 18, Shape: ShapeBranch, Effect: Flow},
	BL: {Mnemonic: "bl", Form: IForm, Opcode: 18, Link: true, Shape: ShapeBranch, Effect: Subroutine},
	BC: {Mnemonic: "bc", Form: BForm, Opcode: 16, Shape: ShapeBranchCond, Effect: Flow},

	BCLR:   {Mnemonic: "bclr", Form: XLForm, Opcode: 19, ExtOpcode: 16, Shape: ShapeBranchReg, Effect: Flow},
	BCLRL:  {Mnemonic: "bclrl", Form: XLForm, Opcode: 19, ExtOpcode: 16, Link: true, Shape: ShapeBranchReg, Effect: Subroutine},
	BCCTR:  {Mnemonic: "bcctr", Form: XLForm, Opcode: 19, ExtOpcode: 528, Shape: ShapeBranchReg, Effect: Flow},
	BCCTRL: {Mnemonic: "bcctrl", Form: XLForm, Opcode: 19, ExtOpcode: 528, Link: true, Shape: ShapeBranchReg, Effect: Subroutine},
	ISYNC:  {Mnemonic: "isync", Form: XLForm, Opcode: 19, ExtOpcode: 150, Shape: ShapeNone, Effect: Synchronise},

	CMP:   {Mnemonic: "cmp", Form: XForm, Opcode: 31, ExtOpcode: 0, Shape: ShapeCmp, Effect: Compare},
	CMPL:  {Mnemonic: "cmpl", Form: XForm, Opcode: 31, ExtOpcode: 32, Shape: ShapeCmp, Effect: Compare},
	AND:   {Mnemonic: "and", Form: XForm, Opcode: 31, ExtOpcode: 28, Shape: ShapeADB, Effect: Logical},
	OR:    {Mnemonic: "or", Form: XForm, Opcode: 31, ExtOpcode: 444, Shape: ShapeADB, Effect: Logical},
	XOR:   {Mnemonic: "xor", Form: XForm, Opcode: 31, ExtOpcode: 316, Shape: ShapeADB, Effect: Logical},
	NOR:   {Mnemonic: "nor", Form: XForm, Opcode: 31, ExtOpcode: 124, Shape: ShapeADB, Effect: Logical},
	SLW:   {Mnemonic: "slw", Form: XForm, Opcode: 31, ExtOpcode: 24, Shape: ShapeADB, Effect: Logical},
	SRW:   {Mnemonic: "srw", Form: XForm, Opcode: 31, ExtOpcode: 536, Shape: ShapeADB, Effect: Logical},
	EXTSB: {Mnemonic: "extsb", Form: XForm, Opcode: 31, ExtOpcode: 954, Shape: ShapeAD, Effect: Arithmetic},
	EXTSH: {Mnemonic: "extsh", Form: XForm, Opcode: 31, ExtOpcode: 922, Shape: ShapeAD, Effect: Arithmetic},
	LWZX:  {Mnemonic: "lwzx", Form: XForm, Opcode: 31, ExtOpcode: 23, Shape: ShapeDAB, Effect: Load},
	STWX:  {Mnemonic: "stwx", Form: XForm, Opcode: 31, ExtOpcode: 151, Shape: ShapeDAB, Effect: Store},
	LBZX:  {Mnemonic: "lbzx", Form: XForm, Opcode: 31, ExtOpcode: 87, Shape: ShapeDAB, Effect: Load},
	STBX:  {Mnemonic: "stbx", Form: XForm, Opcode: 31, ExtOpcode: 215, Shape: ShapeDAB, Effect: Store},
	DCBF:  {Mnemonic: "dcbf", Form: XForm, Opcode: 31, ExtOpcode: 86, Shape: ShapeAB, Effect: Cache},
	DCBST: {Mnemonic: "dcbst", Form: XForm, Opcode: 31, ExtOpcode: 54, Shape: ShapeAB, Effect: Cache},
	ICBI:  {Mnemonic: "icbi", Form: XForm, Opcode: 31, ExtOpcode: 982, Shape: ShapeAB, Effect: Cache},
	SYNC:  {Mnemonic: "sync", Form: XForm, Opcode: 31, ExtOpcode: 598, Shape: ShapeNone, Effect: Synchronise},

	ADD:   {Mnemonic: "add", Form: XOForm, Opcode: 31, ExtOpcode: 266, Shape: ShapeDAB, Effect: Arithmetic},
	SUBF:  {Mnemonic: "subf", Form: XOForm, Opcode: 31, ExtOpcode: 40, Shape: ShapeDAB, Effect: Arithmetic},
	MULLW: {Mnemonic: "mullw", Form: XOForm, Opcode: 31, ExtOpcode: 235, Shape: ShapeDAB, Effect: Arithmetic},
	DIVW:  {Mnemonic: "divw", Form: XOForm, Opcode: 31, ExtOpcode: 491, Shape: ShapeDAB, Effect: Arithmetic},
	NEG:   {Mnemonic: "neg", Form: XOForm, Opcode: 31, ExtOpcode: 104, Shape: ShapeDA, Effect: Arithmetic},

	MFSPR: {Mnemonic: "mfspr", Form: XFXForm, Opcode: 31, ExtOpcode: 339, Shape: ShapeMoveFromSPR, Effect: SpecialRegister},
	MTSPR: {Mnemonic: "mtspr", Form: XFXForm, Opcode: 31, ExtOpcode: 467, Shape: ShapeMoveToSPR, Effect: SpecialRegister},

	RLWINM: {Mnemonic: "rlwinm", Form: MForm, Opcode: 21, Shape: ShapeRotate, Effect: Logical},

	FADDS: {Mnemonic: "fadds", Form: AForm, Opcode: 59, ExtOpcode: 21, Shape: ShapeFloatDAB, Effect: Float},
	FSUBS: {Mnemonic: "fsubs", Form: AForm, Opcode: 59, ExtOpcode: 20, Shape: ShapeFloatDAB, Effect: Float},
	FMULS: {Mnemonic: "fmuls", Form: AForm, Opcode: 59, ExtOpcode: 25, Shape: ShapeFloatDAC, Effect: Float},
	FDIVS: {Mnemonic: "fdivs", Form: AForm, Opcode: 59, ExtOpcode: 18, Shape: ShapeFloatDAB, Effect: Float},
	FMR:   {Mnemonic: "fmr", Form: XForm, Opcode: 63, ExtOpcode: 72, Shape: ShapeFloatDB, Effect: Float},
}
