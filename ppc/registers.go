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

// Register is a general purpose or floating point register number. The
// definition of the instruction decides which register file is being used.
type Register uint8

func (r Register) String() string {
	return fmt.Sprintf("r%d", r)
}

// general purpose registers.
const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	R16
	R17
	R18
	R19
	R20
	R21
	R22
	R23
	R24
	R25
	R26
	R27
	R28
	R29
	R30
	R31
)

// floating point registers.
const (
	F0 Register = iota
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24
	F25
	F26
	F27
	F28
	F29
	F30
	F31
)

// register aliases as used by the ABI.
const (
	SP   = R1
	RTOC = R2
	SDA  = R13
)

// the number of registers in each register file.
const numRegisters = 32

// SPR is a special purpose register number.
type SPR uint16

// List of special purpose registers with simplified mnemonics.
const (
	XER SPR = 1
	LR  SPR = 8
	CTR SPR = 9
)

func (s SPR) String() string {
	switch s {
	case XER:
		return "xer"
	case LR:
		return "lr"
	case CTR:
		return "ctr"
	}
	return fmt.Sprintf("%d", uint16(s))
}

// Branch options for the BO field of conditional branches.
const (
	BranchDecNotZero uint8 = 16
	BranchDecZero    uint8 = 18
	BranchIfFalse    uint8 = 4
	BranchIfTrue     uint8 = 12
	BranchAlways     uint8 = 20
)

// Bits within a condition register field. The BI field of a conditional
// branch is 4*crf plus one of these values.
const (
	CRLessThan uint8 = iota
	CRGreaterThan
	CREqual
	CRSummaryOverflow
)
