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

// AddressKind distinguishes the different ways an Address can be specified.
type AddressKind int

// List of address kinds.
const (
	// a numeric address
	AbsoluteAddress AddressKind = iota

	// an offset from the address of the instruction using the address
	RelativeAddress

	// the address of the Nth instruction in the sequence being assembled
	InstructionAddress

	// the address of the instruction with the named label in the sequence
	// being assembled
	LabelAddress
)

// Address is a symbolic address. The zero value is the absolute address zero.
type Address struct {
	Kind   AddressKind
	Value  uint32
	Offset int32
	Index  int
	Name   string
}

// Absolute returns an Address for a numeric address.
func Absolute(addr uint32) Address {
	return Address{Kind: AbsoluteAddress, Value: addr}
}

// Relative returns an Address that is offset from the instruction that uses
// it.
func Relative(offset int32) Address {
	return Address{Kind: RelativeAddress, Offset: offset}
}

// InstructionAt returns an Address for the Nth instruction of the sequence
// being assembled. Counting from zero.
func InstructionAt(n int) Address {
	return Address{Kind: InstructionAddress, Index: n}
}

// Label returns an Address for the instruction with the named label.
func Label(name string) Address {
	return Address{Kind: LabelAddress, Name: name}
}

func (a Address) String() string {
	switch a.Kind {
	case AbsoluteAddress:
		return fmt.Sprintf("%#08x", a.Value)
	case RelativeAddress:
		if a.Offset < 0 {
			return fmt.Sprintf("*-%#x", -int64(a.Offset))
		}
		return fmt.Sprintf("*+%#x", a.Offset)
	case InstructionAddress:
		return fmt.Sprintf("<%d>", a.Index)
	case LabelAddress:
		return a.Name
	}
	return "unknown address"
}

// Symbols is used to resolve addresses that refer to other instructions in
// the sequence being assembled.
type Symbols interface {
	InstructionAddress(n int) (uint32, bool)
	LabelAddress(name string) (uint32, bool)
}

// Resolve the address to a numeric address. The pc argument is the address
// of the instruction using the address. The syms argument can be nil in which
// case only absolute and relative addresses can be resolved.
func (a Address) Resolve(pc uint32, syms Symbols) (uint32, error) {
	switch a.Kind {
	case AbsoluteAddress:
		return a.Value, nil
	case RelativeAddress:
		return uint32(int64(pc) + int64(a.Offset)), nil
	case InstructionAddress:
		if syms != nil {
			if addr, ok := syms.InstructionAddress(a.Index); ok {
				return addr, nil
			}
		}
	case LabelAddress:
		if syms != nil {
			if addr, ok := syms.LabelAddress(a.Name); ok {
				return addr, nil
			}
		}
	}
	return 0, curated.Errorf(UnresolvedAddress, a)
}

// ImmediateKind distinguishes literal immediate values from values derived
// from an address.
type ImmediateKind int

// List of immediate kinds.
const (
	Literal ImmediateKind = iota

	// the upper 16 bits of an address
	High

	// the upper 16 bits of an address, adjusted for use with a signed low
	// half. ie. for use with addi or a load/store offset
	HighAdjusted

	// the lower 16 bits of an address
	Low
)

// Immediate is the value of the immediate field of a D-Form instruction.
type Immediate struct {
	Kind  ImmediateKind
	Value int64
	Addr  Address
}

// Imm returns a literal Immediate.
func Imm(v int64) Immediate {
	return Immediate{Kind: Literal, Value: v}
}

// Hi returns an Immediate for the upper 16 bits of an address.
func Hi(addr Address) Immediate {
	return Immediate{Kind: High, Addr: addr}
}

// Ha returns an Immediate for the upper 16 bits of an address, adjusted to
// take account of a sign extended low half.
func Ha(addr Address) Immediate {
	return Immediate{Kind: HighAdjusted, Addr: addr}
}

// Lo returns an Immediate for the lower 16 bits of an address.
func Lo(addr Address) Immediate {
	return Immediate{Kind: Low, Addr: addr}
}

func (imm Immediate) String() string {
	switch imm.Kind {
	case High:
		return fmt.Sprintf("%s@h", imm.Addr)
	case HighAdjusted:
		return fmt.Sprintf("%s@ha", imm.Addr)
	case Low:
		return fmt.Sprintf("%s@l", imm.Addr)
	}
	return signedHex(imm.Value)
}

// field returns the 16 bit value for the immediate field. Literal values are
// checked against the range. Address halves are always in range.
func (imm Immediate) field(rng ImmRange, pc uint32, syms Symbols) (uint32, error) {
	if imm.Kind != Literal {
		addr, err := imm.Addr.Resolve(pc, syms)
		if err != nil {
			return 0, err
		}
		switch imm.Kind {
		case High:
			return addr >> 16, nil
		case HighAdjusted:
			return (addr + 0x8000) >> 16, nil
		default:
			return addr & 0xffff, nil
		}
	}

	v := imm.Value

	var lo, hi int64
	switch rng {
	case Signed:
		lo, hi = -0x8000, 0x7fff
	case Unsigned:
		lo, hi = 0, 0xffff
	case Either:
		lo, hi = -0x8000, 0xffff
	default:
		lo, hi = 0, 0
	}

	if v < lo || v > hi {
		return 0, curated.Errorf(OperandRange, "immediate", signedHex(v))
	}

	return uint32(v) & 0xffff, nil
}

// signedHex formats small values in decimal and larger values in hexadecimal.
func signedHex(v int64) string {
	switch {
	case v > -10 && v < 10:
		return fmt.Sprintf("%d", v)
	case v < 0:
		return fmt.Sprintf("-%#x", -v)
	}
	return fmt.Sprintf("%#x", v)
}
