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

// Package assembler turns a sequence of ppc.Instruction values into the bytes
// that will be written to a DOL file.
//
// The address of each instruction is the load address plus four times the
// index of the instruction in the sequence. Branch targets and address halves
// that refer to other instructions in the sequence (ppc.InstructionAt() and
// ppc.Label()) are resolved against these addresses.
//
// Assembly is a pure function. There is no state kept between calls.
package assembler

import (
	"encoding/binary"

	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/ppc"
)

// Sentinal error patterns.
const (
	AssemblyError  = "assembler: %v"
	InstructionErr = "instruction %d (%s): %v"
	DuplicateLabel = "duplicate label: %s"
	Misaligned     = "load address is not word aligned: %#08x"
)

// WordSize is the number of bytes in every instruction.
const WordSize = 4

// symbols implements the ppc.Symbols interface for a sequence of instructions.
type symbols struct {
	load   uint32
	count  int
	labels map[string]int
}

// InstructionAddress implements the ppc.Symbols interface. The index equal to
// the length of the sequence is the address immediately after the sequence.
func (sym symbols) InstructionAddress(n int) (uint32, bool) {
	if n < 0 || n > sym.count {
		return 0, false
	}
	return sym.load + uint32(n*WordSize), true
}

// LabelAddress implements the ppc.Symbols interface.
func (sym symbols) LabelAddress(name string) (uint32, bool) {
	n, ok := sym.labels[name]
	if !ok {
		return 0, false
	}
	return sym.InstructionAddress(n)
}

func newSymbols(load uint32, instructions []ppc.Instruction) (symbols, error) {
	sym := symbols{
		load:   load,
		count:  len(instructions),
		labels: make(map[string]int),
	}

	for i, ins := range instructions {
		if ins.Label == "" {
			continue
		}
		if _, ok := sym.labels[ins.Label]; ok {
			return symbols{}, curated.Errorf(DuplicateLabel, ins.Label)
		}
		sym.labels[ins.Label] = i
	}

	return sym, nil
}

// Words assembles the instructions to a slice of uint32 values.
func Words(load uint32, instructions []ppc.Instruction) ([]uint32, error) {
	if load%WordSize != 0 {
		return nil, curated.Errorf(AssemblyError, curated.Errorf(Misaligned, load))
	}

	sym, err := newSymbols(load, instructions)
	if err != nil {
		return nil, curated.Errorf(AssemblyError, err)
	}

	words := make([]uint32, len(instructions))
	for i, ins := range instructions {
		pc := load + uint32(i*WordSize)
		w, err := ppc.EncodeSymbols(ins, pc, sym)
		if err != nil {
			return nil, curated.Errorf(AssemblyError, curated.Errorf(InstructionErr, i, ins, err))
		}
		words[i] = w
	}

	return words, nil
}

// Assemble the instructions as though the first instruction is at the load
// address. The length of the returned slice is always four times the number
// of instructions. An empty sequence results in an empty slice.
//
// Any error in any instruction fails the whole assembly.
func Assemble(load uint32, instructions []ppc.Instruction) ([]byte, error) {
	words, err := Words(load, instructions)
	if err != nil {
		return nil, err
	}

	b := make([]byte, 0, len(words)*WordSize)
	for _, w := range words {
		b = binary.BigEndian.AppendUint32(b, w)
	}

	return b, nil
}

// Size returns the number of bytes that the instructions will assemble to.
func Size(instructions []ppc.Instruction) uint32 {
	return uint32(len(instructions) * WordSize)
}

// Disassemble the bytes as though the first byte is at the load address. The
// length of data must be a multiple of four.
func Disassemble(load uint32, data []byte) ([]ppc.Instruction, error) {
	if len(data)%WordSize != 0 {
		return nil, curated.Errorf(AssemblyError, "data is not a whole number of words")
	}

	instructions := make([]ppc.Instruction, 0, len(data)/WordSize)
	for i := 0; i < len(data); i += WordSize {
		ins, err := ppc.Decode(binary.BigEndian.Uint32(data[i:]), load+uint32(i))
		if err != nil {
			return nil, curated.Errorf(AssemblyError, err)
		}
		instructions = append(instructions, ins)
	}

	return instructions, nil
}
