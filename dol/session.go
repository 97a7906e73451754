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

package dol

import (
	"encoding/binary"
	"fmt"

	"github.com/google/btree"
	"github.com/google/uuid"
	"github.com/jetsetilly/dolpatch/assembler"
	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/freespace"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/ppc"
)

// Patch is a sequence of bytes to be written at a load address.
type Patch struct {
	Address uint32
	Bytes   []byte
}

func (p Patch) String() string {
	return fmt.Sprintf("%#08x: % x", p.Address, p.Bytes)
}

// span is a range of addresses [start, end) written during a session.
type span struct {
	start uint32
	end   uint64
}

func (sp span) String() string {
	return fmt.Sprintf("%#08x-%#08x", sp.start, sp.end)
}

func spanLess(a, b span) bool {
	return a.start < b.start
}

// Session is an editing session for a File. A session is only valid for the
// duration of the function passed to File.Edit().
type Session struct {
	file *File
	id   uuid.UUID

	// the working copy of the file data
	data []byte

	// every range written during the session. the ranges never overlap
	written *btree.BTreeG[span]

	// every patch written during the session in the order they were written
	patches []Patch

	// nil if the file has no free space region
	alloc *freespace.Allocator
}

func newSession(f *File, data []byte) (*Session, error) {
	s := &Session{
		file:    f,
		id:      uuid.New(),
		data:    data,
		written: btree.NewG[span](degree, spanLess),
	}

	if start, end, ok := f.FreeSpace(); ok {
		alloc, err := freespace.NewAllocator(start, end)
		if err != nil {
			return nil, err
		}
		alloc.SetLogging(f.perm)
		s.alloc = alloc
	}

	logger.Logf(f.perm, "DOL", "session %s opened", s.id)

	return s, nil
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id.String()
}

// File returns the file being edited.
func (s *Session) File() *File {
	return s.file
}

// Patches returns the patches written so far in the session.
func (s *Session) Patches() []Patch {
	p := make([]Patch, len(s.patches))
	copy(p, s.patches)
	return p
}

// overlapping returns a range that has already been written in the session
// and which overlaps sp. A range identical to sp is not considered to be
// overlapping.
func (s *Session) overlapping(sp span) (span, bool) {
	var ov span
	var found bool

	s.written.DescendLessOrEqual(span{start: uint32(sp.end - 1)}, func(w span) bool {
		if w.end > uint64(sp.start) && w != sp {
			ov = w
			found = true
		}
		return false
	})

	return ov, found
}

// WritePatch writes the bytes of the patch at the patch address. The bytes
// must fit inside the section that contains the address.
//
// A patch that overlaps a patch already written in the session is an error.
// A patch that covers exactly the same range as an earlier patch replaces the
// earlier patch.
//
// No bytes are written if an error is returned.
func (s *Session) WritePatch(p Patch) error {
	if len(p.Bytes) == 0 {
		return nil
	}

	offset, err := s.file.span(p.Address, len(p.Bytes))
	if err != nil {
		return err
	}

	sp := span{start: p.Address, end: uint64(p.Address) + uint64(len(p.Bytes))}
	if ov, ok := s.overlapping(sp); ok {
		return curated.Errorf(OverlappingPatch, sp, ov)
	}

	copy(s.data[offset:], p.Bytes)
	s.written.ReplaceOrInsert(sp)

	b := make([]byte, len(p.Bytes))
	copy(b, p.Bytes)
	s.patches = append(s.patches, Patch{Address: p.Address, Bytes: b})

	logger.Logf(s.file.perm, "DOL", "session %s: %d bytes at %#08x (offset %#x)", s.id, len(b), p.Address, offset)

	return nil
}

// WriteInstructions assembles the instructions at the address and writes the
// result.
func (s *Session) WriteInstructions(addr uint32, instructions []ppc.Instruction) error {
	b, err := assembler.Assemble(addr, instructions)
	if err != nil {
		return err
	}
	return s.WritePatch(Patch{Address: addr, Bytes: b})
}

// Read n bytes at the address from the working copy of the file data. Bytes
// written earlier in the session are visible.
func (s *Session) Read(addr uint32, n int) ([]byte, error) {
	return read(s.file, s.data, addr, n)
}

// ReadWord reads the big endian word at the address from the working copy.
func (s *Session) ReadWord(addr uint32) (uint32, error) {
	b, err := s.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadInstruction decodes the instruction at the address in the working copy.
func (s *Session) ReadInstruction(addr uint32) (ppc.Instruction, error) {
	w, err := s.ReadWord(addr)
	if err != nil {
		return ppc.Instruction{}, err
	}
	return ppc.Decode(w, addr)
}

// Allocate size bytes from the free space region.
func (s *Session) Allocate(size uint32) (uint32, error) {
	if s.alloc == nil {
		return 0, curated.Errorf(NoFreeSpace)
	}
	return s.alloc.Allocate(size)
}

// Allocator returns the free space allocator for the session. Returns nil if
// the file has no free space region.
func (s *Session) Allocator() *freespace.Allocator {
	return s.alloc
}
