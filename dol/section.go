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
	"fmt"

	"github.com/docker/go-units"
	"github.com/google/btree"
)

// SectionKind distinguishes text (code) sections from data sections.
type SectionKind int

// List of section kinds.
const (
	Text SectionKind = iota
	Data
)

func (k SectionKind) String() string {
	switch k {
	case Text:
		return "text"
	case Data:
		return "data"
	}
	return "unknown"
}

// Section is a single section of a DOL file.
type Section struct {
	Kind  SectionKind
	Index int

	// position of the section in the file
	Offset uint32

	// load address of the section
	Address uint32

	Size uint32
}

func (sec Section) String() string {
	return fmt.Sprintf("%s%d %#08x-%#08x offset=%#06x (%s)", sec.Kind, sec.Index,
		sec.Address, sec.End(), sec.Offset, units.BytesSize(float64(sec.Size)))
}

// Name returns the section name. For example, "text0" or "data3".
func (sec Section) Name() string {
	return fmt.Sprintf("%s%d", sec.Kind, sec.Index)
}

// End returns the address immediately after the section.
func (sec Section) End() uint32 {
	return sec.Address + sec.Size
}

// EndOffset returns the file offset immediately after the section.
func (sec Section) EndOffset() uint32 {
	return sec.Offset + sec.Size
}

// Contains returns true if the address is inside the section.
func (sec Section) Contains(addr uint32) bool {
	return addr >= sec.Address && uint64(addr) < uint64(sec.Address)+uint64(sec.Size)
}

// sections are indexed by address
func sectionLess(a, b Section) bool {
	return a.Address < b.Address
}

// the degree of the btrees used in this package. there are never more than
// eighteen sections so a small degree is sufficient
const degree = 4

// sectionIndex finds sections by load address.
type sectionIndex struct {
	tree *btree.BTreeG[Section]
}

// newSectionIndex indexes the sections. Fails if any two sections overlap in
// address space.
func newSectionIndex(sections []Section) (sectionIndex, error) {
	idx := sectionIndex{
		tree: btree.NewG[Section](degree, sectionLess),
	}

	for _, sec := range sections {
		if uint64(sec.Address)+uint64(sec.Size) > 0x100000000 {
			return sectionIndex{}, fmt.Errorf("%s extends beyond the end of the address space", sec.Name())
		}
		if ov, ok := idx.overlapping(sec); ok {
			return sectionIndex{}, fmt.Errorf("%s overlaps %s", sec.Name(), ov.Name())
		}
		idx.tree.ReplaceOrInsert(sec)
	}

	return idx, nil
}

// overlapping returns a section in the index that overlaps with sec.
func (idx sectionIndex) overlapping(sec Section) (Section, bool) {
	var ov Section
	var found bool

	// the section with the greatest address less than the end of sec is the
	// only candidate. sections already in the index do not overlap each other
	idx.tree.DescendLessOrEqual(Section{Address: sec.Address + sec.Size - 1}, func(s Section) bool {
		if uint64(s.Address)+uint64(s.Size) > uint64(sec.Address) {
			ov = s
			found = true
		}
		return false
	})

	return ov, found
}

// find the section containing the address.
func (idx sectionIndex) find(addr uint32) (Section, bool) {
	var sec Section
	var found bool

	idx.tree.DescendLessOrEqual(Section{Address: addr}, func(s Section) bool {
		if s.Contains(addr) {
			sec = s
			found = true
		}
		return false
	})

	return sec, found
}

// all sections in address order.
func (idx sectionIndex) all() []Section {
	sections := make([]Section, 0, idx.tree.Len())
	idx.tree.Ascend(func(s Section) bool {
		sections = append(sections, s)
		return true
	})
	return sections
}
