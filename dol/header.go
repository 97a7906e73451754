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

	"github.com/go-restruct/restruct"
	"github.com/jetsetilly/dolpatch/curated"
)

// The number of text and data sections in a DOL file.
const (
	NumText = 7
	NumData = 11
)

// HeaderSize is the size of the header at the start of every DOL file.
const HeaderSize = 0x100

// Header is the DOL header as it appears in the file. All values are big
// endian.
type Header struct {
	TextOffsets   [NumText]uint32
	DataOffsets   [NumData]uint32
	TextAddresses [NumText]uint32
	DataAddresses [NumData]uint32
	TextSizes     [NumText]uint32
	DataSizes     [NumData]uint32
	BSSAddress    uint32
	BSSSize       uint32
	EntryPoint    uint32
	Padding       [0x1c]byte
}

// ParseHeader reads the header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	var hdr Header

	if len(data) < HeaderSize {
		return hdr, curated.Errorf(InvalidHeader, "file is too short")
	}

	if err := restruct.Unpack(data[:HeaderSize], binary.BigEndian, &hdr); err != nil {
		return hdr, curated.Errorf(InvalidHeader, err)
	}

	return hdr, nil
}

// Bytes returns the header as it would appear in the file.
func (hdr Header) Bytes() ([]byte, error) {
	b, err := restruct.Pack(binary.BigEndian, &hdr)
	if err != nil {
		return nil, curated.Errorf(InvalidHeader, err)
	}
	return b, nil
}

// Sections returns the sections described by the header. Unused sections are
// not included. The sections are in header order, text sections first.
func (hdr Header) Sections() []Section {
	var sections []Section

	for i := 0; i < NumText; i++ {
		if hdr.TextSizes[i] == 0 {
			continue
		}
		sections = append(sections, Section{
			Kind:    Text,
			Index:   i,
			Offset:  hdr.TextOffsets[i],
			Address: hdr.TextAddresses[i],
			Size:    hdr.TextSizes[i],
		})
	}

	for i := 0; i < NumData; i++ {
		if hdr.DataSizes[i] == 0 {
			continue
		}
		sections = append(sections, Section{
			Kind:    Data,
			Index:   i,
			Offset:  hdr.DataOffsets[i],
			Address: hdr.DataAddresses[i],
			Size:    hdr.DataSizes[i],
		})
	}

	return sections
}

// SetSection sets the slot in the header for the section. The Kind and Index
// fields of the section decide which slot is used.
func (hdr *Header) SetSection(sec Section) error {
	switch sec.Kind {
	case Text:
		if sec.Index < 0 || sec.Index >= NumText {
			return curated.Errorf(InvalidHeader, "text section index out of range")
		}
		hdr.TextOffsets[sec.Index] = sec.Offset
		hdr.TextAddresses[sec.Index] = sec.Address
		hdr.TextSizes[sec.Index] = sec.Size
	case Data:
		if sec.Index < 0 || sec.Index >= NumData {
			return curated.Errorf(InvalidHeader, "data section index out of range")
		}
		hdr.DataOffsets[sec.Index] = sec.Offset
		hdr.DataAddresses[sec.Index] = sec.Address
		hdr.DataSizes[sec.Index] = sec.Size
	default:
		return curated.Errorf(InvalidHeader, "unknown section kind")
	}
	return nil
}

// Create returns the bytes of a new DOL file with the sections and entry
// point. The section data is zero filled. The file is large enough to hold
// every section.
func Create(sections []Section, entry uint32) ([]byte, error) {
	var hdr Header
	hdr.EntryPoint = entry

	size := uint64(HeaderSize)
	for _, sec := range sections {
		if err := hdr.SetSection(sec); err != nil {
			return nil, err
		}
		if end := uint64(sec.Offset) + uint64(sec.Size); end > size {
			size = end
		}
	}

	b, err := hdr.Bytes()
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	copy(data, b)

	return data, nil
}
