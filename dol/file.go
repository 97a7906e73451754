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
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/freespace"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/paths"
	"github.com/jetsetilly/dolpatch/ppc"
)

// File is a DOL file loaded into memory.
type File struct {
	// the path of the file on disk. empty if the file was created from bytes
	// in memory, in which case committed sessions are not written anywhere
	path string

	hdr      Header
	sections sectionIndex
	data     []byte

	crit     sync.Mutex
	editable bool
	editing  bool

	// free space region given to every session. zero size if there is no
	// free space region
	freeStart uint32
	freeEnd   uint32

	// make a backup of the original file before the first commit
	backup   bool
	backedUp bool

	perm logger.Permission
}

// Load the DOL file from disk. The file is not editable until SetEditable()
// is called.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	f, err := newFile(data)
	if err != nil {
		return nil, err
	}
	f.path = path

	logger.Logf(f.perm, "DOL", "loaded %s (%d sections, entry %#08x)", path, len(f.sections.all()), f.hdr.EntryPoint)

	return f, nil
}

// FromBytes creates a File from data in memory. The data is copied. Committed
// sessions update the data in memory only.
func FromBytes(data []byte) (*File, error) {
	b := make([]byte, len(data))
	copy(b, data)
	return newFile(b)
}

func newFile(data []byte) (*File, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	sections := hdr.Sections()
	for _, sec := range sections {
		if sec.Offset < HeaderSize {
			return nil, curated.Errorf(InvalidSections, fmt.Sprintf("%s overlaps the header", sec.Name()))
		}
		if uint64(sec.Offset)+uint64(sec.Size) > uint64(len(data)) {
			return nil, curated.Errorf(InvalidSections, fmt.Sprintf("%s extends beyond the end of the file", sec.Name()))
		}
	}

	idx, err := newSectionIndex(sections)
	if err != nil {
		return nil, curated.Errorf(InvalidSections, err)
	}

	return &File{
		hdr:      hdr,
		sections: idx,
		data:     data,
		perm:     logger.Allow,
	}, nil
}

func (f *File) String() string {
	s := strings.Builder{}
	if f.path != "" {
		s.WriteString(fmt.Sprintf("%s\n", f.path))
	}
	s.WriteString(fmt.Sprintf("entry point: %#08x\n", f.hdr.EntryPoint))
	s.WriteString(fmt.Sprintf("bss: %#08x-%#08x\n", f.hdr.BSSAddress, f.hdr.BSSAddress+f.hdr.BSSSize))
	for _, sec := range f.sections.all() {
		s.WriteString(fmt.Sprintf("%s\n", sec))
	}
	return s.String()
}

// Path returns the path of the file on disk. Empty if the file was created
// with FromBytes().
func (f *File) Path() string {
	return f.path
}

// Header returns a copy of the DOL header.
func (f *File) Header() Header {
	return f.hdr
}

// Sections returns the sections of the file in address order.
func (f *File) Sections() []Section {
	return f.sections.all()
}

// Bytes returns a copy of the file data.
func (f *File) Bytes() []byte {
	f.crit.Lock()
	defer f.crit.Unlock()
	b := make([]byte, len(f.data))
	copy(b, f.data)
	return b
}

// SetLogging sets the permission used by the file, and any sessions, when
// logging.
func (f *File) SetLogging(perm logger.Permission) {
	f.perm = perm
}

// Logging returns the permission used by the file when logging. Code that
// writes to the file through a Session should log with the same permission.
func (f *File) Logging() logger.Permission {
	return f.perm
}

// SetEditable must be called with a value of true before Edit() is called.
func (f *File) SetEditable(editable bool) {
	f.crit.Lock()
	defer f.crit.Unlock()
	f.editable = editable
}

// SetBackup arranges for a copy of the original file to be saved in the
// backups resource directory before the first session is written to disk.
func (f *File) SetBackup(backup bool) {
	f.backup = backup
}

// SetFreeSpace sets the region of the file that is available for injected
// code. The region [start, end) must be inside a single section.
func (f *File) SetFreeSpace(start uint32, end uint32) error {
	if end <= start {
		return curated.Errorf(InvalidFreeSpace, "region is empty")
	}

	sec, ok := f.sections.find(start)
	if !ok {
		return curated.Errorf(InvalidFreeSpace, curated.Errorf(AddressNotMapped, start))
	}
	if uint64(end) > uint64(sec.Address)+uint64(sec.Size) {
		return curated.Errorf(InvalidFreeSpace, fmt.Sprintf("region extends beyond %s", sec.Name()))
	}

	// check that the allocator accepts the region
	if _, err := freespace.NewAllocator(start, end); err != nil {
		return curated.Errorf(InvalidFreeSpace, err)
	}

	f.freeStart = start
	f.freeEnd = end

	return nil
}

// ClearFreeSpace removes the free space region. Sessions opened afterwards
// cannot allocate.
func (f *File) ClearFreeSpace() {
	f.freeStart = 0
	f.freeEnd = 0
}

// FreeSpace returns the free space region. The last return value is false if
// there is no free space region.
func (f *File) FreeSpace() (uint32, uint32, bool) {
	return f.freeStart, f.freeEnd, f.freeEnd > f.freeStart
}

// SectionForAddress returns the section containing the address.
func (f *File) SectionForAddress(addr uint32) (Section, error) {
	sec, ok := f.sections.find(addr)
	if !ok {
		return Section{}, curated.Errorf(AddressNotMapped, addr)
	}
	return sec, nil
}

// OffsetForAddress returns the file offset of the address.
func (f *File) OffsetForAddress(addr uint32) (uint32, error) {
	sec, err := f.SectionForAddress(addr)
	if err != nil {
		return 0, err
	}
	return sec.Offset + (addr - sec.Address), nil
}

// AddressForOffset returns the load address of the file offset. The offset
// must be inside a section.
func (f *File) AddressForOffset(offset uint32) (uint32, error) {
	for _, sec := range f.sections.all() {
		if offset >= sec.Offset && offset < sec.EndOffset() {
			return sec.Address + (offset - sec.Offset), nil
		}
	}
	return 0, curated.Errorf(LoadError, fmt.Sprintf("offset %#x is not in any section", offset))
}

// span returns the file offset for n bytes at the address. The bytes must all
// be in the same section.
func (f *File) span(addr uint32, n int) (uint32, error) {
	sec, err := f.SectionForAddress(addr)
	if err != nil {
		return 0, err
	}

	offset := sec.Offset + (addr - sec.Address)
	if uint64(offset)+uint64(n) > uint64(sec.EndOffset()) {
		return 0, curated.Errorf(OutOfBounds, n, addr, sec.Name())
	}

	return offset, nil
}

// Read n bytes at the address from the committed file data.
func (f *File) Read(addr uint32, n int) ([]byte, error) {
	f.crit.Lock()
	defer f.crit.Unlock()
	return read(f, f.data, addr, n)
}

// ReadWord reads the big endian word at the address.
func (f *File) ReadWord(addr uint32) (uint32, error) {
	b, err := f.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadInstruction decodes the instruction at the address.
func (f *File) ReadInstruction(addr uint32) (ppc.Instruction, error) {
	w, err := f.ReadWord(addr)
	if err != nil {
		return ppc.Instruction{}, err
	}
	return ppc.Decode(w, addr)
}

func read(f *File, data []byte, addr uint32, n int) ([]byte, error) {
	offset, err := f.span(addr, n)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, data[offset:])
	return b, nil
}

// Edit the file. The function is called with a new Session. If the function
// returns nil the changes made in the session are committed to the file and
// written to disk. If the function returns an error the changes are
// discarded and the error is returned.
//
// Edit fails immediately if the file is not editable or if there is already
// a session open for the file.
func (f *File) Edit(fn func(s *Session) error) error {
	f.crit.Lock()
	if !f.editable {
		f.crit.Unlock()
		return curated.Errorf(NotEditable)
	}
	if f.editing {
		f.crit.Unlock()
		return curated.Errorf(EditInProgress)
	}
	f.editing = true
	working := make([]byte, len(f.data))
	copy(working, f.data)
	f.crit.Unlock()

	defer func() {
		f.crit.Lock()
		f.editing = false
		f.crit.Unlock()
	}()

	s, err := newSession(f, working)
	if err != nil {
		return err
	}

	if err := fn(s); err != nil {
		logger.Logf(f.perm, "DOL", "session %s discarded: %v", s.id, err)
		return err
	}

	return f.commit(s)
}

// commit the working data of the session.
func (f *File) commit(s *Session) error {
	if len(s.patches) == 0 {
		logger.Logf(f.perm, "DOL", "session %s: nothing to commit", s.id)
		return nil
	}

	if f.path != "" {
		if f.backup && !f.backedUp {
			pth, err := f.backupPath()
			if err != nil {
				return curated.Errorf(FlushError, err)
			}
			if err := flush(pth, f.data); err != nil {
				return curated.Errorf(FlushError, err)
			}
			f.backedUp = true
			logger.Logf(f.perm, "DOL", "backup of %s saved to %s", f.path, pth)
		}

		if err := flush(f.path, s.data); err != nil {
			return curated.Errorf(FlushError, err)
		}
	}

	f.crit.Lock()
	f.data = s.data
	f.crit.Unlock()

	logger.Logf(f.perm, "DOL", "session %s committed (%d patches)", s.id, len(s.patches))

	return nil
}

func (f *File) backupPath() (string, error) {
	return paths.ResourcePath("backups", paths.UniqueFilename("backup", filepath.Base(f.path)))
}

// flush data to the path. the data is written to a temporary file in the same
// directory and then renamed. the file at path is never partially written.
func flush(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), fmt.Sprintf("%s.*.tmp", filepath.Base(path)))
	if err != nil {
		return err
	}

	// the temporary file is removed on error. after a successful rename
	// the remove will fail harmlessly
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if fi, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmp.Name(), fi.Mode().Perm()); err != nil {
			return err
		}
	}

	return os.Rename(tmp.Name(), path)
}
