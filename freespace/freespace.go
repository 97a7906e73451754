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

// Package freespace hands out addresses in a region of a DOL file that is
// reserved for injected code.
//
// The region is a single range of addresses [start, end). Allocations are
// made from the start of the region and are never freed. Every allocation is
// rounded up to a whole number of words so that consecutive allocations are
// adjacent and word aligned.
//
// An Allocator is not safe for concurrent use. It is intended to live for the
// duration of one editing session.
package freespace

import (
	"fmt"

	"github.com/docker/go-units"
	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/logger"
)

// Sentinal error patterns.
const (
	OutOfSpace    = "freespace: out of space: %d bytes requested, %d bytes remaining"
	InvalidRegion = "freespace: invalid region: %v"
)

// the alignment of every allocation
const wordSize = 4

// Allocator hands out addresses from a region of free space.
type Allocator struct {
	start  uint32
	end    uint32
	cursor uint32

	// the permission used when logging allocations
	perm logger.Permission
}

// NewAllocator is the preferred method of initialisation for the Allocator
// type. The start address must be word aligned and must not be greater than
// the end address.
func NewAllocator(start uint32, end uint32) (*Allocator, error) {
	if start%wordSize != 0 {
		return nil, curated.Errorf(InvalidRegion, fmt.Sprintf("start address %#08x is not word aligned", start))
	}
	if end < start {
		return nil, curated.Errorf(InvalidRegion, fmt.Sprintf("end address %#08x is before start address %#08x", end, start))
	}

	return &Allocator{
		start:  start,
		end:    end,
		cursor: start,
		perm:   logger.Allow,
	}, nil
}

// SetLogging sets the permission used when logging allocations.
func (a *Allocator) SetLogging(perm logger.Permission) {
	a.perm = perm
}

func (a *Allocator) String() string {
	return fmt.Sprintf("%#08x-%#08x (%s used, %s free)", a.start, a.end,
		units.BytesSize(float64(a.cursor-a.start)), units.BytesSize(float64(a.Remaining())))
}

// Start returns the first address in the region.
func (a *Allocator) Start() uint32 {
	return a.start
}

// End returns the address immediately after the region.
func (a *Allocator) End() uint32 {
	return a.end
}

// Cursor returns the address that will be returned by the next call to
// Allocate().
func (a *Allocator) Cursor() uint32 {
	return a.cursor
}

// Remaining returns the number of bytes that have not been allocated.
func (a *Allocator) Remaining() uint32 {
	return a.end - a.cursor
}

// Allocate reserves size bytes, rounded up to a whole number of words, and
// returns the address of the reserved space. The cursor is not moved if the
// allocation fails.
func (a *Allocator) Allocate(size uint32) (uint32, error) {
	aligned := (uint64(size) + wordSize - 1) &^ (wordSize - 1)

	if uint64(a.cursor)+aligned > uint64(a.end) {
		return 0, curated.Errorf(OutOfSpace, size, a.Remaining())
	}

	addr := a.cursor
	a.cursor += uint32(aligned)

	logger.Logf(a.perm, "freespace", "allocated %s at %#08x (%s remaining)",
		units.BytesSize(float64(aligned)), addr, units.BytesSize(float64(a.Remaining())))

	return addr, nil
}
