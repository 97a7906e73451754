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

package freespace_test

import (
	"testing"

	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/freespace"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/test"
)

func TestAdjacentAllocations(t *testing.T) {
	a, err := freespace.NewAllocator(0x80003100, 0x80003100+0x100)
	test.DemandSuccess(t, err)
	a.SetLogging(logger.Deny)

	const size = 0x60

	first, err := a.Allocate(size)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, first, uint32(0x80003100))

	second, err := a.Allocate(size)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, second, first+size)
	test.ExpectEquality(t, second%4, uint32(0))

	// the third allocation exceeds the remaining space. the cursor does not
	// move on failure
	_, err = a.Allocate(size)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, freespace.OutOfSpace))
	test.ExpectEquality(t, a.Remaining(), uint32(0x100-2*size))
	test.ExpectEquality(t, a.Cursor(), second+size)

	// but a smaller allocation that fits will succeed
	third, err := a.Allocate(0x40)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, third, second+size)
	test.ExpectEquality(t, a.Remaining(), uint32(0))
}

func TestWordAlignment(t *testing.T) {
	a, err := freespace.NewAllocator(0x1000, 0x1010)
	test.DemandSuccess(t, err)
	a.SetLogging(logger.Deny)

	first, err := a.Allocate(1)
	test.ExpectSuccess(t, err)
	second, err := a.Allocate(5)
	test.ExpectSuccess(t, err)
	third, err := a.Allocate(4)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, first, uint32(0x1000))
	test.ExpectEquality(t, second, uint32(0x1004))
	test.ExpectEquality(t, third, uint32(0x100c))

	// zero sized allocations do not advance the cursor
	zero, err := a.Allocate(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, zero, uint32(0x1010))

	_, err = a.Allocate(1)
	test.ExpectFailure(t, err)
}

func TestExactFit(t *testing.T) {
	a, err := freespace.NewAllocator(0x1000, 0x1008)
	test.DemandSuccess(t, err)
	a.SetLogging(logger.Deny)

	_, err = a.Allocate(8)
	test.ExpectSuccess(t, err)

	_, err = a.Allocate(0xffffffff)
	test.ExpectFailure(t, err)
}

func TestInvalidRegion(t *testing.T) {
	_, err := freespace.NewAllocator(0x1002, 0x1010)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, freespace.InvalidRegion))

	_, err = freespace.NewAllocator(0x1010, 0x1000)
	test.ExpectFailure(t, err)

	// an empty region is allowed but every allocation fails
	a, err := freespace.NewAllocator(0x1000, 0x1000)
	test.DemandSuccess(t, err)
	_, err = a.Allocate(4)
	test.ExpectFailure(t, err)
}
