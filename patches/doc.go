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

// Package patches is a catalogue of patches for the executables of the
// supported games. The addresses used by the patches are different for every
// build of a game and are supplied by an AddressTable, usually loaded from a
// YAML file with LoadAddressTable().
//
// Most patches are pure functions that return a sequence of instructions (see
// the ppc package). The instructions are assembled and written to a DOL file
// inside an editing session (see the dol package). Patches that need to read
// the existing executable, or that need free space, take the session as an
// argument and write to it directly.
//
// There are three kinds of patch:
//
// Direct overwrite patches replace instructions in place. The replacement
// always has the same number of instructions as the code it replaces. For
// example, ConstantReturnPatch() and ComparisonThresholdPatch().
//
// Remote execution patches hijack the update_hint_state function of the game.
// RemoteExecutionPatchStart() and RemoteExecutionPatchEnd() are the head and
// tail of the hijacked function and anything assembled between them, with
// CreateRemoteExecutionBody(), runs the next time the game updates the hint
// state. ApplyTrampoline() is a more general form of the same idea. The
// instruction at a hook address is replaced with a branch to free space where
// the new code runs before the relocated original instruction and a branch
// back.
//
// Parameterised patches take small numbers and booleans and splice them into
// the immediate fields of otherwise fixed instructions. For example,
// AdjustItemAmountAndCapacityPatch().
//
// Applying the same patch with the same parameters more than once results in
// exactly the same bytes.
package patches
