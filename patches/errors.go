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

package patches

// Sentinal error patterns.
const (
	PatchError       = "patches: %v"
	UnsupportedGame  = "patches: %s does not support %s"
	MessageTooLong   = "patches: message is too long: %d bytes, maximum is %d"
	NotAComparison   = "patches: not a comparison at %#08x: %v"
	MissingAddress   = "patches: address table has no %s address"
	AddressTableErr  = "patches: address table: %v"
	UnknownGame      = "patches: unknown game: %s"
	TrampolineFailed = "patches: trampoline at %#08x: %v"
)
