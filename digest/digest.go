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

// Package digest produces cryptographic hashes of DOL images and of the
// patches written to them. The hash can be used to compare the result of
// subsequent patching runs. If a new hash differs from a previously recorded
// value then something has changed.
//
// Applying the same patches with the same parameters always produces the
// same Patches digest.
package digest

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash is achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
