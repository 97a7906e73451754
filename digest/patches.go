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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/dolpatch/dol"
)

// Patches is a chained digest of a sequence of patches. Each patch is hashed
// along with the digest of the patches before it so the order of the patches
// affects the result.
type Patches struct {
	digest [sha1.Size]byte
	buffer []byte
	count  int
}

// NewPatches is the preferred method of initialisation for the Patches type.
func NewPatches() *Patches {
	return &Patches{}
}

// Add a patch to the digest.
func (dig *Patches) Add(p dol.Patch) {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the buffer
	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)
	dig.buffer = binary.BigEndian.AppendUint32(dig.buffer, p.Address)
	dig.buffer = binary.BigEndian.AppendUint32(dig.buffer, uint32(len(p.Bytes)))
	dig.buffer = append(dig.buffer, p.Bytes...)
	dig.digest = sha1.Sum(dig.buffer)
	dig.count++
}

// AddAll adds every patch in the list.
func (dig *Patches) AddAll(ps []dol.Patch) {
	for _, p := range ps {
		dig.Add(p)
	}
}

// Count returns the number of patches added since the last reset.
func (dig Patches) Count() int {
	return dig.count
}

// Hash implements the Digest interface.
func (dig Patches) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Patches) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.count = 0
}
