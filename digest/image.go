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
	"fmt"
)

// Image is the digest of the complete data of a DOL image.
type Image struct {
	digest [sha1.Size]byte
}

// NewImage creates the digest for the data.
func NewImage(data []byte) *Image {
	dig := &Image{}
	dig.Update(data)
	return dig
}

// Update replaces the digest with the digest of the data.
func (dig *Image) Update(data []byte) {
	dig.digest = sha1.Sum(data)
}

// Hash implements the Digest interface.
func (dig Image) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Image) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}
