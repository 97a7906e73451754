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

package modalflag

import (
	"fmt"
	"strconv"
	"strings"
)

// address implements the flag.Value interface for 32 bit addresses.
type address uint32

func (a *address) String() string {
	return fmt.Sprintf("%#08x", uint32(*a))
}

func (a *address) Set(s string) error {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return fmt.Errorf("not a valid address: %s", s)
	}
	*a = address(v)
	return nil
}

// AddAddress adds a flag that accepts a 32 bit address. The value can be
// given in decimal, hexadecimal (0x prefix) or octal (0 prefix).
func (md *Modes) AddAddress(name string, value uint32, usage string) *uint32 {
	p := new(uint32)
	*p = value
	md.flags.Var((*address)(p), name, usage)
	return p
}
