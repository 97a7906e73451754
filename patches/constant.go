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

import "github.com/jetsetilly/dolpatch/ppc"

// ConstantReturnPatch replaces the start of the function at the address so
// that it returns the boolean value immediately.
func ConstantReturnPatch(addr uint32, value bool) Injection {
	var v int64
	if value {
		v = 1
	}
	return Injection{
		Address: addr,
		Instructions: []ppc.Instruction{
			ppc.Li(ppc.R3, ppc.Imm(v)),
			ppc.Blr(),
		},
	}
}
