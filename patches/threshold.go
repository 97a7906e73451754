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

import (
	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/ppc"
)

// ComparisonThresholdPatch replaces the immediate value of the compare
// instruction at the address. The instruction must be a cmpwi or a cmplwi.
// The register and the condition register field are unchanged.
func ComparisonThresholdPatch(s *dol.Session, addr uint32, value int64) (Injection, error) {
	ins, err := s.ReadInstruction(addr)
	if err != nil {
		return Injection{}, curated.Errorf(NotAComparison, addr, err)
	}

	switch ins.Mnemonic {
	case ppc.CMPI, ppc.CMPLI:
	default:
		return Injection{}, curated.Errorf(NotAComparison, addr, ins)
	}

	ins.Imm = ppc.Imm(value)

	// check the new value before anything is written
	if _, err := ppc.Encode(ins, addr); err != nil {
		return Injection{}, curated.Errorf(PatchError, err)
	}

	return Injection{Address: addr, Instructions: []ppc.Instruction{ins}}, nil
}
