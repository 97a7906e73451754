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
	"github.com/jetsetilly/dolpatch/assembler"
	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/ppc"
)

// ApplyTrampoline runs the body every time the instruction at the hook address
// is reached.
//
// The body is written to free space allocated from the session. It is
// followed by the original instruction from the hook address and a branch
// back to the instruction after the hook. The instruction at the hook address
// is replaced with a branch to the body.
//
// The body must preserve any registers that are live at the hook address.
// Branches in the relocated instruction are adjusted for the new address.
// The hook must decode with ppc.Decode(), so absolute branches (ba, bla)
// cannot be hooked and result in an error.
func ApplyTrampoline(s *dol.Session, hook uint32, body []ppc.Instruction) ([]Injection, error) {
	original, err := s.ReadInstruction(hook)
	if err != nil {
		return nil, curated.Errorf(TrampolineFailed, hook, err)
	}

	ins := make([]ppc.Instruction, 0, len(body)+2)
	ins = append(ins, body...)
	ins = append(ins,
		original,
		ppc.Branch(ppc.Absolute(hook+assembler.WordSize)),
	)

	addr, err := s.Allocate(assembler.Size(ins))
	if err != nil {
		return nil, curated.Errorf(TrampolineFailed, hook, err)
	}

	injections := []Injection{
		{Address: addr, Instructions: ins},
		{Address: hook, Instructions: []ppc.Instruction{ppc.Branch(ppc.Absolute(addr))}},
	}

	if err := ApplyInjections(s, injections...); err != nil {
		return nil, curated.Errorf(TrampolineFailed, hook, err)
	}

	return injections, nil
}
