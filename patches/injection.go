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
	"fmt"
	"strings"

	"github.com/jetsetilly/dolpatch/assembler"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/ppc"
)

// Injection is a sequence of instructions and the address they should be
// assembled for and written to.
type Injection struct {
	Address      uint32
	Instructions []ppc.Instruction
}

func (inj Injection) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%#08x: %d instructions", inj.Address, len(inj.Instructions)))
	for _, ins := range inj.Instructions {
		s.WriteString(fmt.Sprintf("\n\t%s", ins))
	}
	return s.String()
}

// Size returns the number of bytes the injection will occupy.
func (inj Injection) Size() uint32 {
	return assembler.Size(inj.Instructions)
}

// Assemble the instructions of the injection at the injection address.
func (inj Injection) Assemble() ([]byte, error) {
	return assembler.Assemble(inj.Address, inj.Instructions)
}

// ApplyInjections writes each injection to the session in turn. Writing stops
// on the first error.
func ApplyInjections(s *dol.Session, injections ...Injection) error {
	for _, inj := range injections {
		if err := s.WriteInstructions(inj.Address, inj.Instructions); err != nil {
			return err
		}
		logger.Logf(s.File().Logging(), "patches", "%d instructions at %#08x", len(inj.Instructions), inj.Address)
	}
	return nil
}
