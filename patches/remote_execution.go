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

// the stack frame of the hijacked update_hint_state function. r30 and r31 are
// saved at frameSavedRegs and the link register at frameSize+4
const (
	frameSize      = 0x34
	frameSavedRegs = 0x2c
)

// the byte in the hint state object that the game sets when the hint state
// should be updated
const hintStatePending = 0x2

// the number of bytes of instruction cache invalidated, from the end of the
// head, before the body is run
const icacheFlushSize = 0x100

// RemoteExecutionPatchStart is the head of the hijacked update_hint_state
// function. It returns immediately unless the pending flag of the hint state
// object is set. Otherwise the flag is cleared, the instruction cache is
// invalidated and execution continues with whatever follows the head.
//
// On entry to the body, r31 holds the hint state object.
func RemoteExecutionPatchStart() []ppc.Instruction {
	ins := []ppc.Instruction{
		ppc.Stwu(ppc.R1, -frameSize, ppc.R1),
		ppc.Mflr(ppc.R0),
		ppc.Stw(ppc.R0, frameSize+4, ppc.R1),
		ppc.Stmw(ppc.R30, frameSavedRegs, ppc.R1),
		ppc.Mr(ppc.R31, ppc.R3),
		ppc.Lbz(ppc.R4, hintStatePending, ppc.R31),
		ppc.Cmpwi(ppc.R4, 0),
		ppc.Bne(ppc.Label("pending")),
	}

	ins = append(ins, RemoteExecutionPatchEnd()...)

	ins = append(ins,
		ppc.Li(ppc.R6, ppc.Imm(0)).WithLabel("pending"),
		ppc.Stb(ppc.R6, hintStatePending, ppc.R31),
		ppc.Lis(ppc.R30, ppc.Hi(ppc.Label("flushed"))),
		ppc.Ori(ppc.R30, ppc.R30, ppc.Lo(ppc.Label("flushed"))),
		ppc.Li(ppc.R4, ppc.Imm(icacheFlushSize)),
		ppc.Icbi(ppc.R4, ppc.R30).WithLabel("flush"),
		ppc.Cmpwi(ppc.R4, 0),
		ppc.Addi(ppc.R4, ppc.R4, ppc.Imm(-0x20)),
		ppc.Bne(ppc.Label("flush")),
		ppc.Sync(),
		ppc.Isync().WithLabel("flushed"),
	)

	return ins
}

// RemoteExecutionPatchEnd is the tail of the hijacked update_hint_state
// function. It restores the registers saved by the head and returns.
func RemoteExecutionPatchEnd() []ppc.Instruction {
	return []ppc.Instruction{
		ppc.Lmw(ppc.R30, frameSavedRegs, ppc.R1),
		ppc.Lwz(ppc.R0, frameSize+4, ppc.R1),
		ppc.Mtlr(ppc.R0),
		ppc.Addi(ppc.R1, ppc.R1, ppc.Imm(frameSize)),
		ppc.Blr(),
	}
}

// remoteExecutionBodyAddress returns the address of the instruction following
// the head of the hijacked function.
func remoteExecutionBodyAddress(addrs StringDisplayAddresses) (uint32, error) {
	if err := requireAddress("update_hint_state", addrs.UpdateHintState); err != nil {
		return 0, err
	}
	return uint32(addrs.UpdateHintState) + assembler.Size(RemoteExecutionPatchStart()), nil
}

// CreateRemoteExecutionBody assembles the body, followed by the tail, at the
// address following the head of the hijacked function. Returns the address
// and the bytes.
func CreateRemoteExecutionBody(addrs StringDisplayAddresses, body []ppc.Instruction) (uint32, []byte, error) {
	addr, err := remoteExecutionBodyAddress(addrs)
	if err != nil {
		return 0, nil, err
	}

	ins := make([]ppc.Instruction, 0, len(body)+len(RemoteExecutionPatchEnd()))
	ins = append(ins, body...)
	ins = append(ins, RemoteExecutionPatchEnd()...)

	b, err := assembler.Assemble(addr, ins)
	if err != nil {
		return 0, nil, curated.Errorf(PatchError, err)
	}

	return addr, b, nil
}

// ApplyRemoteExecutionPatch hijacks the update_hint_state function. The body
// is empty so the function does nothing except clear the pending flag.
func ApplyRemoteExecutionPatch(addrs StringDisplayAddresses, s *dol.Session) error {
	return ApplyRemoteExecutionBody(addrs, nil, s)
}

// ApplyRemoteExecutionBody hijacks the update_hint_state function and writes
// the body after the head. The head and the body are written as separate
// patches.
func ApplyRemoteExecutionBody(addrs StringDisplayAddresses, body []ppc.Instruction, s *dol.Session) error {
	if err := requireAddress("update_hint_state", addrs.UpdateHintState); err != nil {
		return err
	}

	err := s.WriteInstructions(uint32(addrs.UpdateHintState), RemoteExecutionPatchStart())
	if err != nil {
		return err
	}

	addr, b, err := CreateRemoteExecutionBody(addrs, body)
	if err != nil {
		return err
	}

	return s.WritePatch(dol.Patch{Address: addr, Bytes: b})
}
