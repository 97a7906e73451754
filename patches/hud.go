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
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/ppc"
	"golang.org/x/text/encoding/unicode"
)

// the HUD memo info structure is built on the stack of the caller
const (
	memoInfo     = 0x10
	memoWString  = 0x1c
	memoDuration = 0x4100 // upper half of 8.0 as a float
	memoPriority = 9
)

// CallDisplayHudPatch returns the instructions that display the message at
// message_receiver_string_ref as a HUD memo. The instructions assume a stack
// frame of at least 0x2c bytes, as created by RemoteExecutionPatchStart().
func CallDisplayHudPatch(addrs StringDisplayAddresses) []ppc.Instruction {
	msg := ppc.Absolute(uint32(addrs.MessageReceiverStringRef))

	return []ppc.Instruction{
		ppc.Lis(ppc.R5, ppc.Imm(memoDuration)),
		ppc.Li(ppc.R6, ppc.Imm(0)),
		ppc.Li(ppc.R7, ppc.Imm(1)),
		ppc.Li(ppc.R9, ppc.Imm(memoPriority)),
		ppc.Stw(ppc.R5, memoInfo, ppc.R1),
		ppc.Stb(ppc.R7, memoInfo+0x4, ppc.R1),
		ppc.Stb(ppc.R6, memoInfo+0x5, ppc.R1),
		ppc.Stb(ppc.R6, memoInfo+0x6, ppc.R1),
		ppc.Stb(ppc.R7, memoInfo+0x7, ppc.R1),
		ppc.Stw(ppc.R9, memoInfo+0x8, ppc.R1),
		ppc.Addi(ppc.R3, ppc.R1, ppc.Imm(memoWString)),
		ppc.Lis(ppc.R4, ppc.Hi(msg)),
		ppc.Ori(ppc.R4, ppc.R4, ppc.Lo(msg)),
		ppc.Bl(ppc.Absolute(uint32(addrs.WStringConstructor))),
		ppc.Addi(ppc.R4, ppc.R1, ppc.Imm(memoInfo)),
		ppc.Bl(ppc.Absolute(uint32(addrs.DisplayHudMemo))),
	}
}

// EncodeHudMessage returns the message as a null terminated UTF-16 big endian
// string. The encoded string, including the terminator, must not be longer
// than maxSize bytes.
func EncodeHudMessage(msg string, maxSize int) ([]byte, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()

	b, err := enc.Bytes([]byte(msg))
	if err != nil {
		return nil, curated.Errorf(PatchError, err)
	}
	b = append(b, 0x00, 0x00)

	if len(b) > maxSize {
		return nil, curated.Errorf(MessageTooLong, len(b), maxSize)
	}

	return b, nil
}

// ApplyHudMessage writes the message to message_receiver_string_ref, where it
// will be found by the instructions returned by CallDisplayHudPatch().
func ApplyHudMessage(addrs StringDisplayAddresses, msg string, s *dol.Session) error {
	if err := requireAddress("message_receiver_string_ref", addrs.MessageReceiverStringRef); err != nil {
		return err
	}

	b, err := EncodeHudMessage(msg, addrs.MaxMessageSize)
	if err != nil {
		return err
	}

	logger.Logf(s.File().Logging(), "patches", "HUD message %q (%d bytes)", msg, len(b))

	return s.WritePatch(dol.Patch{Address: uint32(addrs.MessageReceiverStringRef), Bytes: b})
}
