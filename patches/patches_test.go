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

package patches_test

import (
	"testing"

	"github.com/jetsetilly/dolpatch/assembler"
	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/freespace"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/patches"
	"github.com/jetsetilly/dolpatch/ppc"
	"github.com/jetsetilly/dolpatch/test"
)

var stringDisplay = patches.StringDisplayAddresses{
	UpdateHintState:          0x80038020,
	MessageReceiverStringRef: 0x9000,
	WStringConstructor:       0x802ff3dc,
	DisplayHudMemo:           0x8006b3c8,
	MaxMessageSize:           200,
}

var powerupFunctions = patches.PowerupFunctionsAddresses{
	AddPowerUp: 0x800758f0,
	IncrPickup: 0x80075760,
	DecrPickup: 0x800756c4,
}

// a DOL file with a single text section of 450 bytes at file offset 0x100
func testFile(t *testing.T, base uint32) *dol.File {
	t.Helper()

	data, err := dol.Create([]dol.Section{
		{Kind: dol.Text, Index: 0, Offset: 0x100, Address: base, Size: 450},
	}, base)
	test.DemandSuccess(t, err)

	f, err := dol.FromBytes(data)
	test.DemandSuccess(t, err)
	f.SetLogging(logger.Deny)
	f.SetEditable(true)

	return f
}

// the expected contents of the text section of testFile()
func section(at int, b []byte) []byte {
	s := make([]byte, 450)
	copy(s[at:], b)
	return s
}

var remoteExecutionStart = []byte{
	0x94, 0x21, 0xff, 0xcc, 0x7c, 0x08, 0x02, 0xa6, 0x90, 0x01, 0x00, 0x38, 0xbf, 0xc1, 0x00, 0x2c, 0x7c, 0x7f, 0x1b, 0x78,
	0x88, 0x9f, 0x00, 0x02, 0x2c, 0x04, 0x00, 0x00, 0x40, 0x82, 0x00, 0x18, 0xbb, 0xc1, 0x00, 0x2c, 0x80, 0x01, 0x00, 0x38,
	0x7c, 0x08, 0x03, 0xa6, 0x38, 0x21, 0x00, 0x34, 0x4e, 0x80, 0x00, 0x20, 0x38, 0xc0, 0x00, 0x00, 0x98, 0xdf, 0x00, 0x02,
	0x3f, 0xc0, 0x80, 0x00, 0x63, 0xde, 0x80, 0x7c, 0x38, 0x80, 0x01, 0x00, 0x7c, 0x04, 0xf7, 0xac, 0x2c, 0x04, 0x00, 0x00,
	0x38, 0x84, 0xff, 0xe0, 0x40, 0x82, 0xff, 0xf4, 0x7c, 0x00, 0x04, 0xac, 0x4c, 0x00, 0x01, 0x2c,
}

var remoteExecutionEnd = []byte{
	0xbb, 0xc1, 0x00, 0x2c, 0x80, 0x01, 0x00, 0x38, 0x7c, 0x08, 0x03, 0xa6, 0x38, 0x21, 0x00, 0x34, 0x4e, 0x80, 0x00, 0x20,
}

func TestRemoteExecutionPatchStart(t *testing.T) {
	ins := patches.RemoteExecutionPatchStart()
	test.ExpectEquality(t, len(ins), 24)

	b, err := assembler.Assemble(0x80008020, ins)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, remoteExecutionStart)
}

func TestRemoteExecutionPatchEnd(t *testing.T) {
	b, err := assembler.Assemble(1000, patches.RemoteExecutionPatchEnd())
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, remoteExecutionEnd)
}

func TestCallDisplayHudPatch(t *testing.T) {
	b, err := assembler.Assemble(uint32(stringDisplay.UpdateHintState), patches.CallDisplayHudPatch(stringDisplay))
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, []byte{
		0x3c, 0xa0, 0x41, 0x00, 0x38, 0xc0, 0x00, 0x00, 0x38, 0xe0, 0x00, 0x01, 0x39, 0x20, 0x00, 0x09, 0x90, 0xa1, 0x00, 0x10,
		0x98, 0xe1, 0x00, 0x14, 0x98, 0xc1, 0x00, 0x15, 0x98, 0xc1, 0x00, 0x16, 0x98, 0xe1, 0x00, 0x17, 0x91, 0x21, 0x00, 0x18,
		0x38, 0x61, 0x00, 0x1c, 0x3c, 0x80, 0x00, 0x00, 0x60, 0x84, 0x90, 0x00, 0x48, 0x2c, 0x73, 0x89, 0x38, 0x81, 0x00, 0x10,
		0x48, 0x03, 0x33, 0x6d,
	})
}

func TestAdjustItemAmountAndCapacity(t *testing.T) {
	ins, err := patches.AdjustItemAmountAndCapacityPatch(powerupFunctions, patches.Echoes, 10, 5)
	test.DemandSuccess(t, err)
	b, err := assembler.Assemble(0x80008020, ins)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, []byte{
		0x80, 0x7f, 0x15, 0x0c, 0x38, 0x80, 0x00, 0x0a, 0x38, 0xa0, 0x00, 0x05, 0x48, 0x06, 0xd8, 0xc5, 0x80, 0x7f, 0x15, 0x0c,
		0x38, 0x80, 0x00, 0x0a, 0x38, 0xa0, 0x00, 0x05, 0x48, 0x06, 0xd7, 0x25,
	})

	// negative delta calls decr_pickup only
	ins, err = patches.AdjustItemAmountAndCapacityPatch(powerupFunctions, patches.Echoes, 3, -2)
	test.DemandSuccess(t, err)
	b, err = assembler.Assemble(0x80008020, ins)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, []byte{
		0x80, 0x7f, 0x15, 0x0c, 0x38, 0x80, 0x00, 0x03, 0x38, 0xa0, 0x00, 0x02, 0x48, 0x06, 0xd6, 0x99,
	})

	// player state is at a different offset in the first game
	ins, err = patches.AdjustItemAmountAndCapacityPatch(powerupFunctions, patches.Prime1, 3, 1)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(ins), 8)
	w, err := ppc.Encode(ins[0], 0x80008020)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, uint32(0x807f08b8))

	_, err = patches.AdjustItemAmountAndCapacityPatch(powerupFunctions, patches.Corruption, 3, 1)
	test.ExpectSuccess(t, curated.Is(err, patches.UnsupportedGame))

	_, err = patches.AdjustItemAmountAndCapacityPatch(patches.PowerupFunctionsAddresses{}, patches.Echoes, 3, 1)
	test.ExpectSuccess(t, curated.Is(err, patches.MissingAddress))
}

func TestCreateRemoteExecutionBody(t *testing.T) {
	items, err := patches.AdjustItemAmountAndCapacityPatch(powerupFunctions, patches.Echoes, 3, 12)
	test.DemandSuccess(t, err)

	body := patches.CallDisplayHudPatch(stringDisplay)
	body = append(body, items...)

	addr, b, err := patches.CreateRemoteExecutionBody(stringDisplay, body)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, addr, uint32(stringDisplay.UpdateHintState)+0x60)
	test.ExpectBytes(t, b, []byte{
		0x3c, 0xa0, 0x41, 0x00, 0x38, 0xc0, 0x00, 0x00, 0x38, 0xe0, 0x00, 0x01, 0x39, 0x20, 0x00, 0x09, 0x90, 0xa1, 0x00, 0x10,
		0x98, 0xe1, 0x00, 0x14, 0x98, 0xc1, 0x00, 0x15, 0x98, 0xc1, 0x00, 0x16, 0x98, 0xe1, 0x00, 0x17, 0x91, 0x21, 0x00, 0x18,
		0x38, 0x61, 0x00, 0x1c, 0x3c, 0x80, 0x00, 0x00, 0x60, 0x84, 0x90, 0x00, 0x48, 0x2c, 0x73, 0x29, 0x38, 0x81, 0x00, 0x10,
		0x48, 0x03, 0x33, 0x0d, 0x80, 0x7f, 0x15, 0x0c, 0x38, 0x80, 0x00, 0x03, 0x38, 0xa0, 0x00, 0x0c, 0x48, 0x03, 0xd8, 0x25,
		0x80, 0x7f, 0x15, 0x0c, 0x38, 0x80, 0x00, 0x03, 0x38, 0xa0, 0x00, 0x0c, 0x48, 0x03, 0xd6, 0x85, 0xbb, 0xc1, 0x00, 0x2c,
		0x80, 0x01, 0x00, 0x38, 0x7c, 0x08, 0x03, 0xa6, 0x38, 0x21, 0x00, 0x34, 0x4e, 0x80, 0x00, 0x20,
	})

	// an empty body is just the tail
	_, b, err = patches.CreateRemoteExecutionBody(stringDisplay, nil)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, remoteExecutionEnd)
}

func TestApplyRemoteExecutionPatch(t *testing.T) {
	f := testFile(t, 0x80038020)

	err := f.Edit(func(s *dol.Session) error {
		return patches.ApplyRemoteExecutionPatch(stringDisplay, s)
	})
	test.DemandSuccess(t, err)

	// the pointer to the end of the head is relative to the load address
	start := append([]byte{}, remoteExecutionStart...)
	copy(start[0x3c:], []byte{0x3f, 0xc0, 0x80, 0x03, 0x63, 0xde, 0x80, 0x7c})

	expected := section(0, append(start, remoteExecutionEnd...))
	test.ExpectBytes(t, f.Bytes()[0x100:], expected)

	// the same patch again makes no difference
	err = f.Edit(func(s *dol.Session) error {
		return patches.ApplyRemoteExecutionPatch(stringDisplay, s)
	})
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, f.Bytes()[0x100:], expected)
}

func TestApplyRemoteExecutionBody(t *testing.T) {
	f := testFile(t, 0x80038020)

	err := f.Edit(func(s *dol.Session) error {
		return patches.ApplyRemoteExecutionBody(stringDisplay, patches.CallDisplayHudPatch(stringDisplay), s)
	})
	test.DemandSuccess(t, err)

	_, body, err := patches.CreateRemoteExecutionBody(stringDisplay, patches.CallDisplayHudPatch(stringDisplay))
	test.DemandSuccess(t, err)

	b := f.Bytes()[0x100:]
	test.ExpectBytes(t, b[0x60:0x60+len(body)], body)
	test.ExpectBytes(t, b[0x00:0x04], remoteExecutionStart[0x00:0x04])

	// the section is too small for a large body
	big := make([]ppc.Instruction, 100)
	for i := range big {
		big[i] = ppc.Nop()
	}
	err = f.Edit(func(s *dol.Session) error {
		return patches.ApplyRemoteExecutionBody(stringDisplay, big, s)
	})
	test.ExpectSuccess(t, curated.Is(err, dol.OutOfBounds))
	test.ExpectBytes(t, f.Bytes()[0x100:], b)
}

func TestReverseEnergyTankHeal(t *testing.T) {
	addrs := patches.DangerousEnergyTankAddresses{
		SmallNumberFloat: 0x1600,
		IncrPickup:       0x2000,
	}

	active := section(0x90, []byte{0xc0, 0x02, 0x01, 0x00, 0xd0, 0x1e, 0x00, 0x14, 0x60, 0x00, 0x00, 0x00, 0x60, 0x00, 0x00, 0x00})
	inactive := section(0x90, []byte{0x7f, 0xc3, 0xf3, 0x78, 0x38, 0x80, 0x00, 0x29, 0x38, 0xa0, 0x27, 0x0f, 0x4b, 0xff, 0xff, 0x65})

	for _, c := range []struct {
		first    bool
		second   bool
		expected []byte
	}{
		{first: false, second: true, expected: active},
		{first: true, second: false, expected: inactive},
	} {
		f := testFile(t, 0x2000)
		err := f.Edit(func(s *dol.Session) error {
			err := patches.ApplyReverseEnergyTankHealPatch(0x1500, addrs, c.first, patches.Echoes, s)
			if err != nil {
				return err
			}
			return patches.ApplyReverseEnergyTankHealPatch(0x1500, addrs, c.second, patches.Echoes, s)
		})
		test.ExpectSuccess(t, err)
		test.ExpectBytes(t, f.Bytes()[0x100:], c.expected, c.second)
	}

	f := testFile(t, 0x2000)
	err := f.Edit(func(s *dol.Session) error {
		return patches.ApplyReverseEnergyTankHealPatch(0x1500, addrs, true, patches.Prime1, s)
	})
	test.ExpectSuccess(t, curated.Is(err, patches.UnsupportedGame))
}

func TestEnergyTankCapacity(t *testing.T) {
	f := testFile(t, 0x80003100)

	addrs := patches.EnergyTankCapacityAddresses{
		EnergyTankCapacity: 0x80003180,
		BaseHealthCapacity: 0x80003184,
	}

	err := f.Edit(func(s *dol.Session) error {
		return patches.ApplyEnergyTankCapacityPatch(addrs, 100, 99, s)
	})
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, f.Bytes()[0x180:0x188], []byte{0x42, 0xc8, 0x00, 0x00, 0x42, 0xc6, 0x00, 0x00})

	err = f.Edit(func(s *dol.Session) error {
		return patches.ApplyEnergyTankCapacityPatch(patches.EnergyTankCapacityAddresses{}, 100, 99, s)
	})
	test.ExpectSuccess(t, curated.Is(err, patches.MissingAddress))
}

func TestHudMessage(t *testing.T) {
	b, err := patches.EncodeHudMessage("Hi", 200)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, []byte{0x00, 0x48, 0x00, 0x69, 0x00, 0x00})

	// exactly the maximum size
	_, err = patches.EncodeHudMessage("abcd", 10)
	test.ExpectSuccess(t, err)
	_, err = patches.EncodeHudMessage("abcde", 10)
	test.ExpectSuccess(t, curated.Is(err, patches.MessageTooLong))

	f := testFile(t, 0x9000)
	err = f.Edit(func(s *dol.Session) error {
		return patches.ApplyHudMessage(stringDisplay, "Hi", s)
	})
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, f.Bytes()[0x100:0x108], []byte{0x00, 0x48, 0x00, 0x69, 0x00, 0x00, 0x00, 0x00})
}

func TestConstantReturn(t *testing.T) {
	inj := patches.ConstantReturnPatch(0x80003100, true)
	b, err := inj.Assemble()
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, []byte{0x38, 0x60, 0x00, 0x01, 0x4e, 0x80, 0x00, 0x20})
	test.ExpectEquality(t, inj.Size(), uint32(8))

	inj = patches.ConstantReturnPatch(0x80003100, false)
	b, err = inj.Assemble()
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, b, []byte{0x38, 0x60, 0x00, 0x00, 0x4e, 0x80, 0x00, 0x20})
}

func TestComparisonThreshold(t *testing.T) {
	f := testFile(t, 0x80003100)

	err := f.Edit(func(s *dol.Session) error {
		return s.WriteInstructions(0x80003100, []ppc.Instruction{
			ppc.Cmpwi(ppc.R3, 5),
			ppc.Cmplwi(ppc.R4, 0x10).InCR(7),
			ppc.Li(ppc.R3, ppc.Imm(0)),
		})
	})
	test.DemandSuccess(t, err)

	err = f.Edit(func(s *dol.Session) error {
		inj, err := patches.ComparisonThresholdPatch(s, 0x80003100, 10)
		if err != nil {
			return err
		}
		if err := patches.ApplyInjections(s, inj); err != nil {
			return err
		}

		inj, err = patches.ComparisonThresholdPatch(s, 0x80003104, 0x20)
		if err != nil {
			return err
		}
		if err := patches.ApplyInjections(s, inj); err != nil {
			return err
		}

		// not a comparison
		_, err = patches.ComparisonThresholdPatch(s, 0x80003108, 1)
		test.ExpectSuccess(t, curated.Is(err, patches.NotAComparison))

		// out of range for an unsigned comparison
		_, err = patches.ComparisonThresholdPatch(s, 0x80003104, -1)
		test.ExpectFailure(t, err)

		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, f.Bytes()[0x100:0x108], []byte{0x2c, 0x03, 0x00, 0x0a, 0x2b, 0x84, 0x00, 0x20})
}

func TestTrampoline(t *testing.T) {
	f := testFile(t, 0x80003100)
	test.DemandSuccess(t, f.SetFreeSpace(0x80003180, 0x800031c0))

	err := f.Edit(func(s *dol.Session) error {
		return s.WriteInstructions(0x80003110, []ppc.Instruction{
			ppc.Addi(ppc.R3, ppc.R3, ppc.Imm(1)),
			ppc.Bl(ppc.Absolute(0x80003100)),
			ppc.Addi(ppc.R3, ppc.R3, ppc.Imm(2)),
		})
	})
	test.DemandSuccess(t, err)

	err = f.Edit(func(s *dol.Session) error {
		inj, err := patches.ApplyTrampoline(s, 0x80003110, []ppc.Instruction{ppc.Li(ppc.R4, ppc.Imm(7))})
		test.DemandSuccess(t, err)
		test.DemandEquality(t, len(inj), 2)
		test.ExpectEquality(t, inj[0].Address, uint32(0x80003180))

		// the relocated instruction is a branch
		_, err = patches.ApplyTrampoline(s, 0x80003114, []ppc.Instruction{ppc.Li(ppc.R4, ppc.Imm(8))})
		test.DemandSuccess(t, err)

		// 0x28 bytes remain. nine body words plus the relocated instruction
		// and the branch back need 0x2c bytes
		test.ExpectEquality(t, s.Allocator().Remaining(), uint32(0x28))
		_, err = patches.ApplyTrampoline(s, 0x80003118, make([]ppc.Instruction, 9))
		test.ExpectSuccess(t, curated.Has(err, freespace.OutOfSpace), err)
		test.ExpectSuccess(t, curated.Is(err, patches.TrampolineFailed))

		return nil
	})
	test.DemandSuccess(t, err)

	b := f.Bytes()

	// hooks. the failed trampoline leaves its hook unchanged
	test.ExpectBytes(t, b[0x110:0x118], []byte{0x48, 0x00, 0x00, 0x70, 0x48, 0x00, 0x00, 0x78})
	test.ExpectBytes(t, b[0x118:0x11c], []byte{0x38, 0x63, 0x00, 0x02})

	// the first body. li r4,7; addi r3,r3,1; b 0x80003114
	test.ExpectBytes(t, b[0x180:0x18c], []byte{0x38, 0x80, 0x00, 0x07, 0x38, 0x63, 0x00, 0x01, 0x4b, 0xff, 0xff, 0x8c})

	// the second body. li r4,8; bl 0x80003100; b 0x80003118
	test.ExpectBytes(t, b[0x18c:0x198], []byte{0x38, 0x80, 0x00, 0x08, 0x4b, 0xff, 0xff, 0x71, 0x4b, 0xff, 0xff, 0x84})
}

func TestTrampolineAbsoluteBranch(t *testing.T) {
	f := testFile(t, 0x80003100)
	test.DemandSuccess(t, f.SetFreeSpace(0x80003180, 0x800031c0))

	err := f.Edit(func(s *dol.Session) error {
		// ba 0x100
		err := s.WritePatch(dol.Patch{Address: 0x80003110, Bytes: []byte{0x48, 0x00, 0x01, 0x02}})
		test.DemandSuccess(t, err)

		_, err = patches.ApplyTrampoline(s, 0x80003110, []ppc.Instruction{ppc.Li(ppc.R4, ppc.Imm(7))})
		test.ExpectSuccess(t, curated.Has(err, ppc.DecodingError), err)

		// nothing was allocated for the failed trampoline
		test.ExpectEquality(t, s.Allocator().Remaining(), uint32(0x40))
		return nil
	})
	test.DemandSuccess(t, err)

	test.ExpectBytes(t, f.Bytes()[0x110:0x114], []byte{0x48, 0x00, 0x01, 0x02})
}
