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

package patchplan

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/digest"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/patches"
	"github.com/jetsetilly/dolpatch/ppc"
)

// Report is the result of applying a plan.
type Report struct {
	Session string
	Table   string
	Patches []dol.Patch

	// chained digest of the patches. applying the same plan to the same
	// address table always produces the same digest
	Digest string
}

// Size returns the total number of bytes written.
func (rep Report) Size() int {
	var n int
	for _, p := range rep.Patches {
		n += len(p.Bytes)
	}
	return n
}

func (rep Report) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("session %s: %s: %d patches, %s written\n", rep.Session, rep.Table,
		len(rep.Patches), units.BytesSize(float64(rep.Size()))))
	s.WriteString(fmt.Sprintf("digest: %s\n", rep.Digest))
	for _, p := range rep.Patches {
		s.WriteString(fmt.Sprintf("  %#08x %d bytes\n", p.Address, len(p.Bytes)))
	}
	return s.String()
}

// Apply every patch in the plan to the file in a single editing session. The
// file must be editable. If the address table has a free space region then
// it replaces the free space region of the file.
//
// The file is unchanged if an error is returned. This includes the free space
// region.
func Apply(f *dol.File, tbl *patches.AddressTable, pln *Plan) (Report, error) {
	rep := Report{Table: tbl.String()}

	if err := pln.Validate(); err != nil {
		return rep, err
	}

	prevStart, prevEnd, hadFreeSpace := f.FreeSpace()
	restoreFreeSpace := func() {
		if hadFreeSpace {
			// the region was accepted before so it will be accepted again
			_ = f.SetFreeSpace(prevStart, prevEnd)
		} else {
			f.ClearFreeSpace()
		}
	}

	if tbl.FreeSpace.End > tbl.FreeSpace.Start {
		err := f.SetFreeSpace(uint32(tbl.FreeSpace.Start), uint32(tbl.FreeSpace.End))
		if err != nil {
			return rep, curated.Errorf(PlanError, err)
		}
	}

	err := f.Edit(func(s *dol.Session) error {
		for i, e := range pln.Patches {
			if err := applyEntry(s, tbl, e); err != nil {
				return curated.Errorf(InvalidEntry, i, e.Kind, err)
			}
			logger.Logf(f.Logging(), "patchplan", "applied %s", e)
		}
		rep.Session = s.ID()
		rep.Patches = s.Patches()

		dig := digest.NewPatches()
		dig.AddAll(rep.Patches)
		rep.Digest = dig.Hash()

		return nil
	})
	if err != nil {
		restoreFreeSpace()
		return Report{Table: rep.Table}, err
	}

	return rep, nil
}

func applyEntry(s *dol.Session, tbl *patches.AddressTable, e Entry) error {
	switch e.Kind {
	case RemoteExecution:
		var body []ppc.Instruction
		if e.Message != "" {
			if err := patches.ApplyHudMessage(tbl.StringDisplay, e.Message, s); err != nil {
				return err
			}
			body = append(body, patches.CallDisplayHudPatch(tbl.StringDisplay)...)
		}
		for _, it := range e.Items {
			ins, err := patches.AdjustItemAmountAndCapacityPatch(tbl.PowerupFunctions, tbl.Game, it.Item, it.Delta)
			if err != nil {
				return err
			}
			body = append(body, ins...)
		}
		return patches.ApplyRemoteExecutionBody(tbl.StringDisplay, body, s)

	case EnergyTankHeal:
		return patches.ApplyReverseEnergyTankHealPatch(tbl.SDA2Base, tbl.DangerousEnergyTank, e.Active, tbl.Game, s)

	case EnergyTankCapacity:
		return patches.ApplyEnergyTankCapacityPatch(tbl.EnergyTankCapacity, e.Capacity, e.Base, s)

	case Threshold:
		inj, err := patches.ComparisonThresholdPatch(s, uint32(e.Address), e.Value)
		if err != nil {
			return err
		}
		return patches.ApplyInjections(s, inj)

	case ConstantReturn:
		return patches.ApplyInjections(s, patches.ConstantReturnPatch(uint32(e.Address), e.Return))

	case Trampoline:
		body, err := decodeWords(e.Words)
		if err != nil {
			return err
		}
		_, err = patches.ApplyTrampoline(s, uint32(e.Address), body)
		return err
	}

	return fmt.Errorf(UnknownKind)
}

// decodeWords decodes instruction words. Branch targets are kept relative to
// the branch instruction so that the words can be assembled at any address.
func decodeWords(words []patches.Address) ([]ppc.Instruction, error) {
	body := make([]ppc.Instruction, 0, len(words))

	for i, w := range words {
		pc := uint32(i * 4)

		ins, err := ppc.Decode(uint32(w), pc)
		if err != nil {
			return nil, err
		}

		if defn, ok := ins.Definition(); ok {
			switch defn.Form {
			case ppc.IForm, ppc.BForm:
				ins.Target = ppc.Relative(int32(ins.Target.Value - pc))
			}
		}

		body = append(body, ins)
	}

	return body, nil
}
