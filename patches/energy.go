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
	"encoding/binary"
	"math"

	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/ppc"
)

// the amount of health given by the heal call in incr_pickup
const energyTankHeal = 9999

// ApplyReverseEnergyTankHealPatch changes what happens when an energy tank is
// collected. When active, collecting an energy tank sets the health of the
// player to the small number at small_number_float instead of healing. When
// not active, the original heal is restored.
func ApplyReverseEnergyTankHealPatch(sda2Base Address, addrs DangerousEnergyTankAddresses, active bool, game Game, s *dol.Session) error {
	offset, err := game.energyTankHealOffset()
	if err != nil {
		return err
	}
	if err := requireAddress("incr_pickup", addrs.IncrPickup); err != nil {
		return err
	}

	var ins []ppc.Instruction

	if active {
		ins = []ppc.Instruction{
			ppc.Lfs(ppc.F0, int64(addrs.SmallNumberFloat)-int64(sda2Base), ppc.RTOC),
			ppc.Stfs(ppc.F0, 0x14, ppc.R30),
			ppc.Nop(),
			ppc.Nop(),
		}
	} else {
		item, err := game.energyTankItem()
		if err != nil {
			return err
		}
		ins = []ppc.Instruction{
			ppc.Mr(ppc.R3, ppc.R30),
			ppc.Li(ppc.R4, ppc.Imm(item)),
			ppc.Li(ppc.R5, ppc.Imm(energyTankHeal)),
			ppc.Bl(ppc.Absolute(uint32(addrs.IncrPickup))),
		}
	}

	return ApplyInjections(s, Injection{
		Address:      uint32(addrs.IncrPickup) + offset,
		Instructions: ins,
	})
}

// ApplyEnergyTankCapacityPatch sets the amount of health given by each energy
// tank and the health of the player without any energy tanks.
func ApplyEnergyTankCapacityPatch(addrs EnergyTankCapacityAddresses, capacity float32, base float32, s *dol.Session) error {
	if err := requireAddress("energy_tank_capacity", addrs.EnergyTankCapacity); err != nil {
		return err
	}
	if err := requireAddress("base_health_capacity", addrs.BaseHealthCapacity); err != nil {
		return err
	}

	for _, p := range []struct {
		addr Address
		v    float32
	}{
		{addr: addrs.EnergyTankCapacity, v: capacity},
		{addr: addrs.BaseHealthCapacity, v: base},
	} {
		b := binary.BigEndian.AppendUint32(nil, math.Float32bits(p.v))
		if err := s.WritePatch(dol.Patch{Address: uint32(p.addr), Bytes: b}); err != nil {
			return err
		}
	}

	return nil
}
