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
	"github.com/jetsetilly/dolpatch/ppc"
)

// AdjustItemAmountAndCapacityPatch returns the instructions that change the
// amount of an item held by the player. A positive delta increases both the
// capacity and the amount. A negative delta decreases the amount only.
//
// The instructions expect r31 to hold the hint state object, as it does in
// the body of a remote execution patch.
func AdjustItemAmountAndCapacityPatch(addrs PowerupFunctionsAddresses, game Game, item int, delta int) ([]ppc.Instruction, error) {
	offset, err := game.playerStateOffset()
	if err != nil {
		return nil, err
	}

	call := func(fn Address, amount int) []ppc.Instruction {
		return []ppc.Instruction{
			ppc.Lwz(ppc.R3, offset, ppc.R31),
			ppc.Li(ppc.R4, ppc.Imm(int64(item))),
			ppc.Li(ppc.R5, ppc.Imm(int64(amount))),
			ppc.Bl(ppc.Absolute(uint32(fn))),
		}
	}

	if delta < 0 {
		if err := requireAddress("decr_pickup", addrs.DecrPickup); err != nil {
			return nil, err
		}
		return call(addrs.DecrPickup, -delta), nil
	}

	if err := requireAddress("add_power_up", addrs.AddPowerUp); err != nil {
		return nil, err
	}
	if err := requireAddress("incr_pickup", addrs.IncrPickup); err != nil {
		return nil, err
	}

	ins := call(addrs.AddPowerUp, delta)
	ins = append(ins, call(addrs.IncrPickup, delta)...)
	return ins, nil
}
