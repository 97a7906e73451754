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
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/patches"
	"github.com/jetsetilly/dolpatch/test"
)

const echoesTable = `
game: echoes
build: test
sda2_base: 0x1500
string_display:
  update_hint_state: 0x80038020
  message_receiver_string_ref: "0x9000"
  wstring_constructor: 0x802ff3dc
  display_hud_memo: 0x8006b3c8
  max_message_size: 200
powerup_functions:
  add_power_up: 0x800758f0
  incr_pickup: 0x80075760
  decr_pickup: 2147964612
free_space:
  start: 0x80003100
  end: 0x80003200
`

func TestParseAddressTable(t *testing.T) {
	tbl, err := patches.ParseAddressTable(strings.NewReader(echoesTable))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, tbl.Game, patches.Echoes)
	test.ExpectEquality(t, tbl.String(), "Echoes (test)")
	test.ExpectEquality(t, tbl.SDA2Base, patches.Address(0x1500))
	test.ExpectEquality(t, tbl.StringDisplay, stringDisplay)
	test.ExpectEquality(t, tbl.PowerupFunctions, powerupFunctions)
	test.ExpectEquality(t, tbl.FreeSpace.End, patches.Address(0x80003200))

	// missing sections are zero
	test.ExpectEquality(t, tbl.EnergyTankCapacity, patches.EnergyTankCapacityAddresses{})
}

func TestAddressTableErrors(t *testing.T) {
	for _, s := range []string{
		"game: metroid\n",
		"game: echoes\nunknown_field: 1\n",
		"game: echoes\nsda2_base: 0x100000000\n",
		"game: echoes\nsda2_base: [1, 2]\n",
		"game: echoes\nsda2_base: nonsense\n",
	} {
		_, err := patches.ParseAddressTable(strings.NewReader(s))
		test.ExpectFailure(t, err, s)
		test.ExpectSuccess(t, curated.Is(err, patches.AddressTableErr), s)
	}
}

func TestSaveAddressTable(t *testing.T) {
	tbl, err := patches.ParseAddressTable(strings.NewReader(echoesTable))
	test.DemandSuccess(t, err)

	pth := filepath.Join(t.TempDir(), "echoes.yaml")
	test.DemandSuccess(t, tbl.Save(pth))

	reloaded, err := patches.LoadAddressTable(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, *reloaded, *tbl)
}

func TestParseGame(t *testing.T) {
	for _, c := range []struct {
		s string
		g patches.Game
	}{
		{s: "Prime1", g: patches.Prime1},
		{s: "echoes", g: patches.Echoes},
		{s: " PRIME3 ", g: patches.Corruption},
	} {
		g, err := patches.ParseGame(c.s)
		test.ExpectSuccess(t, err, c.s)
		test.ExpectEquality(t, g, c.g, c.s)
	}

	_, err := patches.ParseGame("zelda")
	test.ExpectSuccess(t, curated.Is(err, patches.UnknownGame))
}
