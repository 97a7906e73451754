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
	"strings"

	"github.com/jetsetilly/dolpatch/curated"
	"gopkg.in/yaml.v3"
)

// Game identifies one of the supported games.
type Game int

// List of supported games.
const (
	Prime1 Game = iota
	Echoes
	Corruption
)

func (g Game) String() string {
	switch g {
	case Prime1:
		return "Prime1"
	case Echoes:
		return "Echoes"
	case Corruption:
		return "Corruption"
	}
	return "unknown game"
}

// ParseGame is the reverse of Game.String(). Case is ignored.
func ParseGame(s string) (Game, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prime1", "prime":
		return Prime1, nil
	case "echoes", "prime2":
		return Echoes, nil
	case "corruption", "prime3":
		return Corruption, nil
	}
	return Prime1, curated.Errorf(UnknownGame, s)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (g *Game) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseGame(s)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (g Game) MarshalYAML() (interface{}, error) {
	return g.String(), nil
}

// the offset of the player state pointer in the object that is in r31 when
// the remote execution body runs
func (g Game) playerStateOffset() (int64, error) {
	switch g {
	case Prime1:
		return 0x8b8, nil
	case Echoes:
		return 0x150c, nil
	}
	return 0, curated.Errorf(UnsupportedGame, g, "player state")
}

// the item number of the energy tank
func (g Game) energyTankItem() (int64, error) {
	switch g {
	case Echoes:
		return 0x29, nil
	}
	return 0, curated.Errorf(UnsupportedGame, g, "energy tanks")
}

// the offset from incr_pickup of the call that heals the player when an energy
// tank is collected
func (g Game) energyTankHealOffset() (uint32, error) {
	switch g {
	case Echoes:
		return 0x90, nil
	}
	return 0, curated.Errorf(UnsupportedGame, g, "energy tank heal")
}
