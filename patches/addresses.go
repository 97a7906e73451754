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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/dolpatch/curated"
	"gopkg.in/yaml.v3"
)

// Address is a load address in the executable. In YAML it can be written as
// an integer or as a string. Strings can have a 0x prefix.
type Address uint32

func (a Address) String() string {
	return fmt.Sprintf("%#08x", uint32(a))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (a *Address) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: address must be a scalar", value.Line)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(value.Value), 0, 32)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*a = Address(v)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (a Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// StringDisplayAddresses are the addresses needed to display a message on the
// HUD and to hijack the update_hint_state function.
type StringDisplayAddresses struct {
	UpdateHintState          Address `yaml:"update_hint_state"`
	MessageReceiverStringRef Address `yaml:"message_receiver_string_ref"`
	WStringConstructor       Address `yaml:"wstring_constructor"`
	DisplayHudMemo           Address `yaml:"display_hud_memo"`
	MaxMessageSize           int     `yaml:"max_message_size"`
}

// PowerupFunctionsAddresses are the functions that change the inventory of
// the player.
type PowerupFunctionsAddresses struct {
	AddPowerUp Address `yaml:"add_power_up"`
	IncrPickup Address `yaml:"incr_pickup"`
	DecrPickup Address `yaml:"decr_pickup"`
}

// DangerousEnergyTankAddresses are the addresses needed by
// ApplyReverseEnergyTankHealPatch().
type DangerousEnergyTankAddresses struct {
	SmallNumberFloat Address `yaml:"small_number_float"`
	IncrPickup       Address `yaml:"incr_pickup"`
}

// EnergyTankCapacityAddresses are the locations of the floating point
// constants that decide how much health the player has.
type EnergyTankCapacityAddresses struct {
	EnergyTankCapacity Address `yaml:"energy_tank_capacity"`
	BaseHealthCapacity Address `yaml:"base_health_capacity"`
}

// FreeSpace is a region of the executable that can be overwritten by new
// code. End is the address immediately after the region.
type FreeSpace struct {
	Start Address `yaml:"start"`
	End   Address `yaml:"end"`
}

// AddressTable is the complete set of addresses for one build of a game.
type AddressTable struct {
	Game  Game   `yaml:"game"`
	Build string `yaml:"build"`

	// the value of r2. small data area 2 is used for constants
	SDA2Base Address `yaml:"sda2_base"`

	StringDisplay       StringDisplayAddresses       `yaml:"string_display"`
	PowerupFunctions    PowerupFunctionsAddresses    `yaml:"powerup_functions"`
	DangerousEnergyTank DangerousEnergyTankAddresses `yaml:"dangerous_energy_tank"`
	EnergyTankCapacity  EnergyTankCapacityAddresses  `yaml:"energy_tank_capacity"`
	FreeSpace           FreeSpace                    `yaml:"free_space"`
}

func (tbl AddressTable) String() string {
	if tbl.Build == "" {
		return tbl.Game.String()
	}
	return fmt.Sprintf("%s (%s)", tbl.Game, tbl.Build)
}

// ParseAddressTable reads an address table in YAML format. Unknown fields are
// an error.
func ParseAddressTable(r io.Reader) (*AddressTable, error) {
	var tbl AddressTable

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tbl); err != nil {
		return nil, curated.Errorf(AddressTableErr, err)
	}

	return &tbl, nil
}

// LoadAddressTable reads an address table from the named file.
func LoadAddressTable(path string) (*AddressTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(AddressTableErr, err)
	}
	defer f.Close()

	return ParseAddressTable(f)
}

// Save the address table to the named file in YAML format.
func (tbl *AddressTable) Save(path string) error {
	b, err := yaml.Marshal(tbl)
	if err != nil {
		return curated.Errorf(AddressTableErr, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return curated.Errorf(AddressTableErr, err)
	}
	return nil
}

// requireAddress returns an error if the address is zero.
func requireAddress(name string, a Address) error {
	if a == 0 {
		return curated.Errorf(MissingAddress, name)
	}
	return nil
}
