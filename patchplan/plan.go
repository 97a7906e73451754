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
	"io"
	"os"
	"path/filepath"

	"github.com/jetsetilly/dolpatch/curated"
	"github.com/jetsetilly/dolpatch/patches"
	"gopkg.in/yaml.v3"
)

// Sentinal error patterns.
const (
	PlanError    = "patchplan: %v"
	InvalidEntry = "patchplan: entry %d (%s): %v"
	UnknownKind  = "unknown kind"
)

// Kind identifies the type of patch in a plan entry.
type Kind string

// List of patch kinds.
const (
	RemoteExecution    Kind = "remote-execution"
	EnergyTankHeal     Kind = "energy-tank-heal"
	EnergyTankCapacity Kind = "energy-tank-capacity"
	Threshold          Kind = "threshold"
	ConstantReturn     Kind = "constant-return"
	Trampoline         Kind = "trampoline"
)

// Item is a change to the inventory of the player.
type Item struct {
	Item  int `yaml:"item"`
	Delta int `yaml:"delta"`
}

// Entry is a single patch in a plan. The fields used depend on the kind.
type Entry struct {
	Kind Kind `yaml:"kind"`

	// remote-execution
	Message string `yaml:"message,omitempty"`
	Items   []Item `yaml:"items,omitempty"`

	// energy-tank-heal
	Active bool `yaml:"active,omitempty"`

	// energy-tank-capacity
	Capacity float32 `yaml:"capacity,omitempty"`
	Base     float32 `yaml:"base,omitempty"`

	// threshold, constant-return and trampoline
	Address patches.Address `yaml:"address,omitempty"`

	// threshold
	Value int64 `yaml:"value,omitempty"`

	// constant-return
	Return bool `yaml:"return,omitempty"`

	// trampoline. instruction words are written in the same way as addresses.
	// branches between words are relative to the word containing the branch
	Words []patches.Address `yaml:"words,omitempty"`
}

func (e Entry) String() string {
	switch e.Kind {
	case RemoteExecution:
		return fmt.Sprintf("%s (%d items)", e.Kind, len(e.Items))
	case EnergyTankHeal:
		return fmt.Sprintf("%s (active=%v)", e.Kind, e.Active)
	case EnergyTankCapacity:
		return fmt.Sprintf("%s (%.1f per tank, %.1f base)", e.Kind, e.Capacity, e.Base)
	case Threshold:
		return fmt.Sprintf("%s %s = %d", e.Kind, e.Address, e.Value)
	case ConstantReturn:
		return fmt.Sprintf("%s %s = %v", e.Kind, e.Address, e.Return)
	case Trampoline:
		return fmt.Sprintf("%s %s (%d words)", e.Kind, e.Address, len(e.Words))
	}
	return string(e.Kind)
}

// validate the fields required by the kind of entry.
func (e Entry) validate() error {
	switch e.Kind {
	case RemoteExecution:
		if len(e.Items) == 0 && e.Message == "" {
			return fmt.Errorf("no message or items")
		}
	case EnergyTankHeal:
	case EnergyTankCapacity:
		if e.Capacity <= 0 || e.Base <= 0 {
			return fmt.Errorf("capacity and base must be positive")
		}
	case Threshold, ConstantReturn:
		if e.Address == 0 {
			return fmt.Errorf("address is required")
		}
	case Trampoline:
		if e.Address == 0 {
			return fmt.Errorf("address is required")
		}
		if len(e.Words) == 0 {
			return fmt.Errorf("no words")
		}
	default:
		return fmt.Errorf(UnknownKind)
	}
	return nil
}

// Plan is a list of patches to apply in a single session.
type Plan struct {
	// path to the address table. empty if the address table is to be
	// supplied some other way
	Addresses string `yaml:"addresses,omitempty"`

	// backup the DOL file before patching
	Backup bool `yaml:"backup,omitempty"`

	Patches []Entry `yaml:"patches"`
}

// Validate every entry in the plan.
func (pln *Plan) Validate() error {
	if len(pln.Patches) == 0 {
		return curated.Errorf(PlanError, "no patches")
	}
	for i, e := range pln.Patches {
		if err := e.validate(); err != nil {
			return curated.Errorf(InvalidEntry, i, e.Kind, err)
		}
	}
	return nil
}

// Parse a plan in YAML format. The plan is validated before it is returned.
func Parse(r io.Reader) (*Plan, error) {
	var pln Plan

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pln); err != nil {
		return nil, curated.Errorf(PlanError, err)
	}

	if err := pln.Validate(); err != nil {
		return nil, err
	}

	return &pln, nil
}

// Load the plan from the named file. A relative address table path is made
// relative to the directory of the plan.
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, curated.Errorf(PlanError, err)
	}
	defer f.Close()

	pln, err := Parse(f)
	if err != nil {
		return nil, err
	}

	if pln.Addresses != "" && !filepath.IsAbs(pln.Addresses) {
		pln.Addresses = filepath.Join(filepath.Dir(path), pln.Addresses)
	}

	return pln, nil
}
