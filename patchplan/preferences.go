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
	"strings"

	"github.com/jetsetilly/dolpatch/paths"
	"github.com/jetsetilly/dolpatch/prefs"
)

// Preferences for applying patch plans. Every preference can be overridden
// by an environment variable (see prefs.EnvironmentName()) or on the command
// line.
type Preferences struct {
	dsk *prefs.Disk

	// backup the DOL file before the first change
	Backup prefs.Bool

	// echo the log to stdout
	EchoLog prefs.Bool

	// the game used to find an address table when the plan does not name one
	Game prefs.String
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}

	err := p.Backup.Set(true)
	if err != nil {
		return nil, err
	}

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("backup", &p.Backup)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("echo_log", &p.EchoLog)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("game", &p.Game)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// AddressTablePath returns the path of the address table for the game named
// by the Game preference. The address table is in the addresses resource
// directory and is named after the game. For example:
//
//	.dolpatch/addresses/echoes.yaml
func (p *Preferences) AddressTablePath() (string, error) {
	game := strings.ToLower(strings.TrimSpace(p.Game.String()))
	if game == "" {
		return "", nil
	}
	return paths.ResourcePath("addresses", game+".yaml")
}
