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

package prefs

import (
	"strings"

	"github.com/xyproto/env/v2"
)

// EnvironmentPrefix is prepended to the name of every environment variable
// consulted by Disk.Load().
const EnvironmentPrefix = "DOLPATCH_"

// EnvironmentName returns the name of the environment variable that
// corresponds to a prefs key. The key "patch.backup" becomes
// "DOLPATCH_PATCH_BACKUP".
func EnvironmentName(key string) string {
	n := strings.ToUpper(key)
	n = strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(n)
	return EnvironmentPrefix + n
}

// reloadEnvironment refreshes the environment values cached by the env
// package. changes made to the environment since the previous call are
// otherwise not seen
func reloadEnvironment() {
	env.Load()
}

// environmentValue returns the value of the environment variable for the
// prefs key. the empty string is treated the same as an unset variable
func environmentValue(key string) (string, bool) {
	v := env.Str(EnvironmentName(key))
	return v, v != ""
}
