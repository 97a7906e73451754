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

// Package paths contains functions to prepare paths to dolpatch resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to the address table for a game.
//
//	d, err := paths.ResourcePath("addresses", "echoes.yaml")
//
// For development builds the base path is ".dolpatch" in the current
// directory. For release builds (built with the "release" tag) the base path
// is the "dolpatch" directory in the user's configuration directory, as
// returned by os.UserConfigDir().
//
// The directory part of the resource path is created if it does not already
// exist.
package paths
