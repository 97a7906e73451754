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

// Package patchplan reads and applies patch plans. A patch plan is a YAML file
// listing the patches to apply to a DOL file and the parameters of each
// patch. For example:
//
//	addresses: echoes-ntsc.yaml
//	backup: true
//	patches:
//	  - kind: remote-execution
//	    message: "Received Missile Expansion"
//	    items:
//	      - item: 44
//	        delta: 5
//	  - kind: energy-tank-heal
//	    active: true
//	  - kind: constant-return
//	    address: 0x80012345
//	    return: true
//
// The addresses field names the address table (see the patches package) for
// the game build being patched. A relative path is relative to the directory
// of the plan.
//
// Every patch in the plan is applied in a single editing session. If any
// patch fails then nothing is written to the DOL file.
package patchplan
