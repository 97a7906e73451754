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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas, with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments.
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("apply", "disasm", "info")
//	_, _ = md.Parse()
//
// Once the arguments have been parsed, the selected mode is returned by
// Mode() and the non-flag arguments by RemainingArgs() or GetArg(). A mode
// then starts a new set of flags with NewMode() and calls Parse() again:
//
//	switch md.Mode() {
//	case "DISASM":
//		md.NewMode()
//		start := md.AddAddress("start", 0, "first address to disassemble")
//		p, err := md.Parse()
//		switch p {
//		case ParseError:
//			return err
//		case ParseHelp:
//			return nil
//		}
//		disasm(md.GetArg(0), *start)
//	}
//
// For simplicity, all sub-mode comparisons are case insensitive. The first
// sub-mode is the default mode and is selected if the first argument after
// the flags is not a recognised mode.
//
// Addresses given to AddAddress() flags are parsed with base prefix detection
// so "0x80038020" and "2147713056" are equivalent.
package modalflag
