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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// Packages that want callers to react to a particular failure export the
// pattern as a constant. For example, the dol package exports:
//
//	const AddressNotMapped = "dol: address not mapped: %#08x"
//
// and a caller can check for it with the Is() or Has() functions:
//
//	_, err := f.OffsetForAddress(0x80003000)
//	if curated.Is(err, dol.AddressNotMapped) {
//		...
//	}
//
// Is() only checks the outermost error. Has() checks the whole chain, which
// is useful when the error has been wrapped by another curated error:
//
//	err = curated.Errorf("patches: %v", err)
//	curated.Is(err, dol.AddressNotMapped)  // false
//	curated.Has(err, dol.AddressNotMapped) // true
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example, a dol error wrapped in the dol
// pattern:
//
//	err := curated.Errorf("dol: %v", curated.Errorf("dol: section overlap"))
//
// will print as "dol: section overlap" and not "dol: dol: section overlap".
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ": ".
//
// Curated errors also implement Unwrap() so the standard library errors.Is()
// and errors.As() functions see through them to any wrapped error.
package curated
