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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/dolpatch/prefs"
	"github.com/jetsetilly/dolpatch/test"
)

func cmpPrefFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading prefs file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("TRUE"))
	test.ExpectSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "test :: true\ntestB :: true\n")

	test.ExpectSuccess(t, w.Set("nonsense"))
	test.ExpectEquality(t, w.Get().(bool), false)
	test.ExpectFailure(t, w.Set(10))
}

func TestIntAndString(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("region.start", &n))
	test.ExpectSuccess(t, dsk.Add("game", &s))

	// hexadecimal strings are accepted by the Int type
	test.ExpectSuccess(t, n.Set("0x80003100"))
	test.ExpectEquality(t, n.Get().(int), 0x80003100)
	test.ExpectFailure(t, n.Set("not a number"))

	test.ExpectSuccess(t, s.Set("Echoes"))
	test.ExpectSuccess(t, dsk.Save())
	cmpPrefFile(t, fn, "game :: Echoes\nregion.start :: 2147496192\n")

	// reset and reload from disk
	test.ExpectSuccess(t, dsk.Reset())
	test.ExpectEquality(t, n.Get().(int), 0)
	test.ExpectEquality(t, s.String(), "")

	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, n.Get().(int), 0x80003100)
	test.ExpectEquality(t, s.String(), "Echoes")
}

func TestIllegalKey(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectFailure(t, dsk.Add("a;b", &v))
}

func TestCommandLineOverridesDisk(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("game", &s))
	test.ExpectSuccess(t, s.Set("Prime1"))
	test.ExpectSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("game::Corruption")
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, s.String(), "Corruption")

	// the command line value has been consumed
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestEnvironment(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prefs")

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var b prefs.Bool
	test.ExpectSuccess(t, dsk.Add("patch.backup", &b))
	test.ExpectEquality(t, prefs.EnvironmentName("patch.backup"), "DOLPATCH_PATCH_BACKUP")

	t.Setenv("DOLPATCH_PATCH_BACKUP", "true")
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, b.Get().(bool), true)
}

func TestEnvironmentChangedBetweenLoads(t *testing.T) {
	dsk, err := prefs.NewDisk(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	var b prefs.Bool
	test.ExpectSuccess(t, dsk.Add("reload.flag", &b))

	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, b.Get().(bool), false)

	t.Setenv("DOLPATCH_RELOAD_FLAG", "true")
	test.ExpectSuccess(t, dsk.Load())
	test.ExpectEquality(t, b.Get().(bool), true)
}
