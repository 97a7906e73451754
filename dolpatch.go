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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/docker/go-units"
	"github.com/jetsetilly/dolpatch/digest"
	"github.com/jetsetilly/dolpatch/disassembly"
	"github.com/jetsetilly/dolpatch/dol"
	"github.com/jetsetilly/dolpatch/logger"
	"github.com/jetsetilly/dolpatch/modalflag"
	"github.com/jetsetilly/dolpatch/patches"
	"github.com/jetsetilly/dolpatch/patchplan"
	"github.com/jetsetilly/dolpatch/prefs"
	"github.com/jetsetilly/dolpatch/statsview"
	"github.com/jetsetilly/dolpatch/version"
)

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch is called from main() and returns the exit code
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()

	showVersion := md.AddBool("version", false, "show version information")
	echoLog := md.AddBool("log", false, "echo log to stdout")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server (localhost:18066)")
	}

	md.AddSubModes("APPLY", "DISASM", "INFO")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %s\n", err)
		return 10
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return 0
	}

	if *echoLog {
		logger.SetEcho(output)
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	switch md.Mode() {
	case "APPLY":
		err = apply(md)
	case "DISASM":
		err = disasm(md)
	case "INFO":
		err = info(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

func apply(md *modalflag.Modes) error {
	md.NewMode()

	planPath := md.AddString("plan", "", "patch plan (YAML)")
	addrPath := md.AddString("addresses", "", "address table (YAML). overrides the plan and the game preference")
	dryrun := md.AddBool("dryrun", false, "apply patches in memory only")
	showDisasm := md.AddBool("disasm", false, "disassemble patched instructions")
	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly (only valid if -disasm=true)")
	memvizPath := md.AddString("memviz", "", "write graphviz representation of the plan to file")
	prefsArg := md.AddString("prefs", "", "preferences for this run. eg. \"backup::false; game::echoes\"")

	md.AdditionalHelp("patch plan entries are applied in a single session. the DOL file is\nunchanged if any entry fails")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("DOL file required for %s mode", md)
	} else if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *planPath == "" {
		return fmt.Errorf("patch plan required for %s mode", md)
	}

	prefs.PushCommandLineStack(*prefsArg)
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "dolpatch", "unused preferences: %s", unused)
		}
	}()

	pref, err := patchplan.NewPreferences()
	if err != nil {
		return err
	}

	if pref.EchoLog.Get().(bool) {
		logger.SetEcho(md.Output)
	}

	pln, err := patchplan.Load(*planPath)
	if err != nil {
		return err
	}

	tblPath := *addrPath
	if tblPath == "" {
		tblPath = pln.Addresses
	}
	if tblPath == "" {
		tblPath, err = pref.AddressTablePath()
		if err != nil {
			return err
		}
	}
	if tblPath == "" {
		return fmt.Errorf("no address table. use -addresses, the plan or the game preference")
	}

	tbl, err := patches.LoadAddressTable(tblPath)
	if err != nil {
		return err
	}

	if *memvizPath != "" {
		err = writeMemviz(*memvizPath, pln, tbl)
		if err != nil {
			return err
		}
	}

	f, err := dol.Load(md.GetArg(0))
	if err != nil {
		return err
	}

	if *dryrun {
		f, err = dol.FromBytes(f.Bytes())
		if err != nil {
			return err
		}
	} else {
		f.SetBackup(pref.Backup.Get().(bool) || pln.Backup)
	}
	f.SetEditable(true)

	rep, err := patchplan.Apply(f, tbl, pln)
	if err != nil {
		return err
	}

	fmt.Fprint(md.Output, rep)

	if *showDisasm {
		return disasmPatches(md.Output, f, rep.Patches, disassembly.WriteAttr{ByteCode: *bytecode, Patched: true})
	}

	return nil
}

// disassemble the instruction words covered by the patches. patches to data
// sections are not disassembled
func disasmPatches(output io.Writer, f *dol.File, ps []dol.Patch, attr disassembly.WriteAttr) error {
	for _, p := range ps {
		sec, err := f.SectionForAddress(p.Address)
		if err != nil {
			return err
		}
		if sec.Kind != dol.Text || p.Address%4 != 0 || len(p.Bytes)%4 != 0 {
			continue
		}

		dsm, err := disassembly.FromRange(f, p.Address, p.Address+uint32(len(p.Bytes)))
		if err != nil {
			return err
		}
		dsm.MarkPatched(ps)

		err = dsm.Write(output, attr)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeMemviz(path string, pln *patchplan.Plan, tbl *patches.AddressTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memviz: %w", err)
	}
	defer f.Close()

	memviz.Map(f, pln, tbl)

	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	start := md.AddAddress("start", 0, "first address to disassemble (default: every text section)")
	end := md.AddAddress("end", 0, "address after the last address to disassemble (only valid if -start is set)")
	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")
	grep := md.AddString("grep", "", "only show instructions matching the search string")
	caseSensitive := md.AddBool("case", false, "case sensitive search (only valid if -grep is set)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("DOL file required for %s mode", md)
	case 1:
		f, err := dol.Load(md.GetArg(0))
		if err != nil {
			return err
		}

		var dsm *disassembly.Disassembly
		if *start == 0 {
			dsm, err = disassembly.FromFile(f)
		} else {
			if *end == 0 {
				*end = *start + 0x40
			}
			dsm, err = disassembly.FromRange(f, *start, *end)
		}
		if err != nil {
			// print what disassembly output we do have
			if dsm != nil {
				// ignore any further errors
				_ = dsm.Write(md.Output, disassembly.WriteAttr{ByteCode: *bytecode})
			}
			return err
		}

		if *grep != "" {
			return dsm.Grep(md.Output, disassembly.GrepAll, *grep, *caseSensitive)
		}

		return dsm.Write(md.Output, disassembly.WriteAttr{ByteCode: *bytecode})
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	addrPath := md.AddString("addresses", "", "address table (YAML) to check against the DOL file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("DOL file required for %s mode", md)
	case 1:
		f, err := dol.Load(md.GetArg(0))
		if err != nil {
			return err
		}

		fmt.Fprint(md.Output, f)
		fmt.Fprintf(md.Output, "file size: %s\n", units.BytesSize(float64(len(f.Bytes()))))
		fmt.Fprintf(md.Output, "sha1: %s\n", digest.NewImage(f.Bytes()).Hash())

		if *addrPath == "" {
			return nil
		}

		tbl, err := patches.LoadAddressTable(*addrPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "address table: %s\n", tbl)

		return checkTable(md.Output, f, tbl)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

// checkTable reports the section of every non-zero address in the table
func checkTable(output io.Writer, f *dol.File, tbl *patches.AddressTable) error {
	check := func(name string, a patches.Address) {
		if a == 0 {
			return
		}
		sec, err := f.SectionForAddress(uint32(a))
		if err != nil {
			fmt.Fprintf(output, "  %-28s %s  not in file\n", name, a)
			return
		}
		fmt.Fprintf(output, "  %-28s %s  %s\n", name, a, sec.Name())
	}

	check("update_hint_state", tbl.StringDisplay.UpdateHintState)
	check("message_receiver_string_ref", tbl.StringDisplay.MessageReceiverStringRef)
	check("wstring_constructor", tbl.StringDisplay.WStringConstructor)
	check("display_hud_memo", tbl.StringDisplay.DisplayHudMemo)
	check("add_power_up", tbl.PowerupFunctions.AddPowerUp)
	check("incr_pickup", tbl.PowerupFunctions.IncrPickup)
	check("decr_pickup", tbl.PowerupFunctions.DecrPickup)
	check("small_number_float", tbl.DangerousEnergyTank.SmallNumberFloat)
	check("energy_tank_capacity", tbl.EnergyTankCapacity.EnergyTankCapacity)
	check("base_health_capacity", tbl.EnergyTankCapacity.BaseHealthCapacity)

	if tbl.FreeSpace.End > tbl.FreeSpace.Start {
		err := f.SetFreeSpace(uint32(tbl.FreeSpace.Start), uint32(tbl.FreeSpace.End))
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "  %-28s %s-%s  %s\n", "free_space", tbl.FreeSpace.Start, tbl.FreeSpace.End,
			units.BytesSize(float64(tbl.FreeSpace.End-tbl.FreeSpace.Start)))
	}

	return nil
}
