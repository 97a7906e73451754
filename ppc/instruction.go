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

package ppc

// Instruction is a single PowerPC instruction. The register fields are named
// by their bit position in the encoded word:
//
//	D: bits 6 to 10 (rD, rS, frD, frS)
//	A: bits 11 to 15 (rA, frA)
//	B: bits 16 to 20 (rB, frB)
//	C: bits 21 to 25 (frC)
//
// Fields that are not used by the instruction's Definition are ignored by
// Encode() but should be left as the zero value.
type Instruction struct {
	Mnemonic Mnemonic

	D Register
	A Register
	B Register
	C Register

	// immediate value for D-Form instructions. for load and store
	// instructions this is the displacement
	Imm Immediate

	// branch target for I-Form and B-Form instructions
	Target Address

	// branch options and the condition register bit for conditional branches
	BO uint8
	BI uint8

	// condition register field for compare instructions
	CRF uint8

	SPR SPR

	// shift and mask for rlwinm
	SH uint8
	MB uint8
	ME uint8

	// record bit. the instruction updates cr0 (or cr1 for floating point)
	Rc bool

	// optional label. can be used as a branch target by other instructions
	// in the same sequence
	Label string
}

// Definition returns the Definition for the instruction's mnemonic. The
// second return value is false if the mnemonic is not valid.
func (ins Instruction) Definition() (Definition, bool) {
	if ins.Mnemonic < 0 || ins.Mnemonic >= numMnemonics {
		return Definition{}, false
	}
	return Definitions[ins.Mnemonic], true
}

// WithLabel returns a copy of the instruction with the label set.
func (ins Instruction) WithLabel(label string) Instruction {
	ins.Label = label
	return ins
}

// Record returns a copy of the instruction with the record bit set. Encode()
// will fail if the instruction does not have a record bit.
func (ins Instruction) Record() Instruction {
	ins.Rc = true
	return ins
}

// InCR returns a copy of a compare instruction with the result directed to a
// condition register field other than cr0. For conditional branches the
// condition register bit is moved to the condition register field.
func (ins Instruction) InCR(crf uint8) Instruction {
	switch ins.Mnemonic {
	case BC, BCLR, BCLRL, BCCTR, BCCTRL:
		ins.BI = crf*4 + ins.BI%4
	default:
		ins.CRF = crf
	}
	return ins
}

func dform(m Mnemonic, d, a Register, imm Immediate) Instruction {
	return Instruction{Mnemonic: m, D: d, A: a, Imm: imm}
}

// Addi is rD = rA + SIMM. If rA is r0 then the value zero is used instead.
func Addi(rd, ra Register, imm Immediate) Instruction {
	return dform(ADDI, rd, ra, imm)
}

// Addis is rD = rA + (SIMM << 16).
func Addis(rd, ra Register, imm Immediate) Instruction {
	return dform(ADDIS, rd, ra, imm)
}

// Addic is rD = rA + SIMM with carry.
func Addic(rd, ra Register, imm Immediate) Instruction {
	return dform(ADDIC, rd, ra, imm)
}

// Mulli is rD = rA * SIMM.
func Mulli(rd, ra Register, imm Immediate) Instruction {
	return dform(MULLI, rd, ra, imm)
}

// Li loads the immediate into rD.
func Li(rd Register, imm Immediate) Instruction {
	return dform(ADDI, rd, R0, imm)
}

// Lis loads the immediate into the upper half of rD.
func Lis(rd Register, imm Immediate) Instruction {
	return dform(ADDIS, rd, R0, imm)
}

// Ori is rA = rS | UIMM.
func Ori(ra, rs Register, imm Immediate) Instruction {
	return dform(ORI, rs, ra, imm)
}

// Oris is rA = rS | (UIMM << 16).
func Oris(ra, rs Register, imm Immediate) Instruction {
	return dform(ORIS, rs, ra, imm)
}

// Andi is rA = rS & UIMM. Always updates cr0.
func Andi(ra, rs Register, imm Immediate) Instruction {
	return dform(ANDI, rs, ra, imm)
}

// Xori is rA = rS ^ UIMM.
func Xori(ra, rs Register, imm Immediate) Instruction {
	return dform(XORI, rs, ra, imm)
}

// Nop is the preferred no-operation instruction, ori r0,r0,0.
func Nop() Instruction {
	return dform(ORI, R0, R0, Imm(0))
}

// Cmpwi compares rA with a signed immediate. Result in cr0.
func Cmpwi(ra Register, v int64) Instruction {
	return Instruction{Mnemonic: CMPI, A: ra, Imm: Imm(v)}
}

// Cmplwi compares rA with an unsigned immediate. Result in cr0.
func Cmplwi(ra Register, v int64) Instruction {
	return Instruction{Mnemonic: CMPLI, A: ra, Imm: Imm(v)}
}

// Cmpw compares rA with rB as signed values. Result in cr0.
func Cmpw(ra, rb Register) Instruction {
	return Instruction{Mnemonic: CMP, A: ra, B: rb}
}

// Cmplw compares rA with rB as unsigned values. Result in cr0.
func Cmplw(ra, rb Register) Instruction {
	return Instruction{Mnemonic: CMPL, A: ra, B: rb}
}

func mem(m Mnemonic, d Register, offset int64, a Register) Instruction {
	return Instruction{Mnemonic: m, D: d, A: a, Imm: Imm(offset)}
}

// Lwz loads the word at offset(rA) into rD.
func Lwz(rd Register, offset int64, ra Register) Instruction {
	return mem(LWZ, rd, offset, ra)
}

// Lwzu loads the word at offset(rA) into rD and updates rA.
func Lwzu(rd Register, offset int64, ra Register) Instruction {
	return mem(LWZU, rd, offset, ra)
}

// Lbz loads the byte at offset(rA) into rD.
func Lbz(rd Register, offset int64, ra Register) Instruction {
	return mem(LBZ, rd, offset, ra)
}

// Lhz loads the half-word at offset(rA) into rD.
func Lhz(rd Register, offset int64, ra Register) Instruction {
	return mem(LHZ, rd, offset, ra)
}

// Lha loads the sign extended half-word at offset(rA) into rD.
func Lha(rd Register, offset int64, ra Register) Instruction {
	return mem(LHA, rd, offset, ra)
}

// Stw stores rS at offset(rA).
func Stw(rs Register, offset int64, ra Register) Instruction {
	return mem(STW, rs, offset, ra)
}

// Stwu stores rS at offset(rA) and updates rA. Used to create stack frames.
func Stwu(rs Register, offset int64, ra Register) Instruction {
	return mem(STWU, rs, offset, ra)
}

// Stb stores the low byte of rS at offset(rA).
func Stb(rs Register, offset int64, ra Register) Instruction {
	return mem(STB, rs, offset, ra)
}

// Sth stores the low half-word of rS at offset(rA).
func Sth(rs Register, offset int64, ra Register) Instruction {
	return mem(STH, rs, offset, ra)
}

// Lmw loads registers rD to r31 from consecutive words starting at
// offset(rA).
func Lmw(rd Register, offset int64, ra Register) Instruction {
	return mem(LMW, rd, offset, ra)
}

// Stmw stores registers rS to r31 to consecutive words starting at
// offset(rA).
func Stmw(rs Register, offset int64, ra Register) Instruction {
	return mem(STMW, rs, offset, ra)
}

// Lfs loads the single precision value at offset(rA) into frD.
func Lfs(frd Register, offset int64, ra Register) Instruction {
	return mem(LFS, frd, offset, ra)
}

// Lfd loads the double precision value at offset(rA) into frD.
func Lfd(frd Register, offset int64, ra Register) Instruction {
	return mem(LFD, frd, offset, ra)
}

// Stfs stores frS as a single precision value at offset(rA).
func Stfs(frs Register, offset int64, ra Register) Instruction {
	return mem(STFS, frs, offset, ra)
}

// Stfd stores frS as a double precision value at offset(rA).
func Stfd(frs Register, offset int64, ra Register) Instruction {
	return mem(STFD, frs, offset, ra)
}

// Branch is an unconditional relative branch. Named Branch rather than B to
// avoid confusion with the B register field.
func Branch(target Address) Instruction {
	return Instruction{Mnemonic: B, Target: target}
}

// Bl branches to the target and sets the link register.
func Bl(target Address) Instruction {
	return Instruction{Mnemonic: BL, Target: target}
}

// Bc is the general conditional branch.
func Bc(bo, bi uint8, target Address) Instruction {
	return Instruction{Mnemonic: BC, BO: bo, BI: bi, Target: target}
}

// Beq branches if the equal bit of cr0 is set.
func Beq(target Address) Instruction {
	return Bc(BranchIfTrue, CREqual, target)
}

// Bne branches if the equal bit of cr0 is clear.
func Bne(target Address) Instruction {
	return Bc(BranchIfFalse, CREqual, target)
}

// Blt branches if the less-than bit of cr0 is set.
func Blt(target Address) Instruction {
	return Bc(BranchIfTrue, CRLessThan, target)
}

// Bge branches if the less-than bit of cr0 is clear.
func Bge(target Address) Instruction {
	return Bc(BranchIfFalse, CRLessThan, target)
}

// Bgt branches if the greater-than bit of cr0 is set.
func Bgt(target Address) Instruction {
	return Bc(BranchIfTrue, CRGreaterThan, target)
}

// Ble branches if the greater-than bit of cr0 is clear.
func Ble(target Address) Instruction {
	return Bc(BranchIfFalse, CRGreaterThan, target)
}

// Bdnz decrements the count register and branches if it is not zero.
func Bdnz(target Address) Instruction {
	return Bc(BranchDecNotZero, 0, target)
}

// Blr returns to the address in the link register.
func Blr() Instruction {
	return Instruction{Mnemonic: BCLR, BO: BranchAlways}
}

// Blrl branches to the address in the link register and sets the link
// register.
func Blrl() Instruction {
	return Instruction{Mnemonic: BCLRL, BO: BranchAlways}
}

// Bctr branches to the address in the count register.
func Bctr() Instruction {
	return Instruction{Mnemonic: BCCTR, BO: BranchAlways}
}

// Bctrl calls the address in the count register.
func Bctrl() Instruction {
	return Instruction{Mnemonic: BCCTRL, BO: BranchAlways}
}

// Isync is the instruction synchronise instruction.
func Isync() Instruction {
	return Instruction{Mnemonic: ISYNC}
}

// Sync is the synchronise instruction.
func Sync() Instruction {
	return Instruction{Mnemonic: SYNC}
}

// Icbi invalidates the instruction cache block at rA+rB.
func Icbi(ra, rb Register) Instruction {
	return Instruction{Mnemonic: ICBI, A: ra, B: rb}
}

// Dcbf flushes the data cache block at rA+rB.
func Dcbf(ra, rb Register) Instruction {
	return Instruction{Mnemonic: DCBF, A: ra, B: rb}
}

// Dcbst stores the data cache block at rA+rB.
func Dcbst(ra, rb Register) Instruction {
	return Instruction{Mnemonic: DCBST, A: ra, B: rb}
}

func logical(m Mnemonic, ra, rs, rb Register) Instruction {
	return Instruction{Mnemonic: m, D: rs, A: ra, B: rb}
}

// Or is rA = rS | rB.
func Or(ra, rs, rb Register) Instruction {
	return logical(OR, ra, rs, rb)
}

// Mr copies rS to rA.
func Mr(ra, rs Register) Instruction {
	return logical(OR, ra, rs, rs)
}

// And is rA = rS & rB.
func And(ra, rs, rb Register) Instruction {
	return logical(AND, ra, rs, rb)
}

// Xor is rA = rS ^ rB.
func Xor(ra, rs, rb Register) Instruction {
	return logical(XOR, ra, rs, rb)
}

// Nor is rA = ^(rS | rB).
func Nor(ra, rs, rb Register) Instruction {
	return logical(NOR, ra, rs, rb)
}

// Not is rA = ^rS.
func Not(ra, rs Register) Instruction {
	return logical(NOR, ra, rs, rs)
}

// Slw is rA = rS << rB.
func Slw(ra, rs, rb Register) Instruction {
	return logical(SLW, ra, rs, rb)
}

// Srw is rA = rS >> rB.
func Srw(ra, rs, rb Register) Instruction {
	return logical(SRW, ra, rs, rb)
}

// Extsb sign extends the low byte of rS into rA.
func Extsb(ra, rs Register) Instruction {
	return logical(EXTSB, ra, rs, R0)
}

// Extsh sign extends the low half-word of rS into rA.
func Extsh(ra, rs Register) Instruction {
	return logical(EXTSH, ra, rs, R0)
}

func indexed(m Mnemonic, d, a, b Register) Instruction {
	return Instruction{Mnemonic: m, D: d, A: a, B: b}
}

// Lwzx loads the word at rA+rB into rD.
func Lwzx(rd, ra, rb Register) Instruction {
	return indexed(LWZX, rd, ra, rb)
}

// Stwx stores rS at rA+rB.
func Stwx(rs, ra, rb Register) Instruction {
	return indexed(STWX, rs, ra, rb)
}

// Lbzx loads the byte at rA+rB into rD.
func Lbzx(rd, ra, rb Register) Instruction {
	return indexed(LBZX, rd, ra, rb)
}

// Stbx stores the low byte of rS at rA+rB.
func Stbx(rs, ra, rb Register) Instruction {
	return indexed(STBX, rs, ra, rb)
}

// Add is rD = rA + rB.
func Add(rd, ra, rb Register) Instruction {
	return indexed(ADD, rd, ra, rb)
}

// Subf is rD = rB - rA.
func Subf(rd, ra, rb Register) Instruction {
	return indexed(SUBF, rd, ra, rb)
}

// Sub is rD = rA - rB.
func Sub(rd, ra, rb Register) Instruction {
	return indexed(SUBF, rd, rb, ra)
}

// Mullw is rD = rA * rB.
func Mullw(rd, ra, rb Register) Instruction {
	return indexed(MULLW, rd, ra, rb)
}

// Divw is rD = rA / rB.
func Divw(rd, ra, rb Register) Instruction {
	return indexed(DIVW, rd, ra, rb)
}

// Neg is rD = -rA.
func Neg(rd, ra Register) Instruction {
	return indexed(NEG, rd, ra, R0)
}

// Mfspr copies the special purpose register to rD.
func Mfspr(rd Register, spr SPR) Instruction {
	return Instruction{Mnemonic: MFSPR, D: rd, SPR: spr}
}

// Mtspr copies rS to the special purpose register.
func Mtspr(spr SPR, rs Register) Instruction {
	return Instruction{Mnemonic: MTSPR, D: rs, SPR: spr}
}

// Mflr copies the link register to rD.
func Mflr(rd Register) Instruction {
	return Mfspr(rd, LR)
}

// Mtlr copies rS to the link register.
func Mtlr(rs Register) Instruction {
	return Mtspr(LR, rs)
}

// Mfctr copies the count register to rD.
func Mfctr(rd Register) Instruction {
	return Mfspr(rd, CTR)
}

// Mtctr copies rS to the count register.
func Mtctr(rs Register) Instruction {
	return Mtspr(CTR, rs)
}

// Rlwinm rotates rS left by SH and masks the result with the mask MB to ME.
func Rlwinm(ra, rs Register, sh, mb, me uint8) Instruction {
	return Instruction{Mnemonic: RLWINM, D: rs, A: ra, SH: sh, MB: mb, ME: me}
}

// Slwi shifts rS left by n bits.
func Slwi(ra, rs Register, n uint8) Instruction {
	return Rlwinm(ra, rs, n, 0, 31-n)
}

// Srwi shifts rS right by n bits.
func Srwi(ra, rs Register, n uint8) Instruction {
	return Rlwinm(ra, rs, (32-n)%32, n, 31)
}

// Clrlwi clears the n most significant bits of rS.
func Clrlwi(ra, rs Register, n uint8) Instruction {
	return Rlwinm(ra, rs, 0, n, 31)
}

func float(m Mnemonic, d, a, b, c Register) Instruction {
	return Instruction{Mnemonic: m, D: d, A: a, B: b, C: c}
}

// Fadds is frD = frA + frB.
func Fadds(frd, fra, frb Register) Instruction {
	return float(FADDS, frd, fra, frb, F0)
}

// Fsubs is frD = frA - frB.
func Fsubs(frd, fra, frb Register) Instruction {
	return float(FSUBS, frd, fra, frb, F0)
}

// Fmuls is frD = frA * frC.
func Fmuls(frd, fra, frc Register) Instruction {
	return float(FMULS, frd, fra, F0, frc)
}

// Fdivs is frD = frA / frB.
func Fdivs(frd, fra, frb Register) Instruction {
	return float(FDIVS, frd, fra, frb, F0)
}

// Fmr copies frB to frD.
func Fmr(frd, frb Register) Instruction {
	return float(FMR, frd, F0, frb, F0)
}
