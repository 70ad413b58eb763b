package isa

// Op identifies an instruction mnemonic.
type Op uint8

const (
	Nop Op = iota

	Mov
	Mvi
	Lxi
	Lda
	Sta
	Lhld
	Shld
	Ldax
	Stax
	Xchg

	Add
	Adi
	Adc
	Aci
	Sub
	Sui
	Sbb
	Sbi
	Inr
	Dcr
	Inx
	Dcx
	Dad
	Daa

	Ana
	Ani
	Xra
	Xri
	Ora
	Ori
	Cmp
	Cpi
	Rlc
	Rrc
	Ral
	Rar
	Cma
	Cmc
	Stc

	Jmp
	Jnz
	Jz
	Jnc
	Jc
	Jpo
	Jpe
	Jp
	Jm
	Call
	Cnz
	Cz
	Cnc
	Cc
	Cpo
	Cpe
	Cp
	Cm
	Ret
	Rnz
	Rz
	Rnc
	Rc
	Rpo
	Rpe
	Rp
	Rm
	Rst
	Pchl

	Push
	Pop
	Xthl
	Sphl
	In
	Out
	Ei
	Di
	Hlt
)

var opNames = [...]string{
	Nop:  "nop",
	Mov:  "mov",
	Mvi:  "mvi",
	Lxi:  "lxi",
	Lda:  "lda",
	Sta:  "sta",
	Lhld: "lhld",
	Shld: "shld",
	Ldax: "ldax",
	Stax: "stax",
	Xchg: "xchg",
	Add:  "add",
	Adi:  "adi",
	Adc:  "adc",
	Aci:  "aci",
	Sub:  "sub",
	Sui:  "sui",
	Sbb:  "sbb",
	Sbi:  "sbi",
	Inr:  "inr",
	Dcr:  "dcr",
	Inx:  "inx",
	Dcx:  "dcx",
	Dad:  "dad",
	Daa:  "daa",
	Ana:  "ana",
	Ani:  "ani",
	Xra:  "xra",
	Xri:  "xri",
	Ora:  "ora",
	Ori:  "ori",
	Cmp:  "cmp",
	Cpi:  "cpi",
	Rlc:  "rlc",
	Rrc:  "rrc",
	Ral:  "ral",
	Rar:  "rar",
	Cma:  "cma",
	Cmc:  "cmc",
	Stc:  "stc",
	Jmp:  "jmp",
	Jnz:  "jnz",
	Jz:   "jz",
	Jnc:  "jnc",
	Jc:   "jc",
	Jpo:  "jpo",
	Jpe:  "jpe",
	Jp:   "jp",
	Jm:   "jm",
	Call: "call",
	Cnz:  "cnz",
	Cz:   "cz",
	Cnc:  "cnc",
	Cc:   "cc",
	Cpo:  "cpo",
	Cpe:  "cpe",
	Cp:   "cp",
	Cm:   "cm",
	Ret:  "ret",
	Rnz:  "rnz",
	Rz:   "rz",
	Rnc:  "rnc",
	Rc:   "rc",
	Rpo:  "rpo",
	Rpe:  "rpe",
	Rp:   "rp",
	Rm:   "rm",
	Rst:  "rst",
	Pchl: "pchl",
	Push: "push",
	Pop:  "pop",
	Xthl: "xthl",
	Sphl: "sphl",
	In:   "in",
	Out:  "out",
	Ei:   "ei",
	Di:   "di",
	Hlt:  "hlt",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}
