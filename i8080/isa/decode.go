package isa

import (
	"errors"
	"fmt"

	"github.com/mw8080/emu/i8080"
)

// ErrEndOfData is returned when the program counter points past the end
// of the data being decoded.
var ErrEndOfData = errors.New("end of data")

// TruncatedError is returned when an instruction's operand bytes run
// past the end of the data.
type TruncatedError struct {
	Opcode byte
	Want   int
	Got    int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated instruction 0x%02x: want %d bytes, have %d", e.Opcode, e.Want, e.Got)
}

// fileRegisters maps the register coding used by opcode bits to file
// registers: b, c, d, e, h, l, m, a.
var fileRegisters = [8]i8080.Register{
	i8080.B, i8080.C, i8080.D, i8080.E, i8080.H, i8080.L, i8080.M, i8080.A,
}

var aluOps = [8]Op{Add, Adc, Sub, Sbb, Ana, Xra, Ora, Cmp}

// encodedSize returns the total encoded size of the instruction that
// starts with opcode. Unassigned opcodes are one-byte nops.
func encodedSize(opcode byte) int {
	switch opcode {
	case 0x01, 0x11, 0x21, 0x31,
		0x22, 0x2a, 0x32, 0x3a,
		0xc2, 0xc3, 0xc4, 0xca, 0xcc, 0xcd,
		0xd2, 0xd4, 0xda, 0xdc,
		0xe2, 0xe4, 0xea, 0xec,
		0xf2, 0xf4, 0xfa, 0xfc:
		return 3
	case 0x06, 0x0e, 0x16, 0x1e, 0x26, 0x2e, 0x36, 0x3e,
		0xc6, 0xce, 0xd6, 0xde, 0xe6, 0xee, 0xf6, 0xfe,
		0xd3, 0xdb:
		return 2
	default:
		return 1
	}
}

// Decode reads the instruction at pc. The data slice indexes the address
// space directly: data[pc] is the opcode byte.
func Decode(data []byte, pc uint16) (Instruction, error) {
	if int(pc) >= len(data) {
		return Instruction{}, ErrEndOfData
	}
	opcode := data[pc]

	in := Instruction{Opcode: opcode}
	switch size := encodedSize(opcode); size {
	case 2:
		if int(pc)+1 >= len(data) {
			return Instruction{}, &TruncatedError{Opcode: opcode, Want: size, Got: len(data) - int(pc)}
		}
		in.Imm = data[pc+1]
	case 3:
		if int(pc)+2 >= len(data) {
			return Instruction{}, &TruncatedError{Opcode: opcode, Want: size, Got: len(data) - int(pc)}
		}
		in.Addr = uint16(data[pc+2])<<8 | uint16(data[pc+1])
	}

	switch {
	case opcode >= 0x40 && opcode < 0x80:
		if opcode == 0x76 {
			in.Op = Hlt
		} else {
			in.Op, in.Dst, in.Src = Mov, fileRegisters[opcode>>3&0x07], fileRegisters[opcode&0x07]
		}
		return in, nil
	case opcode >= 0x80 && opcode < 0xc0:
		in.Op, in.Src = aluOps[opcode>>3&0x07], fileRegisters[opcode&0x07]
		return in, nil
	}

	switch opcode {
	case 0x01:
		in.Op, in.Pair = Lxi, i8080.BC
	case 0x02:
		in.Op, in.Pair = Stax, i8080.BC
	case 0x03:
		in.Op, in.Pair = Inx, i8080.BC
	case 0x04:
		in.Op, in.Dst = Inr, i8080.B
	case 0x05:
		in.Op, in.Dst = Dcr, i8080.B
	case 0x06:
		in.Op, in.Dst = Mvi, i8080.B
	case 0x07:
		in.Op = Rlc
	case 0x09:
		in.Op, in.Pair = Dad, i8080.BC
	case 0x0a:
		in.Op, in.Pair = Ldax, i8080.BC
	case 0x0b:
		in.Op, in.Pair = Dcx, i8080.BC
	case 0x0c:
		in.Op, in.Dst = Inr, i8080.C
	case 0x0d:
		in.Op, in.Dst = Dcr, i8080.C
	case 0x0e:
		in.Op, in.Dst = Mvi, i8080.C
	case 0x0f:
		in.Op = Rrc
	case 0x11:
		in.Op, in.Pair = Lxi, i8080.DE
	case 0x12:
		in.Op, in.Pair = Stax, i8080.DE
	case 0x13:
		in.Op, in.Pair = Inx, i8080.DE
	case 0x14:
		in.Op, in.Dst = Inr, i8080.D
	case 0x15:
		in.Op, in.Dst = Dcr, i8080.D
	case 0x16:
		in.Op, in.Dst = Mvi, i8080.D
	case 0x17:
		in.Op = Ral
	case 0x19:
		in.Op, in.Pair = Dad, i8080.DE
	case 0x1a:
		in.Op, in.Pair = Ldax, i8080.DE
	case 0x1b:
		in.Op, in.Pair = Dcx, i8080.DE
	case 0x1c:
		in.Op, in.Dst = Inr, i8080.E
	case 0x1d:
		in.Op, in.Dst = Dcr, i8080.E
	case 0x1e:
		in.Op, in.Dst = Mvi, i8080.E
	case 0x1f:
		in.Op = Rar
	case 0x21:
		in.Op, in.Pair = Lxi, i8080.HL
	case 0x22:
		in.Op = Shld
	case 0x23:
		in.Op, in.Pair = Inx, i8080.HL
	case 0x24:
		in.Op, in.Dst = Inr, i8080.H
	case 0x25:
		in.Op, in.Dst = Dcr, i8080.H
	case 0x26:
		in.Op, in.Dst = Mvi, i8080.H
	case 0x27:
		in.Op = Daa
	case 0x29:
		in.Op, in.Pair = Dad, i8080.HL
	case 0x2a:
		in.Op = Lhld
	case 0x2b:
		in.Op, in.Pair = Dcx, i8080.HL
	case 0x2c:
		in.Op, in.Dst = Inr, i8080.L
	case 0x2d:
		in.Op, in.Dst = Dcr, i8080.L
	case 0x2e:
		in.Op, in.Dst = Mvi, i8080.L
	case 0x2f:
		in.Op = Cma
	case 0x31:
		in.Op, in.Pair = Lxi, i8080.SP
	case 0x32:
		in.Op = Sta
	case 0x33:
		in.Op, in.Pair = Inx, i8080.SP
	case 0x34:
		in.Op, in.Dst = Inr, i8080.M
	case 0x35:
		in.Op, in.Dst = Dcr, i8080.M
	case 0x36:
		in.Op, in.Dst = Mvi, i8080.M
	case 0x37:
		in.Op = Stc
	case 0x39:
		in.Op, in.Pair = Dad, i8080.SP
	case 0x3a:
		in.Op = Lda
	case 0x3b:
		in.Op, in.Pair = Dcx, i8080.SP
	case 0x3c:
		in.Op, in.Dst = Inr, i8080.A
	case 0x3d:
		in.Op, in.Dst = Dcr, i8080.A
	case 0x3e:
		in.Op, in.Dst = Mvi, i8080.A
	case 0x3f:
		in.Op = Cmc

	case 0xc0:
		in.Op = Rnz
	case 0xc1:
		in.Op, in.Pair = Pop, i8080.BC
	case 0xc2:
		in.Op = Jnz
	case 0xc3:
		in.Op = Jmp
	case 0xc4:
		in.Op = Cnz
	case 0xc5:
		in.Op, in.Pair = Push, i8080.BC
	case 0xc6:
		in.Op = Adi
	case 0xc8:
		in.Op = Rz
	case 0xc9:
		in.Op = Ret
	case 0xca:
		in.Op = Jz
	case 0xcc:
		in.Op = Cz
	case 0xcd:
		in.Op = Call
	case 0xce:
		in.Op = Aci
	case 0xd0:
		in.Op = Rnc
	case 0xd1:
		in.Op, in.Pair = Pop, i8080.DE
	case 0xd2:
		in.Op = Jnc
	case 0xd3:
		in.Op = Out
	case 0xd4:
		in.Op = Cnc
	case 0xd5:
		in.Op, in.Pair = Push, i8080.DE
	case 0xd6:
		in.Op = Sui
	case 0xd8:
		in.Op = Rc
	case 0xda:
		in.Op = Jc
	case 0xdb:
		in.Op = In
	case 0xdc:
		in.Op = Cc
	case 0xde:
		in.Op = Sbi
	case 0xe0:
		in.Op = Rpo
	case 0xe1:
		in.Op, in.Pair = Pop, i8080.HL
	case 0xe2:
		in.Op = Jpo
	case 0xe3:
		in.Op = Xthl
	case 0xe4:
		in.Op = Cpo
	case 0xe5:
		in.Op, in.Pair = Push, i8080.HL
	case 0xe6:
		in.Op = Ani
	case 0xe8:
		in.Op = Rpe
	case 0xe9:
		in.Op = Pchl
	case 0xea:
		in.Op = Jpe
	case 0xeb:
		in.Op = Xchg
	case 0xec:
		in.Op = Cpe
	case 0xee:
		in.Op = Xri
	case 0xf0:
		in.Op = Rp
	case 0xf1:
		in.Op, in.Pair = Pop, i8080.PSW
	case 0xf2:
		in.Op = Jp
	case 0xf3:
		in.Op = Di
	case 0xf4:
		in.Op = Cp
	case 0xf5:
		in.Op, in.Pair = Push, i8080.PSW
	case 0xf6:
		in.Op = Ori
	case 0xf8:
		in.Op = Rm
	case 0xf9:
		in.Op = Sphl
	case 0xfa:
		in.Op = Jm
	case 0xfb:
		in.Op = Ei
	case 0xfc:
		in.Op = Cm
	case 0xfe:
		in.Op = Cpi
	case 0xc7, 0xcf, 0xd7, 0xdf, 0xe7, 0xef, 0xf7, 0xff:
		in.Op, in.Imm = Rst, opcode>>3&0x07
	default:
		// 0x00 and the unassigned opcodes.
		in.Op = Nop
	}
	return in, nil
}
