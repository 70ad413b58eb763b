package isa

import (
	"fmt"

	"github.com/mw8080/emu/i8080"
)

// Instruction is a decoded 8080 instruction. Only the operand fields
// relevant to Op carry meaning; the rest are zero.
type Instruction struct {
	Opcode byte
	Op     Op
	Dst    i8080.Register
	Src    i8080.Register
	Pair   i8080.RegisterPair
	Imm    byte
	Addr   uint16
}

// NewRst returns the one-byte restart instruction for vector v.
func NewRst(v byte) Instruction {
	v &= 0x07
	return Instruction{Opcode: 0xc7 | v<<3, Op: Rst, Imm: v}
}

// Port returns the I/O port of an In or Out instruction.
func (i *Instruction) Port() byte {
	return i.Imm
}

// Vector returns the restart vector of an Rst instruction.
func (i *Instruction) Vector() byte {
	return i.Imm
}

// Size returns the encoded length of the instruction in bytes.
func (i *Instruction) Size() int {
	switch i.Op {
	case Lxi, Lda, Sta, Lhld, Shld,
		Jmp, Jnz, Jz, Jnc, Jc, Jpo, Jpe, Jp, Jm,
		Call, Cnz, Cz, Cnc, Cc, Cpo, Cpe, Cp, Cm:
		return 3
	case Mvi, Adi, Aci, Sui, Sbi, Ani, Xri, Ori, Cpi, In, Out:
		return 2
	default:
		return 1
	}
}

// Cycles returns the base execution time in clock states. Conditional
// calls and returns report the not-taken time plus six when taken; the
// executor accounts for that.
func (i *Instruction) Cycles() int {
	switch i.Op {
	case Xthl:
		return 18
	case Call:
		return 17
	case Shld, Lhld:
		return 16
	case Sta, Lda:
		return 13
	case Cnz, Cz, Cnc, Cc, Cpo, Cpe, Cp, Cm, Rst, Push:
		return 11
	case Dad, Pop, In, Out, Lxi, Ret, Jmp, Jnz, Jz, Jnc, Jc, Jpo, Jpe, Jp, Jm:
		return 10
	case Hlt, Ldax, Stax, Adi, Aci, Sui, Sbi, Ani, Xri, Ori, Cpi:
		return 7
	case Add, Adc, Sub, Sbb, Ana, Xra, Ora, Cmp:
		if i.Src == i8080.M {
			return 7
		}
		return 4
	case Mvi:
		if i.Dst == i8080.M {
			return 10
		}
		return 7
	case Mov:
		if i.Dst == i8080.M || i.Src == i8080.M {
			return 7
		}
		return 5
	case Inr, Dcr:
		if i.Dst == i8080.M {
			return 10
		}
		return 5
	case Pchl, Sphl, Rnz, Rz, Rnc, Rc, Rpo, Rpe, Rp, Rm, Inx, Dcx:
		return 5
	default:
		return 4
	}
}

func (i *Instruction) String() string {
	switch i.Op {
	case Mov:
		return fmt.Sprintf("mov %v, %v", i.Dst, i.Src)
	case Mvi:
		return fmt.Sprintf("mvi %v, 0x%02x", i.Dst, i.Imm)
	case Lxi:
		return fmt.Sprintf("lxi %v, 0x%04x", i.Pair, i.Addr)
	case Lda, Sta, Lhld, Shld,
		Jmp, Jnz, Jz, Jnc, Jc, Jpo, Jpe, Jp, Jm,
		Call, Cnz, Cz, Cnc, Cc, Cpo, Cpe, Cp, Cm:
		return fmt.Sprintf("%v 0x%04x", i.Op, i.Addr)
	case Ldax, Stax, Inx, Dcx, Dad, Push, Pop:
		return fmt.Sprintf("%v %v", i.Op, i.Pair)
	case Inr, Dcr:
		return fmt.Sprintf("%v %v", i.Op, i.Dst)
	case Add, Adc, Sub, Sbb, Ana, Xra, Ora, Cmp:
		return fmt.Sprintf("%v %v", i.Op, i.Src)
	case Adi, Aci, Sui, Sbi, Ani, Xri, Ori, Cpi:
		return fmt.Sprintf("%v 0x%02x", i.Op, i.Imm)
	case In, Out:
		return fmt.Sprintf("%v 0x%02x", i.Op, i.Port())
	case Rst:
		return fmt.Sprintf("rst %d", i.Vector())
	default:
		return i.Op.String()
	}
}
