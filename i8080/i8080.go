// Package i8080 defines the register and flag model of the Intel 8080.
package i8080

// Register names a CPU register. The values of the file registers index
// the register file; M addresses memory through the HL pair and has no
// backing storage.
type Register uint8

const (
	A Register = iota
	F
	B
	C
	D
	E
	H
	L
	M
)

func (r Register) String() string {
	switch r {
	case A:
		return "a"
	case F:
		return "f"
	case B:
		return "b"
	case C:
		return "c"
	case D:
		return "d"
	case E:
		return "e"
	case H:
		return "h"
	case L:
		return "l"
	case M:
		return "m"
	default:
		return "?"
	}
}

// RegisterPair names a 16-bit register pair. PSW pairs the accumulator
// with the flags; SP is the stack pointer and is not backed by the
// register file.
type RegisterPair uint8

const (
	PSW RegisterPair = iota
	BC
	DE
	HL
	SP
)

// Split returns the high and low file registers of the pair. SP has no
// halves and reports ok == false.
func (rp RegisterPair) Split() (hi, lo Register, ok bool) {
	switch rp {
	case PSW:
		return A, F, true
	case BC:
		return B, C, true
	case DE:
		return D, E, true
	case HL:
		return H, L, true
	default:
		return 0, 0, false
	}
}

func (rp RegisterPair) String() string {
	switch rp {
	case PSW:
		return "psw"
	case BC:
		return "b"
	case DE:
		return "d"
	case HL:
		return "h"
	case SP:
		return "sp"
	default:
		return "?"
	}
}

// Flag is a bit of the F register.
type Flag uint8

const (
	FlagCY Flag = 1 << 0
	FlagP  Flag = 1 << 2
	FlagAC Flag = 1 << 4
	FlagZ  Flag = 1 << 6
	FlagS  Flag = 1 << 7
)

func (f Flag) String() string {
	switch f {
	case FlagCY:
		return "cy"
	case FlagP:
		return "p"
	case FlagAC:
		return "ac"
	case FlagZ:
		return "z"
	case FlagS:
		return "s"
	default:
		return "?"
	}
}
