package exec

import (
	"fmt"
	"io"

	"github.com/mw8080/emu/i8080"
)

// CPU is the processor state: the register file, the stack pointer and
// program counter, and the interrupt enable bit.
type CPU struct {
	regs [8]byte
	SP   uint16
	PC   uint16
	INTE bool
}

// NewCPU returns a reset CPU: registers cleared, the stack pointer at
// 0xf000, the program counter at zero, interrupts disabled.
func NewCPU() *CPU {
	return &CPU{SP: 0xf000}
}

// Register returns the value of a file register. M has no storage of
// its own and must be resolved through memory by the caller.
func (c *CPU) Register(r i8080.Register) byte {
	if r == i8080.M {
		panic("m has no backing register")
	}
	return c.regs[r]
}

// SetRegister stores a byte in a file register.
func (c *CPU) SetRegister(r i8080.Register, v byte) {
	if r == i8080.M {
		panic("m has no backing register")
	}
	c.regs[r] = v
}

// Flag reports whether a flag bit is set.
func (c *CPU) Flag(f i8080.Flag) bool {
	return c.regs[i8080.F]&byte(f) != 0
}

// PutFlag sets or clears a flag bit.
func (c *CPU) PutFlag(f i8080.Flag, on bool) {
	if on {
		c.regs[i8080.F] |= byte(f)
	} else {
		c.regs[i8080.F] &^= byte(f)
	}
}

// Pair returns the value of a register pair. PSW pairs the accumulator
// with the flags; SP returns the stack pointer.
func (c *CPU) Pair(rp i8080.RegisterPair) uint16 {
	if rp == i8080.SP {
		return c.SP
	}
	hi, lo, _ := rp.Split()
	return uint16(c.regs[hi])<<8 | uint16(c.regs[lo])
}

// SetPair stores a 16-bit value in a register pair.
func (c *CPU) SetPair(rp i8080.RegisterPair, v uint16) {
	if rp == i8080.SP {
		c.SP = v
		return
	}
	hi, lo, _ := rp.Split()
	c.regs[hi], c.regs[lo] = byte(v>>8), byte(v)
}

// DumpState writes a readable snapshot of the CPU to w.
func (c *CPU) DumpState(w io.Writer) {
	fmt.Fprintln(w, "Registers:")
	for _, r := range []i8080.Register{i8080.A, i8080.F, i8080.B, i8080.C, i8080.D, i8080.E, i8080.H, i8080.L} {
		fmt.Fprintf(w, "\t%s: 0x%02x\n", r, c.regs[r])
	}
	fmt.Fprintln(w, "Register pairs:")
	for _, rp := range []i8080.RegisterPair{i8080.PSW, i8080.BC, i8080.DE, i8080.HL} {
		fmt.Fprintf(w, "\t%s: 0x%04x\n", rp, c.Pair(rp))
	}
	fmt.Fprintf(w, "PC: 0x%04x\n", c.PC)
	fmt.Fprintf(w, "SP: 0x%04x\n", c.SP)
	fmt.Fprintf(w, "Inte: %v\n", c.INTE)
}
