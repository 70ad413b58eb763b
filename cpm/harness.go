// Package cpm runs CP/M .com binaries against a console shim. The
// published 8080 test suites are built this way: they load at 0x100,
// print through the BDOS entry at five, and exit by jumping to zero.
package cpm

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/mw8080/emu/exec"
)

const (
	memSize = 0x8000

	// LoadAddr is where .com images land, the CP/M transient program
	// area.
	LoadAddr = 0x100
)

// shim is the scrap of BIOS the binaries expect: a halting exit at
// zero and a BDOS at five that knows calls 2 (put char from e) and 9
// (put $-terminated string from de), console on port zero.
var shim = []byte{
	0x3e, 0x0a,       // 0x0000: exit:   mvi a, 0x0a
	0xd3, 0x00,       // 0x0002:         out 0
	0x76,             // 0x0004:         hlt
	0x3e, 0x02,       // 0x0005: bdos:   mvi a, 2
	0xb9,             // 0x0007:         cmp c
	0xc2, 0x0f, 0x00, // 0x0008:         jnz putstr
	0x7b,             // 0x000b: putchr: mov a, e
	0xd3, 0x00,       // 0x000c:         out 0
	0xc9,             // 0x000e:         ret
	0x0e, 0x24,       // 0x000f: putstr: mvi c, '$'
	0x1a,             // 0x0011: loop:   ldax d
	0xb9,             // 0x0012:         cmp c
	0xc2, 0x17, 0x00, // 0x0013:         jnz emit
	0xc9,             // 0x0016:         ret
	0xd3, 0x00,       // 0x0017: emit:   out 0
	0x13,             // 0x0019:         inx d
	0xc3, 0x11, 0x00, // 0x001a:         jmp loop
}

// Result summarizes a completed run.
type Result struct {
	Instructions uint64
	Cycles       uint64
}

// A LimitError reports a program that ran past its instruction budget
// without reaching the exit.
type LimitError struct {
	Instructions uint64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("no halt after %d instructions", e.Instructions)
}

// Harness is a loaded test binary and its console.
type Harness struct {
	sys   *exec.System
	out   bytes.Buffer
	echo  io.Writer
	trace io.Writer
}

// New loads a .com image into 32 KiB of memory behind the console
// shim. The suites patch their own code, so ROM write protection is
// off.
func New(program []byte) (*Harness, error) {
	mem := exec.NewMemory(memSize)
	mem.AllowROMWrites(true)
	if err := mem.PutROM(shim, 0); err != nil {
		return nil, err
	}
	if err := mem.PutROM(program, LoadAddr); err != nil {
		return nil, err
	}
	return &Harness{sys: exec.NewSystem(mem, LoadAddr)}, nil
}

// Echo streams console bytes to w as they arrive, in addition to the
// captured output.
func (h *Harness) Echo(w io.Writer) {
	h.echo = w
}

// Trace streams executed instructions to w as assembly, one per line
// with the program counter.
func (h *Harness) Trace(w io.Writer) {
	h.trace = w
}

// System returns the harness's system, chiefly for state dumps.
func (h *Harness) System() *exec.System {
	return h.sys
}

// Output returns everything the program wrote to the console.
func (h *Harness) Output() []byte {
	return h.out.Bytes()
}

// In implements the harness's port board. Nothing is wired to read.
func (h *Harness) In(port byte) byte {
	return 0
}

// Out implements the harness's port board. Port zero is the console.
func (h *Harness) Out(port byte, v byte) {
	if port != 0 {
		return
	}
	h.out.WriteByte(v)
	if h.echo != nil {
		h.echo.Write([]byte{v})
	}
}

// Run steps the program until the shim's halt. The context bounds
// wall-clock time and max bounds the instruction count; zero max means
// unbounded.
func (h *Harness) Run(ctx context.Context, max uint64) (Result, error) {
	var res Result
	for {
		in, err := h.sys.Fetch()
		if err != nil {
			return res, err
		}
		if h.trace != nil {
			fmt.Fprintf(h.trace, "%04x  %s\n", h.sys.CPU.PC, in.String())
		}

		cycles, halted, err := h.sys.Execute(in, h)
		if err != nil {
			return res, err
		}
		res.Instructions++
		res.Cycles += uint64(cycles)

		if halted {
			return res, nil
		}
		if max != 0 && res.Instructions >= max {
			return res, &LimitError{Instructions: res.Instructions}
		}
		if res.Instructions&0xffff == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
	}
}
