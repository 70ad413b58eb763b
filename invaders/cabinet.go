package invaders

import (
	"github.com/mw8080/emu/exec"
	"github.com/mw8080/emu/machine"
)

// Cabinet hardware rates.
const (
	ClockHz = 2_000_000
	FrameHz = 60

	// MemSize covers the 8 KiB ROM, 1 KiB of work RAM, and the frame
	// buffer.
	MemSize = 0x4000
)

// NewMachine builds the cabinet: the ROM images placed back to back
// from address zero, the CPU reset to zero, and the two raster
// restarts on a 2 MHz clock. The returned machine drives ports as its
// I/O bus.
func NewMachine(ports *Ports, roms ...[]byte) (*machine.Machine, error) {
	mem := exec.NewMemory(MemSize)
	at := uint16(0)
	for _, rom := range roms {
		if err := mem.PutROM(rom, at); err != nil {
			return nil, err
		}
		at += uint16(len(rom))
	}

	sys := exec.NewSystem(mem, 0)
	return machine.New(sys, ports, machine.Config{
		ClockHz:         ClockHz,
		FrameHz:         FrameHz,
		FrameInterrupts: &machine.FrameInterrupts{Mid: 1, VBlank: 2},
	}), nil
}
