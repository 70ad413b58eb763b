// Package machine drives a system against wall-clock time, feeding it
// the periodic restart interrupts that raster hardware generates.
package machine

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/mw8080/emu/exec"
	"github.com/mw8080/emu/i8080/isa"
)

// Defaults for machines that leave the rates unset.
const (
	DefaultClockHz = 2_000_000
	DefaultFrameHz = 60
)

// FrameInterrupts names the restart vectors a machine raises as the
// beam sweeps a frame: one at mid-screen and one at the vertical blank.
type FrameInterrupts struct {
	Mid    byte
	VBlank byte
}

// Config describes a machine's timing.
type Config struct {
	// ClockHz is the CPU clock in cycles per second. Zero means 2 MHz.
	ClockHz uint64
	// FrameHz is the display refresh rate. Zero means 60 Hz.
	FrameHz uint64
	// FrameInterrupts schedules the two per-frame restarts when set.
	FrameInterrupts *FrameInterrupts
}

// Machine couples a system and its I/O bus with a clock.
type Machine struct {
	sys *exec.System
	bus exec.Bus

	clockHz   uint64
	frameHz   uint64
	threshold uint64

	vectors [2]byte
	timed   bool
	phase   int
	acc     uint64

	trace io.Writer
}

// New creates a machine around sys and bus. Zero config fields fall
// back to the 2 MHz, 60 Hz defaults.
func New(sys *exec.System, bus exec.Bus, cfg Config) *Machine {
	if cfg.ClockHz == 0 {
		cfg.ClockHz = DefaultClockHz
	}
	if cfg.FrameHz == 0 {
		cfg.FrameHz = DefaultFrameHz
	}

	m := &Machine{
		sys:     sys,
		bus:     bus,
		clockHz: cfg.ClockHz,
		frameHz: cfg.FrameHz,
		// Two interrupts per frame, so the threshold is half a frame.
		threshold: cfg.ClockHz / cfg.FrameHz / 2,
	}
	if irq := cfg.FrameInterrupts; irq != nil {
		m.vectors = [2]byte{irq.Mid, irq.VBlank}
		m.timed = true
	}
	return m
}

// System returns the machine's system.
func (m *Machine) System() *exec.System {
	return m.sys
}

// ClockHz returns the CPU clock in cycles per second.
func (m *Machine) ClockHz() uint64 {
	return m.clockHz
}

// FrameInterval returns the wall-clock duration of one frame.
func (m *Machine) FrameInterval() time.Duration {
	return time.Second / time.Duration(m.frameHz)
}

// Trace streams executed instructions to w as assembly, one per line
// with the program counter.
func (m *Machine) Trace(w io.Writer) {
	m.trace = w
}

// RunFrame emulates one frame's worth of clock cycles. The interrupt
// phase restarts with the frame: mid-screen first, vertical blank
// second.
func (m *Machine) RunFrame() (halted bool, err error) {
	m.phase, m.acc = 0, 0
	return m.run(m.clockHz / m.frameHz)
}

// RunCycles emulates at least n clock cycles, carrying the interrupt
// phase across calls.
func (m *Machine) RunCycles(n uint64) (halted bool, err error) {
	return m.run(n)
}

func (m *Machine) run(budget uint64) (bool, error) {
	var done uint64
	for done < budget {
		in, err := m.sys.Fetch()
		if err != nil {
			return false, err
		}
		if m.trace != nil {
			fmt.Fprintf(m.trace, "%04x  %s\n", m.sys.CPU.PC, in.String())
		}

		cycles, halted, err := m.sys.Execute(in, m.bus)
		if err != nil {
			return false, err
		}
		if halted {
			return true, nil
		}
		done += uint64(cycles)
		if !m.timed {
			continue
		}

		m.acc += uint64(cycles)
		if m.acc >= m.threshold {
			// The restart is offered either way so that the phase
			// keeps alternating while interrupts are disabled.
			irq, _, err := m.sys.Interrupt(isa.NewRst(m.vectors[m.phase]), m.bus)
			if err != nil {
				return false, err
			}
			m.phase ^= 1
			done += uint64(irq)
			m.acc += uint64(irq)
			m.acc -= m.threshold
		}
	}
	return false, nil
}

// Run emulates frames at the configured refresh rate until the context
// is canceled or the CPU halts.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.FrameInterval())
	defer ticker.Stop()

	Logger().Info("machine running",
		zap.Uint64("clock_hz", m.clockHz),
		zap.Uint64("frame_hz", m.frameHz),
		zap.Bool("frame_interrupts", m.timed))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			halted, err := m.RunFrame()
			if err != nil {
				return err
			}
			if halted {
				Logger().Info("cpu halted", zap.Uint16("pc", m.sys.CPU.PC))
				return nil
			}
		}
	}
}
