// Package invaders wires the Space Invaders cabinet around the CPU
// core: the input and output port board, the shift register between
// them, and the rotated raster display.
package invaders

import "sync"

// Input bits on port 1.
const (
	BitCoin  = 0
	BitStart = 2
	BitFire  = 4
	BitLeft  = 5
	BitRight = 6
)

// Ports is the cabinet's I/O board: eight input ports, eight output
// ports, and the 16-bit shift register the game uses to slide sprites.
// It is safe to poke input bits from another goroutine while the
// machine runs.
type Ports struct {
	mu    sync.Mutex
	in    [8]byte
	out   [8]byte
	shift uint16
}

// NewPorts returns the board in its power-on state, with the DIP
// switches that the game ROM expects wired high.
func NewPorts() *Ports {
	p := &Ports{}
	p.SetInputBit(0, 1)
	p.SetInputBit(0, 2)
	p.SetInputBit(0, 3)
	p.SetInputBit(1, 3)
	return p
}

// SetInputBit raises a bit on an input port.
func (p *Ports) SetInputBit(port int, bit uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in[port&7] |= 1 << bit
}

// ClearInputBit lowers a bit on an input port.
func (p *Ports) ClearInputBit(port int, bit uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in[port&7] &^= 1 << bit
}

// Output returns the byte last latched onto an output port.
func (p *Ports) Output(port int) byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out[port&7]
}

// In reads an input port. Port 3 reads the shift register at the
// offset last written to port 2.
func (p *Ports) In(port byte) byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if port == 3 {
		return byte(p.shift >> (p.out[2] & 0x07))
	}
	return p.in[port&7]
}

// Out writes an output port. Port 4 feeds the shift register: the new
// byte becomes the high half and the old high half slides down.
func (p *Ports) Out(port byte, v byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if port == 4 {
		p.shift = uint16(v)<<8 | p.shift>>8
		return
	}
	p.out[port&7] = v
}
