package exec

// Bus is the I/O port surface seen by the in and out instructions.
type Bus interface {
	// In reads the byte presented on a port.
	In(port byte) byte
	// Out latches a byte onto a port.
	Out(port byte, v byte)
}

// NopBus is a Bus with nothing attached. Reads return zero and writes
// are discarded.
type NopBus struct{}

func (NopBus) In(port byte) byte     { return 0 }
func (NopBus) Out(port byte, v byte) {}
