package exec

import "fmt"

// OutOfRangeError indicates an access past the end of memory.
type OutOfRangeError struct {
	Addr uint16
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("memory access out of range: 0x%04x", e.Addr)
}

// ReadOnlyError indicates a write into a ROM region.
type ReadOnlyError struct {
	Addr uint16
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("write to read-only memory at 0x%04x", e.Addr)
}

// ROMBoundsError indicates a ROM image that does not fit in memory.
type ROMBoundsError struct {
	At   uint16
	Size int
	Mem  int
}

func (e *ROMBoundsError) Error() string {
	return fmt.Sprintf("rom of 0x%x bytes at 0x%04x exceeds memory of 0x%x bytes", e.Size, e.At, e.Mem)
}

// ROMOverlapError indicates two ROM regions that share addresses.
type ROMOverlapError struct {
	At   uint16
	Size int
}

func (e *ROMOverlapError) Error() string {
	return fmt.Sprintf("rom of 0x%x bytes at 0x%04x overlaps a registered rom region", e.Size, e.At)
}

// FaultError wraps a memory or decode error with the program counter of
// the instruction that raised it.
type FaultError struct {
	PC  uint16
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("fault at 0x%04x: %v", e.PC, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}
