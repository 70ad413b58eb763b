package exec

import (
	"github.com/willf/bitset"
)

// Memory is the flat address space seen by the CPU: up to 64 KiB of
// bytes with registered read-only regions.
type Memory struct {
	bytes          []byte
	rom            *bitset.BitSet
	allowROMWrites bool
}

// NewMemory creates a memory of the given size in bytes. Sizes beyond
// the 16-bit address space are capped at 64 KiB.
func NewMemory(size uint32) *Memory {
	if size > 0x10000 {
		size = 0x10000
	}
	return &Memory{
		bytes: make([]byte, size),
		rom:   bitset.New(uint(size)),
	}
}

// Size returns the size of the memory in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.bytes))
}

// Bytes returns the memory's backing bytes.
func (m *Memory) Bytes() []byte {
	return m.bytes
}

// AllowROMWrites controls whether writes into registered ROM regions
// succeed. Test harnesses that patch their own low memory need this.
func (m *Memory) AllowROMWrites(allow bool) {
	m.allowROMWrites = allow
}

// PutROM copies image into memory at the given address and marks the
// region read-only. It fails if the image runs past the end of memory
// or overlaps a previously registered region.
func (m *Memory) PutROM(image []byte, at uint16) error {
	start, end := uint(at), uint(at)+uint(len(image))
	if end > uint(len(m.bytes)) {
		return &ROMBoundsError{At: at, Size: len(image), Mem: len(m.bytes)}
	}
	if next, ok := m.rom.NextSet(start); ok && next < end {
		return &ROMOverlapError{At: at, Size: len(image)}
	}
	copy(m.bytes[start:end], image)
	for i := start; i < end; i++ {
		m.rom.Set(i)
	}
	return nil
}

// Byte returns the byte stored at the given address.
func (m *Memory) Byte(addr uint16) (byte, error) {
	if int(addr) >= len(m.bytes) {
		return 0, &OutOfRangeError{Addr: addr}
	}
	return m.bytes[addr], nil
}

// PutByte stores a byte at the given address. Writes into ROM regions
// fail unless the memory allows them.
func (m *Memory) PutByte(addr uint16, v byte) error {
	if int(addr) >= len(m.bytes) {
		return &OutOfRangeError{Addr: addr}
	}
	if !m.allowROMWrites && m.rom.Test(uint(addr)) {
		return &ReadOnlyError{Addr: addr}
	}
	m.bytes[addr] = v
	return nil
}

// Uint16At returns the little-endian 16-bit value stored at the given
// address.
func (m *Memory) Uint16At(addr uint16) (uint16, error) {
	lo, err := m.Byte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := m.Byte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// PutUint16At stores a 16-bit value at the given address in
// little-endian order.
func (m *Memory) PutUint16At(addr uint16, v uint16) error {
	if err := m.PutByte(addr, byte(v)); err != nil {
		return err
	}
	return m.PutByte(addr+1, byte(v>>8))
}

// Slice returns the n bytes of memory starting at the given address.
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	end := int(addr) + n
	if end > len(m.bytes) {
		return nil, &OutOfRangeError{Addr: addr}
	}
	return m.bytes[addr:end:end], nil
}
