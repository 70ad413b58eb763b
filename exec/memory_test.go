package exec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestROMBoundaries(t *testing.T) {
	m := NewMemory(100)
	require.NoError(t, m.PutROM(make([]byte, 10), 50))
	require.NoError(t, m.PutROM(make([]byte, 20), 60))

	require.NoError(t, m.PutByte(0, 1))
	require.NoError(t, m.PutByte(49, 1))

	for _, addr := range []uint16{50, 59, 60, 79} {
		var ro *ReadOnlyError
		err := m.PutByte(addr, 1)
		require.True(t, errors.As(err, &ro), "write at %d", addr)
		assert.Equal(t, addr, ro.Addr)
	}

	require.NoError(t, m.PutByte(80, 1))
	require.NoError(t, m.PutByte(99, 1))

	var oor *OutOfRangeError
	require.True(t, errors.As(m.PutByte(100, 1), &oor))
	assert.Equal(t, uint16(100), oor.Addr)
}

func TestROMOverlap(t *testing.T) {
	m := NewMemory(100)
	require.NoError(t, m.PutROM(make([]byte, 10), 50))

	var overlap *ROMOverlapError
	require.True(t, errors.As(m.PutROM(make([]byte, 20), 55), &overlap))
	assert.Equal(t, uint16(55), overlap.At)
	assert.Equal(t, 20, overlap.Size)
}

func TestROMBounds(t *testing.T) {
	m := NewMemory(0x100)

	var bounds *ROMBoundsError
	require.True(t, errors.As(m.PutROM(make([]byte, 0x20), 0xf0), &bounds))
	assert.Equal(t, uint16(0xf0), bounds.At)
	assert.Equal(t, 0x20, bounds.Size)
}

func TestAllowROMWrites(t *testing.T) {
	m := NewMemory(0x100)
	require.NoError(t, m.PutROM([]byte{0xaa}, 0x10))

	require.Error(t, m.PutByte(0x10, 0x55))

	m.AllowROMWrites(true)
	require.NoError(t, m.PutByte(0x10, 0x55))

	v, err := m.Byte(0x10)
	require.NoError(t, err)
	assert.Equal(t, byte(0x55), v)
}

func TestMemoryCap(t *testing.T) {
	m := NewMemory(0x20000)
	assert.Equal(t, uint32(0x10000), m.Size())
}

func TestUint16(t *testing.T) {
	m := NewMemory(0x100)
	require.NoError(t, m.PutUint16At(0x40, 0xbeef))

	assert.Equal(t, []byte{0xef, 0xbe}, m.Bytes()[0x40:0x42])

	v, err := m.Uint16At(0x40)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xbeef), v)

	_, err = m.Uint16At(0xff)
	require.Error(t, err)
}

func TestSlice(t *testing.T) {
	m := NewMemory(0x100)
	require.NoError(t, m.PutByte(0x20, 0x42))

	b, err := m.Slice(0x20, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42, 0, 0, 0}, b)

	_, err = m.Slice(0xfe, 4)
	require.Error(t, err)
}
