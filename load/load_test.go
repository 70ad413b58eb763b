package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mw8080/emu/exec"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadROM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "game.rom", []byte{1, 2, 3})

	image, err := ReadROM(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, image)

	_, err = ReadROM(filepath.Join(dir, "missing.rom"))
	require.Error(t, err)

	empty := writeFile(t, dir, "empty.rom", nil)
	_, err = ReadROM(empty)
	require.Error(t, err)
}

func TestReadDefinition(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "machine.yaml", []byte(`
name: test cabinet
clock_hz: 1000000
memory: 16384
start: 0
roms:
  - path: game.rom
    at: 0
frame_interrupts:
  mid: 1
  vblank: 2
`))

	d, err := ReadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, "test cabinet", d.Name)
	assert.Equal(t, uint64(1000000), d.ClockHz)
	assert.Equal(t, uint32(16384), d.Memory)
	require.Len(t, d.ROMs, 1)
	assert.Equal(t, "game.rom", d.ROMs[0].Path)
	require.NotNil(t, d.FrameInterrupts)
	assert.Equal(t, byte(1), d.FrameInterrupts.Mid)
	assert.Equal(t, byte(2), d.FrameInterrupts.VBlank)
}

func TestReadDefinitionDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "machine.yaml", []byte(`
roms:
  - path: game.rom
`))

	d, err := ReadDefinition(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10000), d.Memory)
	assert.Nil(t, d.FrameInterrupts)
}

func TestReadDefinitionRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "machine.yaml", []byte(`
roms:
  - path: game.rom
refresh: 60
`))

	_, err := ReadDefinition(path)
	require.Error(t, err)
}

func TestReadDefinitionNoROMs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "machine.yaml", []byte(`name: bare`))

	_, err := ReadDefinition(path)
	require.ErrorIs(t, err, ErrNoROMs)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "game.rom", []byte{0x76})
	path := writeFile(t, dir, "machine.yaml", []byte(`
name: halting machine
memory: 4096
start: 0
roms:
  - path: game.rom
    at: 0
`))

	d, err := ReadDefinition(path)
	require.NoError(t, err)

	m, err := d.Build(exec.NopBus{})
	require.NoError(t, err)

	mem := m.System().Mem
	assert.Equal(t, uint32(4096), mem.Size())

	v, err := mem.Byte(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x76), v)

	// The image is write protected by default.
	require.Error(t, mem.PutByte(0, 0))

	halted, err := m.RunFrame()
	require.NoError(t, err)
	assert.True(t, halted)
}

func TestBuildAllowsROMWrites(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "game.rom", []byte{0x00})
	path := writeFile(t, dir, "machine.yaml", []byte(`
allow_rom_writes: true
roms:
  - path: game.rom
`))

	d, err := ReadDefinition(path)
	require.NoError(t, err)

	m, err := d.Build(exec.NopBus{})
	require.NoError(t, err)
	require.NoError(t, m.System().Mem.PutByte(0, 0x76))
}

func TestBuildMissingROM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "machine.yaml", []byte(`
roms:
  - path: missing.rom
`))

	d, err := ReadDefinition(path)
	require.NoError(t, err)

	_, err = d.Build(exec.NopBus{})
	require.Error(t, err)
}

func TestInvadersROMs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "invaders", []byte{1, 2, 3, 4})

	roms, err := InvadersROMs(dir)
	require.NoError(t, err)
	require.Len(t, roms, 1)
	assert.Equal(t, []byte{1, 2, 3, 4}, roms[0])
}

func TestInvadersROMChips(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"invaders.h", "invaders.g", "invaders.f", "invaders.e"} {
		writeFile(t, dir, name, []byte{byte(i)})
	}

	roms, err := InvadersROMs(dir)
	require.NoError(t, err)
	require.Len(t, roms, 4)
	for i, rom := range roms {
		assert.Equal(t, []byte{byte(i)}, rom)
	}
}

func TestInvadersROMsMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "invaders.h", []byte{1})

	_, err := InvadersROMs(dir)
	require.Error(t, err)
}
