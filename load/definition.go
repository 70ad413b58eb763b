package load

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mw8080/emu/exec"
	"github.com/mw8080/emu/machine"
)

var ErrNoROMs = fmt.Errorf("machine definition has no rom images")

// Definition describes a machine: its memory, the ROM images to place
// in it, the reset address, and the clock. Definitions are usually
// read from YAML files next to the ROMs they name.
type Definition struct {
	Name           string `yaml:"name"`
	ClockHz        uint64 `yaml:"clock_hz"`
	FrameHz        uint64 `yaml:"frame_hz"`
	Memory         uint32 `yaml:"memory"`
	AllowROMWrites bool   `yaml:"allow_rom_writes"`
	Start          uint16 `yaml:"start"`

	ROMs            []ROM            `yaml:"roms"`
	FrameInterrupts *FrameInterrupts `yaml:"frame_interrupts"`

	dir string
}

// ROM names an image file and the address it loads at. Relative paths
// resolve against the definition file's directory.
type ROM struct {
	Path string `yaml:"path"`
	At   uint16 `yaml:"at"`
}

// FrameInterrupts names the restart vectors raised at mid-screen and
// at the vertical blank.
type FrameInterrupts struct {
	Mid    byte `yaml:"mid"`
	VBlank byte `yaml:"vblank"`
}

// ReadDefinition reads and validates a machine definition. Fields not
// in the schema are rejected. An unset memory size means the full
// address space.
func ReadDefinition(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var d Definition
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if len(d.ROMs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoROMs)
	}
	if d.Memory == 0 {
		d.Memory = 0x10000
	}
	d.dir = filepath.Dir(path)
	return &d, nil
}

// Build assembles the machine the definition describes, wired to bus.
func (d *Definition) Build(bus exec.Bus) (*machine.Machine, error) {
	mem := exec.NewMemory(d.Memory)
	mem.AllowROMWrites(d.AllowROMWrites)

	for _, rom := range d.ROMs {
		image, err := ReadROM(d.resolve(rom.Path))
		if err != nil {
			return nil, err
		}
		if err := mem.PutROM(image, rom.At); err != nil {
			return nil, fmt.Errorf("%s: %w", rom.Path, err)
		}
	}

	sys := exec.NewSystem(mem, d.Start)
	cfg := machine.Config{ClockHz: d.ClockHz, FrameHz: d.FrameHz}
	if irq := d.FrameInterrupts; irq != nil {
		cfg.FrameInterrupts = &machine.FrameInterrupts{Mid: irq.Mid, VBlank: irq.VBlank}
	}
	return machine.New(sys, bus, cfg), nil
}

func (d *Definition) resolve(path string) string {
	if filepath.IsAbs(path) || d.dir == "" {
		return path
	}
	return filepath.Join(d.dir, path)
}
