// Package load reads ROM images and machine definitions from disk.
package load

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadROM reads a ROM image.
func ReadROM(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%s: empty rom image", path)
	}
	if len(image) > 0x10000 {
		return nil, fmt.Errorf("%s: rom image larger than the address space", path)
	}
	return image, nil
}

// InvadersROMs resolves the Space Invaders ROM set under dir: either a
// single combined image named invaders, or the four chips invaders.h,
// invaders.g, invaders.f, and invaders.e in address order.
func InvadersROMs(dir string) ([][]byte, error) {
	if image, err := ReadROM(filepath.Join(dir, "invaders")); err == nil {
		return [][]byte{image}, nil
	}

	roms := make([][]byte, 0, 4)
	for _, name := range []string{"invaders.h", "invaders.g", "invaders.f", "invaders.e"} {
		image, err := ReadROM(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		roms = append(roms, image)
	}
	return roms, nil
}
