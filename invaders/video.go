package invaders

import "github.com/mw8080/emu/exec"

// The frame buffer holds one bit per pixel, 32 bytes per memory row.
// The tube is mounted rotated, so memory rows run up the screen.
const (
	VRAMStart = 0x2400
	VRAMRows  = 224
	VRAMPitch = 32
	VRAMSize  = VRAMRows * VRAMPitch

	// Screen dimensions after rotation.
	Width  = 224
	Height = 256
)

// VRAM returns the frame buffer window of mem.
func VRAM(mem *exec.Memory) ([]byte, error) {
	return mem.Slice(VRAMStart, VRAMSize)
}

// At samples the pixel at screen coordinates (x, y), with x across the
// 224 columns and y down the 256 rows.
func At(vram []byte, x, y int) bool {
	d := Height - 1 - y
	return vram[x*VRAMPitch+d/8]&(1<<(d%8)) != 0
}

// RGBA unpacks the frame buffer into a Width by Height RGBA image,
// white on black, rotating the memory layout into screen orientation.
func RGBA(vram []byte) []byte {
	out := make([]byte, Width*Height*4)
	for i := 3; i < len(out); i += 4 {
		out[i] = 0xff
	}

	for y := 0; y < VRAMRows; y++ {
		for x := 0; x < VRAMPitch; x++ {
			b := vram[y*VRAMPitch+x]
			for bit := 0; bit < 8; bit++ {
				var v byte
				if b&(1<<bit) != 0 {
					v = 0xff
				}
				row := Height - 1 - (x*8 + bit)
				i := (row*Width + y) * 4
				out[i], out[i+1], out[i+2] = v, v, v
			}
		}
	}
	return out
}
