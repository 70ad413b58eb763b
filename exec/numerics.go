package exec

import "math/bits"

// parity reports even parity, the sense of the 8080's P flag.
func parity(v byte) bool {
	return bits.OnesCount8(v)%2 == 0
}

// add8 computes a + b + carry-in and returns the result along with the
// carry and auxiliary carry out.
func add8(a, b byte, carry bool) (out byte, cy, ac bool) {
	var cin byte
	if carry {
		cin = 1
	}
	wide := uint16(a) + uint16(b) + uint16(cin)
	out = byte(wide)
	cy = wide > 0xff
	ac = (a&0x0f)+(b&0x0f)+cin > 0x0f
	return
}

// sub8 computes a - b - borrow-in and returns the result along with the
// borrow and auxiliary carry out. The auxiliary carry follows the
// processor's internal addition of the complement, so it reads as set
// when no borrow crosses bit 3.
func sub8(a, b byte, borrow bool) (out byte, cy, ac bool) {
	var bin byte
	if borrow {
		bin = 1
	}
	wide := int(a) - int(b) - int(bin)
	out = byte(wide)
	cy = wide < 0
	ac = (a&0x0f)+(^b&0x0f)+(1-bin) > 0x0f
	return
}

// add16 computes a + b and returns the sum with the carry out.
func add16(a, b uint16) (uint16, bool) {
	wide := uint32(a) + uint32(b)
	return uint16(wide), wide > 0xffff
}
