package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd8(t *testing.T) {
	cases := []struct {
		a, b   byte
		carry  bool
		out    byte
		cy, ac bool
	}{
		{0x00, 0x00, false, 0x00, false, false},
		{0x2e, 0x6c, false, 0x9a, false, true},
		{0xff, 0x01, false, 0x00, true, true},
		{0xff, 0x00, true, 0x00, true, true},
		{0x0f, 0x01, false, 0x10, false, true},
		{0x08, 0x07, false, 0x0f, false, false},
		{0x08, 0x07, true, 0x10, false, true},
		{0x80, 0x80, false, 0x00, true, false},
	}
	for _, c := range cases {
		out, cy, ac := add8(c.a, c.b, c.carry)
		assert.Equal(t, c.out, out, "0x%02x + 0x%02x + %v", c.a, c.b, c.carry)
		assert.Equal(t, c.cy, cy, "cy of 0x%02x + 0x%02x + %v", c.a, c.b, c.carry)
		assert.Equal(t, c.ac, ac, "ac of 0x%02x + 0x%02x + %v", c.a, c.b, c.carry)
	}
}

func TestSub8(t *testing.T) {
	cases := []struct {
		a, b   byte
		borrow bool
		out    byte
		cy, ac bool
	}{
		{0x00, 0x00, false, 0x00, false, true},
		{0xc5, 0x62, false, 0x63, false, true},
		{0x0c, 0x0f, false, 0xfd, true, false},
		{0x10, 0x01, false, 0x0f, false, false},
		{0x3f, 0x0f, false, 0x30, false, true},
		{0x00, 0x00, true, 0xff, true, false},
		{0x01, 0x00, true, 0x00, false, true},
	}
	for _, c := range cases {
		out, cy, ac := sub8(c.a, c.b, c.borrow)
		assert.Equal(t, c.out, out, "0x%02x - 0x%02x - %v", c.a, c.b, c.borrow)
		assert.Equal(t, c.cy, cy, "cy of 0x%02x - 0x%02x - %v", c.a, c.b, c.borrow)
		assert.Equal(t, c.ac, ac, "ac of 0x%02x - 0x%02x - %v", c.a, c.b, c.borrow)
	}
}

func TestParity(t *testing.T) {
	assert.True(t, parity(0x00))
	assert.True(t, parity(0x03))
	assert.True(t, parity(0xff))
	assert.False(t, parity(0x01))
	assert.False(t, parity(0xfe))
}
