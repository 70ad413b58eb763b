package i8080

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterPairSplit(t *testing.T) {
	cases := []struct {
		pair   RegisterPair
		hi, lo Register
		ok     bool
	}{
		{PSW, A, F, true},
		{BC, B, C, true},
		{DE, D, E, true},
		{HL, H, L, true},
		{SP, 0, 0, false},
	}
	for _, c := range cases {
		hi, lo, ok := c.pair.Split()
		assert.Equal(t, c.ok, ok, "%v", c.pair)
		if ok {
			assert.Equal(t, c.hi, hi, "%v", c.pair)
			assert.Equal(t, c.lo, lo, "%v", c.pair)
		}
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "a", A.String())
	assert.Equal(t, "m", M.String())
	assert.Equal(t, "psw", PSW.String())
	assert.Equal(t, "sp", SP.String())
	assert.Equal(t, "cy", FlagCY.String())
	assert.Equal(t, "ac", FlagAC.String())
}
