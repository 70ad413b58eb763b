package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrint(t *testing.T) {
	image := []byte{
		0x00,             // nop
		0x3e, 0x0a,       // mvi a, 0x0a
		0xd3, 0x00,       // out 0x00
		0xc3, 0x00, 0x01, // jmp 0x0100
		0x76,             // hlt
	}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, image, 0x100))

	want := strings.Join([]string{
		"0100  nop",
		"0101  mvi a, 0x0a",
		"0103  out 0x00",
		"0105  jmp 0x0100",
		"0108  hlt",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestPrintTruncatedTail(t *testing.T) {
	// The jmp's address is cut off by the end of the image.
	image := []byte{0x00, 0xc3, 0x34}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, image, 0))

	want := strings.Join([]string{
		"0000  nop",
		"0001  db 0xc3",
		"0002  db 0x34",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestStats(t *testing.T) {
	image := []byte{
		0x00,       // nop
		0x00,       // nop
		0x3e, 0x0a, // mvi a, 0x0a
		0x76,       // hlt
	}

	stats := Stats(image)
	require.Len(t, stats, 3)

	assert.Equal(t, Stat{Op: "nop", Count: 2, Bytes: 2, Cycles: 8}, stats[0])
	assert.Equal(t, Stat{Op: "hlt", Count: 1, Bytes: 1, Cycles: 7}, stats[1])
	assert.Equal(t, Stat{Op: "mvi", Count: 1, Bytes: 2, Cycles: 7}, stats[2])
}

func TestStatsTruncatedTail(t *testing.T) {
	stats := Stats([]byte{0x3e})
	require.Len(t, stats, 1)
	assert.Equal(t, Stat{Op: "db", Count: 1, Bytes: 1, Cycles: 0}, stats[0])
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, Stats([]byte{0x00, 0x76})))

	want := strings.Join([]string{
		"op,count,bytes,cycles",
		"hlt,1,1,7",
		"nop,1,1,4",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}
