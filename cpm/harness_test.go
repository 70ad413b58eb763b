package cpm

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutChar(t *testing.T) {
	// mvi c, 2; mvi e, 'H'; call 5; jmp 0
	h, err := New([]byte{
		0x0e, 0x02,
		0x1e, 'H',
		0xcd, 0x05, 0x00,
		0xc3, 0x00, 0x00,
	})
	require.NoError(t, err)

	res, err := h.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "H\n", string(h.Output()))
	assert.Equal(t, uint64(13), res.Instructions)
	assert.Equal(t, uint64(111), res.Cycles)
}

func TestPutString(t *testing.T) {
	// mvi c, 9; lxi d, 0x0110; call 5; jmp 0; with the message at 0x110.
	program := []byte{
		0x0e, 0x09,
		0x11, 0x10, 0x01,
		0xcd, 0x05, 0x00,
		0xc3, 0x00, 0x00,
	}
	program = append(program, make([]byte, 0x10-len(program))...)
	program = append(program, []byte("HELLO!$")...)

	h, err := New(program)
	require.NoError(t, err)

	res, err := h.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "HELLO!\n", string(h.Output()))
	assert.NotZero(t, res.Cycles)
}

func TestEcho(t *testing.T) {
	h, err := New([]byte{
		0x0e, 0x02,
		0x1e, '*',
		0xcd, 0x05, 0x00,
		0xc3, 0x00, 0x00,
	})
	require.NoError(t, err)

	var echoed bytes.Buffer
	h.Echo(&echoed)

	_, err = h.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, h.Output(), echoed.Bytes())
}

func TestTrace(t *testing.T) {
	// jmp 0, straight to the exit.
	h, err := New([]byte{0xc3, 0x00, 0x00})
	require.NoError(t, err)

	var buf bytes.Buffer
	h.Trace(&buf)

	_, err = h.Run(context.Background(), 0)
	require.NoError(t, err)

	want := "0100  jmp 0x0000\n" +
		"0000  mvi a, 0x0a\n" +
		"0002  out 0x00\n" +
		"0004  hlt\n"
	assert.Equal(t, want, buf.String())
}

func TestSelfModifyingProgram(t *testing.T) {
	// mvi a, 0x76; sta 0x0105; the store turns the next byte into hlt.
	h, err := New([]byte{
		0x3e, 0x76,
		0x32, 0x05, 0x01,
		0x00,
	})
	require.NoError(t, err)

	res, err := h.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Instructions)
	assert.Empty(t, h.Output())
}

func TestInstructionLimit(t *testing.T) {
	// jmp 0x0100
	h, err := New([]byte{0xc3, 0x00, 0x01})
	require.NoError(t, err)

	res, err := h.Run(context.Background(), 100)

	var limit *LimitError
	require.True(t, errors.As(err, &limit))
	assert.Equal(t, uint64(100), limit.Instructions)
	assert.Equal(t, uint64(100), res.Instructions)
}

func TestRunCanceled(t *testing.T) {
	h, err := New([]byte{0xc3, 0x00, 0x01})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.Run(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
}
