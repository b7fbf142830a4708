package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseByte(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value byte
		ok    bool
	}){
		{"2a", 0x2a, true},
		{"2A", 0x2a, true},
		{"0x2a", 0x2a, true},
		{" ff\n", 0xff, true},
		{"7", 0x07, true},
		{"", 0, false},
		{"0x", 0, false},
		{"100", 0, false},
		{"zz", 0, false},
		{"-1", 0, false},
	}

	for _, entry := range table {
		value, err := ParseByte(entry.text)
		if entry.ok {
			assert.NoError(err, entry.text)
			assert.Equal(entry.value, value, entry.text)
		} else {
			assert.ErrorIs(err, ErrInputInvalid(""), entry.text)
		}
	}
}

func TestTape_Input(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Reader: strings.NewReader("2a 0x10\n\tff\nzz")}

	for _, expect := range []byte{0x2a, 0x10, 0xff} {
		value, err := tape.Input(1)
		assert.NoError(err)
		assert.Equal(expect, value)
	}

	_, err := tape.Input(1)
	var invalid ErrInputInvalid
	assert.True(errors.As(err, &invalid))
	assert.Equal(ErrInputInvalid("zz"), invalid)

	_, err = tape.Input(1)
	assert.ErrorIs(err, ErrInputEmpty)

	tape.Rewind()
	value, err := tape.Input(1)
	assert.NoError(err)
	assert.Equal(byte(0x2a), value)
}

func TestTape_NoInput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}

	_, err := tape.Input(0)
	assert.ErrorIs(err, ErrInputEmpty)
	assert.NoError(tape.Output(0, 0x12))
}

func TestTape_Device(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	var device Device = &Tape{Reader: strings.NewReader("7f"), Writer: output}

	value, err := device.Input(3)
	assert.NoError(err)
	assert.Equal(byte(0x7f), value)
	assert.NoError(device.Output(3, value))
	assert.Equal("7f .\n", output.String())

	device.Rewind()
	value, err = device.Input(3)
	assert.NoError(err)
	assert.Equal(byte(0x7f), value)
}

func TestTape_Output(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Writer: output}

	assert.NoError(tape.Output(1, 0x2a))
	assert.NoError(tape.Output(2, 0x05))

	assert.Equal("2a .\n05 .\n", output.String())
}

func TestScript(t *testing.T) {
	assert := assert.New(t)

	script := &Script{Inputs: []byte{1, 2}}

	value, err := script.Input(0)
	assert.NoError(err)
	assert.Equal(byte(1), value)
	value, err = script.Input(0)
	assert.NoError(err)
	assert.Equal(byte(2), value)
	_, err = script.Input(0)
	assert.ErrorIs(err, ErrInputEmpty)

	assert.NoError(script.Output(3, 0xaa))
	assert.NoError(script.Output(4, 0xbb))
	assert.Equal([]byte{0xaa, 0xbb}, script.Outputs)
	assert.Equal([]uint16{3, 4}, script.Selectors)

	script.Rewind()
	assert.Nil(script.Outputs)
	value, err = script.Input(0)
	assert.NoError(err)
	assert.Equal(byte(1), value)
}

func TestLoopback(t *testing.T) {
	assert := assert.New(t)

	lb := &Loopback{Capacity: 2}
	lb.Rewind()

	_, err := lb.Input(0)
	assert.ErrorIs(err, ErrInputEmpty)

	assert.NoError(lb.Output(0, 1))
	assert.NoError(lb.Output(0, 2))
	assert.ErrorIs(lb.Output(0, 3), ErrDeviceFull)

	value, err := lb.Input(0)
	assert.NoError(err)
	assert.Equal(byte(1), value)

	// Wraps around the capacity boundary.
	assert.NoError(lb.Output(0, 3))
	value, err = lb.Input(0)
	assert.NoError(err)
	assert.Equal(byte(2), value)
	value, err = lb.Input(0)
	assert.NoError(err)
	assert.Equal(byte(3), value)
	assert.Equal(0, lb.Size)
}

func TestLoopback_Default(t *testing.T) {
	assert := assert.New(t)

	lb := &Loopback{}
	assert.NoError(lb.Output(0, 0x42))
	assert.Equal(LOOPBACK_DEFAULT_CAPACITY, lb.Capacity)

	value, err := lb.Input(0)
	assert.NoError(err)
	assert.Equal(byte(0x42), value)
}
