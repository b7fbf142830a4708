package emulator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/blue/cpu"
)

func TestReadHex(t *testing.T) {
	assert := assert.New(t)

	words, err := ReadHex(strings.NewReader("6004 1005 0x0000 ; LDA ADD HLT\n\n# data\n0000 5\n03\n"))
	assert.NoError(err)
	assert.Equal([]uint16{0x6004, 0x1005, 0x0000, 0x0000, 0x0005, 0x0003}, words)

	_, err = ReadHex(strings.NewReader("0000\n12345\n"))
	var hex *ErrHexWord
	if assert.True(errors.As(err, &hex)) {
		assert.Equal(2, hex.LineNo)
		assert.Equal("12345", hex.Word)
	}

	_, err = ReadHex(strings.NewReader("xyz"))
	assert.True(errors.As(err, &hex))
}

func TestWriteHex(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	words := []uint16{0, 1, 2, 3, 4, 5, 6, 7, 0x8, 0xabcd}
	assert.NoError(WriteHex(output, words))
	assert.Equal("0000 0001 0002 0003 0004 0005 0006 0007\n0008 abcd\n", output.String())

	read, err := ReadHex(output)
	assert.NoError(err)
	assert.Equal(words, read)

	output.Reset()
	assert.NoError(WriteHex(output, nil))
	assert.Equal("", output.String())
}

func TestBinary(t *testing.T) {
	assert := assert.New(t)

	words, err := ReadBinary(bytes.NewReader([]byte{0x04, 0x60, 0x05, 0x10, 0x07}))
	assert.NoError(err)
	assert.Equal([]uint16{0x6004, 0x1005, 0x0007}, words)

	output := &bytes.Buffer{}
	assert.NoError(WriteBinary(output, []uint16{0x6004, 0x1005}))
	assert.Equal([]byte{0x04, 0x60, 0x05, 0x10}, output.Bytes())
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	files := map[string][]byte{
		"add.s":    []byte("LDA x\nADD y\nHLT\nx: .word 5\ny: .word 3\n"),
		"add.blue": []byte("LDA x\nADD y\nHLT\nx: .word 5\ny: .word 3\n"),
		"add.hex":  []byte("6003 1004 0000 0005 0003\n"),
		"add.bin":  {0x03, 0x60, 0x04, 0x10, 0x00, 0x00, 0x05, 0x00, 0x03, 0x00},
		"add.ASM":  []byte("LDA x\nADD y\nHLT\nx: .word 5\ny: .word 3\n"),
		"bad.hex":  []byte("zzzz\n"),
		"bad.s":    []byte("FOO\n"),
		"add.orig": {0x03, 0x60, 0x04, 0x10, 0x00, 0x00, 0x05, 0x00, 0x03},
	}
	for name, data := range files {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	for _, name := range []string{"add.blue", "add.s", "add.ASM", "add.hex", "add.bin", "add.orig"} {
		emu := NewEmulator(Settings{})
		err := emu.LoadFile(filepath.Join(dir, name))
		if !assert.NoError(err, name) {
			continue
		}
		status, err := emu.Run()
		assert.NoError(err, name)
		assert.Equal(cpu.STATUS_HALTED, status, name)
		assert.Equal(uint16(8), emu.Cpu.A, name)
	}

	emu := NewEmulator(Settings{})
	assert.NoError(emu.LoadFile(filepath.Join(dir, "add.s")))
	assert.Equal(1, emu.LineNo())
	assert.NoError(emu.LoadFile(filepath.Join(dir, "add.hex")))
	assert.Equal(0, emu.LineNo())

	var hex *ErrHexWord
	assert.True(errors.As(emu.LoadFile(filepath.Join(dir, "bad.hex")), &hex))
	assert.ErrorIs(emu.LoadFile(filepath.Join(dir, "bad.s")), cpu.ErrInstructionInvalid)
	assert.ErrorIs(emu.LoadFile(filepath.Join(dir, "missing.hex")), os.ErrNotExist)
}

func TestOpen(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	assert.NoError(emu.Open("add"))

	status, err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
	assert.Equal(uint16(8), emu.Cpu.A)

	path := filepath.Join(t.TempDir(), "prog.hex")
	assert.NoError(os.WriteFile(path, []byte("e000 0000\n"), 0o644))
	emu.Switches = 0x0042
	assert.NoError(emu.Open(path))
	_, err = emu.Run()
	assert.NoError(err)
	assert.Equal(uint16(0x0042), emu.Cpu.A)

	assert.ErrorIs(emu.Open("no-such-program"), os.ErrNotExist)
}
