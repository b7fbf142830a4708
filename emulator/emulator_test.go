package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Device)
	assert.Equal(0, emu.LineNo())

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("16", defines["CYCLE_PULSES"])
	assert.Equal("4096", defines["RAM_LENGTH"])
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	program := []string{
		"        LDA x",
		"        ADD y",
		"        HLT",
		"x:      .word 5",
		"y:      .word $(CYCLE_PULSES - 13)",
	}
	doAssemble(emu, program, t)

	assert.Equal(1, emu.LineNo())

	status, err := emu.Tick()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_CONTINUING, status)
	assert.Equal(2, emu.LineNo())
	assert.Equal(cpu.MakeCode(cpu.OP_ADD, 4), emu.Code())

	status, err = emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
	assert.Equal(uint16(8), emu.Cpu.A)
	assert.Equal(uint16(3), emu.Cpu.PC)
}

func TestEmulatorDevice(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	script := &io.Script{Inputs: []byte{0x2a, 0x13}}
	emu.Device = script

	program := []string{
		"INP 1",
		"OUT 2",
		"INP 3",
		"OUT 4",
		"HLT",
	}
	doAssemble(emu, program, t)

	status, err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
	assert.Equal([]byte{0x2a, 0x13}, script.Outputs)
	assert.Equal([]uint16{2, 4}, script.Selectors)
	assert.Equal(uint16(0x1300), emu.Cpu.A)
}

func TestEmulatorTape(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	output := &bytes.Buffer{}
	emu.Device = &io.Tape{
		Reader: strings.NewReader("2a\n"),
		Writer: output,
	}

	doAssemble(emu, []string{"INP 1", "OUT 1", "HLT"}, t)

	status, err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
	assert.Equal("2a .\n", output.String())
}

func TestEmulatorInputEmpty(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	emu.Device = &io.Script{}

	doAssemble(emu, []string{"NOP", "INP 1", "HLT"}, t)

	_, err := emu.Run()
	assert.ErrorIs(err, io.ErrInputEmpty)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(uint16(1), runtime.Addr)
		assert.Equal(2, runtime.LineNo)
	}
}

func TestEmulatorManualInput(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{ManualInput: true})
	script := &io.Script{Inputs: []byte{0x55}}
	emu.Device = script

	doAssemble(emu, []string{"INP 1", "OUT 1", "HLT"}, t)

	status, err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_AWAITING_INPUT, status)

	// Ticking again without the byte reports the stall.
	status, err = emu.Run()
	assert.ErrorIs(err, cpu.ErrIoIncomplete)
	assert.Equal(cpu.STATUS_AWAITING_INPUT, status)

	assert.NoError(emu.CompleteInput(0x2a))
	status, err = emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
	assert.Equal([]byte{0x2a}, script.Outputs)
}

func TestEmulatorBreakpoint(t *testing.T) {
	assert := assert.New(t)

	program := []string{"NOP", "NOP", "HLT"}

	// Breakpoints are ignored unless the debugger is enabled.
	emu := NewEmulator(Settings{})
	doAssemble(emu, program, t)
	assert.NoError(emu.SetBreakpoint(1))
	status, err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)

	emu = NewEmulator(Settings{Enabled: true})
	doAssemble(emu, program, t)
	assert.NoError(emu.SetBreakpoint(1))
	status, err = emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_BREAKPOINT, status)
	assert.Equal(uint16(1), emu.BreakAddress())
	assert.Equal(2, emu.LineNo())

	status, err = emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
}

func TestEmulatorTrace(t *testing.T) {
	assert := assert.New(t)

	program := []string{"LDA x", "HLT", "x: .word 0x1234"}

	trace := &bytes.Buffer{}
	emu := NewEmulator(Settings{Enabled: true, PrintRegisters: true})
	emu.Trace = trace
	doAssemble(emu, program, t)

	_, err := emu.Run()
	assert.NoError(err)

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	assert.Equal(2, len(lines))
	assert.Equal("PC: 0001 A: 1234 IR: 6002 Z: 0000 MAR: 0002 MBR: 1234 DSL: 00 DIL: 00 DOL: 00", lines[0])
	assert.Equal(emu.Cpu.Registers.String(), lines[1])

	// Not printed without PrintRegisters.
	trace.Reset()
	emu.Settings.PrintRegisters = false
	doAssemble(emu, program, t)
	_, err = emu.Run()
	assert.NoError(err)
	assert.Equal(0, trace.Len())
}

func TestEmulatorOverflow(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	doAssemble(emu, []string{
		"LDA big",
		"ADD big",
		"ADD big",
		"HLT",
		"big: .word 0x7000",
	}, t)

	status, err := emu.Run()
	assert.NoError(err)
	assert.Equal(cpu.STATUS_HALTED, status)
	assert.Equal(1, emu.Overflows)
	assert.Equal(uint16(0x5000), emu.Cpu.A)
}

func TestEmulatorSwitches(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	emu.Switches = 0xbeef
	doAssemble(emu, []string{"CSA", "HLT"}, t)

	_, err := emu.Run()
	assert.NoError(err)
	assert.Equal(uint16(0xbeef), emu.Cpu.A)
}

func TestEmulatorTooLarge(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(Settings{})
	err := emu.LoadWords(make([]uint16, cpu.RAM_LENGTH+1))
	assert.ErrorIs(err, cpu.ErrProgramTooLarge(0))
}
