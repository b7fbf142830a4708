// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/internal"
	"github.com/ezrec/blue/io"
)

const (
	CYCLE_PULSES = 2 * cpu.PULSE_COUNT // Pulses in a complete instruction cycle.
)

var _emulator_defines = map[string]string{
	"CYCLE_PULSES": fmt.Sprintf("%v", CYCLE_PULSES),
}

// Settings are the debug settings of an emulator.
type Settings struct {
	Enabled        bool // Breakpoints stop execution, and the register trace may be printed.
	PrintRegisters bool // Print the registers after every cycle, if Enabled.
	ManualInput    bool // INP waits for the caller to supply a byte.
}

// Emulator state. CPU + I/O device + debug settings.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Settings Settings  // Debug settings.
	Device   io.Device // Device servicing INP and OUT.
	Switches uint16    // Console switches, loaded into SR on every Load.

	Trace goio.Writer // Register trace output, if not nil.

	Overflows int // Arithmetic overflows since the last Load.
}

// NewEmulator creates a new emulator.
func NewEmulator(settings Settings) (emu *Emulator) {
	emu = &Emulator{
		Cpu:      cpu.NewCpu(),
		Program:  &cpu.Program{},
		Settings: settings,
		Device:   &io.Tape{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assembler returns an assembler with the emulator defines predefined.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// Load resets the machine and loads an assembled program.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	err = emu.LoadWords(prog.Binary())
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// LoadWords resets the machine and loads a memory image with no listing.
func (emu *Emulator) LoadWords(words []uint16) (err error) {
	if len(words) > cpu.RAM_LENGTH {
		err = cpu.ErrProgramTooLarge(len(words))
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Cpu.LoadProgram(words)
	if err != nil {
		return
	}

	emu.Cpu.SR = emu.Switches
	emu.Program = &cpu.Program{}
	emu.Overflows = 0
	if emu.Device != nil {
		emu.Device.Rewind()
	}

	return
}

// Code returns the current instruction code at the PC.
func (emu *Emulator) Code() cpu.Code {
	return cpu.Code(emu.Cpu.Peek(emu.Cpu.PC))
}

// LineNo returns the source line number of the instruction at the PC, or 0.
func (emu *Emulator) LineNo() int {
	return emu.lineOf(emu.Cpu.PC)
}

func (emu *Emulator) lineOf(addr uint16) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(addr & cpu.ADDRESS_MASK)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// service completes an I/O handshake through the device.
// Returns false if the handshake is left to the caller.
func (emu *Emulator) service(status cpu.Status) (serviced bool, err error) {
	switch status {
	case cpu.STATUS_AWAITING_OUTPUT:
		var value byte
		value, err = emu.Cpu.CompleteOutput()
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: OUT %03x %02x", emu.Cpu.DSL, value)
		}
		if emu.Device != nil {
			err = emu.Device.Output(emu.Cpu.DSL, value)
		}
		serviced = true
	case cpu.STATUS_AWAITING_INPUT:
		if emu.Settings.ManualInput || emu.Device == nil {
			return
		}
		var value byte
		value, err = emu.Device.Input(emu.Cpu.DSL)
		if err != nil {
			return
		}
		if emu.Verbose {
			log.Printf("emulator: INP %03x %02x", emu.Cpu.DSL, value)
		}
		err = emu.Cpu.CompleteInput(value)
		serviced = true
	}

	return
}

// Tick performs a single instruction cycle of the emulator.
//
// STATUS_AWAITING_INPUT is returned only when ManualInput is set; the caller
// completes the transfer with CompleteInput and ticks again.
// STATUS_BREAKPOINT is returned only when the debugger is Enabled.
func (emu *Emulator) Tick() (status cpu.Status, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Cpu.PC & cpu.ADDRESS_MASK
	lineno := emu.lineOf(addr)
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: lineno, Err: err}
		}
	}()

	for {
		var cycle_err error
		status, cycle_err = emu.Cpu.RunCycle()
		if errors.Is(cycle_err, cpu.ErrArithmeticOverflow) {
			emu.Overflows++
			if emu.Verbose {
				log.Printf("emulator: overflow at %03x", addr)
			}
		} else if cycle_err != nil {
			err = cycle_err
			return
		}

		if status == cpu.STATUS_BREAKPOINT && !emu.Settings.Enabled {
			continue
		}

		if status.Awaiting() {
			var serviced bool
			serviced, err = emu.service(status)
			if err != nil {
				return
			}
			if serviced {
				continue
			}
		}

		break
	}

	if status == cpu.STATUS_CONTINUING || status == cpu.STATUS_HALTED {
		emu.trace()
	}

	return
}

// trace prints the register dump, if enabled.
func (emu *Emulator) trace() {
	if emu.Trace == nil || !emu.Settings.Enabled || !emu.Settings.PrintRegisters {
		return
	}

	fmt.Fprintln(emu.Trace, emu.Cpu.Registers)
}

// Run ticks the emulator until it stops continuing.
func (emu *Emulator) Run() (status cpu.Status, err error) {
	for {
		status, err = emu.Tick()
		if err != nil || status != cpu.STATUS_CONTINUING {
			return
		}
	}
}
