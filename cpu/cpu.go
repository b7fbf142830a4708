package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
)

const (
	RAM_LENGTH   = 4096   // Words of memory.
	ADDRESS_MASK = 0x0fff // Effective address bits.
	SIGN_BIT     = 0x8000 // Accumulator sign bit.
)

var _cpu_defines = map[string]string{
	"RAM_LENGTH":   fmt.Sprintf("%v", RAM_LENGTH),
	"ADDRESS_MASK": fmt.Sprintf("%#x", ADDRESS_MASK),
	"SIGN_BIT":     fmt.Sprintf("%#x", SIGN_BIT),
}

// Transfer records the progress of an INP or OUT handshake.
type Transfer struct {
	Latch  Register // REG_DIL for input, REG_DOL for output.
	Active bool     // Set while the handshake is open.
	Ready  bool     // Set once the caller has completed the transfer.
}

// Cpu is the instruction cycle engine of the Blue.
type Cpu struct {
	Verbose bool // Set to log every pulse.

	Registers // Register file.

	Io       Transfer // Current I/O handshake.
	Overflow bool     // Signed overflow of the last ADD.
	Halted   bool     // Set by HLT, cleared by Continue.

	Pulses int // Pulses since reset.
	Cycles int // Completed instructions since reset.

	state  State
	pulse  int
	power  bool
	memory [RAM_LENGTH]uint16

	breakpoints map[uint16]bool
	resume      uint16 // Breakpoint to step over on the next fetch.
	resuming    bool
}

// NewCpu creates a powered Blue with all registers and memory cleared.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		power: true,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the cycle position and the register dump.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("%v.%d %v", cpu.state, cpu.pulse, cpu.Registers)
}

// State returns the current phase of the instruction cycle.
func (cpu *Cpu) State() State {
	return cpu.state
}

// Pulse returns the next pulse to run in the current phase.
func (cpu *Cpu) Pulse() int {
	return cpu.pulse
}

// Powered returns false once PowerOff has been called.
func (cpu *Cpu) Powered() bool {
	return cpu.power
}

// PowerOff stops the machine. All further steps are no-ops.
func (cpu *Cpu) PowerOff() {
	if cpu.Verbose {
		log.Printf("cpu: power off")
	}
	cpu.power = false
}

// Continue resumes after a HLT.
func (cpu *Cpu) Continue() {
	cpu.Halted = false
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros statistics counters.
// - Abandons any I/O handshake.
// - Restarts at the first fetch pulse.
//
// Breakpoints and the power state are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = Registers{}
	clear(cpu.memory[:])
	cpu.Io = Transfer{}
	cpu.Overflow = false
	cpu.Halted = false
	cpu.Pulses = 0
	cpu.Cycles = 0
	cpu.state = STATE_FETCH
	cpu.pulse = 0
	cpu.resuming = false
}

// LoadProgram clears memory and copies words into it from address 0.
// Programs longer than memory are rejected and leave memory untouched.
func (cpu *Cpu) LoadProgram(words []uint16) (err error) {
	if len(words) > RAM_LENGTH {
		err = ErrProgramTooLarge(len(words))
		return
	}

	clear(cpu.memory[:])
	copy(cpu.memory[:], words)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d words", len(words))
	}

	return
}

// Peek reads a memory word without a bus transfer.
func (cpu *Cpu) Peek(addr uint16) uint16 {
	return cpu.memory[addr&ADDRESS_MASK]
}

// Memory returns an iterator over every address and word of memory.
func (cpu *Cpu) Memory() iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, value uint16) bool) {
		for addr := range uint16(RAM_LENGTH) {
			if !yield(addr, cpu.memory[addr]) {
				return
			}
		}
	}
}

// ReadRegister returns the value of the named register.
func (cpu *Cpu) ReadRegister(name string) (value uint16, err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}

	value = cpu.Get(reg)
	return
}

// WriteRegister sets the named register. The cycle position is unaffected.
func (cpu *Cpu) WriteRegister(name string, value uint16) (err error) {
	reg, err := ParseRegister(name)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: %v <- %04x", reg, value)
	}

	cpu.Set(reg, value)
	return
}

// SetBreakpoint stops execution before the instruction at addr is fetched.
func (cpu *Cpu) SetBreakpoint(addr int) (err error) {
	if addr < 0 || addr > ADDRESS_MASK {
		err = ErrBreakpointAddress(addr)
		return
	}

	if cpu.breakpoints == nil {
		cpu.breakpoints = make(map[uint16]bool)
	}
	cpu.breakpoints[uint16(addr)] = true

	return
}

// ClearBreakpoint removes a single breakpoint.
func (cpu *Cpu) ClearBreakpoint(addr int) {
	delete(cpu.breakpoints, uint16(addr))
}

// ClearBreakpoints removes all breakpoints.
func (cpu *Cpu) ClearBreakpoints() {
	clear(cpu.breakpoints)
	cpu.resuming = false
}

// Breakpoints returns the breakpoint addresses in ascending order.
func (cpu *Cpu) Breakpoints() iter.Seq[uint16] {
	return slices.Values(slices.Sorted(maps.Keys(cpu.breakpoints)))
}

// BreakAddress returns the address a STATUS_BREAKPOINT stopped at.
func (cpu *Cpu) BreakAddress() uint16 {
	return cpu.PC & ADDRESS_MASK
}

// atBreakpoint checks for a breakpoint on the address about to be fetched.
// A breakpoint that has just been reported is stepped over once.
func (cpu *Cpu) atBreakpoint() bool {
	pc := cpu.PC & ADDRESS_MASK

	if cpu.resuming {
		cpu.resuming = false
		if cpu.resume == pc {
			return false
		}
	}

	if !cpu.breakpoints[pc] {
		return false
	}

	cpu.resume = pc
	cpu.resuming = true

	if cpu.Verbose {
		log.Printf("cpu: breakpoint %03x", pc)
	}

	return true
}

// StepPulse advances the machine by exactly one clock pulse.
//
// The returned error is ErrArithmeticOverflow when the pulse produced a
// signed overflow, and ErrIoIncomplete when the pulse could not run because
// an INP or OUT has not been completed.
func (cpu *Cpu) StepPulse() (status Status, err error) {
	if !cpu.power || cpu.Halted {
		status = STATUS_HALTED
		return
	}

	if cpu.state == STATE_FETCH && cpu.pulse == 0 && cpu.atBreakpoint() {
		status = STATUS_BREAKPOINT
		return
	}

	if cpu.stalled() {
		status = cpu.awaiting()
		err = ErrIoIncomplete
		return
	}

	state, pulse := cpu.state, cpu.pulse

	switch state {
	case STATE_FETCH:
		cpu.fetch(pulse)
	case STATE_EXECUTE:
		err = cpu.execute(pulse)
	}

	if cpu.Verbose {
		log.Printf("cpu: %v.%d %v: %v", state, pulse, Code(cpu.IR), cpu.Registers)
	}

	cpu.Pulses++
	cpu.pulse++
	if cpu.pulse == PULSE_COUNT {
		cpu.pulse = 0
		switch state {
		case STATE_FETCH:
			cpu.state = STATE_EXECUTE
		case STATE_EXECUTE:
			cpu.state = STATE_FETCH
			cpu.Cycles++
		}
	}

	switch {
	case cpu.Halted:
		status = STATUS_HALTED
	case cpu.Io.Active && !cpu.Io.Ready:
		status = cpu.awaiting()
	default:
		status = STATUS_CONTINUING
	}

	return
}

// RunCycle steps pulses until the execute phase of the current instruction
// completes, or the machine halts, hits a breakpoint, or awaits I/O.
//
// ErrArithmeticOverflow is reported once the cycle has completed.
// ErrIoIncomplete is reported when an open I/O handshake stalls the cycle
// before any pulse has run.
func (cpu *Cpu) RunCycle() (status Status, err error) {
	pulses := cpu.Pulses
	for {
		var pulse_err error
		status, pulse_err = cpu.StepPulse()
		if errors.Is(pulse_err, ErrIoIncomplete) {
			if cpu.Pulses == pulses {
				err = pulse_err
			}
			return
		}
		if pulse_err != nil {
			err = pulse_err
		}
		if status != STATUS_CONTINUING {
			return
		}
		if cpu.state == STATE_FETCH && cpu.pulse == 0 {
			return
		}
	}
}

// Run executes cycles until the machine stops continuing.
//
// Arithmetic overflow does not stop the run; the last one is returned.
func (cpu *Cpu) Run() (status Status, err error) {
	for {
		var cycle_err error
		status, cycle_err = cpu.RunCycle()
		if cycle_err != nil {
			err = cycle_err
		}
		if status != STATUS_CONTINUING {
			return
		}
	}
}

// RunProgram loads words into memory and runs them.
func (cpu *Cpu) RunProgram(words []uint16) (status Status, err error) {
	err = cpu.LoadProgram(words)
	if err != nil {
		return
	}

	return cpu.Run()
}
