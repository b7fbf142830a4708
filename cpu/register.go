package cpu

import (
	"fmt"
	"strings"
)

// Register names one of the ten Blue registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_PC  = Register(0) // PC
	REG_A   = Register(1) // A
	REG_Z   = Register(2) // Z
	REG_SR  = Register(3) // SR
	REG_MAR = Register(4) // MAR
	REG_MBR = Register(5) // MBR
	REG_IR  = Register(6) // IR
	REG_DSL = Register(7) // DSL
	REG_DIL = Register(8) // DIL
	REG_DOL = Register(9) // DOL
)

// REGISTER_COUNT is the number of registers.
const REGISTER_COUNT = 10

// Registers is the register file of the Blue.
type Registers struct {
	PC  uint16 // Program counter, 12 effective bits.
	A   uint16 // Accumulator.
	Z   uint16 // ALU operand holder.
	SR  uint16 // Console switch register.
	MAR uint16 // Memory address register.
	MBR uint16 // Memory buffer register.
	IR  uint16 // Instruction register.
	DSL uint16 // Device selector.
	DIL uint16 // Device input latch.
	DOL uint16 // Device output latch.
}

// ParseRegister returns the register with the given name, ignoring case.
func ParseRegister(name string) (reg Register, err error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for reg = range Register(REGISTER_COUNT) {
		if reg.String() == upper {
			return
		}
	}

	err = ErrRegisterUnknown(name)
	return
}

// field returns the storage of a register.
func (regs *Registers) field(reg Register) *uint16 {
	switch reg {
	case REG_PC:
		return &regs.PC
	case REG_A:
		return &regs.A
	case REG_Z:
		return &regs.Z
	case REG_SR:
		return &regs.SR
	case REG_MAR:
		return &regs.MAR
	case REG_MBR:
		return &regs.MBR
	case REG_IR:
		return &regs.IR
	case REG_DSL:
		return &regs.DSL
	case REG_DIL:
		return &regs.DIL
	case REG_DOL:
		return &regs.DOL
	}

	return nil
}

// Get returns the value of a register. Unknown registers read as zero.
func (regs *Registers) Get(reg Register) uint16 {
	ptr := regs.field(reg)
	if ptr == nil {
		return 0
	}
	return *ptr
}

// Set writes a register. Unknown registers are ignored.
func (regs *Registers) Set(reg Register, value uint16) {
	ptr := regs.field(reg)
	if ptr != nil {
		*ptr = value
	}
}

// String returns the register dump used by the debugger and the trace.
func (regs Registers) String() string {
	return fmt.Sprintf("PC: %04x A: %04x IR: %04x Z: %04x MAR: %04x MBR: %04x DSL: %02x DIL: %02x DOL: %02x",
		regs.PC,
		regs.A,
		regs.IR,
		regs.Z,
		regs.MAR,
		regs.MBR,
		regs.DSL&0xff,
		regs.DIL&0xff,
		regs.DOL&0xff,
	)
}
