package cpu

import (
	"fmt"
)

// Opcode is the 4-bit operation field of an instruction.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT = Opcode(0)  // HLT
	OP_ADD = Opcode(1)  // ADD
	OP_XOR = Opcode(2)  // XOR
	OP_AND = Opcode(3)  // AND
	OP_IOR = Opcode(4)  // IOR
	OP_NOT = Opcode(5)  // NOT
	OP_LDA = Opcode(6)  // LDA
	OP_STA = Opcode(7)  // STA
	OP_SRJ = Opcode(8)  // SRJ
	OP_JMA = Opcode(9)  // JMA
	OP_JMP = Opcode(10) // JMP
	OP_INP = Opcode(11) // INP
	OP_OUT = Opcode(12) // OUT
	OP_RAL = Opcode(13) // RAL
	OP_CSA = Opcode(14) // CSA
	OP_NOP = Opcode(15) // NOP
)

// OPCODE_COUNT is the size of the instruction set.
const OPCODE_COUNT = 16

// HasAddress returns true if the instruction uses its address field.
func (op Opcode) HasAddress() bool {
	switch op {
	case OP_HLT, OP_NOT, OP_RAL, OP_CSA, OP_NOP:
		return false
	}
	return true
}

// Code is a single 16-bit instruction word.
type Code uint16

// MakeCode encodes an opcode and a 12-bit address.
func MakeCode(op Opcode, addr uint16) Code {
	return Code((uint16(op&0xf) << 12) | (addr & ADDRESS_MASK))
}

// Opcode returns the operation field, bits 15-12.
func (code Code) Opcode() Opcode {
	return Opcode((uint16(code) >> 12) & 0xf)
}

// Address returns the address field, bits 11-0.
func (code Code) Address() uint16 {
	return uint16(code) & ADDRESS_MASK
}

// String returns the assembly language representation of the word.
func (code Code) String() string {
	op := code.Opcode()
	if !op.HasAddress() && code.Address() == 0 {
		return op.String()
	}

	return fmt.Sprintf("%v 0x%03x", op, code.Address())
}
