package cpu

import (
	"math/bits"
)

// ioPulseAwait is the execute pulse that stalls until an INP or OUT has been
// completed by the caller.
const ioPulseAwait = 2

// fetch performs the register transfer of a fetch pulse.
//
//	0: MAR <- PC
//	1: MBR <- RAM[MAR]
//	2: IR  <- MBR
//	3: PC  <- PC + 1
//	4-7: idle
func (cpu *Cpu) fetch(pulse int) {
	switch pulse {
	case 0:
		cpu.Io = Transfer{}
		cpu.MAR = cpu.PC & ADDRESS_MASK
	case 1:
		cpu.MBR = cpu.memory[cpu.MAR&ADDRESS_MASK]
	case 2:
		cpu.IR = cpu.MBR
	case 3:
		cpu.PC = (cpu.PC + 1) & ADDRESS_MASK
	}
}

// execute performs the register transfer of an execute pulse for the
// instruction latched in IR. Pulses without a transfer are idle.
func (cpu *Cpu) execute(pulse int) (err error) {
	code := Code(cpu.IR)
	op := code.Opcode()
	addr := code.Address()

	switch op {
	case OP_HLT:
		if pulse == 0 {
			cpu.Halted = true
		}
	case OP_ADD, OP_XOR, OP_AND, OP_IOR:
		switch pulse {
		case 0:
			cpu.MAR = addr
		case 1:
			cpu.MBR = cpu.memory[cpu.MAR&ADDRESS_MASK]
		case 2:
			cpu.Z = cpu.A
		case 3:
			cpu.A, err = cpu.doAlu(op, cpu.Z, cpu.MBR)
		}
	case OP_NOT:
		if pulse == 3 {
			cpu.A = ^cpu.A
		}
	case OP_LDA:
		switch pulse {
		case 0:
			cpu.MAR = addr
		case 1:
			cpu.MBR = cpu.memory[cpu.MAR&ADDRESS_MASK]
		case 3:
			cpu.A = cpu.MBR
		}
	case OP_STA:
		switch pulse {
		case 0:
			cpu.MAR = addr
		case 1:
			cpu.MBR = cpu.A
		case 2:
			cpu.memory[cpu.MAR&ADDRESS_MASK] = cpu.MBR
		}
	case OP_SRJ:
		// The slot receives the return address. The callee builds its
		// own return jump from it.
		switch pulse {
		case 0:
			cpu.MAR = addr
		case 1:
			cpu.MBR = cpu.PC & ADDRESS_MASK
		case 2:
			cpu.memory[cpu.MAR&ADDRESS_MASK] = cpu.MBR
		case 3:
			cpu.PC = (cpu.MAR + 1) & ADDRESS_MASK
		}
	case OP_JMA:
		if pulse == 0 && (cpu.A&SIGN_BIT) != 0 {
			cpu.PC = addr
		}
	case OP_JMP:
		if pulse == 0 {
			cpu.PC = addr
		}
	case OP_INP:
		switch pulse {
		case 0:
			cpu.DSL = addr
		case 1:
			cpu.Io = Transfer{Latch: REG_DIL, Active: true}
		case ioPulseAwait:
			cpu.A = (cpu.DIL << 8) & 0xff00
		case 3:
			cpu.Io.Active = false
		}
	case OP_OUT:
		switch pulse {
		case 0:
			cpu.DSL = addr
		case 1:
			cpu.DOL = (cpu.A >> 8) & 0x00ff
			cpu.Io = Transfer{Latch: REG_DOL, Active: true}
		case 3:
			cpu.Io.Active = false
		}
	case OP_RAL:
		if pulse == 3 {
			cpu.A = bits.RotateLeft16(cpu.A, 1)
		}
	case OP_CSA:
		if pulse == 0 {
			cpu.A = cpu.SR
		}
	case OP_NOP:
		// idle
	}

	return
}

// doAlu performs a two-operand ALU operation on Z and MBR.
func (cpu *Cpu) doAlu(op Opcode, z uint16, mbr uint16) (output uint16, err error) {
	switch op {
	case OP_ADD:
		output = z + mbr
		cpu.Overflow = ((z ^ output) & (mbr ^ output) & SIGN_BIT) != 0
		if cpu.Overflow {
			err = ErrArithmeticOverflow
		}
	case OP_XOR:
		output = z ^ mbr
	case OP_AND:
		output = z & mbr
	case OP_IOR:
		output = z | mbr
	}

	return
}

// stalled returns true if the next pulse waits on an open I/O handshake.
func (cpu *Cpu) stalled() bool {
	return cpu.state == STATE_EXECUTE &&
		cpu.pulse == ioPulseAwait &&
		cpu.Io.Active &&
		!cpu.Io.Ready
}

// awaiting returns the status for the open I/O handshake.
func (cpu *Cpu) awaiting() Status {
	if cpu.Io.Latch == REG_DIL {
		return STATUS_AWAITING_INPUT
	}
	return STATUS_AWAITING_OUTPUT
}

// CompleteInput supplies the byte an INP is waiting for.
func (cpu *Cpu) CompleteInput(value byte) (err error) {
	if !cpu.Io.Active || cpu.Io.Ready || cpu.Io.Latch != REG_DIL {
		err = ErrIoIdle
		return
	}

	cpu.DIL = uint16(value)
	cpu.Io.Ready = true

	return
}

// CompleteOutput acknowledges the byte an OUT is presenting, and returns it.
func (cpu *Cpu) CompleteOutput() (value byte, err error) {
	if !cpu.Io.Active || cpu.Io.Ready || cpu.Io.Latch != REG_DOL {
		err = ErrIoIdle
		return
	}

	value = byte(cpu.DOL & 0xff)
	cpu.Io.Ready = true

	return
}
