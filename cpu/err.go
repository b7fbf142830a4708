package cpu

import (
	"errors"

	"github.com/ezrec/blue/translate"
)

var f = translate.From

var (
	// Cpu conditions
	ErrArithmeticOverflow = errors.New(f("arithmetic overflow"))
	ErrIoIncomplete       = errors.New(f("i/o transfer not acknowledged"))
	ErrIoIdle             = errors.New(f("no i/o transfer pending"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOriginSyntax       = errors.New(f(".org syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrRegisterUnknown is returned for a register name that does not exist.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("register %v unknown", string(err))
}

func (err ErrRegisterUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrRegisterUnknown)
	return
}

// ErrBreakpointAddress is returned for a breakpoint outside of memory.
type ErrBreakpointAddress int

func (err ErrBreakpointAddress) Error() string {
	return f("breakpoint address %v outside 0-%v", int(err), RAM_LENGTH-1)
}

func (err ErrBreakpointAddress) Is(target error) (ok bool) {
	_, ok = target.(ErrBreakpointAddress)
	return
}

// ErrProgramTooLarge is returned when a program does not fit in memory.
type ErrProgramTooLarge int

func (err ErrProgramTooLarge) Error() string {
	return f("program of %v words exceeds %v words of memory", int(err), RAM_LENGTH)
}

func (err ErrProgramTooLarge) Is(target error) (ok bool) {
	_, ok = target.(ErrProgramTooLarge)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperandRange is returned for an operand too wide for its field.
type ErrOperandRange string

func (err ErrOperandRange) Error() string {
	return f("operand '%v' out of range", string(err))
}

// ErrOriginRange is returned when code is placed outside of memory.
type ErrOriginRange int

func (err ErrOriginRange) Error() string {
	return f("address %#x outside of memory", int(err))
}
