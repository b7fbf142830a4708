package emulator

import (
	"github.com/ezrec/blue/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("address %03x %v", err.Addr, err.Err)
	}
	return f("line %d (address %03x) %v", err.LineNo, err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrHexWord is returned for a word in a hex listing that cannot be parsed.
type ErrHexWord struct {
	LineNo int
	Word   string
}

func (err *ErrHexWord) Error() string {
	return f("line %d '%v' is not a hexadecimal word", err.LineNo, err.Word)
}
