package debugger

import (
	"github.com/ezrec/blue/translate"
)

var f = translate.From

// ErrCommandUnknown is returned for a debugger command that does not exist.
type ErrCommandUnknown string

func (err ErrCommandUnknown) Error() string {
	return f("'%v' is not a valid command, try 'h'", string(err))
}

func (err ErrCommandUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrCommandUnknown)
	return
}

// ErrUsage is returned with the usage of a command given bad arguments.
type ErrUsage string

func (err ErrUsage) Error() string {
	return f("usage: %v", string(err))
}

func (err ErrUsage) Is(target error) (ok bool) {
	_, ok = target.(ErrUsage)
	return
}

// ErrValue is returned for a number that cannot be parsed.
type ErrValue string

func (err ErrValue) Error() string {
	return f("'%v' is not a number", string(err))
}
