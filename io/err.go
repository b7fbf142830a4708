package io

import (
	"errors"

	"github.com/ezrec/blue/translate"
)

var f = translate.From

var (
	// Device errors
	ErrInputEmpty = errors.New(f("device input exhausted"))
	ErrDeviceFull = errors.New(f("device full"))
)

// ErrInputInvalid is returned for text that is not a hexadecimal byte.
type ErrInputInvalid string

func (err ErrInputInvalid) Error() string {
	return f("'%v' is not a hexadecimal byte", string(err))
}

func (err ErrInputInvalid) Is(target error) (ok bool) {
	_, ok = target.(ErrInputInvalid)
	return
}
