package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides sequential I/O over text streams.
//
// Reader is read as whitespace separated hexadecimal bytes; Writer is
// written one byte per line in the console format, "2a .".
type Tape struct {
	Reader io.Reader // Hex byte source for INP.
	Writer io.Writer // Console for OUT.

	scanner *bufio.Scanner
}

var _ Device = (*Tape)(nil)

// ParseByte parses a hexadecimal byte, with or without a 0x prefix.
func ParseByte(text string) (value byte, err error) {
	text = strings.TrimSpace(text)
	digits := text
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	if len(digits) == 0 || len(digits) > 2 {
		err = ErrInputInvalid(text)
		return
	}

	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		err = ErrInputInvalid(text)
		return
	}

	value = byte(v)
	return
}

// Rewind seeks the input back to its start, if the input can seek.
func (tc *Tape) Rewind() {
	seeker, ok := tc.Reader.(io.Seeker)
	if ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}
	tc.scanner = nil
}

// Input returns the next byte from the input stream.
func (tc *Tape) Input(selector uint16) (value byte, err error) {
	if tc.Reader == nil {
		err = ErrInputEmpty
		return
	}

	if tc.scanner == nil {
		tc.scanner = bufio.NewScanner(tc.Reader)
		tc.scanner.Split(bufio.ScanWords)
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrInputEmpty
		}
		return
	}

	value, err = ParseByte(tc.scanner.Text())
	return
}

// Output writes a byte to the output stream.
func (tc *Tape) Output(selector uint16, value byte) (err error) {
	if tc.Writer == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Writer, "%02x .\n", value)
	return
}
