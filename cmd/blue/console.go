// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/blue/debugger"
)

// console is the debugger console on the process standard input and output.
type console struct {
	debugger.Console
	io.Writer // Debugger output; converts line endings while in raw mode.

	fd    int
	state *term.State
}

// openConsole uses a line-editing terminal when stdin is a terminal, and
// plain line reading otherwise.
func openConsole() (con *console, err error) {
	con = &console{fd: int(os.Stdin.Fd())}

	if !term.IsTerminal(con.fd) {
		con.Console = debugger.NewLineConsole(os.Stdin, os.Stdout)
		con.Writer = os.Stdout
		return
	}

	con.state, err = term.MakeRaw(con.fd)
	if err != nil {
		return
	}

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	terminal := term.NewTerminal(screen, debugger.PROMPT)
	con.Console = terminal
	con.Writer = terminal

	return
}

// Close restores the terminal state.
func (con *console) Close() (err error) {
	if con.state == nil {
		return
	}

	err = term.Restore(con.fd, con.state)
	con.state = nil
	return
}
