// Package debugger implements the interactive debugger of the Blue emulator.
package debugger

import (
	"errors"
	"fmt"
	goio "io"
	"strconv"
	"strings"

	"github.com/ezrec/blue/cpu"
	"github.com/ezrec/blue/emulator"
	"github.com/ezrec/blue/io"
)

// Action is what the session does after a command.
type Action int

const (
	ACTION_NONE     = Action(0) // Read another command.
	ACTION_CONTINUE = Action(1) // Resume execution.
	ACTION_QUIT     = Action(2) // End the session.
)

const (
	PROMPT          = "(blue) "
	PROMPT_INPUT    = "Input byte: "
	MEMORY_PER_LINE = 8 // Words per line of a memory dump.
	SOURCE_LINES    = 8 // Lines shown by a source listing.
)

const help = `c            continue
s            step to the next address, and continue
r            print registers
d            dump memory
b<addr>      set a breakpoint (0x prefix for hex)
x<reg> <val> write a register (0x prefix for hex)
l [count]    list the source at the PC
q            quit
h, ?         this help
`

// Debugger executes debugger commands on an emulator.
type Debugger struct {
	Emu    *emulator.Emulator
	Output goio.Writer

	last string // Last command, repeated by an empty line.
}

// NewDebugger creates a debugger for an emulator.
func NewDebugger(emu *emulator.Emulator, output goio.Writer) (dbg *Debugger) {
	dbg = &Debugger{
		Emu:    emu,
		Output: output,
	}

	return
}

// ParseValue parses a decimal number, or a hexadecimal number with a 0x prefix.
func ParseValue(text string, bitSize int) (value uint64, err error) {
	base := 10
	digits := text
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}

	value, err = strconv.ParseUint(digits, base, bitSize)
	if err != nil {
		err = ErrValue(text)
	}

	return
}

// PrintRegisters prints the register dump.
func (dbg *Debugger) PrintRegisters() {
	fmt.Fprintln(dbg.Output, dbg.Emu.Cpu.Registers)
}

// PrintMemory prints all of memory, MEMORY_PER_LINE words per line.
func (dbg *Debugger) PrintMemory() {
	fmt.Fprintln(dbg.Output, "==== RAM ====")

	var line strings.Builder
	for addr, value := range dbg.Emu.Cpu.Memory() {
		if addr%MEMORY_PER_LINE == 0 {
			fmt.Fprintf(&line, "%04x:", addr)
		}
		fmt.Fprintf(&line, " %04x", value)
		if addr%MEMORY_PER_LINE == MEMORY_PER_LINE-1 {
			fmt.Fprintln(dbg.Output, line.String())
			line.Reset()
		}
	}
}

// PrintSource lists count words from addr, with their source lines when the
// program was assembled.
func (dbg *Debugger) PrintSource(addr uint16, count int) {
	pc := dbg.Emu.Cpu.PC & cpu.ADDRESS_MASK

	for n := range count {
		here := (addr + uint16(n)) & cpu.ADDRESS_MASK
		marker := "  "
		if here == pc {
			marker = "=>"
		}

		code := cpu.Code(dbg.Emu.Cpu.Peek(here))
		text := code.String()
		if dbg.Emu.Program != nil {
			line := dbg.Emu.Program.Debug(here)
			if line.Line != nil {
				text = fmt.Sprintf("%-24v ; line %d", strings.Join(line.Words, " "), line.LineNo)
			}
		}

		fmt.Fprintf(dbg.Output, "%v %03x: %04x  %v\n", marker, here, uint16(code), text)
	}
}

// Execute runs a single debugger command.
func (dbg *Debugger) Execute(line string) (action Action, err error) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		line = dbg.last
		if len(line) == 0 {
			return
		}
	}
	dbg.last = line

	emu := dbg.Emu

	switch line {
	case "c":
		emu.Continue()
		action = ACTION_CONTINUE
		return
	case "r":
		dbg.PrintRegisters()
		return
	case "d":
		dbg.PrintMemory()
		return
	case "q":
		fmt.Fprintln(dbg.Output, f("Stopping..."))
		action = ACTION_QUIT
		return
	case "s":
		next := int((emu.Cpu.PC + 1) & cpu.ADDRESS_MASK)
		err = emu.SetBreakpoint(next)
		if err != nil {
			return
		}
		emu.Continue()
		action = ACTION_CONTINUE
		return
	case "h", "?":
		fmt.Fprint(dbg.Output, help)
		return
	}

	switch line[0] {
	case 'b':
		var addr uint64
		addr, err = ParseValue(strings.TrimSpace(line[1:]), 32)
		if err != nil {
			return
		}
		err = emu.SetBreakpoint(int(addr))
		if err != nil {
			return
		}
		fmt.Fprintln(dbg.Output, f("Set breakpoint at line %d", addr))
	case 'x':
		parts := strings.Fields(line[1:])
		if len(parts) != 2 {
			err = ErrUsage("x<reg> <value>")
			return
		}
		var value uint64
		value, err = ParseValue(parts[1], 16)
		if err != nil {
			return
		}
		err = emu.WriteRegister(parts[0], uint16(value))
	case 'l':
		count := SOURCE_LINES
		args := strings.Fields(line[1:])
		if len(args) > 1 {
			err = ErrUsage("l [count]")
			return
		}
		if len(args) == 1 {
			var value uint64
			value, err = ParseValue(args[0], 12)
			if err != nil {
				return
			}
			count = int(value)
		}
		dbg.PrintSource(emu.Cpu.PC, count)
	default:
		err = ErrCommandUnknown(line)
	}

	return
}

// Resume runs the emulator until it stops, prompting on the console for
// any manual input.
func (dbg *Debugger) Resume(console Console) (status cpu.Status, err error) {
	for {
		status, err = dbg.Emu.Run()
		if err != nil || status != cpu.STATUS_AWAITING_INPUT {
			return
		}

		console.SetPrompt(f(PROMPT_INPUT))
		var value byte
		for {
			var line string
			line, err = console.ReadLine()
			if err != nil {
				return
			}
			value, err = io.ParseByte(line)
			if err == nil {
				break
			}
			fmt.Fprintln(dbg.Output, f("Invalid input. Try again"))
		}

		err = dbg.Emu.CompleteInput(value)
		if err != nil {
			return
		}
	}
}

// report prints why execution stopped.
func (dbg *Debugger) report(status cpu.Status) {
	switch status {
	case cpu.STATUS_BREAKPOINT:
		fmt.Fprintln(dbg.Output, f("Stopped at line %d", dbg.Emu.BreakAddress()))
		dbg.PrintSource(dbg.Emu.Cpu.PC, 1)
	case cpu.STATUS_HALTED:
		fmt.Fprintln(dbg.Output, f("Halted at line %d", (dbg.Emu.Cpu.PC-1)&cpu.ADDRESS_MASK))
	}
}

// Session reads and executes commands from the console until the user
// quits or the console is closed.
func (dbg *Debugger) Session(console Console) (err error) {
	for {
		console.SetPrompt(PROMPT)

		var line string
		line, err = console.ReadLine()
		if errors.Is(err, goio.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		action, cmd_err := dbg.Execute(line)
		if cmd_err != nil {
			fmt.Fprintln(dbg.Output, cmd_err)
			continue
		}

		switch action {
		case ACTION_QUIT:
			return
		case ACTION_CONTINUE:
			var status cpu.Status
			status, err = dbg.Resume(console)
			if errors.Is(err, goio.EOF) {
				err = nil
				return
			}
			if err != nil {
				fmt.Fprintln(dbg.Output, err)
				err = nil
				continue
			}
			dbg.report(status)
		}
	}
}
