package cpu

import (
	"iter"
)

// Line is a line of assembled source with the words it generated.
type Line struct {
	LineNo int      // Source line number.
	Addr   int      // Address of the first generated word.
	Words  []string // Source words, after equate expansion.
	Codes  []Code   // Generated words.
	Links  []string // Per-code label to resolve into the word, or "".
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the source line that generated the word at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= line.Addr && int(addr) < line.Addr+len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr) - line.Addr,
			}
			break
		}
	}

	return
}

// Codes iterates over every generated word and its address.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(uint16(line.Addr+n), code) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image of the program, from address 0 up to the
// highest generated word. Gaps left by .org are zero.
func (prog *Program) Binary() (words []uint16) {
	size := 0
	for addr := range prog.Codes() {
		size = max(size, int(addr)+1)
	}

	if size == 0 {
		return
	}

	words = make([]uint16, size)
	for addr, code := range prog.Codes() {
		words[addr] = uint16(code)
	}

	return
}
