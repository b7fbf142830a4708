package emulator

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	goio "io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ezrec/blue/progs"
)

// HEX_WORDS_PER_LINE is the number of words per line written by WriteHex.
const HEX_WORDS_PER_LINE = 8

// ReadHex reads a listing of whitespace separated hexadecimal words.
// Text after a ';' or '#' on a line is ignored.
func ReadHex(input goio.Reader) (words []uint16, err error) {
	scanner := bufio.NewScanner(input)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if n := strings.IndexAny(line, ";#"); n >= 0 {
			line = line[:n]
		}

		for _, word := range strings.Fields(line) {
			digits := word
			if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
				digits = digits[2:]
			}
			var value uint64
			value, err = strconv.ParseUint(digits, 16, 16)
			if err != nil {
				err = &ErrHexWord{LineNo: lineno, Word: word}
				return
			}
			words = append(words, uint16(value))
		}
	}

	err = scanner.Err()
	return
}

// WriteHex writes words as a hexadecimal listing, HEX_WORDS_PER_LINE per line.
func WriteHex(output goio.Writer, words []uint16) (err error) {
	for n, word := range words {
		sep := " "
		if (n+1)%HEX_WORDS_PER_LINE == 0 || n == len(words)-1 {
			sep = "\n"
		}
		_, err = fmt.Fprintf(output, "%04x%s", word, sep)
		if err != nil {
			return
		}
	}

	return
}

// ReadBinary reads little-endian 16-bit words. A trailing odd byte is
// padded with zero.
func ReadBinary(input goio.Reader) (words []uint16, err error) {
	data, err := goio.ReadAll(input)
	if err != nil {
		return
	}

	if len(data)%2 != 0 {
		data = append(data, 0)
	}

	words = make([]uint16, len(data)/2)
	for n := range words {
		words[n] = binary.LittleEndian.Uint16(data[n*2:])
	}

	return
}

// WriteBinary writes words as little-endian 16-bit words.
func WriteBinary(output goio.Writer, words []uint16) (err error) {
	err = binary.Write(output, binary.LittleEndian, words)
	return
}

// Assemble parses assembly source with the emulator defines and loads it.
func (emu *Emulator) Assemble(source goio.Reader) (err error) {
	asm := emu.Assembler()
	prog, err := asm.Parse(source)
	if err != nil {
		return
	}

	err = emu.Load(prog)
	return
}

// LoadFile loads a program file, choosing the format by its extension:
// .blue, .s and .asm are assembled, .hex and .txt are hex listings, and anything
// else is a little-endian binary image.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	var words []uint16
	switch strings.ToLower(filepath.Ext(path)) {
	case progs.SOURCE_EXT, ".s", ".asm":
		err = emu.Assemble(inf)
		return
	case ".hex", ".txt":
		words, err = ReadHex(inf)
	default:
		words, err = ReadBinary(inf)
	}
	if err != nil {
		return
	}

	err = emu.LoadWords(words)
	return
}

// Open loads a built-in program by name, or a program file by path.
func (emu *Emulator) Open(name string) (err error) {
	source, err := progs.Open(name)
	if errors.Is(err, progs.ErrProgramUnknown("")) {
		err = emu.LoadFile(name)
		return
	}
	if err != nil {
		return
	}
	defer source.Close()

	err = emu.Assemble(source)
	return
}
