// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"RAM_LENGTH":   _cpu_defines["RAM_LENGTH"],
	"ADDRESS_MASK": _cpu_defines["ADDRESS_MASK"],
	"SIGN_BIT":     _cpu_defines["SIGN_BIT"],
}

// opcodeMap maps upper-case mnemonics to opcodes.
var opcodeMap = func() map[string]Opcode {
	ops := make(map[string]Opcode, OPCODE_COUNT)
	for op := range Opcode(OPCODE_COUNT) {
		ops[op.String()] = op
	}
	return ops
}()

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for the Blue.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	predefine map[string]string
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	origin int // Address of the next generated word.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}

	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = int64(^uint16(value))
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Non-numeric equates are left out of the expression scope.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// parseLine expands a single line into words, handling character
// literals, $(...) expressions, equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrInstructionInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.origin
		words = words[1:]
	}

	return
}

// operand resolves a word to a value no wider than limit, or to a label
// that will be linked after the pass.
func (asm *Assembler) operand(word string, limit int64) (value uint16, link string, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		if reLabel.MatchString(word) {
			link = word
			err = nil
		}
		return
	}

	if v < -(limit+1)/2 || v > limit {
		err = ErrOperandRange(word)
		return
	}

	value = uint16(v) & uint16(limit)
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	var codes []Code
	var links []string

	switch strings.ToLower(words[0]) {
	case ".org":
		if len(words) != 2 {
			err = ErrOriginSyntax
			return
		}
		var addr int64
		addr, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if addr < 0 || addr >= RAM_LENGTH {
			err = ErrOriginRange(addr)
			return
		}
		asm.origin = int(addr)
		return
	case ".word":
		if len(words) < 2 {
			err = ErrOperandMissing
			return
		}
		for _, word := range words[1:] {
			var value uint16
			var link string
			value, link, err = asm.operand(word, 0xffff)
			if err != nil {
				return
			}
			codes = append(codes, Code(value))
			links = append(links, link)
		}
	default:
		op, ok := opcodeMap[strings.ToUpper(words[0])]
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		args := words[1:]
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		if len(args) == 0 && op.HasAddress() {
			err = ErrOperandMissing
			return
		}
		var addr uint16
		var link string
		if len(args) == 1 {
			addr, link, err = asm.operand(args[0], ADDRESS_MASK)
			if err != nil {
				return
			}
		}
		codes = append(codes, MakeCode(op, addr))
		links = append(links, link)
	}

	if asm.origin+len(codes) > RAM_LENGTH {
		err = ErrOriginRange(asm.origin + len(codes) - 1)
		return
	}

	asm.Lines = append(asm.Lines, Line{
		LineNo: lineno,
		Addr:   asm.origin,
		Words:  words,
		Codes:  codes,
		Links:  links,
	})
	asm.origin += len(codes)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.origin = 0
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]
		for c, label := range op.Links {
			if len(label) == 0 {
				continue
			}
			addr, ok := asm.Label[label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(label)
				return
			}
			op.Codes[c] |= Code(addr)
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}
