package debugger

import (
	"bufio"
	"fmt"
	"io"
)

// Console is a line oriented user interface.
// golang.org/x/term's Terminal satisfies it.
type Console interface {
	ReadLine() (line string, err error)
	SetPrompt(prompt string)
}

// LineConsole is a Console over plain streams.
type LineConsole struct {
	Output io.Writer

	scanner *bufio.Scanner
	prompt  string
}

var _ Console = (*LineConsole)(nil)

// NewLineConsole creates a console reading lines from input, and writing
// prompts to output.
func NewLineConsole(input io.Reader, output io.Writer) (lc *LineConsole) {
	lc = &LineConsole{
		Output:  output,
		scanner: bufio.NewScanner(input),
	}

	return
}

func (lc *LineConsole) SetPrompt(prompt string) {
	lc.prompt = prompt
}

// ReadLine prints the prompt and reads a line. Returns io.EOF at the end
// of the input.
func (lc *LineConsole) ReadLine() (line string, err error) {
	if lc.Output != nil && len(lc.prompt) > 0 {
		fmt.Fprint(lc.Output, lc.prompt)
	}

	if !lc.scanner.Scan() {
		err = lc.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line = lc.scanner.Text()
	return
}
