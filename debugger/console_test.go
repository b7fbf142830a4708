package debugger

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineConsole(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	lc := NewLineConsole(strings.NewReader("one\ntwo"), output)

	line, err := lc.ReadLine()
	assert.NoError(err)
	assert.Equal("one", line)
	assert.Equal("", output.String())

	lc.SetPrompt("> ")
	line, err = lc.ReadLine()
	assert.NoError(err)
	assert.Equal("two", line)
	assert.Equal("> ", output.String())

	_, err = lc.ReadLine()
	assert.ErrorIs(err, io.EOF)
}
