// Package progs holds the built-in Blue test programs as assembly source.
package progs

import (
	"embed"
	"errors"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/ezrec/blue/translate"
)

var f = translate.From

// ErrProgramUnknown is returned for a name that is not a built-in program.
type ErrProgramUnknown string

func (err ErrProgramUnknown) Error() string {
	return f("program %v unknown", string(err))
}

func (err ErrProgramUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrProgramUnknown)
	return
}

// SOURCE_EXT is the file extension of Blue assembly source.
const SOURCE_EXT = ".blue"

//go:embed *.blue
var sources embed.FS

// Names returns the names of the built-in programs, in order.
func Names() (names []string) {
	entries, _ := fs.ReadDir(sources, ".")
	for _, entry := range entries {
		name := entry.Name()
		if path.Ext(name) == SOURCE_EXT {
			names = append(names, strings.TrimSuffix(name, SOURCE_EXT))
		}
	}

	slices.Sort(names)
	return
}

// Open returns the assembly source of a built-in program.
func Open(name string) (source io.ReadCloser, err error) {
	source, err = sources.Open(name + SOURCE_EXT)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		err = ErrProgramUnknown(name)
	}

	return
}
