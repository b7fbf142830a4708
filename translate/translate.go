// Package translate localises the user-facing strings of the Blue tools.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the host reports no locale.
const Fallback = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Language returns the host language the strings are formatted in.
func Language() (tag language.Tag) {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("blue: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	tag = message.MatchLanguage(locales...)
	return
}

// From formats an en-US Sprintf() key in the host language.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(func() {
		printer = message.NewPrinter(Language())
	})

	return printer.Sprintf(key, args...)
}
