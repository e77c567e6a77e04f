package output

import (
	"fmt"

	"github.com/nestlingapp/nestling/internal/errors"
)

// ANSI color codes for plain CLI output. The TUI uses lipgloss; these
// cover the one-line command responses.
const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiDim    = "\033[2m"
)

// Successf prints a success line.
func (f *Formatter) Successf(format string, a ...interface{}) {
	f.line(ansiGreen, "✓", format, a...)
}

// Warnf prints a warning line.
func (f *Formatter) Warnf(format string, a ...interface{}) {
	f.line(ansiYellow, "!", format, a...)
}

// Errorf prints an error line.
func (f *Formatter) Errorf(format string, a ...interface{}) {
	f.line(ansiRed, "✗", format, a...)
}

// Mutedf prints a secondary line.
func (f *Formatter) Mutedf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if f.IsColorEnabled() {
		f.Printf("%s%s%s\n", ansiDim, msg, ansiReset)
		return
	}
	f.Println(msg)
}

// UserError prints a user error with its suggestion, if any.
func (f *Formatter) UserError(err error) {
	if ue, ok := errors.AsUserError(err); ok {
		f.Errorf("%s", ue.Error())
		if ue.Suggestion != "" {
			f.Mutedf("  %s", ue.Suggestion)
		}
		return
	}
	f.Errorf("%s", err.Error())
}

func (f *Formatter) line(color, mark, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if f.IsColorEnabled() {
		f.Printf("%s%s%s %s\n", color, mark, ansiReset, msg)
		return
	}
	f.Printf("%s %s\n", mark, msg)
}
