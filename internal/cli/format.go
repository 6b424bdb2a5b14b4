package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	errorColor        = color.New(color.FgRed, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// stderrIsTerminal reports whether stderr is attached to a terminal.
// Keybinding launches have no terminal, so their output stays plain.
func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// formatError formats an error for display.
func formatError(err error, colored bool) string {
	msg := fmt.Sprintf("✗ %v", err)
	if !colored {
		return msg
	}
	errorColor.EnableColor()
	return errorColor.Sprint(msg)
}

// PrintError prints an error message to w, colored when stderr is a terminal.
func PrintError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, formatError(err, stderrIsTerminal()))
}
