// Package cli provides the command-line interface for passgen.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Reporter prints generated passwords and errors for the terminal.
// Passwords go to out; errors go to errOut.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
	banner *color.Color
	errTag *color.Color
}

// NewReporter creates a new CLI reporter.
// If quiet is true, only the passwords themselves are printed.
func NewReporter(out, errOut io.Writer, quiet bool) *Reporter {
	r := &Reporter{
		out:    out,
		errOut: errOut,
		quiet:  quiet,
		banner: color.New(color.FgCyan, color.Bold),
		errTag: color.New(color.FgRed, color.Bold),
	}
	if !isTerminal(out) {
		r.banner.DisableColor()
	}
	if !isTerminal(errOut) {
		r.errTag.DisableColor()
	}
	return r
}

// isTerminal returns true if w is a terminal (not piped/redirected).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Banner returns the heading printed above count passwords.
func Banner(count int) string {
	if count > 1 {
		return "=== Generated Passwords ==="
	}
	return "=== Generated Password ==="
}

// PrintPasswords prints the banner followed by one password per line.
func (r *Reporter) PrintPasswords(passwords []string) {
	if !r.quiet {
		r.banner.Fprintln(r.out, Banner(len(passwords)))
	}
	for _, pw := range passwords {
		fmt.Fprintln(r.out, pw)
	}
}

// PrintError prints an error message.
func (r *Reporter) PrintError(format string, args ...any) {
	r.errTag.Fprint(r.errOut, "Error:")
	fmt.Fprintf(r.errOut, " "+format+"\n", args...)
}
