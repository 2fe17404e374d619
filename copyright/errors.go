package copyright

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/teranos/dep5/errors"
)

// ErrorKind categorizes grammar failures.
type ErrorKind string

const (
	ErrorKindEmpty     ErrorKind = "empty"     // no statement lines at all
	ErrorKindYear      ErrorKind = "year"      // expected a year specifier
	ErrorKindRange     ErrorKind = "range"     // range did not normalize
	ErrorKindSeparator ErrorKind = "separator" // missing comma before the holder
)

// ParseError describes where and why a statement line failed the grammar.
type ParseError struct {
	Kind        ErrorKind
	Message     string
	Line        int // 1-based line within the statement
	Column      int // 1-based byte column within the line
	Input       string
	Suggestions []string
}

// Error implements error with the plain form.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (suggestions: %s)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Pretty renders the error for a terminal: the message in red, the offending
// line with a caret under the failing column, then suggestions.
func (e *ParseError) Pretty() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))
	b.WriteString("\n\n  ")
	b.WriteString(pterm.LightCyan(e.Input))
	b.WriteString("\n  ")
	if e.Column > 1 {
		b.WriteString(strings.Repeat(" ", e.Column-1))
	}
	b.WriteString(pterm.Yellow("^"))
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(pterm.Green("Suggestions:"))
		for _, s := range e.Suggestions {
			b.WriteString("\n  - ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// DecompositionError is returned by ParseStrict when a statement does not
// fully match the grammar.
type DecompositionError struct {
	Text string
	Err  *ParseError
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("%s: %s", errors.ErrDecomposition.Error(), e.Err.Error())
}

func (e *DecompositionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, errors.ErrDecomposition) match.
func (e *DecompositionError) Is(target error) bool {
	return target == errors.ErrDecomposition
}
