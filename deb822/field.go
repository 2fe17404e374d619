// Package deb822 reads and writes the paragraph/field syntax of Debian control
// files, and models the paragraphs of a DEP5 copyright file.
package deb822

import (
	"strings"

	"github.com/teranos/dep5/errors"
)

// FieldKind selects how a value is laid out across lines.
type FieldKind int

const (
	// SingleLine values sit next to the name and may not contain newlines.
	SingleLine FieldKind = iota
	// Multiline values start next to the name and continue on indented lines.
	Multiline
	// MultilineEmptyFirstLine values start on the line after the name.
	MultilineEmptyFirstLine
	// SingleLineOrMultilineEmptyFirstLine is SingleLine for one-line values and
	// MultilineEmptyFirstLine otherwise.
	SingleLineOrMultilineEmptyFirstLine
)

// Field is a named value with a layout.
type Field struct {
	Name  string
	Value string
	Kind  FieldKind
}

// Format renders f without a trailing newline.
func (f Field) Format() (string, error) {
	switch f.Kind {
	case SingleLine:
		if strings.Contains(f.Value, "\n") {
			return "", errors.Newf("unexpected newline in field %s", f.Name)
		}
		return firstLine(f.Name, f.Value, true), nil
	case Multiline:
		lines := strings.Split(f.Value, "\n")
		return withContinuation(firstLine(f.Name, lines[0], true), lines[1:]), nil
	case MultilineEmptyFirstLine:
		return withContinuation(firstLine(f.Name, "", false), strings.Split(f.Value, "\n")), nil
	case SingleLineOrMultilineEmptyFirstLine:
		if strings.Contains(f.Value, "\n") {
			return withContinuation(firstLine(f.Name, "", false), strings.Split(f.Value, "\n")), nil
		}
		return firstLine(f.Name, f.Value, true), nil
	default:
		return "", errors.AssertionFailedf("unknown field kind %d", int(f.Kind))
	}
}

func firstLine(name, value string, withValue bool) string {
	value = strings.TrimSpace(value)
	if !withValue || value == "" {
		return strings.TrimSpace(name) + ":"
	}
	return strings.TrimSpace(name) + ": " + value
}

// withContinuation appends each line indented by two spaces; empty lines are
// written as ".".
func withContinuation(first string, lines []string) string {
	var b strings.Builder
	b.WriteString(first)
	for _, line := range lines {
		b.WriteString("\n  ")
		if line == "" {
			b.WriteString(".")
			continue
		}
		b.WriteString(strings.TrimRight(line, " \t"))
	}
	return b.String()
}

// Paragraph is anything that lays itself out as fields. Fields with an empty
// value are omitted unless they are required.
type Paragraph interface {
	Fields() []Field
}

// FormatParagraph renders p without a trailing newline.
func FormatParagraph(p Paragraph) (string, error) {
	var lines []string
	for _, f := range p.Fields() {
		s, err := f.Format()
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}

// Document is an ordered list of paragraphs.
type Document struct {
	Paragraphs []Paragraph
}

// Format renders the document with a blank line between paragraphs and a
// trailing newline.
func (d Document) Format() (string, error) {
	parts := make([]string, 0, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		s, err := FormatParagraph(p)
		if err != nil {
			return "", errors.Wrapf(err, "paragraph %d", i+1)
		}
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
