package deb822

import (
	"bufio"
	"io"
	"strings"

	"pault.ag/go/debian/control"

	"github.com/teranos/dep5/errors"
)

// Stanza is a paragraph as read from a file: fields in order of appearance.
type Stanza struct {
	Fields []Field
	Line   int // line number of the first field
}

// Get returns the value of the named field, compared case-insensitively.
func (s Stanza) Get(name string) (string, bool) {
	for _, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether the named field is present.
func (s Stanza) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Parse reads deb822 stanzas. Continuation lines start with a space or tab; a
// continuation of "." is an empty line. Lines starting with "#" are comments.
// Values are trimmed and their lines joined with "\n"; an empty first line is
// dropped.
func Parse(r io.Reader) ([]Stanza, error) {
	text, starts, err := stripComments(r)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(strings.NewReader(text))
	var stanzas []Stanza
	for {
		line := 0
		if len(stanzas) < len(starts) {
			line = starts[len(stanzas)]
		}
		para, err := control.ParseParagraph(reader)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "paragraph at line %d: %s", line, err.Error())
		}
		if para == nil {
			break
		}
		st := Stanza{Line: line}
		for _, name := range para.Order {
			st.Fields = append(st.Fields, Field{
				Name:  name,
				Value: normalizeValue(para.Values[name]),
				Kind:  Multiline,
			})
		}
		stanzas = append(stanzas, st)
	}
	return stanzas, nil
}

// stripComments drops comment lines, turns whitespace-only lines into
// paragraph breaks and records the line on which each paragraph starts.
func stripComments(r io.Reader) (string, []int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var b strings.Builder
	var starts []int
	inParagraph := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, "#"):
			continue
		case strings.TrimSpace(line) == "":
			inParagraph = false
			b.WriteString("\n")
			continue
		case line[0] == ' ' || line[0] == '\t':
			if !inParagraph {
				return "", nil, errors.NewInvalidInputError("line %d: continuation line outside a field", lineNo)
			}
		default:
			if !inParagraph {
				starts = append(starts, lineNo)
				inParagraph = true
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", nil, errors.Wrap(err, "scanning deb822 input")
	}
	return b.String(), starts, nil
}

// normalizeValue trims every line of a parsed value, reads a lone "." as an
// empty line and drops an empty first line.
func normalizeValue(v string) string {
	lines := strings.Split(strings.TrimRight(v, "\n"), "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if l == "." {
			l = ""
		}
		lines[i] = l
	}
	if len(lines) > 1 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}
