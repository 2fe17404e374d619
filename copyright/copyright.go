// Package copyright parses copyright statements into holders and year
// specifiers, decides whether one statement covers another, and renders
// statements back to text.
package copyright

import (
	"encoding/json"
	"strings"

	"github.com/teranos/dep5/years"
)

// Kind distinguishes the three shapes a statement can take.
type Kind int

const (
	KindSingle    Kind = iota // one decomposed line
	KindMultiline             // several decomposed lines
	KindComplex               // text the grammar could not decompose
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMultiline:
		return "multiline"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Decomposed is one holder with the years it claims.
type Decomposed struct {
	Years  []years.Spec
	Holder string
}

// String renders d as "2020, 2022-2024, Holder". Without a holder the years
// keep their comma, "2020,", so the text still parses.
func (d Decomposed) String() string {
	holder := strings.TrimSpace(d.Holder)
	if len(d.Years) == 0 {
		return holder
	}
	if holder == "" {
		return years.JoinSpecs(d.Years) + ","
	}
	return years.JoinSpecs(d.Years) + ", " + holder
}

// Contains reports whether d names the same holder as o and every year
// specifier of o lies within some specifier of d.
func (d Decomposed) Contains(o Decomposed) bool {
	if strings.TrimSpace(d.Holder) != strings.TrimSpace(o.Holder) {
		return false
	}
	for _, want := range o.Years {
		if !d.coversSpec(want) {
			return false
		}
	}
	return true
}

func (d Decomposed) coversSpec(want years.Spec) bool {
	for _, have := range d.Years {
		if have.Contains(want) {
			return true
		}
	}
	return false
}

// Copyright is a parsed statement. The zero value is an empty complex
// statement.
type Copyright struct {
	kind  Kind
	lines []Decomposed
	text  string
}

// Single returns a one-line statement.
func Single(d Decomposed) Copyright {
	return Copyright{kind: KindSingle, lines: []Decomposed{d}}
}

// Multiline returns a statement with one decomposed entry per line. One line
// yields a single statement; no lines yields an empty complex statement.
func Multiline(lines []Decomposed) Copyright {
	switch len(lines) {
	case 0:
		return Complex("")
	case 1:
		return Single(lines[0])
	}
	return Copyright{kind: KindMultiline, lines: append([]Decomposed(nil), lines...)}
}

// Complex returns an opaque statement holding text verbatim.
func Complex(text string) Copyright {
	return Copyright{kind: KindComplex, text: text}
}

func (c Copyright) Kind() Kind { return c.kind }

func (c Copyright) IsComplex() bool { return c.kind == KindComplex }

// Lines returns the decomposed lines, or nil for a complex statement.
func (c Copyright) Lines() []Decomposed {
	if c.kind == KindComplex {
		return nil
	}
	return append([]Decomposed(nil), c.lines...)
}

// Holders returns the trimmed holder of every line in order, duplicates
// included.
func (c Copyright) Holders() []string {
	holders := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		holders = append(holders, strings.TrimSpace(l.Holder))
	}
	return holders
}

// String renders the statement, one line per decomposed entry.
func (c Copyright) String() string {
	if c.kind == KindComplex {
		return c.text
	}
	parts := make([]string, len(c.lines))
	for i, l := range c.lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

type jsonLine struct {
	Years  []string `json:"years"`
	Holder string   `json:"holder"`
}

type jsonCopyright struct {
	Kind  string     `json:"kind"`
	Lines []jsonLine `json:"lines,omitempty"`
	Text  string     `json:"text,omitempty"`
}

// MarshalJSON encodes the statement structure for machine consumption.
func (c Copyright) MarshalJSON() ([]byte, error) {
	out := jsonCopyright{Kind: c.kind.String(), Text: c.text}
	for _, l := range c.lines {
		jl := jsonLine{Holder: strings.TrimSpace(l.Holder), Years: make([]string, len(l.Years))}
		for i, s := range l.Years {
			jl.Years[i] = s.String()
		}
		out.Lines = append(out.Lines, jl)
	}
	return json.Marshal(out)
}
