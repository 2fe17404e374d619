package copyright

import (
	"strings"

	"github.com/teranos/dep5/years"
)

// Parse decomposes text, falling back to a complex statement holding the
// trimmed text when any non-blank line fails the grammar. It never fails.
func Parse(text string, opts years.Normalization) Copyright {
	c, err := ParseStrict(text, opts)
	if err != nil {
		return Complex(strings.TrimSpace(text))
	}
	return c
}

// ParseStrict decomposes text and returns a *DecompositionError when any
// non-blank line fails the grammar. Blank lines are ignored.
func ParseStrict(text string, opts years.Normalization) (Copyright, error) {
	var lines []Decomposed
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		d, perr := parseLine(line, opts)
		if perr != nil {
			perr.Line = i + 1
			return Copyright{}, &DecompositionError{Text: text, Err: perr}
		}
		lines = append(lines, d)
	}
	if len(lines) == 0 {
		return Copyright{}, &DecompositionError{Text: text, Err: &ParseError{
			Kind:    ErrorKindEmpty,
			Message: "statement has no lines",
			Line:    1,
			Column:  1,
			Input:   text,
		}}
	}
	return Multiline(lines), nil
}

// ParseLine decomposes a single line without the complex fallback.
func ParseLine(line string, opts years.Normalization) (Decomposed, error) {
	d, perr := parseLine(line, opts)
	if perr != nil {
		perr.Line = 1
		return Decomposed{}, &DecompositionError{Text: line, Err: perr}
	}
	return d, nil
}

// parseLine matches: [prefix] year-spec {(","|space) year-spec} "," holder
func parseLine(line string, opts years.Normalization) (Decomposed, *ParseError) {
	p := &lineParser{input: line, opts: opts}
	p.space0()
	p.prefix()
	p.space0()

	first, ok := p.yearSpec()
	if !ok {
		return Decomposed{}, p.failure(ErrorKindYear, "expected a year or year range")
	}
	specs := []years.Spec{first}
	for {
		save := p.pos
		if !p.listSeparator() {
			break
		}
		s, ok := p.yearSpec()
		if !ok {
			p.pos = save
			break
		}
		specs = append(specs, s)
	}

	p.space0()
	if !p.tag(",") {
		return Decomposed{}, p.failure(ErrorKindSeparator, "expected ',' between years and holder")
	}
	p.space0()

	return Decomposed{
		Years:  specs,
		Holder: strings.TrimSpace(p.input[p.pos:]),
	}, nil
}

type lineParser struct {
	input string
	pos   int
	opts  years.Normalization

	// rangeErr remembers the furthest range that matched syntactically but
	// did not normalize, so failures can point at it.
	rangeErr *ParseError
}

func (p *lineParser) failure(kind ErrorKind, msg string) *ParseError {
	if p.rangeErr != nil && p.rangeErr.Column-1 >= p.pos {
		return p.rangeErr
	}
	return &ParseError{Kind: kind, Message: msg, Column: p.pos + 1, Input: p.input}
}

var prefixes = []string{"copyright", "copr"}

// prefix consumes an optional case-insensitive "copyright", "copyright (c)"
// or "copr".
func (p *lineParser) prefix() {
	for _, pre := range prefixes {
		if !p.tagFold(pre) {
			continue
		}
		save := p.pos
		p.space0()
		if !p.tagFold("(c)") {
			p.pos = save
		}
		return
	}
}

func (p *lineParser) space0() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *lineParser) space1() bool {
	start := p.pos
	p.space0()
	return p.pos > start
}

func (p *lineParser) tag(t string) bool {
	if strings.HasPrefix(p.input[p.pos:], t) {
		p.pos += len(t)
		return true
	}
	return false
}

func (p *lineParser) tagFold(t string) bool {
	end := p.pos + len(t)
	if end > len(p.input) || !strings.EqualFold(p.input[p.pos:end], t) {
		return false
	}
	p.pos = end
	return true
}

// listSeparator matches a comma with optional surrounding spaces, or plain
// whitespace.
func (p *lineParser) listSeparator() bool {
	save := p.pos
	p.space0()
	if p.tag(",") {
		p.space0()
		return true
	}
	p.pos = save
	return p.space1()
}

// yearSpec matches optional leading space, then a range or a single year. A
// range that matches syntactically but does not normalize fails the
// specifier outright.
func (p *lineParser) yearSpec() (years.Spec, bool) {
	save := p.pos
	p.space0()
	s, matched, ok := p.yearRange()
	if ok {
		return s, true
	}
	if matched {
		p.pos = save
		return years.Spec{}, false
	}
	if y, ok := p.rawYear(); ok {
		return years.Single(y.ToFourDigit()), true
	}
	p.pos = save
	return years.Spec{}, false
}

type yearWidth int

const (
	width4 yearWidth = 4
	width2 yearWidth = 2
)

// rangeShapes is the order in which range shapes are tried; longer forms
// first so "1995-2022" is never read as "1995-20" followed by "22".
var rangeShapes = [][2]yearWidth{
	{width4, width4},
	{width4, width2},
	{width2, width4},
	{width2, width2},
}

func (p *lineParser) yearRange() (s years.Spec, matched, ok bool) {
	start := p.pos
	for _, shape := range rangeShapes {
		p.pos = start
		begin, found := p.yearOfWidth(shape[0])
		if !found || !p.rangeDelimiter() {
			continue
		}
		end, found := p.yearOfWidth(shape[1])
		if !found {
			continue
		}
		resolved, valid := years.ResolveSpec(begin, end, p.opts)
		if !valid {
			p.noteRangeFailure(start, begin, end)
			p.pos = start
			return years.Spec{}, true, false
		}
		return resolved, true, true
	}
	p.pos = start
	return years.Spec{}, false, false
}

func (p *lineParser) noteRangeFailure(start int, begin, end years.RawYear) {
	text := p.input[start:p.pos]
	perr := &ParseError{
		Kind:   ErrorKindRange,
		Column: start + 1,
		Input:  p.input,
	}
	suggestions := rangeSuggestions(begin, end)
	if len(suggestions) == 0 {
		perr.Message = "year range " + text + " ends before it begins"
	} else {
		perr.Message = "year range " + text + " is ambiguous under the enabled heuristics"
		perr.Suggestions = suggestions
	}
	if p.rangeErr == nil || p.rangeErr.Column <= perr.Column {
		p.rangeErr = perr
	}
}

// rangeSuggestions lists the normalization flags that would, on their own,
// make begin-end a valid range.
func rangeSuggestions(begin, end years.RawYear) []string {
	candidates := []struct {
		name string
		opts years.Normalization
	}{
		{"allow_century_guess", years.Normalization{AllowCenturyGuess: true}},
		{"allow_assuming_y2k_span", years.Normalization{AllowAssumingY2KSpan: true}},
		{"allow_mixed_size_implied_century_rollover", years.Normalization{AllowMixedSizeImpliedCenturyRollover: true}},
	}
	var out []string
	for _, c := range candidates {
		if _, ok := years.NormalizeRange(begin, end, c.opts); ok {
			out = append(out, "enable "+c.name)
		}
	}
	return out
}

func (p *lineParser) rangeDelimiter() bool {
	save := p.pos
	p.space0()
	if !p.tag("-") {
		p.pos = save
		return false
	}
	p.space0()
	return true
}

func (p *lineParser) rawYear() (years.RawYear, bool) {
	if y, ok := p.yearOfWidth(width4); ok {
		return y, true
	}
	return p.yearOfWidth(width2)
}

// yearOfWidth matches 19dd or 20dd for four digits, dd for two.
func (p *lineParser) yearOfWidth(w yearWidth) (years.RawYear, bool) {
	end := p.pos + int(w)
	if end > len(p.input) {
		return years.RawYear{}, false
	}
	digits := p.input[p.pos:end]
	value := 0
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return years.RawYear{}, false
		}
		value = value*10 + int(digits[i]-'0')
	}
	if w == width2 {
		p.pos = end
		return years.TwoDigit(value), true
	}
	if century := value / 100; century != 19 && century != 20 {
		return years.RawYear{}, false
	}
	p.pos = end
	return years.FourDigit(value), true
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }
