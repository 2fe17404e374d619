package copyright

// Contains reports whether c covers everything o declares: every line of o
// must be contained by at least one line of c. Complex statements only
// contain, and are only contained by, complex statements with identical text.
func (c Copyright) Contains(o Copyright) bool {
	if c.kind == KindComplex || o.kind == KindComplex {
		return c.kind == o.kind && c.text == o.text
	}
	for _, want := range o.lines {
		if !c.coversLine(want) {
			return false
		}
	}
	return true
}

func (c Copyright) coversLine(want Decomposed) bool {
	for _, have := range c.lines {
		if have.Contains(want) {
			return true
		}
	}
	return false
}
