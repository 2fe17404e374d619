package years

import (
	"strconv"
	"strings"

	"github.com/teranos/dep5/errors"
)

// Year is a four-digit calendar year.
type Year int

// Century returns the 1-based century of y.
func (y Year) Century() int { return centuryOf(int(y)) }

func (y Year) String() string { return strconv.Itoa(int(y)) }

// Range is a closed interval of years with Begin <= End.
type Range struct {
	begin, end Year
}

// NewRange returns the range [begin, end], or an error wrapping
// errors.ErrImproperRange when begin > end.
func NewRange(begin, end Year) (Range, error) {
	r, ok := makeRange(begin, end)
	if !ok {
		return Range{}, errors.Wrapf(errors.ErrImproperRange, "%d-%d", begin, end)
	}
	return r, nil
}

// MustRange is like NewRange but panics on an improper range.
func MustRange(begin, end Year) Range {
	r, err := NewRange(begin, end)
	if err != nil {
		panic(err)
	}
	return r
}

// SingleYearRange returns the range [y, y].
func SingleYearRange(y Year) Range { return Range{begin: y, end: y} }

func (r Range) Begin() Year { return r.begin }
func (r Range) End() Year   { return r.end }

// IsSingleYear reports whether the range spans one year.
func (r Range) IsSingleYear() bool { return r.begin == r.end }

// ContainsYear reports whether y lies within r.
func (r Range) ContainsYear(y Year) bool {
	return r.begin <= y && y <= r.end
}

// ContainsRange reports whether both endpoints of o lie within r.
func (r Range) ContainsRange(o Range) bool {
	return r.ContainsYear(o.begin) && r.ContainsYear(o.end)
}

// CanAdd reports whether y is inside r or directly adjacent to it.
func (r Range) CanAdd(y Year) bool {
	return r.ContainsYear(y) || y == r.end+1 || y == r.begin-1
}

// CanMerge reports whether r and o overlap or touch.
func (r Range) CanMerge(o Range) bool {
	return r.CanAdd(o.begin) || r.CanAdd(o.end) || o.CanAdd(r.begin)
}

// Merge returns the smallest range covering r and o. Callers check CanMerge
// first; Merge itself does not verify adjacency.
func (r Range) Merge(o Range) Range {
	m := r
	if o.begin < m.begin {
		m.begin = o.begin
	}
	if o.end > m.end {
		m.end = o.end
	}
	return m
}

func (r Range) String() string {
	if r.IsSingleYear() {
		return r.begin.String()
	}
	return r.begin.String() + "-" + r.end.String()
}

// Spec is one year specifier of a copyright statement: a single year or a
// closed range.
type Spec struct {
	r       Range
	isRange bool
}

// Single returns a specifier for one year.
func Single(y Year) Spec { return Spec{r: SingleYearRange(y)} }

// Closed returns a range specifier.
func Closed(r Range) Spec { return Spec{r: r, isRange: true} }

// FromRange returns a single-year specifier when r spans one year, otherwise a
// range specifier.
func FromRange(r Range) Spec {
	if r.IsSingleYear() {
		return Single(r.begin)
	}
	return Closed(r)
}

// IsSingle reports whether s was written as a single year.
func (s Spec) IsSingle() bool { return !s.isRange }

// Range returns the years covered by s.
func (s Spec) Range() Range { return s.r }

// Contains reports whether every year of o lies within s.
func (s Spec) Contains(o Spec) bool {
	return s.r.ContainsRange(o.r)
}

// Compare orders specifiers by start year, then end year. A single year and a
// multi-year range that start in the same year are incomparable; ok is false
// for those.
func (s Spec) Compare(o Spec) (cmp int, ok bool) {
	switch {
	case s.isRange && o.isRange:
		if c := compareYears(s.r.begin, o.r.begin); c != 0 {
			return c, true
		}
		return compareYears(s.r.end, o.r.end), true
	case !s.isRange && !o.isRange:
		return compareYears(s.r.begin, o.r.begin), true
	case s.isRange:
		return compareRangeToYear(s.r, o.r.begin)
	default:
		c, ok := compareRangeToYear(o.r, s.r.begin)
		return -c, ok
	}
}

func compareRangeToYear(r Range, y Year) (int, bool) {
	if r.IsSingleYear() {
		return compareYears(r.begin, y), true
	}
	if r.begin == y {
		return 0, false
	}
	return compareYears(r.begin, y), true
}

func compareYears(a, b Year) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (s Spec) String() string { return s.r.String() }

// JoinSpecs renders specs separated by ", ".
func JoinSpecs(specs []Spec) string {
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
